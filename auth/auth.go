package auth

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/studytok/api/config"
)

const CookieName = "auth_token"

// Claims are the session token claims: the user ID in the subject plus the
// nickname for display.
type Claims struct {
	Nickname string `json:"nickname"`
	jwt.RegisteredClaims
}

func secretKey() []byte {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		log.Fatal("auth.go: JWT_SECRET_KEY not set")
	}
	return []byte(secret)
}

// CreateToken signs a session token for the given user.
func CreateToken(userID uint, nickname string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Nickname: nickname,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	})

	tokenString, err := token.SignedString(secretKey())
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyToken parses and validates a session token, returning the user ID.
func VerifyToken(tokenString string) (uint, *Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secretKey(), nil
	})
	if err != nil {
		return 0, nil, err
	}
	if !token.Valid {
		return 0, nil, fmt.Errorf("invalid token")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid token subject: %w", err)
	}
	return uint(userID), claims, nil
}

// SetAuthCookie attaches the session token to the response.
func SetAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Domain:   config.Env.Domain,
		MaxAge:   int((24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   config.Env.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearAuthCookie expires the session cookie.
func ClearAuthCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Domain:   config.Env.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   config.Env.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
