package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	token, err := CreateToken(42, "gopher")
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	userID, claims, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
	if claims.Nickname != "gopher" {
		t.Errorf("nickname = %q, want %q", claims.Nickname, "gopher")
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, _, err := VerifyToken(tok); err == nil {
			t.Errorf("VerifyToken(%q) succeeded, want error", tok)
		}
	}
}

func TestVerifyTokenRejectsWrongKey(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	token, err := CreateToken(7, "gopher")
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}

	t.Setenv("JWT_SECRET_KEY", "different-secret")
	if _, _, err := VerifyToken(token); err == nil {
		t.Error("token signed with another key verified")
	}
}

func TestVerifyTokenRejectsUnexpectedAlgorithm(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Nickname: "gopher",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, _, err = VerifyToken(token)
	if err == nil || !strings.Contains(err.Error(), "signing method") {
		t.Fatalf("got %v, want signing method rejection", err)
	}
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	token, err := expired.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, _, err := VerifyToken(token); err == nil {
		t.Error("expired token verified")
	}
}
