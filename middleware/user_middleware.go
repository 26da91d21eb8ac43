package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/studytok/api/auth"
	"github.com/studytok/api/config"
	"github.com/studytok/api/models"
	"github.com/studytok/api/utils"
)

// RequireUser validates the session cookie, loads the user row, and attaches
// it to the request context. Requests without a valid session are rejected.
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.CookieName)
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		userID, claims, err := auth.VerifyToken(cookie.Value)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		var user models.User
		if err := config.Database.First(&user, userID).Error; err != nil {
			http.Error(w, "User not found", http.StatusUnauthorized)
			return
		}

		// Keep the stored nickname in sync with the token claims
		if claims.Nickname != "" && user.Nickname != claims.Nickname {
			user.Nickname = claims.Nickname
			if err := config.Database.Save(&user).Error; err != nil {
				http.Error(w, "Failed to update user", http.StatusInternalServerError)
				log.Println("Database update error:", err)
				return
			}
		}

		ctx := context.WithValue(r.Context(), utils.UserContextKey, &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// OptionalUser attaches the user when a valid session cookie is present but
// lets anonymous requests through. Public deck reads use this.
func OptionalUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.CookieName)
		if err == nil {
			if userID, _, err := auth.VerifyToken(cookie.Value); err == nil {
				var user models.User
				if err := config.Database.First(&user, userID).Error; err == nil {
					r = r.WithContext(context.WithValue(r.Context(), utils.UserContextKey, &user))
				}
			}
		}
		next.ServeHTTP(w, r)
	}
}
