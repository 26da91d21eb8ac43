package utils

import (
	"net/http"

	"github.com/studytok/api/models"
)

type contextKey string

// UserContextKey is where the auth middleware stores the resolved user.
const UserContextKey contextKey = "user"

// GetUser returns the authenticated user attached to the request, if any.
func GetUser(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	return user, ok
}
