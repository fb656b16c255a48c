package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/atinyakov/taletrail/internal/models"
)

type ctxKey string

const userKey ctxKey = "user"

// TokenParser verifies an access token and returns its user id.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// RequireUser rejects requests without a valid bearer token with a 401
// envelope. On success the user id is stored in the request context.
func RequireUser(p TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearer(r)
			if !ok {
				unauthorized(w, "Authentication required")
				return
			}
			userID, err := p.ParseToken(token)
			if err != nil {
				unauthorized(w, "Invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// OptionalUser identifies the caller when a valid bearer token is present
// and passes every request through. A bad token is treated as anonymous.
func OptionalUser(p TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := bearer(r); ok {
				if userID, err := p.ParseToken(token); err == nil {
					r = r.WithContext(WithUserID(r.Context(), userID))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(models.Envelope[any]{
		Message: msg,
		Error:   &models.ErrorDetail{Type: "Unauthorized"},
	})
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

// GetUserIDFromContext extracts the authenticated user id from the request
// context. Returns an empty string if not found.
func GetUserIDFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
