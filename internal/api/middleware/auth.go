package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/satyam/medicare-backend/internal/service"
	"github.com/satyam/medicare-backend/internal/token"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
)

// Auth verifies the bearer token on the Authorization header and stores the
// subject user id on the request context. The mobile client variants disagree
// on the header shape (raw token vs "Bearer <token>"), so an optional Bearer
// prefix is tolerated.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := TokenFromHeader(r)
			if raw == "" {
				log.Printf("ERROR [middleware.Auth] missing authorization header")
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			userID, err := authService.VerifyToken(raw)
			if err != nil {
				log.Printf("ERROR [middleware.Auth] token verification failed: %v", err)
				if errors.Is(err, token.ErrExpired) {
					http.Error(w, "Token expired", http.StatusUnauthorized)
					return
				}
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TokenFromHeader extracts the raw token from the Authorization header,
// stripping an optional "Bearer " prefix.
func TokenFromHeader(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(raw, "Bearer ") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
	}
	return raw
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
