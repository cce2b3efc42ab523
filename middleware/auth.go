package middleware

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const UserIDKey contextKey = "userID"

// TokenVerifier validates a bearer token and returns the user id it carries.
type TokenVerifier interface {
	VerifyToken(token string) (uuid.UUID, error)
}

// AuthMiddleware validates the Authorization bearer token and puts the
// authenticated user id into the request context.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondWithError(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == authHeader {
				respondWithError(w, http.StatusUnauthorized, "Invalid authorization format. Use 'Bearer <token>'")
				return
			}

			userID, err := verifier.VerifyToken(token)
			if err != nil {
				log.Printf("Token verification failed: %v", err)
				respondWithError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CronAuthMiddleware protects the notification send endpoint: it is meant
// to be called by an external scheduler, not a browser session, so it is
// guarded by a shared secret header instead of a bearer token.
func CronAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secret := os.Getenv("CRON_SECRET")
		if secret == "" || r.Header.Get("X-Cron-Secret") != secret {
			respondWithError(w, http.StatusUnauthorized, "Invalid cron secret")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID extracts the authenticated user id from context.
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write([]byte(`{"error": "` + message + `"}`))
}
