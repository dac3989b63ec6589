package httpapi

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const userIDKey ctxKey = "user_id"

// TokenVerifier checks a bearer token and returns the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// WithUserID binds an authenticated user id to ctx.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFromContext returns the user id bound by RequireAuth.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// RequireAuth rejects requests without a valid token in the Authorization header.
// The header may carry either "Bearer <token>" or the bare token. Every failure is a 401 with the same body.
func RequireAuth(tokens TokenVerifier, logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				writeMessage(w, http.StatusUnauthorized, "Token is missing")
				return
			}

			subject, err := tokens.Verify(token)
			if err != nil {
				logger.Printf("verify token rid=%s: %v", RequestIDFromContext(r.Context()), err)
				writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			userID, err := uuid.Parse(subject)
			if err != nil {
				logger.Printf("token subject rid=%s: %v", RequestIDFromContext(r.Context()), err)
				writeMessage(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if strings.EqualFold(header, "bearer") {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return header
}
