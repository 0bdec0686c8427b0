package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"Postwall/internal/core/users"
)

// Context keys for storing user information
type contextKey string

const (
	UserKey contextKey = "user"
)

// TokenVerifier resolves a bearer token to the user id it was issued for
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// UserLookup loads the account a verified token names
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*users.User, error)
}

// AuthMiddleware enforces bearer token authentication for protected routes
type AuthMiddleware struct {
	tokens TokenVerifier
	users  UserLookup
	logger *slog.Logger
}

// NewAuthMiddleware creates a new bearer token auth middleware
func NewAuthMiddleware(tokens TokenVerifier, lookup UserLookup, logger *slog.Logger) *AuthMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthMiddleware{
		tokens: tokens,
		users:  lookup,
		logger: logger,
	}
}

// RequireAuth rejects requests without a valid token with 401 and injects the
// authenticated user into the request context otherwise
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, "Missing Authorization header")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeAuthError(w, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		userID, err := m.tokens.Verify(token)
		if err != nil {
			m.logger.Info("auth failure",
				"type", "verification_failed",
				"ip", r.RemoteAddr,
				"method", r.Method,
				"path", r.URL.Path,
				"error", err)
			writeAuthError(w, "Invalid or expired token")
			return
		}

		user, err := m.users.GetByID(r.Context(), userID)
		if err != nil {
			if !errors.Is(err, users.ErrUserNotFound) {
				m.logger.Error("auth user lookup failed", "user_id", userID, "error", err)
			}
			writeAuthError(w, "Unknown account")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// WithUser stores the authenticated user in ctx
func WithUser(ctx context.Context, user *users.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// GetUser extracts the authenticated user from the request context
// Returns nil if not authenticated
func GetUser(r *http.Request) *users.User {
	user, _ := r.Context().Value(UserKey).(*users.User)
	return user
}

// writeAuthError writes a JSON error response for authentication failures
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   "AuthenticationRequired",
		"message": message,
	}); err != nil {
		slog.Error("failed to write auth error response", "error", err)
	}
}
