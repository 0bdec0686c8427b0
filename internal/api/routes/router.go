package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"Postwall/internal/api/middleware"
	"Postwall/internal/core/posts"
	"Postwall/internal/core/users"
)

// RouterConfig carries everything NewRouter wires together
type RouterConfig struct {
	PostService    posts.Service
	UserService    users.UserService
	Tokens         middleware.TokenVerifier
	RateLimiter    *middleware.RateLimiter
	Logger         *slog.Logger
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter builds the HTTP handler for the whole API.
// RequestTimeout bounds each request's context, which also bounds how long a
// request waits for the post store.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(chiMiddleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	authMiddleware := middleware.NewAuthMiddleware(cfg.Tokens, cfg.UserService, cfg.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Middleware)
		}

		RegisterUserRoutes(r, cfg.UserService, authMiddleware)
		RegisterPostRoutes(r, cfg.PostService, authMiddleware)
	})

	return r
}
