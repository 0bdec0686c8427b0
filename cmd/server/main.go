package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Postwall/internal/api/middleware"
	"Postwall/internal/api/routes"
	"Postwall/internal/auth"
	"Postwall/internal/config"
	"Postwall/internal/core/posts"
	"Postwall/internal/core/users"
	"Postwall/internal/db/memory"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	level, _ := cfg.SlogLevel() // validated by config.Load
	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsLocal() {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	logger.Info("starting postwall", "config", cfg)

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	// Initialize repositories and services
	postStore := memory.NewPostStore()
	userStore := memory.NewUserStore()
	postService := posts.NewPostService(postStore, logger.With("component", "posts"))
	userService := users.NewUserService(userStore, tokens, 0, logger.With("component", "users"))

	// Seeding completes before the listener starts
	if cfg.SeedSamplePosts {
		n, err := posts.Seed(ctx, postStore)
		if err != nil {
			return err
		}
		logger.Info("seeded sample posts", "count", n)
	}
	if cfg.SeedAccountUsername != "" {
		account, err := userService.CreateAccount(ctx, cfg.SeedAccountUsername, cfg.SeedAccountPassword)
		if err != nil {
			return err
		}
		logger.Info("seeded account", "user_id", account.ID, "username", account.Username)
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go rateLimiter.Run(time.Minute, ctx.Done())

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: routes.NewRouter(routes.RouterConfig{
			PostService:    postService,
			UserService:    userService,
			Tokens:         tokens,
			RateLimiter:    rateLimiter,
			Logger:         logger,
			AllowedOrigins: cfg.CORSAllowedOrigins,
			RequestTimeout: cfg.RequestTimeout,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
