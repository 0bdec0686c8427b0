package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, read from the environment
type Config struct {
	Port                string        `env:"PORT" envDefault:"8080"`
	Env                 string        `env:"APP_ENV" envDefault:"local"` // "local" or "prod"
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`
	JWTSecret           string        `env:"JWT_SECRET,required,notEmpty"`
	TokenTTL            time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	RequestTimeout      time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	RateLimitRPS        float64       `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst      int           `env:"RATE_LIMIT_BURST" envDefault:"20"`
	CORSAllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	SeedSamplePosts     bool          `env:"SEED_SAMPLE_POSTS" envDefault:"true"`
	SeedAccountUsername string        `env:"SEED_ACCOUNT_USERNAME"`
	SeedAccountPassword string        `env:"SEED_ACCOUNT_PASSWORD"`
}

// Load parses the environment into a Config and validates it
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if (c.SeedAccountUsername == "") != (c.SeedAccountPassword == "") {
		return fmt.Errorf("SEED_ACCOUNT_USERNAME and SEED_ACCOUNT_PASSWORD must be set together")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// IsLocal reports whether the process runs in local development mode
func (c Config) IsLocal() bool {
	return c.Env == "local"
}

// SlogLevel maps LOG_LEVEL to a slog.Level
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// LogValue keeps the token secret out of logs
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("port", c.Port),
		slog.String("env", c.Env),
		slog.String("log_level", c.LogLevel),
		slog.Duration("token_ttl", c.TokenTTL),
		slog.Duration("request_timeout", c.RequestTimeout),
		slog.Float64("rate_limit_rps", c.RateLimitRPS),
		slog.Int("rate_limit_burst", c.RateLimitBurst),
		slog.Any("cors_allowed_origins", c.CORSAllowedOrigins),
		slog.Bool("seed_sample_posts", c.SeedSamplePosts),
		slog.Bool("seed_account", c.SeedAccountUsername != ""),
	)
}
