// Package config loads server settings from the environment and an optional
// .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage backends
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Session stores
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Email providers
const (
	EmailResend = "resend"
	EmailSMTP   = "smtp"
	EmailLog    = "log"
	EmailNone   = "none"
)

// Config holds all server settings
type Config struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"3000"`
	Env      string `env:"ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Admin gate; ADMIN_CODE_HASH (bcrypt) takes precedence over ADMIN_CODE
	AdminCode     string `env:"ADMIN_CODE" envDefault:"3281"`
	AdminCodeHash string `env:"ADMIN_CODE_HASH"`

	// Storage
	StorageType    string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL       string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"jumpi"`
	DatabaseURL    string `env:"DATABASE_URL"` // postgres URL or sqlite file path
	SessionStore   string `env:"SESSION_STORE" envDefault:"memory"`

	// Email; EmailProvider defaults to resend when an API key is present
	EmailProvider   string `env:"EMAIL_PROVIDER"`
	ResendAPIKey    string `env:"RESEND_API_KEY"`
	ResendFromEmail string `env:"RESEND_FROM_EMAIL" envDefault:"Jumpi <onboarding@resend.dev>"`
	SMTPHost        string `env:"SMTP_HOST"`
	SMTPPort        int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername    string `env:"SMTP_USERNAME"`
	SMTPPassword    string `env:"SMTP_PASSWORD"`

	// HTTP surface
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	StaticDir      string   `env:"STATIC_DIR"`
	TrustProxy     bool     `env:"TRUST_PROXY" envDefault:"true"`

	// Error reporting
	SentryDSN string `env:"SENTRY_DSN"`
}

// IsProduction reports whether cookies must be cross-site and Secure
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Level returns the slog level named by LogLevel
func (c Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// EmailProviderName resolves the effective email provider
func (c Config) EmailProviderName() string {
	if c.EmailProvider != "" {
		return c.EmailProvider
	}
	if c.ResendAPIKey != "" {
		return EmailResend
	}
	return EmailNone
}

// Load reads .env (if present) and then the process environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadFrom parses config from the given variables only
func LoadFrom(environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the server cannot start with
func (c Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not a valid level", c.LogLevel))
	}

	if c.AdminCode == "" && c.AdminCodeHash == "" {
		errs = append(errs, errors.New("one of ADMIN_CODE or ADMIN_CODE_HASH is required"))
	}

	switch c.StorageType {
	case StorageMemory:
	case StorageRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required when STORAGE_TYPE=redis"))
		}
	case StoragePostgres, StorageSQLite:
		if c.DatabaseURL == "" {
			errs = append(errs, fmt.Errorf("DATABASE_URL is required when STORAGE_TYPE=%s", c.StorageType))
		}
	default:
		errs = append(errs, fmt.Errorf("STORAGE_TYPE %q must be one of memory, redis, postgres, sqlite", c.StorageType))
	}

	if !slices.Contains([]string{SessionStoreMemory, SessionStoreRedis}, c.SessionStore) {
		errs = append(errs, fmt.Errorf("SESSION_STORE %q must be memory or redis", c.SessionStore))
	} else if c.SessionStore == SessionStoreRedis && c.RedisURL == "" {
		errs = append(errs, errors.New("REDIS_URL is required when SESSION_STORE=redis"))
	}

	switch c.EmailProviderName() {
	case EmailResend:
		if c.ResendAPIKey == "" {
			errs = append(errs, errors.New("RESEND_API_KEY is required when EMAIL_PROVIDER=resend"))
		}
	case EmailSMTP:
		if c.SMTPHost == "" {
			errs = append(errs, errors.New("SMTP_HOST is required when EMAIL_PROVIDER=smtp"))
		}
	case EmailLog, EmailNone:
	default:
		errs = append(errs, fmt.Errorf("EMAIL_PROVIDER %q must be one of resend, smtp, log, none", c.EmailProvider))
	}

	return errors.Join(errs...)
}
