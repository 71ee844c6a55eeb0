package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/alexedwards/scs/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jumpigames/newsletter/internal/config"
	"github.com/jumpigames/newsletter/internal/dependencies/clock"
	"github.com/jumpigames/newsletter/internal/dependencies/random"
	"github.com/jumpigames/newsletter/internal/email"
	"github.com/jumpigames/newsletter/internal/services/auth"
	"github.com/jumpigames/newsletter/internal/services/broadcast"
	"github.com/jumpigames/newsletter/internal/services/newsletter"
	"github.com/jumpigames/newsletter/internal/session"
	"github.com/jumpigames/newsletter/internal/storage"
	"github.com/jumpigames/newsletter/internal/storage/memory"
	redisstorage "github.com/jumpigames/newsletter/internal/storage/redis"
	"github.com/jumpigames/newsletter/internal/storage/sqldb"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage  storage.Storage
	Sessions *scs.SessionManager

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	Sender email.Sender // nil when email is not configured

	// Services
	AuthService          *auth.Service
	NewsletterController *newsletter.Controller
	BroadcastService     *broadcast.Service

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required for redis storage or sessions)
	RedisConfig *redisstorage.Config
	// DatabaseURL is the postgres URL or sqlite path (required for SQL storage)
	DatabaseURL string
	// RedisSessions stores sessions in Redis instead of process memory
	RedisSessions bool
	// SecureCookies marks the session cookie Secure with SameSite=None
	SecureCookies bool
	// AdminCodeHash is the bcrypt hash of the admin code (required)
	AdminCodeHash []byte
	// Sender delivers update emails (optional)
	Sender email.Sender
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	if len(cfg.AdminCodeHash) == 0 {
		return nil, errors.New("AdminCodeHash is required")
	}

	var (
		store       storage.Storage
		redisClient *goredis.Client
		closers     []io.Closer
	)

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = config.StorageMemory
	}

	switch storageType {
	case config.StorageMemory:
		store = memory.New()
	case config.StorageRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
		redisClient = redisStore.Client()
	case config.StoragePostgres, config.StorageSQLite:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DatabaseURL required when StorageType is %s", storageType)
		}
		sqlStore, err := sqldb.New(sqldb.Config{Dialect: sqldb.Dialect(storageType), DSN: cfg.DatabaseURL})
		if err != nil {
			return nil, err
		}
		store = sqlStore
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be memory, redis, postgres or sqlite", storageType)
	}
	closers = append(closers, store)

	sessionOpts := session.Options{Secure: cfg.SecureCookies}
	var sessions *scs.SessionManager
	if cfg.RedisSessions {
		if redisClient == nil {
			if cfg.RedisConfig == nil {
				_ = store.Close()
				return nil, errors.New("RedisConfig required for redis sessions")
			}
			client, err := redisstorage.NewClient(*cfg.RedisConfig)
			if err != nil {
				_ = store.Close()
				return nil, err
			}
			redisClient = client
			closers = append(closers, client)
		}
		sessions = session.NewRedis(redisClient, sessionOpts)
	} else {
		sessions = session.New(sessionOpts)
	}

	app := newWithDependencies(store, sessions, clock.New(), random.New(), cfg.AdminCodeHash, cfg.Sender, logger)
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	sessions *scs.SessionManager,
	clk clock.Clock,
	rnd random.Random,
	adminCodeHash []byte,
	sender email.Sender,
	logger *slog.Logger,
) *App {
	return &App{
		Storage:              store,
		Sessions:             sessions,
		Clock:                clk,
		Random:               rnd,
		Sender:               sender,
		AuthService:          auth.New(sessions, adminCodeHash),
		NewsletterController: newsletter.NewController(store, clk, rnd),
		BroadcastService:     broadcast.New(store, sender, logger),
	}
}

// Close releases storage and any dedicated Redis connection
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
