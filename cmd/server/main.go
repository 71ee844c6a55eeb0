package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	raven "github.com/getsentry/raven-go"

	"github.com/jumpigames/newsletter/internal/api"
	"github.com/jumpigames/newsletter/internal/config"
	"github.com/jumpigames/newsletter/internal/factory"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	slog.SetDefault(logger)

	if cfg.SentryDSN != "" {
		if err := raven.SetDSN(cfg.SentryDSN); err != nil {
			return fmt.Errorf("invalid SENTRY_DSN: %w", err)
		}
		raven.SetEnvironment(cfg.Env)
	}

	// Build factory config from environment
	factoryCfg, err := factory.ConfigFromEnv(cfg, logger)
	if err != nil {
		return err
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close application", slog.String("error", err.Error()))
		}
	}()

	if !app.BroadcastService.Configured() {
		logger.Warn("email sending is not configured; send-update will fail")
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:               logger,
		Sessions:             app.Sessions,
		AuthService:          app.AuthService,
		NewsletterController: app.NewsletterController,
		BroadcastService:     app.BroadcastService,
		AllowedOrigins:       cfg.AllowedOrigins,
		StaticDir:            cfg.StaticDir,
		TrustProxy:           cfg.TrustProxy,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("env", cfg.Env),
		slog.String("storage", cfg.StorageType),
		slog.String("email", cfg.EmailProviderName()),
	)

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			return err
		}
	}

	logger.Info("server stopped")
	return nil
}
