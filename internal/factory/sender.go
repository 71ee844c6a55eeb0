package factory

import (
	"fmt"
	"log/slog"

	"github.com/jumpigames/newsletter/internal/config"
	"github.com/jumpigames/newsletter/internal/email"
	"github.com/jumpigames/newsletter/internal/services/auth"
	redisstorage "github.com/jumpigames/newsletter/internal/storage/redis"
)

// NewSender builds the email sender selected by cfg; nil means not configured
func NewSender(cfg *config.Config, logger *slog.Logger) (email.Sender, error) {
	switch cfg.EmailProviderName() {
	case config.EmailResend:
		return email.NewResendSender(cfg.ResendAPIKey, cfg.ResendFromEmail), nil
	case config.EmailSMTP:
		sender, err := email.NewSMTPSender(email.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.ResendFromEmail,
		})
		if err != nil {
			return nil, err
		}
		return sender, nil
	case config.EmailLog:
		return email.NewLogSender(logger, cfg.ResendFromEmail), nil
	default:
		return nil, nil
	}
}

// ConfigFromEnv translates server settings into a factory Config
func ConfigFromEnv(cfg *config.Config, logger *slog.Logger) (Config, error) {
	hash := []byte(cfg.AdminCodeHash)
	if len(hash) == 0 {
		var err error
		hash, err = auth.HashCode(cfg.AdminCode)
		if err != nil {
			return Config{}, fmt.Errorf("hashing admin code: %w", err)
		}
	}

	sender, err := NewSender(cfg, logger)
	if err != nil {
		return Config{}, err
	}

	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = cfg.RedisURL
	redisCfg.KeyPrefix = cfg.RedisKeyPrefix

	return Config{
		Logger:        logger,
		StorageType:   cfg.StorageType,
		RedisConfig:   &redisCfg,
		DatabaseURL:   cfg.DatabaseURL,
		RedisSessions: cfg.SessionStore == config.SessionStoreRedis,
		SecureCookies: cfg.IsProduction(),
		AdminCodeHash: hash,
		Sender:        sender,
	}, nil
}
