package factory

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/jumpigames/newsletter/internal/config"
	"github.com/jumpigames/newsletter/internal/email"
	"github.com/jumpigames/newsletter/internal/services/newsletter"
	redisstorage "github.com/jumpigames/newsletter/internal/storage/redis"
	"github.com/jumpigames/newsletter/internal/storage/sqldb"
	"github.com/jumpigames/newsletter/internal/testutil"
)

func testHash(t *testing.T) []byte {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("3281"), bcrypt.MinCost)
	require.NoError(t, err)
	return hash
}

func TestNew_DefaultsToMemory(t *testing.T) {
	app, err := New(Config{AdminCodeHash: testHash(t)})
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	assert.NotNil(t, app.Storage)
	assert.NotNil(t, app.Sessions)
	assert.Nil(t, app.Sender)
}

func TestNew_RequiresAdminHash(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNew_RejectsUnknownStorage(t *testing.T) {
	_, err := New(Config{AdminCodeHash: testHash(t), StorageType: "mongo"})
	assert.ErrorContains(t, err, "invalid StorageType")
}

func TestNew_SQLiteStorage(t *testing.T) {
	app, err := New(Config{AdminCodeHash: testHash(t), StorageType: config.StorageSQLite, DatabaseURL: ":memory:"})
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	assert.IsType(t, &sqldb.Storage{}, app.Storage)
}

func TestNew_RedisStorageSharesClientWithSessions(t *testing.T) {
	mini := miniredis.RunT(t)
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = "redis://" + mini.Addr()

	app, err := New(Config{
		AdminCodeHash: testHash(t),
		StorageType:   config.StorageRedis,
		RedisConfig:   &redisCfg,
		RedisSessions: true,
	})
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	assert.IsType(t, &redisstorage.Storage{}, app.Storage)
	assert.Len(t, app.closers, 1)
}

func TestNew_RedisSessionsWithMemoryStorage(t *testing.T) {
	mini := miniredis.RunT(t)
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = "redis://" + mini.Addr()

	app, err := New(Config{
		AdminCodeHash: testHash(t),
		RedisConfig:   &redisCfg,
		RedisSessions: true,
	})
	require.NoError(t, err)
	assert.Len(t, app.closers, 2)
	assert.NoError(t, app.Close())
}

func TestConfigFromEnv(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"ENV":            "production",
		"EMAIL_PROVIDER": "log",
		"SESSION_STORE":  "redis",
	})
	require.NoError(t, err)

	fc, err := ConfigFromEnv(cfg, testutil.NopLogger())
	require.NoError(t, err)

	assert.True(t, fc.SecureCookies)
	assert.True(t, fc.RedisSessions)
	assert.IsType(t, &email.LogSender{}, fc.Sender)
	assert.NoError(t, bcrypt.CompareHashAndPassword(fc.AdminCodeHash, []byte("3281")))
}

func TestConfigFromEnv_PrefersHash(t *testing.T) {
	hash := testHash(t)
	cfg, err := config.LoadFrom(map[string]string{"ADMIN_CODE_HASH": string(hash)})
	require.NoError(t, err)

	fc, err := ConfigFromEnv(cfg, testutil.NopLogger())
	require.NoError(t, err)
	assert.Equal(t, hash, fc.AdminCodeHash)
}

func TestNewSender(t *testing.T) {
	tests := map[string]struct {
		environ map[string]string
		want    any
	}{
		"none":   {map[string]string{}, nil},
		"resend": {map[string]string{"RESEND_API_KEY": "re_123"}, &email.ResendSender{}},
		"smtp":   {map[string]string{"EMAIL_PROVIDER": "smtp", "SMTP_HOST": "mail.example.com"}, &email.SMTPSender{}},
		"log":    {map[string]string{"EMAIL_PROVIDER": "log"}, &email.LogSender{}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := config.LoadFrom(tt.environ)
			require.NoError(t, err)

			sender, err := NewSender(cfg, testutil.NopLogger())
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, sender)
				return
			}
			assert.IsType(t, tt.want, sender)
		})
	}
}

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: signups flow through to stats and a broadcast
func (s *IntegrationSuite) TestSignupToBroadcastFlow() {
	s.app.MockRandom.QueueID("sub-1", "sub-2")

	_, err := s.app.NewsletterController.Subscribe(s.ctx, newsletter.SubscribeInput{
		FullName: "Dana", Email: "dana@example.com", ParentGroup: true, Agree: true, AgreedToTerms: true,
	})
	s.Require().NoError(err)

	_, err = s.app.NewsletterController.Subscribe(s.ctx, newsletter.SubscribeInput{
		FullName: "Noam", Email: "noam@example.com", PlayerGroup: true, Agree: true,
	})
	s.Require().NoError(err)

	stats, err := s.app.NewsletterController.Stats(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, stats.Total)
	s.Equal(2, stats.Today)

	s.app.MockSender.FailFor["noam@example.com"] = true
	result, err := s.app.BroadcastService.Send(s.ctx, email.Update{Subject: "חדשות", Message: "שלום"})
	s.Require().NoError(err)
	s.Equal(1, result.Sent)
	s.Equal(1, result.Failed)
	s.Equal(2, s.app.MockSender.Attempts)
}

func (s *IntegrationSuite) TestAppWithoutSender() {
	app := NewTestAppWithoutSender()
	s.False(app.BroadcastService.Configured())
	s.Nil(app.Sender)
}
