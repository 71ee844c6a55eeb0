package sqldb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/jumpigames/newsletter/internal/model"
	"github.com/jumpigames/newsletter/internal/storage"
	"github.com/jumpigames/newsletter/internal/storage/storagetest"
)

func newSQLiteStorage(t *testing.T) *Storage {
	t.Helper()
	store, err := New(Config{Dialect: DialectSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	return store
}

type StorageSuite struct {
	storagetest.Suite
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.NewStorage = func() storage.Storage { return newSQLiteStorage(s.T()) }
	s.Suite.SetupTest()
}

// The CHECK constraint backs up the role validation in CreateSubscriber
func (s *StorageSuite) TestRoleCheckConstraint() {
	store := s.Storage.(*Storage)
	_, err := store.db.ExecContext(s.Ctx,
		"INSERT INTO subscribers (id, name, email, role, subscribed_at, agreed_to_terms) VALUES ($1, $2, $3, $4, $5, $6)",
		"sub-1", "Alice", "alice@example.com", "coach", time.Now().UTC(), true)
	s.Error(err)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := Open(Config{Dialect: DialectSQLite, DSN: ":memory:"})
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, Migrate(db, DialectSQLite))
	require.NoError(t, Migrate(db, DialectSQLite))

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM subscribers").Scan(&n))
	assert.Equal(t, 0, n)
}

func TestOpenRejectsUnknownDialect(t *testing.T) {
	_, err := Open(Config{Dialect: "oracle", DSN: "whatever"})
	assert.ErrorContains(t, err, "unsupported sql dialect")
}

func TestTimesAreReturnedInUTC(t *testing.T) {
	store := newSQLiteStorage(t)
	defer func() { _ = store.Close() }()

	loc := time.FixedZone("IDT", 3*60*60)
	at := time.Date(2024, 3, 10, 1, 0, 0, 0, loc)
	require.NoError(t, store.CreateSubscriber(t.Context(), &model.Subscriber{
		ID: "sub-1", Name: "Alice", Email: "alice@example.com", Role: model.RoleParent, SubscribedAt: at,
	}))

	got, err := store.GetSubscriberByEmail(t.Context(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, got.SubscribedAt.Location())
	assert.True(t, at.Equal(got.SubscribedAt))
}
