package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/outthegc/gc-cli/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	cfg := viper.New()
	cfg.Set("session.path", filepath.Join(t.TempDir(), "session.toml"))

	store, err := NewStore(cfg)
	require.NoError(t, err)
	return store
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	saved := domain.Session{TripID: "trip-a", MemberID: "m-1"}
	require.NoError(t, store.Save(ctx, saved))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "trip-a", loaded.TripID)
	assert.Equal(t, "m-1", loaded.MemberID)
	assert.Equal(t, domain.SessionSchemaVersion, loaded.Version)
}

func TestLoadWithoutFileReturnsNoSession(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestLoadTreatsUnknownSchemaVersionAsNoSession(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.sessionPath), 0o700))
	require.NoError(t, os.WriteFile(store.sessionPath,
		[]byte("version = 99\ntrip_id = \"trip-a\"\nmember_id = \"m-1\"\n"), 0o600))

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestLoadTreatsIncompleteFileAsNoSession(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.sessionPath), 0o700))
	require.NoError(t, os.WriteFile(store.sessionPath,
		[]byte("version = 1\ntrip_id = \"trip-a\"\n"), 0o600))

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.sessionPath), 0o700))
	require.NoError(t, os.WriteFile(store.sessionPath, []byte("not = [valid"), 0o600))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoSession)
}

func TestSaveRejectsIncompleteSession(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)

	assert.Error(t, store.Save(context.Background(), domain.Session{TripID: "trip-a"}))
	assert.Error(t, store.Save(context.Background(), domain.Session{MemberID: "m-1"}))
}

func TestSaveWritesWithRestrictivePermissions(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	require.NoError(t, store.Save(context.Background(), domain.Session{TripID: "trip-a", MemberID: "m-1"}))

	info, err := os.Stat(store.sessionPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSaveOverwritesPreviousSession(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Session{TripID: "trip-a", MemberID: "m-1"}))
	require.NoError(t, store.Save(ctx, domain.Session{TripID: "trip-b", MemberID: "m-2"}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "trip-b", loaded.TripID)
	assert.Equal(t, "m-2", loaded.MemberID)

	// The atomic rename leaves no temp files behind.
	entries, err := os.ReadDir(filepath.Dir(store.sessionPath))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestClearRemovesSessionAndIsIdempotent(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Session{TripID: "trip-a", MemberID: "m-1"}))
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestCancelledContextShortCircuits(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Save(ctx, domain.Session{TripID: "t", MemberID: "m"}), context.Canceled)
	assert.ErrorIs(t, store.Clear(ctx), context.Canceled)
}
