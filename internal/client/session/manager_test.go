package session

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/pastebin/internal/client/models"
	"github.com/dmitrijs2005/pastebin/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/pastebin/internal/common"
	"github.com/dmitrijs2005/pastebin/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

type fakeVerifier struct {
	fn    func(ctx context.Context, username, digest string) (bool, error)
	calls int
}

func (f *fakeVerifier) VerifyLogin(ctx context.Context, username, digest string) (bool, error) {
	f.calls++
	return f.fn(ctx, username, digest)
}

func acceptAll(ctx context.Context, username, digest string) (bool, error) { return true, nil }
func rejectAll(ctx context.Context, username, digest string) (bool, error) { return false, nil }

func setupStore(t *testing.T) *credentials.SQLiteRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE credentials (key TEXT PRIMARY KEY, value TEXT NOT NULL);`)
	require.NoError(t, err)
	return credentials.NewSQLiteRepository(db)
}

func TestManager_PendingUntilInitialized(t *testing.T) {
	m := NewManager(&fakeVerifier{fn: acceptAll}, setupStore(t), logging.NewNop())

	assert.True(t, m.Snapshot().Pending)
	require.NoError(t, m.Initialize(context.Background()))
	assert.False(t, m.Snapshot().Pending)
}

func TestInitialize_EmptyStore_StaysUnauthenticated(t *testing.T) {
	v := &fakeVerifier{fn: acceptAll}
	m := NewManager(v, setupStore(t), logging.NewNop())

	require.NoError(t, m.Initialize(context.Background()))

	s := m.Snapshot()
	assert.False(t, s.Authenticated)
	assert.Nil(t, s.Credentials)
	assert.Zero(t, v.calls, "nothing stored, nothing to verify")
}

func TestInitialize_ValidSavedCredentials_RestoresSession(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, models.Credentials{Username: "alice", Digest: "d1"}))

	m := NewManager(&fakeVerifier{fn: acceptAll}, store, logging.NewNop())
	require.NoError(t, m.Initialize(ctx))

	s := m.Snapshot()
	assert.True(t, s.Authenticated)
	assert.Equal(t, "alice", s.Username())
	assert.Equal(t, "d1", s.Credentials.Digest)
}

func TestInitialize_RejectedCredentials_ClearsStorage(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, models.Credentials{Username: "alice", Digest: "stale"}))

	m := NewManager(&fakeVerifier{fn: rejectAll}, store, logging.NewNop())
	require.NoError(t, m.Initialize(ctx))

	assert.False(t, m.Snapshot().Authenticated)

	saved, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, saved, "stale credentials must be erased")
}

func TestInitialize_VerifierError_ClearsStorage(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, models.Credentials{Username: "alice", Digest: "d1"}))

	v := &fakeVerifier{fn: func(ctx context.Context, u, d string) (bool, error) {
		return false, errors.New("network down")
	}}
	m := NewManager(v, store, logging.NewNop())
	require.NoError(t, m.Initialize(ctx))

	assert.False(t, m.Snapshot().Authenticated)
	saved, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestInitialize_RunsExactlyOnce(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, models.Credentials{Username: "alice", Digest: "d1"}))

	v := &fakeVerifier{fn: acceptAll}
	m := NewManager(v, store, logging.NewNop())

	require.NoError(t, m.Initialize(ctx))
	require.NoError(t, m.Initialize(ctx))
	assert.Equal(t, 1, v.calls)
}

func TestLogin_Success_PersistsAndAuthenticates(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	var seenDigest string
	v := &fakeVerifier{fn: func(ctx context.Context, u, d string) (bool, error) {
		seenDigest = d
		return true, nil
	}}
	m := NewManager(v, store, logging.NewNop())
	require.NoError(t, m.Initialize(ctx))

	require.NoError(t, m.Login(ctx, "alice", []byte("secret123")))

	s := m.Snapshot()
	assert.True(t, s.Authenticated)
	assert.Equal(t, "alice", s.Username())
	assert.Equal(t, "fcf730b6d95236ecd3c9fc2d92d7b6b2bb061514961aec041d6c7a7192f592e4", seenDigest)

	saved, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "alice", saved.Username)
	assert.Equal(t, seenDigest, saved.Digest)
}

func TestLogin_WipesPasswordBuffer(t *testing.T) {
	m := NewManager(&fakeVerifier{fn: acceptAll}, setupStore(t), logging.NewNop())

	password := []byte("secret123")
	require.NoError(t, m.Login(context.Background(), "alice", password))
	for _, b := range password {
		require.Zero(t, b)
	}
}

func TestLogin_Rejected_LeavesStorageUntouched(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, models.Credentials{Username: "alice", Digest: "d1"}))

	m := NewManager(&fakeVerifier{fn: rejectAll}, store, logging.NewNop())

	err := m.Login(ctx, "mallory", []byte("guess"))
	require.ErrorIs(t, err, common.ErrUnauthorized)

	// Only initialize-failure and logout clear storage; a failed login
	// must not.
	saved, loadErr := store.Load(ctx)
	require.NoError(t, loadErr)
	require.NotNil(t, saved)
	assert.Equal(t, "alice", saved.Username)
}

func TestLogin_TransportError_IndistinguishableFromRejection(t *testing.T) {
	m := NewManager(&fakeVerifier{fn: func(ctx context.Context, u, d string) (bool, error) {
		return false, errors.New("connection refused")
	}}, setupStore(t), logging.NewNop())

	rejectedErr := m.Login(context.Background(), "alice", []byte("pw"))
	require.ErrorIs(t, rejectedErr, common.ErrUnauthorized)
	assert.NotContains(t, rejectedErr.Error(), "connection refused")
}

func TestLoginThenFreshInitialize_RestoresSession(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	first := NewManager(&fakeVerifier{fn: acceptAll}, store, logging.NewNop())
	require.NoError(t, first.Login(ctx, "alice", []byte("secret123")))

	// Fresh context over the same durable storage, as on the next run.
	second := NewManager(&fakeVerifier{fn: acceptAll}, store, logging.NewNop())
	require.NoError(t, second.Initialize(ctx))

	s := second.Snapshot()
	assert.True(t, s.Authenticated)
	assert.Equal(t, "alice", s.Username())
}

func TestLogout_ClearsEverything(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	m := NewManager(&fakeVerifier{fn: acceptAll}, store, logging.NewNop())
	require.NoError(t, m.Login(ctx, "alice", []byte("secret123")))

	m.Logout(ctx)

	s := m.Snapshot()
	assert.False(t, s.Authenticated)
	assert.Nil(t, s.Credentials)

	second := NewManager(&fakeVerifier{fn: acceptAll}, store, logging.NewNop())
	require.NoError(t, second.Initialize(ctx))
	assert.False(t, second.Snapshot().Authenticated)
}

func TestLogin_StaleResultIsDiscarded(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	release := make(chan struct{})
	v := &fakeVerifier{fn: func(ctx context.Context, u, d string) (bool, error) {
		if u == "slow" {
			<-release
		}
		return true, nil
	}}
	m := NewManager(v, store, logging.NewNop())

	slowDone := make(chan error, 1)
	go func() {
		slowDone <- m.Login(ctx, "slow", []byte("pw1"))
	}()

	// Give the slow attempt time to capture its generation.
	time.Sleep(20 * time.Millisecond)

	require.NoError(t, m.Login(ctx, "fast", []byte("pw2")))
	close(release)

	err := <-slowDone
	require.ErrorIs(t, err, ErrSuperseded)

	s := m.Snapshot()
	assert.Equal(t, "fast", s.Username())

	saved, loadErr := store.Load(ctx)
	require.NoError(t, loadErr)
	assert.Equal(t, "fast", saved.Username, "the stale attempt must not persist anything")
}

func TestLogin_SupersededByLogout(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	release := make(chan struct{})
	v := &fakeVerifier{fn: func(ctx context.Context, u, d string) (bool, error) {
		<-release
		return true, nil
	}}
	m := NewManager(v, store, logging.NewNop())

	done := make(chan error, 1)
	go func() {
		done <- m.Login(ctx, "alice", []byte("pw"))
	}()
	time.Sleep(20 * time.Millisecond)

	m.Logout(ctx)
	close(release)

	require.ErrorIs(t, <-done, ErrSuperseded)
	assert.False(t, m.Snapshot().Authenticated)

	saved, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, saved)
}
