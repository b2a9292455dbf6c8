package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/pastebin/internal/client/models"
	"github.com/dmitrijs2005/pastebin/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/pastebin/internal/common"
	"github.com/dmitrijs2005/pastebin/internal/cryptox"
	"github.com/dmitrijs2005/pastebin/internal/logging"
)

// Manager owns the session. Initialize, Login and Logout are the only
// writers; everyone else reads snapshots. At most one credentials value is
// held at a time.
type Manager struct {
	verifier Verifier
	store    credentials.Repository
	log      logging.Logger

	mu    sync.Mutex
	creds *models.Credentials
	auth  bool
	pend  bool
	// gen orders login attempts: a result whose generation is no longer
	// current loses to whatever bumped it and is discarded.
	gen uint64

	initOnce sync.Once
	initErr  error
}

func NewManager(verifier Verifier, store credentials.Repository, log logging.Logger) *Manager {
	return &Manager{
		verifier: verifier,
		store:    store,
		log:      log.With("component", "session"),
		pend:     true,
	}
}

// Snapshot returns a copy of the current session state.
func (m *Manager) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Session{Authenticated: m.auth, Pending: m.pend}
	if m.creds != nil {
		c := *m.creds
		s.Credentials = &c
	}
	return s
}

// Initialize revalidates any persisted credentials against the remote
// verifier. It runs its body exactly once per Manager; later calls return
// the first outcome. Whatever happens, the pending flag is cleared.
//
// A persisted pair that fails revalidation (or cannot be checked at all)
// is discarded from durable storage entirely.
func (m *Manager) Initialize(ctx context.Context) error {
	m.initOnce.Do(func() { m.initErr = m.initialize(ctx) })
	return m.initErr
}

func (m *Manager) initialize(ctx context.Context) error {
	defer func() {
		m.mu.Lock()
		m.pend = false
		m.mu.Unlock()
	}()

	creds, err := m.store.Load(ctx)
	if err != nil {
		m.log.Warn(ctx, "could not read saved credentials", "error", err)
		return nil
	}
	if creds == nil {
		return nil
	}

	ok, err := m.verifier.VerifyLogin(ctx, creds.Username, creds.Digest)
	if err != nil || !ok {
		if err != nil {
			m.log.Warn(ctx, "credential revalidation failed", "error", err)
		} else {
			m.log.Info(ctx, "saved credentials are no longer valid", "username", creds.Username)
		}
		if clearErr := m.store.Clear(ctx); clearErr != nil {
			return fmt.Errorf("clearing stale credentials: %w", clearErr)
		}
		return nil
	}

	m.mu.Lock()
	m.creds = creds
	m.auth = true
	m.mu.Unlock()

	m.log.Info(ctx, "session restored", "username", creds.Username)
	return nil
}

// Login verifies the username and raw password against the backend. The
// digest is computed locally and the password buffer is wiped before any
// network call; the plaintext never leaves the process.
//
// On success the credentials are persisted for the next run. On failure —
// whether the verifier said no or the call never completed — the session
// and durable storage are left untouched and a generic unauthorized error
// is returned, so callers cannot tell which usernames exist.
func (m *Manager) Login(ctx context.Context, username string, password []byte) error {
	digest := cryptox.PasswordDigest(password)
	cryptox.WipeByteArray(password)

	if username == "" {
		return common.ErrUnauthorized
	}

	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.mu.Unlock()

	ok, err := m.verifier.VerifyLogin(ctx, username, digest)

	m.mu.Lock()
	stale := gen != m.gen
	m.mu.Unlock()
	if stale {
		return ErrSuperseded
	}

	if err != nil {
		m.log.Warn(ctx, "login attempt failed", "username", username, "error", err)
		return common.ErrUnauthorized
	}
	if !ok {
		m.log.Info(ctx, "login rejected", "username", username)
		return common.ErrUnauthorized
	}

	creds := models.Credentials{Username: username, Digest: digest}

	m.mu.Lock()
	if gen != m.gen {
		m.mu.Unlock()
		return ErrSuperseded
	}
	m.creds = &creds
	m.auth = true
	m.mu.Unlock()

	if err := m.store.Save(ctx, creds); err != nil {
		// The in-memory session is valid either way; only the next run
		// loses the convenience of a restored login.
		m.log.Warn(ctx, "could not persist credentials", "error", err)
	}

	m.log.Info(ctx, "login successful", "username", username)
	return nil
}

// Logout clears the in-memory session and erases persisted credentials.
// It never fails: storage errors are logged and swallowed.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.gen++
	m.creds = nil
	m.auth = false
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn(ctx, "could not clear saved credentials", "error", err)
	}
	m.log.Info(ctx, "logged out")
}
