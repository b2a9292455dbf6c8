package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/pastebin/internal/client/models"
	"github.com/dmitrijs2005/pastebin/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/pastebin/internal/client/session"
	"github.com/dmitrijs2005/pastebin/internal/common"
	"github.com/dmitrijs2005/pastebin/internal/cryptox"
	"github.com/dmitrijs2005/pastebin/internal/logging"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// fakeGateway is an in-memory stand-in for the backend that enforces the
// same access rules the stored procedures do.
type fakeGateway struct {
	users  map[string]string // username -> digest
	pastes map[string]models.Paste
	nextID int

	failAll       bool
	myPastesCalls int
	publicCalls   int
	createCalls   int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		users:  map[string]string{},
		pastes: map[string]models.Paste{},
	}
}

func (g *fakeGateway) authorized(username, digest string) bool {
	d, ok := g.users[username]
	return ok && d == digest
}

func (g *fakeGateway) VerifyLogin(ctx context.Context, username, digest string) (bool, error) {
	if g.failAll {
		return false, common.ErrUnavailable
	}
	return g.authorized(username, digest), nil
}

func (g *fakeGateway) GetMyPastes(ctx context.Context, username, digest string) ([]models.Paste, error) {
	g.myPastesCalls++
	if g.failAll {
		return nil, common.ErrUnavailable
	}
	if !g.authorized(username, digest) {
		return nil, common.ErrUnauthorized
	}
	var out []models.Paste
	for _, p := range g.pastes {
		if p.Author == username || p.IsPublic {
			out = append(out, p)
		}
	}
	return out, nil
}

func (g *fakeGateway) GetPublicPastes(ctx context.Context, limit int) ([]models.Paste, error) {
	g.publicCalls++
	if g.failAll {
		return nil, common.ErrUnavailable
	}
	var out []models.Paste
	for _, p := range g.pastes {
		if p.IsPublic {
			out = append(out, p)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (g *fakeGateway) GetPaste(ctx context.Context, username, digest, id string) (*models.Paste, error) {
	if g.failAll {
		return nil, common.ErrUnavailable
	}
	if !g.authorized(username, digest) {
		return nil, common.ErrUnauthorized
	}
	p, ok := g.pastes[id]
	if !ok || (!p.IsPublic && p.Author != username) {
		return nil, common.ErrNotFound
	}
	return &p, nil
}

func (g *fakeGateway) GetPublicPaste(ctx context.Context, id string) (*models.Paste, error) {
	if g.failAll {
		return nil, common.ErrUnavailable
	}
	p, ok := g.pastes[id]
	if !ok || !p.IsPublic {
		return nil, common.ErrNotFound
	}
	return &p, nil
}

func (g *fakeGateway) CreatePaste(ctx context.Context, username, digest string, req models.CreateRequest) (string, error) {
	g.createCalls++
	if g.failAll {
		return "", common.ErrUnavailable
	}
	if !g.authorized(username, digest) {
		return "", common.ErrUnauthorized
	}
	g.nextID++
	id := fmt.Sprintf("p%d", g.nextID)
	g.pastes[id] = models.Paste{
		ID:          id,
		Title:       req.Title,
		Content:     req.Content,
		Description: req.Description,
		Language:    req.Language,
		IsPublic:    req.IsPublic,
		Author:      username,
		CreatedAt:   time.Now(),
		MimeType:    req.MimeType,
		StoragePath: req.StoragePath,
	}
	return id, nil
}

func (g *fakeGateway) DeletePaste(ctx context.Context, username, digest, id string) error {
	if g.failAll {
		return common.ErrUnavailable
	}
	if !g.authorized(username, digest) {
		return common.ErrUnauthorized
	}
	p, ok := g.pastes[id]
	if !ok {
		return common.ErrNotFound
	}
	if p.Author != username {
		return fmt.Errorf("%w: not the owner", common.ErrRejected)
	}
	delete(g.pastes, id)
	return nil
}

func (g *fakeGateway) Close() error { return nil }

// fakeStore is an in-memory object store.
type fakeStore struct {
	objects map[string][]byte
	types   map[string]string
	failPut bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *fakeStore) Put(ctx context.Context, key, contentType string, data []byte) error {
	if s.failPut {
		return fmt.Errorf("%w: bucket unreachable", common.ErrUnavailable)
	}
	s.objects[key] = data
	s.types[key] = contentType
	return nil
}

func (s *fakeStore) SignedGetURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if _, ok := s.objects[key]; !ok {
		return "", common.ErrNotFound
	}
	return "https://store.example/" + key + "?signed=1", nil
}

func newSessionStore(t *testing.T) *credentials.SQLiteRepository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE credentials (key TEXT PRIMARY KEY, value TEXT NOT NULL);`)
	require.NoError(t, err)
	return credentials.NewSQLiteRepository(db)
}

// newLoggedInManager returns a session authenticated as username against g.
func newLoggedInManager(t *testing.T, g *fakeGateway, username, password string) *session.Manager {
	t.Helper()
	m := session.NewManager(g, newSessionStore(t), logging.NewNop())
	require.NoError(t, m.Initialize(context.Background()))
	require.NoError(t, m.Login(context.Background(), username, []byte(password)))
	return m
}

// newAnonymousManager returns an initialized, unauthenticated session.
func newAnonymousManager(t *testing.T, g *fakeGateway) *session.Manager {
	t.Helper()
	m := session.NewManager(g, newSessionStore(t), logging.NewNop())
	require.NoError(t, m.Initialize(context.Background()))
	return m
}

// registerUser seeds the fake backend with a username/password pair the
// way the real registration procedure would.
func registerUser(g *fakeGateway, username, password string) {
	g.users[username] = digestOf(password)
}

func digestOf(password string) string {
	return cryptox.PasswordDigest([]byte(password))
}
