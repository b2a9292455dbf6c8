// Package services contains the application services of the pastebin
// client: paste browsing and mutation, and the two-step file upload.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pastebin/internal/client/client"
	"github.com/dmitrijs2005/pastebin/internal/client/models"
	"github.com/dmitrijs2005/pastebin/internal/client/session"
	"github.com/dmitrijs2005/pastebin/internal/common"
	"github.com/dmitrijs2005/pastebin/internal/logging"
)

const defaultLanguage = "plaintext"

// DefaultPublicLimit caps the anonymous dashboard query.
const DefaultPublicLimit = 100

// PasteService orchestrates gateway calls around the session state.
type PasteService struct {
	client      client.Client
	session     *session.Manager
	log         logging.Logger
	publicLimit int
}

func NewPasteService(c client.Client, s *session.Manager, log logging.Logger) *PasteService {
	return &PasteService{
		client:      c,
		session:     s,
		log:         log.With("component", "pastes"),
		publicLimit: DefaultPublicLimit,
	}
}

// List returns the dashboard collection. Authenticated sessions get the
// backend's already access-controlled result set and nothing else: adding
// a second public query on top would duplicate rows.
func (s *PasteService) List(ctx context.Context) ([]models.Paste, error) {
	snap := s.session.Snapshot()
	if snap.Authenticated {
		return s.client.GetMyPastes(ctx, snap.Credentials.Username, snap.Credentials.Digest)
	}
	return s.client.GetPublicPastes(ctx, s.publicLimit)
}

// Get returns a single paste the current session may see.
func (s *PasteService) Get(ctx context.Context, id string) (*models.Paste, error) {
	if id == "" {
		return nil, common.ErrNotFound
	}
	snap := s.session.Snapshot()
	if snap.Authenticated {
		return s.client.GetPaste(ctx, snap.Credentials.Username, snap.Credentials.Digest, id)
	}
	return s.client.GetPublicPaste(ctx, id)
}

// Create submits a new paste. The session must be authenticated; the
// gateway is not called otherwise.
func (s *PasteService) Create(ctx context.Context, req models.CreateRequest) (string, error) {
	snap := s.session.Snapshot()
	if !snap.Authenticated {
		return "", fmt.Errorf("%w: log in to create pastes", common.ErrUnauthorized)
	}

	if req.Content == "" && req.StoragePath == "" {
		return "", fmt.Errorf("%w: content cannot be empty", common.ErrRejected)
	}
	if req.Language == "" {
		req.Language = defaultLanguage
	}

	id, err := s.client.CreatePaste(ctx, snap.Credentials.Username, snap.Credentials.Digest, req)
	if err != nil {
		return "", err
	}

	s.log.Info(ctx, "paste created", "id", id, "public", req.IsPublic)
	return id, nil
}

// Delete removes a paste. The backend independently verifies ownership;
// the local check here is only the authenticated pre-condition.
func (s *PasteService) Delete(ctx context.Context, id string) error {
	snap := s.session.Snapshot()
	if !snap.Authenticated {
		return fmt.Errorf("%w: log in to delete pastes", common.ErrUnauthorized)
	}

	if err := s.client.DeletePaste(ctx, snap.Credentials.Username, snap.Credentials.Digest, id); err != nil {
		return err
	}

	s.log.Info(ctx, "paste deleted", "id", id)
	return nil
}

// CanDelete reports whether the delete action should be offered for p.
// This is presentation-level defense in depth; the backend remains the
// authority on ownership.
func (s *PasteService) CanDelete(p *models.Paste) bool {
	if p == nil {
		return false
	}
	snap := s.session.Snapshot()
	return snap.Authenticated && snap.Username() == p.Author
}
