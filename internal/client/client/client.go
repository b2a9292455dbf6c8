// Package client implements the remote gateway the application talks to:
// the credential verifier and the paste stored procedures exposed by the
// backend, plus the anonymous filtered read path for public pastes.
package client

import (
	"context"

	"github.com/dmitrijs2005/pastebin/internal/client/models"
)

// Client is the paste access gateway.
//
// Authorization note: the read procedures return result sets that are
// already access-controlled server-side. Callers must not filter or union
// result sets client-side.
type Client interface {
	// VerifyLogin checks a username/digest pair against the backend.
	VerifyLogin(ctx context.Context, username, digest string) (bool, error)

	// GetMyPastes returns every paste visible to the authenticated user:
	// all of their own (public and private) plus all public pastes.
	GetMyPastes(ctx context.Context, username, digest string) ([]models.Paste, error)

	// GetPublicPastes returns up to limit public pastes, newest first.
	// Callable without a session.
	GetPublicPastes(ctx context.Context, limit int) ([]models.Paste, error)

	// GetPaste returns a single paste the credentials are allowed to see.
	// "does not exist" and "not allowed" both come back as ErrNotFound.
	GetPaste(ctx context.Context, username, digest, id string) (*models.Paste, error)

	// GetPublicPaste returns a single public paste without a session.
	GetPublicPaste(ctx context.Context, id string) (*models.Paste, error)

	// CreatePaste creates a paste owned by the credentials and returns its id.
	CreatePaste(ctx context.Context, username, digest string, req models.CreateRequest) (string, error)

	// DeletePaste deletes a paste. Ownership is verified by the backend.
	DeletePaste(ctx context.Context, username, digest, id string) error

	Close() error
}
