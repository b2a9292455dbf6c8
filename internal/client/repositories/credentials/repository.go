// Package credentials persists the saved login (username + password digest)
// across client runs. Both values are written in a single transaction and
// read back together, so storage never holds only one of the two.
package credentials

import (
	"context"

	"github.com/dmitrijs2005/pastebin/internal/client/models"
)

// Repository is the durable Credential Store.
//
// Contract:
//   - Load returns (nil, nil) when nothing usable is stored. A partially
//     stored pair counts as nothing usable.
//   - Save persists username and digest atomically.
//   - Clear removes everything and is idempotent.
type Repository interface {
	Load(ctx context.Context) (*models.Credentials, error)
	Save(ctx context.Context, creds models.Credentials) error
	Clear(ctx context.Context) error
}
