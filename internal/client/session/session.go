// Package session maintains the single authoritative authentication state
// of the running client and gates every privileged operation on it.
package session

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/pastebin/internal/client/models"
)

// ErrSuperseded is returned by Login when a newer login or logout started
// while the attempt was in flight; the stale result is discarded.
var ErrSuperseded = errors.New("login superseded by a newer attempt")

// Verifier validates a username/digest pair remotely.
type Verifier interface {
	VerifyLogin(ctx context.Context, username, digest string) (bool, error)
}

// Session is a point-in-time snapshot of the authentication state.
//
// Invariant: Authenticated implies Credentials is non-nil and was last
// validated successfully by the remote verifier. Pending is true only
// between construction and the completion of Initialize; privileged state
// must not be read while it is set.
type Session struct {
	Credentials   *models.Credentials
	Authenticated bool
	Pending       bool
}

// Username returns the logged-in username, or "" when unauthenticated.
func (s Session) Username() string {
	if !s.Authenticated || s.Credentials == nil {
		return ""
	}
	return s.Credentials.Username
}
