// Package storage writes uploaded files into the backend's binary object
// store and produces signed read links for them.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pastebin/internal/filex"
)

// Store is the object store used for file uploads.
type Store interface {
	// Put writes data under key with the given content type.
	Put(ctx context.Context, key, contentType string, data []byte) error

	// SignedGetURL returns a time-limited download URL for key.
	SignedGetURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// ObjectKey builds the store key for an upload: namespaced by owner and
// prefixed with a millisecond timestamp so concurrent uploads of the same
// filename cannot collide.
func ObjectKey(username, filename string, now time.Time) string {
	return fmt.Sprintf("%s/%d_%s", username, now.UnixMilli(), filex.SanitizeFileName(filename))
}
