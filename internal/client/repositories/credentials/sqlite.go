package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pastebin/internal/client/models"
	"github.com/dmitrijs2005/pastebin/internal/dbx"
)

const (
	keyUsername = "username"
	keyDigest   = "digest"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) get(ctx context.Context, q dbx.DBTX, key string) (string, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credentials[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) set(ctx context.Context, q dbx.DBTX, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO credentials (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set credentials[%s]: %w", key, err)
	}
	return nil
}

// Load returns the stored pair, or (nil, nil) when either half is missing.
func (r *SQLiteRepository) Load(ctx context.Context) (*models.Credentials, error) {
	username, err := r.get(ctx, r.db, keyUsername)
	if err != nil {
		return nil, err
	}
	digest, err := r.get(ctx, r.db, keyDigest)
	if err != nil {
		return nil, err
	}

	creds := models.Credentials{Username: username, Digest: digest}
	if !creds.Valid() {
		return nil, nil
	}
	return &creds, nil
}

// Save writes both halves in one transaction.
func (r *SQLiteRepository) Save(ctx context.Context, creds models.Credentials) error {
	if !creds.Valid() {
		return fmt.Errorf("refusing to save partial credentials")
	}
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := r.set(ctx, tx, keyUsername, creds.Username); err != nil {
			return err
		}
		return r.set(ctx, tx, keyDigest, creds.Digest)
	})
}

// Clear removes all stored credentials.
func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM credentials`)
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
