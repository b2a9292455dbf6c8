// Package cli implements the interactive pastebin client.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/pastebin/internal/client/client"
	"github.com/dmitrijs2005/pastebin/internal/client/config"
	"github.com/dmitrijs2005/pastebin/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/pastebin/internal/client/services"
	"github.com/dmitrijs2005/pastebin/internal/client/session"
	"github.com/dmitrijs2005/pastebin/internal/client/storage"
	"github.com/dmitrijs2005/pastebin/internal/common"
	"github.com/dmitrijs2005/pastebin/internal/logging"

	_ "modernc.org/sqlite"
)

const maxUploadSize = 10 << 20 // 10 MiB, matching the backend's bucket policy

type App struct {
	config   *config.Config
	api      client.Client
	store    storage.Store
	session  *session.Manager
	pastes   *services.PasteService
	uploader *services.Uploader
	log      logging.Logger
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := credentials.InitDatabase(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("initializing local database: %w", err)
	}

	api, err := client.NewRESTClient(cfg.BaseURL, cfg.PublishableKey, cfg.RequestTimeout, log)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewS3Store(ctx, storage.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.StorageBucket,
	})
	if err != nil {
		return nil, err
	}

	sess := session.NewManager(api, credentials.NewSQLiteRepository(db), log)
	pastes := services.NewPasteService(api, sess, log)

	return &App{
		config:   cfg,
		api:      api,
		store:    store,
		session:  sess,
		pastes:   pastes,
		uploader: services.NewUploader(store, pastes, sess, log),
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	defer func() { _ = a.api.Close() }()

	// The session must be resolved before the first prompt renders, so
	// privileged commands never see the pending state.
	initCtx, cancel := a.withTimeout(ctx)
	err := a.session.Initialize(initCtx)
	cancel()
	if err != nil {
		a.log.Warn(ctx, "session initialization failed", "error", err)
	}

	a.Root(ctx)
	return nil
}

// withTimeout bounds a single backend interaction.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

// printError translates a failure into the message shown to the user.
// Rejections carry the backend's reason; transport failures get a generic
// retry hint and are never retried automatically.
func (a *App) printError(action string, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		fmt.Fprintln(a.out, "Paste not found or you don't have access.")
	case errors.Is(err, common.ErrUnauthorized):
		fmt.Fprintln(a.out, "You must be logged in to do that.")
	case errors.Is(err, common.ErrRejected):
		fmt.Fprintf(a.out, "Could not %s: %v\n", action, err)
	case errors.Is(err, common.ErrUnavailable):
		fmt.Fprintf(a.out, "Failed to %s. Check your connection and try again.\n", action)
	default:
		fmt.Fprintf(a.out, "Could not %s: %v\n", action, err)
	}
}
