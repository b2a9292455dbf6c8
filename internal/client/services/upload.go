package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pastebin/internal/client/models"
	"github.com/dmitrijs2005/pastebin/internal/client/session"
	"github.com/dmitrijs2005/pastebin/internal/client/storage"
	"github.com/dmitrijs2005/pastebin/internal/common"
	"github.com/dmitrijs2005/pastebin/internal/filex"
	"github.com/dmitrijs2005/pastebin/internal/logging"
)

// UploadState names the coordinator's position in its two-step sequence.
type UploadState string

const (
	StateNotStarted      UploadState = "not_started"
	StateBlobWritten     UploadState = "blob_written"
	StateMetadataWritten UploadState = "metadata_written"
	StateFailed          UploadState = "failed"
)

// UploadStage identifies which of the two steps failed.
type UploadStage string

const (
	StageBlob     UploadStage = "blob"
	StageMetadata UploadStage = "metadata"
)

// UploadResult reports the terminal state of one upload attempt.
//
// When State is StateFailed at StageMetadata, Key names an object that was
// written to the store but is referenced by no paste record. The two
// systems share no transaction, so the orphan is accepted and reported
// rather than compensated for.
type UploadResult struct {
	State       UploadState
	FailedStage UploadStage
	PasteID     string
	Key         string
}

// Uploader sequences a binary object store write followed by a paste
// metadata record creation.
type Uploader struct {
	store   storage.Store
	pastes  *PasteService
	session *session.Manager
	log     logging.Logger
	now     func() time.Time
}

func NewUploader(store storage.Store, pastes *PasteService, s *session.Manager, log logging.Logger) *Uploader {
	return &Uploader{
		store:   store,
		pastes:  pastes,
		session: s,
		log:     log.With("component", "uploader"),
		now:     time.Now,
	}
}

// Upload writes data under an owner-namespaced key, then records a paste
// pointing at it. Step two starts only after step one has resolved
// successfully; a step-one failure produces no metadata call at all.
func (u *Uploader) Upload(ctx context.Context, filename string, data []byte, isPublic bool) (UploadResult, error) {
	result := UploadResult{State: StateNotStarted}

	snap := u.session.Snapshot()
	if !snap.Authenticated {
		return result, fmt.Errorf("%w: log in to upload files", common.ErrUnauthorized)
	}

	key := storage.ObjectKey(snap.Username(), filename, u.now())
	contentType := filex.DetectMime(filename, data)

	if err := u.store.Put(ctx, key, contentType, data); err != nil {
		result.State = StateFailed
		result.FailedStage = StageBlob
		u.log.Warn(ctx, "object store write failed", "key", key, "error", err)
		return result, fmt.Errorf("uploading file: %w", err)
	}
	result.State = StateBlobWritten
	result.Key = key

	id, err := u.pastes.Create(ctx, models.CreateRequest{
		Language:    filex.LanguageTag(filename),
		Title:       filename,
		Description: "Uploaded file",
		IsPublic:    isPublic,
		MimeType:    contentType,
		StoragePath: key,
	})
	if err != nil {
		result.State = StateFailed
		result.FailedStage = StageMetadata
		// The object stays behind unreferenced; no compensating delete.
		u.log.Warn(ctx, "metadata record failed, object orphaned", "key", key, "error", err)
		return result, fmt.Errorf("registering upload: %w", err)
	}

	result.State = StateMetadataWritten
	result.PasteID = id
	u.log.Info(ctx, "upload complete", "id", id, "key", key, "mime", contentType)
	return result, nil
}
