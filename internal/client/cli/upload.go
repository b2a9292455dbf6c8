package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/pastebin/internal/client/services"
	"github.com/dmitrijs2005/pastebin/internal/filex"
)

func (a *App) Upload(ctx context.Context, args []string) {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(a.out, "Usage: upload <path> [private]")
		return
	}
	if !a.session.Snapshot().Authenticated {
		fmt.Fprintln(a.out, "You must be logged in to upload files")
		return
	}

	isPublic := true
	if len(args) == 2 {
		if args[1] != "private" {
			fmt.Fprintln(a.out, "Usage: upload <path> [private]")
			return
		}
		isPublic = false
	}

	path := args[0]
	data, err := filex.ReadFileLimited(path, maxUploadSize)
	if err != nil {
		fmt.Fprintf(a.out, "Could not read %s: %v\n", path, err)
		return
	}

	reqCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	result, err := a.uploader.Upload(reqCtx, filepath.Base(path), data, isPublic)
	if err != nil {
		if result.State == services.StateFailed && result.FailedStage == services.StageMetadata {
			// The file is already in the store but has no paste record.
			fmt.Fprintf(a.out, "Upload incomplete: file stored as %s but registering it failed.\n", result.Key)
		}
		a.printError("upload file", err)
		return
	}

	fmt.Fprintf(a.out, "Uploaded %s as paste %s\n", filepath.Base(path), result.PasteID)
}
