package cli

import (
	"context"
	"fmt"
	"time"
)

// signedURLTTL is how long a download link for a binary paste stays valid.
const signedURLTTL = 15 * time.Minute

func (a *App) Show(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: show <id>")
		return
	}

	reqCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	p, err := a.pastes.Get(reqCtx, args[0])
	if err != nil {
		a.printError("show paste", err)
		return
	}

	fmt.Fprintf(a.out, "Title:    %s\n", p.DisplayTitle())
	fmt.Fprintf(a.out, "Author:   %s\n", p.Author)
	fmt.Fprintf(a.out, "Language: %s\n", p.Language)
	fmt.Fprintf(a.out, "Created:  %s\n", p.CreatedAt.Local().Format(time.RFC1123))
	if p.Description != "" {
		fmt.Fprintf(a.out, "About:    %s\n", p.Description)
	}

	if p.IsBinary() {
		url, err := a.store.SignedGetURL(reqCtx, p.StoragePath, signedURLTTL)
		if err != nil {
			a.printError("sign download link", err)
			return
		}
		fmt.Fprintf(a.out, "File (%s), download within %s:\n%s\n", p.MimeType, signedURLTTL, url)
		return
	}

	fmt.Fprintln(a.out, "---")
	fmt.Fprintln(a.out, p.Content)
	fmt.Fprintln(a.out, "---")
}
