package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pastebin/internal/client/models"
)

func (a *App) New(ctx context.Context) {
	if !a.session.Snapshot().Authenticated {
		fmt.Fprintln(a.out, "You must be logged in to create pastes")
		return
	}

	title, err := GetSimpleText(a.reader, "Title (optional)", a.out)
	if err != nil {
		return
	}

	language, err := GetSimpleText(a.reader, "Language (default plaintext)", a.out)
	if err != nil {
		return
	}

	visibility, err := GetSimpleText(a.reader, "Make it public? (y/N)", a.out)
	if err != nil {
		return
	}

	content, err := GetMultiline(a.reader, "Paste content", a.out)
	if err != nil {
		return
	}
	if content == "" {
		fmt.Fprintln(a.out, "Paste content cannot be empty")
		return
	}

	reqCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	id, err := a.pastes.Create(reqCtx, models.CreateRequest{
		Content:  content,
		Language: language,
		Title:    title,
		IsPublic: strings.EqualFold(visibility, "y"),
	})
	if err != nil {
		a.printError("create paste", err)
		return
	}

	fmt.Fprintf(a.out, "Created paste %s\n", id)
}
