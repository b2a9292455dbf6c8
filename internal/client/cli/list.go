package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/pastebin/internal/client/models"
)

func (a *App) List(ctx context.Context) {
	reqCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	pastes, err := a.pastes.List(reqCtx)
	if err != nil {
		a.printError("list pastes", err)
		return
	}

	if len(pastes) == 0 {
		fmt.Fprintln(a.out, "No pastes found")
		return
	}

	for i := range pastes {
		a.printPasteLine(&pastes[i])
	}
}

func (a *App) printPasteLine(p *models.Paste) {
	visibility := "private"
	if p.IsPublic {
		visibility = "public"
	}
	kind := p.Language
	if p.IsBinary() {
		kind = "file"
	}
	fmt.Fprintf(a.out, "%s  %-30s  %-10s  %-7s  %s  %s\n",
		p.ID, p.DisplayTitle(), kind, visibility, p.Author,
		p.CreatedAt.Local().Format("2006-01-02 15:04"))
}
