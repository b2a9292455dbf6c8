package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) Delete(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: delete <id>")
		return
	}
	if !a.session.Snapshot().Authenticated {
		fmt.Fprintln(a.out, "You must be logged in to delete pastes")
		return
	}
	id := args[0]

	reqCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	p, err := a.pastes.Get(reqCtx, id)
	if err != nil {
		a.printError("delete paste", err)
		return
	}
	if !a.pastes.CanDelete(p) {
		fmt.Fprintln(a.out, "You can only delete your own pastes")
		return
	}

	answer, err := GetSimpleText(a.reader, fmt.Sprintf("Delete %q? (y/N)", p.DisplayTitle()), a.out)
	if err != nil || !strings.EqualFold(answer, "y") {
		fmt.Fprintln(a.out, "Cancelled")
		return
	}

	if err := a.pastes.Delete(reqCtx, id); err != nil {
		a.printError("delete paste", err)
		return
	}

	fmt.Fprintln(a.out, "Deleted")
}
