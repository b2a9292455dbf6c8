package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/pastebin/internal/client/session"
	"github.com/dmitrijs2005/pastebin/internal/common"
)

func (a *App) Login(ctx context.Context) {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil || username == "" {
		fmt.Fprintln(a.out, "Username is required")
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintln(a.out, "Could not read password")
		return
	}

	reqCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	err = a.session.Login(reqCtx, username, password)
	switch {
	case err == nil:
		fmt.Fprintf(a.out, "Signed in as %s\n", username)
	case errors.Is(err, session.ErrSuperseded):
		// Another login or logout finished first; its outcome stands.
	case errors.Is(err, common.ErrUnauthorized):
		fmt.Fprintln(a.out, "Invalid username or password")
	default:
		a.printError("sign in", err)
	}
}

func (a *App) Logout(ctx context.Context) {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Signed out")
}
