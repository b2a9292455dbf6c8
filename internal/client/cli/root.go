package cli

import (
	"context"
	"fmt"
	"strings"
)

// getStatus renders the prompt prefix for the current session.
func (a *App) getStatus() string {
	if s := a.session.Snapshot(); s.Authenticated {
		return s.Username()
	}
	return "anonymous"
}

func (a *App) printHelp() {
	fmt.Fprintln(a.out, "Available commands:")
	fmt.Fprintln(a.out, "  login            sign in with username and password")
	fmt.Fprintln(a.out, "  logout           sign out and forget saved credentials")
	fmt.Fprintln(a.out, "  whoami           show the current session")
	fmt.Fprintln(a.out, "  list             list your pastes, or public ones when signed out")
	fmt.Fprintln(a.out, "  show <id>        print a paste")
	fmt.Fprintln(a.out, "  new              create a paste interactively")
	fmt.Fprintln(a.out, "  upload <path>    upload a file as a paste (add 'private' to hide it)")
	fmt.Fprintln(a.out, "  delete <id>      delete one of your pastes")
	fmt.Fprintln(a.out, "  exit             quit")
}

// Root runs the command loop until the user exits or ctx is cancelled.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Type 'help' to see available commands.")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fmt.Fprintf(a.out, "pastebin [%s]> ", a.getStatus())

		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "help":
			a.printHelp()
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "whoami":
			a.Whoami()
		case "list":
			a.List(ctx)
		case "show":
			a.Show(ctx, args)
		case "new":
			a.New(ctx)
		case "upload":
			a.Upload(ctx, args)
		case "delete":
			a.Delete(ctx, args)
		case "exit", "quit":
			return
		default:
			fmt.Fprintf(a.out, "Unknown command: %s\n", cmd)
		}
	}
}

func (a *App) Whoami() {
	s := a.session.Snapshot()
	if s.Authenticated {
		fmt.Fprintf(a.out, "Signed in as %s\n", s.Username())
	} else {
		fmt.Fprintln(a.out, "Not signed in")
	}
}
