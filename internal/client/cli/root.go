package cli

import (
	"context"
	"fmt"
)

// getStatus renders the prompt suffix: "(alice admin) /users".
func (a *App) getStatus() string {
	s := ""
	if id, ok := a.session.Identity(); ok {
		s = fmt.Sprintf("(%s %s) ", id.Name, id.Role)
	}
	if loc, ok := a.router.Current(); ok {
		s += loc.FullPath
	}
	return s
}

// Root prints the banner, opens the start screen and runs the REPL until
// the user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintf(a.out, "Welcome to %s %s (type 'help' for commands)\n", a.config.AppName, a.config.AppVersion)

	_ = a.Go(ctx, "/")

	runREPL(ctx, a, a.getStatus, a.reader)
}
