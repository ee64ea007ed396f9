package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	if a.user == nil {
		return ""
	}
	s := a.user.Email
	if !a.user.IsVerified {
		s += " unverified"
	}
	return fmt.Sprintf("(%s) ", s)
}

// Root prints a greeting and runs the REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to authctl (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}
