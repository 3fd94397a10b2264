package cmd

import (
	"context"
	"os"

	"golang.org/x/term"

	"github.com/ardnew/wfm/cli/cmd/repl"
	"github.com/ardnew/wfm/log"
)

// Repl starts an interactive editor that compiles the configuration string
// as it is typed.
type Repl struct {
	NoHistory bool `help:"Do not read or write the history file"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ErrNotTerminal
	}

	var history string
	if !r.NoHistory {
		history = kongVar(ctx, HistoryIdentifier)
	}

	return repl.Run(ctx, profileFrom(ctx), history, log.Default())
}
