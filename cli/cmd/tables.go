package cmd

import "context"

// Tables lists every shortcut and macro of the active profile with its
// expansion, followed by a summary of the grammar.
type Tables struct{}

// Run executes the tables command.
func (*Tables) Run(ctx context.Context) error {
	if err := profileFrom(ctx).WriteTables(ctx, stdout(ctx)); err != nil {
		return ErrFormat.Wrap(err)
	}

	return nil
}
