package cmd

import (
	"context"
	"fmt"
)

// Test compiles a configuration string and shows the result.
type Test struct {
	Config      string `arg:"" help:"Configuration string to compile" name:"config"`
	Fingerprint bool   `       help:"Also print the result fingerprint"           short:"f"`
}

// Run executes the test command.
func (t *Test) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	return show(ctx, t.Config, t.Fingerprint)
}

func show(ctx context.Context, input string, fingerprint bool) error {
	res, err := compile(ctx, input)
	if err != nil {
		return err
	}

	w := stdout(ctx)

	if err := res.Show(w); err != nil {
		return ErrFormat.Wrap(err)
	}

	if fingerprint {
		if _, err := fmt.Fprintf(w, "Fingerprint: %s\n", res.Fingerprint()); err != nil {
			return ErrFormat.Wrap(err)
		}
	}

	return nil
}
