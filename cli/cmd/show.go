package cmd

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ardnew/wfm/log"
)

// Show compiles a configuration string, or the name of the build directory
// linked by --link when none is given, and shows the result.
type Show struct {
	Config      string `arg:"" help:"Configuration string to compile" name:"config" optional:""`
	Link        string `       help:"Link naming the current build directory"       default:"ctx" type:"path"`
	Fingerprint bool   `       help:"Also print the result fingerprint"             short:"f"`
}

// Run executes the show command.
func (s *Show) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	input := s.Config
	if input == "" {
		if input, err = linkedConfig(s.Link); err != nil {
			return err
		}

		log.DebugContext(ctx, "using linked configuration",
			slog.String("link", s.Link),
			slog.String("config", input),
		)
	}

	return show(ctx, input, s.Fingerprint)
}

// linkedConfig returns the base name of the target of the symbolic link at
// path. The link is never created.
func linkedConfig(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", ErrNoConfig.
			With(slog.String("link", path)).
			Wrap(err)
	}

	return filepath.Base(filepath.Clean(target)), nil
}
