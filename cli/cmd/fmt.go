package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/wfm/lang"
)

// Fmt compiles a configuration string and writes the result in the chosen
// format.
type Fmt struct {
	JSON  JSON  `cmd:"" default:"withargs" help:"Format as JSON (default)."`
	YAML  YAML  `cmd:""                    help:"Format as YAML."`
	Shell Shell `cmd:""                    help:"Format as a quoted shell command line."`
}

// JSON formats the result as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output, 0 for compact" short:"i"`

	Config string `arg:"" help:"Configuration string to compile" name:"config"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	return format(ctx, j.Config, "json", func(r *lang.Result) error {
		return r.FormatJSON(ctx, stdout(ctx), j.Indent)
	})
}

// YAML formats the result as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output, 0 for flow style" short:"i"`

	Config string `arg:"" help:"Configuration string to compile" name:"config"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	return format(ctx, y.Config, "yaml", func(r *lang.Result) error {
		return r.FormatYAML(ctx, stdout(ctx), y.Indent)
	})
}

// Shell formats the result as a command line suitable for a POSIX shell.
type Shell struct {
	Program string `default:"./configure" help:"Program to invoke" short:"p"`

	Config string `arg:"" help:"Configuration string to compile" name:"config"`
}

// Run executes the shell command.
func (s *Shell) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	return format(ctx, s.Config, "shell", func(r *lang.Result) error {
		return r.FormatShell(ctx, stdout(ctx), s.Program)
	})
}

func format(
	ctx context.Context,
	input, name string,
	write func(*lang.Result) error,
) error {
	res, err := compile(ctx, input)
	if err != nil {
		return err
	}

	if err := write(res); err != nil {
		return ErrFormat.
			With(slog.String("format", name)).
			Wrap(err)
	}

	return nil
}
