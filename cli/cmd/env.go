package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/ardnew/mung"
	"github.com/kballard/go-shellquote"

	"github.com/ardnew/wfm/lang"
	"github.com/ardnew/wfm/log"
)

// Inherited names the variables passed from the calling environment to
// configure; everything else comes from the configuration string.
var Inherited = []string{"PATH", "SHELL", "TERM", "COLORTERM", "MOZILLABUILD"}

// Env prints the environment in which configure runs, one quoted KEY=VALUE
// assignment per line, followed by the suggested MAKEFLAGS.
type Env struct {
	PathPrepend []string `help:"Directories to prepend to PATH" placeholder:"DIR" sep:"none"    type:"path"`
	Jobs        int      `help:"Number of parallel build jobs"                    default:"${jobs}" short:"j"`

	Config string `arg:"" help:"Configuration string to compile" name:"config"`
}

// Run executes the env command.
func (e *Env) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	res, err := compile(ctx, e.Config)
	if err != nil {
		return err
	}

	env := e.environ(os.LookupEnv, res.Environment)

	var sb strings.Builder

	for k, v := range env.All() {
		fmt.Fprintf(&sb, "%s=%s\n", k, shellquote.Join(v))
	}

	fmt.Fprintf(&sb, "MAKEFLAGS=-j%d\n", e.jobs())

	if _, err := fmt.Fprint(stdout(ctx), sb.String()); err != nil {
		return ErrFormat.With(slog.String("format", "env")).Wrap(err)
	}

	return nil
}

// environ returns the inherited variables found by lookup, overlaid with the
// compiled environment. Compiled values replace inherited ones. The
// directories of --path-prepend are then added to the front of PATH.
func (e *Env) environ(
	lookup func(string) (string, bool),
	compiled lang.Environment,
) lang.Environment {
	inherited := map[string]string{}

	for _, k := range Inherited {
		if v, ok := lookup(k); ok {
			inherited[k] = v
		}
	}

	for k, v := range compiled.All() {
		inherited[k] = v
	}

	if len(e.PathPrepend) > 0 {
		inherited["PATH"] = mung.Make(
			mung.WithSubjectItems(inherited["PATH"]),
			mung.WithDelim(string(os.PathListSeparator)),
			mung.WithPrefixItems(e.PathPrepend...),
		).String()

		log.Debug("prepended PATH",
			slog.Any("dirs", e.PathPrepend),
			slog.String("PATH", inherited["PATH"]),
		)
	}

	var env lang.Environment

	for _, k := range Inherited {
		if v, ok := inherited[k]; ok {
			env.Set(k, v)
			delete(inherited, k)
		}
	}

	for k := range compiled.All() {
		if v, ok := inherited[k]; ok {
			env.Set(k, v)
		}
	}

	return env
}

// jobs returns the job count, falling back to the number of CPUs.
func (e *Env) jobs() int {
	if e.Jobs > 0 {
		return e.Jobs
	}

	return runtime.NumCPU()
}
