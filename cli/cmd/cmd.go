package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/wfm/lang"
	"github.com/ardnew/wfm/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// kongVar returns the kong variable named id, or the empty string.
func kongVar(ctx context.Context, id string) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ""
	}

	return ktx.Model.Vars()[id]
}

// stdout returns the output stream of the kong.Context in ctx.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stderr returns the error stream of the kong.Context in ctx.
func stderr(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stderr != nil {
		return ktx.Stderr
	}

	return os.Stderr
}

type profileKey struct{}

// WithProfile returns a new context.Context carrying the profile used to
// compile configuration strings.
func WithProfile(ctx context.Context, p *lang.Profile) context.Context {
	return context.WithValue(ctx, profileKey{}, p)
}

// profileFrom returns the profile stored by [WithProfile], or a fresh copy
// of the default profile.
func profileFrom(ctx context.Context) *lang.Profile {
	if p, ok := ctx.Value(profileKey{}).(*lang.Profile); ok && p != nil {
		return p
	}

	p, err := lang.LookupProfile(lang.DefaultProfile)
	if err != nil {
		panic("internal error: default profile undefined")
	}

	return p
}

// compile compiles input with the profile in ctx. A parse failure is
// reported with a caret under the offending position on the error stream
// before it is returned.
func compile(ctx context.Context, input string) (*lang.Result, error) {
	res, err := lang.Compile(ctx, input,
		lang.WithProfile(profileFrom(ctx)),
		lang.WithLogger(log.Default()),
	)
	if err != nil {
		var perr *lang.ParseError
		if errors.As(err, &perr) {
			_ = perr.Report(stderr(ctx), input)
		}

		return nil, ErrCompile.
			With(slog.String("input", input)).
			Wrap(err)
	}

	log.DebugContext(ctx, "compiled", slog.Any("result", res))

	return res, nil
}
