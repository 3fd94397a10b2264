package lang

import (
	"context"
	"log/slog"

	"github.com/ardnew/wfm/log"
)

// Compiler expands one configuration string into an [Environment] and an
// argument list.
//
// A Compiler owns its accumulators exclusively. It parses at most once: the
// first call to [Compiler.Parse] does the work and every later call returns
// the same outcome.
type Compiler struct {
	input   string
	profile *Profile
	logger  log.Logger

	parsed bool
	err    error

	env  Environment
	args []string

	// Expansions in progress, e.g. ".def" or "*d", outermost first.
	stack []string
}

// Option configures a [Compiler].
type Option func(*Compiler)

// WithProfile selects the grammar variant and tables. The default is the
// built-in [DefaultProfile].
func WithProfile(p *Profile) Option {
	return func(c *Compiler) {
		if p != nil {
			c.profile = p
		}
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// New returns a Compiler for input. Nothing is parsed until
// [Compiler.Parse] is called.
func New(input string, opts ...Option) *Compiler {
	c := &Compiler{input: input}

	for _, opt := range opts {
		opt(c)
	}

	if c.profile == nil {
		c.profile, _ = LookupProfile(DefaultProfile)
	}

	return c
}

// Input returns the configuration string.
func (c *Compiler) Input() string { return c.input }

// Profile returns the profile in force.
func (c *Compiler) Profile() *Profile { return c.profile }

// Parse compiles the configuration string. On failure the accumulated
// environment and arguments are discarded and the returned error is a
// [*ParseError].
func (c *Compiler) Parse(ctx context.Context) error {
	if c.parsed {
		return c.err
	}

	c.parsed = true
	c.err = c.parseTopLevel(ctx)

	if c.err != nil {
		c.env.reset()
		c.args = nil

		c.logger.DebugContext(ctx, "parse failed",
			slog.String("input", c.input),
			slog.Any("error", c.err),
		)

		return c.err
	}

	c.logger.DebugContext(ctx, "parse complete",
		slog.String("input", c.input),
		slog.Int("env_count", c.env.Len()),
		slog.Int("arg_count", len(c.args)),
	)

	return nil
}

// Environment returns a copy of the compiled environment.
func (c *Compiler) Environment() Environment { return c.env.Clone() }

// Arguments returns a copy of the compiled argument list.
func (c *Compiler) Arguments() []string {
	args := make([]string, len(c.args))
	copy(args, c.args)

	return args
}

// Result parses if necessary and returns the compiled output.
func (c *Compiler) Result(ctx context.Context) (*Result, error) {
	if err := c.Parse(ctx); err != nil {
		return nil, err
	}

	return &Result{
		Input:       c.input,
		Profile:     c.profile.Name,
		Environment: c.Environment(),
		Arguments:   c.Arguments(),
	}, nil
}

// Compile is shorthand for New(input, opts...).Result(ctx).
func Compile(ctx context.Context, input string, opts ...Option) (*Result, error) {
	return New(input, opts...).Result(ctx)
}

// Expand expands a template, i.e. a flag sequence without the compiler,
// architecture and optimization prefix, as a macro body would be.
func Expand(ctx context.Context, template string, opts ...Option) (*Result, error) {
	c := New(template, opts...)
	c.parsed = true

	if err := c.expand(ctx, template); err != nil {
		c.err = err

		return nil, err
	}

	return &Result{
		Input:       template,
		Profile:     c.profile.Name,
		Environment: c.Environment(),
		Arguments:   c.Arguments(),
	}, nil
}

// parseTopLevel consumes the marker and the selector prefix, expands the
// selected templates, and then parses the remaining flags.
func (c *Compiler) parseTopLevel(ctx context.Context) error {
	p := c.profile
	t := c.input

	if p.Marker != 0 {
		if t == "" || t[0] != p.Marker {
			return c.fail(ErrMissingMarker, string(p.Marker), t)
		}

		t = t[1:]
	}

	if len(t) < 3 {
		return c.fail(ErrPrefixTooShort, "", t)
	}

	desc, ok := p.Tables.Compilers[t[:1]]
	if !ok {
		return c.fail(ErrUnknownCompiler, leading(t), t)
	}

	c.logger.TraceContext(ctx, "compiler selected",
		slog.String("compiler", desc.Name),
		slog.String("order", p.Order.String()),
	)

	switch p.Order {
	case OrderOptArch:
		if err := c.expand(ctx, desc.Flags); err != nil {
			return err
		}

		if err := c.expandOptimization(ctx, t[1:]); err != nil {
			return err
		}

		arch, err := c.architecture(desc, t[2:])
		if err != nil {
			return err
		}

		if err := c.expand(ctx, arch); err != nil {
			return err
		}

	default:
		arch, err := c.architecture(desc, t[1:])
		if err != nil {
			return err
		}

		if err := c.expand(ctx, desc.Flags); err != nil {
			return err
		}

		if err := c.expand(ctx, arch); err != nil {
			return err
		}

		if err := c.expandOptimization(ctx, t[2:]); err != nil {
			return err
		}
	}

	return c.expand(ctx, t[3:])
}

// architecture returns the template of the architecture selected by the
// first character of sel.
func (c *Compiler) architecture(desc CompilerDescriptor, sel string) (string, error) {
	tmpl, ok := desc.Architectures[sel[:1]]
	if !ok {
		return "", c.fail(ErrUnknownArchitecture, leading(sel), sel)
	}

	return tmpl, nil
}

// expandOptimization expands the optimization level selected by the first
// character of sel.
func (c *Compiler) expandOptimization(ctx context.Context, sel string) error {
	tmpl, ok := c.profile.Tables.Optimizations[sel[:1]]
	if !ok {
		return c.fail(ErrUnknownOptimization, leading(sel), sel)
	}

	return c.expand(ctx, tmpl)
}

// fail builds a [*ParseError] annotated with the current expansion stack.
func (c *Compiler) fail(kind *Error, token, remainder string) *ParseError {
	var trace []string
	if len(c.stack) > 0 {
		trace = make([]string, len(c.stack))
		copy(trace, c.stack)
	}

	return &ParseError{
		Kind:      kind,
		Token:     token,
		Remainder: remainder,
		Trace:     trace,
	}
}
