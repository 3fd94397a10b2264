package lang

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"unicode/utf8"
)

// Argument prefixes of the flag rules.
const (
	prefixEnable  = "--enable-"
	prefixWith    = "--with-"
	prefixDisable = "--disable-"
	prefixWithout = "--without-"
)

// rule consumes one production from the front of t and returns the rest.
// t is never empty and t[0] is the rule's sigil.
type rule func(ctx context.Context, t string) (string, error)

// ruleFor returns the rule introduced by sigil, or nil if sigil is not active
// in the current profile.
func (c *Compiler) ruleFor(sigil byte) rule {
	if !c.profile.IsSigil(sigil) {
		return nil
	}

	switch sigil {
	case '^':
		return c.parseEnvironment
	case '\'':
		return c.parseLiteral
	case '+':
		return c.flag(prefixEnable)
	case '=':
		return c.flag(prefixWith)
	case '!':
		return c.flag(prefixDisable)
	case '?':
		return c.flag(prefixWithout)
	case '*':
		return c.parseShortcuts
	case '.':
		return c.parseMacro
	case '@', '%':
		return c.parseTerminator
	}

	return nil
}

// expand parses a whole template and requires that nothing is left over.
func (c *Compiler) expand(ctx context.Context, t string) error {
	rest, err := c.parseFlags(ctx, t)
	if err != nil {
		return err
	}

	if rest != "" {
		return c.fail(ErrTrailingInput, rest, rest)
	}

	return nil
}

// parseFlags applies rules until t is exhausted.
func (c *Compiler) parseFlags(ctx context.Context, t string) (string, error) {
	for len(t) > 0 {
		next, err := c.step(ctx, t)
		if err != nil {
			return "", err
		}

		t = next
	}

	return t, nil
}

// step dispatches on the leading sigil of t and checks that the rule made
// progress.
func (c *Compiler) step(ctx context.Context, t string) (string, error) {
	r := c.ruleFor(t[0])
	if r == nil {
		return "", c.fail(ErrUnexpectedSigil, leading(t), t)
	}

	next, err := r(ctx, t)
	if err != nil {
		return "", err
	}

	if len(next) >= len(t) {
		return "", c.fail(ErrNoProgress, t[:1], t)
	}

	return next, nil
}

// capture splits t, which begins with a sigil, into the run of non-sigil
// bytes following that sigil and the rest.
func (c *Compiler) capture(t string) (word, rest string) {
	t = t[1:]

	i := 0
	for i < len(t) && !c.profile.IsSigil(t[i]) {
		i++
	}

	return t[:i], t[i:]
}

// parseEnvironment handles ^KEY=VALUE;
func (c *Compiler) parseEnvironment(ctx context.Context, t string) (string, error) {
	end := strings.IndexByte(t, ';')
	if end < 0 {
		return "", c.fail(ErrUnterminatedEnvironment, "", t)
	}

	body, rest := t[1:end], t[end+1:]
	if body == "" {
		return rest, nil
	}

	k, v, _ := strings.Cut(body, "=")
	k = strings.TrimSpace(k)
	v = strings.TrimSpace(v)

	if !isIdentifier(k) {
		return "", c.fail(ErrInvalidEnvironmentKey, k, t)
	}

	c.env.Set(k, v)

	c.logger.TraceContext(ctx, "environment",
		slog.String("key", k),
		slog.String("value", v),
	)

	return rest, nil
}

// parseLiteral handles 'text;
func (c *Compiler) parseLiteral(ctx context.Context, t string) (string, error) {
	end := strings.IndexByte(t, ';')
	if end < 0 {
		return "", c.fail(ErrUnterminatedLiteral, "", t)
	}

	arg, rest := t[1:end], t[end+1:]
	if arg != "" {
		c.args = append(c.args, arg)

		c.logger.TraceContext(ctx, "argument", slog.String("arg", arg))
	}

	return rest, nil
}

// flag returns the rule that appends prefix plus the captured word.
func (c *Compiler) flag(prefix string) rule {
	return func(ctx context.Context, t string) (string, error) {
		word, rest := c.capture(t)
		arg := prefix + word

		c.args = append(c.args, arg)

		c.logger.TraceContext(ctx, "argument", slog.String("arg", arg))

		return rest, nil
	}
}

// parseShortcuts handles *abc, expanding each byte's template in turn.
func (c *Compiler) parseShortcuts(ctx context.Context, t string) (string, error) {
	t = t[1:]

	for t != "" && !c.profile.IsSigil(t[0]) {
		key := t[:1]

		template, ok := c.profile.Tables.Shortcuts[key]
		if !ok {
			return "", c.fail(ErrUnknownShortcut, leading(t), t)
		}

		if err := c.expandNamed(ctx, "*"+key, t, template); err != nil {
			return "", err
		}

		t = t[1:]
	}

	return t, nil
}

// parseMacro handles .name
func (c *Compiler) parseMacro(ctx context.Context, t string) (string, error) {
	name, rest := c.capture(t)

	template, ok := c.profile.Tables.Macros[name]
	if !ok {
		return "", c.fail(ErrUnknownMacro, name, t[1:])
	}

	if err := c.expandNamed(ctx, "."+name, t[1:], template); err != nil {
		return "", err
	}

	return rest, nil
}

// parseTerminator discards everything after @ or %.
func (c *Compiler) parseTerminator(ctx context.Context, t string) (string, error) {
	c.logger.TraceContext(ctx, "terminated", slog.String("comment", t[1:]))

	return "", nil
}

// expandNamed expands the template of a shortcut or macro. ref identifies
// it on the expansion stack; at is the remainder reported if ref is already
// being expanded.
func (c *Compiler) expandNamed(
	ctx context.Context,
	ref, at, template string,
) error {
	if slices.Contains(c.stack, ref) {
		err := c.fail(ErrCyclicMacro, ref[1:], at)
		err.Trace = append(err.Trace, ref)

		return err
	}

	c.stack = append(c.stack, ref)
	defer func() { c.stack = c.stack[:len(c.stack)-1] }()

	c.logger.TraceContext(ctx, "expand",
		slog.String("ref", ref),
		slog.String("template", template),
		slog.Int("depth", len(c.stack)),
	)

	return c.expand(ctx, template)
}

// leading returns the first character of t, or its first byte when t does
// not begin with valid UTF-8.
func leading(t string) string {
	_, n := utf8.DecodeRuneInString(t)

	return t[:n]
}

// isIdentifier reports whether s is a valid environment variable name:
// a letter or underscore followed by letters, digits or underscores.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i := range len(s) {
		b := s[i]

		switch {
		case b == '_', 'A' <= b && b <= 'Z', 'a' <= b && b <= 'z':
		case '0' <= b && b <= '9' && i > 0:
		default:
			return false
		}
	}

	return true
}
