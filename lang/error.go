package lang

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
//
// Every failure returned by a [Compiler] is a [*ParseError] whose Kind is one
// of these values, so callers can match with [errors.Is].
var (
	ErrUnexpectedSigil         = NewError("expected another flag")
	ErrUnterminatedEnvironment = NewError(`environment updates must be terminated with ";"`)
	ErrInvalidEnvironmentKey   = NewError("environment key is not a valid name")
	ErrUnterminatedLiteral     = NewError(`literal args must be terminated with ";"`)
	ErrUnknownShortcut         = NewError("unrecognized single char shortcut")
	ErrUnknownMacro            = NewError("unrecognized multi char shortcut")
	ErrUnknownCompiler         = NewError("unrecognized compiler")
	ErrUnknownArchitecture     = NewError("unrecognized architecture")
	ErrUnknownOptimization     = NewError("unrecognized optimization level")
	ErrPrefixTooShort          = NewError("string requires at least a compiler, optimization, and arch flag")
	ErrMissingMarker           = NewError("missing leading marker")
	ErrTrailingInput           = NewError("unparsed trailing input")
	ErrCyclicMacro             = NewError("cyclic shortcut expansion")
	ErrNoProgress              = NewError("rule consumed no input")
)

// Errors produced while building or loading a [Profile].
var (
	ErrUnknownProfile = NewError("unknown profile")
	ErrInvalidProfile = NewError("invalid profile")
	ErrInvalidTable   = NewError("invalid table entry")
	ErrReadInput      = NewError("failed to read input")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the same sentinel e was derived from.
// Errors created by [Error.Wrap] and [Error.With] keep the message of their
// sentinel, which is what identifies them.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.msg == "" {
		return false
	}

	return e.msg == t.msg && t.err == nil && len(t.attrs) == 0
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// ParseError describes why a configuration string was rejected.
//
// Remainder is the exact text that was about to be parsed when the failure
// occurred. It is a suffix of whatever string was being parsed at the time,
// which is the top-level input unless the failure happened inside a template.
type ParseError struct {
	Kind      *Error   // One of the Err* sentinels
	Token     string   // Offending token, if any
	Remainder string   // Unconsumed text at the failure point
	Trace     []string // Expansions in progress, outermost first
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var sb strings.Builder

	sb.WriteString(e.Kind.Error())

	if e.Token != "" {
		sb.WriteString(": ")
		sb.WriteString(strconv.Quote(e.Token))
	}

	if len(e.Trace) > 0 {
		sb.WriteString(" (in ")
		sb.WriteString(strings.Join(e.Trace, " -> "))
		sb.WriteString(")")
	}

	return sb.String()
}

// Unwrap returns the sentinel kind so that errors.Is matches it.
func (e *ParseError) Unwrap() error { return e.Kind }

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("error", e.Kind.Error())}

	if e.Token != "" {
		attrs = append(attrs, slog.String("token", e.Token))
	}

	attrs = append(attrs, slog.String("remainder", e.Remainder))

	if len(e.Trace) > 0 {
		attrs = append(attrs, slog.String("trace", strings.Join(e.Trace, " -> ")))
	}

	return slog.GroupValue(attrs...)
}

// Position returns the byte offset in original at which parsing failed.
//
// The offset is recovered by comparing lengths, so it is only available when
// Remainder is a suffix of original. Failures inside a template usually are
// not, in which case ok is false. Positions are best-effort diagnostics.
//
// Only a suffix is located. A remainder that merely occurs somewhere inside
// original, as when a template repeats text from the input, has no position
// rather than a misleading one.
func (e *ParseError) Position(original string) (pos int, ok bool) {
	if !strings.HasSuffix(original, e.Remainder) {
		return 0, false
	}

	return len(original) - len(e.Remainder), true
}

// Report writes the error message to w, followed by original and a caret
// line pointing at the failure when [ParseError.Position] can locate it.
//
//	unrecognized multi char shortcut: "nope"
//	Context: cdo.nope
//	         ----^
func (e *ParseError) Report(w io.Writer, original string) error {
	if _, err := fmt.Fprintln(w, e.Error()); err != nil {
		return err
	}

	pos, ok := e.Position(original)
	if !ok {
		return nil
	}

	_, err := fmt.Fprintf(w, "Context: %s\n         %s^\n",
		original, strings.Repeat("-", pos))

	return err
}

// Report writes err to w. A [*ParseError] gets the positional context of
// [ParseError.Report]; anything else is written as a single line.
func Report(w io.Writer, err error, original string) error {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Report(w, original)
	}

	_, werr := fmt.Fprintln(w, err.Error())

	return werr
}
