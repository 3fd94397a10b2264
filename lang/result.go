package lang

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/kballard/go-shellquote"
	"lukechampine.com/blake3"
)

// DefaultProgram is the program named by [Result.Command].
const DefaultProgram = "./configure"

// Result is the output of a successful compile.
type Result struct {
	Input       string      `json:"input"       yaml:"input"`
	Profile     string      `json:"profile"     yaml:"profile"`
	Environment Environment `json:"environment" yaml:"environment"`
	Arguments   []string    `json:"arguments"   yaml:"arguments"`
}

// Show writes the environment as "key: value" lines and the arguments one
// per line, then a blank line and the composed [Result.Command] line.
func (r *Result) Show(w io.Writer) error {
	var sb strings.Builder

	r.writeListing(&sb)

	sb.WriteString("\n\n")
	sb.WriteString(r.Command(DefaultProgram))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())

	return err
}

// Listing returns the environment and argument listing written by
// [Result.Show], without the command line.
func (r *Result) Listing() string {
	var sb strings.Builder

	r.writeListing(&sb)

	return sb.String()
}

func (r *Result) writeListing(sb *strings.Builder) {
	sb.WriteString("Environment:\n")

	for k, v := range r.Environment.All() {
		fmt.Fprintf(sb, "\t%s: %s\n", k, v)
	}

	sb.WriteString("Arguments:\n")

	for _, arg := range r.Arguments {
		fmt.Fprintf(sb, "\t%s\n", arg)
	}
}

// Command returns a single line invoking program with the compiled
// environment and arguments:
//
//	CC="clang" CXX="clang++" ./configure --enable-optimize --disable-debug
//
// Values are wrapped in double quotes but otherwise not escaped; use
// [Result.ShellCommand] for a line that is safe to paste into a shell.
func (r *Result) Command(program string) string {
	var sb strings.Builder

	for k, v := range r.Environment.All() {
		fmt.Fprintf(&sb, "%s=%q ", k, v)
	}

	sb.WriteString(program)

	for _, arg := range r.Arguments {
		sb.WriteByte(' ')
		sb.WriteString(arg)
	}

	return sb.String()
}

// ShellCommand returns the invocation as a properly quoted shell line.
func (r *Result) ShellCommand(program string) string {
	words := make([]string, 0, r.Environment.Len()+len(r.Arguments)+2)

	if r.Environment.Len() > 0 {
		words = append(words, "env")
	}

	for k, v := range r.Environment.All() {
		words = append(words, k+"="+v)
	}

	words = append(words, program)
	words = append(words, r.Arguments...)

	return shellquote.Join(words...)
}

// Fingerprint returns a stable digest of the environment and arguments.
// Two strings that configure identically share a fingerprint.
func (r *Result) Fingerprint() string {
	h := blake3.New(32, nil)

	for k, v := range r.Environment.All() {
		h.Write([]byte(k))
		h.Write([]byte{0})
		h.Write([]byte(v))
		h.Write([]byte{0})
	}

	h.Write([]byte{1})

	for _, arg := range r.Arguments {
		h.Write([]byte(arg))
		h.Write([]byte{0})
	}

	return hex.EncodeToString(h.Sum(nil))
}

// LogValue implements slog.LogValuer.
func (r *Result) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("input", r.Input),
		slog.String("profile", r.Profile),
		slog.Int("env_count", r.Environment.Len()),
		slog.Int("arg_count", len(r.Arguments)),
	)
}
