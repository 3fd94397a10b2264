package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Summary returns the environment and arguments on one line, e.g.
//
//	CC=clang CXX=clang++ --enable-optimize --disable-debug
func (r *Result) Summary() string {
	words := make([]string, 0, r.Environment.Len()+len(r.Arguments))

	for k, v := range r.Environment.All() {
		words = append(words, k+"="+v)
	}

	words = append(words, r.Arguments...)

	return strings.Join(words, " ")
}

// resultDoc is the serialized form of a [Result].
type resultDoc struct {
	Input       string      `json:"input"       yaml:"input"`
	Profile     string      `json:"profile"     yaml:"profile"`
	Fingerprint string      `json:"fingerprint" yaml:"fingerprint"`
	Environment Environment `json:"environment" yaml:"environment"`
	Arguments   []string    `json:"arguments"   yaml:"arguments"`
}

func (r *Result) doc() resultDoc {
	args := r.Arguments
	if args == nil {
		args = []string{}
	}

	return resultDoc{
		Input:       r.Input,
		Profile:     r.Profile,
		Fingerprint: r.Fingerprint(),
		Environment: r.Environment,
		Arguments:   args,
	}
}

// FormatJSON writes the result as JSON to the writer.
func (r *Result) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(r.doc(), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(r.doc())
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the result as YAML to the writer.
func (r *Result) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, r.doc(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// FormatShell writes the invocation of program as a quoted shell line.
func (r *Result) FormatShell(_ context.Context, w io.Writer, program string) error {
	if program == "" {
		program = DefaultProgram
	}

	_, err := fmt.Fprintln(w, r.ShellCommand(program))

	return err
}

// WriteTables writes every template of the profile grouped by table, each
// with its expansion, followed by the grammar summary. Templates that fail
// to expand are listed with the error in place of the expansion.
func (p *Profile) WriteTables(ctx context.Context, w io.Writer) error {
	var sb strings.Builder

	group := ""

	for _, e := range p.Tables.Entries() {
		if e.Group != group {
			if group != "" {
				sb.WriteString("\n")
			}

			group = e.Group
			sb.WriteString(group)

			if !strings.HasSuffix(group, ")") {
				sb.WriteString(":")
			}

			sb.WriteString("\n")
		}

		expansion := ""

		res, err := Expand(ctx, e.Template, WithProfile(p))
		if err != nil {
			expansion = "<" + err.Error() + ">"
		} else {
			expansion = res.Summary()
		}

		fmt.Fprintf(&sb, "\t%s: %s\n", e.Key, expansion)
	}

	sb.WriteString("\n")
	sb.WriteString(p.Grammar())

	_, err := io.WriteString(w, sb.String())

	return err
}

// Grammar returns a summary of the syntax accepted under p.
func (p *Profile) Grammar() string {
	var sb strings.Builder

	sb.WriteString("Grammar = ")

	if p.Marker != 0 {
		fmt.Fprintf(&sb, "%q & ", p.Marker)
	}

	if p.Order == OrderOptArch {
		sb.WriteString("Compiler & OptimizationLevel & Architecture & Flag*\n")
	} else {
		sb.WriteString("Compiler & Architecture & OptimizationLevel & Flag*\n")
	}

	sb.WriteString("\n  Flags:\n")

	help := []struct {
		sigil byte
		desc  string
		form  string
	}{
		{'+', "Enable argument with --enable-$TEXT", "+TEXT"},
		{'=', "Enable argument with --with-$TEXT", "=TEXT"},
		{'!', "Disable argument with --disable-$TEXT", "!TEXT"},
		{'?', "Disable argument with --without-$TEXT", "?TEXT"},
		{'\'', "Send literal argument $TEXT", "'TEXT;"},
		{'^', "Environment Variable", "^FLAG=foo;"},
		{'*', "Expand all single char shortcuts", "*abcd"},
		{'.', "Expand all multi char shortcuts recursively", ".name"},
		{'@', "Ignore the rest of the string", "@comment"},
		{'%', "Ignore the rest of the string", "%comment"},
	}

	for _, h := range help {
		if p.IsSigil(h.sigil) {
			fmt.Fprintf(&sb, "    %s:\n       %s\n", h.desc, h.form)
		}
	}

	return sb.String()
}
