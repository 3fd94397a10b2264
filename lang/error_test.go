package lang

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
)

func TestReport(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "top level",
			input: "cdo.nope",
			want: "unrecognized multi char shortcut: \"nope\"\n" +
				"Context: cdo.nope\n" +
				"         ----^\n",
		},
		{
			name:  "at start",
			input: "xdo",
			want: "unrecognized compiler: \"x\"\n" +
				"Context: xdo\n" +
				"         ^\n",
		},
		{
			name:  "inside template",
			input: "cdo.bad",
			want:  "unrecognized multi char shortcut: \"nope\" (in .bad)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(context.Background(), tt.input, WithProfile(testProfile()))
			if err == nil {
				t.Fatal("expected error")
			}

			var buf bytes.Buffer
			if err := Report(&buf, err, tt.input); err != nil {
				t.Fatal(err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("report mismatch\ngot:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestParseError_PositionSuffixOnly(t *testing.T) {
	p := testProfile()
	p.Tables.Macros["m"] = `^A=1;x`

	// The failing remainder "x" occurs in the input but is not its suffix.
	const input = "cdo.m'x;"

	_, err := Compile(context.Background(), input, WithProfile(p))

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}

	if pe.Remainder != "x" {
		t.Fatalf("remainder = %q, want %q", pe.Remainder, "x")
	}

	if pos, ok := pe.Position(input); ok {
		t.Errorf("position = %d, want none", pos)
	}

	var buf bytes.Buffer
	if err := pe.Report(&buf, input); err != nil {
		t.Fatal(err)
	}

	if want := pe.Error() + "\n"; buf.String() != want {
		t.Errorf("report = %q, want %q", buf.String(), want)
	}
}

func TestReport_PlainError(t *testing.T) {
	var buf bytes.Buffer
	if err := Report(&buf, errors.New("boom"), "cdo"); err != nil {
		t.Fatal(err)
	}

	if got := buf.String(); got != "boom\n" {
		t.Errorf("got %q, want %q", got, "boom\n")
	}
}

func TestError_Is(t *testing.T) {
	derived := ErrInvalidTable.Wrap(fmt.Errorf("cause")).With(slog.String("key", "x"))

	if !errors.Is(derived, ErrInvalidTable) {
		t.Error("derived error does not match its sentinel")
	}

	if errors.Is(derived, ErrInvalidProfile) {
		t.Error("derived error matches an unrelated sentinel")
	}

	if errors.Is(ErrInvalidTable, derived) {
		t.Error("sentinel matches a derived error")
	}

	if got, want := derived.Error(), "invalid table entry: cause"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParseError_LogValue(t *testing.T) {
	pe := &ParseError{
		Kind:      ErrUnknownMacro,
		Token:     "nope",
		Remainder: "nope",
		Trace:     []string{".def"},
	}

	got := map[string]string{}
	for _, a := range pe.LogValue().Group() {
		got[a.Key] = a.Value.String()
	}

	want := map[string]string{
		"error":     "unrecognized multi char shortcut",
		"token":     "nope",
		"remainder": "nope",
		"trace":     ".def",
	}

	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}
