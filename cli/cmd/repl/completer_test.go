package repl

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/wfm/lang"
)

func testProfile(t *testing.T) *lang.Profile {
	t.Helper()

	p, err := lang.LookupProfile("wfm")
	if err != nil {
		t.Fatal(err)
	}

	return p
}

func TestWordBounds_Sigils(t *testing.T) {
	p := testProfile(t)

	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantSigil byte
		wantStart int
		wantEnd   int
	}{
		{"prefix", "cdo", 3, "cdo", 0, 0, 3},
		{"macro", "cdo.db", 6, "db", '.', 4, 6},
		{"empty macro", "cdo.", 4, "", '.', 4, 4},
		{"shortcut", "cdo*sj", 6, "sj", '*', 4, 6},
		{"mid word", "cdo.shell+x", 6, "shell", '.', 4, 9},
		{"enable", "cdo+jem", 7, "jem", '+', 4, 7},
		{"after macro", "cdo.dbg.sh", 10, "sh", '.', 8, 10},
		{"cursor clamped", "cdo.x", 99, "x", '.', 4, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, sigil, start, end := wordBounds(p, tt.input, tt.cursor)
			if word != tt.wantWord || sigil != tt.wantSigil ||
				start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %q, %d, %d), want (%q, %q, %d, %d)",
					tt.input, tt.cursor, word, sigil, start, end,
					tt.wantWord, tt.wantSigil, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func matchStrings(m model) []string {
	var out []string
	for _, match := range m.matches {
		out = append(out, match.Str)
	}

	return out
}

func TestComputeMatches(t *testing.T) {
	p := testProfile(t)

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"prefix has no candidates", "cd", nil},
		{"shortcut has no candidates", "cdo*s", nil},
		{"fuzzy macro", "cdo.shel", []string{"shell"}},
		{"empty macro lists all", "cdo.", p.Tables.MacroNames()},
		{"control command", ":ta", []string{"tables"}},
		{"bare control prefix", ":", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(context.Background(), p, NewHistory(""), testLogger())
			m.input.SetValue(tt.input)
			m.input.CursorEnd()
			m.refresh(false)

			if diff := cmp.Diff(tt.want, matchStrings(m)); diff != "" {
				t.Errorf("matches mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEllipsize(t *testing.T) {
	parts := []string{"aaaa", "bbbb", "cccc"}

	if got := ellipsize(parts, 80); got != "aaaa  bbbb  cccc" {
		t.Errorf("ellipsize() = %q, want all parts", got)
	}

	if got := ellipsize(parts, 0); got != "" {
		t.Errorf("ellipsize() with no width = %q, want empty", got)
	}
}
