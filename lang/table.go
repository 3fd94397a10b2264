package lang

import (
	"maps"
	"slices"
)

// CompilerDescriptor describes one compiler selectable by the first byte of a
// configuration string.
type CompilerDescriptor struct {
	// Name is a human-readable label, e.g. "Clang".
	Name string `json:"name" yaml:"name"`
	// Flags is the template expanded whenever this compiler is selected.
	Flags string `json:"flags" yaml:"flags"`
	// Architectures maps an architecture selector to its template.
	Architectures map[string]string `json:"architectures" yaml:"architectures"`
}

// Tables holds the static lookup tables consulted while compiling.
//
// Compiler, architecture, optimization and shortcut keys are single bytes
// stored as one-character strings. Macro keys are names of any length that
// contain no sigil.
//
// Tables are never mutated by a [Compiler] and may be shared freely.
type Tables struct {
	Compilers     map[string]CompilerDescriptor `json:"compilers"     yaml:"compilers"`
	Optimizations map[string]string             `json:"optimizations" yaml:"optimizations"`
	Shortcuts     map[string]string             `json:"shortcuts"     yaml:"shortcuts"`
	Macros        map[string]string             `json:"macros"        yaml:"macros"`
}

// Clone returns a deep copy of t.
func (t *Tables) Clone() *Tables {
	c := &Tables{
		Compilers:     make(map[string]CompilerDescriptor, len(t.Compilers)),
		Optimizations: maps.Clone(t.Optimizations),
		Shortcuts:     maps.Clone(t.Shortcuts),
		Macros:        maps.Clone(t.Macros),
	}

	for k, d := range t.Compilers {
		d.Architectures = maps.Clone(d.Architectures)
		c.Compilers[k] = d
	}

	if c.Optimizations == nil {
		c.Optimizations = map[string]string{}
	}

	if c.Shortcuts == nil {
		c.Shortcuts = map[string]string{}
	}

	if c.Macros == nil {
		c.Macros = map[string]string{}
	}

	return c
}

// Merge copies every entry of other into t, replacing entries with the same
// key. Compiler architectures are merged per compiler.
func (t *Tables) Merge(other *Tables) {
	if other == nil {
		return
	}

	for k, d := range other.Compilers {
		prev, ok := t.Compilers[k]
		if !ok {
			d.Architectures = maps.Clone(d.Architectures)
			t.Compilers[k] = d

			continue
		}

		if d.Name != "" {
			prev.Name = d.Name
		}

		if d.Flags != "" {
			prev.Flags = d.Flags
		}

		if prev.Architectures == nil {
			prev.Architectures = map[string]string{}
		}

		maps.Copy(prev.Architectures, d.Architectures)
		t.Compilers[k] = prev
	}

	maps.Copy(t.Optimizations, other.Optimizations)
	maps.Copy(t.Shortcuts, other.Shortcuts)
	maps.Copy(t.Macros, other.Macros)
}

// Entry is one template of a [Tables] listing.
type Entry struct {
	Group    string // "Compilers", "Architectures", ...
	Key      string
	Template string
}

// Table group names used by [Tables.Entries].
const (
	GroupCompilers     = "Compilers"
	GroupArchitectures = "Architectures"
	GroupOptimizations = "Optimizations"
	GroupMacros        = "Multi Char Shortcuts (.)"
	GroupShortcuts     = "Single Char Shortcuts (*)"
)

// Entries returns every template in t grouped and sorted by key.
// Architecture keys are qualified by their compiler, e.g. "g4".
func (t *Tables) Entries() []Entry {
	var out []Entry

	for _, k := range slices.Sorted(maps.Keys(t.Compilers)) {
		out = append(out, Entry{GroupCompilers, k, t.Compilers[k].Flags})
	}

	for _, k := range slices.Sorted(maps.Keys(t.Compilers)) {
		arch := t.Compilers[k].Architectures
		for _, a := range slices.Sorted(maps.Keys(arch)) {
			out = append(out, Entry{GroupArchitectures, k + a, arch[a]})
		}
	}

	for _, k := range slices.Sorted(maps.Keys(t.Optimizations)) {
		out = append(out, Entry{GroupOptimizations, k, t.Optimizations[k]})
	}

	for _, k := range slices.Sorted(maps.Keys(t.Macros)) {
		out = append(out, Entry{GroupMacros, k, t.Macros[k]})
	}

	for _, k := range slices.Sorted(maps.Keys(t.Shortcuts)) {
		out = append(out, Entry{GroupShortcuts, k, t.Shortcuts[k]})
	}

	return out
}

// MacroNames returns the sorted macro names.
func (t *Tables) MacroNames() []string {
	return slices.Sorted(maps.Keys(t.Macros))
}

// ShortcutKeys returns the sorted single-character shortcut keys.
func (t *Tables) ShortcutKeys() []string {
	return slices.Sorted(maps.Keys(t.Shortcuts))
}
