package lang

import (
	"iter"
	"log/slog"
	"slices"
	"strings"
)

// Order selects the position of the architecture and optimization selectors
// in the prefix of a configuration string. The compiler always comes first.
type Order int

const (
	// OrderArchOpt reads compiler, architecture, optimization.
	OrderArchOpt Order = iota
	// OrderOptArch reads compiler, optimization, architecture.
	OrderOptArch
)

// String returns the name used for o in profile documents.
func (o Order) String() string {
	switch o {
	case OrderArchOpt:
		return "arch-opt"
	case OrderOptArch:
		return "opt-arch"
	default:
		return "unknown"
	}
}

// ParseOrder parses the name of an [Order].
func ParseOrder(s string) (Order, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "arch-opt", "cao":
		return OrderArchOpt, true
	case "opt-arch", "coa":
		return OrderOptArch, true
	default:
		return 0, false
	}
}

// KnownSigils is every sigil a [Compiler] has a rule for. A profile enables a
// subset of them.
const KnownSigils = `^+=!?'*.@%`

// Profile selects one variant of the grammar: which sigils are active, the
// shape of the mandatory prefix, and the tables in force.
//
// A Profile is read-only once built and may be shared by any number of
// compilers.
type Profile struct {
	Name   string
	Sigils string
	Order  Order
	Marker byte // Mandatory leading byte, or 0 for none
	Tables *Tables
}

// IsSigil reports whether c introduces a rule in this profile.
func (p *Profile) IsSigil(c byte) bool {
	return strings.IndexByte(p.Sigils, c) >= 0
}

// PrefixLen returns the minimum number of bytes a configuration string must
// have, counting the marker.
func (p *Profile) PrefixLen() int {
	if p.Marker != 0 {
		return 4
	}

	return 3
}

// Clone returns a deep copy of p.
func (p *Profile) Clone() *Profile {
	c := *p
	c.Tables = p.Tables.Clone()

	return &c
}

// LogValue implements slog.LogValuer.
func (p *Profile) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("name", p.Name),
		slog.String("sigils", p.Sigils),
		slog.String("order", p.Order.String()),
	}

	if p.Marker != 0 {
		attrs = append(attrs, slog.String("marker", string(p.Marker)))
	}

	return slog.GroupValue(attrs...)
}

// DefaultProfile is the name of the profile used when none is selected.
const DefaultProfile = "wfm"

var builtinProfiles = map[string]func() *Profile{
	// First generation: compiler, optimization, architecture.
	"legacy": func() *Profile {
		return &Profile{
			Name:   "legacy",
			Sigils: `^+=!'*.`,
			Order:  OrderOptArch,
			Tables: legacyTables(),
		}
	},
	"wfm": func() *Profile {
		return &Profile{
			Name:   "wfm",
			Sigils: `^+=!?'*.@`,
			Order:  OrderArchOpt,
			Tables: currentTables(),
		}
	},
	// Strings carry a leading marker so they cannot be mistaken for other
	// directory names; '%' also terminates.
	"marked": func() *Profile {
		return &Profile{
			Name:   "marked",
			Sigils: `^+=!?'*.@%`,
			Order:  OrderArchOpt,
			Marker: '_',
			Tables: currentTables(),
		}
	},
}

// LookupProfile returns a fresh copy of the built-in profile with the given
// name.
func LookupProfile(name string) (*Profile, error) {
	mk, ok := builtinProfiles[name]
	if !ok {
		return nil, ErrUnknownProfile.With(slog.String("profile", name))
	}

	return mk(), nil
}

// Profiles returns an iterator over the names of the built-in profiles in
// sorted order.
func Profiles() iter.Seq[string] {
	return func(yield func(string) bool) {
		names := make([]string, 0, len(builtinProfiles))
		for name := range builtinProfiles {
			names = append(names, name)
		}

		slices.Sort(names)

		for _, name := range names {
			if !yield(name) {
				return
			}
		}
	}
}
