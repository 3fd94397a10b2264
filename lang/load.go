package lang

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
)

// profileDoc is the YAML form of a [Profile].
//
//	name: mine
//	base: wfm
//	tables:
//	  macros:
//	    js: +jemalloc.shell
type profileDoc struct {
	Name   string  `yaml:"name"`
	Base   string  `yaml:"base"`
	Sigils *string `yaml:"sigils"`
	Order  string  `yaml:"order"`
	Marker *string `yaml:"marker"`
	Tables *Tables `yaml:"tables"`
}

// LoadProfile reads a profile document from r. The document names a
// built-in base profile ([DefaultProfile] if omitted) whose settings and
// tables it extends. The result is validated before it is returned.
func LoadProfile(ctx context.Context, r io.Reader) (*Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	var doc profileDoc
	if err := yaml.UnmarshalContext(ctx, data, &doc, yaml.Strict()); err != nil {
		return nil, ErrInvalidProfile.Wrap(err)
	}

	base := doc.Base
	if base == "" {
		base = DefaultProfile
	}

	p, err := LookupProfile(base)
	if err != nil {
		return nil, err
	}

	if doc.Name != "" {
		p.Name = doc.Name
	}

	if doc.Sigils != nil {
		p.Sigils = *doc.Sigils
	}

	if doc.Order != "" {
		order, ok := ParseOrder(doc.Order)
		if !ok {
			return nil, ErrInvalidProfile.With(slog.String("order", doc.Order))
		}

		p.Order = order
	}

	if doc.Marker != nil {
		switch len(*doc.Marker) {
		case 0:
			p.Marker = 0
		case 1:
			p.Marker = (*doc.Marker)[0]
		default:
			return nil, ErrInvalidProfile.With(slog.String("marker", *doc.Marker))
		}
	}

	p.Tables.Merge(doc.Tables)

	if err := p.Validate(ctx); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks that the profile is usable: sigils are known, the marker
// is not a sigil, keys have the right shape, and every template expands.
// Expanding every template catches cyclic and dangling references before
// any configuration string is compiled.
func (p *Profile) Validate(ctx context.Context) error {
	for i := range len(p.Sigils) {
		if strings.IndexByte(KnownSigils, p.Sigils[i]) < 0 {
			return ErrInvalidProfile.With(
				slog.String("profile", p.Name),
				slog.String("sigil", p.Sigils[i:i+1]),
			)
		}
	}

	if p.Marker != 0 && p.IsSigil(p.Marker) {
		return ErrInvalidProfile.With(
			slog.String("profile", p.Name),
			slog.String("marker", string(p.Marker)),
		)
	}

	if p.Tables == nil {
		return ErrInvalidProfile.With(slog.String("profile", p.Name))
	}

	for k, d := range p.Tables.Compilers {
		if err := p.checkKey(GroupCompilers, k); err != nil {
			return err
		}

		for a := range d.Architectures {
			if err := p.checkKey(GroupArchitectures, a); err != nil {
				return err
			}
		}
	}

	for k := range p.Tables.Optimizations {
		if err := p.checkKey(GroupOptimizations, k); err != nil {
			return err
		}
	}

	for k := range p.Tables.Shortcuts {
		if err := p.checkKey(GroupShortcuts, k); err != nil {
			return err
		}
	}

	for k := range p.Tables.Macros {
		if k == "" || strings.ContainsFunc(k, func(r rune) bool {
			return r < 0x80 && p.IsSigil(byte(r))
		}) {
			return ErrInvalidTable.With(
				slog.String("group", GroupMacros),
				slog.String("key", k),
			)
		}
	}

	for _, e := range p.Tables.Entries() {
		if _, err := Expand(ctx, e.Template, WithProfile(p)); err != nil {
			return ErrInvalidTable.Wrap(err).With(
				slog.String("group", e.Group),
				slog.String("key", e.Key),
			)
		}
	}

	return nil
}

// checkKey requires a single non-sigil byte.
func (p *Profile) checkKey(group, key string) error {
	if len(key) != 1 || p.IsSigil(key[0]) {
		return ErrInvalidTable.With(
			slog.String("group", group),
			slog.String("key", key),
		)
	}

	return nil
}
