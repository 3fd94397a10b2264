package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles of a pretty handler. Styles are bound to the
// handler's output, so nothing is colored unless that output is a terminal.
type palette struct {
	plain                         lipgloss.Style
	key, str, num, dur, tim, null lipgloss.Style
	yes, no                       lipgloss.Style
	trace, debug, info, warn, err lipgloss.Style
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)
	plain := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	fg := func(c string) lipgloss.Style {
		return plain.Foreground(lipgloss.Color(c))
	}

	return &palette{
		plain: plain,
		key:   fg("8"),
		str:   fg("6"),
		num:   fg("3"),
		dur:   fg("5"),
		tim:   fg("4"),
		null:  fg("8"),
		yes:   fg("2"),
		no:    fg("1"),
		trace: fg("8"),
		debug: fg("4"),
		info:  fg("2"),
		warn:  fg("3"),
		err:   fg("1").Bold(true),
	}
}

func (p *palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.err
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// prettyHandler writes colorized records, either as key=value pairs on one
// line or as an indented JSON-like object.
type prettyHandler struct {
	opts   slog.HandlerOptions
	object bool
	pal    *palette
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr // Already qualified by group
	prefix string      // Group qualifier for attributes added later
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	object bool,
) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		object: object,
		pal:    newPalette(w),
		mu:     &sync.Mutex{},
		w:      w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	floor := slog.LevelInfo
	if h.opts.Level != nil {
		floor = h.opts.Level.Level()
	}

	return level >= floor
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = slices.Clip(h.attrs)

	for _, a := range attrs {
		c.attrs = appendFlat(c.attrs, h.prefix, a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]field, 0, 4+len(h.attrs)+r.NumAttrs())

	builtin := func(a slog.Attr, style lipgloss.Style) {
		if h.opts.ReplaceAttr != nil {
			a = h.opts.ReplaceAttr(nil, a)
		}

		if a.Key != "" {
			fields = append(fields, field{a.Key, h.pal.render(a.Value, &style)})
		}
	}

	if !r.Time.IsZero() {
		builtin(slog.Time(slog.TimeKey, r.Time), h.pal.tim)
	}

	builtin(slog.Any(slog.LevelKey, r.Level), h.pal.level(r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			builtin(slog.String(slog.SourceKey,
				fmt.Sprintf("%s:%d", src.File, src.Line)), h.pal.key)
		}
	}

	builtin(slog.String(slog.MessageKey, r.Message), h.pal.plain)

	for _, a := range h.attrs {
		fields = append(fields, field{a.Key, h.pal.render(a.Value, nil)})
	}

	var flat []slog.Attr

	r.Attrs(func(a slog.Attr) bool {
		flat = appendFlat(flat, h.prefix, a)

		return true
	})

	for _, a := range flat {
		fields = append(fields, field{a.Key, h.pal.render(a.Value, nil)})
	}

	var buf bytes.Buffer
	if h.object {
		h.writeObject(&buf, fields)
	} else {
		h.writeLine(&buf, fields)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

type field struct{ key, val string }

func (h *prettyHandler) writeLine(buf *bytes.Buffer, fields []field) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.pal.key.Render(f.key))
		buf.WriteByte('=')
		buf.WriteString(f.val)
	}

	buf.WriteByte('\n')
}

func (h *prettyHandler) writeObject(buf *bytes.Buffer, fields []field) {
	buf.WriteString("{\n")

	for i, f := range fields {
		buf.WriteString("  ")
		buf.WriteString(h.pal.key.Render(f.key))
		buf.WriteString(": ")
		buf.WriteString(f.val)

		if i < len(fields)-1 {
			buf.WriteByte(',')
		}

		buf.WriteByte('\n')
	}

	buf.WriteString("}\n")
}

// appendFlat resolves a and appends it to attrs, expanding groups into
// dotted keys.
func appendFlat(attrs []slog.Attr, prefix string, a slog.Attr) []slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() != slog.KindGroup {
		if a.Key == "" {
			return attrs
		}

		return append(attrs, slog.Attr{Key: prefix + a.Key, Value: a.Value})
	}

	if a.Key != "" {
		prefix += a.Key + "."
	}

	for _, g := range a.Value.Group() {
		attrs = appendFlat(attrs, prefix, g)
	}

	return attrs
}

// render formats v, colored by its kind unless style overrides it.
func (p *palette) render(v slog.Value, style *lipgloss.Style) string {
	var (
		s  string
		st lipgloss.Style
	)

	switch v.Kind() {
	case slog.KindString:
		s, st = v.String(), p.str
	case slog.KindInt64:
		s, st = strconv.FormatInt(v.Int64(), 10), p.num
	case slog.KindUint64:
		s, st = strconv.FormatUint(v.Uint64(), 10), p.num
	case slog.KindFloat64:
		s, st = strconv.FormatFloat(v.Float64(), 'g', -1, 64), p.num
	case slog.KindBool:
		s, st = strconv.FormatBool(v.Bool()), p.no
		if v.Bool() {
			st = p.yes
		}
	case slog.KindDuration:
		s, st = v.Duration().String(), p.dur
	case slog.KindTime:
		s, st = v.Time().Format(time.RFC3339), p.tim
	case slog.KindAny:
		switch a := v.Any().(type) {
		case nil:
			s, st = "null", p.null
		case slog.Level:
			s, st = strings.ToUpper(Level(a).String()), p.level(a)
		case error:
			s, st = a.Error(), p.err
		default:
			s, st = fmt.Sprint(a), p.str
		}
	default:
		s, st = v.String(), p.str
	}

	if style != nil {
		st = *style
	}

	return st.Render(s)
}
