package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the terminal styles of a pretty handler. Styles render as
// plain text when the output does not support color.
type palette struct {
	key      lipgloss.Style
	str      lipgloss.Style
	num      lipgloss.Style
	yes      lipgloss.Style
	no       lipgloss.Style
	null     lipgloss.Style
	time     lipgloss.Style
	duration lipgloss.Style
	punct    lipgloss.Style
}

func newPalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)

	return &palette{
		key:      r.NewStyle().Foreground(lipgloss.Color("8")),
		str:      r.NewStyle().Foreground(lipgloss.Color("6")),
		num:      r.NewStyle().Foreground(lipgloss.Color("3")),
		yes:      r.NewStyle().Foreground(lipgloss.Color("2")),
		no:       r.NewStyle().Foreground(lipgloss.Color("1")),
		null:     r.NewStyle().Foreground(lipgloss.Color("8")),
		time:     r.NewStyle().Foreground(lipgloss.Color("4")),
		duration: r.NewStyle().Foreground(lipgloss.Color("5")),
		punct:    r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// level returns the style of a record level.
func (p *palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.no
	case l >= slog.LevelWarn:
		return p.num
	case l >= slog.LevelInfo:
		return p.yes
	case l >= slog.LevelDebug:
		return p.time
	default:
		return p.key
	}
}

// groupOrAttrs is one call to WithGroup or WithAttrs.
type groupOrAttrs struct {
	group string
	attrs []slog.Attr
}

// prettyHandler writes colorized records for terminals, either as
// key=value lines or as indented JSON objects.
type prettyHandler struct {
	opts   slog.HandlerOptions
	format Format
	style  *palette
	mu     *sync.Mutex
	w      io.Writer
	goas   []groupOrAttrs
}

func newPrettyHandler(
	w io.Writer,
	format Format,
	opts *slog.HandlerOptions,
) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		format: format,
		style:  newPalette(w),
		mu:     &sync.Mutex{},
		w:      w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	return h.with(groupOrAttrs{attrs: attrs})
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	return h.with(groupOrAttrs{group: name})
}

func (h *prettyHandler) with(goa groupOrAttrs) *prettyHandler {
	h2 := *h
	h2.goas = append(slices.Clip(h.goas), goa)

	return &h2
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	level := r.Level

	var attrs []slog.Attr

	if !r.Time.IsZero() {
		attrs = append(attrs, slog.Time(slog.TimeKey, r.Time))
	}

	attrs = append(attrs, slog.Any(slog.LevelKey, level))

	if h.opts.AddSource && r.PC != 0 {
		if src := r.Source(); src != nil {
			attrs = append(attrs,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	attrs = append(attrs, slog.String(slog.MessageKey, r.Message))

	var tail []slog.Attr

	r.Attrs(func(a slog.Attr) bool {
		tail = append(tail, a)

		return true
	})

	attrs = append(attrs, nest(h.goas, tail)...)

	buf := new(bytes.Buffer)

	switch h.format {
	case FormatJSON:
		h.writeObject(buf, nil, attrs, level, 0)
	default:
		h.writeLine(buf, nil, attrs, level)
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// nest places tail inside the groups opened by goas, interleaved with the
// attributes added between them. Groups left empty are omitted.
func nest(goas []groupOrAttrs, tail []slog.Attr) []slog.Attr {
	if len(goas) == 0 {
		return tail
	}

	goa := goas[0]
	if goa.group == "" {
		return append(slices.Clone(goa.attrs), nest(goas[1:], tail)...)
	}

	inner := nest(goas[1:], tail)
	if len(inner) == 0 {
		return nil
	}

	return []slog.Attr{{Key: goa.group, Value: slog.GroupValue(inner...)}}
}

// resolve prepares a for output and reports whether it should be written.
func (h *prettyHandler) resolve(groups []string, a slog.Attr) (slog.Attr, bool) {
	a.Value = a.Value.Resolve()

	if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		a = h.opts.ReplaceAttr(groups, a)
		a.Value = a.Value.Resolve()
	}

	if a.Equal(slog.Attr{}) {
		return a, false
	}

	if a.Value.Kind() == slog.KindGroup && len(a.Value.Group()) == 0 {
		return a, false
	}

	return a, true
}

func (h *prettyHandler) writeLine(
	buf *bytes.Buffer,
	groups []string,
	attrs []slog.Attr,
	level slog.Level,
) {
	for _, a := range attrs {
		a, ok := h.resolve(groups, a)
		if !ok {
			continue
		}

		if a.Value.Kind() == slog.KindGroup {
			sub := groups
			if a.Key != "" {
				sub = append(slices.Clip(groups), a.Key)
			}

			h.writeLine(buf, sub, a.Value.Group(), level)

			continue
		}

		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}

		key := strings.Join(append(slices.Clip(groups), a.Key), ".")
		buf.WriteString(h.style.key.Render(key))
		buf.WriteString(h.style.punct.Render("="))
		buf.WriteString(h.textValue(groups, a, level))
	}
}

func (h *prettyHandler) writeObject(
	buf *bytes.Buffer,
	groups []string,
	attrs []slog.Attr,
	level slog.Level,
	depth int,
) {
	indent := strings.Repeat("  ", depth+1)
	attrs = inline(attrs)

	buf.WriteString(h.style.punct.Render("{"))

	first := true

	for _, a := range attrs {
		a, ok := h.resolve(groups, a)
		if !ok {
			continue
		}

		if !first {
			buf.WriteString(h.style.punct.Render(","))
		}

		first = false

		buf.WriteByte('\n')
		buf.WriteString(indent)
		buf.WriteString(h.style.key.Render(strconv.Quote(a.Key)))
		buf.WriteString(h.style.punct.Render(":"))
		buf.WriteByte(' ')

		if a.Value.Kind() == slog.KindGroup {
			h.writeObject(buf, append(slices.Clip(groups), a.Key), a.Value.Group(), level, depth+1)

			continue
		}

		buf.WriteString(h.jsonValue(groups, a, level))
	}

	if !first {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat("  ", depth))
	}

	buf.WriteString(h.style.punct.Render("}"))
}

// inline expands groups with an empty key into their members.
func inline(attrs []slog.Attr) []slog.Attr {
	var out []slog.Attr

	for _, a := range attrs {
		if a.Key == "" && a.Value.Kind() == slog.KindGroup {
			out = append(out, inline(a.Value.Group())...)

			continue
		}

		out = append(out, a)
	}

	return out
}

// isLevel reports whether a is the record level.
func isLevel(groups []string, a slog.Attr) bool {
	return len(groups) == 0 && a.Key == slog.LevelKey
}

func (h *prettyHandler) textValue(groups []string, a slog.Attr, level slog.Level) string {
	v := a.Value

	if isLevel(groups, a) {
		return h.style.level(level).Render(v.String())
	}

	switch v.Kind() {
	case slog.KindString:
		return h.style.str.Render(quoteIfNeeded(v.String()))
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.style.num.Render(v.String())
	case slog.KindBool:
		if v.Bool() {
			return h.style.yes.Render("true")
		}

		return h.style.no.Render("false")
	case slog.KindDuration:
		return h.style.duration.Render(v.Duration().String())
	case slog.KindTime:
		return h.style.time.Render(v.Time().Format(time.RFC3339Nano))
	default:
		if v.Any() == nil {
			return h.style.null.Render("<nil>")
		}

		if err, ok := v.Any().(error); ok {
			return h.style.no.Render(quoteIfNeeded(err.Error()))
		}

		return h.style.str.Render(quoteIfNeeded(v.String()))
	}
}

func (h *prettyHandler) jsonValue(groups []string, a slog.Attr, level slog.Level) string {
	v := a.Value

	if isLevel(groups, a) {
		return h.style.level(level).Render(strconv.Quote(v.String()))
	}

	switch v.Kind() {
	case slog.KindString:
		return h.style.str.Render(jsonString(v.String()))
	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.style.num.Render(v.String())
	case slog.KindBool:
		if v.Bool() {
			return h.style.yes.Render("true")
		}

		return h.style.no.Render("false")
	case slog.KindDuration:
		return h.style.duration.Render(jsonString(v.Duration().String()))
	case slog.KindTime:
		return h.style.time.Render(jsonString(v.Time().Format(time.RFC3339Nano)))
	default:
		x := v.Any()
		if x == nil {
			return h.style.null.Render("null")
		}

		if err, ok := x.(error); ok {
			return h.style.no.Render(jsonString(err.Error()))
		}

		data, err := json.Marshal(x)
		if err != nil {
			return h.style.str.Render(jsonString(fmt.Sprint(x)))
		}

		return h.style.str.Render(string(data))
	}
}

func jsonString(s string) string {
	data, err := json.Marshal(s)
	if err != nil {
		return strconv.Quote(s)
	}

	return string(data)
}

// quoteIfNeeded quotes s when it would not read back as a single token.
func quoteIfNeeded(s string) string {
	if s == "" {
		return `""`
	}

	for _, r := range s {
		if unicode.IsSpace(r) || r == '"' || r == '=' || !unicode.IsPrint(r) {
			return strconv.Quote(s)
		}
	}

	return s
}
