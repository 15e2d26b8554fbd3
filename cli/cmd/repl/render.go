package repl

import (
	"cmp"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/iso8601/temporal"
)

// styles holds every style the REPL renders with. Styles are bound to the
// renderer of the output they are written to, so color is dropped when that
// output is not a terminal.
type styles struct {
	prompt          lipgloss.Style
	ctrlPrompt      lipgloss.Style
	input           lipgloss.Style
	result          lipgloss.Style
	error           lipgloss.Style
	hint            lipgloss.Style
	suggestion      lipgloss.Style
	suggestionMatch lipgloss.Style
	selected        lipgloss.Style
	selectedMatch   lipgloss.Style
	symbol          []lipgloss.Style
}

func newStyles(w io.Writer) *styles {
	r := lipgloss.NewRenderer(w)
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &styles{
		prompt:          fg("6").Bold(true),
		ctrlPrompt:      fg("5").Bold(true),
		input:           fg("15"),
		result:          fg("2"),
		error:           fg("1"),
		hint:            fg("8"),
		suggestion:      fg("4"),
		suggestionMatch: fg("4").Bold(true),
		selected:        fg("0").Background(lipgloss.Color("4")),
		selectedMatch:   fg("0").Background(lipgloss.Color("4")).Bold(true),
		symbol: []lipgloss.Style{
			fg("1"), fg("3"), fg("2"), fg("6"), fg("4"), fg("5"),
		},
	}
}

// symbolStyle returns the style that distinguishes sym's text.
func (s *styles) symbolStyle(sym temporal.Symbol) lipgloss.Style {
	return s.symbol[int(sym)%len(s.symbol)]
}

// owners assigns each byte of the parsed input to the innermost symbol
// capturing it, or -1 if no symbol does.
func owners(r *temporal.ParseResult) []temporal.Symbol {
	owner := make([]temporal.Symbol, len(r.Source()))
	for i := range owner {
		owner[i] = -1
	}

	type capture struct {
		sym  temporal.Symbol
		span temporal.Span
	}

	var caps []capture

	for sym := range r.All() {
		span, _ := r.Span(sym)
		caps = append(caps, capture{sym, span})
	}

	// Paint wider spans first so nested spans (the sign inside the year)
	// keep their own style.
	slices.SortStableFunc(caps, func(a, b capture) int {
		return cmp.Compare(b.span.Len(), a.span.Len())
	})

	for _, c := range caps {
		for i := c.span.Start; i < c.span.End; i++ {
			owner[i] = c.sym
		}
	}

	return owner
}

// highlight renders the parsed input with each captured symbol styled.
func (s *styles) highlight(r *temporal.ParseResult) string {
	src := r.Source()
	owner := owners(r)

	var b strings.Builder

	for start := 0; start < len(src); {
		end := start + 1
		for end < len(src) && owner[end] == owner[start] {
			end++
		}

		style := s.input
		if owner[start] >= 0 {
			style = s.symbolStyle(owner[start])
		}

		b.WriteString(style.Render(src[start:end]))

		start = end
	}

	return b.String()
}

// renderResult renders the highlighted input followed by one aligned
// "name: text" line per captured symbol.
func (s *styles) renderResult(r *temporal.ParseResult) string {
	width := 0

	for sym := range r.All() {
		width = max(width, len(sym.String()))
	}

	var b strings.Builder

	b.WriteString(s.result.Render("✔ "))
	b.WriteString(s.highlight(r))

	for sym, text := range r.All() {
		name := sym.String()

		b.WriteString("\n  ")
		b.WriteString(s.hint.Render(name + ":" + strings.Repeat(" ", width-len(name))))
		b.WriteString(" ")
		b.WriteString(s.symbolStyle(sym).Render(text))
	}

	return b.String()
}

// renderFailure renders an input that did not match.
func (s *styles) renderFailure(input string, reason string) string {
	return s.error.Render("✘ "+input) + s.hint.Render(" ("+reason+")")
}
