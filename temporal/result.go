package temporal

//go:generate go tool stringer --linecomment --type Symbol --output symbol_string.go

import "iter"

// Symbol identifies a grammar symbol whose matched text is captured in a
// [ParseResult].
type Symbol int

const (
	Sign               Symbol = iota // sign
	DateYear                         // date_year
	DateMonth                        // date_month
	DateDay                          // date_day
	TimeHour                         // time_hour
	TimeMinute                       // time_minute
	TimeSecond                       // time_second
	TimeFractionalPart               // time_fractional_part
	CalendarName                     // calendar_name
)

const numSymbols = int(CalendarName) + 1

// Symbols returns an iterator over all capturing symbols in declaration order.
func Symbols() iter.Seq[Symbol] {
	return func(yield func(Symbol) bool) {
		for sym := range Symbol(numSymbols) {
			if !yield(sym) {
				return
			}
		}
	}
}

// Span is a half-open byte range [Start, End) of the parsed input.
//
// The zero Span means the symbol was not captured. Every capturing production
// consumes at least one byte, so a captured Span is never empty.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by s.
func (s Span) Len() int { return s.End - s.Start }

// IsZero reports whether s is the zero (absent) Span.
func (s Span) IsZero() bool { return s.End <= s.Start }

// captures holds one Span per Symbol. It is a value type so that a
// transaction snapshot is a plain copy.
type captures [numSymbols]Span

// ParseResult is the set of sub-ranges captured by a successful parse.
//
// Text returned by its accessors is a substring of the original input and
// shares its storage.
type ParseResult struct {
	source string
	spans  captures
}

// Source returns the complete input that was parsed.
func (r *ParseResult) Source() string { return r.source }

// Span returns the byte range captured for sym, if any.
func (r *ParseResult) Span(sym Symbol) (Span, bool) {
	if r == nil || sym < 0 || int(sym) >= numSymbols {
		return Span{}, false
	}

	s := r.spans[sym]

	return s, !s.IsZero()
}

// Text returns the input text captured for sym, if any.
func (r *ParseResult) Text(sym Symbol) (string, bool) {
	s, ok := r.Span(sym)
	if !ok {
		return "", false
	}

	return r.source[s.Start:s.End], true
}

// Len returns the number of captured symbols.
func (r *ParseResult) Len() int {
	if r == nil {
		return 0
	}

	n := 0

	for _, s := range r.spans {
		if !s.IsZero() {
			n++
		}
	}

	return n
}

// All returns an iterator over every captured symbol and its text, in
// [Symbol] order. Absent symbols are skipped.
func (r *ParseResult) All() iter.Seq2[Symbol, string] {
	return func(yield func(Symbol, string) bool) {
		for sym := range Symbols() {
			text, ok := r.Text(sym)
			if !ok {
				continue
			}

			if !yield(sym, text) {
				return
			}
		}
	}
}

func (r *ParseResult) Sign() (string, bool)     { return r.Text(Sign) }
func (r *ParseResult) Year() (string, bool)     { return r.Text(DateYear) }
func (r *ParseResult) Month() (string, bool)    { return r.Text(DateMonth) }
func (r *ParseResult) Day() (string, bool)      { return r.Text(DateDay) }
func (r *ParseResult) Hour() (string, bool)     { return r.Text(TimeHour) }
func (r *ParseResult) Minute() (string, bool)   { return r.Text(TimeMinute) }
func (r *ParseResult) Second() (string, bool)   { return r.Text(TimeSecond) }
func (r *ParseResult) Fraction() (string, bool) { return r.Text(TimeFractionalPart) }
func (r *ParseResult) Calendar() (string, bool) { return r.Text(CalendarName) }
