package temporal

//go:generate go tool stringer --type Production --output production_string.go

import (
	"iter"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Production identifies a top-level grammar rule that a complete input can
// be parsed against.
type Production int

const (
	// TemporalDateString is a calendar date, optionally followed by a time of
	// day and a calendar annotation, e.g. "2021-04-01T12:30:15.5[u-ca=iso8601]".
	TemporalDateString Production = iota
)

// entry maps each Production to the grammar rule it parses.
var entry = map[Production]func(*parser) bool{
	TemporalDateString: (*parser).temporalDateString,
}

// Productions returns an iterator over all registered productions in
// ascending order.
func Productions() iter.Seq[Production] {
	return func(yield func(Production) bool) {
		for _, prod := range slices.Sorted(maps.Keys(entry)) {
			if !yield(prod) {
				return
			}
		}
	}
}

// LookupProduction returns the production whose name equals name, ignoring
// case.
//
// If no production has that name, the returned error wraps
// [ErrUnknownProduction] and carries the closest registered names, if any,
// in a "suggestions" attribute.
func LookupProduction(name string) (Production, error) {
	var names []string

	for prod := range Productions() {
		if strings.EqualFold(prod.String(), strings.TrimSpace(name)) {
			return prod, nil
		}

		names = append(names, prod.String())
	}

	err := ErrUnknownProduction.With(slog.String("name", name))

	if suggest := Suggest(name, names); len(suggest) > 0 {
		err = err.With(slog.String("suggestions", strings.Join(suggest, ",")))
	}

	return 0, err
}

// maxSuggestions limits the number of names returned by [Suggest].
const maxSuggestions = 3

// Suggest returns up to three candidates that fuzzy-match pattern, best
// match first.
func Suggest(pattern string, candidates []string) []string {
	matches := fuzzy.Find(pattern, candidates)

	out := make([]string, 0, min(len(matches), maxSuggestions))
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}

		out = append(out, m.Str)
	}

	return out
}
