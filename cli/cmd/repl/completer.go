package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "list", "where", "edit", "clear", "quit"}

// calendarPrefix opens a calendar annotation.
const calendarPrefix = "[u-ca="

// calendars are the calendar identifiers offered inside a calendar
// annotation. Any identifier made of 3 to 8 alphanumeric characters per
// hyphen-separated component is accepted by the grammar.
var calendars = []string{
	"buddhist", "chinese", "coptic", "dangi", "ethioaa", "ethiopic",
	"gregory", "hebrew", "indian", "islamic", "islamic-civil",
	"islamic-rgsa", "islamic-tbla", "islamic-umalqura", "iso8601",
	"japanese", "persian", "roc",
}

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes. Hyphens are intentionally excluded because calendar identifiers
// contain them (e.g., islamic-civil).
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', ':', '[', ']', '=':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input.
// Returns an empty word when the cursor sits on a boundary (after a space,
// after "=", start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(max(cursor, 0), len(input))

	// Walk backward from cursor to find word start.
	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	// Walk forward from cursor to find word end.
	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// completionCandidates returns the names that can complete the word starting
// at wordStart, and whether an empty word should list all of them.
//
// Control commands complete the first word in control mode, or the word
// after a leading ":" in parse mode. Calendar identifiers complete the word
// following a calendar annotation prefix.
func completionCandidates(
	mode inputMode,
	input string,
	wordStart int,
) (candidates []string, browse bool) {
	switch {
	case mode == modeCtrl:
		if strings.TrimSpace(input[:wordStart]) == "" {
			return ctrlCommands, false
		}

	case strings.HasPrefix(input, ":") && wordStart == 1:
		return ctrlCommands, false

	case strings.HasSuffix(input[:wordStart], calendarPrefix):
		return calendars, true
	}

	return nil, false
}

// computeMatches calculates the fuzzy match results for the word at the cursor.
// It returns the matches (ranked best-first) and the word boundaries.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	wordStart, wordEnd int,
) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())

	candidates, browse := completionCandidates(m.mode, input, wordStart)
	if len(candidates) == 0 {
		return nil, wordStart, wordEnd
	}

	if word == "" {
		if !browse {
			return nil, wordStart, wordEnd
		}

		// Return all candidates as unfiltered matches.
		matches = make(fuzzy.Matches, len(candidates))
		for i, c := range candidates {
			matches[i] = fuzzy.Match{Str: c, Index: i}
		}

		return matches, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func (s *styles) renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := s.hint.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := s.renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		// Check if adding this candidate would exceed width.
		if i > 0 && used+entryWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted.
func (s *styles) renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := s.suggestion, s.suggestionMatch
	if selected {
		base, highlight = s.selected, s.selectedMatch
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matchSet[i] {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}
