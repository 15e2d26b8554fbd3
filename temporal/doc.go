// Package temporal recognizes the ISO-8601 date/time strings of the
// ECMAScript Temporal proposal.
//
// The parser is a hand-written recursive-descent recognizer over a fixed set
// of grammar productions. It performs syntactic recognition only: a
// successful parse yields the sub-ranges of the input that matched each
// captured grammar symbol, and converting those into calendar values is left
// to the caller.
//
// # Parsing
//
// [Parse] matches a complete input against a [Production]. The input must
// match from its first byte to its last:
//
//	res, ok := temporal.Parse(temporal.TemporalDateString, "2021-04-01T12:30:15.25")
//	if ok {
//		year, _ := res.Year()       // "2021"
//		frac, _ := res.Fraction()   // "25"
//	}
//
// [ParseString] reports a mismatch as an error wrapping [ErrNoMatch] for
// callers that prefer error values and structured logging.
//
// # Grammar
//
// TemporalDateString accepts a date in extended (2021-04-01) or basic
// (20210401) form, an optional time introduced by a space, "T" or "t",
// and an optional calendar annotation such as "[u-ca=iso8601]":
//
//	TemporalDateString : CalendarDateTime
//	CalendarDateTime   : DateTime Calendar[opt]
//	DateTime           : Date TimeSpecSeparator[opt] TimeZone[opt]
//	Date               : DateYear - DateMonth - DateDay
//	                   | DateYear DateMonth DateDay
//	TimeSpec           : TimeHour
//	                   | TimeHour : TimeMinute
//	                   | TimeHour TimeMinute
//	                   | TimeHour : TimeMinute : TimeSecond TimeFraction[opt]
//	                   | TimeHour TimeMinute TimeSecond TimeFraction[opt]
//	Calendar           : [u-ca= CalendarName ]
//
// Years have four digits, or six digits when signed with "+", "-" or
// U+2212. Seconds may be 60. Fractions have one to nine digits after "." or
// ",". Time zone offsets and names are not recognized; input containing one
// fails to match.
//
// Alternatives are ordered and a production that fails leaves no captures
// behind. Parsing never looks past the end of the fixed-width pattern it is
// matching, so it runs in time linear in the input length with stack depth
// bounded by the grammar.
//
// # Supporting Types
//
// [Cache] memoizes results for repeated inputs, [ParseLines] parses a
// stream of newline-delimited inputs, and [Filter] selects results with an
// expr-lang boolean expression over the captured fields.
package temporal
