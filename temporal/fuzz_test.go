package temporal

import "testing"

// FuzzParse checks that parsing never panics and that every successful
// parse is anchored and self-consistent.
func FuzzParse(f *testing.F) {
	f.Add("2021-04-01")
	f.Add("20210401")
	f.Add("+002021-04-01")
	f.Add("−000001-01-01")
	f.Add("2021-04-01T12:30:15.123456789")
	f.Add("2021-04-01 1230")
	f.Add("2021-04-01T23:59:60[u-ca=iso-8601]")
	f.Add("2021-04-01T12:00+01:00")
	f.Add("2021-0401")
	f.Add("")

	f.Fuzz(func(t *testing.T, input string) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("parser panicked on input %q: %v", input, r)
			}
		}()

		res, ok := Parse(TemporalDateString, input)
		if !ok {
			if res != nil {
				t.Errorf("%q: expected nil result on mismatch", input)
			}

			return
		}

		if Matches(TemporalDateString, input+"!") {
			t.Errorf("%q: expected trailing input to fail", input)
		}

		for _, sym := range []Symbol{DateYear, DateMonth, DateDay} {
			if _, ok := res.Text(sym); !ok {
				t.Errorf("%q: expected %s to be captured", input, sym)
			}
		}

		for sym := range Symbols() {
			span, ok := res.Span(sym)
			if !ok {
				continue
			}

			if span.Start < 0 || span.End > len(input) || span.Len() <= 0 {
				t.Errorf("%q: %s has invalid span %v", input, sym, span)
			}
		}

		// A second parse of the same input must agree.
		again, ok := Parse(TemporalDateString, input)
		if !ok || again.spans != res.spans {
			t.Errorf("%q: expected deterministic result", input)
		}
	})
}
