package temporal

import (
	"bytes"
	"context"
	"encoding/json"
	"maps"
	"testing"

	"github.com/goccy/go-yaml"
)

func mustParse(t testing.TB, input string) *ParseResult {
	t.Helper()

	res, ok := Parse(TemporalDateString, input)
	if !ok {
		t.Fatalf("expected %q to match", input)
	}

	return res
}

func TestParseResult_ToMap(t *testing.T) {
	res := mustParse(t, "2021-04-01T12")

	want := map[string]any{
		"date_year":  "2021",
		"date_month": "04",
		"date_day":   "01",
		"time_hour":  "12",
	}

	if got := res.ToMap(); !maps.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParseResult_ToMapSlice(t *testing.T) {
	res := mustParse(t, "+002021-04-01[u-ca=iso8601]")

	wantKeys := []string{"sign", "date_year", "date_month", "date_day", "calendar_name"}

	got := res.ToMapSlice()
	if len(got) != len(wantKeys) {
		t.Fatalf("expected %d items, got %d", len(wantKeys), len(got))
	}

	for i, key := range wantKeys {
		if got[i].Key != key {
			t.Errorf("item %d: expected key %q, got %v", i, key, got[i].Key)
		}
	}
}

func TestParseResult_MarshalJSON(t *testing.T) {
	res := mustParse(t, "2021-04-01")

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := `{"date_day":"01","date_month":"04","date_year":"2021"}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
}

func TestParseResult_MarshalYAML(t *testing.T) {
	res := mustParse(t, "2021-04-01T12:30:15.5")

	for _, indent := range []int{0, 2, 4} {
		var buf bytes.Buffer

		err := FormatYAML(context.Background(), &buf, res, indent)
		if err != nil {
			t.Fatalf("indent %d: FormatYAML failed: %v", indent, err)
		}

		var got map[string]string

		err = yaml.Unmarshal(buf.Bytes(), &got)
		if err != nil {
			t.Fatalf("indent %d: Unmarshal failed: %v\n%s", indent, err, buf.String())
		}

		want := map[string]string{
			"date_year":            "2021",
			"date_month":           "04",
			"date_day":             "01",
			"time_hour":            "12",
			"time_minute":          "30",
			"time_second":          "15",
			"time_fractional_part": "5",
		}

		if !maps.Equal(got, want) {
			t.Errorf("indent %d: expected %v, got %v", indent, want, got)
		}
	}
}

func TestParseResult_Format(t *testing.T) {
	res := mustParse(t, "2021-04-01")

	var buf bytes.Buffer

	err := res.Format(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	want := "date_year:  2021\n" +
		"date_month: 04\n" +
		"date_day:   01\n"

	if buf.String() != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, buf.String())
	}
}

func TestFormatJSON(t *testing.T) {
	res := mustParse(t, "2021-04-01")

	var compact, pretty bytes.Buffer

	if err := FormatJSON(context.Background(), &compact, res, 0); err != nil {
		t.Fatalf("FormatJSON failed: %v", err)
	}

	if err := FormatJSON(context.Background(), &pretty, res, 2); err != nil {
		t.Fatalf("FormatJSON failed: %v", err)
	}

	wantCompact := `{"date_day":"01","date_month":"04","date_year":"2021"}` + "\n"
	if compact.String() != wantCompact {
		t.Errorf("expected %q, got %q", wantCompact, compact.String())
	}

	wantPretty := "{\n" +
		"  \"date_day\": \"01\",\n" +
		"  \"date_month\": \"04\",\n" +
		"  \"date_year\": \"2021\"\n" +
		"}\n"
	if pretty.String() != wantPretty {
		t.Errorf("expected %q, got %q", wantPretty, pretty.String())
	}
}
