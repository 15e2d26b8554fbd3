package cmd

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
)

func TestParse_Text(t *testing.T) {
	ctx, out := kongContext(t)

	err := (&Parse{Format: "text", Input: []string{"2021-04-01"}}).Run(ctx)
	if err != nil {
		t.Fatal(err)
	}

	want := "date_year:  2021\ndate_month: 04\ndate_day:   01\n"
	if got := out.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParse_TextMultiple(t *testing.T) {
	ctx, out := kongContext(t)

	err := (&Parse{
		Format: "text",
		Input:  []string{"bad", "2021-04-01", "2021-04-01T12:30"},
	}).Run(ctx)
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}

	got := out.String()

	if !strings.HasPrefix(got, "# 2021-04-01\n") {
		t.Errorf("expected first match header without leading blank line, got %q", got)
	}

	for _, want := range []string{"\n\n# 2021-04-01T12:30\n", "time_minute: 30\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in %q", want, got)
		}
	}

	if strings.Contains(got, "bad") {
		t.Errorf("expected unmatched input to be omitted, got %q", got)
	}
}

func TestParse_JSON(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    string
		wantErr error
	}{
		{
			name:  "match",
			input: []string{"2021-04-01"},
			want: `{"input":"2021-04-01","match":true,` +
				`"captures":{"date_day":"01","date_month":"04","date_year":"2021"}}` + "\n",
		},
		{
			name:    "no match",
			input:   []string{"2021-4-01"},
			want:    `{"input":"2021-4-01","match":false}` + "\n",
			wantErr: ErrNoMatch,
		},
		{
			name:    "list",
			input:   []string{"x", "2021-04-01"},
			want:    `[{"input":"x","match":false},{"input":"2021-04-01","match":true,` +
				`"captures":{"date_day":"01","date_month":"04","date_year":"2021"}}]` + "\n",
			wantErr: ErrNoMatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := kongContext(t)

			err := (&Parse{Format: "json", Indent: 0, Input: tt.input}).Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Fatal(err)
			}

			if got := out.String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParse_YAML(t *testing.T) {
	ctx, out := kongContext(t)

	err := (&Parse{
		Format: "yaml",
		Indent: 2,
		Input:  []string{"2021-04-01T12:30[u-ca=gregory]", "nope"},
	}).Run(ctx)
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}

	var records []map[string]any
	if err := yaml.Unmarshal(out.Bytes(), &records); err != nil {
		t.Fatalf("invalid YAML %q: %v", out.String(), err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	if records[0]["match"] != true || records[1]["match"] != false {
		t.Errorf("unexpected match values: %v", records)
	}

	captures, ok := records[0]["captures"].(map[string]any)
	if !ok {
		t.Fatalf("expected captures map, got %T", records[0]["captures"])
	}

	if captures["calendar_name"] != "gregory" || captures["time_hour"] != "12" {
		t.Errorf("unexpected captures: %v", captures)
	}

	if _, ok := records[1]["captures"]; ok {
		t.Error("expected captures to be omitted for a failed match")
	}
}

func TestParse_Cancelled(t *testing.T) {
	ctx, out := kongContext(t)

	ctx, cancel := context.WithCancel(ctx)
	cancel()

	err := (&Parse{Format: "text", Input: []string{"2021-04-01"}}).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}
