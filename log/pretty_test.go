package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// pretty returns a pretty logger without timestamps. A bytes.Buffer is not
// a terminal, so no color codes are written.
func pretty(buf *bytes.Buffer, format Format, opts ...Option) Logger {
	return Make(buf, append([]Option{
		WithFormat(format),
		WithPretty(true),
		WithTimeLayout("none"),
		WithLevel(LevelTrace),
	}, opts...)...)
}

func TestPrettyText(t *testing.T) {
	tests := []struct {
		name  string
		log   func(Logger)
		want  string
	}{
		{
			name: "message and attributes",
			log: func(l Logger) {
				l.Info("parsed", slog.String("input", "2021-04-01"), slog.Int("captures", 3))
			},
			want: "level=INFO msg=parsed input=2021-04-01 captures=3\n",
		},
		{
			name: "quoting",
			log: func(l Logger) {
				l.Warn("no match", slog.String("input", "not a date"), slog.String("empty", ""))
			},
			want: `level=WARN msg="no match" input="not a date" empty=""` + "\n",
		},
		{
			name: "trace level",
			log:  func(l Logger) { l.Trace("t") },
			want: "level=TRACE msg=t\n",
		},
		{
			name: "kinds",
			log: func(l Logger) {
				l.Error("e",
					slog.Bool("ok", false),
					slog.Duration("took", 1500*time.Millisecond),
					slog.Any("err", errors.New("boom")),
					slog.Any("nothing", nil))
			},
			want: "level=ERROR msg=e ok=false took=1.5s err=boom nothing=<nil>\n",
		},
		{
			name: "groups",
			log: func(l Logger) {
				l.With(slog.String("a", "1")).
					WithGroup("g").
					With(slog.String("b", "2")).
					Info("m", slog.Group("h", slog.String("c", "3")))
			},
			want: "level=INFO msg=m a=1 g.b=2 g.h.c=3\n",
		},
		{
			name: "empty group omitted",
			log:  func(l Logger) { l.WithGroup("g").Info("m") },
			want: "level=INFO msg=m\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(pretty(&buf, FormatText))

			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestPrettyJSON(t *testing.T) {
	var buf bytes.Buffer

	pretty(&buf, FormatJSON).
		With(slog.String("component", "parser")).
		WithGroup("line").
		Info("parsed", slog.Int("number", 3), slog.String("input", "2021-04-01"))

	want := `{
  "level": "INFO",
  "msg": "parsed",
  "component": "parser",
  "line": {
    "number": 3,
    "input": "2021-04-01"
  }
}
`

	if buf.String() != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, buf.String())
	}

	var m map[string]any

	err := json.Unmarshal(buf.Bytes(), &m)
	if err != nil {
		t.Fatalf("expected valid JSON: %v", err)
	}
}

func TestPrettyJSON_Escaping(t *testing.T) {
	var buf bytes.Buffer

	pretty(&buf, FormatJSON).Info("quote \" and\nnewline", slog.Any("list", []int{1, 2}))

	var m map[string]any

	err := json.Unmarshal(buf.Bytes(), &m)
	if err != nil {
		t.Fatalf("expected valid JSON, got %v:\n%s", err, buf.String())
	}

	if m["msg"] != "quote \" and\nnewline" {
		t.Errorf("unexpected message %q", m["msg"])
	}
}

func TestPretty_Caller(t *testing.T) {
	var buf bytes.Buffer

	pretty(&buf, FormatText, WithCaller(true)).Info("here")

	if !strings.Contains(buf.String(), "source=") ||
		!strings.Contains(buf.String(), "pretty_test.go:") {
		t.Errorf("expected source location, got %q", buf.String())
	}
}

func TestPretty_Timestamp(t *testing.T) {
	var buf bytes.Buffer

	pretty(&buf, FormatText, WithTimeLayout("DateOnly")).Info("m")

	prefix := "time=" + time.Now().Format(time.DateOnly)
	if !strings.HasPrefix(buf.String(), prefix) {
		t.Errorf("expected prefix %q, got %q", prefix, buf.String())
	}
}

func TestPretty_LevelFilter(t *testing.T) {
	var buf bytes.Buffer

	pretty(&buf, FormatText, WithLevel(LevelWarn)).Info("dropped")

	if buf.Len() != 0 {
		t.Errorf("expected nothing logged, got %q", buf.String())
	}
}

func TestQuoteIfNeeded(t *testing.T) {
	tests := map[string]string{
		"plain":     "plain",
		"":          `""`,
		"two words": `"two words"`,
		"a=b":       `"a=b"`,
		"tab\there": `"tab\there"`,
		"−0001":     "−0001",
	}

	for in, want := range tests {
		if got := quoteIfNeeded(in); got != want {
			t.Errorf("%q: expected %s, got %s", in, want, got)
		}
	}
}
