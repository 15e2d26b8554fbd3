package log

import (
	"bytes"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{" debug ", LevelDebug},
		{"info", LevelInfo},
		{"WARN", LevelWarn},
		{"error", LevelError},
		{"info+2", Level(slog.LevelInfo + 2)},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{" text\n", FormatText},
		{"yaml", DefaultFormat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormat(tt.input); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLevelsAndFormats(t *testing.T) {
	levels := slices.Collect(Levels())
	if !slices.Equal(levels, []string{"trace", "debug", "info", "warn", "error"}) {
		t.Errorf("unexpected levels %v", levels)
	}

	for _, name := range levels {
		if ParseLevel(name).String() != name {
			t.Errorf("%s: does not round-trip", name)
		}
	}

	formats := slices.Collect(Formats())
	if !slices.Equal(formats, []string{"text", "json"}) {
		t.Errorf("unexpected formats %v", formats)
	}

	if s := Level(3).String(); s != "Level(3)" {
		t.Errorf("expected Level(3), got %q", s)
	}

	if s := Format(7).String(); s != "Format(7)" {
		t.Errorf("expected Format(7), got %q", s)
	}
}

func TestConfig_Options(t *testing.T) {
	var buf bytes.Buffer

	c := makeConfig(&buf,
		WithLevel(LevelWarn),
		WithFormat(FormatJSON),
		WithCaller(true),
		WithPretty(false),
	)

	if c.level != LevelWarn {
		t.Errorf("expected level warn, got %v", c.level)
	}

	if c.format != FormatJSON {
		t.Errorf("expected format json, got %v", c.format)
	}

	if !c.caller || c.pretty {
		t.Errorf("expected caller on and pretty off, got %v and %v", c.caller, c.pretty)
	}

	if c.output != &buf {
		t.Error("expected output to be the buffer")
	}

	// Options return copies.
	d := WithLevel(LevelDebug)(c)
	if c.level != LevelWarn || d.level != LevelDebug {
		t.Errorf("expected independent copies, got %v and %v", c.level, d.level)
	}
}

func TestConfig_Defaults(t *testing.T) {
	c := makeConfig(nil)

	if c.level != DefaultLevel || c.format != DefaultFormat {
		t.Errorf("unexpected defaults %v %v", c.level, c.format)
	}

	if c.caller != DefaultCaller || c.pretty != DefaultPretty {
		t.Errorf("unexpected defaults %v %v", c.caller, c.pretty)
	}

	if _, err := c.output.Write([]byte("x")); err != nil {
		t.Errorf("expected discard writer, got %v", err)
	}

	// A nil option is ignored.
	_ = apply(c, nil)
}

func TestConfig_formatTime(t *testing.T) {
	now := time.Date(2023, 10, 15, 14, 30, 45, 123456789, time.UTC)

	tests := []struct {
		name   string
		layout string
		want   string
	}{
		{"rfc3339", "RFC3339", "2023-10-15T14:30:45Z"},
		{"rfc3339 nano", "rfc-3339-nano", "2023-10-15T14:30:45.123456789Z"},
		{"kitchen", "Kitchen", "2:30PM"},
		{"date only", "DateOnly", "2023-10-15"},
		{"millis alias", "ms", "Oct 15 14:30:45.123"},
		{"custom", "2006/01/02", "2023/10/15"},
		{"none", "none", ""},
		{"empty", "", ""},
		{"blank", "  \t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := WithTimeLayout(tt.layout)(config{})
			if got := c.formatTime(now); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestConfig_replaceAttr(t *testing.T) {
	c := makeConfig(nil, WithTimeLayout("DateOnly"))

	a := c.replaceAttr(nil, slog.Any(slog.LevelKey, slog.Level(LevelTrace)))
	if a.Value.String() != "TRACE" {
		t.Errorf("expected TRACE, got %q", a.Value.String())
	}

	now := time.Date(2023, 10, 15, 0, 0, 0, 0, time.UTC)

	a = c.replaceAttr(nil, slog.Time(slog.TimeKey, now))
	if a.Value.String() != "2023-10-15" {
		t.Errorf("expected 2023-10-15, got %q", a.Value.String())
	}

	// Attributes inside groups are left alone.
	a = c.replaceAttr([]string{"g"}, slog.Time(slog.TimeKey, now))
	if a.Value.Kind() != slog.KindTime {
		t.Errorf("expected time value, got %v", a.Value.Kind())
	}

	c = WithTimeLayout("none")(c)

	a = c.replaceAttr(nil, slog.Time(slog.TimeKey, now))
	if !a.Equal(slog.Attr{}) {
		t.Errorf("expected empty attribute, got %v", a)
	}

	if !strings.EqualFold(LevelWarn.String(), "WARN") {
		t.Errorf("unexpected level name %q", LevelWarn)
	}
}

func BenchmarkConfig_formatTime(b *testing.B) {
	c := WithTimeLayout("RFC3339Nano")(config{})
	now := time.Now()

	for b.Loop() {
		_ = c.formatTime(now)
	}
}
