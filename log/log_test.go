package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// plain returns a logger writing undecorated JSON records without
// timestamps to buf.
func plain(buf *bytes.Buffer, opts ...Option) Logger {
	return Make(buf, append([]Option{
		WithFormat(FormatJSON),
		WithPretty(false),
		WithTimeLayout("none"),
	}, opts...)...)
}

func decode(t *testing.T, data []byte) map[string]any {
	t.Helper()

	var m map[string]any

	err := json.Unmarshal(data, &m)
	if err != nil {
		t.Fatalf("failed to parse JSON output %q: %v", data, err)
	}

	return m
}

func TestLogger_Make_Defaults(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf)

	if logger.Level() != DefaultLevel {
		t.Errorf("expected level %v, got %v", DefaultLevel, logger.Level())
	}

	if logger.Format() != DefaultFormat {
		t.Errorf("expected format %v, got %v", DefaultFormat, logger.Format())
	}

	logger.Info("started")

	if !strings.Contains(buf.String(), "started") {
		t.Errorf("expected message in output, got %q", buf.String())
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name    string
		logFunc func(Logger, string, ...slog.Attr)
		min     Level
		logged  bool
	}{
		{"trace at trace", Logger.Trace, LevelTrace, true},
		{"trace at debug", Logger.Trace, LevelDebug, false},
		{"debug at debug", Logger.Debug, LevelDebug, true},
		{"debug at info", Logger.Debug, LevelInfo, false},
		{"info at info", Logger.Info, LevelInfo, true},
		{"info at warn", Logger.Info, LevelWarn, false},
		{"warn at warn", Logger.Warn, LevelWarn, true},
		{"warn at error", Logger.Warn, LevelError, false},
		{"error at error", Logger.Error, LevelError, true},
		{"error at trace", Logger.Error, LevelTrace, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.logFunc(plain(&buf, WithLevel(tt.min)), "message")

			if logged := buf.Len() > 0; logged != tt.logged {
				t.Errorf("expected logged=%v, got %q", tt.logged, buf.String())
			}
		})
	}
}

func TestLogger_LevelNames(t *testing.T) {
	tests := []struct {
		logFunc func(Logger, context.Context, string, ...slog.Attr)
		level   string
	}{
		{Logger.TraceContext, "TRACE"},
		{Logger.DebugContext, "DEBUG"},
		{Logger.InfoContext, "INFO"},
		{Logger.WarnContext, "WARN"},
		{Logger.ErrorContext, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer

			tt.logFunc(plain(&buf, WithLevel(LevelTrace)), context.Background(), "message")

			m := decode(t, buf.Bytes())
			if m["level"] != tt.level {
				t.Errorf("expected level %q, got %v", tt.level, m["level"])
			}
		})
	}
}

func TestLogger_Formats(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer

		plain(&buf).Info("parsed", slog.String("input", "2021-04-01"))

		m := decode(t, buf.Bytes())
		if m["msg"] != "parsed" || m["input"] != "2021-04-01" {
			t.Errorf("unexpected record %v", m)
		}

		if _, ok := m["time"]; ok {
			t.Errorf("expected no time field, got %v", m["time"])
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer

		Make(&buf, WithFormat(FormatText), WithPretty(false)).
			Info("parsed", slog.String("input", "2021-04-01"))

		if !strings.Contains(buf.String(), "input=2021-04-01") {
			t.Errorf("expected key=value in output, got %q", buf.String())
		}
	})
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer

	plain(&buf, WithCaller(true)).Info("here")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("expected caller in this file, got %q", buf.String())
	}

	buf.Reset()
	plain(&buf, WithCaller(true)).InfoContext(context.Background(), "here")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("expected caller in this file, got %q", buf.String())
	}

	buf.Reset()
	plain(&buf).Info("here")

	if strings.Contains(buf.String(), "source") {
		t.Errorf("expected no caller, got %q", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer

	base := plain(&buf)
	derived := base.With(slog.String("component", "parser"))

	derived.Info("message")

	if m := decode(t, buf.Bytes()); m["component"] != "parser" {
		t.Errorf("expected component attribute, got %v", m)
	}

	buf.Reset()
	base.Info("message")

	if m := decode(t, buf.Bytes()); m["component"] != nil {
		t.Errorf("expected base logger unchanged, got %v", m)
	}

	if derived.Level() != base.Level() {
		t.Error("expected derived logger to keep configuration")
	}
}

func TestLogger_WithGroup(t *testing.T) {
	var buf bytes.Buffer

	plain(&buf).WithGroup("line").Info("message", slog.Int("number", 3))

	m := decode(t, buf.Bytes())

	group, ok := m["line"].(map[string]any)
	if !ok || group["number"] != float64(3) {
		t.Errorf("expected grouped attribute, got %v", m)
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	logger := plain(&buf)
	wrapped := logger.Wrap(WithLevel(LevelError))

	wrapped.Warn("dropped")

	if buf.Len() != 0 {
		t.Errorf("expected nothing logged, got %q", buf.String())
	}

	logger.Warn("kept")

	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("expected original logger unchanged, got %q", buf.String())
	}

	if wrapped.Format() != FormatJSON {
		t.Errorf("expected format carried over, got %v", wrapped.Format())
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	l.Trace("x")
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	l.InfoContext(context.Background(), "x")

	if l.Enabled(context.Background(), LevelError) {
		t.Error("expected zero logger to be disabled")
	}

	if l.With(slog.String("k", "v")).Logger != nil {
		t.Error("expected With on zero logger to stay zero")
	}

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Error("expected defaults from zero logger")
	}

	if l.Wrap(WithLevel(LevelDebug)).Logger == nil {
		t.Error("expected Wrap on zero logger to make a discarding logger")
	}
}

func TestLogger_Concurrent(t *testing.T) {
	var buf bytes.Buffer

	logger := plain(&buf)

	var wg sync.WaitGroup

	for i := range 100 {
		wg.Go(func() {
			logger.Info("concurrent", slog.Int("id", i))
		})
	}

	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 100 {
		t.Errorf("expected 100 lines, got %d", len(lines))
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	var buf bytes.Buffer

	logger := plain(&buf)

	for b.Loop() {
		buf.Reset()
		logger.Info("benchmark", slog.String("input", "2021-04-01"))
	}
}

func BenchmarkLogger_Trace_Disabled(b *testing.B) {
	var buf bytes.Buffer

	logger := plain(&buf)

	for b.Loop() {
		logger.Trace("benchmark", slog.String("input", "2021-04-01"))
	}
}
