// Package log is a small leveled logger built on [log/slog].
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("parsed", slog.String("input", "2021-04-01"))
//
// Loggers are immutable values. The zero [Logger] discards everything,
// which lets library types accept a Logger option and log unconditionally.
//
// # Configuration
//
// Settings are applied with functional options when the logger is made, or
// later with [Logger.Wrap], which returns a reconfigured copy:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// # Levels
//
// In addition to the four slog levels, [LevelTrace] sits below
// [LevelDebug] for per-input diagnostics that are too noisy for debug
// output.
//
// # Package-Level Logger
//
// The functions [Trace], [Debug], [Info], [Warn], and [Error] and their
// Context variants log through a package-level logger that writes to
// standard error. [Config] reconfigures it. Functions without a context
// use [DefaultContextProvider].
//
// # Pretty Output
//
// With [WithPretty] enabled (the default), text records are written as
// colored key=value lines and JSON records as indented objects. Color is
// only emitted when the output is a terminal that supports it.
package log
