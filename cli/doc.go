// Package cli contains the command line interface for iso8601.
//
// # Usage
//
// Each argument is matched against a grammar production (TemporalDateString
// by default) and its captured components are printed:
//
//	iso8601 2021-04-01T12:30:00.5[u-ca=gregory]
//	iso8601 parse --format=json 2021-04-01 +002021-04-01
//	iso8601 check --source=dates.txt --where='int(time_hour) >= 12'
//	iso8601 repl
//
// # Configuration
//
// Flag values are resolved from, in increasing precedence, their defaults,
// the YAML configuration file in the user configuration directory, a JSON
// file of the same base name with extension ".json", and the command line.
// The init command writes the current flag values to the YAML file:
//
//	iso8601 --log-level=debug --no-cache init
//
// Keys in the configuration file are flag names, with either hyphens or
// underscores:
//
//	log-level: debug
//	cache: false
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, kitchen, ms, none)
//   - --log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o iso8601 .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: the pprof
//     subdirectory of the user cache directory)
package cli
