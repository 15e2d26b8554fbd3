// Package profile provides optional runtime profiling built on
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty, [Enabled] is false, and
// [Profiler.Start] is a no-op.
//
// # Modes
//
//   - allocs:    memory allocations
//   - block:     blocking on synchronization primitives
//   - clock:     wall-clock time (fgprof)
//   - cpu:       CPU time
//   - goroutine: goroutine stacks
//   - heap:      live heap allocations
//   - mem:       memory allocations, sampled
//   - mutex:     mutex contention
//   - thread:    thread creation
//   - trace:     execution trace
//
// # Usage
//
//	p := profile.Make(profile.WithMode("cpu"), profile.WithDir("/tmp/prof"))
//	defer p.Start().Stop()
//
// Analyze the output with go tool pprof:
//
//	go tool pprof -http=: /tmp/prof/cpu.pprof
//
// Building with the tag also registers the [net/http/pprof] handlers on
// [net/http.DefaultServeMux].
package profile
