//go:build !pprof

package profile

// Enabled reports whether the program was built with the [Tag] build tag.
const Enabled = false

// Modes returns nil when built without the [Tag] build tag.
func Modes() []string { return nil }

func start(Profiler) Stopper { return ignore{} }
