// Package cmd implements the iso8601 subcommands: parse, check, list, repl,
// init, and version.
//
// Commands read shared state (the kong context, the selected production, and
// the result cache) from the [context.Context] populated by the cli package.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"
)
