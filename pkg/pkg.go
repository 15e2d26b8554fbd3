//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version of the iso8601 module embedded at build
// time. It is printed by the version subcommand.
var Version = strings.TrimSpace(version)

const (
	// Name is the canonical command and module identifier. It appears in
	// help text, default config paths, and environment variable prefixes.
	Name = "iso8601"
	// Description is a short summary used in help output.
	Description = "Strict Temporal ISO-8601 date/time parser"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s) of the project.
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}
