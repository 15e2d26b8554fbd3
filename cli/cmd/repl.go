package cmd

import (
	"context"
	"path/filepath"

	"github.com/ardnew/iso8601/cli/cmd/repl"
	"github.com/ardnew/iso8601/log"
)

// Repl starts an interactive parsing session.
type Repl struct {
	History bool `default:"true" help:"Persist input history in the cache directory." negatable:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	var path string

	if ktx := kongContextFrom(ctx); r.History && ktx != nil {
		if dir, ok := ktx.Model.Vars()[CacheIdentifier]; ok && dir != "" {
			path = filepath.Join(dir, repl.BaseHistory)
		}
	}

	return repl.Run(ctx, productionFrom(ctx), path, log.Default(),
		parseOptions(ctx)...)
}
