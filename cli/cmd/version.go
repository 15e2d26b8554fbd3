package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/iso8601/pkg"
)

// Version prints the program version.
type Version struct{}

// Run executes the version command.
func (Version) Run(ctx context.Context) error {
	_, err := fmt.Fprintln(stdout(ctx), pkg.Name, pkg.Version)
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
