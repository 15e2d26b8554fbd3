package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/iso8601/temporal"
)

// List prints the registered production names.
type List struct {
	Symbols bool `help:"List the captured symbol names instead." short:"S"`
}

// Run executes the list command.
func (l *List) Run(ctx context.Context) error {
	w := stdout(ctx)

	if l.Symbols {
		for sym := range temporal.Symbols() {
			if _, err := fmt.Fprintln(w, sym); err != nil {
				return ErrWriteOutput.Wrap(err)
			}
		}

		return nil
	}

	for prod := range temporal.Productions() {
		if _, err := fmt.Fprintln(w, prod); err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}
