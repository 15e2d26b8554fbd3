package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/iso8601/log"
	"github.com/ardnew/iso8601/temporal"
)

// Check validates inputs read line by line from files or stdin.
type Check struct {
	Source []string `default:"-" help:"Input file(s), one date/time per line, or '-' for stdin."           name:"source" short:"s"`
	Where  string   `            help:"Only count matches satisfying this expr-lang boolean expression." short:"w"`
	Quiet  bool     `            help:"Print nothing; report the result through the exit status only."  short:"q"`
}

// checkStats counts line outcomes across all sources.
type checkStats struct {
	lines  int
	passed int
	failed int
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	filter, err := temporal.CompileFilter(c.Where)
	if err != nil {
		return err
	}

	srcs := openSourceFiles(ctx, c.Source)
	defer srcs.Close()

	if srcs.IsZero() {
		return ErrNoSource.With(slog.Any("source", c.Source))
	}

	var stats checkStats

	for name, r := range srcs.All() {
		err = c.checkSource(ctx, name, r, filter, &stats)
		if err != nil {
			return err
		}
	}

	log.InfoContext(ctx, "check complete",
		slog.Int("lines", stats.lines),
		slog.Int("passed", stats.passed),
		slog.Int("failed", stats.failed),
	)

	if stats.failed > 0 {
		return ErrNoMatch.With(
			slog.String("production", productionFrom(ctx).String()),
			slog.Int("failed", stats.failed),
			slog.Int("total", stats.lines),
		)
	}

	return nil
}

func (c *Check) checkSource(
	ctx context.Context,
	name string,
	r io.Reader,
	filter *temporal.Filter,
	stats *checkStats,
) error {
	w := stdout(ctx)
	prod := productionFrom(ctx)

	for line, err := range temporal.ParseLines(ctx, r, prod, parseOptions(ctx)...) {
		if err != nil {
			return err
		}

		ok, err := filter.Match(line.Result)
		if err != nil {
			log.WarnContext(ctx, "filter rejected line",
				slog.String("source", name),
				slog.Int("line", line.Number),
				slog.Any("error", err),
			)
		}

		stats.lines++

		status := "ok"
		if ok {
			stats.passed++
		} else {
			stats.failed++
			status = "fail"
		}

		if c.Quiet {
			continue
		}

		_, err = fmt.Fprintf(w, "%s\t%s:%d\t%s\n", status, name, line.Number, line.Input)
		if err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	return nil
}
