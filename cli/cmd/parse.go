package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/iso8601/log"
	"github.com/ardnew/iso8601/temporal"
)

// Parse parses each argument and prints its captures.
type Parse struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format (${enum})."          short:"o"`
	Indent int    `default:"2"                          help:"Indent width for JSON/YAML output" short:"i"`

	Input []string `arg:"" help:"Date/time string(s) to parse." name:"input"`
}

// parseRecord is the structured output for one input.
type parseRecord struct {
	Input    string                `json:"input"              yaml:"input"`
	Match    bool                  `json:"match"              yaml:"match"`
	Captures *temporal.ParseResult `json:"captures,omitempty" yaml:"captures,omitempty"`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	prod := productionFrom(ctx)
	opts := parseOptions(ctx)

	records := make([]parseRecord, 0, len(p.Input))
	failed := 0

	for _, input := range p.Input {
		res, err := temporal.ParseString(ctx, prod, input, opts...)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}

			failed++

			log.WarnContext(ctx, "no match", slog.Any("error", err))
		}

		records = append(records, parseRecord{
			Input:    input,
			Match:    err == nil,
			Captures: res,
		})
	}

	err = p.write(ctx, stdout(ctx), records)
	if err != nil {
		return ErrWriteOutput.
			With(slog.String("format", p.Format)).
			Wrap(err)
	}

	if failed > 0 {
		return ErrNoMatch.With(
			slog.String("production", prod.String()),
			slog.Int("failed", failed),
			slog.Int("total", len(records)),
		)
	}

	return nil
}

// write prints records in the selected format. A single record is written
// as an object; several are written as a list.
func (p *Parse) write(
	ctx context.Context,
	w io.Writer,
	records []parseRecord,
) error {
	var v any = records
	if len(records) == 1 {
		v = records[0]
	}

	switch p.Format {
	case "json":
		return temporal.FormatJSON(ctx, w, v, p.Indent)

	case "yaml":
		return temporal.FormatYAML(ctx, w, v, p.Indent)
	}

	printed := false

	for _, rec := range records {
		if !rec.Match {
			continue
		}

		if len(records) > 1 {
			if printed {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}

			if _, err := fmt.Fprintf(w, "# %s\n", rec.Input); err != nil {
				return err
			}
		}

		if err := rec.Captures.Format(ctx, w); err != nil {
			return err
		}

		printed = true
	}

	return nil
}
