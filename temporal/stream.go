package temporal

import (
	"bufio"
	"context"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/klauspost/readahead"
)

// Line is one newline-delimited input read by [ParseLines].
type Line struct {
	// Number is the 1-based line number within the reader.
	Number int
	// Input is the line text without its line terminator.
	Input string
	// Result holds the captures, or nil if Input does not match.
	Result *ParseResult
}

// Matched reports whether the line matched the production.
func (l Line) Matched() bool { return l.Result != nil }

// ParseLines parses every non-blank line read from r against prod.
//
// Each line is parsed independently and yielded in order. A read failure is
// yielded once as an error wrapping [ErrReadInput], after which iteration
// stops. If ctx is cancelled, its error is yielded and iteration stops.
func ParseLines(
	ctx context.Context,
	r io.Reader,
	prod Production,
	opts ...Option,
) iter.Seq2[Line, error] {
	o := makeOptions(opts...)

	return func(yield func(Line, error) bool) {
		// Read ahead asynchronously so I/O overlaps with parsing.
		ra := readahead.NewReader(r)
		defer ra.Close()

		scanner := bufio.NewScanner(ra)

		number := 0

		for scanner.Scan() {
			number++

			err := ctx.Err()
			if err != nil {
				yield(Line{Number: number}, err)

				return
			}

			input := strings.TrimSuffix(scanner.Text(), "\r")
			if strings.TrimSpace(input) == "" {
				continue
			}

			line := Line{Number: number, Input: input}
			line.Result, _ = o.parse(prod, input)

			o.logger.TraceContext(ctx, "parse line",
				slog.Int("line", number),
				slog.Bool("match", line.Matched()),
			)

			if !yield(line, nil) {
				return
			}
		}

		err := scanner.Err()
		if err != nil {
			yield(Line{Number: number}, ErrReadInput.Wrap(err).
				With(slog.Int("line", number)))
		}
	}
}
