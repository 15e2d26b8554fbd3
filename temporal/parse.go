package temporal

import (
	"context"
	"log/slog"
)

// Parse matches the entire input against prod.
//
// It returns the captured sub-ranges and true only if prod matched and
// consumed every byte of input. Otherwise it returns nil and false; no
// reason or position is reported.
//
// Parse panics if prod is not a registered [Production].
func Parse(prod Production, input string) (*ParseResult, bool) {
	fn, ok := entry[prod]
	if !ok {
		panic("temporal: unregistered production " + prod.String())
	}

	p := newParser(input)

	// A match that stops short of the end does not match the production.
	if !fn(p) || !p.eof() {
		return nil, false
	}

	return p.result(), true
}

// Matches reports whether the entire input matches prod.
func Matches(prod Production, input string) bool {
	_, ok := Parse(prod, input)

	return ok
}

// ParseString is like [Parse] but reports a failed match as an error
// wrapping [ErrNoMatch] that carries the production and input as
// structured logging attributes.
func ParseString(
	ctx context.Context,
	prod Production,
	input string,
	opts ...Option,
) (*ParseResult, error) {
	err := ctx.Err()
	if err != nil {
		return nil, err
	}

	o := makeOptions(opts...)

	res, ok := o.parse(prod, input)
	if !ok {
		o.logger.TraceContext(ctx, "no match",
			slog.String("production", prod.String()),
			slog.String("input", input),
		)

		return nil, ErrNoMatch.With(
			slog.String("production", prod.String()),
			slog.String("input", input),
		)
	}

	o.logger.TraceContext(ctx, "match",
		slog.String("production", prod.String()),
		slog.String("input", input),
		slog.Int("captures", res.Len()),
	)

	return res, nil
}
