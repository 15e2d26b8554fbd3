package temporal

import "github.com/ardnew/iso8601/log"

// options configures the error-returning parse functions.
type options struct {
	logger log.Logger
	cache  *Cache
}

// Option configures [ParseString] and [ParseLines].
type Option func(*options)

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCache routes parsing through c so that repeated inputs are parsed
// only once. A nil cache disables caching.
func WithCache(c *Cache) Option {
	return func(o *options) {
		o.cache = c
	}
}

func makeOptions(opts ...Option) options {
	var o options

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// parse dispatches to the configured cache, if any.
func (o options) parse(prod Production, input string) (*ParseResult, bool) {
	if o.cache != nil {
		return o.cache.Parse(prod, input)
	}

	return Parse(prod, input)
}
