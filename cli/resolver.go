package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/iso8601/log"
)

// resolve is a [kong.ConfigurationLoader] that reads YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config")
//
// The file is a single mapping from flag name to value. Keys may spell the
// flag with hyphens or underscores:
//
//	log-level: debug
//	log_format: json
//	log-pretty: false
//	production: TemporalDateString
//
// Command-line flags override config file values. A file that is empty or
// not a mapping is logged and ignored.
func resolve(r io.Reader) (kong.Resolver, error) {
	var values map[string]any

	err := yaml.NewDecoder(r).Decode(&values)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			log.Warn("ignoring invalid configuration file",
				slog.String("error", err.Error()),
			)
		}

		return config{}, nil
	}

	conf := make(config, len(values))
	for key, val := range values {
		conf[strings.ReplaceAll(key, "_", "-")] = scalar(val)
	}

	return conf, nil
}

// config implements [kong.Resolver] for YAML configs. Keys are stored in
// the hyphenated form Kong uses for flag names.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	value, ok := r[strings.ReplaceAll(flag.Name, "_", "-")]
	if !ok {
		// Not found - return nil to let Kong use defaults
		return nil, nil //nolint:nilnil
	}

	return value, nil
}

// scalar converts decoded YAML numbers to strings, which Kong decodes into
// any flag type. Lists are converted element-wise.
func scalar(val any) any {
	switch v := val.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = scalar(e)
		}

		return out
	case nil, bool, string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
