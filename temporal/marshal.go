package temporal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// ToMap converts the captures to a map keyed by symbol name
// (e.g. "date_year"). Absent symbols are omitted.
func (r *ParseResult) ToMap() map[string]any {
	result := make(map[string]any, r.Len())

	for sym, text := range r.All() {
		result[sym.String()] = text
	}

	return result
}

// ToMapSlice is like [ParseResult.ToMap] but preserves [Symbol] order.
func (r *ParseResult) ToMapSlice() yaml.MapSlice {
	result := make(yaml.MapSlice, 0, r.Len())

	for sym, text := range r.All() {
		result = append(result, yaml.MapItem{Key: sym.String(), Value: text})
	}

	return result
}

// MarshalJSON implements json.Marshaler.
func (r *ParseResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToMap())
}

// MarshalYAML implements yaml.InterfaceMarshaler.
func (r *ParseResult) MarshalYAML() (any, error) {
	return r.ToMapSlice(), nil
}

// Format writes the captures as "name: text" lines in [Symbol] order.
func (r *ParseResult) Format(_ context.Context, w io.Writer) error {
	width := 0

	for sym := range r.All() {
		width = max(width, len(sym.String()))
	}

	for sym, text := range r.All() {
		name := sym.String()

		_, err := fmt.Fprintf(w, "%s:%s %s\n",
			name, strings.Repeat(" ", width-len(name)), text)
		if err != nil {
			return err
		}
	}

	return nil
}

// FormatJSON writes v as JSON followed by a newline. A positive indent
// pretty-prints with that many spaces per level.
func FormatJSON(_ context.Context, w io.Writer, v any, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(v)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes v as YAML. A positive indent sets the indentation width;
// otherwise flow style is used.
func FormatYAML(ctx context.Context, w io.Writer, v any, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, v, opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}
