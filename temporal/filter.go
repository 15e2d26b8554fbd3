package temporal

import (
	"log/slog"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// InputKey names the filter variable holding the complete parsed input.
const InputKey = "input"

// Filter is a compiled boolean expression over the captures of a
// [ParseResult].
//
// The expression is written in the expr language
// (https://expr-lang.org). Every [Symbol] is a string variable named by
// its String form, empty when the symbol was not captured, and [InputKey]
// holds the input. For example:
//
//	date_year >= "2000" && time_hour != ""
//	int(date_month) in [12, 1, 2]
type Filter struct {
	source  string
	program *vm.Program
}

// CompileFilter compiles src into a Filter. An empty or blank src yields a
// Filter that accepts every result.
func CompileFilter(src string) (*Filter, error) {
	if strings.TrimSpace(src) == "" {
		return &Filter{source: src}, nil
	}

	program, err := expr.Compile(src,
		expr.Env(filterEnv(nil)),
		expr.AsBool(),
	)
	if err != nil {
		return nil, ErrFilterCompile.Wrap(err).
			With(slog.String("filter", src))
	}

	return &Filter{source: src, program: program}, nil
}

// String returns the source expression of f.
func (f *Filter) String() string { return f.source }

// Match reports whether r satisfies f. A nil result never matches.
func (f *Filter) Match(r *ParseResult) (bool, error) {
	if r == nil {
		return false, nil
	}

	if f == nil || f.program == nil {
		return true, nil
	}

	out, err := expr.Run(f.program, filterEnv(r))
	if err != nil {
		return false, ErrFilterEvaluate.Wrap(err).
			With(slog.String("filter", f.source), slog.String(InputKey, r.Source()))
	}

	ok, _ := out.(bool)

	return ok, nil
}

// filterEnv returns the expression environment for r. A nil r yields the
// environment with every variable empty, which fixes the variable types at
// compile time.
func filterEnv(r *ParseResult) map[string]any {
	env := make(map[string]any, numSymbols+1)

	env[InputKey] = ""
	if r != nil {
		env[InputKey] = r.Source()
	}

	for sym := range Symbols() {
		text, _ := r.Text(sym)
		env[sym.String()] = text
	}

	return env
}
