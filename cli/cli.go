package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/iso8601/cli/cmd"
	"github.com/ardnew/iso8601/log"
	"github.com/ardnew/iso8601/pkg"
	"github.com/ardnew/iso8601/temporal"
)

// CLI is the top-level command-line interface for iso8601.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Production string `default:"${productionDefault}" help:"Grammar production inputs must match (${productionList})." short:"P"`
	Cache      bool   `default:"true"                 help:"Cache parse results of repeated inputs."                  negatable:""`

	Parse   cmd.Parse   `cmd:"" default:"withargs" help:"Parse date/time strings and print their components"`
	Check   cmd.Check   `cmd:""                    help:"Validate date/time strings read line by line"`
	List    cmd.List    `cmd:""                    help:"List grammar productions"`
	Repl    cmd.Repl    `cmd:""                    help:"Parse date/time strings interactively"`
	Init    cmd.Init    `cmd:""                    help:"Initialize configuration file"`
	Version cmd.Version `cmd:""                    help:"Print version"`
}

func (*CLI) vars() kong.Vars {
	var names []string
	for prod := range temporal.Productions() {
		names = append(names, prod.String())
	}

	return kong.Vars{
		"productionDefault": temporal.TemporalDateString.String(),
		"productionList":    strings.Join(names, ", "),
	}
}

// Run executes the iso8601 CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	return run(ctx, exit, os.Stdout, os.Stderr, args)
}

func run(
	ctx context.Context,
	exit func(code int),
	stdout, stderr io.Writer,
	args []string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
	}.
		CloneWith(cli.vars()).
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position. TextUnmarshaler on logFormat/logLevel handles those flags
	// during normal parsing, but this early scan also catches boolean flags
	// like --log-pretty.
	cli.Log.scan(args)

	// Parse command line
	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(stdout, stderr),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				FlagsLast:           false,
				NoAppSummary:        false,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configFilePath+".json"),
		kong.Configuration(resolve, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	prod, err := temporal.LookupProduction(cli.Production)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithProduction(ctx, prod)

	if cli.Cache {
		cache := temporal.NewCache()
		ctx = cmd.WithCache(ctx, cache)

		defer func() {
			hits, misses := cache.Stats()
			log.DebugContext(ctx, "parse cache",
				slog.Uint64("hits", hits),
				slog.Uint64("misses", misses),
				slog.Int("entries", cache.Len()),
			)
		}()
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	defer cli.Log.start(ctx)()

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	log.TraceContext(ctx, "run",
		slog.String("command", ktx.Command()),
		slog.String("production", prod.String()),
	)

	// Execute the selected command
	return ktx.Run(ctx, &cli)
}
