package cmd

import (
	"context"
	"errors"
	"io"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/iso8601/log"
	"github.com/ardnew/iso8601/temporal"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdout returns the writer commands print results to.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

type (
	productionKey struct{}
	cacheKey      struct{}
)

// WithProduction returns a new context.Context selecting the production
// that commands parse inputs against.
func WithProduction(
	ctx context.Context,
	prod temporal.Production,
) context.Context {
	return context.WithValue(ctx, productionKey{}, prod)
}

// productionFrom returns the production stored by WithProduction, or
// [temporal.TemporalDateString] if none was stored.
func productionFrom(ctx context.Context) temporal.Production {
	prod, ok := ctx.Value(productionKey{}).(temporal.Production)
	if !ok {
		return temporal.TemporalDateString
	}

	return prod
}

// WithCache returns a new context.Context containing a result cache shared
// by all commands.
func WithCache(ctx context.Context, c *temporal.Cache) context.Context {
	return context.WithValue(ctx, cacheKey{}, c)
}

// parseOptions returns the temporal options derived from ctx.
func parseOptions(ctx context.Context) []temporal.Option {
	c, _ := ctx.Value(cacheKey{}).(*temporal.Cache)

	return []temporal.Option{
		temporal.WithCache(c),
		temporal.WithLogger(log.Default()),
	}
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// sourceFiles is an ordered, deduplicated set of input sources.
type sourceFiles struct {
	files    []*os.File
	hasStdin bool
}

// IsZero reports whether there are no sources.
func (s *sourceFiles) IsZero() bool {
	return s == nil || (len(s.files) == 0 && !s.hasStdin)
}

// All returns an iterator over each source's display name and reader.
// Stdin, if present, is yielded last with the name "-".
func (s *sourceFiles) All() iter.Seq2[string, io.Reader] {
	return func(yield func(string, io.Reader) bool) {
		if s == nil {
			return
		}

		for _, f := range s.files {
			if !yield(f.Name(), f) {
				return
			}
		}

		if s.hasStdin {
			yield(stdinSource, os.Stdin)
		}
	}
}

// Close closes every opened file. Stdin is left open.
func (s *sourceFiles) Close() error {
	if s == nil {
		return nil
	}

	errs := make([]error, 0, len(s.files))
	for _, f := range s.files {
		errs = append(errs, f.Close())
	}

	return errors.Join(errs...)
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// openSourceFiles opens the given sources.
//
// Readers are deduplicated by resolving symlinks and comparing device/inode
// pairs. All occurrences of "-" are replaced with a single stdin reader placed
// last so it reads after all regular files. Sources that cannot be opened are
// logged and skipped.
func openSourceFiles(ctx context.Context, sources []string) *sourceFiles {
	var srcs sourceFiles

	srcs.files = make([]*os.File, 0, len(sources))
	seen := make(map[fileKey]struct{})

	stdinKey, stdinOK := statFileKey(os.Stdin)

	for _, src := range sources {
		if src == stdinSource {
			srcs.hasStdin = true

			continue
		}

		file, err := openUniqueFile(src, seen)
		if err != nil {
			log.WarnContext(ctx, "skipping input source",
				slog.String("source", src),
				slog.Any("error", err),
			)

			continue
		}

		if file != nil {
			srcs.files = append(srcs.files, file)
		}
	}

	// Stdin may also have been named by path, e.g. /dev/stdin.
	if stdinOK {
		if _, ok := seen[stdinKey]; ok {
			srcs.hasStdin = true
			srcs.files = dropFile(srcs.files, stdinKey)
		}
	}

	return &srcs
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates, in which
// case it returns a nil file and nil error.
func openUniqueFile(path string, seen map[fileKey]struct{}) (*os.File, error) {
	// Resolve to absolute path to handle relative path duplicates.
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	// Resolve symlinks to their target.
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, err
	}

	key, ok := makeFileKey(info)
	if ok {
		if _, exists := seen[key]; exists {
			return nil, nil
		}

		seen[key] = struct{}{}
	}

	return os.Open(resolved)
}

// dropFile closes and removes the file identified by key from files.
func dropFile(files []*os.File, key fileKey) []*os.File {
	out := files[:0]

	for _, f := range files {
		if k, ok := statFileKey(f); ok && k == key {
			_ = f.Close()

			continue
		}

		out = append(out, f)
	}

	return out
}

func statFileKey(f *os.File) (fileKey, bool) {
	info, err := f.Stat()
	if err != nil {
		return fileKey{}, false
	}

	return makeFileKey(info)
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: uint64(stat.Ino)}, true //nolint:unconvert
}
