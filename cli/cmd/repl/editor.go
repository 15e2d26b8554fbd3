package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/iso8601/log"
	"github.com/ardnew/iso8601/temporal"
)

const defaultEditor = "vi"

// editorCommand returns the user's preferred editor.
func editorCommand() string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if editor := strings.TrimSpace(os.Getenv(env)); editor != "" {
			return editor
		}
	}

	return defaultEditor
}

// editBatchCommand implements [tea.ExecCommand] for the batch
// edit-parse-retry loop. It writes the seed lines to a temp file, opens the
// user's editor, and parses every non-blank line of the result. If any line
// fails, the user is prompted to re-edit.
type editBatchCommand struct {
	ctxFunc func() context.Context
	prod    temporal.Production
	opts    []temporal.Option
	logger  log.Logger
	editor  string
	seed    []string
	lines   []temporal.Line
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editBatchCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editBatchCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editBatchCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-parse-retry loop.
func (c *editBatchCommand) Run() error {
	ctx := c.ctxFunc()

	f, err := os.CreateTemp(os.TempDir(), "iso8601-repl-*.txt")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	content := strings.Join(c.seed, "\n")
	if content != "" {
		content += "\n"
	}

	_, err = f.WriteString(content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return err
	}

	for {
		err := c.runEditor(ctx, tmpPath)
		if err != nil {
			return err
		}

		file, err := os.Open(tmpPath)
		if err != nil {
			return err
		}

		c.lines = c.lines[:0]
		failed := 0

		for line, err := range temporal.ParseLines(ctx, file, c.prod, c.opts...) {
			if err != nil {
				file.Close()

				return err
			}

			if !line.Matched() {
				failed++

				fmt.Fprintf(c.stderr, "line %d: no match: %s\n", line.Number, line.Input)
			}

			c.lines = append(c.lines, line)
		}

		file.Close()

		c.logger.TraceContext(ctx, "editor parse attempt",
			slog.Int("lines", len(c.lines)),
			slog.Int("failed", failed),
		)

		if failed == 0 || !c.confirm("Re-edit? [Y/n] ") {
			return nil
		}
	}
}

// confirm prompts on stdout and reports whether the answer is not "no".
func (c *editBatchCommand) confirm(prompt string) bool {
	fmt.Fprint(c.stdout, prompt)

	scanner := bufio.NewScanner(c.stdin)
	if !scanner.Scan() {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "n", "no":
		return false
	}

	return true
}

// runEditor launches the editor on path with the command's standard streams.
func (c *editBatchCommand) runEditor(ctx context.Context, path string) error {
	editor := c.editor
	if editor == "" {
		editor = editorCommand()
	}

	// The editor setting may carry arguments, e.g. "code --wait".
	args := strings.Fields(editor)

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = c.stdin
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr

	return cmd.Run()
}
