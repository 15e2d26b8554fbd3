package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/x/term"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/iso8601/log"
	"github.com/ardnew/iso8601/temporal"
)

// editDoneMsg is sent when the batch editor exits with parsed lines.
type editDoneMsg struct{ lines []temporal.Line }

// editErrorMsg is sent when the edit process encounters an error.
type editErrorMsg struct{ err error }

const (
	parsePrompt = "➜ "
	ctrlPrompt  = " :"
)

const helpMessage = `
: Commands (press Esc to toggle mode, or prefix with ":" in parse mode):

  help          Print this message
  list          List grammar productions
  list symbols  List captured symbol names
  where EXPR    Only accept results satisfying EXPR (empty clears)
  edit          Parse a batch of lines in external $EDITOR
  clear         Clear screen
  quit          Exit REPL

Usage:
  Type a date/time string and press Enter to parse it
  The hint line shows whether the current input matches
  Calendar names complete after [u-ca=
  Press Tab / Shift-Tab to cycle through candidates
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`

// inputMode represents the current input mode.
type inputMode int

const (
	modeParse inputMode = iota
	modeCtrl
)

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	prod         temporal.Production
	opts         []temporal.Option
	filter       *temporal.Filter
	logger       log.Logger
	styles       *styles
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
	mode         inputMode
	parseText    string
	parseCursor  int
	ctrlText     string
	ctrlCursor   int
}

// Run starts an interactive session parsing each entered line with prod.
// History is persisted to historyPath unless it is empty.
func Run(
	ctx context.Context,
	prod temporal.Production,
	historyPath string,
	logger log.Logger,
	opts ...temporal.Option,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if !term.IsTerminal(os.Stdin.Fd()) {
		return ErrNoTerminal
	}

	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			slog.String("path", historyPath),
			slog.Any("error", err),
		)
	}

	logger.TraceContext(ctx, "repl start",
		slog.String("production", prod.String()),
		slog.String("history", historyPath),
		slog.Int("entry_count", history.Len()),
	)

	m := newModel(ctx, prod, history, logger, newStyles(os.Stdout), opts...)

	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	prod temporal.Production,
	history *History,
	logger log.Logger,
	st *styles,
	opts ...temporal.Option,
) model {
	ti := textinput.New()
	ti.Prompt = st.prompt.Render(parsePrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		prod:       prod,
		opts:       opts,
		logger:     logger,
		styles:     st,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeParse,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(parsePrompt) - 2

		return m, nil

	case editDoneMsg:
		var cmds []tea.Cmd

		for _, line := range msg.lines {
			_ = m.history.Add(line.Input, modeParse)

			cmds = append(cmds, tea.Println(m.renderLine(line.Input, line.Result)))
		}

		m.historyIdx = m.history.Len()

		m.logger.TraceContext(m.ctxFunc(), "repl edit complete",
			slog.Int("lines", len(msg.lines)),
		)

		return m, tea.Sequence(cmds...)

	case editErrorMsg:
		return m, tea.Println(
			m.styles.error.Render("✘ error: " + msg.err.Error()),
		)
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.hintView())
	b.WriteString("\n")

	return b.String()
}

// hintView renders the line below the input: history position, completion
// candidates, or whether the current input matches.
func (m model) hintView() string {
	input := strings.TrimSpace(m.input.Value())

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			m.styles.hint.Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())

		return m.styles.hint.Render(hint)

	case len(m.matches) > 0:
		return m.styles.renderCandidateBar(
			m.matches, m.suggIdx, m.tabActive, m.width,
		)

	case input == "":
		if m.mode == modeParse {
			return m.styles.hint.Render(
				"Type a date/time string or press Esc for commands",
			)
		}

		return m.styles.hint.Render(
			"Type: " + strings.Join(ctrlCommands, ", ") + " (press Esc to return)",
		)

	case m.mode == modeParse && !strings.HasPrefix(input, ":"):
		if temporal.Matches(m.prod, input) {
			return m.styles.result.Render("✔ " + m.prod.String())
		}

		return m.styles.hint.Render("✘ " + m.prod.String())
	}

	return ""
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1)

	case tea.KeyShiftTab:
		return m.cycle(-1)

	case tea.KeyUp:
		return m.historyStep(-1, false)

	case tea.KeyDown:
		return m.historyStep(1, false)

	case tea.KeyShiftUp:
		return m.historyStep(-1, true)

	case tea.KeyShiftDown:
		return m.historyStep(1, true)

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		return m.toggleMode()

	case tea.KeyRunes:
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// Backspace, delete, cursor movement, etc.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the selected completion candidate by step, wrapping around.
// A sole candidate is completed immediately.
func (m model) cycle(step int) (model, tea.Cmd) {
	n := len(m.matches)
	if n == 0 {
		return m, nil
	}

	if n == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m, nil
	}

	switch {
	case m.tabActive:
		m.suggIdx = (m.suggIdx + step + n) % n
	case step < 0:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = n - 1
	default:
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
		m.suggIdx = 0
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m, nil
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also drops the candidate bar once the typed
// word already equals the sole remaining candidate.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	if m.input.Value()[m.wordStart:m.wordEnd] == m.matches[0].Str {
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.parseText = ""
	m.parseCursor = 0
	m.ctrlText = ""
	m.ctrlCursor = 0
	m.input.SetValue("")
	m.matches = nil

	mode := m.mode
	if mode == modeParse && strings.HasPrefix(input, ":") {
		mode = modeCtrl
		input = strings.TrimSpace(input[1:])
	}

	if err := m.history.Add(input, mode); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history",
			slog.Any("error", err),
		)
	}

	m.historyIdx = m.history.Len()

	if mode == modeCtrl {
		return m.executeCommand(input)
	}

	m.logger.TraceContext(m.ctxFunc(), "repl parse",
		slog.String("input", input),
	)

	echo := tea.Println(
		m.styles.prompt.Render(parsePrompt) + m.styles.input.Render(input),
	)

	res, err := temporal.ParseString(m.ctxFunc(), m.prod, input, m.opts...)
	if err != nil && !errors.Is(err, temporal.ErrNoMatch) {
		return m, tea.Sequence(echo,
			tea.Println(m.styles.error.Render("✘ error: "+err.Error())),
		)
	}

	return m, tea.Sequence(echo, tea.Println(m.renderLine(input, res)))
}

// renderLine renders a parse outcome, applying the active filter to matches.
func (m model) renderLine(input string, res *temporal.ParseResult) string {
	if res == nil {
		return m.styles.renderFailure(input, "no match: "+m.prod.String())
	}

	ok, err := m.filter.Match(res)

	switch {
	case err != nil:
		return m.styles.renderFailure(input, err.Error())
	case !ok:
		return m.styles.renderFailure(input, "rejected: "+m.filter.String())
	}

	return m.styles.renderResult(res)
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	name, args, _ := strings.Cut(input, " ")
	args = strings.TrimSpace(args)

	echo := tea.Println(
		m.styles.ctrlPrompt.Render(ctrlPrompt) + m.styles.input.Render(input),
	)

	m.logger.TraceContext(m.ctxFunc(), "repl command",
		slog.String("command", name),
		slog.String("args", args),
	)

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage))

	case "l", "list":
		return m, tea.Sequence(echo, tea.Println(m.listView(args)))

	case "w", "where":
		return m.setFilter(echo, args)

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		return m, tea.Sequence(echo, m.edit())

	default:
		msg := "Unknown command: " + name
		if s := temporal.Suggest(name, ctrlCommands); len(s) > 0 {
			msg += " (did you mean " + s[0] + "?)"
		} else {
			msg += " (try 'help')"
		}

		return m, tea.Println(m.styles.error.Render(msg))
	}
}

// setFilter compiles src as the active filter. An empty src clears it.
func (m model) setFilter(echo tea.Cmd, src string) (model, tea.Cmd) {
	if src == "" {
		m.filter = nil

		return m, tea.Sequence(echo, tea.Println(m.styles.hint.Render("filter cleared")))
	}

	filter, err := temporal.CompileFilter(src)
	if err != nil {
		return m, tea.Sequence(echo,
			tea.Println(m.styles.error.Render("✘ "+err.Error())),
		)
	}

	m.filter = filter

	return m, tea.Sequence(echo,
		tea.Println(m.styles.result.Render("✔ where "+filter.String())),
	)
}

// listView lists production names, or symbol names when what is "symbols".
func (m model) listView(what string) string {
	var b strings.Builder

	if strings.HasPrefix("symbols", what) && what != "" {
		for sym := range temporal.Symbols() {
			b.WriteString("  " + sym.String() + "\n")
		}

		return b.String()
	}

	for prod := range temporal.Productions() {
		line := "  " + prod.String()
		if prod == m.prod {
			line += m.styles.hint.Render(" (active)")
		}

		b.WriteString(line + "\n")
	}

	return b.String()
}

// edit opens the external editor seeded with the parse history.
func (m model) edit() tea.Cmd {
	cmd := &editBatchCommand{
		ctxFunc: m.ctxFunc,
		prod:    m.prod,
		opts:    m.opts,
		logger:  m.logger,
		seed:    m.history.Lines(modeParse),
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		if err != nil {
			return editErrorMsg{err: err}
		}

		return editDoneMsg{lines: cmd.lines}
	})
}

// historyStep moves through history by step. With sameMode set, entries of
// the other mode are skipped; otherwise the mode follows the entry.
// Stepping past the newest entry clears the input.
func (m model) historyStep(step int, sameMode bool) (model, tea.Cmd) {
	for i := m.historyIdx + step; i >= 0 && i < m.history.Len(); i += step {
		entry, err := m.history.Entry(i)
		if err != nil {
			break
		}

		if sameMode && entry.Mode != m.mode {
			continue
		}

		if entry.Mode != m.mode {
			m, _ = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		refreshMatches(&m, false)

		return m, nil
	}

	if step > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m, nil
}

// toggleMode switches between parse and control modes, preserving input state.
func (m model) toggleMode() (model, tea.Cmd) {
	if m.mode == modeParse {
		return m.switchToMode(modeCtrl)
	}

	return m.switchToMode(modeParse)
}

// switchToMode switches to the specified mode, preserving input state.
func (m model) switchToMode(mode inputMode) (model, tea.Cmd) {
	if m.mode == modeParse {
		m.parseText = m.input.Value()
		m.parseCursor = m.input.Position()
	} else {
		m.ctrlText = m.input.Value()
		m.ctrlCursor = m.input.Position()
	}

	m.mode = mode
	if mode == modeParse {
		m.input.Prompt = m.styles.prompt.Render(parsePrompt)
		m.input.SetValue(m.parseText)
		m.input.SetCursor(m.parseCursor)
	} else {
		m.input.Prompt = m.styles.ctrlPrompt.Render(ctrlPrompt)
		m.input.SetValue(m.ctrlText)
		m.input.SetCursor(m.ctrlCursor)
	}

	refreshMatches(&m, false)

	return m, nil
}
