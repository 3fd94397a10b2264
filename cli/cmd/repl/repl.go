package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/wfm/lang"
	"github.com/ardnew/wfm/log"
)

const prompt = "➜ "

func helpMessage() string {
	return `
Commands:

  :help     Print this cruft
  :tables   List shortcuts and macros of the active profile
  :history  List previous configuration strings
  :clear    Clear screen
  :quit     Exit REPL

Usage:
  Type a configuration string; it is compiled as you type
  Press Enter to print the result and save the string to history
  After '.', macro names appear as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to cancel cycling
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// Styles.
var (
	promptStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatCommand formats the command echo line with prompt and input styled.
func formatCommand(input string) string {
	return promptStyle.Render(prompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	profile      *lang.Profile
	logger       log.Logger
	history      *History
	historyIdx   int
	result       *lang.Result  // last successful compile of the input
	err          error         // last compile error of the input
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
}

// Run starts the REPL, compiling with profile p and keeping history in the
// file at historyPath.
func Run(
	ctx context.Context,
	p *lang.Profile,
	historyPath string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if p == nil {
		return ErrNoProfile
	}

	logger.TraceContext(
		ctx,
		"repl start",
		slog.String("profile", p.Name),
		slog.String("history", historyPath),
	)

	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	logger.TraceContext(
		ctx,
		"repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	prog := tea.NewProgram(newModel(ctx, p, history, logger), tea.WithContext(ctx))
	_, err = prog.Run()

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	p *lang.Profile,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		profile:    p,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
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
		m.input.Width = msg.Width - lipgloss.Width(prompt) - 2

		return m, nil
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

	input := m.input.Value()
	_, sigil, _, _ := wordBounds(m.profile, input, m.input.Position())

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(input) == "":
		b.WriteString(hintStyle.Render(
			"Type a configuration string, or :help for commands",
		))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))

	case sigil == '*' && !strings.HasPrefix(input, ctrlPrefix):
		b.WriteString(shortcutHint(m.profile, m.width))
	}

	b.WriteString("\n")
	b.WriteString(m.preview())

	return b.String()
}

// preview renders the live compile result of the current input.
func (m model) preview() string {
	input := m.input.Value()
	if input == "" || strings.HasPrefix(input, ctrlPrefix) {
		return ""
	}

	if m.err != nil {
		var sb strings.Builder

		_ = lang.Report(&sb, m.err, input)

		return errorStyle.Render(sb.String())
	}

	if m.result != nil {
		return resultStyle.Render(m.result.Listing())
	}

	return ""
}

// recompile compiles the current input, keeping the result or error for
// [model.preview].
func (m *model) recompile() {
	m.result, m.err = nil, nil

	input := m.input.Value()
	if input == "" || strings.HasPrefix(input, ctrlPrefix) {
		return
	}

	m.result, m.err = lang.Compile(m.ctxFunc(), input,
		lang.WithProfile(m.profile),
		lang.WithLogger(m.logger),
	)
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"repl keypress",
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
		m.refresh(false)

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
		m.refresh(true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyMove(-1), nil

	case tea.KeyDown:
		return m.historyMove(1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refresh(false)
		}

		return m, nil

	case tea.KeyRunes:
		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.tabActive = false
		m.input, cmd = m.input.Update(msg)
		m.refresh(true)

		return m, cmd
	}

	// For any other key (backspace, delete, arrows, etc.),
	// update input and recompute matches without auto-confirm.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refresh(false)

	return m, cmd
}

// cycle moves the selected candidate by step, starting a tab cycle if none
// is active. A sole candidate is completed immediately.
func (m model) cycle(step int) model {
	n := len(m.matches)
	if n == 0 {
		return m
	}

	if n == 1 {
		m.replaceCurrentWord(m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
		m.recompile()

		return m
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + n) % n
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = n - 1
		}
	}

	m.replaceCurrentWord(m.matches[m.suggIdx].Str)
	m.recompile()

	return m
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func (m *model) replaceCurrentWord(replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refresh recompiles the input and recomputes fuzzy matches. When
// autoConfirm is true the completion is confirmed once the typed word equals
// the sole candidate. It is false for deletions and cursor navigation so
// that the user can edit without unexpected completions.
func (m *model) refresh(autoConfirm bool) {
	m.recompile()

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

	if cmd, ok := strings.CutPrefix(input, ctrlPrefix); ok {
		m.input.SetValue("")
		m.refresh(false)

		return m.executeCommand(strings.TrimSpace(cmd))
	}

	if err := m.history.Add(input); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history",
			slog.Any("error", err),
		)
	}

	m.historyIdx = m.history.Len()

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl compile",
		slog.String("input", input),
	)

	echoCmd := tea.Println(formatCommand(input))

	m.input.SetValue(input)
	m.recompile()

	result, err := m.result, m.err

	m.input.SetValue("")
	m.refresh(false)

	if err != nil {
		var sb strings.Builder

		_ = lang.Report(&sb, err, input)

		return m, tea.Sequence(
			echoCmd,
			tea.Println(errorStyle.Render(strings.TrimRight(sb.String(), "\n"))),
		)
	}

	var sb strings.Builder

	_ = result.Show(&sb)

	return m, tea.Sequence(
		echoCmd,
		tea.Println(resultStyle.Render(strings.TrimRight(sb.String(), "\n"))),
	)
}

func (m model) executeCommand(cmd string) (model, tea.Cmd) {
	echoCmd := tea.Println(formatCommand(ctrlPrefix + cmd))

	m.logger.TraceContext(
		m.ctxFunc(),
		"repl exec command",
		slog.String("command", cmd),
	)

	switch cmd {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echoCmd, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echoCmd, tea.Println(helpMessage()))

	case "t", "tables":
		var sb strings.Builder

		_ = m.profile.WriteTables(m.ctxFunc(), &sb)

		return m, tea.Sequence(echoCmd, tea.Println(sb.String()))

	case "history":
		return m, tea.Sequence(echoCmd, tea.Println(m.listHistory()))

	case "c", "clear":
		return m, tea.ClearScreen

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + cmd + " (try :help)"),
		)
	}
}

func (m model) listHistory() string {
	var sb strings.Builder

	for i, entry := range m.history.Entries() {
		fmt.Fprintf(&sb, "%4d  %s\n", i+1, entry)
	}

	return strings.TrimRight(sb.String(), "\n")
}

// historyMove steps through history by step, where -1 is toward older
// entries. Moving past the newest entry clears the input.
func (m model) historyMove(step int) model {
	idx := m.historyIdx + step
	if idx < 0 || idx > m.history.Len() {
		return m
	}

	m.historyIdx = idx
	m.tabActive = false

	entry, err := m.history.Entry(idx)
	if err != nil {
		entry = ""
	}

	m.input.SetValue(entry)
	m.input.CursorEnd()
	m.refresh(false)

	return m
}
