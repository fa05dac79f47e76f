// Package console provides the chat console model: a prompt line, a
// scrolling transcript, and command dispatch. Lines starting with "/"
// run through the command registry; everything else appends as chat
// text.
package console

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/parleychat/parley/internal/command"
	"github.com/parleychat/parley/internal/flags"
	"github.com/parleychat/parley/internal/history"
	"github.com/parleychat/parley/internal/keys"
	"github.com/parleychat/parley/internal/log"
	"github.com/parleychat/parley/internal/settings"
	"github.com/parleychat/parley/internal/tracing"
	"github.com/parleychat/parley/internal/ui/shared/markdown"
	"github.com/parleychat/parley/internal/ui/shared/textwidth"
	"github.com/parleychat/parley/internal/ui/styles"
)

// resultAttrLimit caps the command result recorded on spans. Tag listings
// can run long; traces keep a prefix.
const resultAttrLimit = 256

// Config wires the console to the rest of the application.
type Config struct {
	// Registry executes "/"-prefixed input lines.
	Registry *command.Registry
	// History records executed commands. Nil disables recording.
	History *history.Service
	// Flags gates markdown help and save notices.
	Flags *flags.Registry
	// Tracer spans each command execution. Nil falls back to a noop tracer.
	Tracer trace.Tracer
	// Store backs the status bar and the save-pending spinner.
	Store *settings.Store
	// Theme is the glamour style for markdown help: "dark" or "light".
	Theme string
	// Version is shown in the welcome notice.
	Version string
}

// lineKind selects the transcript style for a line.
type lineKind int

const (
	chatLine lineKind = iota
	echoLine
	resultLine
	errorLine
	noticeLine
	helpLine
)

type transcriptLine struct {
	kind lineKind
	text string
}

// commandResultMsg carries the outcome of one dispatched command back
// into the update loop.
type commandResultMsg struct {
	input  string
	name   string
	result string
	err    error
}

// SettingsSavedMsg reports a completed background save.
type SettingsSavedMsg struct {
	TagCount int
}

// SettingsSaveFailedMsg reports a failed background save.
type SettingsSaveFailedMsg struct {
	Err string
}

// SettingsReloadedMsg reports that the settings file was re-read after
// an external change.
type SettingsReloadedMsg struct {
	TagCount int
}

// Model holds the console state.
type Model struct {
	config Config

	input    textinput.Model
	viewport viewport.Model
	spin     spinner.Model

	lines []transcriptLine

	// Input recall. inputHistory is oldest to newest; histPos ==
	// len(inputHistory) means not recalling, and draft preserves the
	// half-typed line while browsing.
	inputHistory []string
	histPos      int
	draft        string

	md *markdown.Renderer

	width  int
	height int
	ready  bool

	saving   bool
	quitting bool
}

// New creates a console model. The input line starts focused.
func New(cfg Config) Model {
	if cfg.Tracer == nil {
		cfg.Tracer = noop.NewTracerProvider().Tracer("console")
	}

	ti := textinput.New()
	ti.Placeholder = "type a message, /help for commands"
	ti.Prompt = "› "
	ti.PromptStyle = styles.PromptStyle
	ti.PlaceholderStyle = ti.PlaceholderStyle.Foreground(styles.TextPlaceholderColor)
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot))
	sp.Style = lipgloss.NewStyle().Foreground(styles.SpinnerColor)

	m := Model{
		config: cfg,
		input:  ti,
		spin:   sp,
	}

	welcome := "parley"
	if cfg.Version != "" {
		welcome += " " + cfg.Version
	}
	m.lines = append(m.lines, transcriptLine{kind: noticeLine, text: welcome + "  /help for commands"})

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Quitting reports whether a quit was requested.
func (m Model) Quitting() bool {
	return m.quitting
}

func (m Model) markdownHelpEnabled() bool {
	return m.config.Flags.Enabled(flags.FlagMarkdownHelp)
}

// Update implements tea.Model and handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.setSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		// The viewport handles wheel scrolling.
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case commandResultMsg:
		return m.handleCommandResult(msg)

	case spinner.TickMsg:
		if !m.saving {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case SettingsSavedMsg:
		m.saving = false
		if m.config.Flags.Enabled(flags.FlagSaveNotices) {
			m = m.appendLine(transcriptLine{kind: noticeLine, text: "settings saved (" + styles.FormatTagCount(msg.TagCount) + ")"})
		}
		return m, nil

	case SettingsSaveFailedMsg:
		m.saving = false
		m = m.appendLine(transcriptLine{kind: errorLine, text: "settings save failed: " + msg.Err})
		return m, nil

	case SettingsReloadedMsg:
		m = m.appendLine(transcriptLine{kind: noticeLine, text: "settings reloaded (" + styles.FormatTagCount(msg.TagCount) + ")"})
		return m, nil
	}

	return m, tea.Batch(cmds...)
}

// handleKey dispatches key presses against the console key map. Unmatched
// keys fall through to the text input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Console.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Console.Submit):
		return m.submit()

	case key.Matches(msg, keys.Console.ClearInput):
		m.input.SetValue("")
		m.histPos = len(m.inputHistory)
		m.draft = ""
		return m, nil

	case key.Matches(msg, keys.Console.PrevInput):
		return m.recallPrev(), nil

	case key.Matches(msg, keys.Console.NextInput):
		return m.recallNext(), nil

	case key.Matches(msg, keys.Console.ScrollUp):
		m.viewport.ScrollUp(max(m.viewport.Height/2, 1))
		return m, nil

	case key.Matches(msg, keys.Console.ScrollDown):
		m.viewport.ScrollDown(max(m.viewport.Height/2, 1))
		return m, nil

	case key.Matches(msg, keys.Console.ClearScreen):
		m.lines = nil
		m = m.refreshTranscript(true)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit takes the current input line, echoes it into the transcript,
// and dispatches it as a command when it starts with "/".
func (m Model) submit() (Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		return m, nil
	}

	m.input.SetValue("")
	m = m.pushInputHistory(value)

	if strings.HasPrefix(value, "/") {
		m = m.appendLine(transcriptLine{kind: echoLine, text: value})
		return m, m.executeCmd(value)
	}

	m = m.appendLine(transcriptLine{kind: chatLine, text: value})
	return m, nil
}

// executeCmd runs one command line off the update loop and reports the
// outcome as a commandResultMsg. The execution is wrapped in a span and
// recorded to history.
func (m Model) executeCmd(input string) tea.Cmd {
	reg := m.config.Registry
	hist := m.config.History
	tracer := m.config.Tracer

	return func() tea.Msg {
		line := strings.TrimPrefix(input, "/")
		typed, _ := command.SplitName(line)

		// Spans are named after the resolved command so alias traffic
		// does not split the metrics; the typed alias rides along as an
		// attribute.
		name := typed
		var alias string
		if cmd, ok := reg.Get(typed); ok && cmd.Name() != typed {
			name = cmd.Name()
			alias = typed
		}

		ctx, span := tracer.Start(context.Background(), tracing.SpanPrefixCommand+name)
		span.SetAttributes(attribute.String(tracing.AttrCommandName, name))
		if alias != "" {
			span.SetAttributes(attribute.String(tracing.AttrCommandAlias, alias))
		}

		result, err := reg.Execute(ctx, line)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			span.SetAttributes(attribute.String(tracing.AttrErrorMessage, err.Error()))
		} else {
			span.SetStatus(codes.Ok, "")
			span.SetAttributes(attribute.String(tracing.AttrCommandResult, textwidth.Truncate(result, resultAttrLimit, "…")))
		}
		span.End()

		if hist != nil {
			recorded := result
			if err != nil {
				recorded = "error: " + err.Error()
			}
			if _, rerr := hist.Record(input, name, recorded); rerr != nil {
				log.ErrorErr(log.CatHistory, "Failed to record command", rerr, "command", name)
			}
		}

		return commandResultMsg{input: input, name: name, result: result, err: err}
	}
}

// handleCommandResult folds a command outcome into the transcript. Host
// commands with model-level effects (clear, quit) act here, by name.
func (m Model) handleCommandResult(msg commandResultMsg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch {
	case msg.err != nil:
		m = m.appendLine(transcriptLine{kind: errorLine, text: msg.err.Error()})

	case msg.name == hostClear:
		m.lines = nil
		m = m.refreshTranscript(true)

	case msg.name == hostQuit:
		m.quitting = true
		return m, tea.Quit

	case msg.name == hostHelp:
		m = m.appendLine(transcriptLine{kind: helpLine, text: msg.result})

	case msg.result != "":
		m = m.appendLine(transcriptLine{kind: resultLine, text: msg.result})
	}

	// A tag command may have queued a debounced save; show the spinner
	// until the store reports the outcome.
	if !m.saving && m.config.Store != nil && m.config.Store.SavePending() {
		m.saving = true
		cmds = append(cmds, m.spin.Tick)
	}

	return m, tea.Batch(cmds...)
}

// pushInputHistory appends a submitted line to the recall buffer,
// skipping consecutive duplicates, and resets the recall cursor.
func (m Model) pushInputHistory(value string) Model {
	if n := len(m.inputHistory); n == 0 || m.inputHistory[n-1] != value {
		m.inputHistory = append(m.inputHistory, value)
	}
	m.histPos = len(m.inputHistory)
	m.draft = ""
	return m
}

func (m Model) recallPrev() Model {
	if m.histPos == 0 {
		return m
	}
	if m.histPos == len(m.inputHistory) {
		m.draft = m.input.Value()
	}
	m.histPos--
	m.input.SetValue(m.inputHistory[m.histPos])
	m.input.CursorEnd()
	return m
}

func (m Model) recallNext() Model {
	if m.histPos >= len(m.inputHistory) {
		return m
	}
	m.histPos++
	if m.histPos == len(m.inputHistory) {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.inputHistory[m.histPos])
	}
	m.input.CursorEnd()
	return m
}

// setSize lays out the panes for a new terminal size and rebuilds the
// width-dependent markdown renderer.
func (m Model) setSize(width, height int) Model {
	m.width = width
	m.height = height

	vpWidth := max(width-2, 1)
	vpHeight := max(m.transcriptHeight()-2, 1)

	if !m.ready {
		m.viewport = viewport.New(vpWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
	}

	// Prompt marker and borders eat four cells.
	m.input.Width = max(width-6, 10)

	if md, err := markdown.New(vpWidth, m.config.Theme); err == nil {
		m.md = md
	}

	return m.refreshTranscript(true)
}
