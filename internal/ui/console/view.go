package console

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/parleychat/parley/internal/keys"
	"github.com/parleychat/parley/internal/ui/shared/textwidth"
	"github.com/parleychat/parley/internal/ui/styles"
)

// inputPaneHeight is 1 content line plus 2 border lines.
const inputPaneHeight = 3

// View renders the transcript pane, the input pane, and the status bar.
func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}
	if m.quitting {
		return ""
	}

	transcript := styles.RenderWithTitleBorder(
		m.viewport.View(), "parley",
		m.width, m.transcriptHeight(),
		false, styles.TextSecondaryColor, styles.BorderFocusColor,
	)

	input := styles.RenderWithTitleBorder(
		m.input.View(), "",
		m.width, inputPaneHeight,
		m.input.Focused(), styles.TextSecondaryColor, styles.BorderFocusColor,
	)

	return lipgloss.JoinVertical(lipgloss.Left, transcript, input, m.statusBar())
}

// transcriptHeight is whatever the input pane and status bar leave over.
func (m Model) transcriptHeight() int {
	return max(m.height-inputPaneHeight-1, 3)
}

// appendLine adds a transcript line and re-renders the viewport,
// following the scroll position only when the user is already at the
// bottom.
func (m Model) appendLine(line transcriptLine) Model {
	m.lines = append(m.lines, line)
	return m.refreshTranscript(m.viewport.AtBottom())
}

// refreshTranscript rebuilds the viewport content at the current width.
func (m Model) refreshTranscript(follow bool) Model {
	if !m.ready {
		return m
	}
	m.viewport.SetContent(m.renderTranscript())
	if follow {
		m.viewport.GotoBottom()
	}
	return m
}

// renderTranscript styles and wraps every transcript line. Wrapping runs
// after styling; reflow is ANSI-aware so escape codes do not count
// against the width.
func (m Model) renderTranscript() string {
	width := m.viewport.Width
	marker := styles.PromptStyle.Render("› ")

	var b strings.Builder
	for i, line := range m.lines {
		if i > 0 {
			b.WriteString("\n")
		}

		switch line.kind {
		case chatLine:
			b.WriteString(wordwrap.String(marker+styles.ResultStyle.Render(line.text), width))
		case echoLine:
			b.WriteString(wordwrap.String(marker+styles.EchoStyle.Render(line.text), width))
		case resultLine:
			b.WriteString(wordwrap.String(styles.ResultStyle.Render(line.text), width))
		case errorLine:
			b.WriteString(wordwrap.String(styles.ErrorStyle.Render(line.text), width))
		case noticeLine:
			b.WriteString(wordwrap.String(styles.NoticeStyle.Render(line.text), width))
		case helpLine:
			b.WriteString(m.renderHelp(line.text, width))
		}
	}
	return b.String()
}

// renderHelp shows command reference text, through glamour when the
// markdown-help flag is on and a renderer is available. The fallback
// shows the markdown source as-is, which reads fine in a terminal.
func (m Model) renderHelp(text string, width int) string {
	if m.markdownHelpEnabled() && m.md != nil {
		return m.md.RenderOrPlain(text)
	}
	return wordwrap.String(text, width)
}

// statusBar renders the tag count, the settings path, a save spinner
// while a write is pending, and a short key hint.
func (m Model) statusBar() string {
	var left strings.Builder

	if m.config.Store != nil {
		left.WriteString(styles.FormatTagCount(len(m.config.Store.Tags())))
	}

	if m.saving {
		left.WriteString("  ")
		left.WriteString(m.spin.View())
		left.WriteString(" saving")
	}

	hint := keyHint(keys.Console.ShortHelp())

	leftStr := styles.StatusBarStyle.Render(left.String())
	rightStr := styles.HelpStyle.Render(hint)

	gap := m.width - lipgloss.Width(leftStr) - lipgloss.Width(rightStr)
	if gap < 1 {
		// Too narrow for the hint; keep the styled left side and cut it
		// ANSI-aware so escape codes survive the truncation.
		if ansi.StringWidth(leftStr) > m.width {
			return ansi.Truncate(leftStr, m.width, "…")
		}
		return leftStr
	}

	// The settings path fills spare room in the middle. Cutting from the
	// front keeps the filename visible.
	var middle string
	if m.config.Store != nil && gap > 8 {
		middle = styles.NoticeStyle.Render(textwidth.TruncateLeft(m.config.Store.Path(), gap-2, "..."))
		gap -= lipgloss.Width(middle)
		if gap < 1 {
			middle = ""
			gap = m.width - lipgloss.Width(leftStr) - lipgloss.Width(rightStr)
		}
	}

	return leftStr + middle + strings.Repeat(" ", gap) + rightStr
}

// keyHint formats bindings as "enter send • ctrl+c quit".
func keyHint(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
