// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// ConsoleKeyMap defines the keybindings for the chat console. The input
// line keeps focus the whole session, so every binding has to coexist
// with ordinary typing.
type ConsoleKeyMap struct {
	// Input
	Submit     key.Binding
	ClearInput key.Binding

	// Input history recall
	PrevInput key.Binding
	NextInput key.Binding

	// Transcript
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	ClearScreen key.Binding

	// General
	Quit key.Binding
}

// Console holds the console keybindings.
var Console = ConsoleKeyMap{
	// Input
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "send"),
	),
	ClearInput: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear input"),
	),

	// Input history recall
	PrevInput: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "previous input"),
	),
	NextInput: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "next input"),
	),

	// Transcript
	ScrollUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "scroll up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "scroll down"),
	),
	ClearScreen: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear transcript"),
	),

	// General
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// ShortHelp returns keybindings for the short help view.
func (k ConsoleKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k ConsoleKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.ClearInput},                  // Input
		{k.PrevInput, k.NextInput},                // History
		{k.ScrollUp, k.ScrollDown, k.ClearScreen}, // Transcript
		{k.Quit},                                  // General
	}
}
