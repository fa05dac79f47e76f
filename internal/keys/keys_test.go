package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Console Keybinding Tests
// ============================================================================

func TestConsole_KeyAssignments(t *testing.T) {
	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{
			name:     "Submit uses enter",
			binding:  Console.Submit,
			expected: []string{"enter"},
		},
		{
			name:     "ClearInput uses esc",
			binding:  Console.ClearInput,
			expected: []string{"esc"},
		},
		{
			name:     "PrevInput uses up and ctrl+p",
			binding:  Console.PrevInput,
			expected: []string{"up", "ctrl+p"},
		},
		{
			name:     "NextInput uses down and ctrl+n",
			binding:  Console.NextInput,
			expected: []string{"down", "ctrl+n"},
		},
		{
			name:     "ScrollUp uses pgup and ctrl+u",
			binding:  Console.ScrollUp,
			expected: []string{"pgup", "ctrl+u"},
		},
		{
			name:     "ScrollDown uses pgdown and ctrl+d",
			binding:  Console.ScrollDown,
			expected: []string{"pgdown", "ctrl+d"},
		},
		{
			name:     "ClearScreen uses ctrl+l",
			binding:  Console.ClearScreen,
			expected: []string{"ctrl+l"},
		},
		{
			name:     "Quit uses ctrl+c only, q stays typeable",
			binding:  Console.Quit,
			expected: []string{"ctrl+c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := tt.binding.Keys()
			require.Equal(t, tt.expected, keys)
		})
	}
}

func TestConsole_HelpTextDefined(t *testing.T) {
	bindings := []struct {
		name    string
		binding key.Binding
	}{
		{"Submit", Console.Submit},
		{"ClearInput", Console.ClearInput},
		{"PrevInput", Console.PrevInput},
		{"NextInput", Console.NextInput},
		{"ScrollUp", Console.ScrollUp},
		{"ScrollDown", Console.ScrollDown},
		{"ClearScreen", Console.ClearScreen},
		{"Quit", Console.Quit},
	}

	for _, b := range bindings {
		t.Run(b.name, func(t *testing.T) {
			help := b.binding.Help()
			require.NotEmpty(t, help.Key, "key help should not be empty")
			require.NotEmpty(t, help.Desc, "description help should not be empty")
		})
	}
}

func TestConsole_HelpViews(t *testing.T) {
	short := Console.ShortHelp()
	require.Len(t, short, 2, "short help should show submit and quit")

	full := Console.FullHelp()
	require.Len(t, full, 4, "full help should have four groups")
	for _, group := range full {
		require.NotEmpty(t, group, "help groups should not be empty")
	}
}
