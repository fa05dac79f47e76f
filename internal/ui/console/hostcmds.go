package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/parleychat/parley/internal/command"
	"github.com/parleychat/parley/internal/history"
	"github.com/parleychat/parley/internal/keys"
	"github.com/parleychat/parley/internal/ui/shared/textwidth"
)

// Host command names. These run through the same registry as extension
// commands; clear and quit additionally have model-level effects applied
// in handleCommandResult.
const (
	hostHelp    = "help"
	hostClear   = "clear"
	hostHistory = "history"
	hostQuit    = "quit"
)

// historyResultWidth bounds each recalled result in /history output.
const historyResultWidth = 48

// RegisterHostCommands adds the console's built-in commands to the
// registry. hist may be nil when history is disabled; /history then
// answers with a notice instead of entries.
func RegisterHostCommands(reg *command.Registry, hist *history.Service) error {
	builders := []func() (*command.Command, error){
		func() (*command.Command, error) { return helpCommand(reg) },
		clearCommand,
		func() (*command.Command, error) { return historyCommand(hist) },
		quitCommand,
	}

	for _, build := range builders {
		cmd, err := build()
		if err != nil {
			return fmt.Errorf("building host command: %w", err)
		}
		if err := reg.Register(cmd); err != nil {
			return fmt.Errorf("registering host command: %w", err)
		}
	}
	return nil
}

func helpCommand(reg *command.Registry) (*command.Command, error) {
	return command.NewCommand(
		hostHelp,
		"Show this command reference.",
		nil,
		func(_ context.Context, _ command.Args) (string, error) {
			return buildHelpText(reg), nil
		},
	)
}

func clearCommand() (*command.Command, error) {
	return command.NewCommand(
		hostClear,
		"Clear the transcript.",
		nil,
		func(_ context.Context, _ command.Args) (string, error) {
			return "", nil
		},
	)
}

func historyCommand(hist *history.Service) (*command.Command, error) {
	count, err := command.NewArgument("count", "Count", "How many entries to show", command.ArgumentTypeNumber, false, "20")
	if err != nil {
		return nil, err
	}
	return command.NewCommand(
		hostHistory,
		"Show recently executed commands, newest first.",
		[]*command.Argument{count},
		func(_ context.Context, args command.Args) (string, error) {
			if hist == nil {
				return "history is disabled", nil
			}
			entries, err := hist.Recent(args.GetInt("count", 20))
			if err != nil {
				return "", fmt.Errorf("loading history: %w", err)
			}
			if len(entries) == 0 {
				return "no history yet", nil
			}
			return formatHistory(entries), nil
		},
	)
}

func quitCommand() (*command.Command, error) {
	return command.NewCommand(
		hostQuit,
		"Exit parley.",
		nil,
		func(_ context.Context, _ command.Args) (string, error) {
			return "", nil
		},
	)
}

// buildHelpText renders the command reference as markdown. The console
// decides at display time whether it goes through glamour or stays
// plain.
func buildHelpText(reg *command.Registry) string {
	var b strings.Builder
	b.WriteString("# Commands\n\n")

	for _, c := range reg.Commands() {
		b.WriteString("- `/" + c.Usage() + "`: " + c.Help() + "\n")
		if aliases := c.Aliases(); len(aliases) > 0 {
			b.WriteString("  (also `/" + strings.Join(aliases, "`, `/") + "`)\n")
		}
	}

	b.WriteString("\n## Keys\n\n")
	for _, group := range keys.Console.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString("- `" + h.Key + "`: " + h.Desc + "\n")
		}
	}

	return b.String()
}

// formatHistory lays entries out one per line: time, input, result.
func formatHistory(entries []*history.Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		line := e.CreatedAt().Local().Format("15:04") + "  " + e.Input()
		if result := e.Result(); result != "" {
			line += "  →  " + textwidth.Truncate(result, historyResultWidth, "…")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
