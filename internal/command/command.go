// Package command provides typed chat command descriptors and the registry
// that resolves and executes them. A command is declared once with its name,
// aliases, argument schema, and handler; the registry owns parsing the input
// line and binding arguments before the handler runs.
package command

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

// Command errors
var (
	ErrCommandEmptyName      = errors.New("command name cannot be empty")
	ErrCommandNameWhitespace = errors.New("command names cannot contain whitespace")
	ErrCommandNilHandler     = errors.New("command handler cannot be nil")
	ErrCommandRestNotLast    = errors.New("only the final argument may capture the rest of the line")
	ErrCommandOptionalOrder  = errors.New("required arguments must precede optional ones")
	ErrCommandDuplicateArg   = errors.New("duplicate argument key")
)

// Args holds the bound argument values for one command invocation,
// keyed by argument key.
type Args map[string]string

// Get returns the bound value for key, or "" when absent.
func (a Args) Get(key string) string {
	return a[key]
}

// GetInt returns the bound value for key parsed as an integer.
// Returns the fallback when the value is absent or not a number.
func (a Args) GetInt(key string, fallback int) int {
	v, ok := a[key]
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// Handler executes a command with its bound arguments and returns the
// textual result shown in the transcript.
type Handler func(ctx context.Context, args Args) (string, error)

// Command is a typed descriptor for one chat command.
type Command struct {
	name    string
	aliases []string
	help    string
	args    []*Argument
	handler Handler
}

// NewCommand creates a Command with validation. Arguments bind in
// declaration order; optional arguments must follow required ones and a
// rest argument must be last.
func NewCommand(name, help string, args []*Argument, handler Handler, aliases ...string) (*Command, error) {
	if name == "" {
		return nil, ErrCommandEmptyName
	}
	if strings.ContainsAny(name, " \t\n") {
		return nil, ErrCommandNameWhitespace
	}
	for _, alias := range aliases {
		if alias == "" {
			return nil, ErrCommandEmptyName
		}
		if strings.ContainsAny(alias, " \t\n") {
			return nil, ErrCommandNameWhitespace
		}
	}
	if handler == nil {
		return nil, ErrCommandNilHandler
	}

	seen := make(map[string]struct{}, len(args))
	optionalSeen := false
	for i, arg := range args {
		if _, dup := seen[arg.Key()]; dup {
			return nil, ErrCommandDuplicateArg
		}
		seen[arg.Key()] = struct{}{}

		if arg.Rest() && i != len(args)-1 {
			return nil, ErrCommandRestNotLast
		}
		if arg.Required() && optionalSeen {
			return nil, ErrCommandOptionalOrder
		}
		if !arg.Required() {
			optionalSeen = true
		}
	}

	return &Command{
		name:    name,
		aliases: aliases,
		help:    help,
		args:    args,
		handler: handler,
	}, nil
}

// Name returns the command's primary name.
func (c *Command) Name() string {
	return c.name
}

// Aliases returns alternate names the command answers to.
func (c *Command) Aliases() []string {
	return c.aliases
}

// Help returns the one-line help text.
func (c *Command) Help() string {
	return c.help
}

// Arguments returns the declared argument schema.
func (c *Command) Arguments() []*Argument {
	return c.args
}

// Usage renders a usage line like "tag-new <name>" for help output.
func (c *Command) Usage() string {
	var b strings.Builder
	b.WriteString(c.name)
	for _, arg := range c.args {
		b.WriteString(" ")
		if arg.Required() {
			b.WriteString("<" + arg.Key() + ">")
		} else {
			b.WriteString("[" + arg.Key() + "]")
		}
	}
	return b.String()
}
