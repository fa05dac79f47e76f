package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// Registry errors
var (
	ErrNilCommand       = errors.New("command cannot be nil")
	ErrDuplicateCommand = errors.New("command name already registered")
	ErrEmptyInput       = errors.New("input line is empty")
	ErrUnknownCommand   = errors.New("unknown command")
	ErrTooManyArguments = errors.New("too many arguments")
	ErrMissingArgument  = errors.New("missing required argument")
	ErrInvalidArgument  = errors.New("invalid argument value")
)

// Registry resolves command names (and aliases) to descriptors and executes
// input lines against them.
type Registry struct {
	byName   map[string]*Command
	commands []*Command
}

// NewRegistry creates an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*Command),
	}
}

// Register adds a command. Every name and alias must be unique across the
// registry.
func (r *Registry) Register(cmd *Command) error {
	if cmd == nil {
		return ErrNilCommand
	}

	names := append([]string{cmd.Name()}, cmd.Aliases()...)
	for _, name := range names {
		if _, exists := r.byName[name]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateCommand, name)
		}
	}

	for _, name := range names {
		r.byName[name] = cmd
	}
	r.commands = append(r.commands, cmd)
	return nil
}

// Get returns the command registered under name or any of its aliases.
func (r *Registry) Get(name string) (*Command, bool) {
	cmd, ok := r.byName[name]
	return cmd, ok
}

// Commands returns all registered commands sorted by primary name.
// Aliases do not produce duplicates.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, len(r.commands))
	copy(out, r.commands)
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Execute parses an input line, resolves the command, binds its arguments,
// and runs the handler. The returned string is the transcript result.
func (r *Registry) Execute(ctx context.Context, line string) (string, error) {
	name, rest := SplitName(line)
	if name == "" {
		return "", ErrEmptyInput
	}

	cmd, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	args, err := bindArguments(cmd, rest)
	if err != nil {
		return "", err
	}

	return cmd.handler(ctx, args)
}

// bindArguments maps the raw argument remainder onto the command's declared
// schema. Positional arguments consume tokens in order; a trailing rest
// argument receives the untokenized remainder. Optional arguments fall back
// to their defaults.
func bindArguments(cmd *Command, rest string) (Args, error) {
	decl := cmd.Arguments()
	bound := make(Args, len(decl))

	positional := len(decl)
	hasRest := positional > 0 && decl[positional-1].Rest()
	if hasRest {
		positional--
	}

	tokens, remainder := TokenizeN(rest, positional)
	if !hasRest {
		// TokenizeN stopped at the declared arity; anything left over is surplus.
		if remainder != "" {
			return nil, fmt.Errorf("%w: %s takes at most %d", ErrTooManyArguments, cmd.Name(), positional)
		}
	}

	for i, arg := range decl {
		var value string
		switch {
		case arg.Rest():
			value = remainder
		case i < len(tokens):
			value = tokens[i]
		}

		if value == "" {
			if arg.Required() {
				return nil, fmt.Errorf("%w: %s", ErrMissingArgument, arg.Key())
			}
			value = arg.DefaultValue()
		}

		if value != "" {
			if err := validateValue(arg, value); err != nil {
				return nil, err
			}
		}
		bound[arg.Key()] = value
	}

	return bound, nil
}

func validateValue(arg *Argument, value string) error {
	switch arg.Type() {
	case ArgumentTypeNumber:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("%w: %s must be a number, got %q", ErrInvalidArgument, arg.Key(), value)
		}
	case ArgumentTypeEnum:
		for _, opt := range arg.Options() {
			if value == opt {
				return nil
			}
		}
		return fmt.Errorf("%w: %s must be one of %v, got %q", ErrInvalidArgument, arg.Key(), arg.Options(), value)
	}
	return nil
}
