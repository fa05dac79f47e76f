package tags

import (
	"context"
	"strings"

	"github.com/parleychat/parley/internal/command"
	"github.com/parleychat/parley/internal/log"
)

// Command names. The -all spellings are the names older chat hosts shipped;
// they register as aliases when legacy aliases are enabled so both
// spellings resolve to the same descriptor.
const (
	CmdTagNew    = "tag-new"
	CmdTagExists = "tag-exists"
	CmdTagList   = "tag-list"

	AliasTagExistsAll = "tag-exists-all"
	AliasTagListAll   = "tag-list-all"
)

// Registrar registers command descriptors. Satisfied by command.Registry.
type Registrar interface {
	Register(*command.Command) error
}

// CommandSetOption configures a CommandSet.
type CommandSetOption func(*CommandSet)

// WithLegacyAliases also registers the -all command spellings.
func WithLegacyAliases(enabled bool) CommandSetOption {
	return func(c *CommandSet) {
		c.legacyAliases = enabled
	}
}

// CommandSet builds the tag command descriptors over a Registry.
type CommandSet struct {
	registry      *Registry
	legacyAliases bool
}

// NewCommandSet creates a CommandSet.
func NewCommandSet(registry *Registry, opts ...CommandSetOption) *CommandSet {
	c := &CommandSet{registry: registry}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RegisterAll builds and registers every tag command. A command that fails
// to build or register is logged and skipped; the host keeps running with
// whatever commands did register.
func (c *CommandSet) RegisterAll(reg Registrar) {
	for _, build := range []func() (*command.Command, error){
		c.tagNewCommand,
		c.tagExistsCommand,
		c.tagListCommand,
	} {
		cmd, err := build()
		if err != nil {
			log.ErrorErr(log.CatCommands, "Failed to build tag command", err)
			continue
		}
		if err := reg.Register(cmd); err != nil {
			log.ErrorErr(log.CatCommands, "Failed to register tag command", err, "command", cmd.Name())
			continue
		}
		log.Debug(log.CatCommands, "Registered tag command", "command", cmd.Name(), "aliases", strings.Join(cmd.Aliases(), ","))
	}
}

func (c *CommandSet) tagNewCommand() (*command.Command, error) {
	name, err := command.NewRestArgument("name", "Name", "Name of the tag to create; spaces allowed", false, "")
	if err != nil {
		return nil, err
	}
	return command.NewCommand(
		CmdTagNew,
		`Create a tag. Returns "true" when created, "false" when the name is empty or the tag already exists.`,
		[]*command.Argument{name},
		c.handleNew,
	)
}

func (c *CommandSet) tagExistsCommand() (*command.Command, error) {
	name, err := command.NewRestArgument("name", "Name", "Name of the tag to look up", false, "")
	if err != nil {
		return nil, err
	}
	var aliases []string
	if c.legacyAliases {
		aliases = append(aliases, AliasTagExistsAll)
	}
	return command.NewCommand(
		CmdTagExists,
		`Check whether a tag exists. Returns "true" or "false".`,
		[]*command.Argument{name},
		c.handleExists,
		aliases...,
	)
}

func (c *CommandSet) tagListCommand() (*command.Command, error) {
	search, err := command.NewRestArgument("search", "Search", "Optional substring filter, case-insensitive", false, "")
	if err != nil {
		return nil, err
	}
	var aliases []string
	if c.legacyAliases {
		aliases = append(aliases, AliasTagListAll)
	}
	return command.NewCommand(
		CmdTagList,
		"List tag names, comma separated. A filter narrows and sorts the result.",
		[]*command.Argument{search},
		c.handleList,
		aliases...,
	)
}

// handleNew creates the tag when absent. An empty name answers "false"
// without touching the collection, matching the lookup commands.
func (c *CommandSet) handleNew(_ context.Context, args command.Args) (string, error) {
	name := args.Get("name")
	if name == "" {
		return "false", nil
	}
	_, created := c.registry.CreateIfAbsent(name)
	return boolResult(created), nil
}

func (c *CommandSet) handleExists(_ context.Context, args command.Args) (string, error) {
	name := args.Get("name")
	if name == "" {
		return "false", nil
	}
	_, ok := c.registry.Lookup(name)
	return boolResult(ok), nil
}

func (c *CommandSet) handleList(_ context.Context, args command.Args) (string, error) {
	names := c.registry.ListNames(args.Get("search"))
	return strings.Join(names, ", "), nil
}

func boolResult(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
