package command

import "errors"

// ArgumentType defines the type of value a command argument accepts.
type ArgumentType string

const (
	// ArgumentTypeText is a free-form string value.
	ArgumentTypeText ArgumentType = "text"
	// ArgumentTypeNumber is an integer value, validated at bind time.
	ArgumentTypeNumber ArgumentType = "number"
	// ArgumentTypeEnum is a value restricted to a fixed set of options.
	ArgumentTypeEnum ArgumentType = "enum"
)

// IsValid returns true if the argument type is a known type.
func (t ArgumentType) IsValid() bool {
	switch t {
	case ArgumentTypeText, ArgumentTypeNumber, ArgumentTypeEnum:
		return true
	default:
		return false
	}
}

// RequiresOptions returns true if the argument type requires options to be set.
func (t ArgumentType) RequiresOptions() bool {
	return t == ArgumentTypeEnum
}

// Argument errors
var (
	ErrArgumentEmptyKey     = errors.New("argument key cannot be empty")
	ErrArgumentEmptyLabel   = errors.New("argument label cannot be empty")
	ErrArgumentEmptyType    = errors.New("argument type cannot be empty")
	ErrArgumentInvalidType  = errors.New("argument type must be text, number, or enum")
	ErrArgumentEmptyOptions = errors.New("argument options cannot be empty for enum types")
	ErrArgumentRestType     = errors.New("rest arguments must be text")
)

// Argument describes one parameter of a chat command. Arguments bind
// positionally from the tokenized input line; a rest argument instead
// captures the untokenized remainder, so values may contain spaces.
type Argument struct {
	key          string       // Unique identifier, used to read the bound value
	label        string       // Human-readable name shown in help output
	description  string       // Help text for the command reference
	argType      ArgumentType // Value type: text, number, enum
	required     bool         // Whether the argument must be present
	defaultValue string       // Default applied when an optional argument is absent
	options      []string     // Allowed values for enum type
	rest         bool         // Capture the raw remainder of the line
}

// NewArgument creates a positional Argument with validation.
// For enum types, use NewEnumArgument instead.
func NewArgument(key, label, description string, argType ArgumentType, required bool, defaultValue string) (*Argument, error) {
	return newArgument(key, label, description, argType, required, defaultValue, nil, false)
}

// NewEnumArgument creates an Argument restricted to the given options.
func NewEnumArgument(key, label, description string, required bool, defaultValue string, options []string) (*Argument, error) {
	return newArgument(key, label, description, ArgumentTypeEnum, required, defaultValue, options, false)
}

// NewRestArgument creates an Argument that captures the untokenized
// remainder of the input line. Only the final argument of a command may be
// a rest argument.
func NewRestArgument(key, label, description string, required bool, defaultValue string) (*Argument, error) {
	return newArgument(key, label, description, ArgumentTypeText, required, defaultValue, nil, true)
}

func newArgument(key, label, description string, argType ArgumentType, required bool, defaultValue string, options []string, rest bool) (*Argument, error) {
	if key == "" {
		return nil, ErrArgumentEmptyKey
	}
	if label == "" {
		return nil, ErrArgumentEmptyLabel
	}
	if argType == "" {
		return nil, ErrArgumentEmptyType
	}
	if !argType.IsValid() {
		return nil, ErrArgumentInvalidType
	}
	if argType.RequiresOptions() && len(options) == 0 {
		return nil, ErrArgumentEmptyOptions
	}
	if rest && argType != ArgumentTypeText {
		return nil, ErrArgumentRestType
	}

	return &Argument{
		key:          key,
		label:        label,
		description:  description,
		argType:      argType,
		required:     required,
		defaultValue: defaultValue,
		options:      options,
		rest:         rest,
	}, nil
}

// Key returns the argument's unique identifier.
func (a *Argument) Key() string {
	return a.key
}

// Label returns the human-readable name.
func (a *Argument) Label() string {
	return a.label
}

// Description returns the help text.
func (a *Argument) Description() string {
	return a.description
}

// Type returns the value type.
func (a *Argument) Type() ArgumentType {
	return a.argType
}

// Required returns whether the argument must be present.
func (a *Argument) Required() bool {
	return a.required
}

// DefaultValue returns the default value.
func (a *Argument) DefaultValue() string {
	return a.defaultValue
}

// Options returns the allowed values for enum types.
func (a *Argument) Options() []string {
	return a.options
}

// Rest returns whether the argument captures the raw remainder of the line.
func (a *Argument) Rest() bool {
	return a.rest
}
