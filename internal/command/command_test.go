package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(result string) Handler {
	return func(_ context.Context, _ Args) (string, error) {
		return result, nil
	}
}

func mustArg(t *testing.T, key string, required bool) *Argument {
	t.Helper()
	arg, err := NewArgument(key, key, "test argument", ArgumentTypeText, required, "")
	require.NoError(t, err)
	return arg
}

func mustRestArg(t *testing.T, key string) *Argument {
	t.Helper()
	arg, err := NewRestArgument(key, key, "test rest argument", false, "")
	require.NoError(t, err)
	return arg
}

func TestNewCommand_Success(t *testing.T) {
	cmd, err := NewCommand("tag-list", "List tag names", []*Argument{mustRestArg(t, "search")}, okHandler(""), "tag-list-all")
	require.NoError(t, err)

	assert.Equal(t, "tag-list", cmd.Name())
	assert.Equal(t, []string{"tag-list-all"}, cmd.Aliases())
	assert.Equal(t, "List tag names", cmd.Help())
	require.Len(t, cmd.Arguments(), 1)
	assert.Equal(t, "search", cmd.Arguments()[0].Key())
}

func TestNewCommand_Validation(t *testing.T) {
	tests := []struct {
		name    string
		build   func(t *testing.T) (*Command, error)
		wantErr error
	}{
		{
			name: "empty name",
			build: func(t *testing.T) (*Command, error) {
				return NewCommand("", "help", nil, okHandler(""))
			},
			wantErr: ErrCommandEmptyName,
		},
		{
			name: "whitespace in name",
			build: func(t *testing.T) (*Command, error) {
				return NewCommand("tag new", "help", nil, okHandler(""))
			},
			wantErr: ErrCommandNameWhitespace,
		},
		{
			name: "whitespace in alias",
			build: func(t *testing.T) (*Command, error) {
				return NewCommand("tag-new", "help", nil, okHandler(""), "tag new")
			},
			wantErr: ErrCommandNameWhitespace,
		},
		{
			name: "nil handler",
			build: func(t *testing.T) (*Command, error) {
				return NewCommand("tag-new", "help", nil, nil)
			},
			wantErr: ErrCommandNilHandler,
		},
		{
			name: "rest argument not last",
			build: func(t *testing.T) (*Command, error) {
				return NewCommand("x", "help", []*Argument{mustRestArg(t, "a"), mustArg(t, "b", false)}, okHandler(""))
			},
			wantErr: ErrCommandRestNotLast,
		},
		{
			name: "required after optional",
			build: func(t *testing.T) (*Command, error) {
				return NewCommand("x", "help", []*Argument{mustArg(t, "a", false), mustArg(t, "b", true)}, okHandler(""))
			},
			wantErr: ErrCommandOptionalOrder,
		},
		{
			name: "duplicate argument key",
			build: func(t *testing.T) (*Command, error) {
				return NewCommand("x", "help", []*Argument{mustArg(t, "a", true), mustArg(t, "a", true)}, okHandler(""))
			},
			wantErr: ErrCommandDuplicateArg,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build(t)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCommand_Usage(t *testing.T) {
	required := mustArg(t, "count", true)
	optional := mustRestArg(t, "search")

	tests := []struct {
		name string
		args []*Argument
		want string
	}{
		{"no arguments", nil, "clear"},
		{"required argument", []*Argument{required}, "clear <count>"},
		{"optional argument", []*Argument{optional}, "clear [search]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := NewCommand("clear", "help", tt.args, okHandler(""))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd.Usage())
		})
	}
}

func TestArgs_Get(t *testing.T) {
	args := Args{"name": "Alpha", "count": "5"}

	assert.Equal(t, "Alpha", args.Get("name"))
	assert.Empty(t, args.Get("missing"))
	assert.Equal(t, 5, args.GetInt("count", 10))
	assert.Equal(t, 10, args.GetInt("missing", 10))
	assert.Equal(t, 10, args.GetInt("name", 10))
}
