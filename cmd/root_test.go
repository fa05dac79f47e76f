package cmd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/parleychat/parley/internal/config"
	"github.com/parleychat/parley/internal/paths"
	"github.com/parleychat/parley/internal/settings"
	"github.com/parleychat/parley/internal/tags"
)

// newTestStore returns a loaded settings store backed by a temp file.
func newTestStore(t *testing.T) *settings.Store {
	t.Helper()
	store := settings.New(filepath.Join(t.TempDir(), "parley.yaml"))
	require.NoError(t, store.Load())
	t.Cleanup(store.Close)
	return store
}

func TestBuildCommandRegistry_RegistersHostAndTagCommands(t *testing.T) {
	store := newTestStore(t)

	registry, err := buildCommandRegistry(config.Defaults(), store, nil)
	require.NoError(t, err)

	for _, name := range []string{"help", "clear", "history", "quit",
		tags.CmdTagNew, tags.CmdTagExists, tags.CmdTagList} {
		_, ok := registry.Get(name)
		require.True(t, ok, "expected command %q to be registered", name)
	}

	// Legacy aliases are off by default
	_, ok := registry.Get(tags.AliasTagExistsAll)
	require.False(t, ok, "expected no legacy aliases with default config")
}

func TestBuildCommandRegistry_LegacyAliases(t *testing.T) {
	store := newTestStore(t)

	cfg := config.Defaults()
	cfg.Tags.LegacyAliases = true

	registry, err := buildCommandRegistry(cfg, store, nil)
	require.NoError(t, err)

	// Both spellings resolve to the same descriptor
	canonical, ok := registry.Get(tags.CmdTagExists)
	require.True(t, ok)
	aliased, ok := registry.Get(tags.AliasTagExistsAll)
	require.True(t, ok)
	require.Same(t, canonical, aliased)

	_, ok = registry.Get(tags.AliasTagListAll)
	require.True(t, ok)
}

// TestBuildCommandRegistry_EndToEnd runs the wired registry through the
// create/check/list round trip starting from an empty collection.
func TestBuildCommandRegistry_EndToEnd(t *testing.T) {
	store := newTestStore(t)

	registry, err := buildCommandRegistry(config.Defaults(), store, nil)
	require.NoError(t, err)

	ctx := context.Background()

	result, err := registry.Execute(ctx, "tag-new Alpha")
	require.NoError(t, err)
	require.Equal(t, "true", result)

	result, err = registry.Execute(ctx, "tag-new alpha")
	require.NoError(t, err)
	require.Equal(t, "false", result)

	result, err = registry.Execute(ctx, "tag-exists ALPHA")
	require.NoError(t, err)
	require.Equal(t, "true", result)

	result, err = registry.Execute(ctx, "tag-list")
	require.NoError(t, err)
	require.Equal(t, "Alpha", result)
}

func TestTracingConfig_FillsDefaultFilePath(t *testing.T) {
	dataDir := t.TempDir()

	cfg := config.Defaults()
	cfg.Tracing.Enabled = true
	cfg.Tracing.Exporter = "file"

	tcfg := tracingConfig(cfg, dataDir)
	require.Equal(t, paths.TracesPath(dataDir), tcfg.FilePath)

	cfg.Tracing.FilePath = "/tmp/custom.jsonl"
	tcfg = tracingConfig(cfg, dataDir)
	require.Equal(t, "/tmp/custom.jsonl", tcfg.FilePath)
}
