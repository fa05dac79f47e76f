package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parleychat/parley/internal/pubsub"
	"github.com/parleychat/parley/internal/tags"
)

var _ tags.Collection = (*Store)(nil)

// awaitEvent blocks until the channel yields an event of the wanted type or
// the timeout elapses.
func awaitEvent(t *testing.T, ch <-chan pubsub.Event[StoreEvent], want pubsub.EventType) pubsub.Event[StoreEvent] {
	t.Helper()
	select {
	case ev := <-ch:
		require.Equal(t, want, ev.Type, "unexpected event type")
		return ev
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for %s event", want)
		return pubsub.Event[StoreEvent]{}
	}
}

// ============================================================================
// Load
// ============================================================================

func TestLoad_MissingFileStartsEmpty(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "settings.yaml"))
	defer store.Close()

	require.NoError(t, store.Load())
	assert.Empty(t, store.Tags())
}

func TestLoad_ReadsDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := `tags:
  - id: 0195f0d0-0000-7000-8000-000000000001
    name: Science Fiction
    folder_type: NONE
    filter_state: UNDEFINED
    sort_order: 1
    color: ""
    color2: ""
    create_date: 1750000000000
  - id: 0195f0d0-0000-7000-8000-000000000002
    name: OC
    folder_type: OPEN
    filter_state: SELECTED
    sort_order: 2
    color: "#FF0000"
    color2: "#00FF00"
    create_date: 1750000001000
theme: dark
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	store := New(path)
	defer store.Close()
	require.NoError(t, store.Load())

	got := store.Tags()
	require.Len(t, got, 2)

	assert.Equal(t, "0195f0d0-0000-7000-8000-000000000001", got[0].ID)
	assert.Equal(t, "Science Fiction", got[0].Name)
	assert.Equal(t, tags.FolderTypeNone, got[0].FolderType)
	assert.Equal(t, tags.FilterStateUndefined, got[0].FilterState)
	assert.Equal(t, 1, got[0].SortOrder)
	assert.Equal(t, int64(1750000000000), got[0].CreateDate)

	assert.Equal(t, "OC", got[1].Name)
	assert.Equal(t, tags.FolderTypeOpen, got[1].FolderType)
	assert.Equal(t, tags.FilterStateSelected, got[1].FilterState)
	assert.Equal(t, "#FF0000", got[1].Color)
	assert.Equal(t, "#00FF00", got[1].Color2)

	assert.Equal(t, "dark", store.Theme())
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tags: [unclosed"), 0644))

	store := New(path)
	defer store.Close()

	err := store.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing settings")
}

// ============================================================================
// Save
// ============================================================================

func TestFlush_WritesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	store := New(path)
	defer store.Close()
	require.NoError(t, store.Load())

	store.Append(&tags.Tag{
		ID:          "tag-1",
		Name:        "Alpha",
		FolderType:  tags.DefaultFolderType,
		FilterState: tags.DefaultFilterState,
		SortOrder:   1,
		CreateDate:  1750000000000,
	})
	require.NoError(t, store.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "name: Alpha")
	assert.Contains(t, content, "folder_type: NONE")
	assert.Contains(t, content, "filter_state: UNDEFINED")
	assert.Contains(t, content, "sort_order: 1")
	assert.Contains(t, content, "create_date: 1750000000000")

	// No leftover temp files after the atomic rename.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "settings.yaml", entries[0].Name())
}

func TestFlush_CreatesMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "settings.yaml")
	store := New(path)
	defer store.Close()

	store.Append(&tags.Tag{ID: "tag-1", Name: "Alpha", SortOrder: 1})
	require.NoError(t, store.Flush())

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestSaveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	store := New(path)
	store.Append(&tags.Tag{
		ID:          "tag-1",
		Name:        "Café",
		FolderType:  tags.FolderTypeClosed,
		FilterState: tags.FilterStateExcluded,
		SortOrder:   7,
		Color:       "#123456",
		CreateDate:  1750000000000,
	})
	require.NoError(t, store.Flush())
	store.Close()

	reopened := New(path)
	defer reopened.Close()
	require.NoError(t, reopened.Load())

	got := reopened.Tags()
	require.Len(t, got, 1)
	assert.Equal(t, "Café", got[0].Name, "name casing survives the round trip")
	assert.Equal(t, tags.FolderTypeClosed, got[0].FolderType)
	assert.Equal(t, tags.FilterStateExcluded, got[0].FilterState)
	assert.Equal(t, 7, got[0].SortOrder)
	assert.Equal(t, "#123456", got[0].Color)
	assert.Equal(t, int64(1750000000000), got[0].CreateDate)
}

func TestSave_PublishesSavedEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	store := New(path)
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := store.Broker().Subscribe(ctx)

	store.Append(&tags.Tag{ID: "tag-1", Name: "Alpha", SortOrder: 1})
	require.NoError(t, store.Flush())

	ev := awaitEvent(t, events, pubsub.SavedEvent)
	assert.Equal(t, path, ev.Payload.Path)
	assert.Equal(t, 1, ev.Payload.TagCount)
	assert.Empty(t, ev.Payload.Err)
}

func TestSave_FailurePublishesSaveFailed(t *testing.T) {
	// A regular file where the settings directory should be makes
	// MkdirAll fail, so the save cannot proceed.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	store := New(filepath.Join(blocker, "settings.yaml"))
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := store.Broker().Subscribe(ctx)

	store.Append(&tags.Tag{ID: "tag-1", Name: "Alpha", SortOrder: 1})
	err := store.Flush()
	require.Error(t, err)

	ev := awaitEvent(t, events, pubsub.SaveFailedEvent)
	assert.NotEmpty(t, ev.Payload.Err)
}

// ============================================================================
// Debounced saves
// ============================================================================

func TestRequestSave_DebouncedSingleWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	store := New(path, WithDebounce(30*time.Millisecond))
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := store.Broker().Subscribe(ctx)

	store.Append(&tags.Tag{ID: "tag-1", Name: "Alpha", SortOrder: 1})
	store.RequestSave()
	store.RequestSave()
	store.RequestSave()

	awaitEvent(t, events, pubsub.SavedEvent)

	// The burst coalesced: no second save follows.
	select {
	case ev := <-events:
		t.Fatalf("unexpected second event: %s", ev.Type)
	case <-time.After(100 * time.Millisecond):
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Alpha")
}

func TestRequestSave_DoesNotBlock(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "settings.yaml"), WithDebounce(10*time.Second))
	defer store.Close()

	start := time.Now()
	store.RequestSave()
	assert.Less(t, time.Since(start), 100*time.Millisecond, "request should return immediately")

	_, err := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err), "no write should happen before the debounce elapses")
}

func TestClose_RunsPendingSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	store := New(path, WithDebounce(10*time.Second))

	store.Append(&tags.Tag{ID: "tag-1", Name: "Alpha", SortOrder: 1})
	store.RequestSave()
	store.Close()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name: Alpha", "pending save should run on close")
}

// ============================================================================
// Reload
// ============================================================================

func TestReload_ReplacesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	store := New(path)
	defer store.Close()

	store.Append(&tags.Tag{ID: "tag-1", Name: "Alpha", SortOrder: 1})
	require.NoError(t, store.Flush())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := store.Broker().Subscribe(ctx)

	// External edit: another process rewrites the file.
	external := `tags:
  - id: tag-9
    name: Replaced
    folder_type: NONE
    filter_state: UNDEFINED
    sort_order: 1
    create_date: 1750000000000
`
	require.NoError(t, os.WriteFile(path, []byte(external), 0644))

	require.NoError(t, store.Reload())

	ev := awaitEvent(t, events, pubsub.ReloadedEvent)
	assert.Equal(t, 1, ev.Payload.TagCount)

	got := store.Tags()
	require.Len(t, got, 1)
	assert.Equal(t, "Replaced", got[0].Name)
}

func TestReload_WithRegistryHandle(t *testing.T) {
	// The registry reads through the store, so a reload is visible on the
	// next command without rebuilding anything.
	path := filepath.Join(t.TempDir(), "settings.yaml")
	store := New(path)
	defer store.Close()
	require.NoError(t, store.Load())

	reg := tags.New(store)
	_, found := reg.Lookup("Replaced")
	assert.False(t, found)

	external := `tags:
  - id: tag-9
    name: Replaced
    sort_order: 1
`
	require.NoError(t, os.WriteFile(path, []byte(external), 0644))
	require.NoError(t, store.Reload())

	_, found = reg.Lookup("Replaced")
	assert.True(t, found, "registry should see the reloaded collection")
}
