package tags

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// testNow is the fixed creation time used across registry tests.
var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// fixedClock always returns the same instant.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// recordingCollection implements Collection and counts mutations so tests
// can assert that reads never write and that each creation requests exactly
// one save.
type recordingCollection struct {
	tags         []*Tag
	appends      int
	saveRequests int
}

func (c *recordingCollection) Tags() []*Tag { return c.tags }

func (c *recordingCollection) Append(t *Tag) {
	c.tags = append(c.tags, t)
	c.appends++
}

func (c *recordingCollection) RequestSave() { c.saveRequests++ }

// newTestRegistry builds a registry with a deterministic clock and
// sequential ids.
func newTestRegistry(col *recordingCollection, opts ...Option) *Registry {
	seq := 0
	base := []Option{
		WithClock(fixedClock{testNow}),
		WithIDFunc(func() string {
			seq++
			return fmt.Sprintf("tag-%04d", seq)
		}),
	}
	return New(col, append(base, opts...)...)
}

// ============================================================================
// CreateIfAbsent
// ============================================================================

func TestCreateIfAbsent_FirstTag(t *testing.T) {
	col := &recordingCollection{}
	reg := newTestRegistry(col)

	tag, created := reg.CreateIfAbsent("Sci-Fi")
	require.True(t, created)
	require.NotNil(t, tag)

	assert.Equal(t, "tag-0001", tag.ID)
	assert.Equal(t, "Sci-Fi", tag.Name, "exact input casing must be preserved")
	assert.Equal(t, DefaultFolderType, tag.FolderType)
	assert.Equal(t, DefaultFilterState, tag.FilterState)
	assert.Equal(t, 1, tag.SortOrder, "first tag in an empty collection gets sort order 1")
	assert.Empty(t, tag.Color)
	assert.Empty(t, tag.Color2)
	assert.Equal(t, testNow.UnixMilli(), tag.CreateDate)

	require.Len(t, col.tags, 1)
	assert.Same(t, tag, col.tags[0])
	assert.Equal(t, 1, col.saveRequests, "creation requests exactly one save")
}

func TestCreateIfAbsent_Idempotent(t *testing.T) {
	col := &recordingCollection{}
	reg := newTestRegistry(col)

	first, created := reg.CreateIfAbsent("Scenario")
	require.True(t, created)

	second, created := reg.CreateIfAbsent("SCENARIO")
	assert.False(t, created, "fold-equal name must not create a second record")
	assert.Same(t, first, second, "the existing record is returned")

	assert.Len(t, col.tags, 1)
	assert.Equal(t, "Scenario", col.tags[0].Name, "original casing wins")
	assert.Equal(t, 1, col.saveRequests, "no save request for the no-op call")
}

func TestCreateIfAbsent_AppendsToEnd(t *testing.T) {
	col := &recordingCollection{}
	reg := newTestRegistry(col)

	reg.CreateIfAbsent("OC")
	reg.CreateIfAbsent("Scenario")
	reg.CreateIfAbsent("Documentary")

	var names []string
	for _, tag := range col.tags {
		names = append(names, tag.Name)
	}
	assert.Equal(t, []string{"OC", "Scenario", "Documentary"}, names)
}

func TestCreateIfAbsent_SortOrderAfterExisting(t *testing.T) {
	col := &recordingCollection{tags: []*Tag{
		{ID: "a", Name: "Imported", SortOrder: 7},
		{ID: "b", Name: "Older", SortOrder: 3},
	}}
	reg := newTestRegistry(col)

	tag, created := reg.CreateIfAbsent("Fresh")
	require.True(t, created)
	assert.Equal(t, 8, tag.SortOrder, "one past the highest existing order")
}

func TestCreateIfAbsent_NegativeOrdersClampToOne(t *testing.T) {
	col := &recordingCollection{tags: []*Tag{
		{ID: "a", Name: "Broken", SortOrder: -5},
	}}
	reg := newTestRegistry(col)

	tag, created := reg.CreateIfAbsent("Fresh")
	require.True(t, created)
	assert.Equal(t, 1, tag.SortOrder)
}

// Sort orders of created tags are strictly increasing and start at 1,
// regardless of the names thrown at the registry.
func TestCreateIfAbsent_SortOrderMonotonic(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		col := &recordingCollection{}
		reg := newTestRegistry(col)

		numNames := rapid.IntRange(1, 20).Draw(r, "numNames")
		for i := 0; i < numNames; i++ {
			name := rapid.StringMatching(`[A-Za-z]{1,12}`).Draw(r, "name")
			reg.CreateIfAbsent(name)
		}

		for i, tag := range col.tags {
			if tag.SortOrder != i+1 {
				r.Fatalf("tag %q has sort order %d, want %d", tag.Name, tag.SortOrder, i+1)
			}
		}

		// A second pass over the same names must create nothing new.
		before := len(col.tags)
		for _, tag := range append([]*Tag{}, col.tags...) {
			if _, created := reg.CreateIfAbsent(tag.Name); created {
				r.Fatalf("re-creating %q made a second record", tag.Name)
			}
		}
		if len(col.tags) != before {
			r.Fatalf("collection grew from %d to %d on idempotent pass", before, len(col.tags))
		}
	})
}

// ============================================================================
// Lookup
// ============================================================================

func TestLookup(t *testing.T) {
	col := &recordingCollection{}
	reg := newTestRegistry(col)
	reg.CreateIfAbsent("Alpha")

	appendsBefore := col.appends
	savesBefore := col.saveRequests

	tests := []struct {
		name  string
		query string
		found bool
	}{
		{"exact name", "Alpha", true},
		{"case folded", "ALPHA", true},
		{"unknown name", "Beta", false},
		{"accented form misses in strict mode", "Álphá", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, found := reg.Lookup(tt.query)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, "Alpha", tag.Name)
			}
		})
	}

	assert.Equal(t, appendsBefore, col.appends, "Lookup never appends")
	assert.Equal(t, savesBefore, col.saveRequests, "Lookup never requests a save")
}

func TestLookup_FirstMatchWins(t *testing.T) {
	// A hand-edited document can contain fold-equal names; the scan must
	// return the earliest one.
	col := &recordingCollection{tags: []*Tag{
		{ID: "a", Name: "Alpha", SortOrder: 1},
		{ID: "b", Name: "ALPHA", SortOrder: 2},
	}}
	reg := newTestRegistry(col)

	tag, found := reg.Lookup("alpha")
	require.True(t, found)
	assert.Equal(t, "a", tag.ID)
}

func TestLookup_AccentMatching(t *testing.T) {
	col := &recordingCollection{}
	reg := newTestRegistry(col, WithMatching(MatchingAccent))
	reg.CreateIfAbsent("café")

	t.Run("accent-insensitive hit", func(t *testing.T) {
		tag, found := reg.Lookup("Cafe")
		require.True(t, found)
		assert.Equal(t, "café", tag.Name)
	})

	t.Run("create folds onto existing", func(t *testing.T) {
		_, created := reg.CreateIfAbsent("CAFE")
		assert.False(t, created)
		assert.Len(t, col.tags, 1)
	})
}

// ============================================================================
// ListNames
// ============================================================================

func TestListNames_Unfiltered(t *testing.T) {
	col := &recordingCollection{}
	reg := newTestRegistry(col)
	for _, name := range []string{"Scenario", "OC", "Documentary"} {
		reg.CreateIfAbsent(name)
	}

	t.Run("collection order by default", func(t *testing.T) {
		assert.Equal(t, []string{"Scenario", "OC", "Documentary"}, reg.ListNames(""))
	})

	t.Run("sorted when configured", func(t *testing.T) {
		sortedReg := New(col, WithSortedListing(true))
		assert.Equal(t, []string{"Documentary", "OC", "Scenario"}, sortedReg.ListNames(""))
	})

	t.Run("empty collection yields empty list", func(t *testing.T) {
		empty := New(&recordingCollection{})
		assert.Empty(t, empty.ListNames(""))
	})
}

func TestListNames_Filtered(t *testing.T) {
	col := &recordingCollection{}
	reg := newTestRegistry(col)
	for _, name := range []string{"OC", "Scenario", "Documentary"} {
		reg.CreateIfAbsent(name)
	}

	t.Run("case-insensitive substring, sorted", func(t *testing.T) {
		assert.Equal(t, []string{"Documentary", "OC"}, reg.ListNames("oc"))
	})

	t.Run("no matches", func(t *testing.T) {
		assert.Empty(t, reg.ListNames("zzz"))
	})

	t.Run("filter casing irrelevant", func(t *testing.T) {
		assert.Equal(t, []string{"Documentary", "OC"}, reg.ListNames("OC"))
	})

	appends := col.appends
	saves := col.saveRequests
	reg.ListNames("oc")
	assert.Equal(t, appends, col.appends, "ListNames never appends")
	assert.Equal(t, saves, col.saveRequests, "ListNames never requests a save")
}
