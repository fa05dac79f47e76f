package tags

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/parleychat/parley/internal/log"
)

// Collection is the host-owned tag store the registry adapts. The registry
// only ever reads the slice and appends to it; removal and reordering are
// host concerns that never happen through this interface.
//
// RequestSave asks the host to persist the document. It must not block and
// must not report errors to the caller: persistence is debounced and
// fire-and-forget.
type Collection interface {
	Tags() []*Tag
	Append(*Tag)
	RequestSave()
}

// Option configures a Registry.
type Option func(*Registry)

// WithMatching sets the name equivalence rule. Invalid modes are ignored
// and the default (strict) kept.
func WithMatching(m Matching) Option {
	return func(r *Registry) {
		if m.IsValid() {
			r.matching = m
		}
	}
}

// WithSortedListing makes ListNames sort even without a filter. The default
// keeps collection order, which is creation order.
func WithSortedListing(sorted bool) Option {
	return func(r *Registry) {
		r.sortUnfiltered = sorted
	}
}

// WithIDFunc overrides id generation, for deterministic tests.
func WithIDFunc(f func() string) Option {
	return func(r *Registry) {
		if f != nil {
			r.newID = f
		}
	}
}

// WithClock overrides the creation timestamp source, for deterministic tests.
func WithClock(c Clock) Option {
	return func(r *Registry) {
		if c != nil {
			r.clock = c
		}
	}
}

// Registry answers tag lookups and creates missing tags in the injected
// collection. It runs on the host's single update loop and holds no locks;
// the collection must not be mutated concurrently with calls here.
type Registry struct {
	col            Collection
	matching       Matching
	sortUnfiltered bool
	newID          func() string
	clock          Clock
}

// New creates a Registry over the given collection.
func New(col Collection, opts ...Option) *Registry {
	r := &Registry{
		col:      col,
		matching: MatchingStrict,
		newID:    uuid.NewString,
		clock:    RealClock{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Matching returns the configured name equivalence rule.
func (r *Registry) Matching() Matching {
	return r.matching
}

// Lookup returns the first tag whose folded name equals the folded input.
// The scan stops at the first match; collection order decides ties that a
// corrupted document could theoretically contain.
func (r *Registry) Lookup(name string) (*Tag, bool) {
	key := Key(r.matching, name)
	for _, t := range r.col.Tags() {
		if Key(r.matching, t.Name) == key {
			return t, true
		}
	}
	return nil, false
}

// CreateIfAbsent returns the tag named name, creating it first when no
// fold-equivalent tag exists. The second result reports whether a new tag
// was created. A new tag keeps the caller's exact spelling, receives the
// creation defaults and the next sort order, and is appended to the end of
// the collection; a save request is issued for it.
//
// Callers are expected to reject empty names before calling.
func (r *Registry) CreateIfAbsent(name string) (*Tag, bool) {
	if existing, ok := r.Lookup(name); ok {
		return existing, false
	}

	t := &Tag{
		ID:          r.newID(),
		Name:        name,
		FolderType:  DefaultFolderType,
		FilterState: DefaultFilterState,
		SortOrder:   nextSortOrder(r.col.Tags()),
		CreateDate:  r.clock.Now().UnixMilli(),
	}

	r.col.Append(t)
	r.col.RequestSave()
	log.Debug(log.CatTags, "Created tag", "id", t.ID, "name", t.Name, "sortOrder", t.SortOrder)

	return t, true
}

// ListNames returns tag names. With an empty filter it returns every name
// in collection order (or sorted, when configured). With a filter it
// returns the names containing the filter case-insensitively, sorted
// ascending. The collection is never modified.
func (r *Registry) ListNames(filter string) []string {
	all := r.col.Tags()
	names := make([]string, 0, len(all))

	if filter == "" {
		for _, t := range all {
			names = append(names, t.Name)
		}
		if r.sortUnfiltered {
			sort.Strings(names)
		}
		return names
	}

	needle := strings.ToLower(filter)
	for _, t := range all {
		if strings.Contains(strings.ToLower(t.Name), needle) {
			names = append(names, t.Name)
		}
	}
	sort.Strings(names)
	return names
}

// nextSortOrder computes the sort order for a new tag: one past the highest
// existing order, never below 1.
func nextSortOrder(all []*Tag) int {
	max := 0
	for _, t := range all {
		if t.SortOrder > max {
			max = t.SortOrder
		}
	}
	return max + 1
}
