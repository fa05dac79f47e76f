package testutil

import (
	"sync"

	"github.com/parleychat/parley/internal/tags"
)

// MemoryCollection is an in-memory tag collection that records appends and
// save requests, for tests that need a host-side double.
type MemoryCollection struct {
	mu           sync.Mutex
	tags         []*tags.Tag
	appended     []*tags.Tag
	saveRequests int
}

// Ensure MemoryCollection satisfies the collection contract.
var _ tags.Collection = (*MemoryCollection)(nil)

// NewMemoryCollection creates a collection seeded with the given tags.
func NewMemoryCollection(seed ...*tags.Tag) *MemoryCollection {
	return &MemoryCollection{tags: append([]*tags.Tag(nil), seed...)}
}

// Tags returns the current tag slice.
func (c *MemoryCollection) Tags() []*tags.Tag {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tags
}

// Append adds a tag to the collection.
func (c *MemoryCollection) Append(tag *tags.Tag) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tags = append(c.tags, tag)
	c.appended = append(c.appended, tag)
}

// RequestSave records a save request without persisting anything.
func (c *MemoryCollection) RequestSave() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saveRequests++
}

// Appended returns the tags added through Append, in order.
func (c *MemoryCollection) Appended() []*tags.Tag {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*tags.Tag(nil), c.appended...)
}

// SaveRequests returns how many times RequestSave was called.
func (c *MemoryCollection) SaveRequests() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveRequests
}
