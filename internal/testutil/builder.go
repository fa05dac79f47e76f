// Package testutil provides fixture builders for tag collections.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/parleychat/parley/internal/tags"
)

// Builder accumulates tag fixtures for tests.
type Builder struct {
	t    *testing.T
	tags []*tags.Tag
}

// NewBuilder creates a fixture builder.
func NewBuilder(t *testing.T) *Builder {
	t.Helper()
	return &Builder{t: t}
}

// WithTag adds a tag with optional configuration. The sort order defaults
// to the 1-based position in the builder, matching collection semantics.
func (b *Builder) WithTag(name string, opts ...TagOption) *Builder {
	tag := defaultTag(name, len(b.tags)+1)
	for _, opt := range opts {
		opt(tag)
	}
	b.tags = append(b.tags, tag)
	return b
}

// Tags returns the accumulated tags as a fresh slice.
func (b *Builder) Tags() []*tags.Tag {
	return append([]*tags.Tag(nil), b.tags...)
}

// Collection returns the accumulated tags wrapped in a MemoryCollection.
func (b *Builder) Collection() *MemoryCollection {
	return NewMemoryCollection(b.Tags()...)
}

// WriteSettings writes the accumulated tags as a settings document at
// path, creating parent directories as needed.
func (b *Builder) WriteSettings(path string) {
	b.t.Helper()

	doc := struct {
		Tags []*tags.Tag `yaml:"tags"`
	}{Tags: b.Tags()}

	data, err := yaml.Marshal(doc)
	require.NoError(b.t, err, "failed to marshal settings fixture")
	require.NoError(b.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(b.t, os.WriteFile(path, data, 0644), "failed to write settings fixture")
}
