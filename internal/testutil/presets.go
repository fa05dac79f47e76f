package testutil

import (
	"time"

	"github.com/parleychat/parley/internal/tags"
)

// WithStandardTags adds the standard three-tag dataset used across
// command and console tests.
func (b *Builder) WithStandardTags() *Builder {
	base := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	return b.
		WithTag("OC",
			ID("11111111-1111-1111-1111-111111111111"),
			Folder(tags.FolderTypeOpen), CreatedAt(base)).
		WithTag("Scenario",
			ID("22222222-2222-2222-2222-222222222222"),
			CreatedAt(base.Add(time.Minute))).
		WithTag("Documentary",
			ID("33333333-3333-3333-3333-333333333333"),
			Filter(tags.FilterStateSelected), Colors("#7aa2f7", "#bb9af7"),
			CreatedAt(base.Add(2*time.Minute)))
}
