package testutil

import (
	"fmt"
	"time"

	"github.com/parleychat/parley/internal/tags"
)

// defaultTag returns a tag with sensible defaults for its position.
func defaultTag(name string, position int) *tags.Tag {
	return &tags.Tag{
		ID:          fmt.Sprintf("fixture-%04d", position),
		Name:        name,
		FolderType:  tags.DefaultFolderType,
		FilterState: tags.DefaultFilterState,
		SortOrder:   position,
		CreateDate:  time.Now().UnixMilli(),
	}
}

// TagOption configures a tag during builder setup.
type TagOption func(*tags.Tag)

// ID sets the tag ID.
func ID(id string) TagOption {
	return func(t *tags.Tag) { t.ID = id }
}

// Folder sets the folder type.
func Folder(ft tags.FolderType) TagOption {
	return func(t *tags.Tag) { t.FolderType = ft }
}

// Filter sets the filter state.
func Filter(fs tags.FilterState) TagOption {
	return func(t *tags.Tag) { t.FilterState = fs }
}

// SortOrder sets the sort order explicitly.
func SortOrder(n int) TagOption {
	return func(t *tags.Tag) { t.SortOrder = n }
}

// Colors sets both color slots.
func Colors(color, color2 string) TagOption {
	return func(t *tags.Tag) {
		t.Color = color
		t.Color2 = color2
	}
}

// CreatedAt sets the creation timestamp.
func CreatedAt(at time.Time) TagOption {
	return func(t *tags.Tag) { t.CreateDate = at.UnixMilli() }
}
