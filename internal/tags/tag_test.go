package tags

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFolderType_IsValid(t *testing.T) {
	tests := []struct {
		name       string
		folderType FolderType
		expected   bool
	}{
		{"NONE is valid", FolderTypeNone, true},
		{"OPEN is valid", FolderTypeOpen, true},
		{"CLOSED is valid", FolderTypeClosed, true},
		{"empty is invalid", FolderType(""), false},
		{"lowercase is invalid", FolderType("none"), false},
		{"unknown is invalid", FolderType("ARCHIVED"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.folderType.IsValid())
		})
	}
}

func TestFilterState_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		state    FilterState
		expected bool
	}{
		{"UNDEFINED is valid", FilterStateUndefined, true},
		{"SELECTED is valid", FilterStateSelected, true},
		{"EXCLUDED is valid", FilterStateExcluded, true},
		{"empty is invalid", FilterState(""), false},
		{"unknown is invalid", FilterState("HIDDEN"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.IsValid())
		})
	}
}

func TestTag_CreatedAt(t *testing.T) {
	created := time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC)
	tag := &Tag{CreateDate: created.UnixMilli()}

	assert.True(t, tag.CreatedAt().Equal(created))
}
