// Package tags implements the tag registry: chat commands that create and
// query named tags in the host-owned settings collection. The registry never
// stores tags itself; it reads and appends through an injected Collection
// handle so the host keeps single ownership of the document.
package tags

import "time"

// FolderType controls how a tag presents as a folder in tag drawers.
type FolderType string

const (
	// FolderTypeNone renders the tag as a plain tag, not a folder.
	FolderTypeNone FolderType = "NONE"
	// FolderTypeOpen renders the tag as an expanded folder.
	FolderTypeOpen FolderType = "OPEN"
	// FolderTypeClosed renders the tag as a collapsed folder.
	FolderTypeClosed FolderType = "CLOSED"
)

// IsValid returns true if the folder type is a known value.
func (f FolderType) IsValid() bool {
	switch f {
	case FolderTypeNone, FolderTypeOpen, FolderTypeClosed:
		return true
	default:
		return false
	}
}

// FilterState tracks whether a tag participates in list filtering.
type FilterState string

const (
	// FilterStateUndefined means the tag does not affect filtering.
	FilterStateUndefined FilterState = "UNDEFINED"
	// FilterStateSelected means entries with the tag are shown.
	FilterStateSelected FilterState = "SELECTED"
	// FilterStateExcluded means entries with the tag are hidden.
	FilterStateExcluded FilterState = "EXCLUDED"
)

// IsValid returns true if the filter state is a known value.
func (s FilterState) IsValid() bool {
	switch s {
	case FilterStateUndefined, FilterStateSelected, FilterStateExcluded:
		return true
	default:
		return false
	}
}

// Creation defaults. Every new tag starts as a plain, non-filtering tag;
// presentation attributes change later through the host UI, never here.
const (
	DefaultFolderType  = FolderTypeNone
	DefaultFilterState = FilterStateUndefined
)

// Tag is one record in the shared tag collection.
//
// ID is generated once and never changes. Name keeps the exact string the
// tag was created with; uniqueness is enforced on the folded form, not the
// raw name. SortOrder and CreateDate are assigned at creation and never
// mutated by this package.
type Tag struct {
	ID          string      `yaml:"id" json:"id"`
	Name        string      `yaml:"name" json:"name"`
	FolderType  FolderType  `yaml:"folder_type" json:"folder_type"`
	FilterState FilterState `yaml:"filter_state" json:"filter_state"`
	SortOrder   int         `yaml:"sort_order" json:"sort_order"`
	Color       string      `yaml:"color" json:"color"`
	Color2      string      `yaml:"color2" json:"color2"`
	CreateDate  int64       `yaml:"create_date" json:"create_date"`
}

// CreatedAt returns the creation timestamp. CreateDate is stored as
// milliseconds since the Unix epoch.
func (t *Tag) CreatedAt() time.Time {
	return time.UnixMilli(t.CreateDate)
}
