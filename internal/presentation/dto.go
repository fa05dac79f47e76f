package presentation

import (
	"time"

	"github.com/parleychat/parley/internal/tags"
)

// TagDTO represents a tag for presentation
type TagDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	FolderType  string `json:"folder_type"`
	FilterState string `json:"filter_state"`
	SortOrder   int    `json:"sort_order"`
	Color       string `json:"color,omitempty"`
	Color2      string `json:"color2,omitempty"`
	CreateDate  int64  `json:"create_date"`
	CreatedAt   string `json:"created_at"` // RFC3339, computed from create_date
}

// FromDomainTag converts a domain tag to a DTO with a readable timestamp.
func FromDomainTag(tag *tags.Tag) TagDTO {
	return TagDTO{
		ID:          tag.ID,
		Name:        tag.Name,
		FolderType:  string(tag.FolderType),
		FilterState: string(tag.FilterState),
		SortOrder:   tag.SortOrder,
		Color:       tag.Color,
		Color2:      tag.Color2,
		CreateDate:  tag.CreateDate,
		CreatedAt:   tag.CreatedAt().UTC().Format(time.RFC3339),
	}
}

// FromDomainTags converts a slice of domain tags to DTOs
func FromDomainTags(domainTags []*tags.Tag) []TagDTO {
	dtos := make([]TagDTO, len(domainTags))
	for i, tag := range domainTags {
		dtos[i] = FromDomainTag(tag)
	}
	return dtos
}
