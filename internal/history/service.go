package history

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/parleychat/parley/internal/log"
)

// maxResultLen bounds stored results. A tag listing over a large collection
// can run to thousands of characters; the transcript keeps the full text,
// history keeps a prefix.
const maxResultLen = 1024

// Service records executed commands and maintains the retention limit.
type Service struct {
	repo    Repository
	limit   int
	newID   func() string
	onEvent func(*Entry)
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithIDFunc overrides the GUID generator used for new entries.
func WithIDFunc(fn func() string) ServiceOption {
	return func(s *Service) {
		s.newID = fn
	}
}

// WithOnEvent registers a callback invoked after each recorded entry.
func WithOnEvent(fn func(*Entry)) ServiceOption {
	return func(s *Service) {
		s.onEvent = fn
	}
}

// NewService creates a history service. limit caps stored entries; older
// rows are pruned after each record. A limit of 0 disables pruning.
func NewService(repo Repository, limit int, opts ...ServiceOption) *Service {
	s := &Service{
		repo:  repo,
		limit: limit,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record stores one executed command and prunes beyond the retention limit.
func (s *Service) Record(input, command, result string) (*Entry, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}
	if command == "" {
		return nil, ErrEmptyCommand
	}

	entry := NewEntry(s.newID(), input, command, truncateResult(result))
	if err := s.repo.Save(entry); err != nil {
		return nil, fmt.Errorf("saving history entry: %w", err)
	}

	// A failed prune leaves extra rows behind; the record itself succeeded.
	if s.limit > 0 {
		if err := s.repo.Prune(s.limit); err != nil {
			log.ErrorErr(log.CatHistory, "Failed to prune history", err, "keep", s.limit)
		}
	}

	log.Debug(log.CatHistory, "Recorded command", "command", command, "guid", entry.GUID())

	if s.onEvent != nil {
		s.onEvent(entry)
	}
	return entry, nil
}

// Recent returns up to limit entries, newest first. Limits of 0 or less,
// or beyond the retention limit, fall back to the retention limit.
func (s *Service) Recent(limit int) ([]*Entry, error) {
	if s.limit > 0 && (limit <= 0 || limit > s.limit) {
		limit = s.limit
	}
	return s.repo.Recent(limit)
}

// CountByCommand returns how many recorded entries ran the named command.
func (s *Service) CountByCommand(command string) (int, error) {
	return s.repo.CountByCommand(command)
}

// truncateResult cuts the result at a rune boundary when it exceeds the
// storage bound.
func truncateResult(result string) string {
	if len(result) <= maxResultLen {
		return result
	}
	cut := maxResultLen
	for cut > 0 && !utf8.RuneStart(result[cut]) {
		cut--
	}
	return result[:cut] + "…"
}
