package sqlite

import (
	"time"

	"github.com/parleychat/parley/internal/history"
)

// HistoryModel represents the database row for the history table.
// Fields map directly to SQL columns with Unix timestamps for time values.
type HistoryModel struct {
	ID        int64
	GUID      string
	Input     string
	Command   string
	Result    string
	CreatedAt int64 // Unix timestamp
}

// toHistoryModel converts a domain Entry to a database HistoryModel.
func toHistoryModel(e *history.Entry) *HistoryModel {
	return &HistoryModel{
		ID:        e.ID(),
		GUID:      e.GUID(),
		Input:     e.Input(),
		Command:   e.Command(),
		Result:    e.Result(),
		CreatedAt: e.CreatedAt().Unix(),
	}
}

// toDomain converts a database HistoryModel to a domain Entry.
func (m *HistoryModel) toDomain() *history.Entry {
	return history.ReconstituteEntry(
		m.ID,
		m.GUID,
		m.Input,
		m.Command,
		m.Result,
		time.Unix(m.CreatedAt, 0),
	)
}
