package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/parleychat/parley/internal/history"
)

// historyColumns is the list of columns to select for history queries.
const historyColumns = `id, guid, input, command, result, created_at`

// historyRepository implements history.Repository using SQLite.
type historyRepository struct {
	db *sql.DB
}

// newHistoryRepository creates a new historyRepository instance.
func newHistoryRepository(db *sql.DB) *historyRepository {
	return &historyRepository{db: db}
}

// Ensure historyRepository implements history.Repository.
var _ history.Repository = (*historyRepository)(nil)

// scanEntry scans a row into a HistoryModel.
func scanEntry(scanner interface{ Scan(...any) error }) (*HistoryModel, error) {
	var model HistoryModel
	err := scanner.Scan(
		&model.ID, &model.GUID, &model.Input,
		&model.Command, &model.Result, &model.CreatedAt,
	)
	return &model, err
}

// Save persists a new entry and sets its ID. Entries are append-only.
func (r *historyRepository) Save(entry *history.Entry) error {
	if entry.ID() != 0 {
		return fmt.Errorf("history entries are append-only, entry %d already persisted", entry.ID())
	}

	model := toHistoryModel(entry)
	result, err := r.db.Exec(
		`INSERT INTO history (guid, input, command, result, created_at) VALUES (?, ?, ?, ?, ?)`,
		model.GUID, model.Input, model.Command, model.Result, model.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	entry.SetID(id)
	return nil
}

// Recent retrieves the newest entries, most recent first. Ties on
// created_at break on the insert order.
func (r *historyRepository) Recent(limit int) ([]*history.Entry, error) {
	query := `SELECT ` + historyColumns + ` FROM history ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*history.Entry
	for rows.Next() {
		model, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, model.toDomain())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history rows: %w", err)
	}

	return entries, nil
}

// CountByCommand returns how many recorded entries ran the named command.
func (r *historyRepository) CountByCommand(command string) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM history WHERE command = ?`,
		command,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count history entries: %w", err)
	}
	return count, nil
}

// Prune deletes all but the newest keep entries.
func (r *historyRepository) Prune(keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := r.db.Exec(
		`DELETE FROM history WHERE id NOT IN (
			SELECT id FROM history ORDER BY created_at DESC, id DESC LIMIT ?
		)`,
		keep,
	)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	return nil
}

// Close releases any resources held by the repository.
// This is a no-op because the connection is owned by the DB struct.
func (r *historyRepository) Close() error {
	// No-op: connection is owned by DB struct
	return nil
}
