// Package history records executed console commands.
//
// The Entry entity and Repository interface form the domain layer; the
// SQLite implementation lives in internal/infrastructure/sqlite. Entries
// are append-only: once recorded they are never edited, only pruned.
package history

import (
	"errors"
	"time"
)

// Sentinel errors for recording validation.
var (
	// ErrEmptyInput is returned when recording an entry with no input line.
	ErrEmptyInput = errors.New("history: input is empty")
	// ErrEmptyCommand is returned when recording an entry with no command name.
	ErrEmptyCommand = errors.New("history: command is empty")
)

// Entry represents one executed console command.
// All fields are unexported to enforce encapsulation; use the constructor
// and getter methods to access data.
type Entry struct {
	id        int64
	guid      string
	input     string
	command   string
	result    string
	createdAt time.Time
}

// NewEntry creates a new Entry for an executed command. The createdAt
// timestamp is set to the current time. The ID is left as zero; it will be
// assigned by the persistence layer.
func NewEntry(guid, input, command, result string) *Entry {
	return &Entry{
		guid:      guid,
		input:     input,
		command:   command,
		result:    result,
		createdAt: time.Now(),
	}
}

// ReconstituteEntry creates an Entry from existing data, typically when
// hydrating from the database. All fields are provided explicitly.
func ReconstituteEntry(id int64, guid, input, command, result string, createdAt time.Time) *Entry {
	return &Entry{
		id:        id,
		guid:      guid,
		input:     input,
		command:   command,
		result:    result,
		createdAt: createdAt,
	}
}

// ID returns the database identifier for this entry.
// Returns 0 for newly created entries that haven't been persisted.
func (e *Entry) ID() int64 {
	return e.id
}

// SetID assigns the database identifier. Called by the persistence layer
// after insert.
func (e *Entry) SetID(id int64) {
	e.id = id
}

// GUID returns the globally unique identifier for this entry.
func (e *Entry) GUID() string {
	return e.guid
}

// Input returns the full line the user typed, including the slash prefix.
func (e *Entry) Input() string {
	return e.input
}

// Command returns the resolved command name the input executed.
func (e *Entry) Command() string {
	return e.command
}

// Result returns the command output, possibly truncated for storage.
func (e *Entry) Result() string {
	return e.result
}

// CreatedAt returns when this command was executed.
func (e *Entry) CreatedAt() time.Time {
	return e.createdAt
}

// Repository defines the persistence interface for history entries.
// Implementations may use SQLite, in-memory storage, or other backends.
type Repository interface {
	// Save persists a new entry and sets its ID. Entries are append-only;
	// saving an entry that already has an ID is an error.
	Save(entry *Entry) error

	// Recent retrieves the newest entries, most recent first.
	// A limit of 0 or less returns all entries.
	Recent(limit int) ([]*Entry, error)

	// CountByCommand returns how many recorded entries ran the named command.
	CountByCommand(command string) (int, error)

	// Prune deletes all but the newest keep entries.
	Prune(keep int) error

	// Close releases any resources held by the repository.
	Close() error
}
