package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/golang-migrate/migrate/v4/database"
)

// migrationsTable tracks the applied schema version.
const migrationsTable = "schema_migrations"

// migrationDriver adapts an open *sql.DB to the golang-migrate driver
// interface. The upstream sqlite drivers bring their own connection and a
// cgo dependency; this one reuses the connection the rest of the package
// already holds.
type migrationDriver struct {
	db     *sql.DB
	locked atomic.Bool
}

// newMigrationDriver wraps db and ensures the version table exists.
func newMigrationDriver(db *sql.DB) (*migrationDriver, error) {
	d := &migrationDriver{db: db}
	if err := d.ensureVersionTable(); err != nil {
		return nil, err
	}
	return d, nil
}

// Ensure migrationDriver implements the migrate driver interface.
var _ database.Driver = (*migrationDriver)(nil)

func (d *migrationDriver) ensureVersionTable() error {
	_, err := d.db.Exec(`CREATE TABLE IF NOT EXISTS ` + migrationsTable + ` (
		version BIGINT NOT NULL,
		dirty BOOLEAN NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}
	return nil
}

// Open is part of the driver interface for URL-based construction. This
// driver only supports instance-based use via migrate.NewWithInstance.
func (d *migrationDriver) Open(string) (database.Driver, error) {
	return nil, errors.New("migration driver must be constructed from an open connection")
}

// Close is a no-op; the connection is owned by the DB struct.
func (d *migrationDriver) Close() error {
	return nil
}

// Lock takes an in-process lock. SQLite serializes writers itself; this
// guards against concurrent migrate instances sharing the connection.
func (d *migrationDriver) Lock() error {
	if !d.locked.CompareAndSwap(false, true) {
		return database.ErrLocked
	}
	return nil
}

// Unlock releases the in-process lock.
func (d *migrationDriver) Unlock() error {
	d.locked.Store(false)
	return nil
}

// Run executes one migration file. Files may contain multiple statements;
// they are executed as a single script.
func (d *migrationDriver) Run(migration io.Reader) error {
	script, err := io.ReadAll(migration)
	if err != nil {
		return fmt.Errorf("reading migration: %w", err)
	}
	query := strings.TrimSpace(string(script))
	if query == "" {
		return nil
	}
	if _, err := d.db.Exec(query); err != nil {
		return fmt.Errorf("executing migration: %w", err)
	}
	return nil
}

// SetVersion records the current schema version. Negative versions clear
// the table (no migration applied).
func (d *migrationDriver) SetVersion(version int, dirty bool) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("starting version transaction: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM ` + migrationsTable); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clearing version: %w", err)
	}
	if version >= 0 {
		if _, err := tx.Exec(
			`INSERT INTO `+migrationsTable+` (version, dirty) VALUES (?, ?)`,
			version, dirty,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording version: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing version: %w", err)
	}
	return nil
}

// Version reports the current schema version, or database.NilVersion when
// no migration has run yet.
func (d *migrationDriver) Version() (int, bool, error) {
	var version int
	var dirty bool
	err := d.db.QueryRow(`SELECT version, dirty FROM ` + migrationsTable + ` LIMIT 1`).Scan(&version, &dirty)
	if errors.Is(err, sql.ErrNoRows) {
		return database.NilVersion, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading version: %w", err)
	}
	return version, dirty, nil
}

// Drop removes every table except sqlite's own bookkeeping.
func (d *migrationDriver) Drop() error {
	rows, err := d.db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`)
	if err != nil {
		return fmt.Errorf("listing tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("scanning table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating tables: %w", err)
	}

	for _, table := range tables {
		if _, err := d.db.Exec(`DROP TABLE IF EXISTS ` + table); err != nil {
			return fmt.Errorf("dropping table %s: %w", table, err)
		}
	}
	return nil
}
