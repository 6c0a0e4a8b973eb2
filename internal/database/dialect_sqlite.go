package database

import (
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDialect implements Dialect for SQLite
type SQLiteDialect struct{}

// NewSQLiteDialect creates a new SQLite dialect
func NewSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{}
}

func (d *SQLiteDialect) Name() string       { return "sqlite" }
func (d *SQLiteDialect) DriverName() string { return "sqlite3" }

// DSN appends the WAL and busy-timeout options understood by go-sqlite3
func (d *SQLiteDialect) DSN(config DialectConfig) (string, error) {
	sep := "?"
	if strings.Contains(config.Path, "?") {
		sep = "&"
	}
	return config.Path + sep + "_journal_mode=WAL&_busy_timeout=5000", nil
}

func (d *SQLiteDialect) RewriteQuery(query string) string {
	return query
}

// ConfigureConnection keeps a single connection: the state is one row and
// SQLite serialises writers anyway.
func (d *SQLiteDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(1)
	return nil
}

func (d *SQLiteDialect) MigrationsSubdir() string {
	return "sqlite"
}

func (d *SQLiteDialect) CreateMigrationsTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			filename TEXT UNIQUE NOT NULL,
			executed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
}

func (d *SQLiteDialect) UpsertKVQuery() string {
	return "INSERT INTO kv_store (storage_key, payload) VALUES (?, ?) " +
		"ON CONFLICT(storage_key) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP"
}
