package storage

import (
	"rewardsprint/internal/database"
	"rewardsprint/internal/repository"
)

// SQLStorage keeps values in the kv_store table of a SQLite, PostgreSQL or
// MySQL database
type SQLStorage struct {
	*repository.KVRepository
	db *database.DB
}

// NewSQLStorage wraps an open, migrated database
func NewSQLStorage(db *database.DB) *SQLStorage {
	return &SQLStorage{
		KVRepository: repository.NewKVRepository(db),
		db:           db,
	}
}

func (s *SQLStorage) Name() string { return s.db.Dialect.Name() }
func (s *SQLStorage) Close() error { return s.db.Close() }
