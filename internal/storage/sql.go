package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/klokku/eventcal/internal/database"
	log "github.com/sirupsen/logrus"
)

type sqlQueries struct {
	get    string
	upsert string
}

var queriesByDialect = map[database.Dialect]sqlQueries{
	database.SQLite: {
		get: "SELECT value FROM local_storage WHERE key = ?",
		upsert: `INSERT INTO local_storage (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
	},
	database.Postgres: {
		get: "SELECT value FROM local_storage WHERE key = $1",
		upsert: `INSERT INTO local_storage (key, value, updated_at) VALUES ($1, $2, now())
			ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
	},
}

// SQLStorage keeps items in the local_storage table of an SQLite or Postgres
// database. The schema is created by database.Migrate.
type SQLStorage struct {
	db      *sql.DB
	queries sqlQueries
}

func NewSQLStorage(db *sql.DB, dialect database.Dialect) (*SQLStorage, error) {
	queries, ok := queriesByDialect[dialect]
	if !ok {
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
	return &SQLStorage{db: db, queries: queries}, nil
}

func (s *SQLStorage) GetItem(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.queries.get, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		err := fmt.Errorf("failed to read item %s: %w", key, err)
		log.Error(err)
		return nil, err
	}
	return []byte(value), nil
}

func (s *SQLStorage) SetItem(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, s.queries.upsert, key, string(value))
	if err != nil {
		err := fmt.Errorf("failed to store item %s: %w", key, err)
		log.Error(err)
		return err
	}
	return nil
}

func (s *SQLStorage) Close() error {
	return s.db.Close()
}
