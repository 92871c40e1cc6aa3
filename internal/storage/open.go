package storage

import (
	"database/sql"
	"fmt"

	"github.com/klokku/eventcal/internal/config"
	"github.com/klokku/eventcal/internal/database"
	log "github.com/sirupsen/logrus"
)

// Open creates the backend selected by cfg.Driver.
func Open(cfg config.Storage) (LocalStorage, error) {
	log.Infof("Opening %s storage", cfg.Driver)

	switch cfg.Driver {
	case "memory":
		return NewMemoryStorage(), nil
	case "bolt":
		return OpenBolt(cfg.Bolt.Path, cfg.Bolt.Bucket)
	case "sqlite":
		db, err := database.OpenSQLite(cfg.Sqlite.Path)
		if err != nil {
			return nil, err
		}
		return openSQL(db, database.SQLite)
	case "postgres":
		db, err := database.OpenPostgres(cfg.DB)
		if err != nil {
			return nil, err
		}
		return openSQL(db, database.Postgres)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func openSQL(db *sql.DB, dialect database.Dialect) (LocalStorage, error) {
	if err := database.Migrate(db, dialect); err != nil {
		db.Close()
		return nil, err
	}
	s, err := NewSQLStorage(db, dialect)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}
