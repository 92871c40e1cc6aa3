package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_SQLite(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db, SQLite))
	// running again is a no-op
	require.NoError(t, Migrate(db, SQLite))

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM local_storage").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestMigrate_UnsupportedDialect(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(db, Dialect("oracle"))
	assert.ErrorContains(t, err, "unsupported dialect")
}
