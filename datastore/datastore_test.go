package datastore

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/color-game/palette-api/migrations"
)

// newTestDB returns a migrated in-memory sqlite database.
func newTestDB(t *testing.T) *sql.DB {
	db, err := NewDB("sqlite3", ":memory:")
	require.NoError(t, err)
	require.NoError(t, migrations.RunMigrations(db))

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Failed to close test database: %v", err)
		}
	})
	return db
}

// stores returns every KeyValueRepository implementation so behavior tests
// run against each of them.
func stores(t *testing.T) map[string]KeyValueRepository {
	kvDatabase, err := NewKeyValueDatabase(newTestDB(t))
	require.NoError(t, err)

	return map[string]KeyValueRepository{
		"sqlite": kvDatabase,
		"memory": NewMemoryStore(),
	}
}
