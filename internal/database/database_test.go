package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDriver(t *testing.T) {
	tests := map[string]Driver{
		"postgres://u:p@localhost:5432/db":   DriverPostgres,
		"postgresql://u:p@localhost:5432/db": DriverPostgres,
		"POSTGRES://host/db":                 DriverPostgres,
		"sqlite:////tmp/test.db":             DriverSQLite,
		"/tmp/starwars.db":                   DriverSQLite,
		":memory:":                           DriverSQLite,
	}

	for url, want := range tests {
		assert.Equal(t, want, DetectDriver(url), url)
	}
}

func TestSQLiteDSN(t *testing.T) {
	const pragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	assert.Equal(t, "/tmp/test.db?"+pragmas, SQLiteDSN("sqlite:////tmp/test.db"))
	assert.Equal(t, "/tmp/starwars.db?"+pragmas, SQLiteDSN("sqlite:////tmp/starwars.db"))
	assert.Equal(t, "app.db?"+pragmas, SQLiteDSN("sqlite:///app.db"))
	assert.Equal(t, "data/app.db?"+pragmas, SQLiteDSN("sqlite:///data/app.db"))
	assert.Equal(t, "file::memory:?"+pragmas, SQLiteDSN("sqlite://"))
	assert.Equal(t, "data/app.db?"+pragmas, SQLiteDSN("data/app.db"))
	assert.Equal(t, "file::memory:?"+pragmas, SQLiteDSN(":memory:"))
	assert.Equal(t, "file:x.db?mode=rwc&"+pragmas, SQLiteDSN("file:x.db?mode=rwc"))
}

func TestOpenSQLiteAndMigrate(t *testing.T) {
	logger := zerolog.Nop()
	path := filepath.Join(t.TempDir(), "nested", "starwars.db")

	db, err := OpenSQLite(path, &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, &logger, db))
	// Running twice must be harmless.
	require.NoError(t, Migrate(ctx, &logger, db))

	var fk int
	require.NoError(t, db.SQL.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)

	for _, table := range []string{"users", "people", "planets", "favorite_people", "favorite_planets"} {
		var name string
		err := db.SQL.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = $1`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestMigrations_Embedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "001_create_tables.sql", entries[0].Name())
	assert.Contains(t, sqliteSchema, "CREATE TABLE IF NOT EXISTS favorite_planets")
}
