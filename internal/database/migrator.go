package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

// PostgreSQL migrations in tern format, versioned in schema_version.
//
//go:embed migrations/*.sql
var migrations embed.FS

// SQLite has no migration runner; the schema is idempotent instead.
//
//go:embed schema_sqlite.sql
var sqliteSchema string

// Migrate brings the schema up to date for whichever engine db uses.
func Migrate(ctx context.Context, logger *zerolog.Logger, db *Database) error {
	switch db.Driver {
	case DriverPostgres:
		return migratePostgres(ctx, logger, db)
	case DriverSQLite:
		if _, err := db.SQL.ExecContext(ctx, sqliteSchema); err != nil {
			return fmt.Errorf("applying sqlite schema: %w", err)
		}
		logger.Info().Msg("sqlite schema ensured")
		return nil
	default:
		return fmt.Errorf("unsupported database driver %q", db.Driver)
	}
}

func migratePostgres(ctx context.Context, logger *zerolog.Logger, db *Database) error {
	conn, err := db.Pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquiring migration connection: %w", err)
	}
	defer conn.Release()

	m, err := tern.NewMigrator(ctx, conn.Conn(), "schema_version")
	if err != nil {
		return fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return fmt.Errorf("loading database migrations: %w", err)
	}

	from, err := m.GetCurrentVersion(ctx)
	if err != nil {
		return fmt.Errorf("retrieving current database migration version: %w", err)
	}

	if err := m.Migrate(ctx); err != nil {
		return err
	}

	if from == int32(len(m.Migrations)) {
		logger.Info().Msgf("database schema up to date, version %d", len(m.Migrations))
	} else {
		logger.Info().Msgf("migrated database schema, from %d to %d", from, len(m.Migrations))
	}
	return nil
}
