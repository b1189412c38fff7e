// Package testutil builds servers backed by an in-memory SQLite database.
package testutil

import (
	"context"
	"testing"

	"github.com/deppfellow/starwars-api/internal/config"
	"github.com/deppfellow/starwars-api/internal/database"
	"github.com/deppfellow/starwars-api/internal/logger"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// NewTestConfig returns a validated-looking config for the test env.
func NewTestConfig() *config.Config {
	obs := config.DefaultObservabilityConfig()
	obs.ServiceName = config.ServiceName
	obs.Environment = "test"

	return &config.Config{
		Primary: config.Primary{Env: "test"},
		Server: config.ServerConfig{
			Port:               "0",
			ReadTimeout:        5,
			WriteTimeout:       5,
			IdleTimeout:        5,
			CORSAllowedOrigins: []string{"*"},
		},
		Database: config.DatabaseConfig{
			URL: ":memory:",
		},
		Observability: obs,
	}
}

// NewTestServer opens a fresh migrated in-memory database and wraps it in
// a server without Redis. The database is closed when the test ends.
func NewTestServer(t *testing.T) *server.Server {
	t.Helper()
	return NewTestServerWithConfig(t, NewTestConfig())
}

func NewTestServerWithConfig(t *testing.T, cfg *config.Config) *server.Server {
	t.Helper()

	log := zerolog.Nop()

	db, err := database.OpenSQLite(cfg.Database.URL, &log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(context.Background(), &log, db))

	return server.NewWithDatabase(cfg, &log, &logger.LoggerService{}, db)
}
