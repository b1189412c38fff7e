// Package database opens the relational store.
//
// The engine is chosen once from the connection string: postgres:// and
// postgresql:// URLs open a pgx pool, anything else is treated as a
// SQLite location. Both engines are exposed through a *sql.DB so the
// repositories run the same statements on either.
//
// It handles:
//   - creating a pgx connection pool (pgxpool) and its database/sql view
//   - wiring query tracing/logging (pgx tracelog) and New Relic (nrpgx5)
//   - opening SQLite with foreign keys enforced
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/deppfellow/starwars-api/internal/config"
	loggerConfig "github.com/deppfellow/starwars-api/internal/logger"

	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// Database holds the open store.
//
// Pool is only set for PostgreSQL. SQL is always set and is what the
// repositories use.
type Database struct {
	Pool   *pgxpool.Pool
	SQL    *sql.DB
	Driver Driver
	log    *zerolog.Logger
}

// multiTracer chains several pgx tracers into the single
// ConnConfig.Tracer slot.
type multiTracer struct {
	tracers []any
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryStart(context.Context, *pgx.Conn, pgx.TraceQueryStartData) context.Context
		}); ok {
			ctx = t.TraceQueryStart(ctx, conn, data)
		}
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData)
		}); ok {
			t.TraceQueryEnd(ctx, conn, data)
		}
	}
}

// DatabasePingTimeout is the startup ping budget in seconds.
const DatabasePingTimeout = 10

// DetectDriver picks the engine for a connection string.
func DetectDriver(url string) Driver {
	lower := strings.ToLower(url)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

// SQLiteDSN turns a SQLite location into a modernc DSN with foreign keys
// and a busy timeout enabled. URLs follow the SQLAlchemy convention: three
// slashes precede a relative path, four an absolute one.
//
//	sqlite:///app.db      -> app.db
//	sqlite:////tmp/app.db -> /tmp/app.db
//	:memory:              -> file::memory:
func SQLiteDSN(url string) string {
	path := url
	switch {
	case strings.HasPrefix(path, "sqlite:///"):
		path = strings.TrimPrefix(path, "sqlite:///")
	case strings.HasPrefix(path, "sqlite://"):
		path = strings.TrimPrefix(path, "sqlite://")
	case strings.HasPrefix(path, "sqlite:"):
		path = strings.TrimPrefix(path, "sqlite:")
	}

	if path == "" || path == ":memory:" {
		path = "file::memory:"
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}

	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// New opens the database named by cfg.Database.URL and pings it.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	switch DetectDriver(cfg.Database.URL) {
	case DriverPostgres:
		return newPostgres(cfg, logger, loggerService)
	default:
		return OpenSQLite(cfg.Database.URL, logger)
	}
}

func newPostgres(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	pgxPoolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgx pool config: %w", err)
	}

	pgxPoolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	pgxPoolConfig.MinConns = int32(min(cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns))
	pgxPoolConfig.MaxConnLifetime = time.Duration(cfg.Database.ConnMaxLifetime) * time.Second
	pgxPoolConfig.MaxConnIdleTime = time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second

	if loggerService.GetApplication() != nil {
		pgxPoolConfig.ConnConfig.Tracer = nrpgx5.NewTracer()
	}

	// SQL logging is far too noisy outside local runs.
	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		pgxLogger := loggerConfig.NewPgxLogger(globalLevel)

		localTracer := &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(pgxLogger),
			LogLevel: tracelog.LogLevel(loggerConfig.GetPgxTraceLogLevel(globalLevel)),
		}

		if pgxPoolConfig.ConnConfig.Tracer != nil {
			pgxPoolConfig.ConnConfig.Tracer = &multiTracer{
				tracers: []any{pgxPoolConfig.ConnConfig.Tracer, localTracer},
			}
		} else {
			pgxPoolConfig.ConnConfig.Tracer = localTracer
		}
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxPoolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	database := &Database{
		Pool:   pool,
		SQL:    stdlib.OpenDBFromPool(pool),
		Driver: DriverPostgres,
		log:    logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("driver", string(DriverPostgres)).Msg("connected to the database")

	return database, nil
}

// OpenSQLite opens a SQLite database. The pool is limited to a single
// connection: SQLite serializes writers anyway and an in-memory database
// only lives as long as its connection.
func OpenSQLite(url string, logger *zerolog.Logger) (*Database, error) {
	dsn := SQLiteDSN(url)

	if path := strings.SplitN(dsn, "?", 2)[0]; !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("driver", string(DriverSQLite)).Msg("connected to the database")

	return &Database{
		SQL:    db,
		Driver: DriverSQLite,
		log:    logger,
	}, nil
}

// Ping checks that the store is reachable.
func (db *Database) Ping(ctx context.Context) error {
	return db.SQL.PingContext(ctx)
}

// Close releases the database/sql handle and the pgx pool behind it.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")

	err := db.SQL.Close()
	if db.Pool != nil {
		db.Pool.Close()
	}
	return err
}
