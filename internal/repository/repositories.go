// Package repository holds the SQL access layer.
//
// Every repository runs against a DBTX, so the same code serves the
// plain *sql.DB and a transaction started by Repositories.WithTx. The
// statements use $n placeholders and RETURNING, which both PostgreSQL
// and SQLite accept.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/deppfellow/starwars-api/internal/server"
)

// ErrNotFound is returned when a lookup or delete by id matches no row.
var ErrNotFound = errors.New("record not found")

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repositories is the container handed to the service layer.
type Repositories struct {
	db *sql.DB

	User     *UserRepository
	Person   *PersonRepository
	Planet   *PlanetRepository
	Favorite *FavoriteRepository
}

// NewRepositories builds the repositories on the server's database.
func NewRepositories(s *server.Server) *Repositories {
	return New(s.DB.SQL)
}

func New(db *sql.DB) *Repositories {
	r := bind(db)
	r.db = db
	return r
}

func bind(q DBTX) *Repositories {
	return &Repositories{
		User:     NewUserRepository(q),
		Person:   NewPersonRepository(q),
		Planet:   NewPlanetRepository(q),
		Favorite: NewFavoriteRepository(q),
	}
}

// WithTx runs fn with repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise,
// including on panic. Called on a transaction-bound container it simply
// runs fn in the existing transaction.
func (r *Repositories) WithTx(ctx context.Context, fn func(tx *Repositories) error) (err error) {
	if r.db == nil {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = fmt.Errorf("commit transaction: %w", cerr)
		}
	}()

	return fn(bind(tx))
}

// deleteByID removes one row and reports ErrNotFound when none matched.
func deleteByID(ctx context.Context, q DBTX, query string, args ...any) error {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}
