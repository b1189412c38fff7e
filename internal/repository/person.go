package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/deppfellow/starwars-api/internal/model"
)

type PersonRepository struct {
	db DBTX
}

func NewPersonRepository(db DBTX) *PersonRepository {
	return &PersonRepository{db: db}
}

func (r *PersonRepository) Create(ctx context.Context, p *model.Person) (*model.Person, error) {
	query := `
		INSERT INTO people (name, height, mass)
		VALUES ($1, $2, $3)
		RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, p.Name, p.Height, p.Mass).Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PersonRepository) GetByID(ctx context.Context, id int64) (*model.Person, error) {
	query := `SELECT id, name, height, mass FROM people WHERE id = $1`

	p := &model.Person{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Height, &p.Mass)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

// GetByName returns nil, nil when no person has name.
func (r *PersonRepository) GetByName(ctx context.Context, name string) (*model.Person, error) {
	query := `SELECT id, name, height, mass FROM people WHERE name = $1`

	p := &model.Person{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(&p.ID, &p.Name, &p.Height, &p.Mass)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PersonRepository) List(ctx context.Context) ([]model.Person, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, height, mass FROM people ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	people := []model.Person{}
	for rows.Next() {
		var p model.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Height, &p.Mass); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return people, nil
}

func (r *PersonRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, `DELETE FROM people WHERE id = $1`, id)
}
