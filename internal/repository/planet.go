package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/deppfellow/starwars-api/internal/model"
)

type PlanetRepository struct {
	db DBTX
}

func NewPlanetRepository(db DBTX) *PlanetRepository {
	return &PlanetRepository{db: db}
}

func (r *PlanetRepository) Create(ctx context.Context, p *model.Planet) (*model.Planet, error) {
	query := `
		INSERT INTO planets (name, orbital_period, population)
		VALUES ($1, $2, $3)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query, p.Name, p.OrbitalPeriod, p.Population).Scan(&p.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PlanetRepository) GetByID(ctx context.Context, id int64) (*model.Planet, error) {
	p, err := r.getOne(ctx, `SELECT id, name, orbital_period, population FROM planets WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// GetByName returns nil, nil when no planet has name.
func (r *PlanetRepository) GetByName(ctx context.Context, name string) (*model.Planet, error) {
	return r.getOne(ctx, `SELECT id, name, orbital_period, population FROM planets WHERE name = $1`, name)
}

func (r *PlanetRepository) getOne(ctx context.Context, query string, arg any) (*model.Planet, error) {
	p := &model.Planet{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&p.ID, &p.Name, &p.OrbitalPeriod, &p.Population)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PlanetRepository) List(ctx context.Context) ([]model.Planet, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, orbital_period, population FROM planets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	planets := []model.Planet{}
	for rows.Next() {
		var p model.Planet
		if err := rows.Scan(&p.ID, &p.Name, &p.OrbitalPeriod, &p.Population); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		planets = append(planets, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return planets, nil
}

func (r *PlanetRepository) Delete(ctx context.Context, id int64) error {
	return deleteByID(ctx, r.db, `DELETE FROM planets WHERE id = $1`, id)
}
