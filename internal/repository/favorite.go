package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/deppfellow/starwars-api/internal/model"
)

// FavoriteRepository manages the favorite_people and favorite_planets
// join tables.
type FavoriteRepository struct {
	db DBTX
}

func NewFavoriteRepository(db DBTX) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) AddPerson(ctx context.Context, userID, peopleID int64) (*model.FavoritePerson, error) {
	query := `
		INSERT INTO favorite_people (user_id, people_id)
		VALUES ($1, $2)
		RETURNING id`

	fav := &model.FavoritePerson{UserID: userID, PeopleID: peopleID}
	if err := r.db.QueryRowContext(ctx, query, userID, peopleID).Scan(&fav.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return fav, nil
}

// GetPerson returns nil, nil when the pair is not a favorite.
func (r *FavoriteRepository) GetPerson(ctx context.Context, userID, peopleID int64) (*model.FavoritePerson, error) {
	query := `SELECT id, user_id, people_id FROM favorite_people WHERE user_id = $1 AND people_id = $2`

	fav := &model.FavoritePerson{}
	err := r.db.QueryRowContext(ctx, query, userID, peopleID).Scan(&fav.ID, &fav.UserID, &fav.PeopleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return fav, nil
}

func (r *FavoriteRepository) RemovePerson(ctx context.Context, userID, peopleID int64) error {
	return deleteByID(ctx, r.db,
		`DELETE FROM favorite_people WHERE user_id = $1 AND people_id = $2`, userID, peopleID)
}

// ListPeople returns every favorite person row, or only userID's rows
// when userID is non-nil.
func (r *FavoriteRepository) ListPeople(ctx context.Context, userID *int64) ([]model.FavoritePerson, error) {
	query := `SELECT id, user_id, people_id FROM favorite_people`
	var args []any
	if userID != nil {
		query += ` WHERE user_id = $1`
		args = append(args, *userID)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	favs := []model.FavoritePerson{}
	for rows.Next() {
		var f model.FavoritePerson
		if err := rows.Scan(&f.ID, &f.UserID, &f.PeopleID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		favs = append(favs, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return favs, nil
}

func (r *FavoriteRepository) AddPlanet(ctx context.Context, userID, planetID int64) (*model.FavoritePlanet, error) {
	query := `
		INSERT INTO favorite_planets (user_id, planet_id)
		VALUES ($1, $2)
		RETURNING id`

	fav := &model.FavoritePlanet{UserID: userID, PlanetID: planetID}
	if err := r.db.QueryRowContext(ctx, query, userID, planetID).Scan(&fav.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return fav, nil
}

// GetPlanet returns nil, nil when the pair is not a favorite.
func (r *FavoriteRepository) GetPlanet(ctx context.Context, userID, planetID int64) (*model.FavoritePlanet, error) {
	query := `SELECT id, user_id, planet_id FROM favorite_planets WHERE user_id = $1 AND planet_id = $2`

	fav := &model.FavoritePlanet{}
	err := r.db.QueryRowContext(ctx, query, userID, planetID).Scan(&fav.ID, &fav.UserID, &fav.PlanetID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return fav, nil
}

func (r *FavoriteRepository) RemovePlanet(ctx context.Context, userID, planetID int64) error {
	return deleteByID(ctx, r.db,
		`DELETE FROM favorite_planets WHERE user_id = $1 AND planet_id = $2`, userID, planetID)
}

func (r *FavoriteRepository) ListPlanets(ctx context.Context, userID *int64) ([]model.FavoritePlanet, error) {
	query := `SELECT id, user_id, planet_id FROM favorite_planets`
	var args []any
	if userID != nil {
		query += ` WHERE user_id = $1`
		args = append(args, *userID)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	favs := []model.FavoritePlanet{}
	for rows.Next() {
		var f model.FavoritePlanet
		if err := rows.Scan(&f.ID, &f.UserID, &f.PlanetID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		favs = append(favs, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return favs, nil
}
