package sqlerr

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/starwars-api/internal/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE planets (id INTEGER PRIMARY KEY, name TEXT NOT NULL UNIQUE);
		CREATE TABLE favorite_planets (
			id INTEGER PRIMARY KEY,
			planet_id INTEGER NOT NULL REFERENCES planets (id)
		);`)
	require.NoError(t, err)

	return db
}

func TestHandleError_SQLiteUnique(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO planets (name) VALUES ($1)`, "Tatooine")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO planets (name) VALUES ($1)`, "Tatooine")
	require.Error(t, err)

	assert.Equal(t, UniqueViolation, ErrCode(err))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, HandleError(err), &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "PLANET_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Planet with this name already exists", httpErr.Message)
}

func TestHandleError_SQLiteForeignKey(t *testing.T) {
	db := openSQLite(t)

	_, err := db.Exec(`INSERT INTO favorite_planets (planet_id) VALUES ($1)`, 99)
	require.Error(t, err)

	assert.Equal(t, ForeignKeyViolation, ErrCode(err))

	var httpErr *errs.HTTPError
	require.ErrorAs(t, HandleError(err), &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestHandleError_Postgres(t *testing.T) {
	tests := []struct {
		name       string
		pgErr      *pgconn.PgError
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name: "unique on users email",
			pgErr: &pgconn.PgError{
				Code: "23505", Severity: "ERROR", TableName: "users",
				ConstraintName: "users_email_key",
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "USER_ALREADY_EXISTS",
			wantMsg:    "A User with this email already exists",
		},
		{
			name: "foreign key on favorite_people",
			pgErr: &pgconn.PgError{
				Code: "23503", Severity: "ERROR", TableName: "favorite_people",
				ColumnName: "people_id",
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "FAVORITE_PERSON_NOT_FOUND",
			wantMsg:    "The referenced Person does not exist",
		},
		{
			name: "not null",
			pgErr: &pgconn.PgError{
				Code: "23502", Severity: "ERROR", TableName: "people", ColumnName: "name",
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "PERSON_REQUIRED",
			wantMsg:    "The Name is required",
		},
		{
			name:       "unmapped sqlstate",
			pgErr:      &pgconn.PgError{Code: "57014", Severity: "ERROR"},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
			wantMsg:    "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("insert: %w", tt.pgErr)

			var httpErr *errs.HTTPError
			require.ErrorAs(t, HandleError(wrapped), &httpErr)
			assert.Equal(t, tt.wantStatus, httpErr.Status)
			assert.Equal(t, tt.wantCode, httpErr.Code)
			assert.Equal(t, tt.wantMsg, httpErr.Message)
		})
	}
}

func TestHandleError_Passthrough(t *testing.T) {
	orig := errs.NewNotFoundError("Person not found!", true, nil)
	assert.Same(t, orig, HandleError(orig))
}

func TestHandleError_NoRows(t *testing.T) {
	var httpErr *errs.HTTPError
	require.ErrorAs(t, HandleError(fmt.Errorf("get: %w", sql.ErrNoRows)), &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("whatever"))
}
