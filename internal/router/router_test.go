package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/starwars-api/internal/config"
	"github.com/deppfellow/starwars-api/internal/handler"
	"github.com/deppfellow/starwars-api/internal/repository"
	"github.com/deppfellow/starwars-api/internal/service"
	"github.com/deppfellow/starwars-api/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, cfg *config.Config) *echo.Echo {
	t.Helper()

	s := testutil.NewTestServerWithConfig(t, cfg)
	services, err := service.NewServices(s, repository.NewRepositories(s))
	require.NoError(t, err)

	return NewRouter(s, handler.NewHandlers(s, services))
}

func do(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestPeopleRoutes(t *testing.T) {
	e := newTestRouter(t, testutil.NewTestConfig())

	rec := do(t, e, http.MethodPost, "/people", `{"name":"Luke","height":172,"mass":77}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Luke created!", decode(t, rec)["message"])

	rec = do(t, e, http.MethodGet, "/people/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"person":{"id":1,"name":"Luke","height":172,"mass":77}}`, rec.Body.String())

	rec = do(t, e, http.MethodGet, "/people/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"people":[{"id":1,"name":"Luke","height":172,"mass":77}]}`, rec.Body.String())

	rec = do(t, e, http.MethodDelete, "/people/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Luke deleted!"}`, rec.Body.String())

	rec = do(t, e, http.MethodGet, "/people/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Person not found!", decode(t, rec)["error"])
}

func TestCreatePerson_MissingValues(t *testing.T) {
	e := newTestRouter(t, testutil.NewTestConfig())

	rec := do(t, e, http.MethodPost, "/people", `{"name":"Luke","height":172}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "Missing values!", body["error"])
	assert.Equal(t, []any{map[string]any{"field": "mass", "error": "is required"}}, body["errors"])
}

func TestPlanetRoutes_Duplicate(t *testing.T) {
	e := newTestRouter(t, testutil.NewTestConfig())

	payload := `{"name":"Tatooine","orbital_period":304,"population":200000}`

	rec := do(t, e, http.MethodPost, "/planets", payload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Tatooine created!", decode(t, rec)["message"])

	rec = do(t, e, http.MethodPost, "/planets", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Tatooine already exists!", body["error"])
	assert.Equal(t, "CONFLICT", body["code"])
}

func TestUserAndFavoriteRoutes(t *testing.T) {
	e := newTestRouter(t, testutil.NewTestConfig())

	rec := do(t, e, http.MethodPost, "/users", `{"username":"leia","email":"leia@rebels.org","password":"secret"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "leia created!", body["message"])
	user := body["user"].(map[string]any)
	assert.NotContains(t, user, "password")
	assert.Equal(t, true, user["is_active"])

	rec = do(t, e, http.MethodPost, "/users", `{"username":"other","email":"leia@rebels.org","password":"secret"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Email already in use!", decode(t, rec)["error"])

	rec = do(t, e, http.MethodPost, "/people", `{"name":"Han","height":180,"mass":80}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, e, http.MethodPost, "/favorite/people", `{"user_id":1,"people_id":1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Person added to favorites","favorite":{"id":1,"user_id":1,"people_id":1}}`, rec.Body.String())

	rec = do(t, e, http.MethodPost, "/favorite/people", `{"user_id":1,"people_id":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Person is already a favorite", decode(t, rec)["error"])

	rec = do(t, e, http.MethodGet, "/users/1/favorites", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"favorites":{"people":[{"id":1,"user_id":1,"people_id":1}],"planets":[]}}`, rec.Body.String())

	rec = do(t, e, http.MethodGet, "/users/favorites", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, http.MethodDelete, "/users/1/favorite/people/2", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Person not in favorites", decode(t, rec)["error"])

	rec = do(t, e, http.MethodDelete, "/users/1/favorite/people/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Person deleted from favorites!"}`, rec.Body.String())

	rec = do(t, e, http.MethodPost, "/planets", `{"name":"Alderaan","orbital_period":364,"population":2000000000}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, e, http.MethodPost, "/favorite/planets", `{"user_id":1,"planet_id":1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Planet added to favorites","favorite":{"id":1,"user_id":1,"planet_id":1}}`, rec.Body.String())

	rec = do(t, e, http.MethodPost, "/favorite/planets", `{"user_id":1,"planet_id":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Planet is already a favorite", decode(t, rec)["error"])

	rec = do(t, e, http.MethodPost, "/favorite/planets", `{"user_id":1,"planet_id":9}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Planet not found!", decode(t, rec)["error"])

	rec = do(t, e, http.MethodGet, "/users/1/favorites", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"favorites":{"people":[],"planets":[{"id":1,"user_id":1,"planet_id":1}]}}`, rec.Body.String())

	rec = do(t, e, http.MethodDelete, "/users/1/favorite/planets/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Planet deleted from favorites!"}`, rec.Body.String())

	rec = do(t, e, http.MethodDelete, "/users/1/favorite/planets/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Planet not in favorites", decode(t, rec)["error"])

	rec = do(t, e, http.MethodDelete, "/users/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"leia deleted!"}`, rec.Body.String())

	rec = do(t, e, http.MethodGet, "/users/1/favorites", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvalidPathParam(t *testing.T) {
	e := newTestRouter(t, testutil.NewTestConfig())

	rec := do(t, e, http.MethodGet, "/planets/abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Invalid value for id", body["error"])
	assert.NotContains(t, rec.Body.String(), "strconv")

	rec = do(t, e, http.MethodDelete, "/users/1/favorite/planets/xyz", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid value for planetId", decode(t, rec)["error"])
}

func TestCreateUser_MultibytePasswordOverBcryptLimit(t *testing.T) {
	e := newTestRouter(t, testutil.NewTestConfig())

	// 40 characters, 80 bytes.
	password := strings.Repeat("é", 40)
	rec := do(t, e, http.MethodPost, "/users", `{"username":"luke","email":"luke@rebels.org","password":"`+password+`"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, "Validation failed", body["error"])
	assert.Equal(t, []any{map[string]any{"field": "password", "error": "must not exceed 72 bytes"}}, body["errors"])
}

func TestSystemRoutes(t *testing.T) {
	e := newTestRouter(t, testutil.NewTestConfig())

	rec := do(t, e, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `{"method":"POST","path":"/favorite/people"}`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = do(t, e, http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode(t, rec)["status"])

	rec = do(t, e, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")

	rec = do(t, e, http.MethodGet, "/starships", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decode(t, rec)["error"])
}

func TestRateLimit(t *testing.T) {
	cfg := testutil.NewTestConfig()
	cfg.Server.RateLimit.RequestsPerSecond = 1
	cfg.Server.RateLimit.Burst = 1
	cfg.Server.RateLimit.ExpiresIn = time.Minute

	e := newTestRouter(t, cfg)

	rec := do(t, e, http.MethodGet, "/people", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, http.MethodGet, "/people", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Rate limit exceeded", decode(t, rec)["error"])
}
