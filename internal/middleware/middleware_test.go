package middleware

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/starwars-api/internal/errs"
	"github.com/deppfellow/starwars-api/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "trace-me")
	rec = serve(e, req)
	assert.Equal(t, "trace-me", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "trace-me", rec.Body.String())
}

func TestGetLogger_Fallback(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.NotNil(t, GetLogger(c))
}

func TestGlobalErrorHandler(t *testing.T) {
	s := testutil.NewTestServer(t)
	global := NewGlobalMiddlewares(s)

	tests := []struct {
		name    string
		err     error
		status  int
		message string
		code    string
	}{
		{"http error", errs.NewConflictError("Luke already exists!"), http.StatusBadRequest, "Luke already exists!", "CONFLICT"},
		{"route not found", echo.ErrNotFound, http.StatusNotFound, "Route not found", "NOT_FOUND"},
		{"method not allowed", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "Method Not Allowed", "METHOD_NOT_ALLOWED"},
		{"no rows", sql.ErrNoRows, http.StatusNotFound, "Resource not found", ""},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error", "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			global.GlobalErrorHandler(tt.err, c)

			require.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.status, responseStatus(c, tt.err))

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.message, body["error"])
			if tt.code != "" {
				assert.Equal(t, tt.code, body["code"])
			}
			assert.NotNil(t, body["errors"])
		})
	}
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	s := testutil.NewTestServer(t)
	rl := NewRateLimitMiddleware(s, NewMetricsMiddleware(s))

	assert.False(t, rl.Enabled())
	rl.RecordRateLimitHit("/people")
}
