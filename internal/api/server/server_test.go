package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/portfolio/internal/apperr"
)

type staticHealth bool

func (h staticHealth) Healthy(context.Context) bool {
	return bool(h)
}

func TestLoad(t *testing.T) {
	cfg, err := Load(func(string) string { return "" })
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.CorsOrigins)
	assert.False(t, cfg.UseHttp2)

	env := map[string]string{"PORT": "9090", "CORS_ORIGINS": " https://a.dev , ,https://b.dev", "USE_HTTP2": "true"}
	cfg, err = Load(func(k string) string { return env[k] })
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.CorsOrigins)
	assert.True(t, cfg.UseHttp2)

	for _, port := range []string{"abc", "0", "70000"} {
		_, err := Load(func(k string) string {
			if k == "PORT" {
				return port
			}
			return ""
		})
		assert.Error(t, err, port)
	}
}

func TestHealthChecks(t *testing.T) {
	for _, tt := range []struct {
		healthy bool
		code    int
	}{{true, http.StatusOK}, {false, http.StatusServiceUnavailable}} {
		s := New(&Config{Port: "8080", CorsOrigins: []string{"*"}}, staticHealth(tt.healthy)).
			SetupMiddlewares().
			SetupErrorHandler().
			SetupHealthChecks()

		rec := httptest.NewRecorder()
		s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, tt.code, rec.Code)
	}
}

func TestErrorHandlerInstalled(t *testing.T) {
	s := New(&Config{Port: "8080", CorsOrigins: []string{"*"}}, nil).SetupErrorHandler()
	s.Echo.GET("/missing", func(c echo.Context) error {
		return apperr.NewNotFound("Blog not found")
	})

	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Blog not found"}`, rec.Body.String())
}
