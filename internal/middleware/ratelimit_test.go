package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/blogverse/internal/config"
)

func TestFixedWindow_PassThroughWithoutRedis(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: true, Prefix: "rl"}
	rl := config.RouteLimit{Name: "login", Limit: 1, Window: time.Minute}

	mw := NewFixedWindow(cfg, rl, nil)
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	e := echo.New()
	// Far more requests than the limit; all must pass when Redis is absent.
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, mw(next)(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestFixedWindow_PassThroughWhenDisabled(t *testing.T) {
	cfg := config.RateLimitConfig{Enabled: false}
	rl := config.RouteLimit{Name: "login", Limit: 1, Window: time.Minute}

	mw := NewFixedWindow(cfg, rl, nil)
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, mw(next)(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
}
