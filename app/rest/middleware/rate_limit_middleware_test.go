package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hitPath(t *testing.T, rl *RateLimiter, path string) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.RemoteAddr = "198.51.100.7:4242"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := rl.RateLimit()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec.Code
}

func TestRateLimiter_LoginBurst(t *testing.T) {
	rl := NewRateLimiter(100, 100)

	// login burst is 5, the sixth attempt is throttled
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hitPath(t, rl, "/v1/session/login"))
	}
	assert.Equal(t, http.StatusTooManyRequests, hitPath(t, rl, "/v1/session/login"))
}

func TestRateLimiter_BucketsPerEndpointClass(t *testing.T) {
	rl := NewRateLimiter(100, 100)

	// exhaust the login budget
	for i := 0; i < 6; i++ {
		hitPath(t, rl, "/v1/session/login")
	}

	// state reads from the same address keep working
	assert.Equal(t, http.StatusOK, hitPath(t, rl, "/v1/session"))
}

func TestRateLimiter_DefaultBudget(t *testing.T) {
	rl := NewRateLimiter(1, 2)

	assert.Equal(t, http.StatusOK, hitPath(t, rl, "/v1/session"))
	assert.Equal(t, http.StatusOK, hitPath(t, rl, "/v1/session"))
	assert.Equal(t, http.StatusTooManyRequests, hitPath(t, rl, "/v1/session"))
}
