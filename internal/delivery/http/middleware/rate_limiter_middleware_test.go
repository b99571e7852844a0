package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newLimitedApp(t *testing.T) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(SetupRateLimiter(zaptest.NewLogger(t)))
	app.Get("/api/posts", func(ctx *fiber.Ctx) error {
		return ctx.JSON([]any{})
	})

	return app
}

func TestRateLimiterDoesNotCountLoopbackCallers(t *testing.T) {
	app := newLimitedApp(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		_ = app.Listener(listener)
	}()
	t.Cleanup(func() {
		_ = app.Shutdown()
	})

	client := &http.Client{Timeout: 5 * time.Second}
	url := "http://" + listener.Addr().String() + "/api/posts"

	for i := 0; i < 150; i++ {
		resp, err := client.Get(url)
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, "request %d", i+1)
	}
}

func TestRateLimiterLimitsRemoteCallers(t *testing.T) {
	app := newLimitedApp(t)

	// app.Test connects from 0.0.0.0, which is not loopback.
	for i := 0; i < 100; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/posts", nil), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, "request %d", i+1)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/posts", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestIsLoopback(t *testing.T) {
	assert.True(t, isLoopback("127.0.0.1"))
	assert.True(t, isLoopback("::1"))
	assert.False(t, isLoopback("203.0.113.9"))
	assert.False(t, isLoopback("0.0.0.0"))
	assert.False(t, isLoopback(""))
}
