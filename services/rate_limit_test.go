package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lac-hong-legacy/ven_growth/shared"
)

func newTestRateLimiter(clock shared.Clock) *RateLimitService {
	return NewRateLimitService(NewTrackingService(clock, time.UTC), RateLimitConfig{
		EndpointType: "test",
		MaxRequests:  2,
		WindowSize:   time.Minute,
		Message:      "slow down",
	})
}

func TestIsAllowed_FixedWindow(t *testing.T) {
	clock := shared.NewManualClock(testStart)
	svc := newTestRateLimiter(clock)
	ctx := context.Background()

	info, err := svc.IsAllowed(ctx, "1.2.3.4", "test")
	require.NoError(t, err)
	assert.True(t, info.Allowed)
	assert.Equal(t, int64(1), info.Remaining)
	assert.Equal(t, testStart.Add(time.Minute), *info.ResetTime)

	info, _ = svc.IsAllowed(ctx, "1.2.3.4", "test")
	assert.True(t, info.Allowed)
	assert.Equal(t, int64(0), info.Remaining)

	info, _ = svc.IsAllowed(ctx, "1.2.3.4", "test")
	assert.False(t, info.Allowed)

	other, _ := svc.IsAllowed(ctx, "5.6.7.8", "test")
	assert.True(t, other.Allowed)

	clock.Advance(time.Minute)
	info, _ = svc.IsAllowed(ctx, "1.2.3.4", "test")
	assert.True(t, info.Allowed)
}

func TestIsAllowed_UnknownEndpoint(t *testing.T) {
	svc := newTestRateLimiter(shared.NewManualClock(testStart))

	info, err := svc.IsAllowed(context.Background(), "1.2.3.4", "nope")
	require.NoError(t, err)
	assert.True(t, info.Allowed)
	assert.Equal(t, int64(-1), info.Remaining)
}

func TestIPRateLimit(t *testing.T) {
	svc := newTestRateLimiter(shared.NewManualClock(testStart))

	app := fiber.New()
	app.Get("/", svc.IPRateLimit("test"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	call := func() *http.Response {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "9.9.9.9, 10.0.0.1")
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	resp := call()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2", resp.Header.Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", resp.Header.Get("X-RateLimit-Remaining"))

	call()
	resp = call()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get(fiber.HeaderRetryAfter))
}
