package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailfeed/grailfeed/internal/api/handlers"
	"github.com/grailfeed/grailfeed/internal/ebay"
)

func TestQuotaHandler(t *testing.T) {
	t.Parallel()

	limiter := ebay.NewRateLimiter(100, 100, 5000)
	require.NoError(t, limiter.Wait(context.Background()))
	require.NoError(t, limiter.Wait(context.Background()))

	_, api := humatest.New(t)
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(limiter))

	resp := api.Get("/quota")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		DailyLimit int64     `json:"daily_limit"`
		DailyUsed  int64     `json:"daily_used"`
		Remaining  int64     `json:"remaining"`
		ResetAt    time.Time `json:"reset_at"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))

	assert.Equal(t, int64(5000), body.DailyLimit)
	assert.Equal(t, int64(2), body.DailyUsed)
	assert.Equal(t, int64(4998), body.Remaining)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), body.ResetAt, time.Minute)
}

func TestQuotaHandler_NoLimiter(t *testing.T) {
	t.Parallel()

	_, api := humatest.New(t)
	handlers.RegisterQuotaRoutes(api, handlers.NewQuotaHandler(nil))

	resp := api.Get("/quota")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"daily_limit":0`)
}
