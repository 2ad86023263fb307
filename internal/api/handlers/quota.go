package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/grailfeed/grailfeed/internal/ebay"
)

// QuotaHandler exposes the upstream API quota status.
type QuotaHandler struct {
	rl *ebay.RateLimiter
}

// NewQuotaHandler creates a new QuotaHandler.
func NewQuotaHandler(rl *ebay.RateLimiter) *QuotaHandler {
	return &QuotaHandler{rl: rl}
}

// QuotaOutput is the response body for the quota endpoint.
type QuotaOutput struct {
	Body struct {
		DailyLimit int64     `json:"daily_limit" doc:"Configured daily API call limit"`
		DailyUsed  int64     `json:"daily_used"  doc:"Calls used in the current 24-hour window"`
		Remaining  int64     `json:"remaining"   doc:"Calls remaining in the current window"`
		ResetAt    time.Time `json:"reset_at"    doc:"When the current window expires"`
	}
}

// GetQuota returns the current upstream API quota status.
func (h *QuotaHandler) GetQuota(_ context.Context, _ *struct{}) (*QuotaOutput, error) {
	resp := &QuotaOutput{}
	if h.rl == nil {
		return resp, nil
	}

	resp.Body.DailyLimit = h.rl.MaxDaily()
	resp.Body.DailyUsed = h.rl.DailyCount()
	resp.Body.Remaining = h.rl.Remaining()
	resp.Body.ResetAt = h.rl.ResetAt()

	return resp, nil
}

// RegisterQuotaRoutes registers the quota endpoint with the Huma API.
func RegisterQuotaRoutes(api huma.API, h *QuotaHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-quota",
		Method:      http.MethodGet,
		Path:        "/quota",
		Summary:     "Upstream API quota status",
		Description: "Returns daily usage against the configured upstream call limit.",
		Tags:        []string{"ops"},
	}, h.GetQuota)
}
