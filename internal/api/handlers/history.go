package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/grailfeed/grailfeed/internal/feed"
)

// HistoryHandler handles the sold-price statistics endpoints, both backed by
// the legacy completed-items search.
type HistoryHandler struct {
	svc *feed.Service
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(svc *feed.Service) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

// HistoryInput is the query surface shared by both statistics endpoints.
type HistoryInput struct {
	Q string `query:"q" doc:"Free-text keywords" example:"levis 501 denim"`
}

// PriceHistoryOutput is the response body for the price-history endpoint.
type PriceHistoryOutput struct {
	Body feed.PriceSummary
}

// ChartDataOutput is the response body for the chart-data endpoint.
type ChartDataOutput struct {
	Body struct {
		Query string                         `json:"query"`
		Chart map[string]*feed.WindowSummary `json:"chart"`
	}
}

// PriceHistory aggregates completed-sale prices for the query.
func (h *HistoryHandler) PriceHistory(
	ctx context.Context,
	input *HistoryInput,
) (*PriceHistoryOutput, error) {
	if input.Q == "" {
		return nil, huma.Error400BadRequest("missing required parameter: q")
	}

	summary, err := h.svc.PriceHistory(ctx, input.Q)
	if err != nil {
		return nil, huma.Error500InternalServerError(err.Error())
	}

	return &PriceHistoryOutput{Body: *summary}, nil
}

// ChartData buckets completed sales into trailing 30/60/90-day windows.
func (h *HistoryHandler) ChartData(
	ctx context.Context,
	input *HistoryInput,
) (*ChartDataOutput, error) {
	if input.Q == "" {
		return nil, huma.Error400BadRequest("missing required parameter: q")
	}

	chart, err := h.svc.ChartData(ctx, input.Q)
	if err != nil {
		return nil, huma.Error500InternalServerError(err.Error())
	}

	out := &ChartDataOutput{}
	out.Body.Query = input.Q
	out.Body.Chart = chart
	return out, nil
}

// RegisterHistoryRoutes registers the statistics endpoints with the Huma API.
func RegisterHistoryRoutes(api huma.API, h *HistoryHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "price-history",
		Method:      http.MethodGet,
		Path:        "/price-history",
		Summary:     "Sold-price statistics",
		Description: "Aggregates completed-sale prices: count, average, min, max, median.",
		Tags:        []string{"stats"},
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.PriceHistory)

	huma.Register(api, huma.Operation{
		OperationID: "chart-data",
		Method:      http.MethodGet,
		Path:        "/chart-data",
		Summary:     "Sold-price chart windows",
		Description: "Buckets completed sales into trailing 30/60/90-day windows.",
		Tags:        []string{"stats"},
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.ChartData)
}
