package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/grailfeed/grailfeed/internal/feed"
)

// TrendingHandler handles the trending feed endpoint.
type TrendingHandler struct {
	svc *feed.Service
}

// NewTrendingHandler creates a new TrendingHandler.
func NewTrendingHandler(svc *feed.Service) *TrendingHandler {
	return &TrendingHandler{svc: svc}
}

// TrendingInput is the query surface of the trending endpoint.
type TrendingInput struct {
	Limit int `query:"limit" doc:"Maximum items to return (default 40)" minimum:"1" maximum:"200"`
}

// TrendingOutput is the response body for the trending endpoint.
type TrendingOutput struct {
	Body struct {
		Items []feed.FeedItem `json:"items"`
		Count int             `json:"count"`
	}
}

// Trending returns the highest-scoring curated listings across the seed
// queries. Ordering carries deliberate random jitter.
func (h *TrendingHandler) Trending(
	ctx context.Context,
	input *TrendingInput,
) (*TrendingOutput, error) {
	items, err := h.svc.Trending(ctx, input.Limit)
	if err != nil {
		return nil, huma.Error500InternalServerError(err.Error())
	}

	out := &TrendingOutput{}
	out.Body.Items = items
	out.Body.Count = len(items)
	return out, nil
}

// RegisterTrendingRoutes registers the trending endpoint with the Huma API.
func RegisterTrendingRoutes(api huma.API, h *TrendingHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "trending",
		Method:      http.MethodGet,
		Path:        "/trending",
		Summary:     "Trending thrift fashion listings",
		Description: "Pools the seed queries, filters, dedupes, and scores listings by price plus jitter.",
		Tags:        []string{"feed"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.Trending)
}
