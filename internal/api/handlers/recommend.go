package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/grailfeed/grailfeed/internal/feed"
)

// RecommendHandler handles the similarity recommendation endpoint.
type RecommendHandler struct {
	svc *feed.Service
}

// NewRecommendHandler creates a new RecommendHandler.
func NewRecommendHandler(svc *feed.Service) *RecommendHandler {
	return &RecommendHandler{svc: svc}
}

// RecommendInput is the query surface of the recommend endpoint.
type RecommendInput struct {
	ItemID  string `query:"itemId"  doc:"Base item ID used as similarity basis"`
	Q       string `query:"q"       doc:"Override search query"`
	Limit   int    `query:"limit"   doc:"Maximum items to return (default 20)" minimum:"1" maximum:"100"`
	Country string `query:"country" doc:"Two-letter marketplace country code"`
}

// RecommendOutput is the response body for the recommend endpoint.
type RecommendOutput struct {
	Body struct {
		Items []feed.FeedItem `json:"items"`
		Count int             `json:"count"`
	}
}

// Recommend returns listings similar to a base item, scored by brand match,
// price proximity, and title word overlap, with deliberate jitter.
func (h *RecommendHandler) Recommend(
	ctx context.Context,
	input *RecommendInput,
) (*RecommendOutput, error) {
	items, err := h.svc.Recommend(ctx, input.ItemID, input.Q, input.Country, input.Limit)
	if err != nil {
		return nil, huma.Error500InternalServerError(err.Error())
	}

	out := &RecommendOutput{}
	out.Body.Items = items
	out.Body.Count = len(items)
	return out, nil
}

// RegisterRecommendRoutes registers the recommend endpoint with the Huma API.
func RegisterRecommendRoutes(api huma.API, h *RecommendHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "recommend",
		Method:      http.MethodGet,
		Path:        "/recommend",
		Summary:     "Recommend similar listings",
		Description: "Scores fashion listings against a base item by brand, price proximity, and title overlap.",
		Tags:        []string{"feed"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.Recommend)
}
