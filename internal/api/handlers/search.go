package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/grailfeed/grailfeed/internal/feed"
)

// SearchHandler handles the paginated thrift search endpoint.
type SearchHandler struct {
	svc *feed.Service
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(svc *feed.Service) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// ThriftSearchInput is the query surface of the search endpoint.
type ThriftSearchInput struct {
	Q       string `query:"q"       doc:"Search query"                        example:"vintage jacket"`
	Sort    string `query:"sort"    doc:"Sort order"                          enum:"price_low,price_high,newest,"`
	Page    int    `query:"page"    doc:"1-based page number (default 1)"     minimum:"1"`
	Limit   int    `query:"limit"   doc:"Page size (default 20)"              minimum:"1" maximum:"100"`
	Country string `query:"country" doc:"Two-letter marketplace country code" example:"de"`
}

// ThriftSearchOutput is the response body for the search endpoint.
type ThriftSearchOutput struct {
	Body feed.SearchPage
}

// Search runs a fashion-filtered, sorted, paginated search.
func (h *SearchHandler) Search(
	ctx context.Context,
	input *ThriftSearchInput,
) (*ThriftSearchOutput, error) {
	if input.Q == "" {
		return nil, huma.Error400BadRequest("missing required parameter: q")
	}

	page, err := h.svc.Search(ctx, input.Q, feed.SearchParams{
		Country: input.Country,
		Sort:    input.Sort,
		Page:    input.Page,
		Limit:   input.Limit,
	})
	if err != nil {
		return nil, huma.Error500InternalServerError(err.Error())
	}

	return &ThriftSearchOutput{Body: *page}, nil
}

// RegisterSearchRoutes registers the search endpoint with the Huma API.
func RegisterSearchRoutes(api huma.API, h *SearchHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "thrift-search",
		Method:      http.MethodGet,
		Path:        "/thrift-search",
		Summary:     "Search thrift fashion listings",
		Description: "Searches the marketplace, filters to fashion listings, sorts, and paginates.",
		Tags:        []string{"feed"},
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.Search)
}
