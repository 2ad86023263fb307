package handlers

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/grailfeed/grailfeed/internal/feed"
)

// LookupHandler handles the barcode lookup endpoint.
type LookupHandler struct {
	svc *feed.Service
}

// NewLookupHandler creates a new LookupHandler.
func NewLookupHandler(svc *feed.Service) *LookupHandler {
	return &LookupHandler{svc: svc}
}

// LookupInput is the query surface of the lookup endpoint.
type LookupInput struct {
	Code    string `query:"code"    doc:"GTIN / barcode"                      example:"0190855473503"`
	Country string `query:"country" doc:"Two-letter marketplace country code"`
}

// LookupOutput is the response body for the lookup endpoint.
type LookupOutput struct {
	Body feed.LookupResult
}

// Lookup searches by GTIN, falling back to a free-text search on the code
// when the barcode search yields no fashion listings.
func (h *LookupHandler) Lookup(
	ctx context.Context,
	input *LookupInput,
) (*LookupOutput, error) {
	if input.Code == "" {
		return nil, huma.Error400BadRequest("missing required parameter: code")
	}

	result, err := h.svc.Lookup(ctx, input.Code, input.Country)
	if err != nil {
		return nil, huma.Error500InternalServerError(err.Error())
	}

	return &LookupOutput{Body: *result}, nil
}

// RegisterLookupRoutes registers the lookup endpoint with the Huma API.
func RegisterLookupRoutes(api huma.API, h *LookupHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "lookup",
		Method:      http.MethodGet,
		Path:        "/lookup",
		Summary:     "Look up listings by barcode",
		Description: "GTIN search with free-text fallback; fallback responses are flagged.",
		Tags:        []string{"feed"},
		Errors:      []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, h.Lookup)
}
