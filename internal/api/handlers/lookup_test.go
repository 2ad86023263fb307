package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailfeed/grailfeed/internal/api/handlers"
	"github.com/grailfeed/grailfeed/internal/ebay"
	"github.com/grailfeed/grailfeed/internal/feed"
)

func TestLookupHandler(t *testing.T) {
	t.Parallel()

	client := &stubClient{
		responses: map[string][]ebay.ItemSummary{
			"gtin:0190839238467": {fashionListing("1", "Nike Dunk Low", "95.00")},
			// This code finds nothing by barcode but does as keywords.
			"gtin:11111111": {},
			"11111111":      {fashionListing("2", "Vintage Jacket 11111111", "40.00")},
		},
		errors: map[string]error{
			"gtin:broken": &ebay.SearchError{Status: 503, Message: "upstream down"},
		},
	}

	_, api := humatest.New(t)
	handlers.RegisterLookupRoutes(api, handlers.NewLookupHandler(newService(client, &stubFinding{})))

	t.Run("direct barcode hit", func(t *testing.T) {
		resp := api.Get("/lookup?code=0190839238467")
		require.Equal(t, http.StatusOK, resp.Code)

		var result feed.LookupResult
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))

		assert.False(t, result.Fallback)
		require.Len(t, result.Items, 1)
		assert.Equal(t, "Nike Dunk Low", result.Items[0].Title)
	})

	t.Run("keyword fallback is flagged", func(t *testing.T) {
		resp := api.Get("/lookup?code=11111111")
		require.Equal(t, http.StatusOK, resp.Code)

		var result feed.LookupResult
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))

		assert.True(t, result.Fallback)
		require.Len(t, result.Items, 1)
	})

	t.Run("missing code is a 400", func(t *testing.T) {
		resp := api.Get("/lookup")
		require.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, resp.Body.String(), `"error":"missing required parameter: code"`)
	})

	t.Run("upstream failure is a 500", func(t *testing.T) {
		resp := api.Get("/lookup?code=broken")
		require.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.Contains(t, resp.Body.String(), "upstream down")
	})
}
