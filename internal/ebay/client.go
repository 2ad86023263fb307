// Package ebay provides clients for the eBay APIs used by grailfeed: the
// Browse API for live listings and the legacy Finding API for completed
// sales. Both are abstracted behind interfaces for testability.
package ebay

import (
	"context"
)

// SearchRequest defines the parameters for a Browse API search.
type SearchRequest struct {
	Query       string
	GTIN        string // barcode lookup; takes precedence over Query upstream
	CountryCode string // two-letter country code, resolved to a marketplace
	CategoryIDs string // comma-separated eBay category IDs
	Sort        string // e.g. "newlyListed"
	Limit       int
	Offset      int
}

// SearchResponse holds the results of a Browse API search.
type SearchResponse struct {
	Items   []ItemSummary
	Total   int
	Offset  int
	Limit   int
	HasMore bool
}

// CompletedRequest defines the parameters for a Finding API
// completed-items search.
type CompletedRequest struct {
	Keywords string
	PerPage  int
}

// Client defines the Browse API surface grailfeed depends on.
type Client interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
	GetItem(ctx context.Context, itemID string) (*Item, error)
}

// CompletedSearcher defines the Finding API surface for sold-item lookups.
type CompletedSearcher interface {
	FindCompleted(ctx context.Context, req CompletedRequest) ([]SoldItem, error)
}

// TokenProvider defines the interface for obtaining OAuth2 bearer tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}
