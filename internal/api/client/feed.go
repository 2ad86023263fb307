package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// FeedItem mirrors the API's normalized listing shape.
type FeedItem struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Currency  string  `json:"currency"`
	Image     string  `json:"image"`
	URL       string  `json:"url"`
	Condition string  `json:"condition"`
	Brand     string  `json:"brand"`
}

// ItemsResponse is the shared items+count response shape.
type ItemsResponse struct {
	Items []FeedItem `json:"items"`
	Count int        `json:"count"`
}

// SearchResponse is one page of search results.
type SearchResponse struct {
	Items []FeedItem `json:"items"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
	Total int        `json:"total"`
}

// PriceSummary mirrors the API's sold-price statistics shape.
type PriceSummary struct {
	Query   string  `json:"query"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Median  float64 `json:"median"`
}

// Trending fetches the trending feed.
func (c *Client) Trending(ctx context.Context, limit int) (*ItemsResponse, error) {
	path := "/trending"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var resp ItemsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, fmt.Errorf("fetching trending: %w", err)
	}
	return &resp, nil
}

// SearchParams control the search request.
type SearchParams struct {
	Sort    string
	Page    int
	Limit   int
	Country string
}

// Search fetches one page of filtered search results.
func (c *Client) Search(
	ctx context.Context,
	query string,
	p SearchParams,
) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	if p.Sort != "" {
		params.Set("sort", p.Sort)
	}
	if p.Page > 0 {
		params.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		params.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Country != "" {
		params.Set("country", p.Country)
	}

	var resp SearchResponse
	if err := c.get(ctx, "/thrift-search?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	return &resp, nil
}

// PriceHistory fetches sold-price statistics for the query.
func (c *Client) PriceHistory(ctx context.Context, query string) (*PriceSummary, error) {
	params := url.Values{}
	params.Set("q", query)

	var resp PriceSummary
	if err := c.get(ctx, "/price-history?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("fetching price history for %q: %w", query, err)
	}
	return &resp, nil
}
