package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/grailfeed/grailfeed/internal/cache"
	"github.com/grailfeed/grailfeed/internal/ebay"
	"github.com/grailfeed/grailfeed/internal/feed"
)

// stubClient implements ebay.Client with canned responses keyed by query
// (or "gtin:<code>" for barcode searches).
type stubClient struct {
	mu        sync.Mutex
	responses map[string][]ebay.ItemSummary
	errors    map[string]error

	item    *ebay.Item
	itemErr error
}

func (s *stubClient) Search(
	_ context.Context,
	req ebay.SearchRequest,
) (*ebay.SearchResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := req.Query
	if req.GTIN != "" {
		key = "gtin:" + req.GTIN
	}

	if err, ok := s.errors[key]; ok {
		return nil, err
	}

	items := s.responses[key]
	return &ebay.SearchResponse{Items: items, Total: len(items)}, nil
}

func (s *stubClient) GetItem(context.Context, string) (*ebay.Item, error) {
	return s.item, s.itemErr
}

// stubFinding implements ebay.CompletedSearcher.
type stubFinding struct {
	items []ebay.SoldItem
	err   error
}

func (s *stubFinding) FindCompleted(
	context.Context,
	ebay.CompletedRequest,
) ([]ebay.SoldItem, error) {
	return s.items, s.err
}

// newService builds a feed.Service over the stubs with jitter pinned to
// zero for deterministic ordering.
func newService(
	client ebay.Client,
	finding ebay.CompletedSearcher,
	opts ...feed.ServiceOption,
) *feed.Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	base := []feed.ServiceOption{
		feed.WithJitter(func(float64) float64 { return 0 }),
	}
	return feed.NewService(
		client,
		finding,
		cache.New(),
		feed.NewClassifier(false),
		log,
		append(base, opts...)...,
	)
}

// fashionListing builds a listing that passes classification.
func fashionListing(id, title, price string) ebay.ItemSummary {
	return ebay.ItemSummary{
		ItemID: id,
		Title:  title,
		Price:  ebay.ItemPrice{Value: price, Currency: "USD"},
	}
}
