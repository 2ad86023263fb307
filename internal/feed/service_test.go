package feed_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailfeed/grailfeed/internal/cache"
	"github.com/grailfeed/grailfeed/internal/ebay"
	"github.com/grailfeed/grailfeed/internal/feed"
)

// stubClient implements ebay.Client for tests. Responses are keyed by the
// request's query (or GTIN when set); unknown keys answer an empty result.
type stubClient struct {
	mu        sync.Mutex
	responses map[string][]ebay.ItemSummary
	errors    map[string]error
	calls     []ebay.SearchRequest

	item    *ebay.Item
	itemErr error
}

func (s *stubClient) Search(
	_ context.Context,
	req ebay.SearchRequest,
) (*ebay.SearchResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req)

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

func (s *stubClient) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *stubClient) lastCall() ebay.SearchRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[len(s.calls)-1]
}

// stubFinding implements ebay.CompletedSearcher for tests.
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

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestService wires a Service with pinned jitter so ordering is
// deterministic.
func newTestService(
	client ebay.Client,
	finding ebay.CompletedSearcher,
	opts ...feed.ServiceOption,
) *feed.Service {
	base := []feed.ServiceOption{
		feed.WithJitter(func(float64) float64 { return 0 }),
	}
	return feed.NewService(
		client,
		finding,
		cache.New(),
		feed.NewClassifier(false),
		testLogger(),
		append(base, opts...)...,
	)
}

// listing builds a fashion listing with the given price.
func listing(id, title, price string) ebay.ItemSummary {
	return ebay.ItemSummary{
		ItemID: id,
		Title:  title,
		Price:  ebay.ItemPrice{Value: price, Currency: "USD"},
	}
}

func TestService_SearchFiltersAndNormalizes(t *testing.T) {
	t.Parallel()

	client := &stubClient{responses: map[string][]ebay.ItemSummary{
		"vintage jacket": {
			listing("1", "Vintage Harrington Jacket", "40.00"),
			{ItemID: "2", Title: "Garden gnome ornament"},
			listing("3", "Levis Denim Jacket", "55.00"),
		},
	}}

	svc := newTestService(client, &stubFinding{})

	page, err := svc.Search(context.Background(), "vintage jacket", feed.SearchParams{})
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.Limit)
	assert.Equal(t, "Vintage Harrington Jacket", page.Items[0].Title)
	assert.Equal(t, "Levis Denim Jacket", page.Items[1].Title)
}

func TestService_SearchPagination(t *testing.T) {
	t.Parallel()

	var items []ebay.ItemSummary
	for i := 0; i < 50; i++ {
		items = append(items, listing(
			strconv.Itoa(i),
			"Vintage Jacket #"+strconv.Itoa(i),
			"10.00",
		))
	}

	client := &stubClient{responses: map[string][]ebay.ItemSummary{
		"vintage jacket": items,
	}}
	svc := newTestService(client, &stubFinding{})

	// Page 2 at limit 20 covers filtered indices 20..39.
	page, err := svc.Search(context.Background(), "vintage jacket", feed.SearchParams{
		Page:  2,
		Limit: 20,
	})
	require.NoError(t, err)

	require.Len(t, page.Items, 20)
	assert.Equal(t, "Vintage Jacket #20", page.Items[0].Title)
	assert.Equal(t, "Vintage Jacket #39", page.Items[19].Title)
	assert.Equal(t, 50, page.Total)

	// The last partial page clamps to what remains.
	page, err = svc.Search(context.Background(), "vintage jacket", feed.SearchParams{
		Page:  3,
		Limit: 20,
	})
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)

	// Beyond the data an empty page comes back, not an error.
	page, err = svc.Search(context.Background(), "vintage jacket", feed.SearchParams{
		Page:  9,
		Limit: 20,
	})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 50, page.Total)
}

func TestService_SearchSortOrders(t *testing.T) {
	t.Parallel()

	client := &stubClient{responses: map[string][]ebay.ItemSummary{
		"jacket": {
			listing("1", "Jacket mid", "50.00"),
			listing("2", "Jacket cheap", "10.00"),
			listing("3", "Jacket dear", "90.00"),
		},
	}}
	svc := newTestService(client, &stubFinding{})

	page, err := svc.Search(context.Background(), "jacket", feed.SearchParams{
		Sort: "price_low",
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	for i := 1; i < len(page.Items); i++ {
		assert.GreaterOrEqual(t, page.Items[i].Price, page.Items[i-1].Price)
	}

	page, err = svc.Search(context.Background(), "jacket", feed.SearchParams{
		Sort: "price_high",
	})
	require.NoError(t, err)
	assert.Equal(t, 90.0, page.Items[0].Price)
	assert.Equal(t, 10.0, page.Items[2].Price)
}

func TestService_SearchSortNewest(t *testing.T) {
	t.Parallel()

	old := listing("1", "Jacket old", "10.00")
	old.ItemCreationDate = "2026-01-05T00:00:00.000Z"
	fresh := listing("2", "Jacket new", "10.00")
	fresh.ItemCreationDate = "2026-08-01T00:00:00.000Z"

	client := &stubClient{responses: map[string][]ebay.ItemSummary{
		"jacket": {old, fresh},
	}}
	svc := newTestService(client, &stubFinding{})

	page, err := svc.Search(context.Background(), "jacket", feed.SearchParams{
		Sort: "newest",
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Jacket new", page.Items[0].Title)
}

func TestService_SearchUsesCache(t *testing.T) {
	t.Parallel()

	client := &stubClient{responses: map[string][]ebay.ItemSummary{
		"jacket": {listing("1", "Vintage Jacket", "40.00")},
	}}
	svc := newTestService(client, &stubFinding{})
	ctx := context.Background()

	_, err := svc.Search(ctx, "jacket", feed.SearchParams{})
	require.NoError(t, err)
	_, err = svc.Search(ctx, "jacket", feed.SearchParams{Page: 2})
	require.NoError(t, err)

	// Both requests share one upstream fetch; pagination happens on the
	// cached raw result set.
	assert.Equal(t, 1, client.callCount())

	// A different marketplace is a different cache key.
	_, err = svc.Search(ctx, "jacket", feed.SearchParams{Country: "de"})
	require.NoError(t, err)
	assert.Equal(t, 2, client.callCount())
}

func TestService_SearchUpstreamError(t *testing.T) {
	t.Parallel()

	wantErr := &ebay.SearchError{Status: 503, Message: "down"}
	client := &stubClient{errors: map[string]error{"jacket": wantErr}}
	svc := newTestService(client, &stubFinding{})

	_, err := svc.Search(context.Background(), "jacket", feed.SearchParams{})
	require.Error(t, err)

	var searchErr *ebay.SearchError
	assert.ErrorAs(t, err, &searchErr)
}

func TestService_LookupDirectHit(t *testing.T) {
	t.Parallel()

	client := &stubClient{responses: map[string][]ebay.ItemSummary{
		"gtin:0190839238467": {listing("1", "Nike Dunk Low", "95.00")},
	}}
	svc := newTestService(client, &stubFinding{})

	res, err := svc.Lookup(context.Background(), "0190839238467", "")
	require.NoError(t, err)

	assert.False(t, res.Fallback)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Nike Dunk Low", res.Items[0].Title)
	assert.Equal(t, 1, client.callCount())
}

func TestService_LookupFallsBackToKeywordSearch(t *testing.T) {
	t.Parallel()

	client := &stubClient{responses: map[string][]ebay.ItemSummary{
		// GTIN search answers nothing usable; keyword search on the
		// raw code finds listings.
		"gtin:0190839238467": {},
		"0190839238467":      {listing("1", "Nike Dunk Low 0190839238467", "95.00")},
	}}
	svc := newTestService(client, &stubFinding{})

	res, err := svc.Lookup(context.Background(), "0190839238467", "")
	require.NoError(t, err)

	assert.True(t, res.Fallback)
	require.Len(t, res.Items, 1)
	assert.Equal(t, 2, client.callCount())
	assert.Equal(t, "0190839238467", client.lastCall().Query)
	assert.Empty(t, client.lastCall().GTIN)
}

func TestService_LookupFallbackWhenFilteredOut(t *testing.T) {
	t.Parallel()

	// The GTIN search returns listings, but none survive classification,
	// so the fallback still fires.
	client := &stubClient{responses: map[string][]ebay.ItemSummary{
		"gtin:12345": {{ItemID: "1", Title: "USB cable 2m"}},
		"12345":      {},
	}}
	svc := newTestService(client, &stubFinding{})

	res, err := svc.Lookup(context.Background(), "12345", "")
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Empty(t, res.Items)
}

func TestService_LookupUpstreamError(t *testing.T) {
	t.Parallel()

	client := &stubClient{errors: map[string]error{
		"gtin:12345": errors.New("boom"),
	}}
	svc := newTestService(client, &stubFinding{})

	_, err := svc.Lookup(context.Background(), "12345", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gtin lookup")
}
