package feed_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailfeed/grailfeed/internal/ebay"
	"github.com/grailfeed/grailfeed/internal/feed"
)

func TestService_Trending(t *testing.T) {
	t.Parallel()

	client := &stubClient{responses: map[string][]ebay.ItemSummary{
		"nike dunk": {
			listing("1", "Nike Dunk Low Panda", "95.00"),
			listing("2", "Nike Dunk High", "60.00"),
		},
		"vintage jacket": {
			listing("3", "Vintage Harrington Jacket", "40.00"),
			{ItemID: "4", Title: "Glass vase set"},
		},
	}}

	svc := newTestService(client, &stubFinding{},
		feed.WithSeeds([]string{"nike dunk", "vintage jacket"}),
	)

	items, err := svc.Trending(context.Background(), 0)
	require.NoError(t, err)

	// Non-fashion listings drop out; with jitter pinned to zero the rest
	// rank by price descending.
	require.Len(t, items, 3)
	assert.Equal(t, "Nike Dunk Low Panda", items[0].Title)
	assert.Equal(t, "Nike Dunk High", items[1].Title)
	assert.Equal(t, "Vintage Harrington Jacket", items[2].Title)
}

func TestService_TrendingDedupesByTitle(t *testing.T) {
	t.Parallel()

	// The same listing title surfaces under two seeds; only the first
	// occurrence survives.
	dupA := listing("1", "Carhartt Detroit Jacket", "80.00")
	dupB := listing("2", "Carhartt Detroit Jacket", "75.00")

	client := &stubClient{responses: map[string][]ebay.ItemSummary{
		"seed one": {dupA},
		"seed two": {dupB, listing("3", "Stussy Hoodie", "45.00")},
	}}

	svc := newTestService(client, &stubFinding{},
		feed.WithSeeds([]string{"seed one", "seed two"}),
	)

	items, err := svc.Trending(context.Background(), 0)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID)
}

func TestService_TrendingLimit(t *testing.T) {
	t.Parallel()

	client := &stubClient{responses: map[string][]ebay.ItemSummary{
		"seed": {
			listing("1", "Jacket one", "10.00"),
			listing("2", "Jacket two", "20.00"),
			listing("3", "Jacket three", "30.00"),
		},
	}}

	svc := newTestService(client, &stubFinding{}, feed.WithSeeds([]string{"seed"}))

	items, err := svc.Trending(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Jacket three", items[0].Title)
}

func TestService_TrendingSkipsFailingSeeds(t *testing.T) {
	t.Parallel()

	client := &stubClient{
		responses: map[string][]ebay.ItemSummary{
			"good seed": {listing("1", "Vintage Jacket", "40.00")},
		},
		errors: map[string]error{
			"bad seed": errors.New("upstream down"),
		},
	}

	svc := newTestService(client, &stubFinding{},
		feed.WithSeeds([]string{"bad seed", "good seed"}),
	)

	// A failing seed costs its slice of the pool, never the whole view.
	items, err := svc.Trending(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Vintage Jacket", items[0].Title)
}

func TestService_TrendingServedFromCache(t *testing.T) {
	t.Parallel()

	client := &stubClient{responses: map[string][]ebay.ItemSummary{
		"seed": {listing("1", "Vintage Jacket", "40.00")},
	}}

	svc := newTestService(client, &stubFinding{}, feed.WithSeeds([]string{"seed"}))
	ctx := context.Background()

	_, err := svc.Trending(ctx, 0)
	require.NoError(t, err)
	_, err = svc.Trending(ctx, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, client.callCount())
}

func TestService_WarmTrendingPopulatesCache(t *testing.T) {
	t.Parallel()

	client := &stubClient{responses: map[string][]ebay.ItemSummary{
		"seed": {listing("1", "Vintage Jacket", "40.00")},
	}}

	svc := newTestService(client, &stubFinding{}, feed.WithSeeds([]string{"seed"}))
	ctx := context.Background()

	svc.WarmTrending(ctx)
	require.Equal(t, 1, client.callCount())

	// The warmed entry serves the next trending view without upstream.
	_, err := svc.Trending(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, client.callCount())
}
