package feed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailfeed/grailfeed/internal/ebay"
)

func TestService_RecommendRanksByBrandAndPrice(t *testing.T) {
	t.Parallel()

	base := &ebay.Item{
		ItemID: "v1|base|0",
		Title:  "Carhartt Detroit Jacket",
		Brand:  "Carhartt",
		Price:  ebay.ItemPrice{Value: "80.00", Currency: "USD"},
	}

	brandAndPrice := listing("1", "Carhartt Chore Jacket", "82.00")
	brandAndPrice.Brand = "Carhartt"
	priceOnly := listing("2", "Dickies Work Jacket", "78.00")
	priceOnly.Brand = "Dickies"
	farOff := listing("3", "Budget windbreaker", "5.00")

	client := &stubClient{
		item: base,
		responses: map[string][]ebay.ItemSummary{
			"Carhartt Carhartt Detroit Jacket": {farOff, priceOnly, brandAndPrice},
		},
	}

	svc := newTestService(client, &stubFinding{})

	items, err := svc.Recommend(context.Background(), "v1|base|0", "", "", 0)
	require.NoError(t, err)

	require.Len(t, items, 3)
	assert.Equal(t, "Carhartt Chore Jacket", items[0].Title)
	assert.Equal(t, "Dickies Work Jacket", items[1].Title)
	assert.Equal(t, "Budget windbreaker", items[2].Title)
}

func TestService_RecommendExcludesBaseItem(t *testing.T) {
	t.Parallel()

	base := &ebay.Item{
		ItemID: "v1|base|0",
		Title:  "Vintage Jacket",
		Price:  ebay.ItemPrice{Value: "40.00"},
	}

	self := listing("v1|base|0", "Vintage Jacket", "40.00")
	other := listing("v1|other|0", "Vintage Jacket Blue", "42.00")

	client := &stubClient{
		item: base,
		responses: map[string][]ebay.ItemSummary{
			"Vintage Jacket": {self, other},
		},
	}

	svc := newTestService(client, &stubFinding{})

	items, err := svc.Recommend(context.Background(), "v1|base|0", "", "", 0)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "v1|other|0", items[0].ID)
}

func TestService_RecommendExplicitQueryWins(t *testing.T) {
	t.Parallel()

	client := &stubClient{responses: map[string][]ebay.ItemSummary{
		"stussy hoodie": {listing("1", "Stussy 8-Ball Hoodie", "60.00")},
	}}

	svc := newTestService(client, &stubFinding{})

	items, err := svc.Recommend(context.Background(), "", "stussy hoodie", "", 0)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "stussy hoodie", client.lastCall().Query)
}

func TestService_RecommendFallbackQuery(t *testing.T) {
	t.Parallel()

	// No base item and no query: the generic fashion query drives the
	// search.
	client := &stubClient{responses: map[string][]ebay.ItemSummary{
		"vintage jacket": {listing("1", "Vintage Jacket", "40.00")},
	}}

	svc := newTestService(client, &stubFinding{})

	items, err := svc.Recommend(context.Background(), "", "", "", 0)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "vintage jacket", client.lastCall().Query)
}

func TestService_RecommendBaseItemFetchFailure(t *testing.T) {
	t.Parallel()

	client := &stubClient{
		itemErr: &ebay.SearchError{Status: 404, Message: "no such item"},
	}

	svc := newTestService(client, &stubFinding{})

	_, err := svc.Recommend(context.Background(), "v1|missing|0", "", "", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching base item")
}

func TestService_RecommendLimit(t *testing.T) {
	t.Parallel()

	client := &stubClient{responses: map[string][]ebay.ItemSummary{
		"vintage jacket": {
			listing("1", "Vintage Jacket A", "40.00"),
			listing("2", "Vintage Jacket B", "42.00"),
			listing("3", "Vintage Jacket C", "44.00"),
		},
	}}

	svc := newTestService(client, &stubFinding{})

	items, err := svc.Recommend(context.Background(), "", "", "", 2)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
