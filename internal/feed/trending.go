package feed

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"github.com/grailfeed/grailfeed/internal/ebay"
	"github.com/grailfeed/grailfeed/internal/metrics"
)

// defaultSeeds are the queries pooled into the trending feed. Overridable
// via config (WithSeeds).
var defaultSeeds = []string{
	"nike dunk",
	"vintage jacket",
	"carhartt jacket",
	"y2k jeans",
	"levis 501",
	"north face puffer",
	"patagonia fleece",
	"vintage band tee",
	"adidas samba",
	"ralph lauren knit",
	"stussy hoodie",
	"dr martens boots",
	"dickies workwear",
	"vintage windbreaker",
}

type scoredItem struct {
	item  ebay.ItemSummary
	score float64
}

// Trending pools the seed queries, filters and dedupes the results, and
// returns the top listings scored by price plus random jitter in [0,10).
// The jitter makes ordering non-deterministic across calls on purpose.
// A failing seed query is logged and skipped; the view returns whatever
// partial pool accumulated.
func (s *Service) Trending(ctx context.Context, limit int) ([]FeedItem, error) {
	if limit <= 0 {
		limit = defaultTrendingLimit
	}

	var pool []ebay.ItemSummary
	for _, seed := range s.seeds {
		items, err := s.searchListings(ctx, ebay.SearchRequest{Query: seed})
		if err != nil {
			metrics.TrendingSeedFailuresTotal.Inc()
			s.log.Warn("trending seed query failed", "query", seed, "error", err)
			continue
		}
		pool = append(pool, items...)
	}

	pool = s.fashionOnly(pool)

	// Dedupe by exact title, first occurrence wins.
	pool = lo.UniqBy(pool, func(it ebay.ItemSummary) string {
		return it.Title
	})

	scored := lo.Map(pool, func(it ebay.ItemSummary, _ int) scoredItem {
		return scoredItem{item: it, score: priceOf(it) + s.jitter(10)}
	})

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	return lo.Map(scored, func(sc scoredItem, _ int) FeedItem {
		return Normalize(sc.item)
	}), nil
}

// WarmTrending re-runs the seed queries through the gateway so their cache
// entries stay fresh. Used by the cron warmer; errors are logged per seed.
func (s *Service) WarmTrending(ctx context.Context) {
	for _, seed := range s.seeds {
		if _, err := s.searchListings(ctx, ebay.SearchRequest{Query: seed}); err != nil {
			s.log.Warn("trending warm failed", "query", seed, "error", err)
		}
	}
}
