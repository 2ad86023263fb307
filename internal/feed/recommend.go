package feed

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/grailfeed/grailfeed/internal/ebay"
)

const fallbackRecommendQuery = "vintage jacket"

// Score weights for recommendation candidates.
const (
	brandMatchScore    = 25.0
	priceProximityMax  = 15.0
	titleWordScore     = 2.0
	recommendJitterMax = 3.0
)

// Recommend returns listings similar to a base item. With an itemID the base
// item's title, brand, and price are fetched upstream as the similarity
// basis; the search query is the given one, else derived from the base
// item's brand and title, else a generic fashion query.
func (s *Service) Recommend(
	ctx context.Context,
	itemID, query, country string,
	limit int,
) ([]FeedItem, error) {
	if limit <= 0 {
		limit = defaultRecommendLimit
	}

	var base *ebay.Item
	if itemID != "" {
		item, err := s.client.GetItem(ctx, itemID)
		if err != nil {
			return nil, fmt.Errorf("fetching base item %q: %w", itemID, err)
		}
		base = item
	}

	if query == "" {
		query = baseQuery(base)
	}

	items, err := s.searchListings(ctx, ebay.SearchRequest{
		Query:       query,
		CountryCode: country,
	})
	if err != nil {
		return nil, fmt.Errorf("recommend search %q: %w", query, err)
	}

	candidates := s.fashionOnly(items)
	if base != nil {
		candidates = lo.Filter(candidates, func(it ebay.ItemSummary, _ int) bool {
			return it.ItemID != base.ItemID
		})
	}

	scored := lo.Map(candidates, func(it ebay.ItemSummary, _ int) scoredItem {
		return scoredItem{
			item:  it,
			score: s.similarity(base, it) + s.jitter(recommendJitterMax),
		}
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

// baseQuery derives a search query from the base item: brand plus the
// leading title words, or a generic fallback without a base.
func baseQuery(base *ebay.Item) string {
	if base == nil {
		return fallbackRecommendQuery
	}

	words := strings.Fields(base.Title)
	if len(words) > 4 {
		words = words[:4]
	}

	parts := words
	if base.Brand != "" {
		parts = append([]string{base.Brand}, words...)
	}

	q := strings.TrimSpace(strings.Join(parts, " "))
	if q == "" {
		return fallbackRecommendQuery
	}
	return q
}

// similarity scores a candidate against the base item: exact brand match,
// price proximity, and base-title word overlap. Without a base item only the
// jitter differentiates candidates.
func (s *Service) similarity(base *ebay.Item, candidate ebay.ItemSummary) float64 {
	if base == nil {
		return 0
	}

	var score float64

	if base.Brand != "" && strings.EqualFold(base.Brand, candidate.Brand) {
		score += brandMatchScore
	}

	score += priceProximity(base, candidate)

	candTitle := strings.ToLower(candidate.Title)
	for _, w := range strings.Fields(strings.ToLower(base.Title)) {
		if len(w) > 2 && strings.Contains(candTitle, w) {
			score += titleWordScore
		}
	}

	return score
}

// priceProximity contributes up to priceProximityMax, scaled down linearly
// by the candidate's relative price distance from the base. Zero when either
// price is 0.
func priceProximity(base *ebay.Item, candidate ebay.ItemSummary) float64 {
	basePrice, err := strconv.ParseFloat(base.Price.Value, 64)
	if err != nil || basePrice == 0 {
		return 0
	}

	candPrice := priceOf(candidate)
	if candPrice == 0 {
		return 0
	}

	ratio := math.Abs(candPrice-basePrice) / basePrice
	return math.Max(0, priceProximityMax-ratio*20)
}
