package feed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/grailfeed/grailfeed/internal/cache"
	"github.com/grailfeed/grailfeed/internal/ebay"
)

const (
	defaultCacheTTL       = 5 * time.Minute
	defaultUpstreamLimit  = 200
	defaultPageSize       = 20
	defaultTrendingLimit  = 40
	defaultRecommendLimit = 20
)

// Service orchestrates the cached search gateway and the derived feed views.
// All shared state (token, cache) lives in the injected collaborators, so a
// single Service is safe for concurrent handlers.
type Service struct {
	client     ebay.Client
	finding    ebay.CompletedSearcher
	cache      *cache.Cache
	classifier *Classifier
	log        *slog.Logger

	cacheTTL      time.Duration
	upstreamLimit int
	seeds         []string
	jitter        func(max float64) float64
	nowFunc       func() time.Time
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithCacheTTL overrides the default 5-minute result cache TTL.
func WithCacheTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		s.cacheTTL = ttl
	}
}

// WithSeeds overrides the default trending seed queries.
func WithSeeds(seeds []string) ServiceOption {
	return func(s *Service) {
		if len(seeds) > 0 {
			s.seeds = seeds
		}
	}
}

// WithJitter overrides the random jitter source used by trending and
// recommendation scoring. Tests pin it for determinism.
func WithJitter(f func(max float64) float64) ServiceOption {
	return func(s *Service) {
		s.jitter = f
	}
}

// WithServiceNowFunc overrides the time function for testing.
func WithServiceNowFunc(f func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowFunc = f
	}
}

// WithUpstreamLimit overrides the per-query upstream result limit.
func WithUpstreamLimit(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.upstreamLimit = n
		}
	}
}

// NewService creates the feed service.
func NewService(
	client ebay.Client,
	finding ebay.CompletedSearcher,
	store *cache.Cache,
	classifier *Classifier,
	log *slog.Logger,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		client:        client,
		finding:       finding,
		cache:         store,
		classifier:    classifier,
		log:           log,
		cacheTTL:      defaultCacheTTL,
		upstreamLimit: defaultUpstreamLimit,
		seeds:         defaultSeeds,
		jitter:        func(max float64) float64 { return rand.Float64() * max },
		nowFunc:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// searchListings is the cached search gateway: cache hit returns the stored
// items, a miss goes upstream and stores the raw result set under a key
// composed from marketplace, query, and the extra parameters.
func (s *Service) searchListings(
	ctx context.Context,
	req ebay.SearchRequest,
) ([]ebay.ItemSummary, error) {
	if req.Limit <= 0 {
		req.Limit = s.upstreamLimit
	}

	key := strings.Join([]string{
		ebay.MarketplaceFor(req.CountryCode),
		req.Query,
		req.GTIN,
		req.CategoryIDs,
		req.Sort,
		strconv.Itoa(req.Limit),
	}, "|")

	if v, ok := s.cache.Get(key); ok {
		return v.([]ebay.ItemSummary), nil
	}

	resp, err := s.client.Search(ctx, req)
	if err != nil {
		return nil, err
	}

	s.cache.Set(key, resp.Items, s.cacheTTL)
	return resp.Items, nil
}

// fashionOnly filters listings through the classifier.
func (s *Service) fashionOnly(items []ebay.ItemSummary) []ebay.ItemSummary {
	return lo.Filter(items, func(it ebay.ItemSummary, _ int) bool {
		return s.classifier.IsFashion(it)
	})
}

// SearchParams control the paginated search view.
type SearchParams struct {
	Country string
	Sort    string // "price_low", "price_high", "newest", or "" for upstream order
	Page    int    // 1-based, default 1
	Limit   int    // page size, default 20
}

// SearchPage is one page of filtered, sorted search results.
type SearchPage struct {
	Items []FeedItem `json:"items"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
	Total int        `json:"total"`
}

// Search runs a single query through the gateway, filters it to fashion
// listings, sorts, and offset-paginates.
func (s *Service) Search(
	ctx context.Context,
	query string,
	p SearchParams,
) (*SearchPage, error) {
	items, err := s.searchListings(ctx, ebay.SearchRequest{
		Query:       query,
		CountryCode: p.Country,
	})
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}

	filtered := s.fashionOnly(items)
	sortListings(filtered, p.Sort)

	page := p.Page
	if page < 1 {
		page = 1
	}
	limit := p.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	start := (page - 1) * limit
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + limit
	if end > len(filtered) {
		end = len(filtered)
	}

	return &SearchPage{
		Items: normalizeAll(filtered[start:end]),
		Page:  page,
		Limit: limit,
		Total: len(filtered),
	}, nil
}

func sortListings(items []ebay.ItemSummary, order string) {
	switch order {
	case "price_low":
		sort.SliceStable(items, func(i, j int) bool {
			return priceOf(items[i]) < priceOf(items[j])
		})
	case "price_high":
		sort.SliceStable(items, func(i, j int) bool {
			return priceOf(items[i]) > priceOf(items[j])
		})
	case "newest":
		sort.SliceStable(items, func(i, j int) bool {
			return creationOf(items[i]).After(creationOf(items[j]))
		})
	}
}

func creationOf(item ebay.ItemSummary) time.Time {
	t, err := time.Parse(time.RFC3339, item.ItemCreationDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

func normalizeAll(items []ebay.ItemSummary) []FeedItem {
	return lo.Map(items, func(it ebay.ItemSummary, _ int) FeedItem {
		return Normalize(it)
	})
}

// LookupResult is the barcode lookup response.
type LookupResult struct {
	Items    []FeedItem `json:"items"`
	Fallback bool       `json:"fallback"`
}

// Lookup searches by GTIN; when the filtered result set is empty it falls
// back to treating the code as a free-text query and flags the response.
func (s *Service) Lookup(
	ctx context.Context,
	code, country string,
) (*LookupResult, error) {
	items, err := s.searchListings(ctx, ebay.SearchRequest{
		GTIN:        code,
		CountryCode: country,
	})
	if err != nil {
		return nil, fmt.Errorf("gtin lookup %q: %w", code, err)
	}

	filtered := s.fashionOnly(items)
	if len(filtered) > 0 {
		return &LookupResult{Items: normalizeAll(filtered)}, nil
	}

	items, err = s.searchListings(ctx, ebay.SearchRequest{
		Query:       code,
		CountryCode: country,
	})
	if err != nil {
		return nil, fmt.Errorf("lookup fallback %q: %w", code, err)
	}

	return &LookupResult{
		Items:    normalizeAll(s.fashionOnly(items)),
		Fallback: true,
	}, nil
}
