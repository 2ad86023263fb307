package feed

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/grailfeed/grailfeed/internal/ebay"
)

const (
	historyPageSize = 100
	chartPageSize   = 120
)

// chartWindows are the trailing day windows reported by the chart view.
var chartWindows = []int{30, 60, 90}

// PriceSummary aggregates completed-sale prices for a query.
type PriceSummary struct {
	Query   string  `json:"query"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Median  float64 `json:"median"`
}

// WindowSummary aggregates completed sales inside one trailing day window.
type WindowSummary struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// PriceHistory queries the legacy completed-items endpoint and aggregates
// sale prices across the returned samples.
func (s *Service) PriceHistory(ctx context.Context, query string) (*PriceSummary, error) {
	sold, err := s.completedSales(ctx, query, historyPageSize)
	if err != nil {
		return nil, err
	}

	prices := lo.Map(sold, func(it ebay.SoldItem, _ int) float64 {
		return it.Price
	})

	summary := summarizePrices(prices)
	summary.Query = query
	return summary, nil
}

// ChartData buckets completed sales into trailing 30/60/90-day windows
// relative to the request time. A window with no sales maps to nil.
func (s *Service) ChartData(
	ctx context.Context,
	query string,
) (map[string]*WindowSummary, error) {
	sold, err := s.completedSales(ctx, query, chartPageSize)
	if err != nil {
		return nil, err
	}

	now := s.nowFunc()
	chart := make(map[string]*WindowSummary, len(chartWindows))

	for _, days := range chartWindows {
		cutoff := now.AddDate(0, 0, -days)
		var prices []float64
		for _, it := range sold {
			// Inclusive window boundary.
			if !it.EndedAt.Before(cutoff) {
				prices = append(prices, it.Price)
			}
		}

		key := fmt.Sprintf("%dd", days)
		if len(prices) == 0 {
			chart[key] = nil
			continue
		}

		sum := summarizePrices(prices)
		chart[key] = &WindowSummary{
			Count:   sum.Count,
			Average: sum.Average,
			Min:     sum.Min,
			Max:     sum.Max,
		}
	}

	return chart, nil
}

func (s *Service) completedSales(
	ctx context.Context,
	query string,
	perPage int,
) ([]ebay.SoldItem, error) {
	items, err := s.finding.FindCompleted(ctx, ebay.CompletedRequest{
		Keywords: query,
		PerPage:  perPage,
	})
	if err != nil {
		return nil, fmt.Errorf("completed-items search %q: %w", query, err)
	}

	return lo.Filter(items, func(it ebay.SoldItem, _ int) bool {
		return it.Sold
	}), nil
}

func summarizePrices(prices []float64) *PriceSummary {
	if len(prices) == 0 {
		return &PriceSummary{}
	}

	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	var sum float64
	for _, p := range sorted {
		sum += p
	}

	return &PriceSummary{
		Count:   len(sorted),
		Average: round2(sum / float64(len(sorted))),
		Min:     sorted[0],
		Max:     sorted[len(sorted)-1],
		Median:  median(sorted),
	}
}

// median of a sorted slice: the middle value for odd counts, the mean of the
// two middle values for even counts.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
