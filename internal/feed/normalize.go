package feed

import (
	"strconv"

	"github.com/grailfeed/grailfeed/internal/ebay"
)

// NoValue marks an optional field the upstream listing did not carry.
// Fields are always serialized so the client never has to probe for keys.
const NoValue = "N/A"

// FeedItem is the stable client-facing projection of an upstream listing.
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

// Normalize projects an upstream item summary into a FeedItem. Missing
// optional fields map to NoValue rather than being omitted.
func Normalize(item ebay.ItemSummary) FeedItem {
	f := FeedItem{
		ID:        item.ItemID,
		Title:     item.Title,
		Price:     priceOf(item),
		Currency:  item.Price.Currency,
		Image:     NoValue,
		URL:       item.ItemWebURL,
		Condition: NoValue,
		Brand:     NoValue,
	}

	if item.Image != nil && item.Image.ImageURL != "" {
		f.Image = item.Image.ImageURL
	}
	if item.Condition != "" {
		f.Condition = item.Condition
	}
	if item.Brand != "" {
		f.Brand = item.Brand
	}
	if f.Currency == "" {
		f.Currency = NoValue
	}

	return f
}

// priceOf parses the upstream string price; unparseable values read as 0.
func priceOf(item ebay.ItemSummary) float64 {
	v, err := strconv.ParseFloat(item.Price.Value, 64)
	if err != nil {
		return 0
	}
	return v
}
