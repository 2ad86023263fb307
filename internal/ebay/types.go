package ebay

import "time"

// ItemSummary represents a single item from the Browse API search response.
type ItemSummary struct {
	ItemID           string         `json:"itemId"`
	Title            string         `json:"title"`
	Price            ItemPrice      `json:"price"`
	ItemWebURL       string         `json:"itemWebUrl"`
	Image            *ItemImage     `json:"image,omitempty"`
	Seller           *ItemSeller    `json:"seller,omitempty"`
	Condition        string         `json:"condition"`
	ConditionID      string         `json:"conditionId"`
	Brand            string         `json:"brand,omitempty"`
	Categories       []ItemCategory `json:"categories,omitempty"`
	ItemCreationDate string         `json:"itemCreationDate,omitempty"`
	WatchCount       int            `json:"watchCount,omitempty"`
}

// Item represents an item detail from the Browse API item endpoint. Only the
// fields the recommendation basis needs are decoded.
type Item struct {
	ItemID     string    `json:"itemId"`
	Title      string    `json:"title"`
	Brand      string    `json:"brand"`
	Price      ItemPrice `json:"price"`
	Condition  string    `json:"condition"`
	ItemWebURL string    `json:"itemWebUrl"`
}

// ItemPrice holds eBay price information.
type ItemPrice struct {
	Value    string `json:"value"`
	Currency string `json:"currency"`
}

// ItemImage holds eBay image information.
type ItemImage struct {
	ImageURL string `json:"imageUrl"`
}

// ItemSeller holds eBay seller information.
type ItemSeller struct {
	Username           string `json:"username"`
	FeedbackScore      int    `json:"feedbackScore"`
	FeedbackPercentage string `json:"feedbackPercentage"`
}

// ItemCategory holds eBay category information.
type ItemCategory struct {
	CategoryID string `json:"categoryId"`
}

// SoldItem is a completed sale decoded from the Finding API. The endpoint's
// array-wrapped JSON is unwrapped once at the client boundary; nothing past
// this type sees index-accessor paths.
type SoldItem struct {
	Title     string
	Price     float64
	Currency  string
	Condition string
	EndedAt   time.Time
	ItemURL   string
	ImageURL  string
	Sold      bool
}
