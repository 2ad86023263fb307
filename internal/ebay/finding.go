package ebay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/grailfeed/grailfeed/internal/metrics"
)

const (
	defaultFindingURL = "https://svcs.ebay.com/services/search/FindingService/v1"
	findingVersion    = "1.13.0"
	findingTimeFormat = "2006-01-02T15:04:05.000Z"
)

// FindingClient implements CompletedSearcher against the legacy eBay Finding
// API (findCompletedItems). The endpoint authenticates with an application ID
// rather than OAuth, and returns XML-shaped-as-JSON where every field is
// wrapped in a single-element array. That shape is decoded here, once, into
// flat SoldItem values.
type FindingClient struct {
	appID      string
	findingURL string
	client     *http.Client
}

// FindingOption configures the FindingClient.
type FindingOption func(*FindingClient)

// WithFindingURL overrides the default Finding API endpoint.
func WithFindingURL(u string) FindingOption {
	return func(c *FindingClient) {
		c.findingURL = u
	}
}

// WithFindingHTTPClient overrides the default HTTP client.
func WithFindingHTTPClient(hc *http.Client) FindingOption {
	return func(c *FindingClient) {
		c.client = hc
	}
}

// NewFindingClient creates a Finding API client for the given application ID.
func NewFindingClient(appID string, opts ...FindingOption) *FindingClient {
	c := &FindingClient{
		appID:      appID,
		findingURL: defaultFindingURL,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Wire shapes. Every leaf is array-wrapped, e.g.
// sellingStatus[0].currentPrice[0].__value__.
type findingEnvelope struct {
	Responses []findingResponse `json:"findCompletedItemsResponse"`
}

type findingResponse struct {
	Ack          []string             `json:"ack"`
	SearchResult []findingSearchBlock `json:"searchResult"`
}

type findingSearchBlock struct {
	Items []findingItem `json:"item"`
}

type findingItem struct {
	Title         []string            `json:"title"`
	ViewItemURL   []string            `json:"viewItemURL"`
	GalleryURL    []string            `json:"galleryURL"`
	Condition     []findingCondition  `json:"condition"`
	SellingStatus []findingSellStatus `json:"sellingStatus"`
	ListingInfo   []findingListInfo   `json:"listingInfo"`
}

type findingCondition struct {
	DisplayName []string `json:"conditionDisplayName"`
}

type findingSellStatus struct {
	CurrentPrice []findingPrice `json:"currentPrice"`
	SellingState []string       `json:"sellingState"`
}

type findingPrice struct {
	CurrencyID string `json:"@currencyId"`
	Value      string `json:"__value__"`
}

type findingListInfo struct {
	EndTime []string `json:"endTime"`
}

// FindCompleted searches completed listings by keywords, restricted to sold
// items upstream. Items whose selling state marks a completed sale have
// Sold set; callers filter on it.
func (c *FindingClient) FindCompleted(
	ctx context.Context,
	req CompletedRequest,
) ([]SoldItem, error) {
	perPage := req.PerPage
	if perPage <= 0 {
		perPage = 100
	}

	params := url.Values{}
	params.Set("OPERATION-NAME", "findCompletedItems")
	params.Set("SERVICE-VERSION", findingVersion)
	params.Set("SECURITY-APPNAME", c.appID)
	params.Set("RESPONSE-DATA-FORMAT", "JSON")
	params.Set("REST-PAYLOAD", "")
	params.Set("keywords", req.Keywords)
	params.Set("paginationInput.entriesPerPage", strconv.Itoa(perPage))
	params.Set("itemFilter(0).name", "SoldItemsOnly")
	params.Set("itemFilter(0).value", "true")

	u := c.findingURL + "?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating finding request: %w", err)
	}

	metrics.UpstreamCallsTotal.Inc()

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing finding request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading finding response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &SearchError{Status: resp.StatusCode, Message: string(body)}
	}

	var envelope findingEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("parsing finding response: %w", err)
	}

	if len(envelope.Responses) == 0 {
		return nil, &SearchError{
			Status:  resp.StatusCode,
			Message: "finding response missing findCompletedItemsResponse",
		}
	}

	r := envelope.Responses[0]
	if ack := first(r.Ack); ack != "Success" && ack != "Warning" {
		return nil, &SearchError{Status: resp.StatusCode, Message: "finding ack " + ack}
	}

	if len(r.SearchResult) == 0 {
		return nil, nil
	}

	items := r.SearchResult[0].Items
	sold := make([]SoldItem, 0, len(items))
	for i := range items {
		sold = append(sold, toSoldItem(&items[i]))
	}
	return sold, nil
}

func toSoldItem(it *findingItem) SoldItem {
	s := SoldItem{
		Title:    first(it.Title),
		ItemURL:  first(it.ViewItemURL),
		ImageURL: first(it.GalleryURL),
	}

	if len(it.Condition) > 0 {
		s.Condition = first(it.Condition[0].DisplayName)
	}

	if len(it.SellingStatus) > 0 {
		ss := it.SellingStatus[0]
		s.Sold = first(ss.SellingState) == "EndedWithSales"
		if len(ss.CurrentPrice) > 0 {
			s.Currency = ss.CurrentPrice[0].CurrencyID
			if v, err := strconv.ParseFloat(ss.CurrentPrice[0].Value, 64); err == nil {
				s.Price = v
			}
		}
	}

	if len(it.ListingInfo) > 0 {
		if t, err := time.Parse(findingTimeFormat, first(it.ListingInfo[0].EndTime)); err == nil {
			s.EndedAt = t
		}
	}

	return s
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}
