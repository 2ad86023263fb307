package ebay

import "strings"

// DefaultMarketplace is used when a country code is absent or unknown.
const DefaultMarketplace = "EBAY_US"

// marketplaces maps two-letter country codes to eBay marketplace IDs.
var marketplaces = map[string]string{
	"us": "EBAY_US",
	"gb": "EBAY_GB",
	"uk": "EBAY_GB",
	"de": "EBAY_DE",
	"fr": "EBAY_FR",
	"it": "EBAY_IT",
	"es": "EBAY_ES",
	"ca": "EBAY_CA",
	"au": "EBAY_AU",
	"at": "EBAY_AT",
	"be": "EBAY_BE",
	"ch": "EBAY_CH",
	"ie": "EBAY_IE",
	"nl": "EBAY_NL",
	"pl": "EBAY_PL",
	"hk": "EBAY_HK",
	"sg": "EBAY_SG",
	"my": "EBAY_MY",
}

// MarketplaceFor resolves a two-letter country code to an eBay marketplace
// ID. Lookup is case-insensitive; unknown or empty input falls back to
// DefaultMarketplace.
func MarketplaceFor(countryCode string) string {
	if m, ok := marketplaces[strings.ToLower(strings.TrimSpace(countryCode))]; ok {
		return m
	}
	return DefaultMarketplace
}
