// Package feed implements the curated thrift-fashion feed: classification,
// normalization, the cached search gateway, and the derived views (trending,
// search, lookup, recommendations, sold-price statistics).
package feed

import (
	"strings"

	"github.com/grailfeed/grailfeed/internal/ebay"
)

// titleBlocklist rejects a listing outright, before any allowlist check.
// Substring matching against the lowercased title; collisions are accepted
// behavior.
var titleBlocklist = []string{
	"lego",
	"playmobil",
	"funko",
	"hot wheels",
	"diecast",
	"action figure",
	"pokemon",
	"trading card",
	"card game",
	"tcg",
	"psa graded",
	"phone case",
	"case for",
	"screen protector",
	"charger",
	"charging cable",
	"usb cable",
	"adapter",
	"headphone",
	"earbud",
	"sofa",
	"coffee table",
	"desk",
	"lamp",
	"curtain",
	"rug",
	"digital download",
	"ebook",
	"pdf",
	"wholesale",
	"job lot",
	"joblot",
	"bundle of",
	"lot of",
	"reseller bundle",
}

// titleAllowlist accepts a listing: style terms, garment terms, and brand
// terms, all matched as substrings.
var titleAllowlist = []string{
	// style
	"vintage", "retro", "y2k", "90s", "80s", "streetwear", "grunge",
	"boho", "preloved", "thrifted", "deadstock",
	// garments
	"jacket", "hoodie", "jeans", "denim", "dress", "skirt", "sweater",
	"jumper", "cardigan", "coat", "blazer", "t-shirt", "tee", "shirt",
	"sneaker", "trainers", "boots", "loafers", "bag", "tote", "scarf",
	"beanie", "fleece", "windbreaker", "tracksuit", "corduroy",
	"flannel", "leather", "puffer", "anorak",
	// brands
	"nike", "adidas", "carhartt", "levi", "ralph lauren",
	"tommy hilfiger", "patagonia", "north face", "stussy", "champion",
	"lacoste", "dickies", "dr martens", "burberry", "harley davidson",
}

// fashionCategoryIDs is the category allowlist consulted when category
// filtering is enabled. Rooted at eBay's Clothing, Shoes & Accessories tree.
var fashionCategoryIDs = map[string]struct{}{
	"11450":  {}, // Clothing, Shoes & Accessories
	"1059":   {}, // Men's Clothing
	"15724":  {}, // Women's Clothing
	"57988":  {}, // Men's Coats & Jackets
	"57989":  {}, // Men's Sweaters
	"63861":  {}, // Women's Coats & Jackets
	"63862":  {}, // Women's Dresses
	"93427":  {}, // Men's Shoes
	"3034":   {}, // Women's Shoes
	"155184": {}, // Men's Vintage Clothing
	"175759": {}, // Women's Vintage Clothing
	"4250":   {}, // Women's Bags & Handbags
}

// Classifier decides whether a listing belongs in the curated feed.
type Classifier struct {
	useCategories bool
}

// NewClassifier creates a Classifier. When useCategories is true, a listing
// whose title matches neither list is still accepted if any of its category
// IDs is a known fashion category.
func NewClassifier(useCategories bool) *Classifier {
	return &Classifier{useCategories: useCategories}
}

// IsFashion reports whether the listing belongs in the feed. A blocklisted
// title term rejects regardless of any other signal.
func (c *Classifier) IsFashion(item ebay.ItemSummary) bool {
	if item.Title == "" {
		return false
	}

	title := strings.ToLower(item.Title)

	for _, blocked := range titleBlocklist {
		if strings.Contains(title, blocked) {
			return false
		}
	}

	for _, allowed := range titleAllowlist {
		if strings.Contains(title, allowed) {
			return true
		}
	}

	if c.useCategories {
		for _, cat := range item.Categories {
			if _, ok := fashionCategoryIDs[cat.CategoryID]; ok {
				return true
			}
		}
	}

	return false
}
