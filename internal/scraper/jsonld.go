package scraper

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pauljones0/deal-link-bot/internal/util"
)

// JSONLDProduct is the subset of a schema.org Product block embedded in product pages.
// Offers may be a single object or an array, and prices may be strings or numbers.
type JSONLDProduct struct {
	Type   json.RawMessage `json:"@type"`
	Name   string          `json:"name"`
	Offers json.RawMessage `json:"offers"`
}

type JSONLDOffer struct {
	Price    json.RawMessage `json:"price"`
	LowPrice json.RawMessage `json:"lowPrice"`
}

func (p JSONLDProduct) isProduct() bool {
	var single string
	if json.Unmarshal(p.Type, &single) == nil {
		return strings.EqualFold(single, "Product")
	}
	var many []string
	if json.Unmarshal(p.Type, &many) == nil {
		for _, t := range many {
			if strings.EqualFold(t, "Product") {
				return true
			}
		}
	}
	return false
}

func (p JSONLDProduct) offers() []JSONLDOffer {
	var one JSONLDOffer
	if json.Unmarshal(p.Offers, &one) == nil {
		return []JSONLDOffer{one}
	}
	var many []JSONLDOffer
	_ = json.Unmarshal(p.Offers, &many)
	return many
}

// Price returns the first offer price within range.
func (p JSONLDProduct) Price() string {
	for _, o := range p.offers() {
		for _, raw := range []json.RawMessage{o.Price, o.LowPrice} {
			if price, ok := parseJSONPrice(raw); ok {
				return price
			}
		}
	}
	return ""
}

func parseJSONPrice(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if json.Unmarshal(raw, &s) != nil {
		var f float64
		if json.Unmarshal(raw, &f) != nil {
			return "", false
		}
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	// Drop the fractional part; deal prices are whole rupees.
	if whole, _, found := strings.Cut(s, "."); found {
		s = whole
	}
	return util.ParsePrice(s)
}

// findJSONLDProducts decodes every ld+json script on the page and returns the Product
// entries, including those nested in an @graph.
func findJSONLDProducts(doc *goquery.Document) []JSONLDProduct {
	var products []JSONLDProduct
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		raw := []byte(strings.TrimSpace(s.Text()))
		for _, candidate := range jsonLDCandidates(raw) {
			var p JSONLDProduct
			if json.Unmarshal(candidate, &p) == nil && p.isProduct() {
				products = append(products, p)
			}
		}
	})
	return products
}

func jsonLDCandidates(raw []byte) []json.RawMessage {
	var list []json.RawMessage
	if json.Unmarshal(raw, &list) == nil {
		return list
	}
	var graph struct {
		Graph []json.RawMessage `json:"@graph"`
	}
	if json.Unmarshal(raw, &graph) == nil && len(graph.Graph) > 0 {
		return graph.Graph
	}
	return []json.RawMessage{raw}
}
