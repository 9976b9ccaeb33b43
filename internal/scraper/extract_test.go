package scraper

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractSizes(t *testing.T) {
	tests := []struct {
		name string
		html string
		want []string
	}{
		{"Two sizes sorted", `<li>M</li><li>L</li>`, []string{"L", "M"}},
		{"Case folded and deduplicated", `<li>xl</li><li>XL</li><li>Size: s</li>`, []string{"S", "XL"}},
		{"Capped at five", `<li>S</li><li>M</li><li>L</li><li>XL</li><li>XXL</li><li>3XL</li>`, []string{"L", "M", "S", "XL", "XXL"}},
		{"None", `<p>one size fits</p>`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractSizes(tt.html))
		})
	}
}

func TestExtractMarkupPrice(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"Rupee symbol", `<b>₹ 1,499</b>`, "1499"},
		{"Skips out of range", `<b>₹5</b> <i>Rs. 799</i>`, "799"},
		{"MRP label", `MRP: 2,999`, "2999"},
		{"Current price key", `current_price = "650"`, "650"},
		{"Nothing", `<p>free</p>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractMarkupPrice(tt.html))
		})
	}
}

func TestExtractSelectorPrice_SkipsOutOfRange(t *testing.T) {
	doc := mustDoc(t, `<span class="a-price-whole">5</span><span class="a-price-whole">1,249.</span>`)
	assert.Equal(t, "1249", extractSelectorPrice(doc, []string{".a-price-whole"}))
	assert.Equal(t, "", extractSelectorPrice(doc, []string{".missing"}))
}

func TestExtractTitle_CandidateBounds(t *testing.T) {
	doc := mustDoc(t, `<html><head>
		<meta property="og:title" content="Adidas Ultraboost Running Shoes">
		</head><body><h1>Shoe</h1><h1>`+strings.Repeat("x", 250)+`</h1></body></html>`)

	got := extractTitle(doc, []string{"h1", `meta[property="og:title"]`})
	assert.Equal(t, "Adidas Ultraboost Running Shoes", got)
}

func TestExtractTitle_SkipsCandidatesThatCleanToNothing(t *testing.T) {
	doc := mustDoc(t, `<h1>Best Deal Offer Sale</h1><h1>Realme Narzo 60 Pro</h1>`)
	assert.Equal(t, "Realme Narzo 60 Pro", extractTitle(doc, []string{"h1"}))
}
