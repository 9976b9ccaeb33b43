package scraper

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pauljones0/deal-link-bot/internal/extractor"
	"github.com/pauljones0/deal-link-bot/internal/models"
	"github.com/pauljones0/deal-link-bot/internal/platform"
	"github.com/pauljones0/deal-link-bot/internal/util"
)

const (
	minTitleCandidateLen = 5
	maxTitleCandidateLen = 200
	maxSizes             = 5
)

var (
	markupPricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)[₹]\s*(\d+(?:,\d+)*)`),
		regexp.MustCompile(`(?i)"price"[:\s]*"?(\d+(?:,\d+)*)`),
		regexp.MustCompile(`(?i)₹(\d+(?:,\d+)*)`),
		regexp.MustCompile(`(?i)Rs\.?\s*(\d+(?:,\d+)*)`),
		regexp.MustCompile(`(?i)\bprice["\s]*[:=]\s*["\s]*(\d+(?:,\d+)*)`),
		regexp.MustCompile(`(?i)MRP[:\s]*[₹Rs\.]*\s*(\d+(?:,\d+)*)`),
		regexp.MustCompile(`(?i)current[_\s]*price["\s]*[:=]\s*["\s]*(\d+(?:,\d+)*)`),
	}
	numericRun = regexp.MustCompile(`\d+(?:,\d+)*`)

	sizePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(S|M|L|XL|XXL|XXXL|2XL|3XL)\b`),
		regexp.MustCompile(`(?i)\bSize[:\s]+(S|M|L|XL|XXL|XXXL|2XL|3XL)\b`),
	}
)

// extractProduct pulls product attributes out of one parsed page. html is the decoded
// markup the document was built from.
func extractProduct(doc *goquery.Document, html string, p platform.Platform, sel PageSelectors) models.ScrapedInfo {
	info := models.ScrapedInfo{Platform: p}

	products := findJSONLDProducts(doc)

	info.Title = extractTitle(doc, sel.Title)
	if info.Title == "" {
		info.Title = jsonLDTitle(products)
	}
	info.Price = extractSelectorPrice(doc, sel.Price)
	if info.Price == "" {
		info.Price = jsonLDPrice(products)
	}
	if info.Price == "" {
		info.Price = extractMarkupPrice(html)
	}

	if p.IsSizeBearing() {
		info.Sizes = extractSizes(html)
		info.Pin = extractor.DetectPin(html)
	}

	if info.Title != "" {
		info.Brand = extractor.DetectBrand(info.Title)
		info.Gender = extractor.DetectGender(info.Title)
		info.Quantity = extractor.DetectQuantity(info.Title)
	}
	return info
}

func extractTitle(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		var title string
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			var text string
			if strings.HasPrefix(selector, "meta") {
				text, _ = s.Attr("content")
			} else {
				text = s.Text()
			}
			text = util.CollapseWhitespace(text)

			n := len([]rune(text))
			if n <= minTitleCandidateLen || n >= maxTitleCandidateLen {
				return true
			}
			title = CleanTitle(text)
			return title == ""
		})
		if title != "" {
			return title
		}
	}
	return ""
}

func jsonLDTitle(products []JSONLDProduct) string {
	for _, p := range products {
		name := util.CollapseWhitespace(p.Name)
		n := len([]rune(name))
		if n <= minTitleCandidateLen || n >= maxTitleCandidateLen {
			continue
		}
		if title := CleanTitle(name); title != "" {
			return title
		}
	}
	return ""
}

func jsonLDPrice(products []JSONLDProduct) string {
	for _, p := range products {
		if price := p.Price(); price != "" {
			return price
		}
	}
	return ""
}

func extractSelectorPrice(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		var price string
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			m := numericRun.FindString(s.Text())
			if m == "" {
				return true
			}
			if p, ok := util.ParsePrice(m); ok {
				price = p
				return false
			}
			return true
		})
		if price != "" {
			return price
		}
	}
	return ""
}

func extractMarkupPrice(html string) string {
	for _, re := range markupPricePatterns {
		for _, m := range re.FindAllStringSubmatch(html, -1) {
			if p, ok := util.ParsePrice(m[1]); ok {
				return p
			}
		}
	}
	return ""
}

// extractSizes collects up to maxSizes distinct size tokens, sorted.
func extractSizes(html string) []string {
	seen := make(map[string]bool)
	var sizes []string
	for _, re := range sizePatterns {
		for _, m := range re.FindAllStringSubmatch(html, -1) {
			size := strings.ToUpper(m[1])
			if seen[size] {
				continue
			}
			seen[size] = true
			sizes = append(sizes, size)
			if len(sizes) >= maxSizes {
				sort.Strings(sizes)
				return sizes
			}
		}
	}
	sort.Strings(sizes)
	return sizes
}
