package scraper

import (
	"regexp"
	"strings"

	"github.com/pauljones0/deal-link-bot/internal/util"
)

const (
	maxTitleLen = 60
	ellipsis    = "..."
)

var titleNoisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\s*-\s*Amazon\.in.*$`),
	regexp.MustCompile(`(?i)\s*:\s*Amazon\.in.*$`),
	regexp.MustCompile(`(?i)\s*\|\s*Flipkart\.com.*$`),
	regexp.MustCompile(`(?i)\s*-\s*Buy.*$`),
	regexp.MustCompile(`(?i)\s*\|\s*Buy.*$`),
	regexp.MustCompile(`(?i)Buy\s+.*?online.*?at.*?price.*?$`),
	regexp.MustCompile(`(?i)Shop\s+.*?online.*?$`),
	regexp.MustCompile(`(?i)\s*\|\s*Myntra.*$`),
	regexp.MustCompile(`(?i)\s*-\s*Meesho.*$`),
	regexp.MustCompile(`(?i)\s*\|\s*.*\.com.*$`),
	regexp.MustCompile(`(?i)\s*-\s*.*\.in.*$`),
	regexp.MustCompile(`(?i)MRP.*?₹.*?\d+`),
	regexp.MustCompile(`(?i)Price.*?₹.*?\d+`),
	regexp.MustCompile(`(?i)₹\d+.*?off`),
	regexp.MustCompile(`(?i)\d+%.*?off`),
	regexp.MustCompile(`(?i)discount.*?\d+`),
	regexp.MustCompile(`(?i)save.*?₹.*?\d+`),
}

var promoWords = map[string]bool{
	"offer": true, "deal": true, "sale": true, "discount": true, "exclusive": true,
	"limited": true, "special": true, "mrp": true, "price": true, "rs": true,
	"rupees": true, "off": true, "save": true, "best": true, "lowest": true,
	"original": true, "authentic": true, "genuine": true, "brand": true, "new": true,
	"latest": true,
}

// CleanTitle removes storefront boilerplate and promotional words from a page title and
// shortens it to at most 60 characters, cutting at a word boundary and appending "...".
func CleanTitle(title string) string {
	clean := util.CollapseWhitespace(title)
	for _, re := range titleNoisePatterns {
		clean = re.ReplaceAllString(clean, "")
	}

	var kept []string
	for _, word := range strings.Fields(clean) {
		if promoWords[strings.ToLower(strings.Trim(word, ".,:;!-|()"))] {
			continue
		}
		kept = append(kept, word)
	}

	return truncateAtWord(strings.Join(kept, " "), maxTitleLen)
}

func truncateAtWord(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	cut := string(r[:limit-len(ellipsis)])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,-|:") + ellipsis
}
