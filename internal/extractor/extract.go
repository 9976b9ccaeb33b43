// Package extractor parses product hints out of free-form message text.
// Every detector returns "" when nothing matches; none of them fail.
package extractor

import (
	"strings"

	"github.com/pauljones0/deal-link-bot/internal/links"
	"github.com/pauljones0/deal-link-bot/internal/models"
	"github.com/pauljones0/deal-link-bot/internal/util"
)

// Extract parses the manual product info from a chat message.
func Extract(text string) models.ManualInfo {
	return models.ManualInfo{
		Title:    DetectTitle(text),
		Price:    DetectPrice(text),
		Brand:    DetectBrand(text),
		Gender:   DetectGender(text),
		Quantity: DetectQuantity(text),
		Pin:      DetectPin(text),
	}
}

// DetectPrice returns the first price pattern hit whose value is within range.
func DetectPrice(text string) string {
	for _, re := range PricePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if price, ok := util.ParsePrice(m[1]); ok {
			return price
		}
	}
	return ""
}

func DetectPin(text string) string {
	if m := PinPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// DetectBrand returns the first known brand contained in text, ignoring case.
func DetectBrand(text string) string {
	lower := strings.ToLower(text)
	for _, brand := range KnownBrands {
		if strings.Contains(lower, strings.ToLower(brand)) {
			return brand
		}
	}
	return ""
}

// DetectGender returns the first category with a whole-word keyword hit.
func DetectGender(text string) string {
	for _, rule := range genderRules {
		for _, re := range rule.patterns {
			if re.MatchString(text) {
				return rule.category
			}
		}
	}
	return ""
}

func DetectQuantity(text string) string {
	for _, re := range QuantityPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m) > 1 {
			return strings.TrimSpace(m[1])
		}
		return strings.TrimSpace(m[0])
	}
	return ""
}

// DetectTitle strips links (with or without a scheme), prices and pin codes from text
// and keeps at most the first 60 characters of what remains. Remainders of 3 characters or fewer are dropped.
func DetectTitle(text string) string {
	title := links.StripLinks(text)
	for _, re := range PricePatterns {
		title = re.ReplaceAllString(title, "")
	}
	title = titlePinPattern.ReplaceAllString(title, "")
	title = util.CollapseWhitespace(title)

	if len([]rune(title)) <= 3 {
		return ""
	}
	return strings.TrimSpace(util.TruncateRunes(title, maxManualTitleLen))
}
