package extractor

import "regexp"

// Gender categories reported by DetectGender.
const (
	GenderMen   = "Men"
	GenderWomen = "Women"
	GenderKids  = "Kids"
)

// PricePatterns are tried in order; the first hit inside the price range wins.
var PricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)@\s*(\d+)\s*rs`),
	regexp.MustCompile(`(?i)₹\s*(\d+(?:,\d+)*)`),
	regexp.MustCompile(`(?i)Rs\.?\s*(\d+(?:,\d+)*)`),
	regexp.MustCompile(`(?i)price[:\s]+(\d+(?:,\d+)*)`),
	regexp.MustCompile(`(?i)(\d+)\s*rs\b`),
}

// PinPattern matches an Indian postal code. A leading zero is never valid.
var PinPattern = regexp.MustCompile(`\b([1-9]\d{5})\b`)

// KnownBrands is ordered by priority.
var KnownBrands = []string{
	"Lakme", "Maybelline", "L'Oreal", "MAC", "Revlon", "Nykaa", "Colorbar",
	"Nike", "Adidas", "Puma", "Reebok", "Converse", "Vans",
	"Samsung", "Apple", "OnePlus", "Xiaomi", "Realme", "Oppo", "Vivo",
	"Zara", "H&M", "Forever21", "Mango", "Uniqlo",
	"Mamaearth", "Wow", "Biotique", "Himalaya", "Patanjali",
	"Jockey", "Calvin Klein", "Tommy Hilfiger", "Allen Solly",
}

type genderRule struct {
	category string
	patterns []*regexp.Regexp
}

var genderRules = []genderRule{
	{GenderMen, wordPatterns("men", "men's", "male", "boy", "boys", "gents", "gentleman", "masculine", "mans", "guys", "him", "his", "father", "dad")},
	{GenderWomen, wordPatterns("women", "women's", "female", "girl", "girls", "ladies", "lady", "feminine", "womens", "her", "she", "mother", "mom")},
	{GenderKids, wordPatterns("kids", "children", "child", "baby", "infant", "toddler", "teen", "teenage", "junior", "youth")},
}

// QuantityPatterns are tried in order; the captured number is the quantity.
var QuantityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)pack\s+of\s+(\d+)`),
	regexp.MustCompile(`(?i)(\d+)\s*pack`),
	regexp.MustCompile(`(?i)set\s+of\s+(\d+)`),
	regexp.MustCompile(`(?i)(\d+)\s*pcs?`),
	regexp.MustCompile(`(?i)(\d+)\s*pieces?`),
	regexp.MustCompile(`(?i)(\d+)\s*kg`),
	regexp.MustCompile(`(?i)(\d+)\s*g(?:ram)?s?`),
	regexp.MustCompile(`(?i)(\d+)\s*ml`),
	regexp.MustCompile(`(?i)(\d+)\s*l(?:itr?e)?s?`),
	regexp.MustCompile(`(?i)combo\s+(\d+)`),
	regexp.MustCompile(`(?i)(\d+)\s*pair`),
	regexp.MustCompile(`(?i)multipack\s+(\d+)`),
	regexp.MustCompile(`(?i)quantity\s*:\s*(\d+)`),
}

const maxManualTitleLen = 60

var titlePinPattern = regexp.MustCompile(`\b\d{6}\b`)

func wordPatterns(words ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		out[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return out
}
