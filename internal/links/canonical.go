package links

import (
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/pauljones0/deal-link-bot/internal/models"
	"github.com/pauljones0/deal-link-bot/internal/platform"
	"github.com/pauljones0/deal-link-bot/internal/util"
)

// canonicalRule rewrites a parsed product URL. raw is the unparsed input.
type canonicalRule func(u *url.URL, raw string) (string, error)

var canonicalRules = map[platform.Platform]canonicalRule{
	platform.Amazon:   canonicalizeAmazon,
	platform.Flipkart: canonicalizeFlipkart,
	platform.Meesho:   stripQuery,
	platform.Myntra:   canonicalizeMyntra,
	platform.Ajio:     stripQuery,
}

var (
	asinPatterns = []*regexp.Regexp{
		regexp.MustCompile(`/dp/([A-Z0-9]{10})(?:/|$|\?)`),
		regexp.MustCompile(`/product/([A-Z0-9]{10})(?:/|$|\?)`),
		regexp.MustCompile(`/([A-Z0-9]{10})(?:/|$|\?)`),
		regexp.MustCompile(`asin=([A-Z0-9]{10})`),
		regexp.MustCompile(`/gp/product/([A-Z0-9]{10})`),
	}
	flipkartPIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`/p/[^/]+/([^/?]+)`),
		regexp.MustCompile(`pid=([A-Z0-9]+)`),
		regexp.MustCompile(`/([A-Z0-9]{16})(?:/|\?|$)`),
	}
	myntraIDPattern = regexp.MustCompile(`/(\d+)`)

	trackingKeywords = []string{
		"utm_", "ref", "tag", "affiliate", "aff", "partner",
		"source", "medium", "campaign", "tracking", "fbclid",
		"gclid", "mc_", "zanpid", "ranmid", "raneaid",
	}
)

// Canonicalize strips tracking parameters from rawURL and, where the platform allows it,
// rebuilds the URL around the product identifier. Any failure yields rawURL unchanged.
// Applying Canonicalize to its own output is a no-op.
func Canonicalize(rawURL string) models.CanonicalURL {
	p := platform.Detect(rawURL)
	return models.CanonicalURL{URL: canonicalize(rawURL, p), Platform: p}
}

func canonicalize(rawURL string, p platform.Platform) (cleaned string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("Error cleaning URL", "url", rawURL, "panic", r)
			cleaned = rawURL
		}
	}()

	u, err := url.Parse(rawURL)
	if err != nil {
		slog.Warn("Error cleaning URL", "url", rawURL, "error", err)
		return rawURL
	}

	rule, ok := canonicalRules[p]
	if !ok {
		rule = stripTracking
	}
	out, err := rule(u, rawURL)
	if err != nil {
		slog.Warn("Error cleaning URL", "url", rawURL, "platform", p, "error", err)
		return rawURL
	}
	return out
}

func canonicalHost(p platform.Platform) string {
	spec, ok := platform.Lookup(p)
	if !ok {
		panic(fmt.Sprintf("no canonical host for platform %q", p))
	}
	return spec.CanonicalHost
}

func firstSubmatch(patterns []*regexp.Regexp, s string) (string, bool) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(s); m != nil {
			return m[1], true
		}
	}
	return "", false
}

func canonicalizeAmazon(u *url.URL, raw string) (string, error) {
	if asin, ok := firstSubmatch(asinPatterns, u.EscapedPath()+"?"+u.RawQuery); ok {
		return "https://" + canonicalHost(platform.Amazon) + "/dp/" + asin, nil
	}
	return keepParams(u, raw, "keywords", "field-keywords")
}

func canonicalizeFlipkart(u *url.URL, raw string) (string, error) {
	if pid, ok := firstSubmatch(flipkartPIDPatterns, u.EscapedPath()+"?"+u.RawQuery); ok {
		return "https://" + canonicalHost(platform.Flipkart) + "/p/" + pid, nil
	}
	return keepParams(u, raw, "pid", "lid")
}

func canonicalizeMyntra(u *url.URL, raw string) (string, error) {
	if m := myntraIDPattern.FindStringSubmatch(u.EscapedPath()); m != nil {
		return "https://" + canonicalHost(platform.Myntra) + "/" + m[1], nil
	}
	return stripQuery(u, raw)
}

func stripQuery(_ *url.URL, raw string) (string, error) {
	return util.WithoutQuery(raw)
}

func keepParams(_ *url.URL, raw string, allowed ...string) (string, error) {
	return util.FilterQuery(raw, func(key string) bool {
		lower := strings.ToLower(key)
		for _, a := range allowed {
			if lower == a {
				return true
			}
		}
		return false
	})
}

func stripTracking(u *url.URL, raw string) (string, error) {
	if u.RawQuery == "" {
		return raw, nil
	}
	return util.FilterQuery(raw, func(key string) bool {
		lower := strings.ToLower(key)
		for _, kw := range trackingKeywords {
			if strings.Contains(lower, kw) {
				return false
			}
		}
		return true
	})
}
