package links

import (
	"strings"

	"github.com/pauljones0/deal-link-bot/internal/util"
)

// shortenerDomains are hosts known to issue redirect-only short links.
var shortenerDomains = []string{
	"cutt.ly", "spoo.me", "amzn.to", "amzn-to.co", "fkrt.cc", "bitli.in", "da.gd", "wishlink.com",
	"bit.ly", "tinyurl.com", "short.link", "ow.ly", "is.gd", "t.co", "goo.gl", "rb.gy", "tiny.cc",
	"v.gd", "x.co", "buff.ly", "short.gy", "shorte.st", "adf.ly", "bc.vc", "tinycc.com",
	"shorturl.at", "clck.ru", "0rz.tw", "1link.in",
}

// IsShortened reports whether the host of rawURL contains a known shortener domain.
// The match is a case-insensitive substring test, so "t.co" also matches hosts such as
// "flipkart.com"; resolving such a URL only costs one redirect lookup.
func IsShortened(rawURL string) bool {
	host := util.Hostname(util.EnsureScheme(rawURL))
	if host == "" {
		return false
	}
	for _, domain := range shortenerDomains {
		if strings.Contains(host, domain) {
			return true
		}
	}
	return false
}
