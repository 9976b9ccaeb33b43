package platform

import (
	"net/url"
	"strings"
)

// Platform is the marketplace a product URL belongs to.
type Platform string

const (
	Amazon   Platform = "amazon"
	Flipkart Platform = "flipkart"
	Meesho   Platform = "meesho"
	Myntra   Platform = "myntra"
	Ajio     Platform = "ajio"
	Snapdeal Platform = "snapdeal"
	Generic  Platform = "generic"
)

// Spec describes one known marketplace.
type Spec struct {
	Platform Platform
	// HostKeyword is matched as a case-insensitive substring of the URL host.
	HostKeyword string
	// Domains are the bare domains recognized in free text without a scheme.
	Domains     []string
	DisplayName string
	// CanonicalHost is the host used when a product URL is rebuilt.
	CanonicalHost string
	// SizeBearing platforms get a size/pin block in the deal message.
	SizeBearing bool
}

// specs is ordered by detection priority.
var specs = []Spec{
	{Platform: Amazon, HostKeyword: "amazon", Domains: []string{"amazon.in", "amazon.com"}, DisplayName: "Amazon", CanonicalHost: "www.amazon.in"},
	{Platform: Flipkart, HostKeyword: "flipkart", Domains: []string{"flipkart.com"}, DisplayName: "Flipkart", CanonicalHost: "www.flipkart.com"},
	{Platform: Meesho, HostKeyword: "meesho", Domains: []string{"meesho.com"}, DisplayName: "Meesho", CanonicalHost: "www.meesho.com", SizeBearing: true},
	{Platform: Myntra, HostKeyword: "myntra", Domains: []string{"myntra.com"}, DisplayName: "Myntra", CanonicalHost: "www.myntra.com"},
	{Platform: Ajio, HostKeyword: "ajio", Domains: []string{"ajio.com"}, DisplayName: "Ajio", CanonicalHost: "www.ajio.com"},
	{Platform: Snapdeal, HostKeyword: "snapdeal", Domains: []string{"snapdeal.com"}, DisplayName: "Snapdeal", CanonicalHost: "www.snapdeal.com"},
}

// Lookup returns the marketplace entry for p. The boolean is false for Generic and unknown values.
func Lookup(p Platform) (Spec, bool) {
	for _, s := range specs {
		if s.Platform == p {
			return s, true
		}
	}
	return Spec{}, false
}

// Detect infers the platform from a URL host. Unparseable URLs are Generic.
func Detect(rawURL string) Platform {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Generic
	}
	return detectHost(u.Host)
}

// detectHost infers the platform from a host name.
func detectHost(host string) Platform {
	host = strings.ToLower(host)
	for _, s := range specs {
		if strings.Contains(host, s.HostKeyword) {
			return s.Platform
		}
	}
	return Generic
}

// Domains returns every bare marketplace domain recognized in free text.
func Domains() []string {
	var out []string
	for _, s := range specs {
		out = append(out, s.Domains...)
	}
	return out
}

func (p Platform) String() string {
	return string(p)
}

// IsSizeBearing reports whether deal messages for p carry the size/pin block.
func (p Platform) IsSizeBearing() bool {
	s, ok := Lookup(p)
	return ok && s.SizeBearing
}

// Placeholder is the title used when nothing could be extracted for a product.
func (p Platform) Placeholder() string {
	s, ok := Lookup(p)
	if !ok {
		return "Product Deal"
	}
	return s.DisplayName + " Product"
}
