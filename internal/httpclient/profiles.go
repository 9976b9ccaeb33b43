package httpclient

import "net/http"

// Profile is a client identity: the header set sent with every request made under it.
type Profile struct {
	Name    string
	Headers [][2]string
}

var (
	// Desktop identifies as desktop Chrome on Windows.
	Desktop = Profile{
		Name: "desktop",
		Headers: [][2]string{
			{"User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"},
			{"Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"},
			{"Accept-Language", "en-US,en;q=0.9,hi;q=0.8"},
			{"Connection", "keep-alive"},
		},
	}

	// Mobile identifies as Safari on iPhone.
	Mobile = Profile{
		Name: "mobile",
		Headers: [][2]string{
			{"User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"},
			{"Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"},
		},
	}
)

// Apply sets every header of the profile on req, replacing existing values.
func (p Profile) Apply(req *http.Request) {
	for _, h := range p.Headers {
		req.Header.Set(h[0], h[1])
	}
}
