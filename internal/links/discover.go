package links

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pauljones0/deal-link-bot/internal/platform"
)

const (
	minCandidateLength = 10
	trailingPunct      = ".,;:!?)]"
	urlBody            = `[^\s<>"{}|\\^` + "`" + `\[\]]`
)

// matcher finds URL candidates. When addScheme is set, https:// is prepended to every hit.
type matcher struct {
	re        *regexp.Regexp
	addScheme bool
}

var matchers = []matcher{
	{re: regexp.MustCompile(`(?i)https?://` + urlBody + `+`)},
	{re: regexp.MustCompile(`(?i)\bwww\.` + urlBody + `+`), addScheme: true},
	{re: domainPattern(platform.Domains()), addScheme: true},
	{re: domainPattern(shortenerDomains), addScheme: true},
}

func domainPattern(domains []string) *regexp.Regexp {
	quoted := make([]string, len(domains))
	for i, d := range domains {
		quoted[i] = regexp.QuoteMeta(d)
	}
	return regexp.MustCompile(`(?i)\b(?:[a-z0-9-]+\.)*(?:` + strings.Join(quoted, "|") + `)/` + urlBody + `+`)
}

type candidate struct {
	start, end int
	url        string
}

// Discover returns the distinct URL candidates found in text, in order of first
// appearance. A hit that lies inside a span already claimed by an earlier matcher is
// ignored, so "www.x.com" inside "https://www.x.com" is reported once.
func Discover(text string) []string {
	var accepted []candidate
	for _, m := range matchers {
		for _, loc := range m.re.FindAllStringIndex(text, -1) {
			if covered(accepted, loc[0], loc[1]) {
				continue
			}
			raw := strings.TrimRight(text[loc[0]:loc[1]], trailingPunct)
			if m.addScheme {
				raw = "https://" + raw
			}
			accepted = append(accepted, candidate{start: loc[0], end: loc[1], url: raw})
		}
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].start < accepted[j].start
	})

	var urls []string
	seen := make(map[string]bool)
	for _, c := range accepted {
		if len(c.url) <= minCandidateLength || !strings.Contains(c.url, ".") {
			continue
		}
		if seen[c.url] {
			continue
		}
		seen[c.url] = true
		urls = append(urls, c.url)
	}
	return urls
}

// StripLinks replaces every span Discover would read as a link with a space.
func StripLinks(text string) string {
	for _, m := range matchers {
		text = m.re.ReplaceAllString(text, " ")
	}
	return text
}

func covered(accepted []candidate, start, end int) bool {
	for _, c := range accepted {
		if start >= c.start && end <= c.end {
			return true
		}
	}
	return false
}
