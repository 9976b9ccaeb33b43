package util

import (
	"net/url"
	"strings"
)

// EnsureScheme prefixes rawURL with https:// when it carries no http(s) scheme.
func EnsureScheme(rawURL string) string {
	lower := strings.ToLower(rawURL)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return rawURL
	}
	return "https://" + rawURL
}

// Hostname returns the lower-cased host of rawURL, or "" when it cannot be parsed.
func Hostname(rawURL string) string {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsedURL.Hostname())
}

// WithoutQuery returns rawURL with its query string removed. The fragment is kept.
func WithoutQuery(rawURL string) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return rawURL, err
	}
	parsedURL.RawQuery = ""
	parsedURL.ForceQuery = false
	return parsedURL.String(), nil
}

// FilterQuery keeps the first non-empty value of every query parameter for which keep
// returns true and drops everything else.
func FilterQuery(rawURL string, keep func(key string) bool) (string, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return rawURL, err
	}
	queryParams, err := url.ParseQuery(parsedURL.RawQuery)
	if err != nil {
		return rawURL, err
	}
	cleaned := url.Values{}
	for key, values := range queryParams {
		if !keep(key) {
			continue
		}
		for _, v := range values {
			if v != "" {
				cleaned.Set(key, v)
				break
			}
		}
	}
	parsedURL.RawQuery = cleaned.Encode()
	parsedURL.ForceQuery = false
	return parsedURL.String(), nil
}
