package util

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	MinPrice = 10
	MaxPrice = 1000000
)

// ParsePrice strips thousands separators from s and returns the integer price as a
// string when it falls within [MinPrice, MaxPrice].
func ParsePrice(s string) (string, bool) {
	n, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return "", false
	}
	if n < MinPrice || n > MaxPrice {
		return "", false
	}
	return strconv.Itoa(n), true
}

var whitespaceRegex = regexp.MustCompile(`\s+`)

// CollapseWhitespace replaces every whitespace run with one space and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// TruncateRunes returns the first n runes of s.
func TruncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
