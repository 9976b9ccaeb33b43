package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscover(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "Scheme, www and shortener in order",
			text: "see https://example.com/deal, then www.example.org/item; also amzn.to/abc123!",
			want: []string{
				"https://example.com/deal",
				"https://www.example.org/item",
				"https://amzn.to/abc123",
			},
		},
		{
			name: "Bare marketplace domain gets a scheme",
			text: "grab it at flipkart.com/shoes/p/itm123 now",
			want: []string{"https://flipkart.com/shoes/p/itm123"},
		},
		{
			name: "Full URL is not reported again by later matchers",
			text: "https://www.amazon.in/dp/B0ABCDEFGH",
			want: []string{"https://www.amazon.in/dp/B0ABCDEFGH"},
		},
		{
			name: "Duplicates collapse to the first occurrence",
			text: "https://bit.ly/xyz123 and again https://bit.ly/xyz123.",
			want: []string{"https://bit.ly/xyz123"},
		},
		{
			name: "Trailing punctuation is stripped",
			text: "(link: https://meesho.com/kurti/p/abc)]",
			want: []string{"https://meesho.com/kurti/p/abc"},
		},
		{
			name: "Order follows the text, not the matcher",
			text: "fkrt.cc/abc first, then https://shop.example.com/item",
			want: []string{"https://fkrt.cc/abc", "https://shop.example.com/item"},
		},
		{
			name: "Too short candidates are dropped",
			text: "http://a.b",
			want: nil,
		},
		{
			name: "No links",
			text: "just some words about a deal",
			want: nil,
		},
		{
			name: "Empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Discover(tt.text))
		})
	}
}

func TestDiscover_DealMessage(t *testing.T) {
	got := Discover("Nike Men's Shoes pack of 2 @1999 rs https://amzn.to/abc123 110045")
	assert.Equal(t, []string{"https://amzn.to/abc123"}, got)
}

func TestIsShortened(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"https://amzn.to/abc123", true},
		{"https://BIT.LY/xyz", true},
		{"fkrt.cc/abc", true},
		{"https://www.amazon.in/dp/B0ABCDEFGH", false},
		{"https://example.com/a", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsShortened(tt.input))
		})
	}
}

func TestStripLinks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"Scheme link", "deal https://amzn.to/abc123 now", "deal   now"},
		{"Bare shortener", "deal amzn.to/abc123", "deal  "},
		{"www link", "see www.example.com/item", "see  "},
		{"Bare marketplace", "buy flipkart.com/p/itm123 today", "buy   today"},
		{"Plain text kept", "Nike shoes @999 rs", "Nike shoes @999 rs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripLinks(tt.text))
		})
	}
}
