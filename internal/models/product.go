package models

import (
	"github.com/pauljones0/deal-link-bot/internal/platform"
)

// Message is the plain-text input handed over by the chat transport.
type Message struct {
	// ID is stable per incoming message and used for duplicate suppression.
	ID   string
	Text string
}

// ResolvedLink is a discovered link after optional shortener resolution.
type ResolvedLink struct {
	Original string
	// Resolved equals Original when resolution was skipped or failed. Never empty.
	Resolved string
}

// Changed reports whether resolution produced a different URL.
func (r ResolvedLink) Changed() bool {
	return r.Resolved != r.Original
}

// CanonicalURL is a product URL stripped down to what identifies the product.
type CanonicalURL struct {
	URL      string
	Platform platform.Platform
}

// ManualInfo holds attributes parsed from the message text. Empty string means absent.
type ManualInfo struct {
	Title    string
	Price    string
	Brand    string
	Gender   string
	Quantity string
	Pin      string
}

// ScrapedInfo holds attributes parsed from a fetched product page.
type ScrapedInfo struct {
	Title    string
	Price    string
	Brand    string
	Gender   string
	Quantity string
	Pin      string
	Sizes    []string
	Platform platform.Platform
	// Err describes why nothing usable was fetched. Empty on success.
	Err string
}

// Found reports whether the page yielded a title or a price.
func (s ScrapedInfo) Found() bool {
	return s.Title != "" || s.Price != ""
}

// ProductRecord is the merged view consumed by the formatter.
type ProductRecord struct {
	Title    string `validate:"required"`
	Price    string `validate:"omitempty,numeric"`
	Brand    string
	Gender   string `validate:"omitempty,oneof=Men Women Kids"`
	Quantity string
	Pin      string `validate:"omitempty,pincode"`
	Sizes    []string
	Platform platform.Platform `validate:"required"`
	// Err is set when neither title nor price could be found anywhere.
	Err string
}
