package processor

import (
	"context"

	"github.com/pauljones0/deal-link-bot/internal/models"
	"github.com/pauljones0/deal-link-bot/internal/platform"
)

// LinkResolver abstracts shortened-link resolution.
type LinkResolver interface {
	Resolve(ctx context.Context, rawURL string) models.ResolvedLink
}

// ProductScraper abstracts the product page scraper.
type ProductScraper interface {
	Scrape(ctx context.Context, url string, p platform.Platform) models.ScrapedInfo
}

// RecordValidator checks a merged record before it is formatted.
type RecordValidator interface {
	ValidateStruct(s interface{}) error
}
