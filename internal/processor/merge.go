package processor

import (
	"github.com/pauljones0/deal-link-bot/internal/models"
	"github.com/pauljones0/deal-link-bot/internal/platform"
)

// ErrNoProductData marks a record for which neither a title nor a price was found.
const ErrNoProductData = "no title or price found"

// Merge combines text-derived and page-derived attributes. Manual values win; scraped
// values only fill fields the message left empty. Sizes always come from the page.
// When the result has neither title nor price it is flagged and given the platform's
// placeholder title.
func Merge(manual models.ManualInfo, scraped models.ScrapedInfo, p platform.Platform) models.ProductRecord {
	rec := models.ProductRecord{
		Title:    firstNonEmpty(manual.Title, scraped.Title),
		Price:    firstNonEmpty(manual.Price, scraped.Price),
		Brand:    firstNonEmpty(manual.Brand, scraped.Brand),
		Gender:   firstNonEmpty(manual.Gender, scraped.Gender),
		Quantity: firstNonEmpty(manual.Quantity, scraped.Quantity),
		Pin:      firstNonEmpty(manual.Pin, scraped.Pin),
		Sizes:    scraped.Sizes,
		Platform: p,
	}

	if rec.Title == "" && rec.Price == "" {
		rec.Err = ErrNoProductData
		if scraped.Err != "" {
			rec.Err += ": " + scraped.Err
		}
		rec.Title = p.Placeholder()
	}
	return rec
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
