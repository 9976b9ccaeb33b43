// Package formatter renders product records into the fixed deal message layout.
package formatter

import (
	"sort"
	"strings"

	"github.com/pauljones0/deal-link-bot/internal/models"
	"github.com/pauljones0/deal-link-bot/internal/platform"
)

const (
	// MaxMessageLen is the longest text handed to the chat transport, in characters.
	MaxMessageLen = 4096

	DefaultFooter = "@reviewcheckk"
	DefaultPin    = "110001"

	placeholderTitle = "Product Deal"
	ellipsis         = "..."
	// sizeSummaryThreshold distinct sizes or more are shown as "All".
	sizeSummaryThreshold = 5
)

type Formatter struct {
	footer     string
	defaultPin string
}

func New(footer, defaultPin string) *Formatter {
	if footer == "" {
		footer = DefaultFooter
	}
	if defaultPin == "" {
		defaultPin = DefaultPin
	}
	return &Formatter{footer: footer, defaultPin: defaultPin}
}

// Format renders rec as a deal message for url.
//
// Layout:
//
//	[brand] [gender] [quantity] <title> [@<price> rs]
//	<url>
//	(empty)
//	Size - <sizes>      size-bearing platforms only
//	Pin - <pin>         size-bearing platforms only
//	(empty)             size-bearing platforms only
//	<footer>
func (f *Formatter) Format(rec models.ProductRecord, url string, p platform.Platform) string {
	lines := []string{
		firstLine(rec),
		url,
		"",
	}

	if p.IsSizeBearing() {
		lines = append(lines, "Size - "+sizeSummary(rec.Sizes))
		pin := strings.TrimSpace(rec.Pin)
		if pin == "" {
			pin = f.defaultPin
		}
		lines = append(lines, "Pin - "+pin, "")
	}

	lines = append(lines, f.footer)
	return strings.Join(lines, "\n")
}

func firstLine(rec models.ProductRecord) string {
	title := strings.TrimSpace(rec.Title)
	brand := strings.TrimSpace(rec.Brand)

	var parts []string
	// A brand already named in the title is not repeated.
	if brand != "" && !strings.Contains(strings.ToLower(title), strings.ToLower(brand)) {
		parts = append(parts, brand)
	}
	if gender := strings.TrimSpace(rec.Gender); gender != "" {
		parts = append(parts, gender)
	}
	if quantity := strings.TrimSpace(rec.Quantity); quantity != "" {
		parts = append(parts, quantity)
	}
	if title == "" {
		title = placeholderTitle
	}
	parts = append(parts, title)
	if price := strings.TrimSpace(rec.Price); price != "" {
		parts = append(parts, "@"+price+" rs")
	}
	return strings.Join(parts, " ")
}

func sizeSummary(sizes []string) string {
	if len(sizes) == 0 || len(sizes) >= sizeSummaryThreshold {
		return "All"
	}
	sorted := append([]string(nil), sizes...)
	sort.Strings(sorted)
	return strings.Join(sorted, ", ")
}

// Placeholder is sent for a link whose processing failed.
func (f *Formatter) Placeholder(url string) string {
	return placeholderTitle + "\n" + url + "\n\n" + f.footer
}

// Apology is sent when a whole message could not be processed.
func (f *Formatter) Apology() string {
	return "❌ Error processing message\n\n" + f.footer
}

// SendFailure is sent after a reply could not be delivered.
func (f *Formatter) SendFailure() string {
	return "❌ Error processing request\n\n" + f.footer
}

// Welcome answers the /start command.
func (f *Formatter) Welcome() string {
	return "🤖 Deal Bot Active!\n\n" +
		"✅ Smart link detection & processing\n" +
		"✅ Automatic URL unshortening\n" +
		"✅ Clean affiliate link removal\n" +
		"✅ Accurate price & title extraction\n" +
		"✅ Brand, gender & quantity detection\n" +
		"✅ Meesho size & PIN support\n\n" +
		"📝 Supported Platforms:\n" +
		"• Amazon • Flipkart • Meesho\n" +
		"• Myntra • Ajio • Snapdeal\n\n" +
		"🔗 Send any product link and get formatted deals!\n\n" +
		f.footer
}

// Truncate cuts text to MaxMessageLen characters, ending in "..." when shortened.
func Truncate(text string) string {
	r := []rune(text)
	if len(r) <= MaxMessageLen {
		return text
	}
	return string(r[:MaxMessageLen-len(ellipsis)]) + ellipsis
}
