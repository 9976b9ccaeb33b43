package scraper

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pauljones0/deal-link-bot/internal/platform"
)

// SelectorConfig maps each marketplace to the CSS selectors used on its product pages.
type SelectorConfig struct {
	Platforms map[string]PageSelectors `json:"platforms"`
	Generic   PageSelectors            `json:"generic"`
}

type PageSelectors struct {
	// Title selectors are tried in order. Selectors starting with "meta" read the content attribute.
	Title []string `json:"title"`
	Price []string `json:"price"`
}

// For returns the selectors for p. Title selectors are followed by the generic ones;
// platforms without an entry get the generic selectors only.
func (c SelectorConfig) For(p platform.Platform) PageSelectors {
	specific, ok := c.Platforms[string(p)]
	if !ok {
		return c.Generic
	}

	titles := make([]string, 0, len(specific.Title)+len(c.Generic.Title))
	seen := make(map[string]bool)
	for _, sel := range append(append([]string{}, specific.Title...), c.Generic.Title...) {
		if seen[sel] {
			continue
		}
		seen[sel] = true
		titles = append(titles, sel)
	}
	return PageSelectors{Title: titles, Price: specific.Price}
}

func (c SelectorConfig) validate() error {
	if len(c.Generic.Title) == 0 {
		return fmt.Errorf("selector config has no generic title selectors")
	}
	return nil
}

// LoadSelectors loads the selector configuration from the specified JSON file.
func LoadSelectors(path string) (SelectorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SelectorConfig{}, fmt.Errorf("failed to read selector config file: %w", err)
	}

	return LoadSelectorsFromBytes(data)
}

// LoadSelectorsFromBytes parses selector configuration from raw JSON bytes.
func LoadSelectorsFromBytes(data []byte) (SelectorConfig, error) {
	var config SelectorConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return SelectorConfig{}, fmt.Errorf("failed to parse selector config JSON: %w", err)
	}
	if err := config.validate(); err != nil {
		return SelectorConfig{}, err
	}

	return config, nil
}

const ogTitle = `meta[property="og:title"]`

// DefaultSelectors returns the fallback configuration if no JSON file is loaded.
// Keep it in sync with selectors.json.
func DefaultSelectors() SelectorConfig {
	return SelectorConfig{
		Platforms: map[string]PageSelectors{
			string(platform.Amazon): {
				Title: []string{"#productTitle", "h1.a-size-large.a-spacing-none.a-color-base", "span#productTitle", ".product-title", ogTitle},
				Price: []string{".a-price-whole", ".a-price .a-offscreen", ".a-price-range"},
			},
			string(platform.Flipkart): {
				Title: []string{".B_NuCI", "._35KyD6", "h1.yhB1nd", ".fsXA5P", "h1", ogTitle},
				Price: []string{"._30jeq3", "._1_WHN1", ".CEmiEU"},
			},
			string(platform.Meesho): {
				Title: []string{`[data-testid="product-title"]`, ".product-title", "h1", ".sc-bcXHqe", ogTitle},
				Price: []string{".price", ".current-price"},
			},
			string(platform.Myntra): {
				Title: []string{".pdp-name", ".pdp-title", "h1.pdp-name", ".product-brand-name", ogTitle},
				Price: []string{".pdp-price", ".price-current"},
			},
			string(platform.Ajio): {
				Title: []string{".prod-name", ".product-name", "h1.prod-title", ogTitle},
				Price: []string{".prod-price", ".price-current"},
			},
		},
		Generic: PageSelectors{
			Title: []string{"h1", ".product-name", ".product-title", ogTitle, "title"},
		},
	}
}
