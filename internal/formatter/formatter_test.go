package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pauljones0/deal-link-bot/internal/models"
	"github.com/pauljones0/deal-link-bot/internal/platform"
)

func TestFormat(t *testing.T) {
	f := New("", "")

	tests := []struct {
		name     string
		record   models.ProductRecord
		url      string
		platform platform.Platform
		want     string
	}{
		{
			name: "All fields, brand already in title",
			record: models.ProductRecord{
				Title: "Nike Men's Shoes pack of 2", Price: "1999", Brand: "Nike", Gender: "Men", Quantity: "2",
			},
			url:      "https://www.amazon.in/dp/B0ABCDEFGH",
			platform: platform.Amazon,
			want:     "Men 2 Nike Men's Shoes pack of 2 @1999 rs\nhttps://www.amazon.in/dp/B0ABCDEFGH\n\n@reviewcheckk",
		},
		{
			name:     "Brand prefixed when missing from title",
			record:   models.ProductRecord{Title: "Running Shoes", Price: "2499", Brand: "Puma"},
			url:      "https://www.flipkart.com/p/itm1",
			platform: platform.Flipkart,
			want:     "Puma Running Shoes @2499 rs\nhttps://www.flipkart.com/p/itm1\n\n@reviewcheckk",
		},
		{
			name:     "Brand match ignores case",
			record:   models.ProductRecord{Title: "NIKE air max", Brand: "Nike"},
			url:      "https://example.com/x",
			platform: platform.Generic,
			want:     "NIKE air max\nhttps://example.com/x\n\n@reviewcheckk",
		},
		{
			name:     "Empty title and price",
			record:   models.ProductRecord{},
			url:      "https://example.com/x",
			platform: platform.Generic,
			want:     "Product Deal\nhttps://example.com/x\n\n@reviewcheckk",
		},
		{
			name:     "Meesho with two sizes",
			record:   models.ProductRecord{Title: "Cotton Kurti", Price: "349", Sizes: []string{"M", "L"}, Pin: "560001"},
			url:      "https://www.meesho.com/kurti/p/2ab3c4",
			platform: platform.Meesho,
			want:     "Cotton Kurti @349 rs\nhttps://www.meesho.com/kurti/p/2ab3c4\n\nSize - L, M\nPin - 560001\n\n@reviewcheckk",
		},
		{
			name:     "Meesho with five sizes and default pin",
			record:   models.ProductRecord{Title: "Cotton Kurti", Sizes: []string{"L", "M", "S", "XL", "XXL"}},
			url:      "https://www.meesho.com/kurti/p/2ab3c4",
			platform: platform.Meesho,
			want:     "Cotton Kurti\nhttps://www.meesho.com/kurti/p/2ab3c4\n\nSize - All\nPin - 110001\n\n@reviewcheckk",
		},
		{
			name:     "Meesho without sizes",
			record:   models.ProductRecord{Title: "Cotton Kurti"},
			url:      "https://www.meesho.com/kurti/p/2ab3c4",
			platform: platform.Meesho,
			want:     "Cotton Kurti\nhttps://www.meesho.com/kurti/p/2ab3c4\n\nSize - All\nPin - 110001\n\n@reviewcheckk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Format(tt.record, tt.url, tt.platform)
			assert.Equal(t, tt.want, got)
			assert.False(t, strings.HasSuffix(got, "\n"))
		})
	}
}

func TestFormat_CustomFooterAndPin(t *testing.T) {
	f := New("@mychannel", "400001")
	got := f.Format(models.ProductRecord{Title: "Cotton Kurti"}, "https://meesho.com/p/1", platform.Meesho)
	assert.Equal(t, "Cotton Kurti\nhttps://meesho.com/p/1\n\nSize - All\nPin - 400001\n\n@mychannel", got)
}

func TestFormat_DoesNotReorderCallerSizes(t *testing.T) {
	sizes := []string{"M", "L"}
	New("", "").Format(models.ProductRecord{Title: "Kurti", Sizes: sizes}, "https://meesho.com/p/1", platform.Meesho)
	assert.Equal(t, []string{"M", "L"}, sizes)
}

func TestFixedMessages(t *testing.T) {
	f := New("", "")
	assert.Equal(t, "Product Deal\nhttps://example.com/x\n\n@reviewcheckk", f.Placeholder("https://example.com/x"))
	assert.Equal(t, "❌ Error processing message\n\n@reviewcheckk", f.Apology())
	assert.Equal(t, "❌ Error processing request\n\n@reviewcheckk", f.SendFailure())
	assert.True(t, strings.HasSuffix(f.Welcome(), "\n\n@reviewcheckk"))
}

func TestTruncate(t *testing.T) {
	short := "hello"
	assert.Equal(t, short, Truncate(short))

	exact := strings.Repeat("a", MaxMessageLen)
	assert.Equal(t, exact, Truncate(exact))

	long := strings.Repeat("₹", MaxMessageLen+10)
	got := Truncate(long)
	assert.Len(t, []rune(got), MaxMessageLen)
	assert.True(t, strings.HasSuffix(got, "..."))
}
