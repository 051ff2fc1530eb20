package scraper_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"price-tracker-bot/internal/scraper"
)

// amazonProductHTML is the shape of an Amazon product page, trimmed to
// the elements the extractor reads.
const amazonProductHTML = `<!DOCTYPE html>
<html>
<body>
  <div id="centerCol">
    <span id="productTitle"> Mechanical Keyboard, 87 Keys </span>
  </div>
  <div class="imgTagWrapper">
    <img src="https://img.example/keyboard.jpg" alt="keyboard">
  </div>
  <span class="a-price-whole">1,299.</span>
  <span class="a-price-whole">2,499.</span>
  <div id="productOverview_feature_div"><table><tr><td>Brand</td><td>Acme</td></tr></table></div>
  <div id="feature-bullets"><ul><li>Hot-swappable switches</li></ul></div>
</body>
</html>`

const flipkartProductHTML = `<!DOCTYPE html>
<html>
<body>
  <span class="B_NuCI">Wireless Mouse</span>
  <div class="_30jeq3 _16Jk6d">₹1,499</div>
  <div class="_396cs4 _2amPTt"><img src="https://img.example/mouse.jpg"></div>
  <div class="_1mXcCf">An ergonomic wireless mouse.</div>
</body>
</html>`

const missingPriceHTML = `<html><body><span id="productTitle">No price here</span></body></html>`

func TestAmazonExtract(t *testing.T) {
	e, err := scraper.ForURL("https://www.amazon.in/dp/B0TEST")
	require.NoError(t, err)

	product, err := e.Extract([]byte(amazonProductHTML))
	require.NoError(t, err)

	assert.Equal(t, "Mechanical Keyboard, 87 Keys", product.Title)
	assert.Equal(t, 1299.0, product.Price, "first price element wins")
	assert.Equal(t, "https://img.example/keyboard.jpg", product.ImageURL)
	assert.Contains(t, product.SpecsHTML, "Acme")
	assert.Contains(t, product.Description, "Hot-swappable switches")
}

func TestFlipkartExtract(t *testing.T) {
	e, err := scraper.ForURL("https://www.flipkart.com/p/itm0")
	require.NoError(t, err)

	product, err := e.Extract([]byte(flipkartProductHTML))
	require.NoError(t, err)

	assert.Equal(t, "Wireless Mouse", product.Title)
	assert.Equal(t, 1499.0, product.Price)
	assert.Equal(t, "https://img.example/mouse.jpg", product.ImageURL)
	assert.Equal(t, "An ergonomic wireless mouse.", product.Description)
}

func TestExtractMissingPriceElement(t *testing.T) {
	e, err := scraper.ForURL("https://www.amazon.com/dp/B0TEST")
	require.NoError(t, err)

	_, err = e.Extract([]byte(missingPriceHTML))
	require.Error(t, err)

	var extractErr *scraper.ExtractError
	assert.True(t, errors.As(err, &extractErr), "malformed pages surface as ExtractError, never repaired")
}

func TestForURLDefaultsToAmazon(t *testing.T) {
	e, err := scraper.ForURL("https://www.amazon.de/dp/B0TEST")
	require.NoError(t, err)
	require.NotNil(t, e)

	e2, err := scraper.ForURL("https://shop.other.example/item/1")
	require.NoError(t, err)
	assert.IsType(t, e, e2)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    float64
		wantErr bool
	}{
		{"plain", "499", 499, false},
		{"thousands separator", "1,299", 1299, false},
		{"trailing decimal point", "1,299.", 1299, false},
		{"decimals", "499.50", 499.50, false},
		{"surrounding whitespace", "  749 ", 749, false},
		{"rupee symbol", "₹1,499", 1499, false},
		{"dollar symbol", "$89.99", 89.99, false},
		{"empty", "", 0, true},
		{"whitespace only", "   ", 0, true},
		{"non-numeric", "out of stock", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scraper.ParsePrice(tt.text)
			if tt.wantErr {
				require.Error(t, err)
				var extractErr *scraper.ExtractError
				assert.True(t, errors.As(err, &extractErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
