package scraper

import (
	"context"

	"github.com/pkg/errors"

	"price-tracker-bot/internal/types"
)

// GetProduct fetches a retailer page and returns its full product
// snapshot. The alert API uses this when a tracked product is first
// registered; the tracker itself only needs the extracted price.
func GetProduct(ctx context.Context, fetcher *Fetcher, url string) (product types.Product, err error) {
	extractor, err := ForURL(url)
	if err != nil {
		return product, err
	}

	content, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return product, errors.Wrap(err, "could not fetch product page")
	}

	product, err = extractor.Extract(content)
	if err != nil {
		return product, err
	}
	product.URL = url
	return product, nil
}
