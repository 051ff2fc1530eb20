package scraper

import (
	"bytes"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"price-tracker-bot/internal/types"
)

// ExtractError is terminal for an alert within a tick: the page structure
// is assumed unchanged until the next tick, so it is never retried.
type ExtractError struct {
	Reason string
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("could not extract price: %s", e.Reason)
}

// Extractor parses a product snapshot out of raw page markup.
type Extractor interface {
	Extract(content []byte) (types.Product, error)
}

// ForURL picks the extractor matching the retailer hosting rawURL.
// Amazon is the default, matching the original selector set.
func ForURL(rawURL string) (Extractor, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, &ExtractError{Reason: fmt.Sprintf("invalid URL %q", rawURL)}
	}
	if strings.Contains(u.Hostname(), "flipkart") {
		return flipkartExtractor{}, nil
	}
	return amazonExtractor{}, nil
}

// ParsePrice turns displayed price text into a number, stripping currency
// symbols, thousands separators and whitespace.
func ParsePrice(text string) (float64, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimLeft(cleaned, "$₹€£ ")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSuffix(cleaned, ".")
	if cleaned == "" {
		return 0, &ExtractError{Reason: "empty price text"}
	}
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, &ExtractError{Reason: fmt.Sprintf("non-numeric price text %q", text)}
	}
	return price, nil
}

type amazonExtractor struct{}

func (amazonExtractor) Extract(content []byte) (types.Product, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return types.Product{}, &ExtractError{Reason: fmt.Sprintf("parse html: %v", err)}
	}

	priceText := doc.Find("span.a-price-whole").First().Text()
	price, err := ParsePrice(priceText)
	if err != nil {
		return types.Product{}, err
	}

	product := types.Product{
		Title: strings.TrimSpace(doc.Find("div#centerCol span#productTitle").Text()),
		Price: price,
	}
	if src, exists := doc.Find("div.imgTagWrapper img").Attr("src"); exists {
		product.ImageURL = src
	}
	if specs, err := doc.Find("#productOverview_feature_div").Html(); err == nil {
		product.SpecsHTML = specs
	}
	if desc, err := doc.Find("#feature-bullets > ul").Html(); err == nil {
		product.Description = desc
	}
	return product, nil
}

type flipkartExtractor struct{}

func (flipkartExtractor) Extract(content []byte) (types.Product, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return types.Product{}, &ExtractError{Reason: fmt.Sprintf("parse html: %v", err)}
	}

	priceText := doc.Find("div._30jeq3._16Jk6d").First().Text()
	price, err := ParsePrice(priceText)
	if err != nil {
		return types.Product{}, err
	}

	product := types.Product{
		Title:       strings.TrimSpace(doc.Find("span.B_NuCI").Text()),
		Price:       price,
		Description: strings.TrimSpace(doc.Find("div._1mXcCf").Text()),
	}
	if src, exists := doc.Find("div._396cs4._2amPTt img").Attr("src"); exists {
		product.ImageURL = src
	}
	return product, nil
}
