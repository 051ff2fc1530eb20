package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// maxResponseBodyBytes limits the size of fetched page responses.
const maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB

// FetchError is the terminal failure after every attempt for a URL has
// been exhausted. It is not retried again within the same tick.
type FetchError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch URL after %d attempts: %s: %v", e.Attempts, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher performs bounded-retry GETs against retailer pages.
type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxAttempts int
}

func NewFetcher(timeout time.Duration, userAgent string, maxAttempts int) *Fetcher {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Fetcher{
		client:      &http.Client{Timeout: timeout},
		userAgent:   userAgent,
		maxAttempts: maxAttempts,
	}
}

// Fetch GETs url up to the configured attempt limit. A failed attempt is
// retried immediately; after the final attempt the error is terminal.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		body, err := f.fetchOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if attempt < f.maxAttempts {
			log.Warnf("retrying fetch for URL: %s, attempt: %d, error: %v", url, attempt+1, err)
		}
	}
	return nil, &FetchError{URL: url, Attempts: f.maxAttempts, Err: lastErr}
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not build request")
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return nil, errors.Wrap(err, "could not read response body")
	}
	return body, nil
}
