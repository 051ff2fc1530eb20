package scraper_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"price-tracker-bot/internal/scraper"
)

func TestFetchRetriesUntilSuccess(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("page content"))
	}))
	defer srv.Close()

	f := scraper.NewFetcher(time.Second, "test-agent", 3)
	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "page content", string(body))
	assert.Equal(t, int32(3), hits.Load(), "failed attempts are retried immediately, success stops")
}

func TestFetchExhaustsAttempts(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := scraper.NewFetcher(time.Second, "test-agent", 3)
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var fetchErr *scraper.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, srv.URL, fetchErr.URL)
	assert.Equal(t, 3, fetchErr.Attempts)
	assert.Equal(t, int32(3), hits.Load(), "no further retries after the attempt limit")
}

func TestFetchConnectionErrorIsTerminalAfterRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening any more

	f := scraper.NewFetcher(time.Second, "test-agent", 2)
	_, err := f.Fetch(context.Background(), srv.URL)

	var fetchErr *scraper.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, 2, fetchErr.Attempts)
}

func TestFetchSendsUserAgent(t *testing.T) {
	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	f := scraper.NewFetcher(time.Second, "price-tracker-bot/1.0", 1)
	_, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "price-tracker-bot/1.0", agent)
}
