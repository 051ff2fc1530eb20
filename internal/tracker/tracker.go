package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"price-tracker-bot/internal/notifier"
	"price-tracker-bot/internal/scraper"
	"price-tracker-bot/internal/types"
)

// Store is the persistent alert set. Deleting a missing id must be a
// no-op success.
type Store interface {
	GetAllAlerts() ([]types.Alert, error)
	DeleteAlert(id int64) error
	UpdateAlertPrice(id int64, price float64) error
}

// Fetcher retrieves raw page content for a tracked URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ExtractFunc maps raw page content to a current price.
type ExtractFunc func(url string, content []byte) (float64, error)

// DefaultExtract picks a retailer extractor by URL host.
func DefaultExtract(url string, content []byte) (float64, error) {
	extractor, err := scraper.ForURL(url)
	if err != nil {
		return 0, err
	}
	product, err := extractor.Extract(content)
	if err != nil {
		return 0, err
	}
	return product.Price, nil
}

// Evaluate decides whether an alert fires at the given current price.
// Equality with the target fires.
func Evaluate(alert types.Alert, currentPrice float64) bool {
	return currentPrice <= alert.TargetPrice
}

// Tracker runs the fetch, extract, evaluate, notify pipeline over the
// full alert set in bounded concurrency windows.
type Tracker struct {
	store      Store
	fetcher    Fetcher
	extract    ExtractFunc
	notifier   notifier.Notifier
	windowSize int
}

func New(store Store, fetcher Fetcher, extract ExtractFunc, n notifier.Notifier, windowSize int) *Tracker {
	if windowSize < 1 {
		windowSize = 1
	}
	if extract == nil {
		extract = DefaultExtract
	}
	return &Tracker{
		store:      store,
		fetcher:    fetcher,
		extract:    extract,
		notifier:   n,
		windowSize: windowSize,
	}
}

// Run executes one tick: loads every alert and drives the windows
// strictly in order. Only a store failure while loading aborts the tick;
// per-alert failures become Results.
func (t *Tracker) Run(ctx context.Context) (Summary, error) {
	start := time.Now()

	alerts, err := t.store.GetAllAlerts()
	if err != nil {
		return Summary{}, errors.Wrap(err, "could not load alerts")
	}
	if len(alerts) == 0 {
		log.Debug("no alerts to process")
		return Summary{Duration: time.Since(start)}, nil
	}

	results := make([]Result, 0, len(alerts))
	for i := 0; i < len(alerts); i += t.windowSize {
		end := i + t.windowSize
		if end > len(alerts) {
			end = len(alerts)
		}
		results = append(results, t.processWindow(ctx, alerts[i:end])...)
	}

	return Summarize(results, time.Since(start)), nil
}

// processWindow runs every alert in the window concurrently and waits for
// all of them to settle. Sibling failures are independent.
func (t *Tracker) processWindow(ctx context.Context, window []types.Alert) []Result {
	results := make([]Result, len(window))

	var wg sync.WaitGroup
	for i, alert := range window {
		wg.Add(1)
		go func(i int, alert types.Alert) {
			defer wg.Done()
			results[i] = t.processAlert(ctx, alert)
		}(i, alert)
	}
	wg.Wait()

	return results
}

func (t *Tracker) processAlert(ctx context.Context, alert types.Alert) Result {
	result := Result{AlertID: alert.ID, URL: alert.URL}

	content, err := t.fetcher.Fetch(ctx, alert.URL)
	if err != nil {
		log.Errorf("error processing alert for URL: %s: %v", alert.URL, err)
		result.Outcome = OutcomeFetchFailed
		result.Err = err
		return result
	}

	currentPrice, err := t.extract(alert.URL, content)
	if err != nil {
		log.Errorf("error extracting price for URL: %s: %v", alert.URL, err)
		result.Outcome = OutcomeExtractFailed
		result.Err = err
		return result
	}
	result.Price = currentPrice

	if !Evaluate(alert, currentPrice) {
		if err := t.store.UpdateAlertPrice(alert.ID, currentPrice); err != nil {
			log.Warnf("could not refresh stored price for alert %d: %v", alert.ID, err)
		}
		result.Outcome = OutcomeNoChange
		return result
	}

	body, err := notifier.RenderPriceDropEmail(alert.Title, currentPrice, alert.URL, alert.CreatedAt)
	if err != nil {
		log.Errorf("error rendering notification for alert %d: %v", alert.ID, err)
		result.Outcome = OutcomeNotifyFailed
		result.Err = err
		return result
	}

	if err := t.notifier.Notify(alert.UserEmail, notifier.SubjectPriceDrop, body); err != nil {
		// The alert stays in the store so the next tick can retry.
		log.Errorf("failed to send price drop notification to %s: %v", alert.UserEmail, err)
		result.Outcome = OutcomeNotifyFailed
		result.Err = err
		return result
	}

	log.Infof("price drop notification sent to %s for %s", alert.UserEmail, alert.URL)

	if err := t.store.DeleteAlert(alert.ID); err != nil {
		// The notification went out; a lingering alert means a duplicate
		// notification next tick, which we tolerate.
		log.Errorf("failed to delete fired alert %d: %v", alert.ID, err)
	}

	result.Outcome = OutcomeFired
	return result
}
