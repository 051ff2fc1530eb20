package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	log "github.com/sirupsen/logrus"

	"price-tracker-bot/config"
	"price-tracker-bot/internal/database"
	"price-tracker-bot/internal/notifier"
	"price-tracker-bot/internal/scraper"
	"price-tracker-bot/internal/tracker"
	"price-tracker-bot/internal/types"
)

type TrackerMetrics struct {
	TicksTotal       prometheus.Counter
	TicksSkipped     prometheus.Counter
	AlertsChecked    prometheus.Counter
	AlertsFired      prometheus.Counter
	FetchFailures    prometheus.Counter
	ExtractFailures  prometheus.Counter
	NotifyFailures   prometheus.Counter
	LastTickDuration prometheus.Gauge
}

var metrics = NewTrackerMetrics()

func init() {
	config.InitConfig()
	setupLogging()
}

func NewTrackerMetrics() *TrackerMetrics {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pricetracker",
			Subsystem: "batch",
			Name:      name,
			Help:      help,
		})
	}

	metrics := &TrackerMetrics{
		TicksTotal:      counter("ticks_total", "The total number of completed tracker ticks"),
		TicksSkipped:    counter("ticks_skipped", "The number of triggers skipped because a tick was still running"),
		AlertsChecked:   counter("alerts_checked", "The total number of alerts evaluated"),
		AlertsFired:     counter("alerts_fired", "The total number of alerts that fired and were notified"),
		FetchFailures:   counter("fetch_failures", "The total number of alerts whose page fetch failed terminally"),
		ExtractFailures: counter("extract_failures", "The total number of alerts whose price extraction failed"),
		NotifyFailures:  counter("notify_failures", "The total number of alerts whose notification delivery failed"),
		LastTickDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pricetracker",
			Subsystem: "batch",
			Name:      "last_tick_duration_seconds",
			Help:      "Duration of the most recent tick",
		}),
	}

	prometheus.MustRegister(metrics.TicksTotal)
	prometheus.MustRegister(metrics.TicksSkipped)
	prometheus.MustRegister(metrics.AlertsChecked)
	prometheus.MustRegister(metrics.AlertsFired)
	prometheus.MustRegister(metrics.FetchFailures)
	prometheus.MustRegister(metrics.ExtractFailures)
	prometheus.MustRegister(metrics.NotifyFailures)
	prometheus.MustRegister(metrics.LastTickDuration)

	return metrics
}

func main() {
	err := database.InitDB(config.GetString("db_path"))
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	LoadMetricsFromDB()

	fetcher := scraper.NewFetcher(
		time.Duration(config.GetInt("fetch_timeout_seconds"))*time.Second,
		config.GetString("user_agent"),
		config.GetInt("retry_count"),
	)

	emailNotifier := notifier.NewEmailNotifier(notifier.SMTPConfig{
		Host:     config.GetString("smtp_host"),
		Port:     config.GetInt("smtp_port"),
		User:     config.GetString("smtp_user"),
		Password: config.GetString("smtp_password"),
		From:     config.GetString("smtp_from"),
	})

	t := tracker.New(
		storeAdapter{},
		fetcher,
		nil,
		emailNotifier,
		config.GetInt("max_concurrent_requests"),
	)

	scheduler := tracker.NewScheduler(t, config.GetString("cron_schedule"))
	scheduler.OnSummary = recordSummary
	scheduler.OnSkip = metrics.TicksSkipped.Inc

	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}

	go func() {
		for {
			time.Sleep(5 * time.Minute)
			SaveMetricsToDB()
		}
	}()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		scheduler.Stop()
		SaveMetricsToDB()
		log.Println("Metrics saved, shutting down...")
		os.Exit(0)
	}()

	if err := launchMetricsAndHealthServer(config.GetInt("metrics_port")); err != nil {
		log.Fatalf("Failed to start metrics and health server: %v", err)
	}
}

func setupLogging() {
	log.SetLevel(log.InfoLevel)
	if config.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
	}
	log.Debug("Starting price tracker bot...")
}

// storeAdapter exposes the database package as the tracker's Store.
type storeAdapter struct{}

func (storeAdapter) GetAllAlerts() ([]types.Alert, error)       { return database.GetAllAlerts() }
func (storeAdapter) DeleteAlert(id int64) error                 { return database.DeleteAlert(id) }
func (storeAdapter) UpdateAlertPrice(id int64, p float64) error { return database.UpdateAlertPrice(id, p) }

func recordSummary(s tracker.Summary) {
	metrics.TicksTotal.Inc()
	metrics.AlertsChecked.Add(float64(s.Checked))
	metrics.AlertsFired.Add(float64(s.Fired))
	metrics.FetchFailures.Add(float64(s.FetchFailed))
	metrics.ExtractFailures.Add(float64(s.ExtractFailed))
	metrics.NotifyFailures.Add(float64(s.NotifyFailed))
	metrics.LastTickDuration.Set(s.Duration.Seconds())
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func launchMetricsAndHealthServer(port int) error {
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/health", healthCheckHandler)

	log.Infof("Launching metrics and health endpoint on :%d", port)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), http.DefaultServeMux)
}

func LoadMetricsFromDB() {
	for name, c := range persistedCounters() {
		value, _ := database.GetMetric(name)
		c.Add(value)
	}
	log.Println("Metrics loaded from database.")
}

func SaveMetricsToDB() {
	for name, c := range persistedCounters() {
		database.SaveMetric(name, GetMetricValue(c))
	}
	log.Println("Metrics saved to database.")
}

func persistedCounters() map[string]prometheus.Counter {
	return map[string]prometheus.Counter{
		"ticks_total":      metrics.TicksTotal,
		"ticks_skipped":    metrics.TicksSkipped,
		"alerts_checked":   metrics.AlertsChecked,
		"alerts_fired":     metrics.AlertsFired,
		"fetch_failures":   metrics.FetchFailures,
		"extract_failures": metrics.ExtractFailures,
		"notify_failures":  metrics.NotifyFailures,
	}
}

func GetMetricValue(metric prometheus.Collector) float64 {
	var metricValue float64
	metricChan := make(chan prometheus.Metric, 1)
	metric.Collect(metricChan)
	close(metricChan)

	metricProto := &dto.Metric{}
	if err := (<-metricChan).Write(metricProto); err != nil {
		log.Printf("Failed to read metric value: %v", err)
		return 0
	}

	if metricProto.Counter != nil {
		metricValue = metricProto.Counter.GetValue()
	} else if metricProto.Gauge != nil {
		metricValue = metricProto.Gauge.GetValue()
	}
	return metricValue
}
