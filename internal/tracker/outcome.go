package tracker

import "time"

// Outcome classifies what happened to one alert during one tick.
type Outcome int

const (
	OutcomeNoChange Outcome = iota
	OutcomeFired
	OutcomeFetchFailed
	OutcomeExtractFailed
	OutcomeNotifyFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoChange:
		return "no-change"
	case OutcomeFired:
		return "fired-and-notified"
	case OutcomeFetchFailed:
		return "fetch-failed"
	case OutcomeExtractFailed:
		return "extraction-failed"
	case OutcomeNotifyFailed:
		return "notify-failed"
	}
	return "unknown"
}

// Result is the per-alert record of a tick. It lives only as long as the
// run that produced it.
type Result struct {
	AlertID int64
	URL     string
	Outcome Outcome
	Price   float64
	Err     error
}

// Summary aggregates one tick's results for logging and metrics.
type Summary struct {
	Checked       int
	Fired         int
	NoChange      int
	FetchFailed   int
	ExtractFailed int
	NotifyFailed  int
	Duration      time.Duration
}

func Summarize(results []Result, duration time.Duration) Summary {
	s := Summary{Checked: len(results), Duration: duration}
	for _, r := range results {
		switch r.Outcome {
		case OutcomeFired:
			s.Fired++
		case OutcomeNoChange:
			s.NoChange++
		case OutcomeFetchFailed:
			s.FetchFailed++
		case OutcomeExtractFailed:
			s.ExtractFailed++
		case OutcomeNotifyFailed:
			s.NotifyFailed++
		}
	}
	return s
}
