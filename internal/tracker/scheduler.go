package tracker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Scheduler owns the recurring-execution contract: one cron cadence, at
// most one run at a time, and error containment so a failed tick never
// takes the process down or suppresses the next tick.
type Scheduler struct {
	tracker  *Tracker
	schedule string
	cron     *cron.Cron
	running  atomic.Bool

	// OnSummary and OnSkip are optional observers, wired to metrics by
	// the caller.
	OnSummary func(Summary)
	OnSkip    func()
}

func NewScheduler(t *Tracker, schedule string) *Scheduler {
	return &Scheduler{
		tracker:  t,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Start registers the cadence and launches the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		return errors.Wrapf(err, "invalid cron schedule %q", s.schedule)
	}

	s.cron.Start()
	log.Infof("price tracker scheduled: %s", s.schedule)
	return nil
}

// Stop halts the cron loop and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RunOnce executes a single tick. If the previous tick is still running
// the trigger is skipped, not queued. Errors are logged and contained.
func (s *Scheduler) RunOnce(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		log.Warn("previous tick still running, skipping this trigger")
		if s.OnSkip != nil {
			s.OnSkip()
		}
		return
	}
	defer s.running.Store(false)

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("panic recovered in price tracker tick: %v", r)
		}
	}()

	log.Info("running price tracker...")

	summary, err := s.tracker.Run(ctx)
	if err != nil {
		log.Errorf("error in price tracking process: %v", err)
		return
	}

	log.Infof("tick complete: checked=%d fired=%d no_change=%d fetch_failed=%d extract_failed=%d notify_failed=%d duration=%s",
		summary.Checked, summary.Fired, summary.NoChange,
		summary.FetchFailed, summary.ExtractFailed, summary.NotifyFailed,
		summary.Duration.Round(time.Millisecond))

	if s.OnSummary != nil {
		s.OnSummary(summary)
	}
}
