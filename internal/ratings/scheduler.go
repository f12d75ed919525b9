package ratings

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
)

// syncTimeout bounds a single scheduled run.
const syncTimeout = 10 * time.Minute

// Scheduler runs the rating sync on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	syncer RatingSyncer
}

// NewScheduler registers syncer on spec, a standard five field cron
// expression or a descriptor such as "@every 6h".
func NewScheduler(syncer RatingSyncer, spec string) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		syncer: syncer,
	}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid rating sync schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins running scheduled jobs in the background.
func (s *Scheduler) Start() {
	log.Info("Starting rating sync scheduler", "entries", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop prevents new runs and waits for a running one to finish.
func (s *Scheduler) Stop() {
	log.Info("Stopping rating sync scheduler")
	<-s.cron.Stop().Done()
}

// Next returns the time of the next scheduled run.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()
	result, err := s.syncer.Sync(ctx, SyncOptions{})
	if err != nil {
		log.Error("Scheduled rating sync failed", "error", err)
		return
	}
	log.Info("Scheduled rating sync completed", "applied", result.MatchesApplied)
}
