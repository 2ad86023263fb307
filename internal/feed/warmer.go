package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Warmer periodically re-runs the trending seed queries so the trending
// view serves from a warm cache. Expired entries are still only purged
// lazily; the warmer just refreshes values before they go stale.
type Warmer struct {
	cron *cron.Cron
	svc  *Service
	log  *slog.Logger
}

// NewWarmer creates a Warmer that refreshes the seed caches every interval.
func NewWarmer(svc *Service, interval time.Duration, log *slog.Logger) (*Warmer, error) {
	c := cron.New()

	w := &Warmer{
		cron: c,
		svc:  svc,
		log:  log,
	}

	if _, err := c.AddFunc("@every "+interval.String(), w.warm); err != nil {
		return nil, err
	}

	return w, nil
}

// Start begins the warm schedule.
func (w *Warmer) Start() {
	w.log.Info("trending warmer started")
	w.cron.Start()
}

// Stop gracefully stops the schedule, waiting for a running warm to finish.
func (w *Warmer) Stop() context.Context {
	w.log.Info("trending warmer stopping")
	return w.cron.Stop()
}

func (w *Warmer) warm() {
	w.log.Debug("warming trending seeds")
	w.svc.WarmTrending(context.Background())
}
