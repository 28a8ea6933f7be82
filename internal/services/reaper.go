package services

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/quizdesk/quiz-service/internal/session"
)

// Reaper sweeps the live session store and force-finalizes sessions whose
// countdown ran out between submissions. The countdown has one-second
// resolution, so the sweep runs that often.
type Reaper struct {
	scheduler *gocron.Scheduler
	store     *session.Store
	sessions  SessionService
	logger    *slog.Logger
	interval  time.Duration
}

func NewReaper(store *session.Store, sessions SessionService, logger *slog.Logger, interval time.Duration) *Reaper {
	if interval <= 0 {
		interval = time.Second
	}
	return &Reaper{
		scheduler: gocron.NewScheduler(time.UTC),
		store:     store,
		sessions:  sessions,
		logger:    logger,
		interval:  interval,
	}
}

// Start begins the background sweep in a non-blocking manner.
func (r *Reaper) Start() error {
	if _, err := r.scheduler.Every(r.interval).Do(r.sweep); err != nil {
		return err
	}
	r.scheduler.StartAsync()
	r.logger.Info("Session reaper started", "interval", r.interval.String())
	return nil
}

// Stop terminates the background sweep.
func (r *Reaper) Stop() {
	r.scheduler.Stop()
}

func (r *Reaper) sweep() {
	expired := r.store.Expired()
	for _, sess := range expired {
		r.sessions.FinalizeExpired(sess)
	}
	if len(expired) > 0 {
		r.logger.Info("Reaped expired sessions", "count", len(expired))
	}
}
