package jobs

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/JustinTDCT/CineCurator/internal/logging"
)

type IDLister interface {
	IDs(ctx context.Context) ([]int64, error)
}

type RefreshEnqueuer interface {
	EnqueueRefresh(movieID int64) (string, error)
}

// Scheduler periodically queues a metadata refresh for every saved movie.
type Scheduler struct {
	cron     *cron.Cron
	spec     string
	lister   IDLister
	enqueuer RefreshEnqueuer
}

func NewScheduler(spec string, lister IDLister, enqueuer RefreshEnqueuer) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		spec:     spec,
		lister:   lister,
		enqueuer: enqueuer,
	}
}

// Start registers the refresh job and starts the cron loop. An empty
// schedule disables it.
func (s *Scheduler) Start() error {
	log := logging.Component("scheduler")
	if s.spec == "" {
		log.Info().Msg("refresh schedule empty, scheduler disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(s.spec, func() { s.EnqueueAll(context.Background()) }); err != nil {
		return fmt.Errorf("parse refresh schedule %q: %w", s.spec, err)
	}
	s.cron.Start()
	log.Info().Str("schedule", s.spec).Msg("metadata refresh scheduler started")
	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// EnqueueAll returns how many refreshes were queued.
func (s *Scheduler) EnqueueAll(ctx context.Context) int {
	log := logging.Component("scheduler")
	ids, err := s.lister.IDs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("list movies for refresh")
		return 0
	}

	queued := 0
	for _, id := range ids {
		if _, err := s.enqueuer.EnqueueRefresh(id); err != nil {
			log.Warn().Err(err).Int64("movie_id", id).Msg("enqueue refresh")
			continue
		}
		queued++
	}
	log.Info().Int("queued", queued).Int("total", len(ids)).Msg("scheduled metadata refresh")
	return queued
}
