package jobs

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"

	"github.com/JustinTDCT/CineCurator/internal/logging"
	"github.com/JustinTDCT/CineCurator/internal/metrics"
	"github.com/JustinTDCT/CineCurator/internal/movies"
)

// ──────── Payloads ────────

type RefreshPayload struct {
	MovieID int64 `json:"movie_id"`
}

func refreshTaskID(movieID int64) string {
	return fmt.Sprintf("%s:%d", TaskMetadataRefresh, movieID)
}

type EventNotifier interface {
	Broadcast(event string, data interface{})
}

type Refresher interface {
	Refresh(ctx context.Context, id int64) (*movies.Movie, error)
}

// ──────── Metadata Refresh Handler ────────

type RefreshHandler struct {
	movies   Refresher
	notifier EventNotifier
}

func NewRefreshHandler(m Refresher, notifier EventNotifier) *RefreshHandler {
	return &RefreshHandler{movies: m, notifier: notifier}
}

func (h *RefreshHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload RefreshPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		metrics.Jobs.WithLabelValues(TaskMetadataRefresh, "error").Inc()
		return fmt.Errorf("unmarshal: %w: %w", err, asynq.SkipRetry)
	}

	log := logging.Component("jobs").With().Int64("movie_id", payload.MovieID).Logger()
	m, err := h.movies.Refresh(ctx, payload.MovieID)
	if err != nil {
		metrics.Jobs.WithLabelValues(TaskMetadataRefresh, "error").Inc()
		// A deleted movie will never succeed.
		if movies.IsNotFound(err) {
			log.Info().Msg("movie gone, dropping refresh")
			return fmt.Errorf("refresh movie %d: %w: %w", payload.MovieID, err, asynq.SkipRetry)
		}
		return fmt.Errorf("refresh movie %d: %w", payload.MovieID, err)
	}

	metrics.Jobs.WithLabelValues(TaskMetadataRefresh, "ok").Inc()
	log.Debug().Str("title", m.Title).Msg("metadata refreshed")
	if h.notifier != nil {
		h.notifier.Broadcast("movie:refreshed", m)
	}
	return nil
}

func RegisterHandlers(q *Queue, m Refresher, notifier EventNotifier) {
	q.RegisterHandler(TaskMetadataRefresh, NewRefreshHandler(m, notifier))
}
