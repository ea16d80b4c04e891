package search

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/JustinTDCT/CineCurator/internal/logging"
	"github.com/JustinTDCT/CineCurator/internal/metrics"
)

type EventKind string

const (
	EventResults EventKind = "results"
	EventError   EventKind = "error"
	EventCleared EventKind = "cleared"
)

// Event is what a Session reports back to its owner.
type Event struct {
	Kind    EventKind `json:"kind"`
	Query   string    `json:"query"`
	Result  *Result   `json:"result,omitempty"`
	Message string    `json:"message,omitempty"`
}

// Session turns a stream of keystroke-level query updates into provider
// searches. Submissions are debounced; issuing a search cancels the one in
// flight, and a cancelled search produces no event at all.
type Session struct {
	svc       *Service
	parent    context.Context
	emit      func(Event)
	debounced func(func())

	mu     sync.Mutex
	cancel context.CancelFunc
	gen    uint64
	closed bool
}

// NewSession starts a session bound to ctx. emit is called from background
// goroutines, one event at a time, and must not block for long.
func NewSession(ctx context.Context, svc *Service, wait time.Duration, emit func(Event)) *Session {
	return &Session{
		svc:       svc,
		parent:    ctx,
		emit:      emit,
		debounced: debounce.New(wait),
	}
}

// Submit schedules a search for query once input has been quiet for the
// debounce window. Only the last query of a burst runs.
func (s *Session) Submit(query string) {
	s.debounced(func() { s.run(query) })
}

// Close cancels any in-flight search. Later submissions are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.gen++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) run(query string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
	gen := s.gen

	if !s.svc.Accepts(query) {
		metrics.Searches.WithLabelValues("skipped").Inc()
		s.emit(Event{Kind: EventCleared, Query: query})
		s.mu.Unlock()
		return
	}

	ctx, cancel := context.WithCancel(s.parent)
	s.cancel = cancel
	s.mu.Unlock()

	res, err := s.svc.Search(ctx, query, 1)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen || errors.Is(err, context.Canceled) || ctx.Err() != nil {
		metrics.Searches.WithLabelValues("cancelled").Inc()
		cancel()
		return
	}
	s.cancel = nil
	cancel()

	if err != nil {
		metrics.Searches.WithLabelValues("error").Inc()
		logging.Ctx(s.parent).Error().Err(err).Str("query", query).Msg("live search failed")
		s.emit(Event{Kind: EventError, Query: query, Message: FailureMessage})
		return
	}
	metrics.Searches.WithLabelValues("ok").Inc()
	s.emit(Event{Kind: EventResults, Query: query, Result: res})
}
