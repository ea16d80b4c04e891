package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustinTDCT/CineCurator/internal/metrics"
	"github.com/JustinTDCT/CineCurator/internal/movies"
)

type stubRefresher struct {
	calls []int64
	err   error
}

func (s *stubRefresher) Refresh(_ context.Context, id int64) (*movies.Movie, error) {
	s.calls = append(s.calls, id)
	if s.err != nil {
		return nil, s.err
	}
	return &movies.Movie{ID: id, Title: "The Matrix"}, nil
}

type recordingNotifier struct {
	events []string
	data   []interface{}
}

func (n *recordingNotifier) Broadcast(event string, data interface{}) {
	n.events = append(n.events, event)
	n.data = append(n.data, data)
}

func refreshTask(t *testing.T, id int64) *asynq.Task {
	t.Helper()
	payload, err := json.Marshal(RefreshPayload{MovieID: id})
	require.NoError(t, err)
	return asynq.NewTask(TaskMetadataRefresh, payload)
}

func TestRefreshTaskID(t *testing.T) {
	assert.Equal(t, "metadata:refresh:42", refreshTaskID(42))
}

func TestRefreshHandler_Success(t *testing.T) {
	ref := &stubRefresher{}
	notifier := &recordingNotifier{}
	h := NewRefreshHandler(ref, notifier)
	before := testutil.ToFloat64(metrics.Jobs.WithLabelValues(TaskMetadataRefresh, "ok"))

	require.NoError(t, h.ProcessTask(context.Background(), refreshTask(t, 7)))

	assert.Equal(t, []int64{7}, ref.calls)
	assert.Equal(t, []string{"movie:refreshed"}, notifier.events)
	m, ok := notifier.data[0].(*movies.Movie)
	require.True(t, ok)
	assert.Equal(t, int64(7), m.ID)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.Jobs.WithLabelValues(TaskMetadataRefresh, "ok")))
}

func TestRefreshHandler_NotFoundSkipsRetry(t *testing.T) {
	h := NewRefreshHandler(&stubRefresher{err: movies.ErrNotFound}, nil)

	err := h.ProcessTask(context.Background(), refreshTask(t, 9))
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.ErrorIs(t, err, movies.ErrNotFound)
}

func TestRefreshHandler_TransientErrorRetries(t *testing.T) {
	notifier := &recordingNotifier{}
	h := NewRefreshHandler(&stubRefresher{err: errors.New("tmdb down")}, notifier)

	err := h.ProcessTask(context.Background(), refreshTask(t, 9))
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, notifier.events)
}

func TestRefreshHandler_BadPayload(t *testing.T) {
	ref := &stubRefresher{}
	h := NewRefreshHandler(ref, nil)

	err := h.ProcessTask(context.Background(), asynq.NewTask(TaskMetadataRefresh, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, ref.calls)
}
