package search

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustinTDCT/CineCurator/internal/models"
)

func ids(picks []models.RecentPick) []int {
	out := make([]int, len(picks))
	for i, p := range picks {
		out[i] = p.ID
	}
	return out
}

func TestPushRecent(t *testing.T) {
	var list []models.RecentPick
	for i := 1; i <= 7; i++ {
		list = pushRecent(list, models.RecentPick{ID: i, Title: "m"}, 5)
	}
	assert.Equal(t, []int{7, 6, 5, 4, 3}, ids(list))

	list = pushRecent(list, models.RecentPick{ID: 4, Title: "again"}, 5)
	assert.Equal(t, []int{4, 7, 6, 5, 3}, ids(list))
	assert.Equal(t, "again", list[0].Title)
}

func TestMemoryRecentStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryRecentStore(5)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, s.Add(ctx, models.RecentPick{ID: 1, Title: "Heat"}))
	require.NoError(t, s.Add(ctx, models.RecentPick{ID: 2, Title: "Ronin"}))
	require.NoError(t, s.Add(ctx, models.RecentPick{ID: 1, Title: "Heat"}))

	list, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, ids(list))
}

// Skipped when no Redis is listening on localhost.
func TestRedisRecentStore(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Redis not available, skipping integration test")
	}
	defer client.Close()

	s := NewRedisRecentStore(client, 3)
	s.key = "cinecurator:test:recent:" + time.Now().Format(time.RFC3339Nano)
	defer client.Del(ctx, s.key)

	for i := 1; i <= 4; i++ {
		require.NoError(t, s.Add(ctx, models.RecentPick{ID: i, Title: "m"}))
	}
	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, 2}, ids(list))
}
