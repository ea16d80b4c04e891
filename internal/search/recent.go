package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/JustinTDCT/CineCurator/internal/models"
)

// RecentStore remembers the last movies picked from search results, most
// recent first, one entry per movie id.
type RecentStore interface {
	Add(ctx context.Context, pick models.RecentPick) error
	List(ctx context.Context) ([]models.RecentPick, error)
}

// pushRecent puts pick at the front, drops older entries for the same id and
// trims to limit.
func pushRecent(list []models.RecentPick, pick models.RecentPick, limit int) []models.RecentPick {
	out := make([]models.RecentPick, 0, limit)
	out = append(out, pick)
	for _, p := range list {
		if len(out) >= limit {
			break
		}
		if p.ID != pick.ID {
			out = append(out, p)
		}
	}
	return out
}

// ──────────────────── Memory ────────────────────

type MemoryRecentStore struct {
	mu    sync.Mutex
	limit int
	items []models.RecentPick
}

func NewMemoryRecentStore(limit int) *MemoryRecentStore {
	return &MemoryRecentStore{limit: limit}
}

func (m *MemoryRecentStore) Add(_ context.Context, pick models.RecentPick) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = pushRecent(m.items, pick, m.limit)
	return nil
}

func (m *MemoryRecentStore) List(_ context.Context) ([]models.RecentPick, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.RecentPick{}, m.items...), nil
}

// ──────────────────── Redis ────────────────────

type RedisRecentStore struct {
	rdb   *redis.Client
	key   string
	limit int
}

func NewRedisRecentStore(rdb *redis.Client, limit int) *RedisRecentStore {
	return &RedisRecentStore{rdb: rdb, key: "cinecurator:recent_searches", limit: limit}
}

func (s *RedisRecentStore) List(ctx context.Context) ([]models.RecentPick, error) {
	raw, err := s.rdb.LRange(ctx, s.key, 0, int64(s.limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("recent searches: %w", err)
	}
	out := make([]models.RecentPick, 0, len(raw))
	for _, r := range raw {
		var p models.RecentPick
		if json.Unmarshal([]byte(r), &p) == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *RedisRecentStore) Add(ctx context.Context, pick models.RecentPick) error {
	current, err := s.List(ctx)
	if err != nil {
		return err
	}
	next := pushRecent(current, pick, s.limit)

	values := make([]interface{}, 0, len(next))
	for _, p := range next {
		b, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("recent searches: %w", err)
		}
		values = append(values, b)
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		pipe.RPush(ctx, s.key, values...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("recent searches: %w", err)
	}
	return nil
}
