package metadata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JustinTDCT/CineCurator/internal/models"
)

type countingProvider struct {
	searches int
	details  int
	err      error
}

func (p *countingProvider) SearchMovies(_ context.Context, query string, page int) (*SearchPage, error) {
	p.searches++
	if p.err != nil {
		return nil, p.err
	}
	return &SearchPage{Page: page, Results: []models.SearchCandidate{{ID: 1, Title: query}}}, nil
}

func (p *countingProvider) MovieDetails(_ context.Context, id int) (*MovieDetails, error) {
	p.details++
	if p.err != nil {
		return nil, p.err
	}
	return &MovieDetails{ID: id, Runtime: 100 + p.details}, nil
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("cache down")
}

func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("cache down")
}

func TestCachedProvider_Search(t *testing.T) {
	next := &countingProvider{}
	p := NewCachedProvider(next, NewMemoryCache(time.Minute), time.Minute, time.Hour)
	ctx := context.Background()

	first, err := p.SearchMovies(ctx, "Matrix", 1)
	require.NoError(t, err)
	second, err := p.SearchMovies(ctx, "matrix", 1)
	require.NoError(t, err)

	assert.Equal(t, 1, next.searches)
	assert.Equal(t, first.Results, second.Results)

	_, err = p.SearchMovies(ctx, "matrix", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, next.searches)
}

func TestCachedProvider_DetailsAndRefresh(t *testing.T) {
	next := &countingProvider{}
	p := NewCachedProvider(next, NewMemoryCache(time.Minute), time.Minute, time.Hour)
	ctx := context.Background()

	d, err := p.MovieDetails(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 101, d.Runtime)

	d, err = p.MovieDetails(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 101, d.Runtime)
	assert.Equal(t, 1, next.details)

	d, err = p.Refresh(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 102, d.Runtime)

	d, err = p.MovieDetails(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 102, d.Runtime)
}

func TestCachedProvider_ErrorsNotCached(t *testing.T) {
	next := &countingProvider{err: errors.New("boom")}
	p := NewCachedProvider(next, NewMemoryCache(time.Minute), time.Minute, time.Hour)

	_, err := p.SearchMovies(context.Background(), "x", 1)
	assert.Error(t, err)
	next.err = nil
	_, err = p.SearchMovies(context.Background(), "x", 1)
	assert.NoError(t, err)
	assert.Equal(t, 2, next.searches)
}

func TestCachedProvider_BrokenCacheFallsThrough(t *testing.T) {
	next := &countingProvider{}
	p := NewCachedProvider(next, brokenCache{}, time.Minute, time.Hour)

	_, err := p.SearchMovies(context.Background(), "x", 1)
	require.NoError(t, err)
	_, err = p.SearchMovies(context.Background(), "x", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, next.searches)
}

// Skipped when no Redis is listening on localhost.
func TestRedisCache(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Redis not available, skipping integration test")
	}
	defer client.Close()

	c := NewRedisCache(client)
	key := "test:" + time.Now().Format(time.RFC3339Nano)
	defer client.Del(ctx, "cinecurator:"+key)

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, key, []byte("v"), time.Minute))
	b, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v"), b)
}
