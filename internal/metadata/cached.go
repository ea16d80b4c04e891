package metadata

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/JustinTDCT/CineCurator/internal/logging"
	"github.com/JustinTDCT/CineCurator/internal/metrics"
	"github.com/JustinTDCT/CineCurator/internal/textutil"
)

// CachedProvider serves repeated searches and detail lookups from a Cache.
// Cache failures are logged and fall through to the wrapped provider.
type CachedProvider struct {
	next       Provider
	cache      Cache
	searchTTL  time.Duration
	detailsTTL time.Duration
}

func NewCachedProvider(next Provider, cache Cache, searchTTL, detailsTTL time.Duration) *CachedProvider {
	return &CachedProvider{next: next, cache: cache, searchTTL: searchTTL, detailsTTL: detailsTTL}
}

func (p *CachedProvider) SearchMovies(ctx context.Context, query string, page int) (*SearchPage, error) {
	key := fmt.Sprintf("tmdb:search:%d:%s", page, textutil.Fold(query))
	var out SearchPage
	if p.lookup(ctx, key, &out) {
		return &out, nil
	}
	res, err := p.next.SearchMovies(ctx, query, page)
	if err != nil {
		return nil, err
	}
	p.store(ctx, key, res, p.searchTTL)
	return res, nil
}

func (p *CachedProvider) MovieDetails(ctx context.Context, id int) (*MovieDetails, error) {
	key := "tmdb:movie:" + strconv.Itoa(id)
	var out MovieDetails
	if p.lookup(ctx, key, &out) {
		return &out, nil
	}
	res, err := p.next.MovieDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	p.store(ctx, key, res, p.detailsTTL)
	return res, nil
}

// Refresh bypasses the cache for one movie and stores the fresh copy.
func (p *CachedProvider) Refresh(ctx context.Context, id int) (*MovieDetails, error) {
	res, err := p.next.MovieDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	p.store(ctx, "tmdb:movie:"+strconv.Itoa(id), res, p.detailsTTL)
	return res, nil
}

func (p *CachedProvider) lookup(ctx context.Context, key string, dest interface{}) bool {
	b, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("metadata cache read failed")
		return false
	}
	if !ok || json.Unmarshal(b, dest) != nil {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return true
}

func (p *CachedProvider) store(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := p.cache.Set(ctx, key, b, ttl); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("metadata cache write failed")
	}
}
