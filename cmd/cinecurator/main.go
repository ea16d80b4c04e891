package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/JustinTDCT/CineCurator/internal/config"
	"github.com/JustinTDCT/CineCurator/internal/db"
	"github.com/JustinTDCT/CineCurator/internal/logging"
	"github.com/JustinTDCT/CineCurator/internal/metadata"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:           "cinecurator",
		Short:         "Movie catalog curation: search, franchise grouping and tag suggestions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_PATH"), "path to a YAML config file")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(tagsCmd())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	return cfg, nil
}

func openDB(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return db.Connect(ctx, db.Options{
		URL:          cfg.Database.URL,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	})
}

// openRedis returns nil when Redis is not configured or not reachable.
func openRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	if !cfg.Redis.Enabled() {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logging.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable, using in-memory cache")
		rdb.Close()
		return nil
	}
	return rdb
}

// newProvider builds the TMDB client behind a response cache.
func newProvider(cfg *config.Config, rdb *redis.Client) *metadata.CachedProvider {
	client := metadata.NewTMDBClient(metadata.TMDBOptions{
		APIKey:         cfg.TMDB.APIKey,
		ReadToken:      cfg.TMDB.ReadToken,
		BaseURL:        cfg.TMDB.BaseURL,
		Timeout:        cfg.TMDB.Timeout,
		RequestsPerSec: cfg.TMDB.RequestsPerSec,
		Burst:          cfg.TMDB.Burst,
	})

	var cache metadata.Cache
	if rdb != nil {
		cache = metadata.NewRedisCache(rdb)
	} else {
		cache = metadata.NewMemoryCache(cfg.TMDB.SearchCacheTTL)
	}
	return metadata.NewCachedProvider(client, cache, cfg.TMDB.SearchCacheTTL, cfg.TMDB.DetailsCacheTTL)
}
