package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/JustinTDCT/CineCurator/internal/api"
	"github.com/JustinTDCT/CineCurator/internal/jobs"
	"github.com/JustinTDCT/CineCurator/internal/logging"
	"github.com/JustinTDCT/CineCurator/internal/movies"
	"github.com/JustinTDCT/CineCurator/internal/search"
	"github.com/JustinTDCT/CineCurator/internal/settings"
	"github.com/JustinTDCT/CineCurator/internal/version"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, job worker and refresh scheduler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ver := version.Load()
	log := logging.Component("main")
	log.Info().Str("version", ver.Version).Msg("CineCurator starting")

	database, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := database.Migrate(ctx); err != nil {
		return err
	}

	cfg.MergeFromDB(database.DB)
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if !cfg.TMDB.Configured() {
		log.Warn().Msg("no TMDB credentials configured, searches will fail")
	}

	rdb := openRedis(ctx, cfg)
	if rdb != nil {
		defer rdb.Close()
	}

	provider := newProvider(cfg, rdb)
	searchSvc := search.NewService(provider, cfg.Search.MinQueryLength)
	movieSvc := movies.NewService(movies.NewRepository(database.DB), provider)

	var recent search.RecentStore = search.NewMemoryRecentStore(cfg.Search.RecentLimit)
	if rdb != nil {
		recent = search.NewRedisRecentStore(rdb, cfg.Search.RecentLimit)
	}

	hub := api.NewWSHub()
	deps := api.Deps{
		DB:       database,
		Provider: provider,
		Search:   searchSvc,
		Recent:   recent,
		Movies:   movieSvc,
		Settings: settings.NewRepository(database.DB),
		Hub:      hub,
		Version:  ver.Version,
	}

	// Without Redis there is no queue; refreshes run inline and the
	// scheduler stays off.
	var (
		queue     *jobs.Queue
		scheduler *jobs.Scheduler
	)
	if rdb != nil {
		queue = jobs.NewQueue(cfg.Redis.Addr, cfg.Jobs.Concurrency)
		jobs.RegisterHandlers(queue, movieSvc, hub)
		if err := queue.Start(ctx); err != nil {
			return err
		}
		defer queue.Stop()
		deps.Queue = queue

		scheduler = jobs.NewScheduler(cfg.Jobs.RefreshSchedule, movieSvc, queue)
		if err := scheduler.Start(); err != nil {
			return err
		}
		defer scheduler.Stop()
	}

	srv := api.NewServer(cfg, deps)
	httpServer := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return err
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
