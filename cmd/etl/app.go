package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-media-etl/infrastructure/database"
	"github.com/vfg2006/paid-media-etl/infrastructure/integrator/drive"
	"github.com/vfg2006/paid-media-etl/infrastructure/integrator/facebook"
	"github.com/vfg2006/paid-media-etl/infrastructure/integrator/httpclient"
	"github.com/vfg2006/paid-media-etl/infrastructure/integrator/linkedin"
	"github.com/vfg2006/paid-media-etl/infrastructure/integrator/tiktok"
	"github.com/vfg2006/paid-media-etl/infrastructure/integrator/youtube"
	"github.com/vfg2006/paid-media-etl/infrastructure/migration"
	"github.com/vfg2006/paid-media-etl/infrastructure/registry"
	"github.com/vfg2006/paid-media-etl/infrastructure/repository"
	"github.com/vfg2006/paid-media-etl/internal/config"
	"github.com/vfg2006/paid-media-etl/internal/usecases/extracting"
	"github.com/vfg2006/paid-media-etl/internal/usecases/ingesting"
	"github.com/vfg2006/paid-media-etl/internal/usecases/loading"
	"github.com/vfg2006/paid-media-etl/internal/usecases/orchestrating"
	"github.com/vfg2006/paid-media-etl/internal/usecases/recording"
	"github.com/vfg2006/paid-media-etl/internal/usecases/resolving"
	"github.com/vfg2006/paid-media-etl/internal/usecases/transforming"
)

// app holds the wired pipeline for one process
type app struct {
	cfg          *config.Config
	pool         database.Pool
	ops          recording.OpsLogger
	orchestrator orchestrating.Orchestrator
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	pool, err := database.NewPool(cfg.Database)
	if err != nil {
		return nil, err
	}

	ops := opsLogger(ctx, cfg, pool)
	tables := repository.NewTableRepository(pool)
	namer := resolving.NewNamer(cfg.Reference.ReservedDatabases)
	loader := loading.NewLoader(tables, namer, cfg.Reference, ops)

	sources := platformSources(cfg)
	listers := make([]resolving.AccountLister, 0, len(sources))
	for _, source := range sources {
		if lister, ok := source.Pages.(resolving.AccountLister); ok {
			listers = append(listers, lister)
		}
	}

	var ingestor ingesting.Ingestor
	if cfg.Drive.Enabled {
		ingestor, err = driveIngestor(ctx, cfg, loader, tables, namer, ops)
		if err != nil {
			pool.Close()
			return nil, err
		}
	}

	orchestrator := orchestrating.NewOrchestrator(
		resolving.NewResolver(listers...),
		sources,
		transforming.NewTransformer(time.Now),
		loader,
		ingestor,
		ops,
		cfg.Reference,
		orchestrating.Options{
			MaxConcurrentJobs:   cfg.Pipeline.MaxConcurrentJobs,
			HistoricalChunkDays: cfg.Pipeline.HistoricalChunkDays,
			OutputDir:           cfg.Pipeline.OutputDir,
		},
	)

	return &app{cfg: cfg, pool: pool, ops: ops, orchestrator: orchestrator}, nil
}

func (a *app) Close() {
	if err := a.pool.Close(); err != nil {
		logrus.WithError(err).Warn("error closing database pool")
	}
}

func platformSources(cfg *config.Config) []orchestrating.Source {
	http := httpclient.New(httpclient.RetryPolicy{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   cfg.Retry.BaseDelay,
		Multiplier:  cfg.Retry.Multiplier,
	}, 0)

	return []orchestrating.Source{
		{
			Pages:   facebook.New(cfg.Facebook, http),
			Options: extracting.Options{ChunkDays: cfg.ChunkDaysFor(cfg.Facebook.ChunkDays), RequestDelay: cfg.Facebook.RequestDelay},
		},
		{
			Pages:   tiktok.New(cfg.TikTok, http),
			Options: extracting.Options{ChunkDays: cfg.ChunkDaysFor(cfg.TikTok.ChunkDays), RequestDelay: cfg.TikTok.RequestDelay},
		},
		{
			Pages:   linkedin.New(cfg.LinkedIn, http),
			Options: extracting.Options{ChunkDays: cfg.ChunkDaysFor(cfg.LinkedIn.ChunkDays), RequestDelay: cfg.LinkedIn.RequestDelay},
		},
		{
			Pages:   youtube.New(cfg.YouTube, http),
			Options: extracting.Options{ChunkDays: cfg.ChunkDaysFor(cfg.YouTube.ChunkDays), RequestDelay: cfg.YouTube.RequestDelay},
		},
	}
}

// opsLogger prepares the etl_logs store. Telemetry never blocks a run, so any
// failure falls back to the process log.
func opsLogger(ctx context.Context, cfg *config.Config, pool database.Pool) recording.OpsLogger {
	if !cfg.OpsLog.Enabled {
		return recording.NewLogrusLogger()
	}

	logger := logrus.WithField("database", cfg.OpsLog.Database)
	if err := pool.EnsureDatabase(ctx, cfg.OpsLog.Database); err != nil {
		logger.WithError(err).Warn("ops log database unavailable, logging to console only")
		return recording.NewLogrusLogger()
	}

	conn, err := pool.DB(ctx, cfg.OpsLog.Database)
	if err != nil {
		logger.WithError(err).Warn("ops log database unavailable, logging to console only")
		return recording.NewLogrusLogger()
	}

	if err := migration.ApplyOpsLog(ctx, conn); err != nil {
		logger.WithError(err).Warn("ops log migration failed, logging to console only")
		return recording.NewLogrusLogger()
	}

	return recording.NewRepositoryLogger(repository.NewOpsLogRepository(pool, cfg.OpsLog.Database))
}

func driveIngestor(
	ctx context.Context,
	cfg *config.Config,
	loader loading.Loader,
	tables repository.TableRepository,
	namer *resolving.Namer,
	ops recording.OpsLogger,
) (ingesting.Ingestor, error) {
	source, err := drive.New(ctx, cfg.Drive)
	if err != nil {
		return nil, err
	}

	processed := registry.NewProcessedFileRegistry(cfg.Drive.RegistryPath)
	if err := processed.Load(); err != nil {
		return nil, fmt.Errorf("load processed files registry: %w", err)
	}

	return ingesting.NewIngestor(source, processed, loader, tables, namer, cfg.Reference.FileRoutes, ops), nil
}
