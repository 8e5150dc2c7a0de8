package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-media-etl/internal/config"
	"github.com/vfg2006/paid-media-etl/internal/domain"
	"github.com/vfg2006/paid-media-etl/internal/usecases/orchestrating"
)

// PipelineSyncConfig holds the schedule of the daily pipeline
type PipelineSyncConfig struct {
	CronSchedule      string
	LookbackDays      int
	MaxConcurrentJobs int
	SyncEnabled       bool
}

// PipelineSyncService runs the daily pipeline on a cron schedule and on demand.
// At most one run is in flight at a time.
type PipelineSyncService struct {
	scheduler    *gocron.Scheduler
	config       PipelineSyncConfig
	orchestrator orchestrating.Orchestrator
	clock        func() time.Time

	syncMutex           sync.Mutex
	syncRunning         bool
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastOutcome         *domain.RunOutcome
	done                chan struct{}
}

func NewPipelineSyncService(orchestrator orchestrating.Orchestrator, appConfig *config.Config) *PipelineSyncService {
	syncConfig := PipelineSyncConfig{
		CronSchedule:      appConfig.Scheduler.CronSchedule,
		LookbackDays:      appConfig.Pipeline.LookbackDays,
		MaxConcurrentJobs: appConfig.Pipeline.MaxConcurrentJobs,
		SyncEnabled:       appConfig.Scheduler.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":       syncConfig.CronSchedule,
		"lookback_days":       syncConfig.LookbackDays,
		"max_concurrent_jobs": syncConfig.MaxConcurrentJobs,
		"sync_enabled":        syncConfig.SyncEnabled,
	}).Info("pipeline scheduler configured")

	return &PipelineSyncService{
		scheduler:    gocron.NewScheduler(time.Local),
		config:       syncConfig,
		orchestrator: orchestrator,
		clock:        time.Now,
	}
}

// Start schedules the pipeline and stops the scheduler when ctx is done
func (s *PipelineSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("pipeline scheduler disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("starting pipeline scheduler")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.runPipeline(ctx)
	})
	if err != nil {
		return fmt.Errorf("error scheduling pipeline: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("stopping pipeline scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync starts a run in the background. It returns false when a
// run is already in progress.
func (s *PipelineSyncService) TriggerManualSync(ctx context.Context) bool {
	if !s.acquire() {
		logrus.Info("pipeline already running, ignoring manual trigger")
		return false
	}

	logrus.Info("manual pipeline run triggered")
	go s.run(context.WithoutCancel(ctx))
	return true
}

// runPipeline is the scheduled entry point
func (s *PipelineSyncService) runPipeline(ctx context.Context) {
	if !s.acquire() {
		logrus.Info("pipeline already running, skipping scheduled run")
		return
	}
	s.run(ctx)
}

func (s *PipelineSyncService) acquire() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.clock()
	s.done = make(chan struct{})
	return true
}

func (s *PipelineSyncService) run(ctx context.Context) {
	var outcome *domain.RunOutcome
	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = s.clock()
		if outcome != nil {
			s.lastOutcome = outcome
		}
		close(s.done)
		s.syncMutex.Unlock()
	}()

	dateRange := domain.LookbackRange(s.clock(), s.config.LookbackDays)
	logrus.WithField("date_range", dateRange.String()).Info("scheduled pipeline run starting")

	outcome, err := s.orchestrator.Run(ctx, dateRange)
	if err != nil {
		logrus.WithError(err).Error("pipeline run failed")
	}
}

// Wait blocks until the in-flight run, if any, has finished
func (s *PipelineSyncService) Wait() {
	s.syncMutex.Lock()
	done := s.done
	s.syncMutex.Unlock()

	if done != nil {
		<-done
	}
}

// GetStatus returns the scheduler settings and the last run
func (s *PipelineSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_lookback_days":     s.config.LookbackDays,
		"sync_max_concurrent":    s.config.MaxConcurrentJobs,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
	if s.lastOutcome != nil {
		status["last_run_id"] = s.lastOutcome.RunID
		status["last_run_state"] = s.lastOutcome.State
		status["last_run_rows_loaded"] = s.lastOutcome.RowsLoaded
		status["last_run_units_failed"] = s.lastOutcome.FailedUnits()
	}
	return status
}
