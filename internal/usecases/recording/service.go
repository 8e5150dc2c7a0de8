package recording

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-media-etl/infrastructure/repository"
	"github.com/vfg2006/paid-media-etl/internal/domain"
)

// OpsLogger records run telemetry. Failures to record are logged, never returned.
type OpsLogger interface {
	RecordRun(ctx context.Context, run domain.RunOutcome)
	RecordAPICall(ctx context.Context, call domain.APICallOutcome)
	RecordLoad(ctx context.Context, load domain.LoadOutcome)
	RecordDriveFile(ctx context.Context, file domain.DriveFileOutcome)
	RecentRuns(ctx context.Context, limit int) ([]domain.RunOutcome, error)
}

type logrusLogger struct{}

// NewLogrusLogger writes telemetry to the process log only.
func NewLogrusLogger() OpsLogger {
	return logrusLogger{}
}

func (logrusLogger) RecordRun(_ context.Context, run domain.RunOutcome) {
	entry := logrus.WithFields(logrus.Fields{
		"run_id":       run.RunID,
		"success":      run.Success,
		"units":        len(run.Units),
		"units_failed": run.FailedUnits(),
		"rows":         run.RowsLoaded,
		"files":        len(run.FilesIngested),
		"duration":     run.EndTime.Sub(run.StartTime).String(),
	})
	if !run.Success {
		entry.WithField("error", run.ErrorMessage).Error("pipeline run failed")
		return
	}
	entry.Info("pipeline run finished")
}

func (logrusLogger) RecordAPICall(_ context.Context, call domain.APICallOutcome) {
	entry := logrus.WithFields(logrus.Fields{
		"run_id":       call.RunID,
		"platform":     call.Platform,
		"client":       call.Client,
		"endpoint":     call.Endpoint,
		"status_code":  call.StatusCode,
		"duration":     call.Duration.String(),
		"payload_size": call.PayloadSize,
	})
	if !call.Success {
		entry.WithField("error", call.Error).Warn("api call failed")
		return
	}
	entry.Debug("api call")
}

func (logrusLogger) RecordLoad(_ context.Context, load domain.LoadOutcome) {
	logrus.WithFields(logrus.Fields{
		"run_id":    load.RunID,
		"client":    load.Client,
		"database":  load.Database,
		"table":     load.Table,
		"rows":      load.RowsAffected,
		"operation": load.Operation,
	}).Info("data operation")
}

func (logrusLogger) RecordDriveFile(_ context.Context, file domain.DriveFileOutcome) {
	entry := logrus.WithFields(logrus.Fields{
		"run_id": file.RunID,
		"file":   file.FileName,
		"status": file.Status,
	})
	if file.Error != "" {
		entry.WithField("error", file.Error).Warn("drive file not ingested")
		return
	}
	entry.Info("drive file")
}

func (logrusLogger) RecentRuns(context.Context, int) ([]domain.RunOutcome, error) {
	return []domain.RunOutcome{}, nil
}

type repositoryLogger struct {
	logrusLogger
	repo repository.OpsLogRepository
}

// NewRepositoryLogger writes telemetry to the etl_logs store and the process log.
func NewRepositoryLogger(repo repository.OpsLogRepository) OpsLogger {
	return &repositoryLogger{repo: repo}
}

func (l *repositoryLogger) RecordRun(ctx context.Context, run domain.RunOutcome) {
	l.logrusLogger.RecordRun(ctx, run)
	warn(l.repo.SaveRun(ctx, run), "pipeline_runs")
}

func (l *repositoryLogger) RecordAPICall(ctx context.Context, call domain.APICallOutcome) {
	l.logrusLogger.RecordAPICall(ctx, call)
	warn(l.repo.SaveAPICall(ctx, call), "api_calls")
}

func (l *repositoryLogger) RecordLoad(ctx context.Context, load domain.LoadOutcome) {
	l.logrusLogger.RecordLoad(ctx, load)
	warn(l.repo.SaveLoad(ctx, load), "data_operations")
}

func (l *repositoryLogger) RecordDriveFile(ctx context.Context, file domain.DriveFileOutcome) {
	l.logrusLogger.RecordDriveFile(ctx, file)
	warn(l.repo.SaveDriveFile(ctx, file), "drive_files")
}

func (l *repositoryLogger) RecentRuns(ctx context.Context, limit int) ([]domain.RunOutcome, error) {
	return l.repo.ListRuns(ctx, limit)
}

func warn(err error, table string) {
	if err != nil {
		logrus.WithField("table", table).WithError(err).Warn("could not write ops log")
	}
}
