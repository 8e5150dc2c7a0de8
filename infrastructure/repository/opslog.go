package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/paid-media-etl/infrastructure/database"
	"github.com/vfg2006/paid-media-etl/infrastructure/migration"
	"github.com/vfg2006/paid-media-etl/internal/domain"
	"github.com/vfg2006/paid-media-etl/pkg/utils"
)

const (
	pipelineRunsTable   = "pipeline_runs"
	apiCallsTable       = "api_calls"
	dataOperationsTable = "data_operations"
	driveFilesTable     = "drive_files"
)

// OpsLogRepository persists run telemetry to the etl_logs database.
type OpsLogRepository interface {
	Migrate(ctx context.Context) error
	SaveRun(ctx context.Context, run domain.RunOutcome) error
	SaveAPICall(ctx context.Context, call domain.APICallOutcome) error
	SaveLoad(ctx context.Context, load domain.LoadOutcome) error
	SaveDriveFile(ctx context.Context, file domain.DriveFileOutcome) error
	ListRuns(ctx context.Context, limit int) ([]domain.RunOutcome, error)
}

type opsLogRepository struct {
	pool     database.Pool
	database string
	format   squirrel.PlaceholderFormat
}

func NewOpsLogRepository(pool database.Pool, databaseName string) OpsLogRepository {
	return &opsLogRepository{
		pool:     pool,
		database: databaseName,
		format:   dialectFor(pool.Driver()).placeholder(),
	}
}

func (r *opsLogRepository) conn(ctx context.Context) (*database.Connection, error) {
	return r.pool.DB(ctx, r.database)
}

func (r *opsLogRepository) Migrate(ctx context.Context) error {
	if err := r.pool.EnsureDatabase(ctx, r.database); err != nil {
		return err
	}
	conn, err := r.conn(ctx)
	if err != nil {
		return err
	}
	return migration.ApplyOpsLog(ctx, conn)
}

func (r *opsLogRepository) SaveRun(ctx context.Context, run domain.RunOutcome) error {
	return r.exec(ctx, squirrel.Insert(pipelineRunsTable).
		Columns("run_id", "start_time", "end_time", "success", "error_message", "units_total", "units_failed", "rows_loaded").
		Values(run.RunID, run.StartTime.UTC(), run.EndTime.UTC(), run.Success, nullable(run.ErrorMessage),
			len(run.Units), run.FailedUnits(), run.RowsLoaded))
}

func (r *opsLogRepository) SaveAPICall(ctx context.Context, call domain.APICallOutcome) error {
	return r.exec(ctx, squirrel.Insert(apiCallsTable).
		Columns("run_id", "platform", "client", "endpoint", "status_code", "success", "duration_seconds", "payload_size", "error_message").
		Values(call.RunID, string(call.Platform), call.Client, call.Endpoint, call.StatusCode, call.Success,
			call.Duration.Seconds(), call.PayloadSize, nullable(call.Error)))
}

func (r *opsLogRepository) SaveLoad(ctx context.Context, load domain.LoadOutcome) error {
	return r.exec(ctx, squirrel.Insert(dataOperationsTable).
		Columns("run_id", "client", "database_name", "table_name", "rows_affected", "operation_type").
		Values(load.RunID, load.Client, load.Database, load.Table, load.RowsAffected, string(load.Operation)))
}

func (r *opsLogRepository) SaveDriveFile(ctx context.Context, file domain.DriveFileOutcome) error {
	return r.exec(ctx, squirrel.Insert(driveFilesTable).
		Columns("run_id", "file_id", "file_name", "status", "error_message").
		Values(file.RunID, file.FileID, file.FileName, file.Status, nullable(file.Error)))
}

func (r *opsLogRepository) ListRuns(ctx context.Context, limit int) ([]domain.RunOutcome, error) {
	if limit <= 0 {
		limit = 20
	}

	conn, err := r.conn(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := squirrel.
		Select("run_id", "start_time", "end_time", "success", "COALESCE(error_message, '')", "COALESCE(rows_loaded, 0)").
		From(pipelineRunsTable).
		OrderBy("id DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(r.format).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build runs query: %w", err)
	}

	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, describe(err, "list pipeline runs")
	}
	defer rows.Close()

	runs := make([]domain.RunOutcome, 0)
	for rows.Next() {
		var run domain.RunOutcome
		var start, end any
		if err := rows.Scan(&run.RunID, &start, &end, &run.Success, &run.ErrorMessage, &run.RowsLoaded); err != nil {
			return nil, fmt.Errorf("scan pipeline run: %w", err)
		}
		run.StartTime = scanTime(start)
		run.EndTime = scanTime(end)
		run.State = domain.RunStateDone
		if !run.Success {
			run.State = domain.RunStateFailed
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pipeline runs: %w", err)
	}
	return runs, nil
}

func (r *opsLogRepository) exec(ctx context.Context, builder squirrel.InsertBuilder) error {
	conn, err := r.conn(ctx)
	if err != nil {
		return err
	}

	query, args, err := builder.PlaceholderFormat(r.format).ToSql()
	if err != nil {
		return fmt.Errorf("build ops log insert: %w", err)
	}

	if _, err := conn.ExecContext(ctx, query, args...); err != nil {
		return describe(err, "write ops log")
	}
	return nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// scanTime accepts both driver representations of a timestamp column.
func scanTime(value any) time.Time {
	if raw, ok := value.([]byte); ok {
		value = string(raw)
	}
	t, _ := utils.ParseAnyDate(value)
	return t
}
