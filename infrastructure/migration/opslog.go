package migration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-media-etl/infrastructure/database"
)

// opsLogTables is the etl_logs schema. {{id}} and {{ts}} are filled per driver.
var opsLogTables = []string{
	`CREATE TABLE IF NOT EXISTS pipeline_runs (
		id {{id}},
		run_id VARCHAR(255) NOT NULL,
		start_time {{ts}},
		end_time {{ts}},
		success BOOLEAN,
		error_message TEXT,
		units_total INTEGER,
		units_failed INTEGER,
		rows_loaded BIGINT,
		created_at {{ts}} DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS api_calls (
		id {{id}},
		run_id VARCHAR(255),
		platform VARCHAR(100),
		client VARCHAR(255),
		endpoint VARCHAR(255),
		status_code INTEGER,
		success BOOLEAN,
		duration_seconds DOUBLE PRECISION,
		payload_size BIGINT,
		error_message TEXT,
		created_at {{ts}} DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS data_operations (
		id {{id}},
		run_id VARCHAR(255),
		client VARCHAR(255),
		database_name VARCHAR(255),
		table_name VARCHAR(255),
		rows_affected BIGINT,
		operation_type VARCHAR(50),
		created_at {{ts}} DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS drive_files (
		id {{id}},
		run_id VARCHAR(255),
		file_id VARCHAR(255),
		file_name TEXT,
		status VARCHAR(50),
		error_message TEXT,
		created_at {{ts}} DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pipeline_runs_run_id ON pipeline_runs (run_id)`,
	`CREATE INDEX IF NOT EXISTS idx_api_calls_run_id ON api_calls (run_id)`,
}

// OpsLogStatements renders the etl_logs DDL for a driver.
func OpsLogStatements(driver string) []string {
	id, ts := "SERIAL PRIMARY KEY", "TIMESTAMP"
	if driver == database.DriverSQLite {
		id, ts = "INTEGER PRIMARY KEY AUTOINCREMENT", "TIMESTAMP"
	}

	replacer := strings.NewReplacer("{{id}}", id, "{{ts}}", ts)
	statements := make([]string, 0, len(opsLogTables))
	for _, statement := range opsLogTables {
		statements = append(statements, replacer.Replace(statement))
	}
	return statements
}

// ApplyOpsLog creates the etl_logs tables in one transaction.
func ApplyOpsLog(ctx context.Context, conn *database.Connection) error {
	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, statement := range OpsLogStatements(conn.Driver) {
			if _, err := tx.ExecContext(ctx, statement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("apply etl_logs schema: %w", err)
	}

	logrus.WithField("database", conn.Name).Debug("etl_logs schema ready")
	return nil
}
