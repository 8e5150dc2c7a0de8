package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/paid-media-etl/infrastructure/database"
	"github.com/vfg2006/paid-media-etl/internal/domain"
)

func TestOpsLogRepository(t *testing.T) {
	ctx := context.Background()
	pool := database.NewSQLitePool(t.TempDir())
	t.Cleanup(func() { _ = pool.Close() })

	repo := NewOpsLogRepository(pool, "etl_logs")
	require.NoError(t, repo.Migrate(ctx))

	start := time.Date(2024, time.March, 2, 3, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveAPICall(ctx, domain.APICallOutcome{
		RunID: "load-job-1", Platform: domain.PlatformTikTok, Client: "Acme",
		Endpoint: "report/integrated/get", StatusCode: 200, Success: true, Duration: time.Second, PayloadSize: 42,
	}))
	require.NoError(t, repo.SaveLoad(ctx, domain.LoadOutcome{
		RunID: "load-job-1", Client: "Acme", Database: "acme", Table: "acme_Paid_Data", RowsAffected: 3, Operation: domain.OperationInsert,
	}))
	require.NoError(t, repo.SaveDriveFile(ctx, domain.DriveFileOutcome{RunID: "load-job-1", FileID: "f1", FileName: "a.csv", Status: "loaded"}))

	require.NoError(t, repo.SaveRun(ctx, domain.RunOutcome{
		RunID: "load-job-1", StartTime: start, EndTime: start.Add(time.Minute), Success: true, RowsLoaded: 3,
	}))
	require.NoError(t, repo.SaveRun(ctx, domain.RunOutcome{
		RunID: "load-job-2", StartTime: start.Add(time.Hour), EndTime: start.Add(time.Hour), ErrorMessage: "mapping failed",
	}))

	runs, err := repo.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "load-job-2", runs[0].RunID, "newest first")
	assert.False(t, runs[0].Success)
	assert.Equal(t, domain.RunStateFailed, runs[0].State)
	assert.Equal(t, "mapping failed", runs[0].ErrorMessage)

	assert.Equal(t, "load-job-1", runs[1].RunID)
	assert.True(t, runs[1].Success)
	assert.EqualValues(t, 3, runs[1].RowsLoaded)
	assert.True(t, runs[1].StartTime.Equal(start))
}
