package recording

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/paid-media-etl/infrastructure/repository/mocks"
	"github.com/vfg2006/paid-media-etl/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestRepositoryLogger_WritesThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOpsLogRepository(ctrl)
	logger := NewRepositoryLogger(repo)
	ctx := context.Background()

	run := domain.RunOutcome{RunID: "load-job-1", Success: true}
	call := domain.APICallOutcome{RunID: "load-job-1", Platform: domain.PlatformFacebook, StatusCode: 200, Success: true}
	load := domain.LoadOutcome{RunID: "load-job-1", Table: "acme_Paid_Data", Operation: domain.OperationInsert}
	file := domain.DriveFileOutcome{RunID: "load-job-1", FileName: "a.csv", Status: "loaded"}

	repo.EXPECT().SaveRun(ctx, run).Return(nil)
	repo.EXPECT().SaveAPICall(ctx, call).Return(nil)
	repo.EXPECT().SaveLoad(ctx, load).Return(nil)
	repo.EXPECT().SaveDriveFile(ctx, file).Return(nil)

	logger.RecordRun(ctx, run)
	logger.RecordAPICall(ctx, call)
	logger.RecordLoad(ctx, load)
	logger.RecordDriveFile(ctx, file)
}

func TestRepositoryLogger_SwallowsStoreErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOpsLogRepository(ctrl)
	logger := NewRepositoryLogger(repo)

	repo.EXPECT().SaveRun(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

	assert.NotPanics(t, func() {
		logger.RecordRun(context.Background(), domain.RunOutcome{RunID: "load-job-2", ErrorMessage: "boom"})
	})
}

func TestRepositoryLogger_RecentRuns(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOpsLogRepository(ctrl)
	logger := NewRepositoryLogger(repo)

	want := []domain.RunOutcome{{RunID: "load-job-3"}}
	repo.EXPECT().ListRuns(gomock.Any(), 5).Return(want, nil)

	runs, err := logger.RecentRuns(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, want, runs)
}

func TestLogrusLogger_RecentRuns(t *testing.T) {
	runs, err := NewLogrusLogger().RecentRuns(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
