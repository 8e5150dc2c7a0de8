package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/paid-media-etl/internal/config"
	"github.com/vfg2006/paid-media-etl/internal/domain"
	"github.com/vfg2006/paid-media-etl/internal/usecases/orchestrating/mocks"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T, enabled bool) (*PipelineSyncService, *mocks.MockOrchestrator) {
	t.Helper()
	ctrl := gomock.NewController(t)
	orchestrator := mocks.NewMockOrchestrator(ctrl)

	cfg := &config.Config{
		Scheduler: config.Scheduler{CronSchedule: "0 3 * * *", Enabled: enabled},
		Pipeline:  config.Pipeline{LookbackDays: 2, MaxConcurrentJobs: 3},
	}
	service := NewPipelineSyncService(orchestrator, cfg)
	service.clock = func() time.Time { return time.Date(2024, time.March, 10, 3, 0, 0, 0, time.UTC) }
	return service, orchestrator
}

func TestPipelineSyncService_TriggerManualSync(t *testing.T) {
	service, orchestrator := newTestService(t, false)

	release := make(chan struct{})
	orchestrator.EXPECT().Run(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, dateRange domain.DateRange) (*domain.RunOutcome, error) {
			assert.Equal(t, time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC), dateRange.Start)
			assert.Equal(t, time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC), dateRange.End)
			<-release
			return &domain.RunOutcome{RunID: "load-job-1", State: domain.RunStateDone, RowsLoaded: 12}, nil
		})

	require.True(t, service.TriggerManualSync(context.Background()))
	assert.False(t, service.TriggerManualSync(context.Background()), "overlapping runs are rejected")
	assert.Equal(t, true, service.GetStatus()["sync_running"])

	close(release)
	service.Wait()

	status := service.GetStatus()
	assert.Equal(t, false, status["sync_running"])
	assert.Equal(t, "load-job-1", status["last_run_id"])
	assert.Equal(t, domain.RunStateDone, status["last_run_state"])
	assert.EqualValues(t, 12, status["last_run_rows_loaded"])
}

func TestPipelineSyncService_FailedRunReleasesGuard(t *testing.T) {
	service, orchestrator := newTestService(t, false)

	orchestrator.EXPECT().Run(gomock.Any(), gomock.Any()).
		Return(&domain.RunOutcome{RunID: "load-job-2", State: domain.RunStateFailed}, errors.New("mapping")).
		Times(2)

	service.runPipeline(context.Background())
	assert.Equal(t, domain.RunStateFailed, service.GetStatus()["last_run_state"])

	require.True(t, service.TriggerManualSync(context.Background()))
	service.Wait()
}

func TestPipelineSyncService_StartDisabled(t *testing.T) {
	service, _ := newTestService(t, false)
	require.NoError(t, service.Start(context.Background()))
	assert.Equal(t, false, service.GetStatus()["sync_enabled"])
}

func TestPipelineSyncService_StartInvalidCron(t *testing.T) {
	service, _ := newTestService(t, true)
	service.config.CronSchedule = "not a cron"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.Error(t, service.Start(ctx))
}
