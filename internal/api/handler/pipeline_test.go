package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/paid-media-etl/internal/api/handler"
	"github.com/vfg2006/paid-media-etl/internal/domain"
	"github.com/vfg2006/paid-media-etl/internal/usecases/recording/mocks"
	"github.com/vfg2006/paid-media-etl/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type fakeTrigger struct {
	accept    bool
	triggered int
}

func (f *fakeTrigger) TriggerManualSync(context.Context) bool {
	f.triggered++
	return f.accept
}

func (f *fakeTrigger) GetStatus() map[string]any {
	return map[string]any{"sync_running": !f.accept, "last_run_id": "load-job-1"}
}

func TestRunPipeline(t *testing.T) {
	trigger := &fakeTrigger{accept: true}
	recorder := httptest.NewRecorder()
	handler.RunPipeline(trigger).ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/pipeline/run", nil))

	assert.Equal(t, http.StatusAccepted, recorder.Code)
	assert.Equal(t, 1, trigger.triggered)
}

func TestRunPipeline_AlreadyRunning(t *testing.T) {
	recorder := httptest.NewRecorder()
	handler.RunPipeline(&fakeTrigger{}).ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/v1/pipeline/run", nil))

	assert.Equal(t, http.StatusConflict, recorder.Code)
	var body apiErrors.APIError
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, apiErrors.ErrPipelineRunning, body.Code)
}

func TestGetPipelineStatus(t *testing.T) {
	recorder := httptest.NewRecorder()
	handler.GetPipelineStatus(&fakeTrigger{}).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/pipeline/status", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "load-job-1", body["last_run_id"])
	assert.Equal(t, true, body["sync_running"])
}

func TestListRuns(t *testing.T) {
	ctrl := gomock.NewController(t)

	tests := []struct {
		name   string
		query  string
		limit  int
		err    error
		status int
	}{
		{name: "default limit", query: "", limit: 20, status: http.StatusOK},
		{name: "explicit limit", query: "?limit=5", limit: 5, status: http.StatusOK},
		{name: "capped limit", query: "?limit=5000", limit: 200, status: http.StatusOK},
		{name: "invalid limit", query: "?limit=abc", status: http.StatusBadRequest},
		{name: "zero limit", query: "?limit=0", status: http.StatusBadRequest},
		{name: "store failure", query: "", limit: 20, err: errors.New("db down"), status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops := mocks.NewMockOpsLogger(ctrl)
			if tt.limit > 0 {
				ops.EXPECT().RecentRuns(gomock.Any(), tt.limit).
					Return([]domain.RunOutcome{{RunID: "load-job-1", State: domain.RunStateDone, Success: true}}, tt.err)
			}

			recorder := httptest.NewRecorder()
			handler.ListRuns(ops).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/v1/pipeline/runs"+tt.query, nil))
			assert.Equal(t, tt.status, recorder.Code)

			if tt.status == http.StatusOK {
				var body struct {
					Runs  []domain.RunOutcome `json:"runs"`
					Count int                 `json:"count"`
				}
				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
				assert.Equal(t, 1, body.Count)
				assert.Equal(t, "load-job-1", body.Runs[0].RunID)
			}
		})
	}
}
