package handler

import (
	"context"
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/paid-media-etl/internal/domain"
	"github.com/vfg2006/paid-media-etl/pkg/apiErrors"
	"github.com/vfg2006/paid-media-etl/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 200
)

// PipelineTrigger is the scheduler surface exposed over HTTP
type PipelineTrigger interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

// RunLister reads recorded pipeline runs
type RunLister interface {
	RecentRuns(ctx context.Context, limit int) ([]domain.RunOutcome, error)
}

// RunPipeline starts a daily run in the background
func RunPipeline(trigger PipelineTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject := ""
		if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
			subject = claims.Subject
		}
		logrus.WithField("subject", subject).Info("INIT - RunPipeline")

		if !trigger.TriggerManualSync(r.Context()) {
			apiErrors.WriteError(w, apiErrors.ErrPipelineRunning, "a pipeline run is already in progress", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "pipeline run started",
		})
	}
}

// GetPipelineStatus returns the scheduler settings and the last run
func GetPipelineStatus(trigger PipelineTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, trigger.GetStatus())
	}
}

// ListRuns returns the most recent recorded runs, newest first
func ListRuns(runs RunLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultRunsLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit must be a positive integer", map[string]string{"limit": raw})
				return
			}
			limit = min(parsed, maxRunsLimit)
		}

		outcomes, err := runs.RecentRuns(r.Context(), limit)
		if err != nil {
			logrus.WithError(err).Error("error listing pipeline runs")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "could not list pipeline runs", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"runs":  outcomes,
			"count": len(outcomes),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Warn("error encoding response")
	}
}
