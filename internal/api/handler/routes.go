package handler

import (
	"net/http"

	"github.com/vfg2006/paid-media-etl/internal/api/handler/router"
	"github.com/vfg2006/paid-media-etl/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Pipeline(trigger PipelineTrigger, runs RunLister) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/pipeline/run",
			Method:      http.MethodPost,
			Handler:     RunPipeline(trigger),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/pipeline/status",
			Method:      http.MethodGet,
			Handler:     GetPipelineStatus(trigger),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/pipeline/runs",
			Method:      http.MethodGet,
			Handler:     ListRuns(runs),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}
