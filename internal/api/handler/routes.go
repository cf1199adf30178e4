package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vfg2006/traffic-advisor-api/internal/api/handler/router"
	"github.com/vfg2006/traffic-advisor-api/internal/usecases/analyzing"
	"github.com/vfg2006/traffic-advisor-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Metrics(gatherer prometheus.Gatherer) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		},
	}
}

func Analysis(service analyzing.AnalysisService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/adAccount/:id/analysis",
			Method:      http.MethodGet,
			Handler:     GetAccountAnalysis(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/adAccount/:id/analysis/latest",
			Method:      http.MethodGet,
			Handler:     GetLatestAccountAnalysis(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrSupervisor()},
		},
	}
}
