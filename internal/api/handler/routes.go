package handler

import (
	"net/http"

	"github.com/vfg2006/users-revenue-simulator/internal/api/handler/router"
	"github.com/vfg2006/users-revenue-simulator/internal/usecases/simulating"
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

// Metrics expõe o handler de métricas no caminho configurado
func Metrics(path string, metricsHandler http.Handler) []router.Route {
	if metricsHandler == nil {
		return nil
	}

	return []router.Route{
		{
			Path:    path,
			Method:  http.MethodGet,
			Handler: metricsHandler,
		},
	}
}

func Simulations(service simulating.Simulator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/simulations",
			Method:  http.MethodGet,
			Handler: RunSimulation(service),
		},
		{
			Path:    "/v1/simulations/heatmaps",
			Method:  http.MethodGet,
			Handler: GetSimulationHeatmaps(service),
		},
		{
			Path:    "/v1/simulations/defaults",
			Method:  http.MethodGet,
			Handler: GetSimulationDefaults(service),
		},
	}
}

func Forecast(provider ForecastProvider) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/forecast/latest",
			Method:  http.MethodGet,
			Handler: GetLatestForecast(provider),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
