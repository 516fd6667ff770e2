package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/users-revenue-simulator/internal/domain"
	"github.com/vfg2006/users-revenue-simulator/internal/scheduler"
	"github.com/vfg2006/users-revenue-simulator/pkg/apiErrors"
	"github.com/vfg2006/users-revenue-simulator/pkg/log"
)

// ForecastProvider expõe a última previsão calculada pelo job
type ForecastProvider interface {
	Latest() *scheduler.ForecastSnapshot
}

// ForecastResponse é a previsão mais recente com o horário do cálculo
type ForecastResponse struct {
	ComputedAt time.Time                  `json:"computed_at"`
	Forecast   *domain.SimulationResponse `json:"forecast"`
}

// GetLatestForecast devolve a última previsão com os parâmetros padrão
func GetLatestForecast(provider ForecastProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		snapshot := provider.Latest()
		if snapshot == nil || snapshot.Result == nil {
			logger.Info("forecast: no forecast computed yet")
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "Previsão ainda não calculada", nil)
			return
		}

		writeJSON(w, logger, ForecastResponse{
			ComputedAt: snapshot.ComputedAt,
			Forecast:   snapshot.Result.ToResponse(),
		})
	})
}
