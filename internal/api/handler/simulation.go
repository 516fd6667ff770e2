package handler

import (
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/users-revenue-simulator/internal/domain"
	"github.com/vfg2006/users-revenue-simulator/internal/usecases/simulating"
	"github.com/vfg2006/users-revenue-simulator/pkg/apiErrors"
	"github.com/vfg2006/users-revenue-simulator/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RunSimulation executa a simulação com os parâmetros da query string
func RunSimulation(service simulating.Simulator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		result, ok := simulateFromRequest(w, r, service, logger)
		if !ok {
			return
		}

		logger.WithFields(log.Fields{
			"run_id": result.RunID,
			"days":   result.Range.Days(),
		}).Info("simulations: simulation completed")

		writeJSON(w, logger, result.ToResponse())
	})
}

// GetSimulationHeatmaps executa a simulação e devolve os mapas de calor de receita e usuários
func GetSimulationHeatmaps(service simulating.Simulator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		result, ok := simulateFromRequest(w, r, service, logger)
		if !ok {
			return
		}

		logger.WithField("run_id", result.RunID).Debug("simulations: building heatmaps")

		writeJSON(w, logger, service.Heatmaps(result))
	})
}

// GetSimulationDefaults devolve os valores iniciais e limites dos controles
func GetSimulationDefaults(service simulating.Simulator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Debug("simulations: fetching control defaults")

		writeJSON(w, logger, service.Defaults())
	})
}

func simulateFromRequest(w http.ResponseWriter, r *http.Request, service simulating.Simulator, logger log.Logger) (*domain.SimulationResult, bool) {
	req, err := bindSimulationRequest(r, service.Defaults())
	if err != nil {
		logger.WithFields(log.Fields{
			"query": r.URL.RawQuery,
			"error": err.Error(),
		}).Warn("simulations: invalid request parameters")

		writeBindError(w, err)
		return nil, false
	}

	logger.WithFields(log.Fields{
		"start_date": req.DateRange.Start.Format(time.DateOnly),
		"end_date":   req.DateRange.End.Format(time.DateOnly),
	}).Debug("simulations: running simulation")

	result, err := service.Simulate(r.Context(), req.DateRange, req.Parameters)
	if err != nil {
		writeSimulationError(w, logger, err)
		return nil, false
	}

	return result, true
}

func writeBindError(w http.ResponseWriter, err error) {
	var bindErr *bindError
	if !errors.As(err, &bindErr) {
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao ler parâmetros da simulação", nil)
		return
	}

	if errors.Is(err, errParameterRejected) {
		apiErrors.WriteError(w, apiErrors.ErrValueInvalid, "Parâmetro fora do domínio aceito", bindErr.Errors)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Formato de parâmetro inválido", bindErr.Errors)
}

// writeSimulationError traduz os erros da simulação para os códigos da API
func writeSimulationError(w http.ResponseWriter, logger log.Logger, err error) {
	var details any
	var simErr *simulating.SimulationError
	if errors.As(err, &simErr) {
		details = []ValidationError{{Field: simErr.Field, Message: simErr.Details}}
	}

	switch {
	case errors.Is(err, simulating.ErrDivisionUndefined):
		logger.WithError(err).Warn("simulations: acquisition cost is zero")
		apiErrors.WriteError(w, apiErrors.ErrDivisionUndefined, "Custo de aquisição não pode ser zero", details)
	case errors.Is(err, simulating.ErrRangeInvalid):
		logger.WithError(err).Warn("simulations: invalid date range")
		apiErrors.WriteError(w, apiErrors.ErrRangeInvalid, "Período inválido", details)
	case errors.Is(err, simulating.ErrValueInvalid):
		logger.WithError(err).Warn("simulations: parameter out of domain")
		apiErrors.WriteError(w, apiErrors.ErrValueInvalid, "Parâmetro fora do domínio aceito", details)
	default:
		logger.WithError(err).Error("simulations: failed to run simulation")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao executar a simulação", nil)
	}
}

func writeJSON(w http.ResponseWriter, logger log.Logger, body any) {
	writeJSONStatus(w, logger, http.StatusOK, body)
}

// writeJSONStatus serializa antes de escrever o status, para que uma falha
// de serialização ainda vire um erro 500
func writeJSONStatus(w http.ResponseWriter, logger log.Logger, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		logger.WithError(err).Error("failed to encode response")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao serializar a resposta", nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(data, '\n')); err != nil {
		logger.WithError(err).Warn("failed to write response")
	}
}
