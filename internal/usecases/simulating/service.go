package simulating

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"github.com/vfg2006/users-revenue-simulator/internal/config"
	"github.com/vfg2006/users-revenue-simulator/internal/domain"
	"github.com/vfg2006/users-revenue-simulator/pkg/log"
	"github.com/vfg2006/users-revenue-simulator/pkg/utils"
)

const (
	OutcomeSuccess  = "success"
	OutcomeCacheHit = "cache_hit"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

var (
	fallbackStart = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	fallbackEnd   = time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// Service orquestra os modelos: aquisição, depois retenção, depois receita.
// Cada chamada recalcula tudo a partir dos parâmetros; não há estado entre execuções
// além do cache opcional de resultados.
type Service struct {
	cfg      *config.Config
	cache    ResultCache
	cacheTTL time.Duration
	metrics  MetricsRecorder
	useCache bool
}

// NewService cria uma nova instância do serviço de simulação
func NewService(cfg *config.Config) *Service {
	return &Service{
		cfg:      cfg,
		useCache: false, // Inicialmente não usa cache
	}
}

// WithCache habilita o cache de resultados
func (s *Service) WithCache(cache ResultCache, ttl time.Duration) *Service {
	s.cache = cache
	s.cacheTTL = ttl
	s.useCache = cache != nil
	return s
}

// WithMetrics habilita o registro de métricas
func (s *Service) WithMetrics(metrics MetricsRecorder) *Service {
	s.metrics = metrics
	return s
}

// Simulate executa a simulação completa para o período informado
func (s *Service) Simulate(ctx context.Context, dateRange domain.DateRange, params domain.SimulationParameters) (*domain.SimulationResult, error) {
	startedAt := time.Now()
	logger := log.ForContext(ctx)

	result, outcome, err := s.simulate(ctx, dateRange, params)

	if s.metrics != nil {
		s.metrics.ObserveSimulation(outcome, dateRange.Days(), time.Since(startedAt))
	}

	if err != nil {
		logger.WithFields(log.Fields{
			"error":           err.Error(),
			"simulation_days": dateRange.Days(),
		}).Warn("simulation: run rejected")
		return nil, err
	}

	logger.WithFields(log.Fields{
		"run_id":             result.RunID,
		"days":               result.Range.Days(),
		"simulation_outcome": outcome,
	}).Debug("simulation: run completed")

	return result, nil
}

func (s *Service) simulate(ctx context.Context, dateRange domain.DateRange, params domain.SimulationParameters) (*domain.SimulationResult, string, error) {
	if err := s.validateRange(dateRange); err != nil {
		return nil, OutcomeRejected, err
	}

	key := s.cacheKey(dateRange, params)
	if s.useCache {
		cached, err := s.cache.Get(ctx, key)
		if err != nil {
			log.ForContext(ctx).WithError(err).Warn("simulation: cache lookup failed, computing")
		}
		if s.metrics != nil {
			s.metrics.RecordCacheLookup(cached != nil)
		}
		if cached != nil {
			return cached, OutcomeCacheHit, nil
		}
	}

	newUsers, err := ComputeNewUsers(dateRange, params.Acquisition())
	if err != nil {
		return nil, outcomeFor(err), errors.Wrap(err, "acquisition model")
	}

	activeUsers, curve, err := ComputeActiveUsers(newUsers, params.InitialUserCount, params.Retention())
	if err != nil {
		return nil, outcomeFor(err), errors.Wrap(err, "retention model")
	}

	revenue, err := ComputeRevenue(activeUsers, params.ARPDAU)
	if err != nil {
		return nil, outcomeFor(err), errors.Wrap(err, "revenue")
	}

	runID, err := utils.GenerateID()
	if err != nil {
		return nil, OutcomeError, errors.Wrap(err, "generate run id")
	}

	result := &domain.SimulationResult{
		RunID:       runID,
		Parameters:  params,
		Range:       dateRange,
		NewUsers:    newUsers,
		ActiveUsers: activeUsers,
		Revenue:     revenue,
		DecayCurve:  curve,
	}

	if s.useCache {
		if err := s.cache.Set(ctx, key, result, s.cacheTTL); err != nil {
			log.ForContext(ctx).WithError(err).Warn("simulation: failed to store result in cache")
		}
	}

	return result, OutcomeSuccess, nil
}

func (s *Service) validateRange(dateRange domain.DateRange) error {
	if dateRange.IsInverted() {
		return newRangeInvalid("end date %s is before start date %s",
			dateRange.End.Format(time.DateOnly), dateRange.Start.Format(time.DateOnly))
	}

	if s.cfg != nil && s.cfg.Simulation.MaxRangeDays > 0 && dateRange.Days() > s.cfg.Simulation.MaxRangeDays {
		return newRangeInvalid("range has %d days, maximum is %d", dateRange.Days(), s.cfg.Simulation.MaxRangeDays)
	}

	return nil
}

// cacheKey identifica um resultado pelo período e por todos os parâmetros
func (s *Service) cacheKey(dateRange domain.DateRange, p domain.SimulationParameters) string {
	raw := fmt.Sprintf("%s|%s|%v|%v|%v|%v|%v|%v|%v|%v",
		dateRange.Start.Format(time.DateOnly), dateRange.End.Format(time.DateOnly),
		p.InitialUserCount, p.AcquisitionCost, p.MonthlyBudget, p.OrganicSpinoff,
		p.DecayFirstDay, p.DecayFirstWeek, p.DecayFirstMonth, p.ARPDAU,
	)
	return fmt.Sprintf("simulation:%016x", xxhash.Sum64String(raw))
}

// Heatmaps monta os dois mapas de calor do painel
func (s *Service) Heatmaps(result *domain.SimulationResult) *domain.HeatmapsResponse {
	if result == nil {
		return nil
	}

	return &domain.HeatmapsResponse{
		RunID:       result.RunID,
		Revenue:     domain.NewCalendarHeatmap("Revenue per day", domain.UnitUSD, result.Revenue),
		ActiveUsers: domain.NewCalendarHeatmap("Number of users per day", domain.UnitUsers, result.ActiveUsers),
	}
}

// Defaults retorna os valores iniciais dos controles e o período padrão
func (s *Service) Defaults() domain.SimulationDefaults {
	start, end := fallbackStart, fallbackEnd
	if s.cfg != nil {
		cfgStart, cfgEnd, err := s.cfg.DefaultDateRange()
		if err != nil {
			log.L.WithError(err).Warn("simulation: invalid default date range in config, using fallback")
		} else {
			start, end = cfgStart, cfgEnd
		}
	}

	return domain.SimulationDefaults{
		Parameters: domain.DefaultSimulationParameters(),
		DateRange:  domain.NewDateRange(start, end),
		Bounds:     domain.DefaultBounds(),
	}
}

// IsRejection indica se o erro é uma rejeição de parâmetros (e não uma falha interna)
func IsRejection(err error) bool {
	return errors.Is(err, ErrValueInvalid) || errors.Is(err, ErrDivisionUndefined) || errors.Is(err, ErrRangeInvalid)
}

func outcomeFor(err error) string {
	if IsRejection(err) {
		return OutcomeRejected
	}
	return OutcomeError
}
