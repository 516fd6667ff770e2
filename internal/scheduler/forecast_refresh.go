// Package scheduler contém os jobs agendados do simulador
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/users-revenue-simulator/internal/config"
	"github.com/vfg2006/users-revenue-simulator/internal/domain"
	"github.com/vfg2006/users-revenue-simulator/internal/usecases/simulating"
	"github.com/vfg2006/users-revenue-simulator/pkg/utils"
)

// ForecastRefreshConfig representa a configuração do job de previsão
type ForecastRefreshConfig struct {
	CronSchedule string
	HorizonDays  int
	Enabled      bool
}

// ForecastSnapshot é a última previsão calculada com os parâmetros padrão
type ForecastSnapshot struct {
	Result     *domain.SimulationResult
	ComputedAt time.Time
}

// ForecastRefreshService recalcula diariamente a previsão com os parâmetros padrão,
// começando no dia atual e cobrindo HorizonDays dias
type ForecastRefreshService struct {
	scheduler              *gocron.Scheduler
	config                 ForecastRefreshConfig
	simulator              simulating.Simulator
	now                    func() time.Time
	refreshRunning         bool
	refreshMutex           sync.Mutex
	snapshot               *ForecastSnapshot
	snapshotMutex          sync.RWMutex
	lastRefreshStartedAt   time.Time
	lastRefreshCompletedAt time.Time
	lastRefreshError       string
}

// NewForecastRefreshService cria uma nova instância do job de previsão
func NewForecastRefreshService(simulator simulating.Simulator, cfg *config.Config) *ForecastRefreshService {
	refreshConfig := ForecastRefreshConfig{
		CronSchedule: cfg.ForecastRefresh.CronSchedule,
		HorizonDays:  cfg.ForecastRefresh.HorizonDays,
		Enabled:      cfg.ForecastRefresh.Enabled,
	}
	if refreshConfig.HorizonDays <= 0 {
		refreshConfig.HorizonDays = 365
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
		"horizon_days":  refreshConfig.HorizonDays,
		"enabled":       refreshConfig.Enabled,
	}).Info("Configuração do job de previsão carregada")

	return &ForecastRefreshService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    refreshConfig,
		simulator: simulator,
		now:       utils.Today,
	}
}

// Start agenda o job e calcula a primeira previsão imediatamente
func (s *ForecastRefreshService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Job de previsão desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando job de previsão")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.Refresh(ctx); err != nil {
			logrus.WithError(err).Error("Erro ao recalcular a previsão")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar job de previsão: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		if err := s.Refresh(ctx); err != nil {
			logrus.WithError(err).Error("Erro ao calcular a previsão inicial")
		}
	}()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando job de previsão")
		s.scheduler.Stop()
	}()

	return nil
}

// Refresh recalcula a previsão de forma síncrona
func (s *ForecastRefreshService) Refresh(ctx context.Context) error {
	s.refreshMutex.Lock()
	if s.refreshRunning {
		s.refreshMutex.Unlock()
		logrus.Warn("Previsão já está sendo recalculada")
		return nil
	}
	s.refreshRunning = true
	s.lastRefreshStartedAt = time.Now()
	s.refreshMutex.Unlock()

	var runErr error
	defer func() {
		s.refreshMutex.Lock()
		s.refreshRunning = false
		s.lastRefreshCompletedAt = time.Now()
		s.lastRefreshError = ""
		if runErr != nil {
			s.lastRefreshError = runErr.Error()
		}
		s.refreshMutex.Unlock()
	}()

	today := s.now()
	dateRange := domain.NewDateRange(today, today.AddDate(0, 0, s.config.HorizonDays-1))

	result, err := s.simulator.Simulate(ctx, dateRange, domain.DefaultSimulationParameters())
	if err != nil {
		runErr = fmt.Errorf("erro ao simular previsão: %w", err)
		return runErr
	}

	s.snapshotMutex.Lock()
	s.snapshot = &ForecastSnapshot{
		Result:     result,
		ComputedAt: time.Now(),
	}
	s.snapshotMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"run_id":     result.RunID,
		"start_date": dateRange.Start.Format(time.DateOnly),
		"end_date":   dateRange.End.Format(time.DateOnly),
	}).Info("Previsão recalculada com sucesso")

	return nil
}

// Latest retorna a última previsão calculada, ou nil se ainda não houver
func (s *ForecastRefreshService) Latest() *ForecastSnapshot {
	s.snapshotMutex.RLock()
	defer s.snapshotMutex.RUnlock()
	return s.snapshot
}

// TriggerManualSync inicia manualmente o recálculo da previsão
func (s *ForecastRefreshService) TriggerManualSync() {
	s.refreshMutex.Lock()
	if s.refreshRunning {
		s.refreshMutex.Unlock()
		logrus.Info("Previsão já em cálculo, ignorando solicitação manual")
		return
	}
	s.refreshMutex.Unlock()

	logrus.Info("Iniciando recálculo manual da previsão")
	go func() {
		if err := s.Refresh(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro no recálculo manual da previsão")
		}
	}()
}

// GetStatus retorna o status atual do job
func (s *ForecastRefreshService) GetStatus() map[string]any {
	s.refreshMutex.Lock()
	defer s.refreshMutex.Unlock()

	return map[string]any{
		"enabled":                   s.config.Enabled,
		"cron":                      s.config.CronSchedule,
		"horizon_days":              s.config.HorizonDays,
		"running":                   s.refreshRunning,
		"last_refresh_started_at":   s.lastRefreshStartedAt,
		"last_refresh_completed_at": s.lastRefreshCompletedAt,
		"last_refresh_error":        s.lastRefreshError,
	}
}
