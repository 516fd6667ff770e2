package simulating

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/users-revenue-simulator/internal/config"
	"github.com/vfg2006/users-revenue-simulator/internal/domain"
	"github.com/vfg2006/users-revenue-simulator/internal/usecases/simulating/mocks"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{
		Simulation: config.Simulation{
			MaxRangeDays:     400,
			DefaultStartDate: "2023-01-01",
			DefaultEndDate:   "2025-12-31",
		},
	}
}

func TestService_Simulate(t *testing.T) {
	service := NewService(testConfig())

	params := domain.DefaultSimulationParameters()
	params.ARPDAU = 0.25

	result, err := service.Simulate(context.Background(), dateRange("2023-01-01", 31), params)
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, params, result.Parameters)
	assert.Equal(t, 31, result.NewUsers.Len())
	assert.Equal(t, 31, result.ActiveUsers.Len())
	assert.Equal(t, 31, result.Revenue.Len())

	// Dia 0: 100 iniciais + 100/1 adquiridos
	assert.Equal(t, 200.0, result.NewUsers.Values[0])
	assert.Equal(t, 200.0, result.ActiveUsers.Values[0])

	for i, v := range result.ActiveUsers.Values {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.InDelta(t, v*0.25, result.Revenue.Values[i], 1e-9)
	}

	assert.NotZero(t, result.DecayCurve.Amplitude)
}

func TestService_Simulate_Rejections(t *testing.T) {
	service := NewService(testConfig())

	tests := []struct {
		name      string
		dateRange domain.DateRange
		mutate    func(p *domain.SimulationParameters)
		wantErr   error
	}{
		{
			name: "Data final antes da inicial",
			dateRange: domain.NewDateRange(
				time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			),
			wantErr: ErrRangeInvalid,
		},
		{
			name:      "Período maior que o máximo configurado",
			dateRange: dateRange("2023-01-01", 401),
			wantErr:   ErrRangeInvalid,
		},
		{
			name:      "Custo de aquisição zero",
			dateRange: dateRange("2023-01-01", 10),
			mutate:    func(p *domain.SimulationParameters) { p.AcquisitionCost = 0 },
			wantErr:   ErrDivisionUndefined,
		},
		{
			name:      "Decaimento semanal zero",
			dateRange: dateRange("2023-01-01", 10),
			mutate:    func(p *domain.SimulationParameters) { p.DecayFirstWeek = 0 },
			wantErr:   ErrValueInvalid,
		},
		{
			name:      "ARPDAU que estoura a receita",
			dateRange: dateRange("2023-01-01", 10),
			mutate:    func(p *domain.SimulationParameters) { p.ARPDAU = 1e308 },
			wantErr:   ErrValueInvalid,
		},
		{
			name:      "ARPDAU negativo",
			dateRange: dateRange("2023-01-01", 10),
			mutate:    func(p *domain.SimulationParameters) { p.ARPDAU = -2 },
			wantErr:   ErrValueInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := domain.DefaultSimulationParameters()
			if tt.mutate != nil {
				tt.mutate(&params)
			}

			result, err := service.Simulate(context.Background(), tt.dateRange, params)
			assert.Nil(t, result)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
			assert.True(t, IsRejection(err))
		})
	}
}

func TestService_Simulate_WithCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := dateRange("2023-01-01", 5)
	params := domain.DefaultSimulationParameters()

	tests := []struct {
		name     string
		setup    func(cache *mocks.MockResultCache, metrics *mocks.MockMetricsRecorder)
		validate func(t *testing.T, result *domain.SimulationResult)
	}{
		{
			name: "Resultado em cache é devolvido sem recalcular",
			setup: func(cache *mocks.MockResultCache, metrics *mocks.MockMetricsRecorder) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(&domain.SimulationResult{RunID: "cached"}, nil)

				metrics.EXPECT().RecordCacheLookup(true)
				metrics.EXPECT().ObserveSimulation(OutcomeCacheHit, 5, gomock.Any())
			},
			validate: func(t *testing.T, result *domain.SimulationResult) {
				assert.Equal(t, "cached", result.RunID)
			},
		},
		{
			name: "Falta no cache calcula e grava o resultado",
			setup: func(cache *mocks.MockResultCache, metrics *mocks.MockMetricsRecorder) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(nil, nil)

				cache.EXPECT().
					Set(gomock.Any(), gomock.Any(), gomock.Any(), 5*time.Minute).
					DoAndReturn(func(_ context.Context, key string, result *domain.SimulationResult, _ time.Duration) error {
						assert.Contains(t, key, "simulation:")
						assert.Equal(t, 5, result.ActiveUsers.Len())
						return nil
					})

				metrics.EXPECT().RecordCacheLookup(false)
				metrics.EXPECT().ObserveSimulation(OutcomeSuccess, 5, gomock.Any())
			},
			validate: func(t *testing.T, result *domain.SimulationResult) {
				assert.NotEqual(t, "cached", result.RunID)
				assert.Equal(t, 5, result.NewUsers.Len())
			},
		},
		{
			name: "Erro no cache não impede a simulação",
			setup: func(cache *mocks.MockResultCache, metrics *mocks.MockMetricsRecorder) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("connection refused"))

				cache.EXPECT().
					Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("connection refused"))

				metrics.EXPECT().RecordCacheLookup(false)
				metrics.EXPECT().ObserveSimulation(OutcomeSuccess, 5, gomock.Any())
			},
			validate: func(t *testing.T, result *domain.SimulationResult) {
				assert.Equal(t, 5, result.ActiveUsers.Len())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := mocks.NewMockResultCache(ctrl)
			metrics := mocks.NewMockMetricsRecorder(ctrl)
			tt.setup(cache, metrics)

			service := NewService(testConfig()).
				WithCache(cache, 5*time.Minute).
				WithMetrics(metrics)

			result, err := service.Simulate(context.Background(), r, params)
			require.NoError(t, err)
			tt.validate(t, result)
		})
	}
}

func TestService_Simulate_RecordsRejection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	metrics := mocks.NewMockMetricsRecorder(ctrl)
	metrics.EXPECT().ObserveSimulation(OutcomeRejected, 3, gomock.Any())

	params := domain.DefaultSimulationParameters()
	params.AcquisitionCost = 0

	_, err := NewService(testConfig()).WithMetrics(metrics).Simulate(context.Background(), dateRange("2023-01-01", 3), params)
	assert.True(t, errors.Is(err, ErrDivisionUndefined))
}

func TestService_CacheKeyDependsOnEveryParameter(t *testing.T) {
	service := NewService(testConfig())
	r := dateRange("2023-01-01", 10)
	base := domain.DefaultSimulationParameters()

	mutations := []func(p *domain.SimulationParameters){
		func(p *domain.SimulationParameters) { p.InitialUserCount++ },
		func(p *domain.SimulationParameters) { p.AcquisitionCost++ },
		func(p *domain.SimulationParameters) { p.MonthlyBudget++ },
		func(p *domain.SimulationParameters) { p.OrganicSpinoff++ },
		func(p *domain.SimulationParameters) { p.DecayFirstDay /= 2 },
		func(p *domain.SimulationParameters) { p.DecayFirstWeek /= 2 },
		func(p *domain.SimulationParameters) { p.DecayFirstMonth /= 2 },
		func(p *domain.SimulationParameters) { p.ARPDAU++ },
	}

	baseKey := service.cacheKey(r, base)
	assert.Equal(t, baseKey, service.cacheKey(r, base))
	assert.NotEqual(t, baseKey, service.cacheKey(dateRange("2023-01-02", 10), base))

	for i, mutate := range mutations {
		params := base
		mutate(&params)
		assert.NotEqual(t, baseKey, service.cacheKey(r, params), "mutation %d", i)
	}
}

func TestService_Heatmaps(t *testing.T) {
	service := NewService(testConfig())

	result, err := service.Simulate(context.Background(), dateRange("2023-12-30", 4), domain.DefaultSimulationParameters())
	require.NoError(t, err)

	heatmaps := service.Heatmaps(result)
	require.NotNil(t, heatmaps)

	assert.Equal(t, result.RunID, heatmaps.RunID)
	assert.Equal(t, domain.UnitUSD, heatmaps.Revenue.Unit)
	assert.Equal(t, domain.UnitUsers, heatmaps.ActiveUsers.Unit)
	require.Len(t, heatmaps.ActiveUsers.Years, 2)
	assert.Equal(t, 2023, heatmaps.ActiveUsers.Years[0].Year)
	assert.Equal(t, 2024, heatmaps.ActiveUsers.Years[1].Year)

	assert.Nil(t, service.Heatmaps(nil))
}

func TestService_Defaults(t *testing.T) {
	defaults := NewService(testConfig()).Defaults()

	assert.Equal(t, domain.SimulationParameters{
		InitialUserCount: 100,
		AcquisitionCost:  1,
		MonthlyBudget:    100,
		OrganicSpinoff:   0,
		DecayFirstDay:    0.111,
		DecayFirstWeek:   0.11,
		DecayFirstMonth:  0.1,
		ARPDAU:           0,
	}, defaults.Parameters)
	assert.Equal(t, 1096, defaults.DateRange.Days())
	assert.True(t, defaults.Bounds["acquisition_cost"].Exclusive)

	fallback := NewService(&config.Config{}).Defaults()
	assert.Equal(t, fallbackStart, fallback.DateRange.Start)
	assert.Equal(t, fallbackEnd, fallback.DateRange.End)
}
