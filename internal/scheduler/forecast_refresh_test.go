package scheduler

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

func newTestForecastService(simulator *mocks.MockSimulator, horizon int) *ForecastRefreshService {
	cfg := &config.Config{
		ForecastRefresh: config.ForecastRefresh{
			CronSchedule: "5 0 * * *",
			HorizonDays:  horizon,
			Enabled:      true,
		},
	}

	service := NewForecastRefreshService(simulator, cfg)
	service.now = func() time.Time {
		return time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	}
	return service
}

func TestForecastRefreshService_Refresh(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name     string
		horizon  int
		setup    func(simulator *mocks.MockSimulator)
		wantErr  bool
		validate func(t *testing.T, service *ForecastRefreshService)
	}{
		{
			name:    "Previsão começa hoje e cobre o horizonte configurado",
			horizon: 30,
			setup: func(simulator *mocks.MockSimulator) {
				simulator.EXPECT().
					Simulate(gomock.Any(), gomock.Any(), domain.DefaultSimulationParameters()).
					DoAndReturn(func(_ context.Context, r domain.DateRange, p domain.SimulationParameters) (*domain.SimulationResult, error) {
						assert.Equal(t, "2024-01-16", r.Start.Format(time.DateOnly))
						assert.Equal(t, "2024-02-14", r.End.Format(time.DateOnly))
						assert.Equal(t, 30, r.Days())
						return &domain.SimulationResult{RunID: "forecast1", Range: r}, nil
					})
			},
			validate: func(t *testing.T, service *ForecastRefreshService) {
				snapshot := service.Latest()
				require.NotNil(t, snapshot)
				assert.Equal(t, "forecast1", snapshot.Result.RunID)
				assert.False(t, snapshot.ComputedAt.IsZero())
				assert.Equal(t, "", service.GetStatus()["last_refresh_error"])
			},
		},
		{
			name:    "Horizonte inválido usa um ano",
			horizon: 0,
			setup: func(simulator *mocks.MockSimulator) {
				simulator.EXPECT().
					Simulate(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, r domain.DateRange, _ domain.SimulationParameters) (*domain.SimulationResult, error) {
						assert.Equal(t, 365, r.Days())
						return &domain.SimulationResult{RunID: "forecast2"}, nil
					})
			},
			validate: func(t *testing.T, service *ForecastRefreshService) {
				assert.Equal(t, 365, service.GetStatus()["horizon_days"])
			},
		},
		{
			name:    "Erro na simulação mantém a previsão anterior vazia e registra o erro",
			horizon: 10,
			setup: func(simulator *mocks.MockSimulator) {
				simulator.EXPECT().
					Simulate(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("boom"))
			},
			wantErr: true,
			validate: func(t *testing.T, service *ForecastRefreshService) {
				assert.Nil(t, service.Latest())
				status := service.GetStatus()
				assert.Contains(t, status["last_refresh_error"], "boom")
				assert.Equal(t, false, status["running"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			simulator := mocks.NewMockSimulator(ctrl)
			tt.setup(simulator)

			service := newTestForecastService(simulator, tt.horizon)
			err := service.Refresh(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			tt.validate(t, service)
		})
	}
}

func TestForecastRefreshService_StartDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := newTestForecastService(mocks.NewMockSimulator(ctrl), 30)
	service.config.Enabled = false

	assert.NoError(t, service.Start(context.Background()))
	assert.Nil(t, service.Latest())
}
