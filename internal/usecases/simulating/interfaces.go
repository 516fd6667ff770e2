package simulating

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_simulating.go -package=mocks

import (
	"context"
	"time"

	"github.com/vfg2006/users-revenue-simulator/internal/domain"
)

// Simulator é a fronteira entre a camada de apresentação e os modelos
type Simulator interface {
	// Simulate executa aquisição, retenção e receita para o período e parâmetros informados
	Simulate(ctx context.Context, dateRange domain.DateRange, params domain.SimulationParameters) (*domain.SimulationResult, error)

	// Heatmaps monta os mapas de calor de receita e usuários ativos de um resultado
	Heatmaps(result *domain.SimulationResult) *domain.HeatmapsResponse

	// Defaults retorna os valores iniciais e limites dos controles do painel
	Defaults() domain.SimulationDefaults
}

// ResultCache guarda resultados de simulação já calculados.
// Get retorna nil sem erro quando a chave não existe.
type ResultCache interface {
	Get(ctx context.Context, key string) (*domain.SimulationResult, error)
	Set(ctx context.Context, key string, result *domain.SimulationResult, ttl time.Duration) error
}

// MetricsRecorder recebe as métricas de execução da simulação
type MetricsRecorder interface {
	ObserveSimulation(outcome string, days int, duration time.Duration)
	RecordCacheLookup(hit bool)
}
