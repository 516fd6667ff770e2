package domain

import "github.com/vfg2006/users-revenue-simulator/pkg/utils"

// DecayCurve é o ajuste exponencial a*exp(-lambda*t) que passa pelos marcos
// de retenção da primeira semana (t=7) e do primeiro mês (t=30).
// É apenas informativo: a série de usuários ativos não o utiliza.
type DecayCurve struct {
	Amplitude float64 `json:"amplitude"`
	Lambda    float64 `json:"lambda"`
}

// SimulationResult é o resultado completo de uma execução da simulação
type SimulationResult struct {
	RunID       string
	Parameters  SimulationParameters
	Range       DateRange
	NewUsers    DailySeries
	ActiveUsers DailySeries
	Revenue     DailySeries
	DecayCurve  DecayCurve
}

// SimulationSummary traz os totais do período simulado
type SimulationSummary struct {
	Days             int     `json:"days"`
	TotalNewUsers    float64 `json:"total_new_users"`
	PeakActiveUsers  float64 `json:"peak_active_users"`
	FinalActiveUsers float64 `json:"final_active_users"`
	TotalRevenue     float64 `json:"total_revenue"`
}

// SimulationResponse é o formato JSON devolvido pela API
type SimulationResponse struct {
	RunID       string               `json:"run_id"`
	Parameters  SimulationParameters `json:"parameters"`
	DateRange   DateRange            `json:"date_range"`
	Summary     SimulationSummary    `json:"summary"`
	NewUsers    []DatedValue         `json:"new_users"`
	ActiveUsers []DatedValue         `json:"active_users"`
	Revenue     []DatedValue         `json:"revenue"`
	DecayCurve  DecayCurve           `json:"decay_curve"`
}

// Summarize calcula os totais do resultado
func (r *SimulationResult) Summarize() SimulationSummary {
	summary := SimulationSummary{
		Days:          r.Range.Days(),
		TotalNewUsers: r.NewUsers.Total(),
		TotalRevenue:  utils.RoundWithTwoDecimalPlace(r.Revenue.Total()),
	}

	for _, v := range r.ActiveUsers.Values {
		if v > summary.PeakActiveUsers {
			summary.PeakActiveUsers = v
		}
	}
	if n := r.ActiveUsers.Len(); n > 0 {
		summary.FinalActiveUsers = r.ActiveUsers.Values[n-1]
	}

	return summary
}

// ToResponse converte o resultado para o formato da API
func (r *SimulationResult) ToResponse() *SimulationResponse {
	return &SimulationResponse{
		RunID:       r.RunID,
		Parameters:  r.Parameters,
		DateRange:   r.Range,
		Summary:     r.Summarize(),
		NewUsers:    r.NewUsers.Points(),
		ActiveUsers: r.ActiveUsers.Points(),
		Revenue:     r.Revenue.Points(),
		DecayCurve:  r.DecayCurve,
	}
}
