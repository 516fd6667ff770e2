package domain

import "github.com/creasty/defaults"

// AcquisitionParameters são os parâmetros do modelo de aquisição de usuários
type AcquisitionParameters struct {
	InitialUserCount float64 `json:"initial_user_count"`
	AcquisitionCost  float64 `json:"acquisition_cost"` // Custo por usuário adquirido
	MonthlyBudget    float64 `json:"monthly_budget"`
	OrganicSpinoff   float64 `json:"organic_spinoff"` // Usuários extras por usuário existente
}

// RetentionParameters são as frações de uma coorte que continuam ativas em cada marco
type RetentionParameters struct {
	DecayFirstDay   float64 `json:"decay_first_day"`
	DecayFirstWeek  float64 `json:"decay_first_week"`
	DecayFirstMonth float64 `json:"decay_first_month"`
}

// SimulationParameters reúne todos os controles do painel.
// As tags default espelham os valores iniciais dos controles da interface.
type SimulationParameters struct {
	InitialUserCount float64 `json:"initial_user_count" mapstructure:"initial_user_count" default:"100" validate:"gte=0"`
	AcquisitionCost  float64 `json:"acquisition_cost" mapstructure:"acquisition_cost" default:"1" validate:"gte=0"`
	MonthlyBudget    float64 `json:"monthly_budget" mapstructure:"monthly_budget" default:"100" validate:"gte=0"`
	OrganicSpinoff   float64 `json:"organic_spinoff" mapstructure:"organic_spinoff" default:"0" validate:"gte=0"`
	DecayFirstDay    float64 `json:"decay_first_day" mapstructure:"decay_first_day" default:"0.111" validate:"gte=0,lte=1"`
	DecayFirstWeek   float64 `json:"decay_first_week" mapstructure:"decay_first_week" default:"0.11" validate:"gte=0,lte=1"`
	DecayFirstMonth  float64 `json:"decay_first_month" mapstructure:"decay_first_month" default:"0.1" validate:"gte=0,lte=1"`
	ARPDAU           float64 `json:"arpdau" mapstructure:"arpdau" default:"0" validate:"gte=0"`
}

// DefaultSimulationParameters retorna os parâmetros com os valores iniciais dos controles
func DefaultSimulationParameters() SimulationParameters {
	var params SimulationParameters
	defaults.MustSet(&params)
	return params
}

func (p SimulationParameters) Acquisition() AcquisitionParameters {
	return AcquisitionParameters{
		InitialUserCount: p.InitialUserCount,
		AcquisitionCost:  p.AcquisitionCost,
		MonthlyBudget:    p.MonthlyBudget,
		OrganicSpinoff:   p.OrganicSpinoff,
	}
}

func (p SimulationParameters) Retention() RetentionParameters {
	return RetentionParameters{
		DecayFirstDay:   p.DecayFirstDay,
		DecayFirstWeek:  p.DecayFirstWeek,
		DecayFirstMonth: p.DecayFirstMonth,
	}
}

// ParameterBounds descreve o limite inferior de cada controle do painel
type ParameterBounds struct {
	Min       float64 `json:"min"`
	Exclusive bool    `json:"exclusive"` // true quando o limite não é aceito (> em vez de >=)
}

// SimulationDefaults é a resposta com os valores iniciais e limites dos controles
type SimulationDefaults struct {
	Parameters SimulationParameters       `json:"parameters"`
	DateRange  DateRange                  `json:"date_range"`
	Bounds     map[string]ParameterBounds `json:"bounds"`
}

// DefaultBounds retorna os limites inferiores aceitos por cada parâmetro
func DefaultBounds() map[string]ParameterBounds {
	return map[string]ParameterBounds{
		"initial_user_count": {Min: 0},
		"acquisition_cost":   {Min: 0, Exclusive: true},
		"monthly_budget":     {Min: 0},
		"organic_spinoff":    {Min: 0},
		"decay_first_day":    {Min: 0, Exclusive: true},
		"decay_first_week":   {Min: 0, Exclusive: true},
		"decay_first_month":  {Min: 0, Exclusive: true},
		"arpdau":             {Min: 0},
	}
}
