package simulating

import (
	"math"

	"github.com/vfg2006/users-revenue-simulator/internal/domain"
)

// Marcos de retenção usados no ajuste exponencial (em dias)
const (
	weekCheckpoint  = 7.0
	monthCheckpoint = 30.0
	checkpointGap   = monthCheckpoint - weekCheckpoint
)

// ComputeActiveUsers calcula os usuários ativos por dia a partir da série de novos usuários.
//
// Cada coorte perde (1 - decayFirstDay) no dia seguinte à chegada; a partir daí o
// total acumulado decai por exp(-decayFirstMonth) ao dia. O resultado soma os novos
// usuários do dia ao total retido. A curva a*exp(-lambda*t) também é devolvida, mas
// não participa da recorrência.
func ComputeActiveUsers(
	newUsers domain.DailySeries,
	initialUserCount float64,
	params domain.RetentionParameters,
) (domain.DailySeries, domain.DecayCurve, error) {
	if err := requireFraction("decay_first_day", params.DecayFirstDay); err != nil {
		return domain.DailySeries{}, domain.DecayCurve{}, err
	}

	curve, err := FitDecayCurve(initialUserCount, params)
	if err != nil {
		return domain.DailySeries{}, domain.DecayCurve{}, err
	}

	for i, v := range newUsers.Values {
		if !isFinite(v) || v < 0 {
			return domain.DailySeries{}, domain.DecayCurve{}, newValueInvalid("new_users", "day %d has invalid value %v", i, v)
		}
	}

	n := newUsers.Len()

	// Usuários que sobrevivem ao primeiro dia; o dia 0 ainda não tem coorte anterior
	dayTwoUsers := make([]float64, n)
	for i := 1; i < n; i++ {
		dayTwoUsers[i] = newUsers.Values[i-1] * params.DecayFirstDay
	}

	dailyDecay := math.Exp(-params.DecayFirstMonth)

	active := domain.DailySeries{
		Range:  newUsers.Range,
		Values: make([]float64, n),
	}
	retained := 0.0
	for i := 1; i < n; i++ {
		retained = dayTwoUsers[i] + retained*dailyDecay
		active.Values[i] = retained
	}

	for i := range active.Values {
		active.Values[i] += newUsers.Values[i]
	}

	if err := requireFiniteSeries("active_users", active); err != nil {
		return domain.DailySeries{}, domain.DecayCurve{}, err
	}

	return active, curve, nil
}

// FitDecayCurve resolve a e lambda de modo que a*exp(-lambda*t) passe pelas
// retenções da primeira semana (t=7) e do primeiro mês (t=30).
func FitDecayCurve(initialUserCount float64, params domain.RetentionParameters) (domain.DecayCurve, error) {
	if err := requireNonNegative("initial_user_count", initialUserCount); err != nil {
		return domain.DecayCurve{}, err
	}
	if err := requireFraction("decay_first_week", params.DecayFirstWeek); err != nil {
		return domain.DecayCurve{}, err
	}
	if err := requireFraction("decay_first_month", params.DecayFirstMonth); err != nil {
		return domain.DecayCurve{}, err
	}

	week, month := params.DecayFirstWeek, params.DecayFirstMonth

	amplitude := math.Pow(week, monthCheckpoint/checkpointGap) *
		initialUserCount *
		math.Pow(month, -weekCheckpoint/checkpointGap)

	lambda := -math.Log(
		math.Pow(week, -weekCheckpoint/checkpointGap)*math.Pow(month, weekCheckpoint/checkpointGap),
	) / weekCheckpoint

	if !isFinite(amplitude) || !isFinite(lambda) {
		return domain.DecayCurve{}, newValueInvalid("decay_first_week", "decay curve is undefined for week=%v month=%v", week, month)
	}

	return domain.DecayCurve{
		Amplitude: amplitude,
		Lambda:    lambda,
	}, nil
}
