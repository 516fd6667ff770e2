package simulating

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/users-revenue-simulator/internal/domain"
)

var defaultRetention = domain.RetentionParameters{
	DecayFirstDay:   0.111,
	DecayFirstWeek:  0.11,
	DecayFirstMonth: 0.1,
}

func seriesOf(values ...float64) domain.DailySeries {
	return domain.DailySeries{
		Range:  dateRange("2023-01-01", len(values)),
		Values: values,
	}
}

func TestComputeActiveUsers_ReferenceScenario(t *testing.T) {
	newUsers := seriesOf(100, 0, 0, 0, 0)

	active, _, err := ComputeActiveUsers(newUsers, 100, defaultRetention)
	require.NoError(t, err)

	// Valores conferidos à mão: 11.1 usuários sobrevivem ao primeiro dia e decaem por exp(-0.1) ao dia
	expected := []float64{
		100,
		11.1,
		10.04369534019915,
		9.087911359165598,
		8.223082249567069,
	}

	require.Len(t, active.Values, len(expected))
	for i := range expected {
		assert.InDelta(t, expected[i], active.Values[i], 1e-9, "day %d", i)
	}
}

func TestComputeActiveUsers_MatchesRecurrence(t *testing.T) {
	newUsers := seriesOf(150, 50, 50, 50, 50, 50, 50, 50, 50, 50)
	params := domain.RetentionParameters{DecayFirstDay: 0.4, DecayFirstWeek: 0.2, DecayFirstMonth: 0.05}

	active, _, err := ComputeActiveUsers(newUsers, 100, params)
	require.NoError(t, err)

	retained := 0.0
	for i := range newUsers.Values {
		if i > 0 {
			retained = newUsers.Values[i-1]*params.DecayFirstDay + retained*math.Exp(-params.DecayFirstMonth)
		}
		assert.InDelta(t, retained+newUsers.Values[i], active.Values[i], 1e-9, "day %d", i)
	}
}

func TestComputeActiveUsers_ZeroSeries(t *testing.T) {
	for _, days := range []int{1, 5, 90} {
		newUsers := domain.NewDailySeries(dateRange("2023-01-01", days))

		active, _, err := ComputeActiveUsers(newUsers, 0, defaultRetention)
		require.NoError(t, err)

		assert.Equal(t, days, active.Len())
		for _, v := range active.Values {
			assert.Zero(t, v)
		}
	}
}

func TestComputeActiveUsers_KeepsRangeAndLength(t *testing.T) {
	newUsers := seriesOf(1, 2, 3)

	active, _, err := ComputeActiveUsers(newUsers, 1, defaultRetention)
	require.NoError(t, err)

	assert.Equal(t, newUsers.Range, active.Range)
	assert.Equal(t, newUsers.Len(), active.Len())
	assert.Equal(t, []float64{1, 2, 3}, newUsers.Values, "input series must not be modified")
}

func TestComputeActiveUsers_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		newUsers domain.DailySeries
		params   domain.RetentionParameters
	}{
		{
			name:     "Decaimento da primeira semana igual a zero",
			newUsers: seriesOf(100, 0),
			params:   domain.RetentionParameters{DecayFirstDay: 0.111, DecayFirstWeek: 0, DecayFirstMonth: 0.1},
		},
		{
			name:     "Decaimento do primeiro mês igual a zero",
			newUsers: seriesOf(100, 0),
			params:   domain.RetentionParameters{DecayFirstDay: 0.111, DecayFirstWeek: 0.11, DecayFirstMonth: 0},
		},
		{
			name:     "Decaimento do primeiro dia igual a zero",
			newUsers: seriesOf(100, 0),
			params:   domain.RetentionParameters{DecayFirstDay: 0, DecayFirstWeek: 0.11, DecayFirstMonth: 0.1},
		},
		{
			name:     "Fração maior que 1",
			newUsers: seriesOf(100, 0),
			params:   domain.RetentionParameters{DecayFirstDay: 0.111, DecayFirstWeek: 1.5, DecayFirstMonth: 0.1},
		},
		{
			name:     "Fração negativa",
			newUsers: seriesOf(100, 0),
			params:   domain.RetentionParameters{DecayFirstDay: 0.111, DecayFirstWeek: 0.11, DecayFirstMonth: -0.1},
		},
		{
			name:     "Série de entrada com infinito",
			newUsers: seriesOf(100, math.Inf(1)),
			params:   defaultRetention,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ComputeActiveUsers(tt.newUsers, 100, tt.params)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValueInvalid), "got %v", err)
		})
	}
}

func TestFitDecayCurve_PassesThroughCheckpoints(t *testing.T) {
	initial := 100.0

	curve, err := FitDecayCurve(initial, defaultRetention)
	require.NoError(t, err)

	atWeek := curve.Amplitude * math.Exp(-curve.Lambda*7)
	atMonth := curve.Amplitude * math.Exp(-curve.Lambda*30)

	assert.InDelta(t, defaultRetention.DecayFirstWeek*initial, atWeek, 1e-9)
	assert.InDelta(t, defaultRetention.DecayFirstMonth*initial, atMonth, 1e-9)
}

func TestFitDecayCurve_FullRetentionHasNoDecay(t *testing.T) {
	curve, err := FitDecayCurve(50, domain.RetentionParameters{DecayFirstDay: 1, DecayFirstWeek: 1, DecayFirstMonth: 1})
	require.NoError(t, err)

	assert.InDelta(t, 50, curve.Amplitude, 1e-12)
	assert.InDelta(t, 0, curve.Lambda, 1e-12)
}

func TestComputeRevenue(t *testing.T) {
	active := seriesOf(100, 11.1, 0)

	revenue, err := ComputeRevenue(active, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{50, 5.55, 0}, revenue.Values)
	assert.Equal(t, active.Range, revenue.Range)

	_, err = ComputeRevenue(active, -1)
	assert.True(t, errors.Is(err, ErrValueInvalid))
}

func TestComputeActiveUsers_OverflowIsRejected(t *testing.T) {
	_, _, err := ComputeActiveUsers(seriesOf(1.7e308, 1.7e308), 100, defaultRetention)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValueInvalid))
}

func TestComputeRevenue_OverflowIsRejected(t *testing.T) {
	revenue, err := ComputeRevenue(seriesOf(200, 122.2), 1e308)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValueInvalid))
	assert.Nil(t, revenue.Values)

	var simErr *SimulationError
	require.True(t, errors.As(err, &simErr))
	assert.Equal(t, "revenue", simErr.Field)
}
