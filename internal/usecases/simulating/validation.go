package simulating

import (
	"math"

	"github.com/vfg2006/users-revenue-simulator/internal/domain"
)

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// requireNonNegative rejeita valores negativos, NaN e infinitos
func requireNonNegative(field string, v float64) error {
	if !isFinite(v) {
		return newValueInvalid(field, "must be a finite number, got %v", v)
	}
	if v < 0 {
		return newValueInvalid(field, "must be >= 0, got %v", v)
	}
	return nil
}

// requireFraction aceita apenas frações no intervalo (0, 1]
func requireFraction(field string, v float64) error {
	if !isFinite(v) {
		return newValueInvalid(field, "must be a finite number, got %v", v)
	}
	if v <= 0 || v > 1 {
		return newValueInvalid(field, "must be in (0, 1], got %v", v)
	}
	return nil
}

// requireFiniteSeries rejeita séries com valores que estouraram o float64
func requireFiniteSeries(field string, series domain.DailySeries) error {
	for i, v := range series.Values {
		if !isFinite(v) {
			return newValueInvalid(field, "day %d overflows to %v", i, v)
		}
	}
	return nil
}
