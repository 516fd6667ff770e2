package simulating

import (
	"github.com/vfg2006/users-revenue-simulator/internal/domain"
)

// ComputeRevenue multiplica os usuários ativos pelo ARPDAU
func ComputeRevenue(activeUsers domain.DailySeries, arpdau float64) (domain.DailySeries, error) {
	if err := requireNonNegative("arpdau", arpdau); err != nil {
		return domain.DailySeries{}, err
	}

	revenue := domain.DailySeries{
		Range:  activeUsers.Range,
		Values: make([]float64, activeUsers.Len()),
	}
	for i, v := range activeUsers.Values {
		revenue.Values[i] = v * arpdau
	}

	if err := requireFiniteSeries("revenue", revenue); err != nil {
		return domain.DailySeries{}, err
	}

	return revenue, nil
}
