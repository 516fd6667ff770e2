package simulating

import (
	"github.com/vfg2006/users-revenue-simulator/internal/domain"
)

// ComputeNewUsers calcula a série diária de novos usuários do período.
//
// O dia 0 recebe os usuários iniciais; todos os dias (inclusive o dia 0) recebem
// budget/custo usuários adquiridos, e a série inteira é multiplicada por
// (spinoff + 1), inclusive os usuários iniciais.
func ComputeNewUsers(dateRange domain.DateRange, params domain.AcquisitionParameters) (domain.DailySeries, error) {
	if dateRange.IsInverted() {
		return domain.DailySeries{}, newRangeInvalid("end date %s is before start date %s",
			dateRange.End.Format("2006-01-02"), dateRange.Start.Format("2006-01-02"))
	}

	if err := requireNonNegative("initial_user_count", params.InitialUserCount); err != nil {
		return domain.DailySeries{}, err
	}
	if err := requireNonNegative("monthly_budget", params.MonthlyBudget); err != nil {
		return domain.DailySeries{}, err
	}
	if err := requireNonNegative("organic_spinoff", params.OrganicSpinoff); err != nil {
		return domain.DailySeries{}, err
	}
	if err := requireNonNegative("acquisition_cost", params.AcquisitionCost); err != nil {
		return domain.DailySeries{}, err
	}
	if params.AcquisitionCost == 0 {
		return domain.DailySeries{}, &SimulationError{
			Err:     ErrDivisionUndefined,
			Field:   "acquisition_cost",
			Details: "acquisition cost per user must be greater than zero",
		}
	}

	dailyAcquired := params.MonthlyBudget / params.AcquisitionCost
	multiplier := params.OrganicSpinoff + 1

	series := domain.NewDailySeries(dateRange)
	series.Values[0] = params.InitialUserCount

	for i := range series.Values {
		series.Values[i] = (series.Values[i] + dailyAcquired) * multiplier
	}

	if err := requireFiniteSeries("new_users", series); err != nil {
		return domain.DailySeries{}, err
	}

	return series, nil
}
