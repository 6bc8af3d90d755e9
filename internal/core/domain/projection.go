package domain

import "math"

// FloatRange is an inclusive numeric range.
type FloatRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// IntRange is an inclusive integer range.
type IntRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Projection is a rough estimate of what a budget buys. It is illustrative
// only and carries no accuracy guarantee.
type Projection struct {
	// Available is false for the zero-budget sentinel.
	Available bool `json:"available"`

	EffectiveDaily float64    `json:"effective_daily"`
	CostPerResult  float64    `json:"cost_per_result"`
	CostRange      FloatRange `json:"cost_range"`
	DailyResults   int64      `json:"daily_results"`
	ResultsRange   IntRange   `json:"results_range"`
	Reach          IntRange   `json:"reach"`
	WeeklySpend    float64    `json:"weekly_spend"`
	MonthlySpend   float64    `json:"monthly_spend"`
}

// NotAvailable is returned by Project when there is no budget to estimate.
var NotAvailable = Projection{}

// baseCosts is the cost-per-result table by goal.
var baseCosts = map[OptimizationGoal]float64{
	GoalLeadGeneration: 10,
	GoalConversions:    15,
	GoalLinkClicks:     2,
}

const defaultBaseCost = 8

// spendBand picks the cost and reach multipliers for a daily spend.
func spendBand(daily float64) (costMul, reachMul float64) {
	switch {
	case daily < 25:
		return 1.5, 200
	case daily < 50:
		return 1.2, 300
	case daily < 100:
		return 1.0, 350
	default:
		return 0.8, 400
	}
}

// BaseCost returns the base cost-per-result constant for goal.
func BaseCost(goal OptimizationGoal) float64 {
	if v, ok := baseCosts[goal]; ok {
		return v
	}
	return defaultBaseCost
}

// Project estimates reach, cost and volume for budget under goal.
func Project(budget Budget, goal OptimizationGoal) Projection {
	if !(budget.Amount > 0) {
		return NotAvailable
	}

	daily := budget.EffectiveDaily()
	costMul, reachMul := spendBand(daily)
	cost := BaseCost(goal) * costMul

	results := int64(math.Floor(daily / cost))
	minReach := int64(math.Floor(daily * reachMul))
	maxReach := int64(math.Floor(float64(minReach) * 1.6))

	p := Projection{
		Available:      true,
		EffectiveDaily: daily,
		CostPerResult:  cost,
		CostRange:      FloatRange{Min: cost * 0.8, Max: cost * 1.2},
		DailyResults:   results,
		ResultsRange:   IntRange{Min: max(1, results-1), Max: results + 2},
		Reach:          IntRange{Min: minReach, Max: maxReach},
	}
	if budget.Period == BudgetLifetime {
		p.WeeklySpend = budget.Amount
		p.MonthlySpend = roundCents(budget.Amount * 4.33)
	} else {
		p.WeeklySpend = budget.Amount * 7
		p.MonthlySpend = roundCents(budget.Amount * 30.44)
	}
	return p
}
