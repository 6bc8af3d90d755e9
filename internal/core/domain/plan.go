package domain

// Plan is the complete budget screen state derived from a budget, a goal
// and an allocation.
type Plan struct {
	Budget           Budget                `json:"budget"`
	Goal             OptimizationGoal      `json:"goal"`
	Allocation       Allocation            `json:"allocation"`
	PlacementBudgets map[Placement]float64 `json:"placement_budgets"`
	MinimumBudget    float64               `json:"minimum_budget"`
	TotalAllocation  float64               `json:"total_allocation"`
	Remaining        float64               `json:"remaining"`
	Complete         bool                  `json:"complete"`
	Projection       Projection            `json:"projection"`
	Advisories       []Advisory            `json:"advisories"`
	CanLaunch        bool                  `json:"can_launch"`
}

// NewPlan derives the plan for the given inputs.
func NewPlan(budget Budget, goal OptimizationGoal, alloc Allocation) Plan {
	budget = budget.Normalize()
	budgetAdvisories := ValidateBudget(budget, goal)

	advisories := make([]Advisory, 0, len(budgetAdvisories)+1)
	advisories = append(advisories, budgetAdvisories...)
	advisories = append(advisories, alloc.Advisories()...)

	return Plan{
		Budget:           budget,
		Goal:             goal,
		Allocation:       alloc.Clone(),
		PlacementBudgets: alloc.PlacementBudgets(budget.Amount),
		MinimumBudget:    MinimumBudget(goal),
		TotalAllocation:  alloc.Total(),
		Remaining:        alloc.Remaining(),
		Complete:         alloc.IsComplete(),
		Projection:       Project(budget, goal),
		Advisories:       advisories,
		CanLaunch:        len(budgetAdvisories) == 0 && budget.Amount > 0 && alloc.IsComplete() && alloc.Validate() == nil,
	}
}

// LaunchAdvisories returns everything that blocks launching with the given
// budget, allocation and bid settings. An empty result means launchable.
func LaunchAdvisories(budget Budget, alloc Allocation, bids BidSettings) []Advisory {
	var out []Advisory
	if !(budget.Amount > 0) {
		out = append(out, Advisory{Code: AdvisoryBudgetMissing, Message: "enter a budget before launching"})
	}
	out = append(out, ValidateBudget(budget, bids.Optimization)...)
	out = append(out, alloc.Advisories()...)
	out = append(out, bids.Advisories()...)
	return out
}
