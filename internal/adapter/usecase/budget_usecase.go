package usecase

import (
	"leadflare/internal/core/domain"
	"leadflare/internal/core/port"
)

// BudgetUseCase implements port.BudgetUseCase on top of the pure domain
// allocator, validator and projector.
type BudgetUseCase struct{}

// NewBudgetUseCase returns a BudgetUseCase.
func NewBudgetUseCase() *BudgetUseCase {
	return &BudgetUseCase{}
}

// Rebalance sets placement to value and shrinks the other placements
// proportionally when the total would exceed 100 percent.
func (u *BudgetUseCase) Rebalance(alloc domain.Allocation, placement domain.Placement, value float64) domain.Allocation {
	return domain.Rebalance(alloc, placement, value)
}

// Plan derives the budget screen state. A nil allocation falls back to the
// default split.
func (u *BudgetUseCase) Plan(req port.PlanReq) domain.Plan {
	alloc := req.Allocation
	if alloc == nil {
		alloc = domain.DefaultAllocation()
	}
	goal := req.Goal
	if goal == "" {
		goal = domain.GoalLeadGeneration
	}
	return domain.NewPlan(req.Budget, goal, alloc)
}

// MinimumBudget returns the platform minimum for goal.
func (u *BudgetUseCase) MinimumBudget(goal domain.OptimizationGoal) float64 {
	return domain.MinimumBudget(goal)
}

// Recommend returns the recommended setup for businessType.
func (u *BudgetUseCase) Recommend(businessType string) domain.Recommendation {
	return domain.Recommend(businessType)
}

// EstimateAudience sizes the audience for t.
func (u *BudgetUseCase) EstimateAudience(t domain.Targeting) domain.AudienceEstimate {
	return domain.EstimateAudience(t)
}
