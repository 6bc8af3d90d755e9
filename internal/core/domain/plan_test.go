package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func codes(adv []Advisory) []AdvisoryCode {
	out := make([]AdvisoryCode, 0, len(adv))
	for _, a := range adv {
		out = append(out, a.Code)
	}
	return out
}

func TestNewPlan(t *testing.T) {
	p := NewPlan(Budget{Amount: 50}, GoalLeadGeneration, DefaultAllocation())

	assert.True(t, p.CanLaunch)
	assert.True(t, p.Complete)
	assert.Equal(t, 100.0, p.TotalAllocation)
	assert.Equal(t, 0.0, p.Remaining)
	assert.Equal(t, 5.0, p.MinimumBudget)
	assert.Equal(t, "USD", p.Budget.Currency)
	assert.Equal(t, 15.0, p.PlacementBudgets[PlacementInstagramFeeds])
	assert.True(t, p.Projection.Available)
	assert.Empty(t, p.Advisories)
}

func TestNewPlanBlocked(t *testing.T) {
	tests := []struct {
		name   string
		budget Budget
		alloc  Allocation
		want   []AdvisoryCode
	}{
		{
			name:   "below minimum",
			budget: Budget{Amount: 3},
			alloc:  DefaultAllocation(),
			want:   []AdvisoryCode{AdvisoryBudgetBelowMinimum},
		},
		{
			name:   "over allocated",
			budget: Budget{Amount: 50},
			alloc:  Allocation{PlacementFacebookFeeds: 80, PlacementInstagramFeeds: 30},
			want:   []AdvisoryCode{AdvisoryAllocationExceeds},
		},
		{
			name:   "under allocated",
			budget: Budget{Amount: 50},
			alloc:  Allocation{PlacementFacebookFeeds: 80},
			want:   []AdvisoryCode{AdvisoryAllocationIncomplete},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlan(tt.budget, GoalLeadGeneration, tt.alloc)
			assert.False(t, p.CanLaunch)
			assert.Equal(t, tt.want, codes(p.Advisories))
		})
	}
}

func TestNewPlanDoesNotAliasAllocation(t *testing.T) {
	alloc := DefaultAllocation()
	p := NewPlan(Budget{Amount: 50}, GoalLeadGeneration, alloc)

	alloc[PlacementFacebookFeeds] = 0
	assert.Equal(t, 50.0, p.Allocation[PlacementFacebookFeeds])
}

func TestLaunchAdvisories(t *testing.T) {
	bids := DefaultBidSettings()
	assert.Empty(t, LaunchAdvisories(Budget{Amount: 20}, DefaultAllocation(), bids))

	assert.Equal(t,
		[]AdvisoryCode{AdvisoryBudgetMissing, AdvisoryBudgetBelowMinimum},
		codes(LaunchAdvisories(Budget{}, DefaultAllocation(), bids)))

	bids.Strategy = BidLowestCostWithCap
	assert.Equal(t,
		[]AdvisoryCode{AdvisoryBidCapRequired},
		codes(LaunchAdvisories(Budget{Amount: 20}, DefaultAllocation(), bids)))

	bids.BidCap = ptr(2.5)
	assert.Empty(t, LaunchAdvisories(Budget{Amount: 20}, DefaultAllocation(), bids))
}

func TestBidSettingsAdvisories(t *testing.T) {
	s := BidSettings{Strategy: BidTargetCost, TargetCost: ptr(0)}
	assert.Equal(t, []AdvisoryCode{AdvisoryTargetCostRequired}, codes(s.Advisories()))

	s.TargetCost = ptr(12)
	assert.Empty(t, s.Advisories())

	assert.Empty(t, BidSettings{Strategy: BidLowestCost}.Advisories())
}

func TestNewPlanOutOfRangeShares(t *testing.T) {
	p := NewPlan(Budget{Amount: 100}, GoalLeadGeneration, Allocation{
		PlacementFacebookFeeds:  150,
		PlacementInstagramFeeds: -50,
	})

	assert.True(t, p.Complete)
	assert.False(t, p.CanLaunch)
}
