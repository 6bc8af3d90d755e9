package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimumBudget(t *testing.T) {
	assert.Equal(t, 5.00, MinimumBudget(GoalLeadGeneration))
	assert.Equal(t, 5.00, MinimumBudget(GoalConversions))
	assert.Equal(t, 1.00, MinimumBudget(GoalLinkClicks))
	assert.Equal(t, 1.00, MinimumBudget(GoalImpressions))
	assert.Equal(t, 5.00, MinimumBudget("STORE_VISITS"))
	assert.False(t, OptimizationGoal("STORE_VISITS").Known())
}

func TestBudgetNormalize(t *testing.T) {
	assert.Equal(t, Budget{Amount: 10, Period: BudgetDaily, Currency: "USD"}, Budget{Amount: 10}.Normalize())
	assert.Equal(t, Budget{Amount: 10, Period: BudgetLifetime, Currency: "EUR"},
		Budget{Amount: 10, Period: BudgetLifetime, Currency: "eur"}.Normalize())
}

func TestEffectiveDaily(t *testing.T) {
	assert.Equal(t, 50.0, Budget{Amount: 50, Period: BudgetDaily}.EffectiveDaily())
	assert.Equal(t, 100.0, Budget{Amount: 700, Period: BudgetLifetime}.EffectiveDaily())
}

func TestValidateBudget(t *testing.T) {
	tests := []struct {
		name   string
		budget Budget
		goal   OptimizationGoal
		want   []AdvisoryCode
	}{
		{name: "ok", budget: Budget{Amount: 5}, goal: GoalLeadGeneration},
		{name: "below minimum", budget: Budget{Amount: 4.99}, goal: GoalLeadGeneration, want: []AdvisoryCode{AdvisoryBudgetBelowMinimum}},
		{name: "low goal minimum", budget: Budget{Amount: 1}, goal: GoalLinkClicks},
		{
			name:   "lifetime under a week of minimum",
			budget: Budget{Amount: 30, Period: BudgetLifetime},
			goal:   GoalLeadGeneration,
			want:   []AdvisoryCode{AdvisoryLifetimeBelowMinimum},
		},
		{name: "lifetime ok", budget: Budget{Amount: 35, Period: BudgetLifetime}, goal: GoalLeadGeneration},
		{name: "bad currency", budget: Budget{Amount: 10, Currency: "ZZZ"}, goal: GoalReach, want: []AdvisoryCode{AdvisoryInvalidCurrency}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []AdvisoryCode
			for _, a := range ValidateBudget(tt.budget, tt.goal) {
				got = append(got, a.Code)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateBudgetMessage(t *testing.T) {
	adv := ValidateBudget(Budget{Amount: 2}, GoalConversions)
	require.Len(t, adv, 1)
	assert.Equal(t, "minimum daily budget for CONVERSIONS is 5.00 USD", adv[0].Message)
}
