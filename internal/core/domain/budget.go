package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
)

// BudgetPeriod tells whether a budget amount is spent per day or over the
// whole life of a campaign.
type BudgetPeriod string

const (
	BudgetDaily    BudgetPeriod = "daily"
	BudgetLifetime BudgetPeriod = "lifetime"
)

// Valid reports whether p is a known period.
func (p BudgetPeriod) Valid() bool {
	return p == BudgetDaily || p == BudgetLifetime
}

// DefaultCurrency is used when a budget carries no currency code.
const DefaultCurrency = "USD"

// Budget is the spend configured for a campaign.
type Budget struct {
	Amount   float64      `json:"amount"`
	Period   BudgetPeriod `json:"period"`
	Currency string       `json:"currency"`
}

// Normalize fills in defaults for an empty period or currency.
func (b Budget) Normalize() Budget {
	if b.Period == "" {
		b.Period = BudgetDaily
	}
	if b.Currency == "" {
		b.Currency = DefaultCurrency
	}
	b.Currency = strings.ToUpper(b.Currency)
	return b
}

// EffectiveDaily returns the amount spent per day. Lifetime budgets are
// treated as a week of spend for estimation.
func (b Budget) EffectiveDaily() float64 {
	if b.Period == BudgetLifetime {
		return b.Amount / 7
	}
	return b.Amount
}

// OptimizationGoal is the campaign objective the ad platform optimizes for.
type OptimizationGoal string

const (
	GoalLeadGeneration   OptimizationGoal = "LEAD_GENERATION"
	GoalConversions      OptimizationGoal = "CONVERSIONS"
	GoalLinkClicks       OptimizationGoal = "LINK_CLICKS"
	GoalLandingPageViews OptimizationGoal = "LANDING_PAGE_VIEWS"
	GoalPageLikes        OptimizationGoal = "PAGE_LIKES"
	GoalPostEngagement   OptimizationGoal = "POST_ENGAGEMENT"
	GoalVideoViews       OptimizationGoal = "VIDEO_VIEWS"
	GoalReach            OptimizationGoal = "REACH"
	GoalImpressions      OptimizationGoal = "IMPRESSIONS"
)

// minimumBudgets holds the platform minimum daily budget per goal.
var minimumBudgets = map[OptimizationGoal]float64{
	GoalLeadGeneration:   5.00,
	GoalConversions:      5.00,
	GoalLinkClicks:       1.00,
	GoalLandingPageViews: 1.00,
	GoalPageLikes:        1.00,
	GoalPostEngagement:   1.00,
	GoalVideoViews:       1.00,
	GoalReach:            1.00,
	GoalImpressions:      1.00,
}

const fallbackMinimumBudget = 5.00

// Known reports whether g is one of the supported goals.
func (g OptimizationGoal) Known() bool {
	_, ok := minimumBudgets[g]
	return ok
}

// MinimumBudget returns the minimum daily budget for goal. Unknown goals
// get the strictest minimum.
func MinimumBudget(goal OptimizationGoal) float64 {
	if v, ok := minimumBudgets[goal]; ok {
		return v
	}
	return fallbackMinimumBudget
}

// ValidateBudget checks b against the platform minimums for goal.
func ValidateBudget(b Budget, goal OptimizationGoal) []Advisory {
	b = b.Normalize()
	var out []Advisory

	if _, err := currency.ParseISO(b.Currency); err != nil {
		out = append(out, Advisory{
			Code:    AdvisoryInvalidCurrency,
			Message: fmt.Sprintf("unknown currency code %q", b.Currency),
		})
	}

	minimum := MinimumBudget(goal)
	if b.Amount < minimum {
		out = append(out, Advisory{
			Code:    AdvisoryBudgetBelowMinimum,
			Message: fmt.Sprintf("minimum %s budget for %s is %.2f %s", b.Period, goal, minimum, b.Currency),
		})
	}
	if b.Period == BudgetLifetime && b.Amount < minimum*7 {
		out = append(out, Advisory{
			Code:    AdvisoryLifetimeBelowMinimum,
			Message: fmt.Sprintf("lifetime budget should be at least %.2f %s (7x daily minimum)", minimum*7, b.Currency),
		})
	}
	return out
}
