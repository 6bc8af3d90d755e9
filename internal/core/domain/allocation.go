package domain

import (
	"math"
	"slices"
)

// Placement identifies an ad surface that can receive a share of the budget.
type Placement string

const (
	PlacementFacebookFeeds       Placement = "facebook_feeds"
	PlacementInstagramFeeds      Placement = "instagram_feeds"
	PlacementFacebookMarketplace Placement = "facebook_marketplace"
	PlacementInstagramStories    Placement = "instagram_stories"
)

// Placements lists every placement in display order.
var Placements = []Placement{
	PlacementFacebookFeeds,
	PlacementInstagramFeeds,
	PlacementFacebookMarketplace,
	PlacementInstagramStories,
}

// Valid reports whether p is one of the known placements.
func (p Placement) Valid() bool {
	return slices.Contains(Placements, p)
}

// allocationTolerance is the slack allowed when checking that an
// allocation adds up to exactly 100 percent.
const allocationTolerance = 0.1

// Allocation maps each placement to its percentage share (0-100) of the
// campaign budget. The shares are expected, but not required, to sum to
// 100 while a user is still editing them.
type Allocation map[Placement]float64

// DefaultAllocation returns the allocation a fresh budget screen starts from.
func DefaultAllocation() Allocation {
	return Allocation{
		PlacementFacebookFeeds:       50,
		PlacementInstagramFeeds:      30,
		PlacementFacebookMarketplace: 20,
		PlacementInstagramStories:    0,
	}
}

// Clone returns an independent copy of a.
func (a Allocation) Clone() Allocation {
	out := make(Allocation, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Validate rejects unknown placements and shares outside 0-100. The
// failing fields are named "allocation.<placement>" in sorted order.
func (a Allocation) Validate() error {
	var fields []string
	for p, v := range a {
		if !p.Valid() || math.IsNaN(v) || v < 0 || v > 100 {
			fields = append(fields, "allocation."+string(p))
		}
	}
	if len(fields) > 0 {
		slices.Sort(fields)
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Total returns the sum of all shares.
func (a Allocation) Total() float64 {
	var sum float64
	for _, v := range a {
		sum += v
	}
	return sum
}

// Remaining returns how many percentage points are still unallocated.
func (a Allocation) Remaining() float64 {
	return math.Max(0, 100-a.Total())
}

// IsComplete reports whether the shares add up to 100 within tolerance.
// It gates launching a campaign.
func (a Allocation) IsComplete() bool {
	return math.Abs(a.Total()-100) < allocationTolerance
}

// Rebalance returns a new allocation with key set to newValue. When the
// result would exceed 100 percent the overflow is taken from the other
// placements in proportion to their current shares, each floored at zero.
// Every reduction is computed from the same snapshot of current, so the
// outcome does not depend on map iteration order. current is not modified.
//
// newValue is clamped to [0, 100]. A key missing from current is treated
// as holding zero.
func Rebalance(current Allocation, key Placement, newValue float64) Allocation {
	newValue = clampPercent(newValue)

	var otherTotal float64
	for k, v := range current {
		if k != key {
			otherTotal += v
		}
	}

	next := current.Clone()
	next[key] = newValue

	total := newValue + otherTotal
	if total <= 100 || otherTotal <= 0 {
		return next
	}

	excess := total - 100
	for k, v := range current {
		if k == key {
			continue
		}
		next[k] = math.Max(0, v-v/otherTotal*excess)
	}
	return next
}

// PlacementBudgets splits amount across placements according to the
// allocation, rounding each share to cents.
func (a Allocation) PlacementBudgets(amount float64) map[Placement]float64 {
	out := make(map[Placement]float64, len(a))
	for k, v := range a {
		out[k] = roundCents(amount * v / 100)
	}
	return out
}

// Advisories reports allocation problems that should block a launch.
func (a Allocation) Advisories() []Advisory {
	if a.IsComplete() {
		return nil
	}
	total := a.Total()
	if total > 100 {
		return []Advisory{{
			Code:    AdvisoryAllocationExceeds,
			Message: "allocation exceeds 100% by " + formatPercent(total-100) + "; adjust placements to continue",
		}}
	}
	return []Advisory{{
		Code:    AdvisoryAllocationIncomplete,
		Message: formatPercent(100-total) + " of the budget is unallocated",
	}}
}

func clampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
