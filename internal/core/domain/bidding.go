package domain

// BidStrategy mirrors the ad platform's bid_strategy field.
type BidStrategy string

const (
	BidLowestCost        BidStrategy = "LOWEST_COST_WITHOUT_CAP"
	BidLowestCostWithCap BidStrategy = "LOWEST_COST_WITH_BID_CAP"
	BidTargetCost        BidStrategy = "TARGET_COST"
)

// Pacing mirrors the ad platform's pacing_type field.
type Pacing string

const (
	PacingStandard    Pacing = "STANDARD"
	PacingAccelerated Pacing = "ACCELERATED"
)

// AttributionSpec is the conversion attribution window.
type AttributionSpec string

const (
	Attribution1DayClick          AttributionSpec = "1_day_click"
	Attribution7DayClick          AttributionSpec = "7_day_click"
	Attribution7DayClick1DayView  AttributionSpec = "7_day_click_1_day_view"
	Attribution28DayClick         AttributionSpec = "28_day_click"
	Attribution28DayClick1DayView AttributionSpec = "28_day_click_1_day_view"
)

// BidSettings groups bidding and optimization options of a campaign.
type BidSettings struct {
	Strategy     BidStrategy      `json:"strategy"`
	Optimization OptimizationGoal `json:"optimization"`
	BidCap       *float64         `json:"bid_cap,omitempty"`
	TargetCost   *float64         `json:"target_cost,omitempty"`
	Pacing       Pacing           `json:"pacing"`
	Attribution  AttributionSpec  `json:"attribution"`
	SpendCap     *float64         `json:"spend_cap,omitempty"`
}

// DefaultBidSettings returns the settings new campaigns start with.
func DefaultBidSettings() BidSettings {
	return BidSettings{
		Strategy:     BidLowestCost,
		Optimization: GoalLeadGeneration,
		Pacing:       PacingStandard,
		Attribution:  Attribution7DayClick1DayView,
	}
}

// Advisories reports strategy options that are missing their amounts.
func (s BidSettings) Advisories() []Advisory {
	var out []Advisory
	if s.Strategy == BidLowestCostWithCap && (s.BidCap == nil || *s.BidCap <= 0) {
		out = append(out, Advisory{Code: AdvisoryBidCapRequired, Message: "bid cap strategy requires a positive bid cap"})
	}
	if s.Strategy == BidTargetCost && (s.TargetCost == nil || *s.TargetCost <= 0) {
		out = append(out, Advisory{Code: AdvisoryTargetCostRequired, Message: "target cost strategy requires a positive target cost"})
	}
	return out
}
