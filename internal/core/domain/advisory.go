package domain

import (
	"math"
	"strconv"
	"strings"
)

// AdvisoryCode classifies a non-fatal problem with a campaign's budget
// setup. Advisories are shown inline and block launching; they are not
// errors.
type AdvisoryCode string

const (
	AdvisoryBudgetBelowMinimum   AdvisoryCode = "budget_below_minimum"
	AdvisoryLifetimeBelowMinimum AdvisoryCode = "lifetime_below_minimum"
	AdvisoryInvalidCurrency      AdvisoryCode = "invalid_currency"
	AdvisoryAllocationExceeds    AdvisoryCode = "allocation_exceeds"
	AdvisoryAllocationIncomplete AdvisoryCode = "allocation_incomplete"
	AdvisoryBidCapRequired       AdvisoryCode = "bid_cap_required"
	AdvisoryTargetCostRequired   AdvisoryCode = "target_cost_required"
	AdvisoryBudgetMissing        AdvisoryCode = "budget_missing"
)

// Advisory is a single inline warning.
type Advisory struct {
	Code    AdvisoryCode `json:"code"`
	Message string       `json:"message"`
}

// LaunchError is returned when a campaign cannot be launched because its
// budget setup still carries advisories.
type LaunchError struct {
	Advisories []Advisory
}

func (e *LaunchError) Error() string {
	codes := make([]string, len(e.Advisories))
	for i, a := range e.Advisories {
		codes[i] = string(a.Code)
	}
	return "campaign not launchable: " + strings.Join(codes, ", ")
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64) + "%"
}
