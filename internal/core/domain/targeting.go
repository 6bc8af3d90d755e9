package domain

import "math"

// Gender restricts the audience of a campaign.
type Gender string

const (
	GenderAll    Gender = "all"
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Targeting describes who should see a campaign.
type Targeting struct {
	AgeMin     int         `json:"age_min"`
	AgeMax     int         `json:"age_max"`
	Gender     Gender      `json:"gender"`
	Locations  []string    `json:"locations"`
	Interests  []string    `json:"interests"`
	Behaviors  []string    `json:"behaviors"`
	Placements []Placement `json:"placements"`
}

// AudienceEstimate is a rough audience size derived from targeting.
type AudienceEstimate struct {
	Size        int64    `json:"size"`
	WeeklyReach IntRange `json:"weekly_reach"`
}

const (
	baseAudience    = 5_000_000
	minAudienceSize = 50_000
	fullAgeSpan     = 52
)

// EstimateAudience narrows a fixed base audience by each targeting
// criterion. Like Project it is illustrative, not calibrated.
func EstimateAudience(t Targeting) AudienceEstimate {
	size := float64(baseAudience)
	size *= float64(t.AgeMax-t.AgeMin) / fullAgeSpan

	if t.Gender != "" && t.Gender != GenderAll {
		size *= 0.5
	}
	if n := len(t.Locations); n > 0 {
		size *= math.Min(float64(n)*0.3, 1)
	}
	if n := len(t.Interests); n > 0 {
		size *= math.Max(0.1, 1-float64(n)*0.15)
	}
	if n := len(t.Behaviors); n > 0 {
		size *= math.Max(0.05, 1-float64(n)*0.2)
	}

	audience := max(minAudienceSize, int64(math.Floor(size)))
	return AudienceEstimate{
		Size: audience,
		WeeklyReach: IntRange{
			Min: int64(math.Floor(float64(audience) * 0.1)),
			Max: int64(math.Floor(float64(audience) * 0.3)),
		},
	}
}
