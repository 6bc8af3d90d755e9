package domain

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed recommendations.yaml
var recommendationsYAML []byte

// Recommendation is the suggested starting point for a business type.
type Recommendation struct {
	BusinessType string     `json:"business_type"`
	DailyBudget  float64    `json:"daily_budget"`
	Allocation   Allocation `json:"allocation"`
}

type recommendationTable struct {
	Fallback           string  `yaml:"fallback"`
	DefaultDailyBudget float64 `yaml:"default_daily_budget"`
	BusinessTypes      map[string]struct {
		DailyBudget float64               `yaml:"daily_budget"`
		Allocation  map[Placement]float64 `yaml:"allocation"`
	} `yaml:"business_types"`
}

var recommendations = mustLoadRecommendations(recommendationsYAML)

func mustLoadRecommendations(raw []byte) recommendationTable {
	t, err := loadRecommendations(raw)
	if err != nil {
		panic(err)
	}
	return t
}

func loadRecommendations(raw []byte) (recommendationTable, error) {
	var t recommendationTable
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("parse recommendations: %w", err)
	}
	fb, ok := t.BusinessTypes[t.Fallback]
	if !ok || len(fb.Allocation) == 0 {
		return t, fmt.Errorf("recommendations: fallback %q has no allocation", t.Fallback)
	}
	return t, nil
}

// Recommend returns the recommended allocation and daily budget for
// businessType. Types without their own allocation borrow the fallback
// type's split.
func Recommend(businessType string) Recommendation {
	fb := recommendations.BusinessTypes[recommendations.Fallback]
	rec := Recommendation{
		BusinessType: businessType,
		DailyBudget:  recommendations.DefaultDailyBudget,
		Allocation:   Allocation(fb.Allocation).Clone(),
	}

	entry, ok := recommendations.BusinessTypes[businessType]
	if !ok {
		return rec
	}
	if entry.DailyBudget > 0 {
		rec.DailyBudget = entry.DailyBudget
	}
	if len(entry.Allocation) > 0 {
		rec.Allocation = Allocation(entry.Allocation).Clone()
	}
	return rec
}
