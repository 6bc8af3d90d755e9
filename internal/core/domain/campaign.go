package domain

import (
	"errors"
	"strings"
	"time"
)

// CampaignStatus is the delivery state of a campaign.
type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "Active"
	CampaignPaused    CampaignStatus = "Paused"
	CampaignCompleted CampaignStatus = "Completed"
)

// ErrInvalidTransition is returned for status changes a campaign cannot make.
var ErrInvalidTransition = errors.New("invalid status transition")

// Metrics are the delivery counters reported for a campaign.
type Metrics struct {
	Spend       float64 `json:"spend"`
	Leads       int64   `json:"leads"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
}

// CostPerLead returns spend per lead, or 0 before the first lead.
func (m Metrics) CostPerLead() float64 {
	if m.Leads == 0 {
		return 0
	}
	return roundCents(m.Spend / float64(m.Leads))
}

// CTR returns the click-through rate in percent.
func (m Metrics) CTR() float64 {
	if m.Impressions == 0 {
		return 0
	}
	return float64(m.Clicks) / float64(m.Impressions) * 100
}

// CPC returns the average cost per click.
func (m Metrics) CPC() float64 {
	if m.Clicks == 0 {
		return 0
	}
	return roundCents(m.Spend / float64(m.Clicks))
}

// CPM returns the cost per thousand impressions.
func (m Metrics) CPM() float64 {
	if m.Impressions == 0 {
		return 0
	}
	return roundCents(m.Spend / float64(m.Impressions) * 1000)
}

// Campaign represents a lead-generation campaign.
type Campaign struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	BusinessType     string         `json:"business_type"`
	Description      string         `json:"description"`
	PrivacyPolicyURL string         `json:"privacy_policy_url"`
	Status           CampaignStatus `json:"status"`
	Budget           Budget         `json:"budget"`
	Allocation       Allocation     `json:"allocation"`
	Bidding          BidSettings    `json:"bidding"`
	Targeting        Targeting      `json:"targeting"`
	Metrics          Metrics        `json:"metrics"`
	StartDate        time.Time      `json:"start_date"`
	EndDate          *time.Time     `json:"end_date,omitempty"`
	CreatedBy        string         `json:"created_by"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// CampaignDraft is the wizard input used to create a campaign.
type CampaignDraft struct {
	Name             string       `json:"name"`
	BusinessType     string       `json:"business_type"`
	Description      string       `json:"description"`
	PrivacyPolicyURL string       `json:"privacy_policy_url"`
	Targeting        Targeting    `json:"targeting"`
	Bidding          *BidSettings `json:"bidding,omitempty"`
	Budget           Budget       `json:"budget"`
	CreatedBy        string       `json:"created_by"`
}

// Validate checks the fields the wizard requires before moving on.
func (d CampaignDraft) Validate() error {
	var fields []string
	if strings.TrimSpace(d.Name) == "" {
		fields = append(fields, "name")
	}
	if strings.TrimSpace(d.BusinessType) == "" {
		fields = append(fields, "business_type")
	}
	if strings.TrimSpace(d.Description) == "" {
		fields = append(fields, "description")
	}
	if len(d.Targeting.Locations) == 0 {
		fields = append(fields, "locations")
	}
	if strings.TrimSpace(d.PrivacyPolicyURL) == "" {
		fields = append(fields, "privacy_policy_url")
	}
	if d.Targeting.AgeMin > d.Targeting.AgeMax {
		fields = append(fields, "age_range")
	}
	if d.Budget.Period != "" && !d.Budget.Period.Valid() {
		fields = append(fields, "budget.period")
	}
	if d.Budget.Amount < 0 {
		fields = append(fields, "budget.amount")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// ToggleStatus flips an active campaign to paused and back. Completed
// campaigns cannot be toggled.
func (c *Campaign) ToggleStatus(now time.Time) error {
	switch c.Status {
	case CampaignActive:
		c.Status = CampaignPaused
	case CampaignPaused:
		c.Status = CampaignActive
	default:
		return ErrInvalidTransition
	}
	c.UpdatedAt = now
	return nil
}

// Launch activates the campaign if its budget setup has no advisories.
func (c *Campaign) Launch(now time.Time) error {
	if c.Status == CampaignCompleted {
		return ErrInvalidTransition
	}
	if adv := LaunchAdvisories(c.Budget, c.Allocation, c.Bidding); len(adv) > 0 {
		return &LaunchError{Advisories: adv}
	}
	c.Status = CampaignActive
	c.UpdatedAt = now
	return nil
}

// Copy returns a fresh campaign based on c with zeroed metrics. The caller
// assigns the ID.
func (c Campaign) Copy(now time.Time) Campaign {
	out := c
	out.ID = ""
	out.Name = c.Name + " (Copy)"
	out.Status = CampaignPaused
	out.Metrics = Metrics{}
	out.Allocation = c.Allocation.Clone()
	out.Targeting = c.Targeting.clone()
	out.StartDate = now.Truncate(24 * time.Hour)
	out.EndDate = nil
	out.CreatedAt = now
	out.UpdatedAt = now
	return out
}

func (t Targeting) clone() Targeting {
	out := t
	out.Locations = append([]string(nil), t.Locations...)
	out.Interests = append([]string(nil), t.Interests...)
	out.Behaviors = append([]string(nil), t.Behaviors...)
	out.Placements = append([]Placement(nil), t.Placements...)
	return out
}
