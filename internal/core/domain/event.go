package domain

import "time"

// DeliveryReport is a delivery increment reported by the ad platform for a
// campaign. Reports are additive.
type DeliveryReport struct {
	Spend       float64   `json:"spend"`
	Leads       int64     `json:"leads"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	ReportedAt  time.Time `json:"reported_at"`
}

// Validate rejects negative counters.
func (r DeliveryReport) Validate() error {
	var fields []string
	if r.Spend < 0 {
		fields = append(fields, "spend")
	}
	if r.Leads < 0 {
		fields = append(fields, "leads")
	}
	if r.Impressions < 0 {
		fields = append(fields, "impressions")
	}
	if r.Clicks < 0 {
		fields = append(fields, "clicks")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Apply adds the report to the metrics.
func (m Metrics) Apply(r DeliveryReport) Metrics {
	m.Spend = roundCents(m.Spend + r.Spend)
	m.Leads += r.Leads
	m.Impressions += r.Impressions
	m.Clicks += r.Clicks
	return m
}

// Overview aggregates metrics over a set of campaigns.
type Overview struct {
	Campaigns   int     `json:"campaigns"`
	Active      int     `json:"active"`
	Spend       float64 `json:"spend"`
	Leads       int64   `json:"leads"`
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	CostPerLead float64 `json:"cost_per_lead"`
	CTR         float64 `json:"ctr"`
}

// Summarize builds an overview of campaigns.
func Summarize(campaigns []Campaign) Overview {
	var (
		o   Overview
		sum Metrics
	)
	o.Campaigns = len(campaigns)
	for _, c := range campaigns {
		if c.Status == CampaignActive {
			o.Active++
		}
		sum = sum.Apply(DeliveryReport{
			Spend:       c.Metrics.Spend,
			Leads:       c.Metrics.Leads,
			Impressions: c.Metrics.Impressions,
			Clicks:      c.Metrics.Clicks,
		})
	}
	o.Spend = sum.Spend
	o.Leads = sum.Leads
	o.Impressions = sum.Impressions
	o.Clicks = sum.Clicks
	o.CostPerLead = sum.CostPerLead()
	o.CTR = sum.CTR()
	return o
}
