package domain

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// SortOrder is the direction of a listing sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// CampaignFilter narrows and orders a campaign listing.
type CampaignFilter struct {
	Status CampaignStatus
	Search string
	// SortBy is one of name, type, status, spend or leads. Defaults to name.
	SortBy string
	Order  SortOrder
}

// Apply returns the campaigns matching f in the requested order. The input
// slice is not reordered.
func (f CampaignFilter) Apply(in []Campaign) []Campaign {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]Campaign, 0, len(in))
	for _, c := range in {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(strings.ToLower(c.BusinessType), search) {
			continue
		}
		out = append(out, c)
	}

	compare := func(a, b Campaign) int {
		switch f.SortBy {
		case "type":
			return cmp.Compare(strings.ToLower(a.BusinessType), strings.ToLower(b.BusinessType))
		case "status":
			return cmp.Compare(strings.ToLower(string(a.Status)), strings.ToLower(string(b.Status)))
		case "spend":
			return cmp.Compare(a.Metrics.Spend, b.Metrics.Spend)
		case "leads":
			return cmp.Compare(a.Metrics.Leads, b.Metrics.Leads)
		default:
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	}
	slices.SortStableFunc(out, directed(compare, f.Order))
	return out
}

// LeadFilter narrows and orders a lead listing.
type LeadFilter struct {
	CampaignID string
	Status     LeadStatus
	Agent      string
	Search     string
	// SortBy is one of created, score, name, status or lastContact.
	// Defaults to created.
	SortBy string
	// Order defaults to descending for leads so the newest come first.
	Order SortOrder
}

// Apply returns the leads matching f in the requested order.
func (f LeadFilter) Apply(in []Lead) []Lead {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]Lead, 0, len(in))
	for _, l := range in {
		if f.CampaignID != "" && l.CampaignID != f.CampaignID {
			continue
		}
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		if f.Agent != "" && l.AssignedAgent != f.Agent {
			continue
		}
		if search != "" && !leadMatches(l, search) {
			continue
		}
		out = append(out, l)
	}

	compare := func(a, b Lead) int {
		switch f.SortBy {
		case "score":
			return cmp.Compare(a.AIScore, b.AIScore)
		case "name":
			return cmp.Compare(strings.ToLower(a.FullName()), strings.ToLower(b.FullName()))
		case "status":
			return cmp.Compare(a.Status, b.Status)
		case "lastContact":
			return lastContact(a).Compare(lastContact(b))
		default:
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}
	order := f.Order
	if order == "" {
		order = SortDesc
	}
	slices.SortStableFunc(out, directed(compare, order))
	return out
}

func leadMatches(l Lead, search string) bool {
	for _, field := range []string{l.FirstName, l.LastName, l.Email, l.Company} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func lastContact(l Lead) time.Time {
	if l.LastContactedAt == nil {
		return time.Time{}
	}
	return *l.LastContactedAt
}

func directed[T any](compare func(a, b T) int, order SortOrder) func(a, b T) int {
	if order == SortDesc {
		return func(a, b T) int { return compare(b, a) }
	}
	return compare
}

// LeadStats counts leads per status and lists the assigned agents.
type LeadStats struct {
	Total    int                `json:"total"`
	ByStatus map[LeadStatus]int `json:"by_status"`
	Agents   []string           `json:"agents"`
}

// SummarizeLeads computes LeadStats over leads.
func SummarizeLeads(leads []Lead) LeadStats {
	stats := LeadStats{
		Total:    len(leads),
		ByStatus: make(map[LeadStatus]int, len(LeadStatuses)),
		Agents:   []string{},
	}
	for _, s := range LeadStatuses {
		stats.ByStatus[s] = 0
	}
	for _, l := range leads {
		stats.ByStatus[l.Status]++
		if l.AssignedAgent != "" && !slices.Contains(stats.Agents, l.AssignedAgent) {
			stats.Agents = append(stats.Agents, l.AssignedAgent)
		}
	}
	slices.Sort(stats.Agents)
	return stats
}
