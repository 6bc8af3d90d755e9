package httpadapter

import (
	"net/http"
)

// handleStatsOverview returns delivery totals across all campaigns together
// with the lead funnel counts. Internal errors produce HTTP 500.
func (h *Handler) handleStatsOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.campaigns.Overview(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	leads, err := h.leads.Stats(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	f := newDisplayFormatter("USD")
	h.writeJSON(w, http.StatusOK, map[string]any{
		"campaigns": overview,
		"leads":     leads,
		"display": map[string]string{
			"spend":         f.money(overview.Spend),
			"cost_per_lead": f.money(overview.CostPerLead),
			"ctr":           f.p.Sprintf("%.2f%%", overview.CTR),
		},
	})
}

// handleLeadStats counts leads per status and lists assigned agents.
func (h *Handler) handleLeadStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.leads.Stats(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}
