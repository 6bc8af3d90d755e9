package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"leadflare/internal/core/domain"
)

// handleListLeads returns leads filtered by the optional `campaign_id`,
// `status`, `agent` and `search` query parameters. Leads are newest first
// unless `sort` and `order` say otherwise.
func (h *Handler) handleListLeads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.LeadFilter{
		CampaignID: q.Get("campaign_id"),
		Status:     domain.LeadStatus(q.Get("status")),
		Agent:      q.Get("agent"),
		Search:     q.Get("search"),
		SortBy:     q.Get("sort"),
		Order:      domain.SortOrder(q.Get("order")),
	}
	leads, err := h.leads.ListLeads(r.Context(), f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, leads)
}

// handleCaptureLead stores a lead form submission and returns it with
// HTTP 201.
func (h *Handler) handleCaptureLead(w http.ResponseWriter, r *http.Request) {
	var l domain.Lead
	if err := decode(r, &l, false); err != nil {
		h.badRequest(w, "invalid JSON")
		return
	}
	out, err := h.leads.CaptureLead(r.Context(), l)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, out)
}

func (h *Handler) handleGetLead(w http.ResponseWriter, r *http.Request) {
	l, err := h.leads.GetLead(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, l)
}

type statusRequest struct {
	IDs    []string          `json:"ids,omitempty"`
	Status domain.LeadStatus `json:"status"`
}

func (h *Handler) handleLeadStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decode(r, &req, false); err != nil {
		h.badRequest(w, "invalid JSON")
		return
	}
	l, err := h.leads.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, l)
}

// handleBulkLeadStatus moves every lead in `ids` to `status`. Nothing is
// written when any id is unknown.
func (h *Handler) handleBulkLeadStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decode(r, &req, false); err != nil {
		h.badRequest(w, "invalid JSON")
		return
	}
	n, err := h.leads.BulkUpdateStatus(r.Context(), req.IDs, req.Status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"updated": n})
}

func (h *Handler) handleAddNote(w http.ResponseWriter, r *http.Request) {
	var note domain.ContactNote
	if err := decode(r, &note, false); err != nil {
		h.badRequest(w, "invalid JSON")
		return
	}
	l, err := h.leads.AddNote(r.Context(), chi.URLParam(r, "id"), note)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, l)
}
