package httpadapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"leadflare/internal/core/domain"
	"leadflare/internal/core/port"
)

// handleListCampaigns returns campaigns filtered by the optional `status`
// and `search` query parameters and ordered by `sort` and `order`.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := domain.CampaignFilter{
		Status: domain.CampaignStatus(q.Get("status")),
		Search: q.Get("search"),
		SortBy: q.Get("sort"),
		Order:  domain.SortOrder(q.Get("order")),
	}
	campaigns, err := h.campaigns.ListCampaigns(r.Context(), f)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, campaigns)
}

// handleCreateCampaign stores the wizard draft as a paused campaign and
// returns it with HTTP 201.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var draft domain.CampaignDraft
	if err := decode(r, &draft, false); err != nil {
		h.badRequest(w, "invalid JSON")
		return
	}
	c, err := h.campaigns.CreateCampaign(r.Context(), draft)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.campaigns.GetCampaign(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *Handler) handleDeleteCampaign(w http.ResponseWriter, r *http.Request) {
	if err := h.campaigns.DeleteCampaign(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUpdateBudget saves an edited budget setup. With `launch` set the
// campaign is also activated; a setup with advisories results in HTTP 422.
func (h *Handler) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	var req port.BudgetUpdateReq
	if err := decode(r, &req, false); err != nil {
		h.badRequest(w, "invalid JSON")
		return
	}
	c, err := h.campaigns.UpdateBudget(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

// handleDuplicateCampaign copies a campaign. The body is optional and may
// override the copy's budget setup.
func (h *Handler) handleDuplicateCampaign(w http.ResponseWriter, r *http.Request) {
	var req port.BudgetUpdateReq
	if err := decode(r, &req, true); err != nil {
		h.badRequest(w, "invalid JSON")
		return
	}
	c, err := h.campaigns.DuplicateCampaign(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, c)
}

func (h *Handler) handleToggleCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.campaigns.ToggleStatus(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

func (h *Handler) handleLaunchCampaign(w http.ResponseWriter, r *http.Request) {
	c, err := h.campaigns.LaunchCampaign(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}

// handleRecordDelivery adds a delivery report from the ad platform to the
// campaign's metrics.
func (h *Handler) handleRecordDelivery(w http.ResponseWriter, r *http.Request) {
	var report domain.DeliveryReport
	if err := decode(r, &report, false); err != nil {
		h.badRequest(w, "invalid JSON")
		return
	}
	c, err := h.campaigns.RecordDelivery(r.Context(), chi.URLParam(r, "id"), report)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, c)
}
