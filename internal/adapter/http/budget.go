package httpadapter

import (
	"net/http"

	"leadflare/internal/core/domain"
	"leadflare/internal/core/port"
)

type rebalanceRequest struct {
	Allocation domain.Allocation `json:"allocation"`
	Placement  domain.Placement  `json:"placement"`
	Value      float64           `json:"value"`
}

type rebalanceResponse struct {
	Allocation domain.Allocation `json:"allocation"`
	Total      float64           `json:"total"`
	Remaining  float64           `json:"remaining"`
	Complete   bool              `json:"complete"`
	Advisories []domain.Advisory `json:"advisories"`
}

// handleRebalance sets one placement's share of the budget. The other
// placements shrink proportionally when the total would pass 100 percent.
// An unknown placement or an out-of-range share results in HTTP 400.
func (h *Handler) handleRebalance(w http.ResponseWriter, r *http.Request) {
	var req rebalanceRequest
	if err := decode(r, &req, false); err != nil {
		h.badRequest(w, "invalid JSON")
		return
	}
	if !req.Placement.Valid() {
		h.writeError(w, r, &domain.ValidationError{Fields: []string{"placement"}})
		return
	}
	if req.Allocation == nil {
		req.Allocation = domain.DefaultAllocation()
	}
	if err := req.Allocation.Validate(); err != nil {
		h.writeError(w, r, err)
		return
	}

	alloc := h.budget.Rebalance(req.Allocation, req.Placement, req.Value)
	advisories := alloc.Advisories()
	if advisories == nil {
		advisories = []domain.Advisory{}
	}
	h.writeJSON(w, http.StatusOK, rebalanceResponse{
		Allocation: alloc,
		Total:      alloc.Total(),
		Remaining:  alloc.Remaining(),
		Complete:   alloc.IsComplete(),
		Advisories: advisories,
	})
}

type planResponse struct {
	domain.Plan
	Display projectionDisplay `json:"display"`
}

// handlePlan derives the budget screen state: per placement budgets,
// projections and advisories. Projections are also returned formatted
// for display in the budget's currency. Allocations with unknown
// placements or out-of-range shares result in HTTP 400.
func (h *Handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req port.PlanReq
	if err := decode(r, &req, false); err != nil {
		h.badRequest(w, "invalid JSON")
		return
	}
	if err := req.Allocation.Validate(); err != nil {
		h.writeError(w, r, err)
		return
	}
	plan := h.budget.Plan(req)
	h.writeJSON(w, http.StatusOK, planResponse{
		Plan:    plan,
		Display: newDisplayFormatter(plan.Budget.Currency).projection(plan.Projection),
	})
}

// handleMinimumBudget returns the platform minimum for the `goal` query
// parameter. Unknown goals get the fallback minimum.
func (h *Handler) handleMinimumBudget(w http.ResponseWriter, r *http.Request) {
	goal := domain.OptimizationGoal(r.URL.Query().Get("goal"))
	if goal == "" {
		h.badRequest(w, "missing goal")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"goal":    goal,
		"known":   goal.Known(),
		"minimum": h.budget.MinimumBudget(goal),
	})
}

// handleRecommended returns the suggested allocation and daily budget for
// the `business_type` query parameter.
func (h *Handler) handleRecommended(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.budget.Recommend(r.URL.Query().Get("business_type")))
}

// handleAudienceEstimate sizes the audience reached by the posted targeting.
func (h *Handler) handleAudienceEstimate(w http.ResponseWriter, r *http.Request) {
	var t domain.Targeting
	if err := decode(r, &t, false); err != nil {
		h.badRequest(w, "invalid JSON")
		return
	}
	h.writeJSON(w, http.StatusOK, h.budget.EstimateAudience(t))
}
