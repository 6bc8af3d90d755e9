package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"leadflare/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for HTTP.
// It holds the use cases that execute business logic and a logger for
// structured logging. Routes are registered on a chi.Router for convenient
// method handling.
type Handler struct {
	budget    port.BudgetUseCase
	campaigns port.CampaignUseCase
	leads     port.LeadUseCase
	creatives port.CreativeUseCase
	logger    *slog.Logger
	router    chi.Router
}

// UseCases groups the use cases served over HTTP.
type UseCases struct {
	Budget    port.BudgetUseCase
	Campaigns port.CampaignUseCase
	Leads     port.LeadUseCase
	Creatives port.CreativeUseCase
}

// NewHandler creates a handler with all routes configured.
func NewHandler(uc UseCases, logger *slog.Logger) *Handler {
	h := &Handler{
		budget:    uc.Budget,
		campaigns: uc.Campaigns,
		leads:     uc.Leads,
		creatives: uc.Creatives,
		logger:    logger,
	}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/budget", func(r chi.Router) {
			r.Post("/rebalance", h.handleRebalance)
			r.Post("/plan", h.handlePlan)
			r.Get("/minimum", h.handleMinimumBudget)
			r.Get("/recommended", h.handleRecommended)
		})
		r.Post("/audience/estimate", h.handleAudienceEstimate)

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", h.handleListCampaigns)
			r.Post("/", h.handleCreateCampaign)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleGetCampaign)
				r.Delete("/", h.handleDeleteCampaign)
				r.Put("/budget", h.handleUpdateBudget)
				r.Post("/duplicate", h.handleDuplicateCampaign)
				r.Post("/toggle", h.handleToggleCampaign)
				r.Post("/launch", h.handleLaunchCampaign)
				r.Post("/delivery", h.handleRecordDelivery)
			})
		})

		r.Route("/leads", func(r chi.Router) {
			r.Get("/", h.handleListLeads)
			r.Post("/", h.handleCaptureLead)
			r.Get("/stats", h.handleLeadStats)
			r.Post("/status", h.handleBulkLeadStatus)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleGetLead)
				r.Patch("/status", h.handleLeadStatus)
				r.Post("/notes", h.handleAddNote)
			})
		})

		r.Get("/stats/overview", h.handleStatsOverview)
	})

	r.Post("/api/ai/generate-creatives", h.handleGenerateCreatives)

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
