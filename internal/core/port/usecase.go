package port

import (
	"context"
	"errors"

	"leadflare/internal/core/domain"
)

var (
	// ErrStaleRequest is returned when a generation result was superseded
	// by a newer request for the same draft and section before it
	// completed.
	ErrStaleRequest = errors.New("stale request")
	// ErrMissingContext is returned when a generation request carries no
	// campaign context.
	ErrMissingContext = errors.New("missing campaign context")
	// ErrUnknownContentType is returned when a regeneration names an
	// unknown section.
	ErrUnknownContentType = errors.New("unknown content type")
)

// BudgetUseCase exposes the budget allocator, validator and projector. All
// operations are pure recomputations from their inputs.
type BudgetUseCase interface {
	// Rebalance sets one placement's share and proportionally shrinks the
	// others when the total would exceed 100 percent.
	Rebalance(alloc domain.Allocation, placement domain.Placement, value float64) domain.Allocation
	// Plan derives projections, placement budgets and advisories.
	Plan(req PlanReq) domain.Plan
	// MinimumBudget returns the platform minimum for a goal.
	MinimumBudget(goal domain.OptimizationGoal) float64
	// Recommend returns the suggested allocation and budget for a business type.
	Recommend(businessType string) domain.Recommendation
	// EstimateAudience sizes the audience reached by targeting.
	EstimateAudience(t domain.Targeting) domain.AudienceEstimate
}

// PlanReq is the input of BudgetUseCase.Plan.
type PlanReq struct {
	Budget     domain.Budget           `json:"budget"`
	Goal       domain.OptimizationGoal `json:"goal"`
	Allocation domain.Allocation       `json:"allocation"`
}

// CampaignUseCase defines campaign management operations.
type CampaignUseCase interface {
	// CreateCampaign validates the draft and stores a paused campaign with
	// the recommended allocation for its business type.
	CreateCampaign(ctx context.Context, draft domain.CampaignDraft) (*domain.Campaign, error)
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
	ListCampaigns(ctx context.Context, f domain.CampaignFilter) ([]domain.Campaign, error)
	// UpdateBudget replaces budget and allocation. With Launch set the
	// campaign is activated, subject to the launch gate.
	UpdateBudget(ctx context.Context, id string, req BudgetUpdateReq) (*domain.Campaign, error)
	// DuplicateCampaign copies a campaign with the requested budget setup.
	DuplicateCampaign(ctx context.Context, id string, req BudgetUpdateReq) (*domain.Campaign, error)
	ToggleStatus(ctx context.Context, id string) (*domain.Campaign, error)
	// LaunchCampaign activates a campaign or returns *domain.LaunchError.
	LaunchCampaign(ctx context.Context, id string) (*domain.Campaign, error)
	// RecordDelivery adds platform-reported delivery to a campaign's metrics.
	RecordDelivery(ctx context.Context, id string, r domain.DeliveryReport) (*domain.Campaign, error)
	DeleteCampaign(ctx context.Context, id string) error
	// Overview aggregates metrics across campaigns.
	Overview(ctx context.Context) (domain.Overview, error)
}

// BudgetUpdateReq carries an edited budget setup. Nil fields keep the
// campaign's current value.
type BudgetUpdateReq struct {
	Budget     *domain.Budget      `json:"budget,omitempty"`
	Allocation domain.Allocation   `json:"allocation,omitempty"`
	Bidding    *domain.BidSettings `json:"bidding,omitempty"`
	Launch     bool                `json:"launch"`
}

// LeadUseCase defines lead management operations.
type LeadUseCase interface {
	// CaptureLead stores a lead submitted through a campaign's lead form.
	CaptureLead(ctx context.Context, l domain.Lead) (*domain.Lead, error)
	GetLead(ctx context.Context, id string) (*domain.Lead, error)
	ListLeads(ctx context.Context, f domain.LeadFilter) ([]domain.Lead, error)
	UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) (*domain.Lead, error)
	// BulkUpdateStatus applies status to every lead in ids and returns the
	// number updated. Unknown ids fail the whole call before any write.
	BulkUpdateStatus(ctx context.Context, ids []string, status domain.LeadStatus) (int, error)
	AddNote(ctx context.Context, id string, note domain.ContactNote) (*domain.Lead, error)
	Stats(ctx context.Context) (domain.LeadStats, error)
}

// CreativeUseCase generates ad creatives with a degrade path.
type CreativeUseCase interface {
	// Generate produces creatives for every section, or only for
	// ContentType when Regenerate is set. It returns ErrStaleRequest when
	// DraftID is set and a newer request superseded this one.
	Generate(ctx context.Context, req GenerateReq) (*domain.GeneratedCreatives, error)
}

// GenerateReq is the creative generation request body.
type GenerateReq struct {
	CampaignContext *domain.CampaignContext `json:"campaignContext"`
	ContentType     domain.ContentType      `json:"contentType,omitempty"`
	Regenerate      bool                    `json:"regenerate,omitempty"`
	DraftID         string                  `json:"draftId,omitempty"`
}
