package port

import (
	"context"
	"errors"

	"leadflare/internal/core/domain"
)

// ErrNotFound is returned by repositories and use cases when the requested
// record does not exist.
var ErrNotFound = errors.New("not found")

// CampaignRepository defines persistence for campaigns. It is an outbound
// port in hexagonal architecture. Implementations must be safe for
// concurrent use.
type CampaignRepository interface {
	// CreateCampaign stores a new campaign. The campaign ID must be set.
	CreateCampaign(ctx context.Context, c domain.Campaign) error
	// GetCampaign returns a campaign by id or ErrNotFound.
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
	// ListCampaigns returns every campaign ordered by creation time.
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
	// UpdateCampaign replaces a stored campaign or returns ErrNotFound.
	UpdateCampaign(ctx context.Context, c domain.Campaign) error
	// DeleteCampaign removes a campaign and its leads or returns ErrNotFound.
	DeleteCampaign(ctx context.Context, id string) error
}

// LeadRepository defines persistence for leads.
type LeadRepository interface {
	// CreateLead stores a new lead. The lead ID must be set.
	CreateLead(ctx context.Context, l domain.Lead) error
	// GetLead returns a lead by id or ErrNotFound.
	GetLead(ctx context.Context, id string) (*domain.Lead, error)
	// ListLeads returns every lead ordered by creation time.
	ListLeads(ctx context.Context) ([]domain.Lead, error)
	// UpdateLead replaces a stored lead or returns ErrNotFound.
	UpdateLead(ctx context.Context, l domain.Lead) error
}
