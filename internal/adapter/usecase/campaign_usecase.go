package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"leadflare/internal/core/domain"
	"leadflare/internal/core/port"
)

// CampaignUseCase provides business logic for campaign management. It
// orchestrates the domain and the repository to implement
// port.CampaignUseCase.
type CampaignUseCase struct {
	repo   port.CampaignRepository
	logger *slog.Logger

	// now is the clock used for timestamps; replaced in tests.
	now func() time.Time
}

// NewCampaignUseCase creates a new usecase with the provided repository.
func NewCampaignUseCase(repo port.CampaignRepository, logger *slog.Logger) *CampaignUseCase {
	return &CampaignUseCase{repo: repo, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// CreateCampaign validates the wizard draft and stores a paused campaign.
// The allocation starts from the recommendation for the business type.
func (u *CampaignUseCase) CreateCampaign(ctx context.Context, draft domain.CampaignDraft) (*domain.Campaign, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	now := u.now()

	bidding := domain.DefaultBidSettings()
	if draft.Bidding != nil {
		bidding = *draft.Bidding
	}
	targeting := draft.Targeting
	if targeting.Gender == "" {
		targeting.Gender = domain.GenderAll
	}
	createdBy := draft.CreatedBy
	if createdBy == "" {
		createdBy = "Current User"
	}

	c := domain.Campaign{
		ID:               uuid.NewString(),
		Name:             draft.Name,
		BusinessType:     draft.BusinessType,
		Description:      draft.Description,
		PrivacyPolicyURL: draft.PrivacyPolicyURL,
		Status:           domain.CampaignPaused,
		Budget:           draft.Budget.Normalize(),
		Allocation:       domain.Recommend(draft.BusinessType).Allocation,
		Bidding:          bidding,
		Targeting:        targeting,
		StartDate:        now.Truncate(24 * time.Hour),
		CreatedBy:        createdBy,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := u.repo.CreateCampaign(ctx, c); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	u.logger.Info("campaign created", slog.String("id", c.ID), slog.String("business_type", c.BusinessType))
	return &c, nil
}

// GetCampaign returns a campaign by id.
func (u *CampaignUseCase) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	return u.repo.GetCampaign(ctx, id)
}

// ListCampaigns returns the campaigns matching f.
func (u *CampaignUseCase) ListCampaigns(ctx context.Context, f domain.CampaignFilter) ([]domain.Campaign, error) {
	all, err := u.repo.ListCampaigns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return f.Apply(all), nil
}

// UpdateBudget applies an edited budget setup. When req.Launch is set the
// campaign must pass the launch gate, otherwise nothing is stored.
func (u *CampaignUseCase) UpdateBudget(ctx context.Context, id string, req port.BudgetUpdateReq) (*domain.Campaign, error) {
	if err := validateBudgetUpdate(req); err != nil {
		return nil, err
	}
	c, err := u.repo.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	now := u.now()
	applyBudgetUpdate(c, req)
	c.UpdatedAt = now
	if req.Launch {
		if err = c.Launch(now); err != nil {
			return nil, err
		}
	}
	if err = u.repo.UpdateCampaign(ctx, *c); err != nil {
		return nil, fmt.Errorf("update campaign %s: %w", id, err)
	}
	return c, nil
}

// DuplicateCampaign stores a copy of the campaign with the edited budget
// setup. The copy is paused unless req.Launch is set and it passes the
// launch gate.
func (u *CampaignUseCase) DuplicateCampaign(ctx context.Context, id string, req port.BudgetUpdateReq) (*domain.Campaign, error) {
	if err := validateBudgetUpdate(req); err != nil {
		return nil, err
	}
	src, err := u.repo.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	now := u.now()
	cp := src.Copy(now)
	cp.ID = uuid.NewString()
	applyBudgetUpdate(&cp, req)
	if req.Launch {
		if err = cp.Launch(now); err != nil {
			return nil, err
		}
	}
	if err = u.repo.CreateCampaign(ctx, cp); err != nil {
		return nil, fmt.Errorf("duplicate campaign %s: %w", id, err)
	}
	u.logger.Info("campaign duplicated", slog.String("source", id), slog.String("id", cp.ID))
	return &cp, nil
}

// ToggleStatus pauses an active campaign or resumes a paused one.
func (u *CampaignUseCase) ToggleStatus(ctx context.Context, id string) (*domain.Campaign, error) {
	return u.mutate(ctx, id, func(c *domain.Campaign, now time.Time) error {
		return c.ToggleStatus(now)
	})
}

// LaunchCampaign activates the campaign when its budget setup is complete.
func (u *CampaignUseCase) LaunchCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	c, err := u.mutate(ctx, id, func(c *domain.Campaign, now time.Time) error {
		return c.Launch(now)
	})
	if err != nil {
		var launchErr *domain.LaunchError
		if errors.As(err, &launchErr) {
			u.logger.Debug("launch blocked", slog.String("id", id), slog.Int("advisories", len(launchErr.Advisories)))
		}
		return nil, err
	}
	u.logger.Info("campaign launched", slog.String("id", id))
	return c, nil
}

// RecordDelivery adds a delivery report to the campaign's metrics.
func (u *CampaignUseCase) RecordDelivery(ctx context.Context, id string, r domain.DeliveryReport) (*domain.Campaign, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return u.mutate(ctx, id, func(c *domain.Campaign, now time.Time) error {
		c.Metrics = c.Metrics.Apply(r)
		c.UpdatedAt = now
		return nil
	})
}

// DeleteCampaign removes a campaign.
func (u *CampaignUseCase) DeleteCampaign(ctx context.Context, id string) error {
	if err := u.repo.DeleteCampaign(ctx, id); err != nil {
		return err
	}
	u.logger.Info("campaign deleted", slog.String("id", id))
	return nil
}

// Overview aggregates metrics over all campaigns.
func (u *CampaignUseCase) Overview(ctx context.Context) (domain.Overview, error) {
	all, err := u.repo.ListCampaigns(ctx)
	if err != nil {
		return domain.Overview{}, fmt.Errorf("list campaigns: %w", err)
	}
	return domain.Summarize(all), nil
}

func (u *CampaignUseCase) mutate(ctx context.Context, id string, fn func(c *domain.Campaign, now time.Time) error) (*domain.Campaign, error) {
	c, err := u.repo.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = fn(c, u.now()); err != nil {
		return nil, err
	}
	if err = u.repo.UpdateCampaign(ctx, *c); err != nil {
		return nil, fmt.Errorf("update campaign %s: %w", id, err)
	}
	return c, nil
}

func validateBudgetUpdate(req port.BudgetUpdateReq) error {
	var fields []string
	if req.Budget != nil {
		if req.Budget.Amount < 0 {
			fields = append(fields, "budget.amount")
		}
		if req.Budget.Period != "" && !req.Budget.Period.Valid() {
			fields = append(fields, "budget.period")
		}
	}
	var verr *domain.ValidationError
	if errors.As(req.Allocation.Validate(), &verr) {
		fields = append(fields, verr.Fields...)
	}
	if len(fields) > 0 {
		slices.Sort(fields)
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

func applyBudgetUpdate(c *domain.Campaign, req port.BudgetUpdateReq) {
	if req.Budget != nil {
		c.Budget = req.Budget.Normalize()
	}
	if req.Allocation != nil {
		c.Allocation = req.Allocation.Clone()
	}
	if req.Bidding != nil {
		c.Bidding = *req.Bidding
	}
}
