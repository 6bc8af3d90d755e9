package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"leadflare/internal/core/domain"
	"leadflare/internal/core/port"
)

// LeadUseCase implements port.LeadUseCase.
type LeadUseCase struct {
	leads     port.LeadRepository
	campaigns port.CampaignRepository
	logger    *slog.Logger
	now       func() time.Time
}

// NewLeadUseCase creates a LeadUseCase. The campaign repository is used to
// resolve the campaign a lead belongs to.
func NewLeadUseCase(leads port.LeadRepository, campaigns port.CampaignRepository, logger *slog.Logger) *LeadUseCase {
	return &LeadUseCase{
		leads:     leads,
		campaigns: campaigns,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CaptureLead stores a lead from a campaign's lead form. Unset status
// defaults to new; the campaign name is copied from the campaign.
func (u *LeadUseCase) CaptureLead(ctx context.Context, l domain.Lead) (*domain.Lead, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	c, err := u.campaigns.GetCampaign(ctx, l.CampaignID)
	if errors.Is(err, port.ErrNotFound) {
		return nil, &domain.ValidationError{Fields: []string{"campaign_id"}}
	}
	if err != nil {
		return nil, err
	}

	l.ID = uuid.NewString()
	l.CampaignName = c.Name
	l.Email = strings.ToLower(strings.TrimSpace(l.Email))
	if l.Status == "" {
		l.Status = domain.LeadNew
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = u.now()
	}
	if l.FormData == nil {
		l.FormData = map[string]string{}
	}
	if l.AIInsights == nil {
		l.AIInsights = []string{}
	}
	if l.Tags == nil {
		l.Tags = []string{}
	}
	if l.Notes == nil {
		l.Notes = []domain.ContactNote{}
	}
	if err = u.leads.CreateLead(ctx, l); err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}
	u.logger.Info("lead captured", slog.String("id", l.ID), slog.String("campaign_id", l.CampaignID))
	return &l, nil
}

// GetLead returns a lead by id.
func (u *LeadUseCase) GetLead(ctx context.Context, id string) (*domain.Lead, error) {
	return u.leads.GetLead(ctx, id)
}

// ListLeads returns the leads matching f.
func (u *LeadUseCase) ListLeads(ctx context.Context, f domain.LeadFilter) ([]domain.Lead, error) {
	all, err := u.leads.ListLeads(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return f.Apply(all), nil
}

// UpdateStatus moves a lead to status.
func (u *LeadUseCase) UpdateStatus(ctx context.Context, id string, status domain.LeadStatus) (*domain.Lead, error) {
	if !status.Valid() {
		return nil, &domain.ValidationError{Fields: []string{"status"}}
	}
	l, err := u.leads.GetLead(ctx, id)
	if err != nil {
		return nil, err
	}
	l.SetStatus(status, u.now())
	if err = u.leads.UpdateLead(ctx, *l); err != nil {
		return nil, fmt.Errorf("update lead %s: %w", id, err)
	}
	return l, nil
}

// BulkUpdateStatus moves every lead in ids to status. All ids are resolved
// before the first write.
func (u *LeadUseCase) BulkUpdateStatus(ctx context.Context, ids []string, status domain.LeadStatus) (int, error) {
	if !status.Valid() {
		return 0, &domain.ValidationError{Fields: []string{"status"}}
	}
	if len(ids) == 0 {
		return 0, &domain.ValidationError{Fields: []string{"ids"}}
	}

	batch := make([]*domain.Lead, 0, len(ids))
	for _, id := range ids {
		l, err := u.leads.GetLead(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("lead %s: %w", id, err)
		}
		batch = append(batch, l)
	}

	now := u.now()
	for _, l := range batch {
		l.SetStatus(status, now)
		if err := u.leads.UpdateLead(ctx, *l); err != nil {
			return 0, fmt.Errorf("update lead %s: %w", l.ID, err)
		}
	}
	u.logger.Info("lead statuses updated", slog.Int("count", len(batch)), slog.String("status", string(status)))
	return len(batch), nil
}

// AddNote appends a contact note to a lead.
func (u *LeadUseCase) AddNote(ctx context.Context, id string, note domain.ContactNote) (*domain.Lead, error) {
	if note.Type == "" {
		note.Type = domain.NoteText
	}
	var fields []string
	if !note.Type.Valid() {
		fields = append(fields, "type")
	}
	if strings.TrimSpace(note.Content) == "" {
		fields = append(fields, "content")
	}
	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}

	l, err := u.leads.GetLead(ctx, id)
	if err != nil {
		return nil, err
	}
	note.ID = uuid.NewString()
	if note.Date.IsZero() {
		note.Date = u.now()
	}
	l.AddNote(note)
	if err = u.leads.UpdateLead(ctx, *l); err != nil {
		return nil, fmt.Errorf("update lead %s: %w", id, err)
	}
	return l, nil
}

// Stats counts leads per status.
func (u *LeadUseCase) Stats(ctx context.Context) (domain.LeadStats, error) {
	all, err := u.leads.ListLeads(ctx)
	if err != nil {
		return domain.LeadStats{}, fmt.Errorf("list leads: %w", err)
	}
	return domain.SummarizeLeads(all), nil
}
