package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"leadflare/internal/core/domain"
	"leadflare/internal/core/port"
)

// LeadRepository implements port.LeadRepository using pgxpool.
type LeadRepository struct {
	pool *pgxpool.Pool
}

// NewLeadRepository returns a new repository instance.
func NewLeadRepository(pool *pgxpool.Pool) *LeadRepository {
	return &LeadRepository{pool: pool}
}

const leadColumns = `
            id,
            campaign_id,
            campaign_name,
            status,
            first_name,
            last_name,
            email,
            phone,
            company,
            source,
            created_at,
            last_contacted_at,
            ai_score,
            ai_insights,
            contact_attempts,
            next_action,
            assigned_agent,
            form_data,
            notes,
            tags`

// CreateLead inserts l.
func (r *LeadRepository) CreateLead(ctx context.Context, l domain.Lead) error {
	docs, err := marshalLeadDocs(l)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO leads (`+leadColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`,
		l.ID, l.CampaignID, l.CampaignName, l.Status, l.FirstName, l.LastName,
		l.Email, l.Phone, l.Company, l.Source, l.CreatedAt, l.LastContactedAt,
		l.AIScore, docs.insights, l.ContactAttempts, l.NextAction, l.AssignedAgent,
		docs.formData, docs.notes, docs.tags)
	return err
}

// GetLead returns a lead by id.
func (r *LeadRepository) GetLead(ctx context.Context, id string) (*domain.Lead, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	l, err := pgx.CollectExactlyOneRow(rows, scanLead)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListLeads returns all leads ordered by creation time.
func (r *LeadRepository) ListLeads(ctx context.Context) ([]domain.Lead, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanLead)
}

// UpdateLead overwrites the follow-up state of l.
func (r *LeadRepository) UpdateLead(ctx context.Context, l domain.Lead) error {
	docs, err := marshalLeadDocs(l)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `UPDATE leads SET
    status = $2, first_name = $3, last_name = $4, email = $5, phone = $6, company = $7,
    last_contacted_at = $8, ai_score = $9, ai_insights = $10, contact_attempts = $11,
    next_action = $12, assigned_agent = $13, form_data = $14, notes = $15, tags = $16
WHERE id = $1`,
		l.ID, l.Status, l.FirstName, l.LastName, l.Email, l.Phone, l.Company,
		l.LastContactedAt, l.AIScore, docs.insights, l.ContactAttempts,
		l.NextAction, l.AssignedAgent, docs.formData, docs.notes, docs.tags)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

type leadDocs struct {
	insights, formData, notes, tags []byte
}

func marshalLeadDocs(l domain.Lead) (leadDocs, error) {
	var (
		d   leadDocs
		err error
	)
	if d.insights, err = json.Marshal(nonNil(l.AIInsights)); err != nil {
		return d, fmt.Errorf("encode insights: %w", err)
	}
	formData := l.FormData
	if formData == nil {
		formData = map[string]string{}
	}
	if d.formData, err = json.Marshal(formData); err != nil {
		return d, fmt.Errorf("encode form data: %w", err)
	}
	if d.notes, err = json.Marshal(nonNil(l.Notes)); err != nil {
		return d, fmt.Errorf("encode notes: %w", err)
	}
	if d.tags, err = json.Marshal(nonNil(l.Tags)); err != nil {
		return d, fmt.Errorf("encode tags: %w", err)
	}
	return d, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func scanLead(row pgx.CollectableRow) (domain.Lead, error) {
	var (
		l    domain.Lead
		docs leadDocs
	)
	err := row.Scan(
		&l.ID,
		&l.CampaignID,
		&l.CampaignName,
		&l.Status,
		&l.FirstName,
		&l.LastName,
		&l.Email,
		&l.Phone,
		&l.Company,
		&l.Source,
		&l.CreatedAt,
		&l.LastContactedAt,
		&l.AIScore,
		&docs.insights,
		&l.ContactAttempts,
		&l.NextAction,
		&l.AssignedAgent,
		&docs.formData,
		&docs.notes,
		&docs.tags,
	)
	if err != nil {
		return l, err
	}
	for _, f := range []struct {
		name string
		raw  []byte
		dst  any
	}{
		{"insights", docs.insights, &l.AIInsights},
		{"form data", docs.formData, &l.FormData},
		{"notes", docs.notes, &l.Notes},
		{"tags", docs.tags, &l.Tags},
	} {
		if err = json.Unmarshal(f.raw, f.dst); err != nil {
			return l, fmt.Errorf("lead %s: decode %s: %w", l.ID, f.name, err)
		}
	}
	return l, nil
}
