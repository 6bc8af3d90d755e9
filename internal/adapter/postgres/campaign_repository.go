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

// CampaignRepository implements port.CampaignRepository using pgxpool for
// PostgreSQL. Allocation, bidding and targeting are stored as JSONB.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

const campaignColumns = `
            id,
            name,
            business_type,
            description,
            privacy_policy_url,
            status,
            budget_amount,
            budget_period,
            budget_currency,
            allocation,
            bidding,
            targeting,
            spend,
            leads,
            impressions,
            clicks,
            start_date,
            end_date,
            created_by,
            created_at,
            updated_at`

// CreateCampaign inserts c.
func (r *CampaignRepository) CreateCampaign(ctx context.Context, c domain.Campaign) error {
	docs, err := marshalCampaignDocs(c)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `INSERT INTO campaigns (`+campaignColumns+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`,
		c.ID, c.Name, c.BusinessType, c.Description, c.PrivacyPolicyURL, c.Status,
		c.Budget.Amount, c.Budget.Period, c.Budget.Currency,
		docs.allocation, docs.bidding, docs.targeting,
		c.Metrics.Spend, c.Metrics.Leads, c.Metrics.Impressions, c.Metrics.Clicks,
		c.StartDate, c.EndDate, c.CreatedBy, c.CreatedAt, c.UpdatedAt)
	return err
}

// GetCampaign returns a campaign by id.
func (r *CampaignRepository) GetCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	c, err := pgx.CollectExactlyOneRow(rows, scanCampaign)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCampaigns returns all campaigns ordered by creation time.
func (r *CampaignRepository) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanCampaign)
}

// UpdateCampaign overwrites every mutable column of c.
func (r *CampaignRepository) UpdateCampaign(ctx context.Context, c domain.Campaign) error {
	docs, err := marshalCampaignDocs(c)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `UPDATE campaigns SET
    name = $2, business_type = $3, description = $4, privacy_policy_url = $5, status = $6,
    budget_amount = $7, budget_period = $8, budget_currency = $9,
    allocation = $10, bidding = $11, targeting = $12,
    spend = $13, leads = $14, impressions = $15, clicks = $16,
    start_date = $17, end_date = $18, updated_at = $19
WHERE id = $1`,
		c.ID, c.Name, c.BusinessType, c.Description, c.PrivacyPolicyURL, c.Status,
		c.Budget.Amount, c.Budget.Period, c.Budget.Currency,
		docs.allocation, docs.bidding, docs.targeting,
		c.Metrics.Spend, c.Metrics.Leads, c.Metrics.Impressions, c.Metrics.Clicks,
		c.StartDate, c.EndDate, c.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

// DeleteCampaign removes a campaign. Its leads go with it through the
// foreign key's ON DELETE CASCADE.
func (r *CampaignRepository) DeleteCampaign(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrNotFound
	}
	return nil
}

type campaignDocs struct {
	allocation, bidding, targeting []byte
}

func marshalCampaignDocs(c domain.Campaign) (campaignDocs, error) {
	var (
		d   campaignDocs
		err error
	)
	if d.allocation, err = json.Marshal(c.Allocation); err != nil {
		return d, fmt.Errorf("encode allocation: %w", err)
	}
	if d.bidding, err = json.Marshal(c.Bidding); err != nil {
		return d, fmt.Errorf("encode bidding: %w", err)
	}
	if d.targeting, err = json.Marshal(c.Targeting); err != nil {
		return d, fmt.Errorf("encode targeting: %w", err)
	}
	return d, nil
}

func scanCampaign(row pgx.CollectableRow) (domain.Campaign, error) {
	var (
		c    domain.Campaign
		docs campaignDocs
	)
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.BusinessType,
		&c.Description,
		&c.PrivacyPolicyURL,
		&c.Status,
		&c.Budget.Amount,
		&c.Budget.Period,
		&c.Budget.Currency,
		&docs.allocation,
		&docs.bidding,
		&docs.targeting,
		&c.Metrics.Spend,
		&c.Metrics.Leads,
		&c.Metrics.Impressions,
		&c.Metrics.Clicks,
		&c.StartDate,
		&c.EndDate,
		&c.CreatedBy,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return c, err
	}
	if err = json.Unmarshal(docs.allocation, &c.Allocation); err != nil {
		return c, fmt.Errorf("campaign %s: decode allocation: %w", c.ID, err)
	}
	if err = json.Unmarshal(docs.bidding, &c.Bidding); err != nil {
		return c, fmt.Errorf("campaign %s: decode bidding: %w", c.ID, err)
	}
	if err = json.Unmarshal(docs.targeting, &c.Targeting); err != nil {
		return c, fmt.Errorf("campaign %s: decode targeting: %w", c.ID, err)
	}
	return c, nil
}
