package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadflare/internal/adapter/memory"
	"leadflare/internal/adapter/usecase"
	"leadflare/internal/core/domain"
	"leadflare/internal/core/port"
)

type failingCreatives struct{ err error }

func (f failingCreatives) Generate(context.Context, port.GenerateReq) (*domain.GeneratedCreatives, error) {
	return nil, f.err
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	return NewHandler(UseCases{
		Budget:    usecase.NewBudgetUseCase(),
		Campaigns: usecase.NewCampaignUseCase(store, logger),
		Leads:     usecase.NewLeadUseCase(store, store, logger),
		Creatives: usecase.NewCreativeUseCase(nil, nil, logger),
	}, logger)
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestRebalanceEndpoint(t *testing.T) {
	h := newTestHandler(t).Router()

	rec := do(t, h, http.MethodPost, "/api/v1/budget/rebalance", map[string]any{
		"allocation": map[string]float64{
			"facebook_feeds":       50,
			"instagram_feeds":      30,
			"facebook_marketplace": 20,
			"instagram_stories":    0,
		},
		"placement": "facebook_feeds",
		"value":     80,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody[rebalanceResponse](t, rec)
	assert.InDelta(t, 80, got.Allocation[domain.PlacementFacebookFeeds], 1e-9)
	assert.InDelta(t, 12, got.Allocation[domain.PlacementInstagramFeeds], 1e-9)
	assert.InDelta(t, 8, got.Allocation[domain.PlacementFacebookMarketplace], 1e-9)
	assert.True(t, got.Complete)
	assert.Empty(t, got.Advisories)
}

func TestRebalanceUnknownPlacement(t *testing.T) {
	h := newTestHandler(t).Router()

	rec := do(t, h, http.MethodPost, "/api/v1/budget/rebalance", map[string]any{
		"placement": "tiktok",
		"value":     10,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"placement"}, decodeBody[errorResponse](t, rec).Fields)

	rec = do(t, h, http.MethodPost, "/api/v1/budget/rebalance", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlanEndpoint(t *testing.T) {
	h := newTestHandler(t).Router()

	rec := do(t, h, http.MethodPost, "/api/v1/budget/plan", port.PlanReq{
		Budget: domain.Budget{Amount: 50, Period: domain.BudgetDaily},
		Goal:   domain.GoalLeadGeneration,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody[planResponse](t, rec)
	assert.True(t, got.CanLaunch)
	assert.Equal(t, "USD", got.Budget.Currency)
	assert.Equal(t, int64(5), got.Projection.DailyResults)
	assert.Equal(t, "$8.00 - $12.00", got.Display.CostPerResult)
	assert.Equal(t, "4 - 7", got.Display.DailyResults)
	assert.Equal(t, "17,500 - 28,000", got.Display.Reach)
	assert.InDelta(t, 25, got.PlacementBudgets[domain.PlacementFacebookFeeds], 1e-9)
}

func TestBudgetEndpointsRejectBadAllocation(t *testing.T) {
	h := newTestHandler(t).Router()

	rec := do(t, h, http.MethodPost, "/api/v1/budget/rebalance", map[string]any{
		"allocation": map[string]float64{
			"instagram_stories":    -10,
			"facebook_marketplace": 70,
			"bogus":                500,
		},
		"placement": "facebook_feeds",
		"value":     50,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"allocation.bogus", "allocation.instagram_stories"}, decodeBody[errorResponse](t, rec).Fields)

	rec = do(t, h, http.MethodPost, "/api/v1/budget/plan", port.PlanReq{
		Budget: domain.Budget{Amount: 100, Period: domain.BudgetDaily},
		Goal:   domain.GoalLeadGeneration,
		Allocation: domain.Allocation{
			domain.PlacementFacebookFeeds:  150,
			domain.PlacementInstagramFeeds: -50,
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"allocation.facebook_feeds", "allocation.instagram_feeds"}, decodeBody[errorResponse](t, rec).Fields)
}

func TestPlanEndpointWithoutBudget(t *testing.T) {
	h := newTestHandler(t).Router()

	rec := do(t, h, http.MethodPost, "/api/v1/budget/plan", port.PlanReq{})
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody[planResponse](t, rec)
	assert.False(t, got.CanLaunch)
	assert.False(t, got.Projection.Available)
	assert.Equal(t, notAvailable, got.Display.Reach)
	assert.Equal(t, notAvailable, got.Display.MonthlySpend)
}

func TestMinimumAndRecommended(t *testing.T) {
	h := newTestHandler(t).Router()

	rec := do(t, h, http.MethodGet, "/api/v1/budget/minimum?goal=REACH", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	minimum := decodeBody[map[string]any](t, rec)
	assert.Equal(t, 1.0, minimum["minimum"])
	assert.Equal(t, true, minimum["known"])

	rec = do(t, h, http.MethodGet, "/api/v1/budget/minimum", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/budget/recommended?business_type=Technology", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rcm := decodeBody[domain.Recommendation](t, rec)
	assert.Equal(t, 75.0, rcm.DailyBudget)
	assert.True(t, rcm.Allocation.IsComplete())
}

func TestAudienceEstimateEndpoint(t *testing.T) {
	h := newTestHandler(t).Router()

	rec := do(t, h, http.MethodPost, "/api/v1/audience/estimate", domain.Targeting{
		AgeMin:    18,
		AgeMax:    65,
		Locations: []string{"United States"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[domain.AudienceEstimate](t, rec)
	assert.Positive(t, got.Size)
	assert.LessOrEqual(t, got.WeeklyReach.Min, got.WeeklyReach.Max)
}

func createCampaign(t *testing.T, h http.Handler) domain.Campaign {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/api/v1/campaigns", domain.CampaignDraft{
		Name:             "Spring Promo",
		BusinessType:     "Technology",
		Description:      "Project management for small teams",
		PrivacyPolicyURL: "https://example.com/privacy",
		Targeting: domain.Targeting{
			AgeMin:    25,
			AgeMax:    45,
			Locations: []string{"Austin"},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeBody[domain.Campaign](t, rec)
}

func TestCampaignLifecycle(t *testing.T) {
	h := newTestHandler(t).Router()

	c := createCampaign(t, h)
	assert.Equal(t, domain.CampaignPaused, c.Status)

	// no budget yet
	rec := do(t, h, http.MethodPost, "/api/v1/campaigns/"+c.ID+"/launch", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	launchErr := decodeBody[errorResponse](t, rec)
	require.NotEmpty(t, launchErr.Advisories)
	assert.Equal(t, domain.AdvisoryBudgetMissing, launchErr.Advisories[0].Code)

	rec = do(t, h, http.MethodPut, "/api/v1/campaigns/"+c.ID+"/budget", port.BudgetUpdateReq{
		Budget: &domain.Budget{Amount: 75, Period: domain.BudgetDaily},
		Launch: true,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.CampaignActive, decodeBody[domain.Campaign](t, rec).Status)

	rec = do(t, h, http.MethodPost, "/api/v1/campaigns/"+c.ID+"/toggle", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.CampaignPaused, decodeBody[domain.Campaign](t, rec).Status)

	rec = do(t, h, http.MethodPost, "/api/v1/campaigns/"+c.ID+"/delivery", domain.DeliveryReport{
		Spend: 20, Leads: 4, Impressions: 1000, Clicks: 50,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(4), decodeBody[domain.Campaign](t, rec).Metrics.Leads)

	rec = do(t, h, http.MethodPost, "/api/v1/campaigns/"+c.ID+"/duplicate", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	cp := decodeBody[domain.Campaign](t, rec)
	assert.Equal(t, "Spring Promo (Copy)", cp.Name)
	assert.Zero(t, cp.Metrics.Leads)

	rec = do(t, h, http.MethodGet, "/api/v1/campaigns?search=spring&sort=name", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]domain.Campaign](t, rec), 2)

	rec = do(t, h, http.MethodDelete, "/api/v1/campaigns/"+c.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/campaigns/"+c.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCampaignErrors(t *testing.T) {
	h := newTestHandler(t).Router()

	rec := do(t, h, http.MethodPost, "/api/v1/campaigns", domain.CampaignDraft{Name: "x"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody[errorResponse](t, rec).Fields, "business_type")

	rec = do(t, h, http.MethodPost, "/api/v1/campaigns/missing/toggle", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c := createCampaign(t, h)
	rec = do(t, h, http.MethodPut, "/api/v1/campaigns/"+c.ID+"/budget", port.BudgetUpdateReq{
		Budget: &domain.Budget{Amount: -1},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"budget.amount"}, decodeBody[errorResponse](t, rec).Fields)
}

func TestLeadEndpoints(t *testing.T) {
	h := newTestHandler(t).Router()
	c := createCampaign(t, h)

	rec := do(t, h, http.MethodPost, "/api/v1/leads", domain.Lead{CampaignID: "nope", Email: "a@example.com"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"campaign_id"}, decodeBody[errorResponse](t, rec).Fields)

	rec = do(t, h, http.MethodPost, "/api/v1/leads", domain.Lead{
		CampaignID: c.ID,
		FirstName:  "Sarah",
		LastName:   "Johnson",
		Email:      "Sarah.Johnson@Example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	lead := decodeBody[domain.Lead](t, rec)
	assert.Equal(t, "sarah.johnson@example.com", lead.Email)
	assert.Equal(t, domain.LeadNew, lead.Status)
	assert.Equal(t, "Spring Promo", lead.CampaignName)

	rec = do(t, h, http.MethodPatch, "/api/v1/leads/"+lead.ID+"/status", map[string]string{"status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPatch, "/api/v1/leads/"+lead.ID+"/status", map[string]string{"status": "qualified"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.LeadQualified, decodeBody[domain.Lead](t, rec).Status)

	rec = do(t, h, http.MethodPost, "/api/v1/leads/"+lead.ID+"/notes", domain.ContactNote{
		Type:    domain.NoteCall,
		Content: "Discussed pricing",
		Agent:   "Mike Chen",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	withNote := decodeBody[domain.Lead](t, rec)
	require.Len(t, withNote.Notes, 1)
	assert.Equal(t, 1, withNote.ContactAttempts)

	rec = do(t, h, http.MethodPost, "/api/v1/leads/status", map[string]any{
		"ids":    []string{lead.ID, "missing"},
		"status": "converted",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/v1/leads/status", map[string]any{
		"ids":    []string{lead.ID},
		"status": "converted",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodeBody[map[string]int](t, rec)["updated"])

	rec = do(t, h, http.MethodGet, "/api/v1/leads?status=converted", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]domain.Lead](t, rec), 1)

	rec = do(t, h, http.MethodGet, "/api/v1/leads/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decodeBody[domain.LeadStats](t, rec)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.ByStatus[domain.LeadConverted])

	rec = do(t, h, http.MethodGet, "/api/v1/leads/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatsOverview(t *testing.T) {
	h := newTestHandler(t).Router()
	c := createCampaign(t, h)
	do(t, h, http.MethodPost, "/api/v1/campaigns/"+c.ID+"/delivery", domain.DeliveryReport{
		Spend: 40, Leads: 4, Impressions: 2000, Clicks: 50,
	})

	rec := do(t, h, http.MethodGet, "/api/v1/stats/overview", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Campaigns domain.Overview   `json:"campaigns"`
		Leads     domain.LeadStats  `json:"leads"`
		Display   map[string]string `json:"display"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 1, got.Campaigns.Campaigns)
	assert.Equal(t, 10.0, got.Campaigns.CostPerLead)
	assert.Equal(t, "$10.00", got.Display["cost_per_lead"])
	assert.Equal(t, "2.50%", got.Display["ctr"])
}

func TestGenerateCreatives(t *testing.T) {
	h := newTestHandler(t).Router()

	rec := do(t, h, http.MethodPost, "/api/ai/generate-creatives", map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing campaign context", decodeBody[errorResponse](t, rec).Error)

	rec = do(t, h, http.MethodPost, "/api/ai/generate-creatives", port.GenerateReq{
		CampaignContext: &domain.CampaignContext{
			Name:         "Spring Promo",
			BusinessType: "Technology",
			Description:  "Project management for small teams",
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody[generateResponse](t, rec)
	assert.True(t, got.Success)
	assert.Equal(t, "Spring Promo", got.CampaignName)
	require.NotEmpty(t, got.Creatives.Headlines)
	assert.Equal(t, domain.SourceFallback, got.Creatives.Headlines[0].Source)
	require.NotEmpty(t, got.Creatives.Images)
	assert.Equal(t, domain.SourceStock, got.Creatives.Images[0].Source)

	rec = do(t, h, http.MethodPost, "/api/ai/generate-creatives", port.GenerateReq{
		CampaignContext: &domain.CampaignContext{Name: "Spring Promo"},
		ContentType:     "banners",
		Regenerate:      true,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateCreativesErrors(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	body := port.GenerateReq{CampaignContext: &domain.CampaignContext{Name: "Spring Promo"}}

	h := NewHandler(UseCases{Creatives: failingCreatives{err: port.ErrStaleRequest}}, logger).Router()
	rec := do(t, h, http.MethodPost, "/api/ai/generate-creatives", body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	h = NewHandler(UseCases{Creatives: failingCreatives{err: errors.New("boom")}}, logger).Router()
	rec = do(t, h, http.MethodPost, "/api/ai/generate-creatives", body)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	got := decodeBody[errorResponse](t, rec)
	assert.Equal(t, "Failed to generate creatives", got.Error)
	assert.Equal(t, "boom", got.Details)
}
