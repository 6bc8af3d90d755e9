package db

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"leadflare/internal/core/domain"
	"leadflare/internal/core/port"
)

type seedCampaign struct {
	name         string
	businessType string
	status       domain.CampaignStatus
	budget       float64
	metrics      domain.Metrics
}

var demoCampaigns = []seedCampaign{
	{"SaaS Lead Generation Campaign", "Technology", domain.CampaignActive, 75, domain.Metrics{Spend: 523.45, Leads: 42, Impressions: 28450, Clicks: 796}},
	{"Real Estate Lead Generation", "Real Estate", domain.CampaignActive, 50, domain.Metrics{Spend: 287.90, Leads: 18, Impressions: 18200, Clicks: 346}},
	{"Healthcare Services Campaign", "Healthcare", domain.CampaignPaused, 60, domain.Metrics{Spend: 156.30, Leads: 11, Impressions: 9800, Clicks: 214}},
	{"Financial Advisory Outreach", "Finance", domain.CampaignCompleted, 80, domain.Metrics{Spend: 1120.00, Leads: 64, Impressions: 61300, Clicks: 1502}},
	{"Online Course Enrollment", "Education", domain.CampaignPaused, 45, domain.Metrics{}},
}

var (
	demoFirstNames = []string{"Sarah", "David", "Emma", "Michael", "Olivia", "James", "Sofia", "Daniel"}
	demoLastNames  = []string{"Johnson", "Rodriguez", "Williams", "Thompson", "Nguyen", "Patel", "Garcia", "Kim"}
	demoAgents     = []string{"Mike Chen", "Lisa Park", ""}
	demoSources    = []string{"Facebook Feed", "Instagram Feed", "Facebook Marketplace", "Instagram Stories"}
)

// Seed inserts demo campaigns and leads through the repositories. It does
// nothing when campaigns already exist.
func Seed(ctx context.Context, campaigns port.CampaignRepository, leads port.LeadRepository) error {
	existing, err := campaigns.ListCampaigns(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	r := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	now := time.Now().UTC()

	// create campaigns
	for i, sc := range demoCampaigns {
		created := now.AddDate(0, 0, -7-i)
		c := domain.Campaign{
			ID:               uuid.NewString(),
			Name:             sc.name,
			BusinessType:     sc.businessType,
			Description:      fmt.Sprintf("Demo %s campaign", sc.businessType),
			PrivacyPolicyURL: "https://example.com/privacy",
			Status:           sc.status,
			Budget:           domain.Budget{Amount: sc.budget, Period: domain.BudgetDaily, Currency: domain.DefaultCurrency},
			Allocation:       domain.Recommend(sc.businessType).Allocation,
			Bidding:          domain.DefaultBidSettings(),
			Targeting: domain.Targeting{
				AgeMin:     25,
				AgeMax:     54,
				Gender:     domain.GenderAll,
				Locations:  []string{"United States"},
				Interests:  []string{"Small business", "Entrepreneurship"},
				Placements: []domain.Placement{domain.PlacementFacebookFeeds, domain.PlacementInstagramFeeds},
			},
			Metrics:   sc.metrics,
			StartDate: created.Truncate(24 * time.Hour),
			CreatedBy: "Current User",
			CreatedAt: created,
			UpdatedAt: created,
		}
		if err = campaigns.CreateCampaign(ctx, c); err != nil {
			return fmt.Errorf("seed campaign %q: %w", c.Name, err)
		}

		// a few leads per campaign with some follow-up history
		for j := 0; j < 3; j++ {
			first := demoFirstNames[r.IntN(len(demoFirstNames))]
			last := demoLastNames[r.IntN(len(demoLastNames))]
			l := domain.Lead{
				ID:            uuid.NewString(),
				CampaignID:    c.ID,
				CampaignName:  c.Name,
				Status:        domain.LeadStatuses[r.IntN(len(domain.LeadStatuses))],
				FirstName:     first,
				LastName:      last,
				Email:         fmt.Sprintf("%s.%s%d@example.com", first, last, r.IntN(100)),
				Source:        demoSources[r.IntN(len(demoSources))],
				CreatedAt:     created.Add(time.Duration(j+1) * 6 * time.Hour),
				AIScore:       50 + r.IntN(50),
				AIInsights:    []string{"High intent signals"},
				AssignedAgent: demoAgents[r.IntN(len(demoAgents))],
				FormData:      map[string]string{"timeline": "Within 3 months"},
				Notes:         []domain.ContactNote{},
				Tags:          []string{},
			}
			if l.Status != domain.LeadNew {
				l.AddNote(domain.ContactNote{
					ID:      uuid.NewString(),
					Date:    l.CreatedAt.Add(24 * time.Hour),
					Type:    domain.NoteCall,
					Content: "Intro call",
					Agent:   l.AssignedAgent,
				})
			}
			if err = leads.CreateLead(ctx, l); err != nil {
				return fmt.Errorf("seed lead for %q: %w", c.Name, err)
			}
		}
	}
	return nil
}
