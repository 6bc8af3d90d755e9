// Package memory provides an in-process implementation of the repository
// ports. It is the default store and backs the tests of the HTTP layer.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"leadflare/internal/core/domain"
	"leadflare/internal/core/port"
)

// Store keeps campaigns and leads in maps keyed by ID. Values are copied
// on the way in and out so callers never share state with the store.
type Store struct {
	mu        sync.RWMutex
	campaigns map[string]domain.Campaign
	leads     map[string]domain.Lead
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		campaigns: make(map[string]domain.Campaign),
		leads:     make(map[string]domain.Lead),
	}
}

// CreateCampaign stores c. The ID must be unused.
func (s *Store) CreateCampaign(_ context.Context, c domain.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.campaigns[c.ID]; ok {
		return fmt.Errorf("campaign %s already exists", c.ID)
	}
	s.campaigns[c.ID] = copyCampaign(c)
	return nil
}

// GetCampaign returns the campaign with id or port.ErrNotFound.
func (s *Store) GetCampaign(_ context.Context, id string) (*domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.campaigns[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	out := copyCampaign(c)
	return &out, nil
}

// ListCampaigns returns all campaigns ordered by creation time.
func (s *Store) ListCampaigns(_ context.Context) ([]domain.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Campaign, 0, len(s.campaigns))
	for _, c := range s.campaigns {
		out = append(out, copyCampaign(c))
	}
	slices.SortFunc(out, func(a, b domain.Campaign) int {
		if n := a.CreatedAt.Compare(b.CreatedAt); n != 0 {
			return n
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

// UpdateCampaign replaces a stored campaign.
func (s *Store) UpdateCampaign(_ context.Context, c domain.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.campaigns[c.ID]; !ok {
		return port.ErrNotFound
	}
	s.campaigns[c.ID] = copyCampaign(c)
	return nil
}

// DeleteCampaign removes a campaign and its leads.
func (s *Store) DeleteCampaign(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.campaigns[id]; !ok {
		return port.ErrNotFound
	}
	delete(s.campaigns, id)
	for lid, l := range s.leads {
		if l.CampaignID == id {
			delete(s.leads, lid)
		}
	}
	return nil
}

// CreateLead stores l. The ID must be unused.
func (s *Store) CreateLead(_ context.Context, l domain.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.leads[l.ID]; ok {
		return fmt.Errorf("lead %s already exists", l.ID)
	}
	s.leads[l.ID] = copyLead(l)
	return nil
}

// GetLead returns the lead with id or port.ErrNotFound.
func (s *Store) GetLead(_ context.Context, id string) (*domain.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.leads[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	out := copyLead(l)
	return &out, nil
}

// ListLeads returns all leads ordered by creation time.
func (s *Store) ListLeads(_ context.Context) ([]domain.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Lead, 0, len(s.leads))
	for _, l := range s.leads {
		out = append(out, copyLead(l))
	}
	slices.SortFunc(out, func(a, b domain.Lead) int {
		if n := a.CreatedAt.Compare(b.CreatedAt); n != 0 {
			return n
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

// UpdateLead replaces a stored lead.
func (s *Store) UpdateLead(_ context.Context, l domain.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.leads[l.ID]; !ok {
		return port.ErrNotFound
	}
	s.leads[l.ID] = copyLead(l)
	return nil
}

func copyCampaign(c domain.Campaign) domain.Campaign {
	out := c
	out.Allocation = c.Allocation.Clone()
	out.Targeting.Locations = slices.Clone(c.Targeting.Locations)
	out.Targeting.Interests = slices.Clone(c.Targeting.Interests)
	out.Targeting.Behaviors = slices.Clone(c.Targeting.Behaviors)
	out.Targeting.Placements = slices.Clone(c.Targeting.Placements)
	out.Bidding.BidCap = clonePtr(c.Bidding.BidCap)
	out.Bidding.TargetCost = clonePtr(c.Bidding.TargetCost)
	out.Bidding.SpendCap = clonePtr(c.Bidding.SpendCap)
	out.EndDate = clonePtr(c.EndDate)
	return out
}

func copyLead(l domain.Lead) domain.Lead {
	out := l
	out.AIInsights = slices.Clone(l.AIInsights)
	out.Tags = slices.Clone(l.Tags)
	out.Notes = slices.Clone(l.Notes)
	out.LastContactedAt = clonePtr(l.LastContactedAt)
	if l.FormData != nil {
		out.FormData = make(map[string]string, len(l.FormData))
		for k, v := range l.FormData {
			out.FormData[k] = v
		}
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
