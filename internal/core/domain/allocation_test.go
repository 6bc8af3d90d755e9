package domain

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestRebalance(t *testing.T) {
	tests := []struct {
		name    string
		current Allocation
		key     Placement
		value   float64
		want    Allocation
	}{
		{
			name: "overflow split proportionally",
			current: Allocation{
				PlacementFacebookFeeds:       50,
				PlacementInstagramStories:    30,
				PlacementFacebookMarketplace: 20,
			},
			key:   PlacementFacebookFeeds,
			value: 80,
			want: Allocation{
				PlacementFacebookFeeds:       80,
				PlacementInstagramStories:    12,
				PlacementFacebookMarketplace: 8,
			},
		},
		{
			name:    "same value is a no-op",
			current: Allocation{PlacementFacebookFeeds: 100, PlacementInstagramStories: 0},
			key:     PlacementFacebookFeeds,
			value:   100,
			want:    Allocation{PlacementFacebookFeeds: 100, PlacementInstagramStories: 0},
		},
		{
			name:    "under-allocation is kept",
			current: DefaultAllocation(),
			key:     PlacementFacebookFeeds,
			value:   10,
			want: Allocation{
				PlacementFacebookFeeds:       10,
				PlacementInstagramFeeds:      30,
				PlacementFacebookMarketplace: 20,
				PlacementInstagramStories:    0,
			},
		},
		{
			name:    "others at zero cannot absorb",
			current: Allocation{PlacementFacebookFeeds: 0, PlacementInstagramFeeds: 0},
			key:     PlacementFacebookFeeds,
			value:   100,
			want:    Allocation{PlacementFacebookFeeds: 100, PlacementInstagramFeeds: 0},
		},
		{
			name:    "value clamped to 100",
			current: Allocation{PlacementFacebookFeeds: 50, PlacementInstagramFeeds: 50},
			key:     PlacementFacebookFeeds,
			value:   150,
			want:    Allocation{PlacementFacebookFeeds: 100, PlacementInstagramFeeds: 0},
		},
		{
			name:    "negative clamped to zero",
			current: Allocation{PlacementFacebookFeeds: 50, PlacementInstagramFeeds: 50},
			key:     PlacementFacebookFeeds,
			value:   -5,
			want:    Allocation{PlacementFacebookFeeds: 0, PlacementInstagramFeeds: 50},
		},
		{
			name:    "NaN treated as zero",
			current: Allocation{PlacementFacebookFeeds: 50, PlacementInstagramFeeds: 50},
			key:     PlacementFacebookFeeds,
			value:   math.NaN(),
			want:    Allocation{PlacementFacebookFeeds: 0, PlacementInstagramFeeds: 50},
		},
		{
			name:    "missing key added",
			current: Allocation{PlacementFacebookFeeds: 70, PlacementInstagramFeeds: 30},
			key:     PlacementInstagramStories,
			value:   20,
			want: Allocation{
				PlacementFacebookFeeds:    56,
				PlacementInstagramFeeds:   24,
				PlacementInstagramStories: 20,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.current.Clone()

			got := Rebalance(tt.current, tt.key, tt.value)

			if diff := cmp.Diff(tt.want, got, approx); diff != "" {
				t.Errorf("Rebalance() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(before, tt.current); diff != "" {
				t.Errorf("Rebalance() modified its input (-before +after):\n%s", diff)
			}
		})
	}
}

// randomAllocation returns a four-placement allocation of whole percents
// summing to at most 100.
func randomAllocation(r *rand.Rand) Allocation {
	out := Allocation{}
	left := 100
	for _, p := range Placements {
		v := r.IntN(left + 1)
		out[p] = float64(v)
		left -= v
	}
	return out
}

func TestRebalanceProperties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 1000; i++ {
		current := randomAllocation(r)
		key := Placements[r.IntN(len(Placements))]
		value := math.Round(r.Float64()*1000) / 10

		got := Rebalance(current, key, value)

		others := current.Total() - current[key]
		if value+others <= 100 {
			for k, v := range current {
				if k != key && got[k] != v {
					t.Fatalf("case %d: %s changed from %v to %v without overflow", i, k, v, got[k])
				}
			}
		} else if others > 0 {
			if math.Abs(got.Total()-100) > 1e-6 {
				t.Fatalf("case %d: total %v, want 100 (current %v, %s=%v)", i, got.Total(), current, key, value)
			}
		}
		for k, v := range got {
			if v < 0 {
				t.Fatalf("case %d: %s is negative: %v", i, k, v)
			}
		}
		if got[key] != value {
			t.Fatalf("case %d: %s = %v, want %v", i, key, got[key], value)
		}

		if diff := cmp.Diff(current, Rebalance(current, key, current[key])); diff != "" {
			t.Fatalf("case %d: rebalance with own value changed allocation:\n%s", i, diff)
		}
	}
}

func TestIsComplete(t *testing.T) {
	assert.True(t, Allocation{PlacementFacebookFeeds: 50, PlacementInstagramFeeds: 30, PlacementFacebookMarketplace: 20}.IsComplete())
	assert.False(t, Allocation{PlacementFacebookFeeds: 50, PlacementInstagramFeeds: 30, PlacementFacebookMarketplace: 19}.IsComplete())
	assert.True(t, Allocation{PlacementFacebookFeeds: 99.95}.IsComplete())
	assert.False(t, Allocation{PlacementFacebookFeeds: 100.1}.IsComplete())
	assert.False(t, Allocation{}.IsComplete())
}

func TestAllocationRemaining(t *testing.T) {
	assert.Equal(t, 40.0, Allocation{PlacementFacebookFeeds: 60}.Remaining())
	assert.Equal(t, 0.0, Allocation{PlacementFacebookFeeds: 60, PlacementInstagramFeeds: 50}.Remaining())
}

func TestPlacementBudgets(t *testing.T) {
	got := DefaultAllocation().PlacementBudgets(75)

	want := map[Placement]float64{
		PlacementFacebookFeeds:       37.5,
		PlacementInstagramFeeds:      22.5,
		PlacementFacebookMarketplace: 15,
		PlacementInstagramStories:    0,
	}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("PlacementBudgets() mismatch (-want +got):\n%s", diff)
	}
}

func TestAllocationAdvisories(t *testing.T) {
	assert.Empty(t, DefaultAllocation().Advisories())

	over := Allocation{PlacementFacebookFeeds: 80, PlacementInstagramFeeds: 40}.Advisories()
	if assert.Len(t, over, 1) {
		assert.Equal(t, AdvisoryAllocationExceeds, over[0].Code)
		assert.Contains(t, over[0].Message, "20%")
	}

	under := Allocation{PlacementFacebookFeeds: 75}.Advisories()
	if assert.Len(t, under, 1) {
		assert.Equal(t, AdvisoryAllocationIncomplete, under[0].Code)
		assert.Equal(t, "25% of the budget is unallocated", under[0].Message)
	}
}

func TestPlacementValid(t *testing.T) {
	for _, p := range Placements {
		assert.True(t, p.Valid(), p)
	}
	assert.False(t, Placement("tiktok").Valid())
}

func TestAllocationValidate(t *testing.T) {
	assert.NoError(t, DefaultAllocation().Validate())
	assert.NoError(t, Allocation{PlacementFacebookFeeds: 100}.Validate())
	assert.NoError(t, Allocation(nil).Validate())

	err := Allocation{
		PlacementFacebookFeeds:       150,
		PlacementInstagramFeeds:      -50,
		PlacementFacebookMarketplace: 20,
		"bogus":                      10,
	}.Validate()

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"allocation.bogus", "allocation.facebook_feeds", "allocation.instagram_feeds"}, verr.Fields)
}
