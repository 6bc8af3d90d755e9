package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"leadflare/internal/core/domain"
	"leadflare/internal/core/port"
	"leadflare/internal/core/port/mocks"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func campaignContext() *domain.CampaignContext {
	return &domain.CampaignContext{
		Name:         "Spring Promo",
		BusinessType: "Technology",
		Description:  "Project management for small teams",
		Interests:    []string{"SaaS", "Productivity"},
		AgeRange:     "25-45",
		Locations:    []string{"Austin"},
		Budget:       50,
	}
}

func newCreativeUseCase(text []port.TextGenerator, images port.ImageGenerator) *CreativeUseCase {
	u := NewCreativeUseCase(text, images, discardLogger())
	u.now = func() time.Time { return fixedNow }
	return u
}

func textGenerator(t *testing.T, name string) *mocks.MockTextGenerator {
	g := mocks.NewMockTextGenerator(t)
	g.EXPECT().Name().Return(name).Maybe()
	return g
}

func TestGenerateUsesPrimaryProvider(t *testing.T) {
	primary := textGenerator(t, "primary")
	primary.EXPECT().
		GenerateText(mock.Anything, mock.AnythingOfType("port.TextPrompt")).
		Return("Here are your lines:\n1. Ship projects faster today\n2. Your team, finally in sync\n3. Plan less and build more\n4. Deadlines without the drama\n5. One too many", nil)

	images := mocks.NewMockImageGenerator(t)
	images.EXPECT().Name().Return("images").Maybe()
	images.EXPECT().GenerateImage(mock.Anything, mock.AnythingOfType("string")).Return("https://cdn.example.com/img.png", nil)

	u := newCreativeUseCase([]port.TextGenerator{primary}, images)

	got, err := u.Generate(context.Background(), port.GenerateReq{CampaignContext: campaignContext()})
	require.NoError(t, err)

	assert.Equal(t, "Spring Promo", got.CampaignName)
	assert.Equal(t, fixedNow, got.GeneratedAt)
	require.Len(t, got.Creatives.Headlines, 4)
	assert.Equal(t, "Ship projects faster today", got.Creatives.Headlines[0].Content)
	assert.Equal(t, "headline", got.Creatives.Headlines[0].Type)
	assert.Len(t, got.Creatives.Descriptions, 3)
	assert.Len(t, got.Creatives.CTAs, 4)
	require.Len(t, got.Creatives.Images, 4)
	for _, c := range got.Creatives.Headlines {
		assert.Equal(t, domain.SourcePrimary, c.Source)
		assert.GreaterOrEqual(t, c.Score, 85)
		assert.LessOrEqual(t, c.Score, 99)
	}
	assert.Equal(t, "https://cdn.example.com/img.png", got.Creatives.Images[0].ImageURL)
	assert.Equal(t, "Team collaboration", got.Creatives.Images[0].Content)
}

// TestGenerateDegradePath checks that a failing primary falls through to
// the secondary and that missing providers end in canned content.
func TestGenerateDegradePath(t *testing.T) {
	primary := textGenerator(t, "primary")
	primary.EXPECT().GenerateText(mock.Anything, mock.Anything).Return("", errors.New("quota exceeded"))

	secondary := textGenerator(t, "secondary")
	secondary.EXPECT().GenerateText(mock.Anything, mock.Anything).Return("Start Free Trial\nBook A Demo Today", nil)

	u := newCreativeUseCase([]port.TextGenerator{primary, secondary}, nil)

	got, err := u.Generate(context.Background(), port.GenerateReq{
		CampaignContext: campaignContext(),
		ContentType:     domain.ContentCTAs,
		Regenerate:      true,
	})
	require.NoError(t, err)

	assert.Nil(t, got.Creatives.Headlines)
	require.Len(t, got.Creatives.CTAs, 2)
	assert.Equal(t, domain.SourceSecondary, got.Creatives.CTAs[0].Source)
}

func TestGenerateFallbackWithoutProviders(t *testing.T) {
	u := newCreativeUseCase(nil, nil)

	got, err := u.Generate(context.Background(), port.GenerateReq{CampaignContext: campaignContext()})
	require.NoError(t, err)

	require.Len(t, got.Creatives.Headlines, 4)
	assert.Equal(t, "Transform Your Technology Business Today", got.Creatives.Headlines[0].Content)
	for _, c := range got.Creatives.Headlines {
		assert.Equal(t, domain.SourceFallback, c.Source)
		assert.GreaterOrEqual(t, c.Score, 80)
		assert.LessOrEqual(t, c.Score, 89)
	}
	require.Len(t, got.Creatives.Images, 4)
	assert.Equal(t, domain.SourceStock, got.Creatives.Images[0].Source)
	assert.True(t, strings.HasPrefix(got.Creatives.Images[0].ImageURL, "https://images.unsplash.com/"))
}

func TestGenerateEmptyCompletionFallsBack(t *testing.T) {
	primary := textGenerator(t, "primary")
	primary.EXPECT().GenerateText(mock.Anything, mock.Anything).Return("Here you go:\n\nok", nil)

	u := newCreativeUseCase([]port.TextGenerator{primary}, nil)

	got, err := u.Generate(context.Background(), port.GenerateReq{
		CampaignContext: campaignContext(),
		ContentType:     domain.ContentHeadlines,
		Regenerate:      true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SourceFallback, got.Creatives.Headlines[0].Source)
}

func TestGenerateRejectsBadRequests(t *testing.T) {
	u := newCreativeUseCase(nil, nil)

	_, err := u.Generate(context.Background(), port.GenerateReq{})
	require.ErrorIs(t, err, port.ErrMissingContext)

	_, err = u.Generate(context.Background(), port.GenerateReq{CampaignContext: &domain.CampaignContext{}})
	require.ErrorIs(t, err, port.ErrMissingContext)

	_, err = u.Generate(context.Background(), port.GenerateReq{
		CampaignContext: campaignContext(),
		ContentType:     "videos",
		Regenerate:      true,
	})
	require.ErrorIs(t, err, port.ErrUnknownContentType)
}

// TestGenerateDropsSupersededSection starts a slow regeneration, issues a
// newer one for the same draft while it is in flight and checks that only
// the newer result survives.
func TestGenerateDropsSupersededSection(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	slow := textGenerator(t, "slow")
	slow.EXPECT().
		GenerateText(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ port.TextPrompt) (string, error) {
			close(started)
			<-release
			return "An older headline that lost", nil
		}).
		Once()
	slow.EXPECT().
		GenerateText(mock.Anything, mock.Anything).
		Return("A newer headline that won", nil).
		Once()

	u := newCreativeUseCase([]port.TextGenerator{slow}, nil)
	req := port.GenerateReq{
		CampaignContext: campaignContext(),
		ContentType:     domain.ContentHeadlines,
		Regenerate:      true,
		DraftID:         "draft-1",
	}

	type result struct {
		out *domain.GeneratedCreatives
		err error
	}
	first := make(chan result, 1)
	go func() {
		out, err := u.Generate(context.Background(), req)
		first <- result{out, err}
	}()

	<-started
	second, err := u.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), second.Sequence)
	assert.Equal(t, "A newer headline that won", second.Creatives.Headlines[0].Content)

	close(release)
	r := <-first
	require.ErrorIs(t, r.err, port.ErrStaleRequest)
	assert.Nil(t, r.out)
}

func TestGenerateStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	primary := textGenerator(t, "primary")
	primary.EXPECT().GenerateText(mock.Anything, mock.Anything).Return("", context.Canceled).Maybe()

	u := newCreativeUseCase([]port.TextGenerator{primary}, nil)

	_, err := u.Generate(ctx, port.GenerateReq{
		CampaignContext: campaignContext(),
		ContentType:     domain.ContentHeadlines,
		Regenerate:      true,
	})
	require.ErrorIs(t, err, context.Canceled)
}
