package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"leadflare/internal/core/domain"
	"leadflare/internal/core/port"
)

var errEmptyCompletion = errors.New("completion contained no usable lines")

// CreativeUseCase generates ad creatives. Text sections try each text
// provider in order and fall back to static copy; images try the image
// provider per prompt and fall back to stock photos. It implements
// port.CreativeUseCase.
type CreativeUseCase struct {
	text   []port.TextGenerator
	images port.ImageGenerator
	seq    *Sequencer
	logger *slog.Logger
	now    func() time.Time
}

// NewCreativeUseCase creates a CreativeUseCase. text is the provider chain
// in priority order and may be empty; images may be nil.
func NewCreativeUseCase(text []port.TextGenerator, images port.ImageGenerator, logger *slog.Logger) *CreativeUseCase {
	return &CreativeUseCase{
		text:   text,
		images: images,
		seq:    NewSequencer(DefaultSequenceTTL),
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Generate produces the requested creative sections. Sections are
// generated concurrently. When req.DraftID is set, each section takes a
// sequence number and sections superseded by a newer request for the same
// draft are dropped; if every section was superseded ErrStaleRequest is
// returned.
func (u *CreativeUseCase) Generate(ctx context.Context, req port.GenerateReq) (*domain.GeneratedCreatives, error) {
	if req.CampaignContext == nil || req.CampaignContext.Empty() {
		return nil, port.ErrMissingContext
	}
	cc := *req.CampaignContext

	sections := domain.ContentTypes
	if req.Regenerate && req.ContentType != "" {
		if !req.ContentType.Valid() {
			return nil, fmt.Errorf("%w: %s", port.ErrUnknownContentType, req.ContentType)
		}
		sections = []domain.ContentType{req.ContentType}
	}

	seqs := make([]uint64, len(sections))
	if req.DraftID != "" {
		for i, s := range sections {
			seqs[i] = u.seq.Next(sequenceKey(req.DraftID, s))
		}
	}

	results := make([][]domain.Creative, len(sections))
	g, gctx := errgroup.WithContext(ctx)
	for i, s := range sections {
		g.Go(func() error {
			var err error
			if s == domain.ContentImages {
				results[i], err = u.imageSection(gctx, cc)
			} else {
				results[i], err = u.textSection(gctx, s, cc)
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &domain.GeneratedCreatives{
		GeneratedAt:  u.now(),
		CampaignName: cc.Name,
	}
	kept := 0
	for i, s := range sections {
		if req.DraftID != "" {
			if !u.seq.IsLatest(sequenceKey(req.DraftID, s), seqs[i]) {
				u.logger.Debug("dropping superseded section",
					slog.String("draft_id", req.DraftID), slog.String("section", string(s)), slog.Uint64("sequence", seqs[i]))
				continue
			}
			out.Sequence = max(out.Sequence, seqs[i])
		}
		out.Creatives.Set(s, results[i])
		kept++
	}
	if kept == 0 {
		return nil, port.ErrStaleRequest
	}
	return out, nil
}

func sequenceKey(draftID string, s domain.ContentType) string {
	return draftID + "/" + string(s)
}

func (u *CreativeUseCase) textSection(ctx context.Context, s domain.ContentType, cc domain.CampaignContext) ([]domain.Creative, error) {
	sec := textSections[s]
	prompt := sec.request(cc)

	for i, gen := range u.text {
		raw, err := gen.GenerateText(ctx, prompt)
		if err == nil {
			if lines := parseCompletion(raw, sec.count); len(lines) > 0 {
				source := domain.SourceSecondary
				if i == 0 {
					source = domain.SourcePrimary
				}
				return creatives(s, lines, source), nil
			}
			err = errEmptyCompletion
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		u.logger.Warn("text provider failed, trying next tier",
			slog.String("provider", gen.Name()), slog.String("section", string(s)), slog.Any("error", err))
	}
	return creatives(s, fallbackCopy(s, cc), domain.SourceFallback), nil
}

func (u *CreativeUseCase) imageSection(ctx context.Context, cc domain.CampaignContext) ([]domain.Creative, error) {
	prompts := imagePrompts(cc)
	out := make([]domain.Creative, 0, len(prompts))
	for i, p := range prompts {
		item := domain.Creative{
			ID:      uuid.NewString(),
			Type:    domain.ContentImages.Item(),
			Content: imageDescription(cc.BusinessType, i),
		}
		if u.images != nil {
			url, err := u.images.GenerateImage(ctx, p)
			if err == nil && url != "" {
				item.ImageURL = url
				item.Score = score(domain.SourcePrimary)
				item.Source = domain.SourcePrimary
				out = append(out, item)
				continue
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			u.logger.Warn("image provider failed, using stock image",
				slog.String("provider", u.images.Name()), slog.Int("prompt", i), slog.Any("error", err))
		}
		item.ImageURL = stockImage(i)
		item.Score = score(domain.SourceStock)
		item.Source = domain.SourceStock
		out = append(out, item)
	}
	return out, nil
}

func creatives(s domain.ContentType, lines []string, source domain.CreativeSource) []domain.Creative {
	out := make([]domain.Creative, len(lines))
	for i, line := range lines {
		out[i] = domain.Creative{
			ID:      uuid.NewString(),
			Type:    s.Item(),
			Content: line,
			Score:   score(source),
			Source:  source,
		}
	}
	return out
}

// score is the quality badge shown next to a creative. Provider output
// scores 85-99, canned content 80-89.
func score(source domain.CreativeSource) int {
	switch source {
	case domain.SourcePrimary, domain.SourceSecondary:
		return 85 + rand.IntN(15)
	default:
		return 80 + rand.IntN(10)
	}
}
