package domain

import (
	"strings"
	"time"
)

// ContentType is a section of the creative generator.
type ContentType string

const (
	ContentHeadlines    ContentType = "headlines"
	ContentDescriptions ContentType = "descriptions"
	ContentCTAs         ContentType = "ctas"
	ContentImages       ContentType = "images"
)

// ContentTypes lists every creative section.
var ContentTypes = []ContentType{ContentHeadlines, ContentDescriptions, ContentCTAs, ContentImages}

// Valid reports whether c is a known section.
func (c ContentType) Valid() bool {
	switch c {
	case ContentHeadlines, ContentDescriptions, ContentCTAs, ContentImages:
		return true
	}
	return false
}

// Item returns the singular creative type produced by the section.
func (c ContentType) Item() string {
	switch c {
	case ContentHeadlines:
		return "headline"
	case ContentDescriptions:
		return "description"
	case ContentCTAs:
		return "cta"
	case ContentImages:
		return "image"
	}
	return string(c)
}

// CreativeSource records which tier produced a creative.
type CreativeSource string

const (
	SourcePrimary   CreativeSource = "primary"
	SourceSecondary CreativeSource = "secondary"
	SourceFallback  CreativeSource = "fallback"
	SourceStock     CreativeSource = "stock"
)

// CampaignContext is what the creative generator knows about a campaign.
type CampaignContext struct {
	Name         string   `json:"name"`
	BusinessType string   `json:"businessType"`
	Description  string   `json:"description"`
	Interests    []string `json:"interests"`
	AgeRange     string   `json:"ageRange"`
	Locations    []string `json:"locations"`
	Budget       float64  `json:"budget"`
}

// Empty reports whether the context carries nothing to generate from.
func (c CampaignContext) Empty() bool {
	return strings.TrimSpace(c.Name) == "" && strings.TrimSpace(c.BusinessType) == "" && strings.TrimSpace(c.Description) == ""
}

// Creative is a single generated ad element.
type Creative struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Content    string         `json:"content"`
	ImageURL   string         `json:"imageUrl,omitempty"`
	Score      int            `json:"score"`
	IsSelected bool           `json:"isSelected"`
	Source     CreativeSource `json:"source"`
}

// CreativeBatch holds generated creatives per section. Sections that were
// not generated are nil.
type CreativeBatch struct {
	Headlines    []Creative `json:"headlines,omitempty"`
	Descriptions []Creative `json:"descriptions,omitempty"`
	CTAs         []Creative `json:"ctas,omitempty"`
	Images       []Creative `json:"images,omitempty"`
}

// Set stores creatives under section c.
func (b *CreativeBatch) Set(c ContentType, items []Creative) {
	switch c {
	case ContentHeadlines:
		b.Headlines = items
	case ContentDescriptions:
		b.Descriptions = items
	case ContentCTAs:
		b.CTAs = items
	case ContentImages:
		b.Images = items
	}
}

// GeneratedCreatives is the result of one generation request.
type GeneratedCreatives struct {
	Creatives    CreativeBatch `json:"creatives"`
	GeneratedAt  time.Time     `json:"generated_at"`
	CampaignName string        `json:"campaignName"`
	Sequence     uint64        `json:"sequence,omitempty"`
}
