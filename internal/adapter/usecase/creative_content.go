package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"leadflare/internal/core/domain"
	"leadflare/internal/core/port"
)

// textSection describes how one text section is requested and parsed.
type textSection struct {
	count       int
	noun        string
	system      string
	maxTokens   int
	temperature float32
	prompt      func(c domain.CampaignContext) string
}

var textSections = map[domain.ContentType]textSection{
	domain.ContentHeadlines: {
		count:       4,
		noun:        "headlines",
		system:      "You are an expert Facebook/Instagram ad copywriter. Generate compelling, high-converting headlines that drive clicks and leads. Keep headlines under 60 characters for optimal display.",
		maxTokens:   200,
		temperature: 0.8,
		prompt:      headlinePrompt,
	},
	domain.ContentDescriptions: {
		count:       3,
		noun:        "descriptions",
		system:      "You are an expert ad copywriter. Create compelling ad descriptions that convert prospects into leads. Keep descriptions between 125-150 characters for optimal Facebook/Instagram display.",
		maxTokens:   300,
		temperature: 0.7,
		prompt:      descriptionPrompt,
	},
	domain.ContentCTAs: {
		count:       4,
		noun:        "CTAs",
		system:      "You are a conversion optimization expert. Generate high-converting call-to-action buttons. Keep CTAs short (2-4 words) and action-oriented. Focus on urgency and value.",
		maxTokens:   100,
		temperature: 0.6,
		prompt:      ctaPrompt,
	},
}

func (s textSection) request(c domain.CampaignContext) port.TextPrompt {
	return port.TextPrompt{
		System:      s.system,
		User:        fmt.Sprintf("%s\n\nGenerate exactly %d different %s, each on a new line.", s.prompt(c), s.count, s.noun),
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	}
}

func headlinePrompt(c domain.CampaignContext) string {
	return fmt.Sprintf(`Create compelling Facebook/Instagram ad headlines for a %s business targeting %s year-olds in %s.

Campaign Details:
- Business: %s
- Description: %s
- Target Interests: %s
- Daily Budget: $%.0f

Requirements:
- Headlines must be under 60 characters for optimal display
- Focus on pain points and solutions for the target demographic
- Include emotional triggers and urgency when appropriate
- Emphasize unique value proposition
- Use action-oriented language that drives clicks`,
		c.BusinessType, c.AgeRange, strings.Join(c.Locations, ", "),
		c.Name, c.Description, strings.Join(c.Interests, ", "), c.Budget)
}

func descriptionPrompt(c domain.CampaignContext) string {
	return fmt.Sprintf(`Create compelling Facebook/Instagram ad descriptions for a %s business.

Campaign Context:
- Business: %s
- Target: %s year-olds interested in %s
- Location: %s
- Goal: %s

Requirements:
- Descriptions should be 125-150 characters for optimal display
- Focus on key benefits and transformation
- Include social proof elements when relevant
- End with a compelling reason to take action
- Match the tone for the target demographic`,
		c.BusinessType, c.Name, c.AgeRange, strings.Join(c.Interests, ", "),
		strings.Join(c.Locations, ", "), c.Description)
}

func ctaPrompt(c domain.CampaignContext) string {
	return fmt.Sprintf(`Create compelling call-to-action buttons for a %s Facebook/Instagram lead generation campaign.

Context:
- Business Type: %s
- Campaign Goal: %s
- Target Audience: %s year-olds

Requirements:
- CTAs must be 2-4 words maximum
- Action-oriented and urgent
- Appropriate for lead generation campaigns
- High-converting phrases that drive clicks
- Focus on immediate value or benefit`,
		c.BusinessType, c.BusinessType, c.Description, c.AgeRange)
}

func imagePrompts(c domain.CampaignContext) []string {
	base := fmt.Sprintf("Professional, high-quality photograph for a %s advertisement targeting %s year-olds", c.BusinessType, c.AgeRange)
	return []string{
		base + ", showing diverse professionals successfully using the service, bright modern office environment, aspirational lifestyle",
		base + ", featuring the target demographic in their natural environment, clean minimalist composition, authentic and relatable",
		base + ", showcasing the end result or transformation, before/after concept implied, compelling visual story",
		base + ", highlighting the product/service in action, professional lighting, trust and reliability focus",
	}
}

var numbering = regexp.MustCompile(`^\d+\.\s*`)

// parseCompletion splits a completion into at most count usable lines:
// blank lines, preambles starting with "here" and fragments of five
// characters or fewer are dropped, and list numbering is stripped.
func parseCompletion(raw string, count int) []string {
	out := make([]string, 0, count)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(strings.ToLower(line), "here") {
			continue
		}
		line = numbering.ReplaceAllString(line, "")
		if len(line) <= 5 {
			continue
		}
		out = append(out, line)
		if len(out) == count {
			break
		}
	}
	return out
}

func fallbackCopy(section domain.ContentType, c domain.CampaignContext) []string {
	switch section {
	case domain.ContentHeadlines:
		return []string{
			fmt.Sprintf("Transform Your %s Business Today", c.BusinessType),
			fmt.Sprintf("Join Thousands Using Our %s Solution", c.BusinessType),
			"Get Results Fast - Free Trial Available",
			"See Why Leaders Choose Our Platform",
		}
	case domain.ContentDescriptions:
		return []string{
			fmt.Sprintf("Streamline your %s operations with our proven solution. Get started today.", strings.ToLower(c.BusinessType)),
			"Join thousands of satisfied customers who transformed their business. See results in days, not months.",
			"Professional-grade tools designed for modern businesses. Secure, reliable, and easy to use.",
		}
	case domain.ContentCTAs:
		return []string{"Start Free Trial", "Get Demo", "Learn More", "Sign Up Now"}
	}
	return nil
}

var imageDescriptions = map[string][]string{
	"Technology":  {"Team collaboration", "Modern workspace", "Innovation concept", "Digital transformation"},
	"Healthcare":  {"Medical consultation", "Wellness lifestyle", "Healthcare technology", "Patient care"},
	"Finance":     {"Financial planning", "Business growth", "Investment success", "Financial security"},
	"Real Estate": {"Dream home", "Professional consultation", "Property investment", "Home ownership"},
	"Education":   {"Learning environment", "Student success", "Educational technology", "Skill development"},
}

var stockImages = []string{
	"https://images.unsplash.com/photo-1560472354-b33ff0c44a43?w=400&h=250&fit=crop",
	"https://images.unsplash.com/photo-1551434678-e076c223a692?w=400&h=250&fit=crop",
	"https://images.unsplash.com/photo-1552664730-d307ca884978?w=400&h=250&fit=crop",
	"https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=400&h=250&fit=crop",
}

func imageDescription(businessType string, i int) string {
	d, ok := imageDescriptions[businessType]
	if !ok {
		d = imageDescriptions["Technology"]
	}
	if i < 0 || i >= len(d) {
		return d[0]
	}
	return d[i]
}

func stockImage(i int) string {
	if i < 0 || i >= len(stockImages) {
		return stockImages[0]
	}
	return stockImages[i]
}
