// Package ideas produces shot-idea suggestions for an event via the
// Generative Language API. The generator never surfaces an error: missing
// configuration and API failures both degrade to fixed messages.
package ideas

import (
	"context"
	"fmt"
	"strings"
	"time"

	genlang "google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/option"

	"shuttersync/internal/log"
)

const (
	// DefaultModel is used when the configuration names none.
	DefaultModel = "models/gemini-2.0-flash"

	fallbackNotConfigured = "API key not configured. Please set the GEMINI_API_KEY environment variable."
	fallbackUnavailable   = "Could not generate ideas at this time. Please try again later."
)

// IdeaRequest carries the event fields the prompt is built from.
type IdeaRequest struct {
	EventType        string     `json:"eventType"`
	Notes            string     `json:"notes"`
	EventStartDate   time.Time  `json:"eventStartDate"`
	EventEndDate     time.Time  `json:"eventEndDate"`
	NeedsVideography bool       `json:"needsVideography"`
	VideographyStart *time.Time `json:"videographyStartDate,omitempty"`
	VideographyEnd   *time.Time `json:"videographyEndDate,omitempty"`
}

// Generator turns an event description into free-text shot ideas.
type Generator interface {
	ShotIdeas(ctx context.Context, req IdeaRequest) string
}

// Disabled is the generator used when no API key is configured.
type Disabled struct{}

func (Disabled) ShotIdeas(context.Context, IdeaRequest) string {
	return fallbackNotConfigured
}

// Gemini calls the Generative Language API.
type Gemini struct {
	svc    *genlang.Service
	model  string
	logger *log.Logger
}

// New returns a Gemini-backed generator, or the Disabled one when apiKey
// is empty.
func New(ctx context.Context, apiKey, model string, logger *log.Logger) (Generator, error) {
	if strings.TrimSpace(apiKey) == "" {
		logger.WithComponent(log.ComponentIdeas).Warn("no API key configured, idea generation disabled")
		return Disabled{}, nil
	}
	if model == "" {
		model = DefaultModel
	}
	svc, err := genlang.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("generative language service: %w", err)
	}
	return &Gemini{
		svc:    svc,
		model:  model,
		logger: logger.WithComponent(log.ComponentIdeas),
	}, nil
}

func (g *Gemini) ShotIdeas(ctx context.Context, req IdeaRequest) string {
	resp, err := g.svc.Models.GenerateContent(g.model, &genlang.GenerateContentRequest{
		Contents: []*genlang.Content{{
			Role:  "user",
			Parts: []*genlang.Part{{Text: BuildPrompt(req)}},
		}},
	}).Context(ctx).Do()
	if err != nil {
		g.logger.WarnContext(ctx, "idea generation failed", log.FieldError, err)
		return fallbackUnavailable
	}
	text := responseText(resp)
	if text == "" {
		g.logger.WarnContext(ctx, "idea generation returned no candidates")
		return fallbackUnavailable
	}
	return text
}

func responseText(resp *genlang.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range cand.Content.Parts {
		b.WriteString(part.Text)
	}
	return strings.TrimSpace(b.String())
}

// BuildPrompt renders the idea prompt for an event.
func BuildPrompt(req IdeaRequest) string {
	videography := "No videography needed."
	if req.NeedsVideography {
		if req.VideographyStart != nil && req.VideographyEnd != nil {
			videography = fmt.Sprintf("Videography is required from %s to %s.",
				clockTime(*req.VideographyStart), clockTime(*req.VideographyEnd))
		} else {
			videography = "Videography is also required."
		}
	}

	return fmt.Sprintf(`You are a creative assistant for a professional photographer.
Based on the following event details, generate 5 creative and unique photo shot ideas.
The ideas should be concise, inspiring, and actionable.

Event Type: %s
Event Time: %s to %s
Videography: %s
Client Notes: %q

Format the output as a numbered list.`,
		req.EventType,
		timeOrUnset(req.EventStartDate),
		timeOrUnset(req.EventEndDate),
		videography,
		req.Notes,
	)
}

func timeOrUnset(t time.Time) string {
	if t.IsZero() {
		return "Not set"
	}
	return clockTime(t)
}

func clockTime(t time.Time) string {
	return t.Format("3:04 PM")
}
