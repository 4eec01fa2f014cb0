package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"content-optimizer/internal/models"
	"content-optimizer/shared/config"
)

// Narrator turns an aggregated ContentDNA document into a short prose
// briefing. Purely additive: every report works without it.
type Narrator struct {
	client *genai.Client
	model  string
}

func NewNarrator(ctx context.Context, cfg *config.AIConfig) (*Narrator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Narrator{client: client, model: cfg.Model}, nil
}

// NarrateDNA asks the model to summarize the niche's patterns as advice a
// creator can act on this week.
func (n *Narrator) NarrateDNA(ctx context.Context, dna *models.ContentDNA) (string, error) {
	prompt := buildDNAPrompt(dna)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}

	result, err := n.client.Models.GenerateContent(ctx, n.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generating narration: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("empty narration response for %s", dna.Niche)
	}
	return text, nil
}

func buildDNAPrompt(dna *models.ContentDNA) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are advising a YouTube creator in the %s niche.\n", dna.Niche)
	fmt.Fprintf(&b, "The following patterns were extracted from %d top competitor videos:\n\n", dna.VideoCount)

	for _, p := range dna.Patterns {
		switch {
		case p.Prevalence != nil:
			fmt.Fprintf(&b, "- %s/%s: seen in %.0f%% of videos\n", p.Element, p.Pattern, *p.Prevalence)
		case p.Value != nil:
			fmt.Fprintf(&b, "- %s/%s: average value %.0f\n", p.Element, p.Pattern, *p.Value)
		default:
			fmt.Fprintf(&b, "- %s/%s\n", p.Element, p.Pattern)
		}
	}

	if len(dna.TitleDNA.Keywords) > 0 {
		words := make([]string, 0, 10)
		for _, kw := range dna.TitleDNA.Keywords {
			words = append(words, kw.Word)
			if len(words) == 10 {
				break
			}
		}
		fmt.Fprintf(&b, "\nHigh-frequency title keywords: %s\n", strings.Join(words, ", "))
	}

	b.WriteString("\nWrite a concise briefing (under 200 words) telling the creator what to change in their next video. Plain text, no markdown.")
	return b.String()
}
