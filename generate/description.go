package generate

import (
	"strings"

	"content-optimizer/internal/models"
)

// Description is a generated video description with its SEO breakdown.
type Description struct {
	Description    string                `json:"description"`
	KeywordDensity []models.KeywordCount `json:"keyword_density"`
	Recommendation string                `json:"recommendation"`
}

var nicheCTAs = map[models.Niche][]string{
	models.NicheProductivity: {
		"👉 Get my productivity templates: [LINK]",
		"🔔 Subscribe for more productivity tips every week!",
		"💬 What productivity challenges are you facing? Let me know in the comments!",
	},
	models.NicheHealthFitness: {
		"👉 Get my fitness program: [LINK]",
		"🔔 Subscribe for more fitness and health tips!",
		"💬 What health goals are you working toward? Share in the comments!",
	},
	models.NicheAITech: {
		"👉 Get my AI tools guide: [LINK]",
		"🔔 Subscribe for more AI and tech tutorials!",
		"💬 What AI projects are you working on? Let me know in the comments!",
	},
}

var nicheHashtags = map[models.Niche][]string{
	models.NicheProductivity:  {"#productivity", "#timemanagement", "#workflow", "#efficiency"},
	models.NicheHealthFitness: {"#health", "#fitness", "#wellness", "#healthylifestyle"},
	models.NicheAITech:        {"#ai", "#technology", "#artificialintelligence", "#tech"},
}

// Placeholder chapter markers until timestamps are derived from the edit.
var placeholderTimestamps = []string{
	"00:00 Introduction",
	"01:30 The Problem",
	"03:45 Solution Overview",
	"05:20 Step-by-Step Implementation",
	"08:15 Results and Benefits",
	"10:30 How You Can Apply This",
}

// GenerateDescription assembles an intro, a script summary, niche CTAs,
// chapter markers, and hashtags into a ready-to-paste description.
func (g *Generator) GenerateDescription(script, title string, niche models.Niche) (*Description, error) {
	if _, err := g.DB.Niche(niche); err != nil {
		return nil, err
	}

	intro := title
	if !strings.HasPrefix(title, "How") {
		intro = strings.ToLower(title)
	}
	intro = "In this video, I share " + intro + "."

	hashtags := make([]string, 0, 10)
	for _, kw := range ExtractKeywords(script, 15) {
		if kw.Count > 1 {
			hashtags = append(hashtags, "#"+kw.Word)
		}
		if len(hashtags) == 5 {
			break
		}
	}
	hashtags = append(hashtags, nicheHashtags[niche]...)
	if len(hashtags) > 10 {
		hashtags = hashtags[:10]
	}

	parts := []string{
		intro,
		"",
		summarize(script, 200),
		"",
		"TIMESTAMPS:",
		strings.Join(placeholderTimestamps, "\n"),
		"",
		strings.Join(nicheCTAs[niche], "\n"),
		"",
		strings.Join(hashtags, " "),
	}

	return &Description{
		Description:    strings.Join(parts, "\n"),
		KeywordDensity: ExtractKeywords(script, 10),
		Recommendation: "This description includes key terms, timestamps, CTAs, and relevant hashtags for maximum searchability.",
	}, nil
}

// summarize takes the first maxWords words and cuts back to the last
// complete sentence so the summary never ends mid-thought.
func summarize(script string, maxWords int) string {
	words := strings.Fields(script)
	if len(words) > maxWords {
		words = words[:maxWords]
	}
	text := strings.Join(words, " ")

	last := -1
	for _, p := range []string{".", "!", "?"} {
		if i := strings.LastIndex(text, p); i > last {
			last = i
		}
	}
	if last != -1 {
		text = text[:last+1]
	}
	return text
}
