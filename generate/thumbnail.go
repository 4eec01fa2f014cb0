package generate

import (
	"fmt"
	"strings"

	"content-optimizer/internal/models"
)

// ThumbnailBrief is a set of thumbnail design recommendations.
type ThumbnailBrief struct {
	ColorScheme     Advice          `json:"color_scheme"`
	Elements        ElementsAdvice  `json:"elements"`
	TitleTreatment  Advice          `json:"title_treatment"`
	PotentialShots  []ScriptSegment `json:"potential_moments"`
	CompositionTips []string        `json:"composition_tips"`
}

// Advice pairs a recommendation with its rationale.
type Advice struct {
	Recommendation string `json:"recommendation"`
	Explanation    string `json:"explanation"`
}

// ElementsAdvice recommends visual elements to include.
type ElementsAdvice struct {
	Recommendations []string `json:"recommendations"`
	Explanation     string   `json:"explanation"`
}

// ScriptSegment is a fifth of the script with its thumbnail potential.
type ScriptSegment struct {
	Number    int    `json:"segment_number"`
	Text      string `json:"segment_text"`
	Position  string `json:"position"`
	Potential string `json:"thumbnail_potential"`
}

// RecommendThumbnail picks a color scheme and visual elements from the
// niche's conventions and flags the script moments worth screenshotting.
func (g *Generator) RecommendThumbnail(script, title string, niche models.Niche) (*ThumbnailBrief, error) {
	patterns, err := g.DB.Niche(niche)
	if err != nil {
		return nil, err
	}
	tp := patterns.ThumbnailPatterns

	scheme := tp.ColorSchemes[g.Rng.Intn(len(tp.ColorSchemes))]
	elements := sampleTwo(tp.Elements, g)

	titleWords := strings.Fields(title)
	shortTitle := title
	if len(titleWords) > 4 {
		shortTitle = strings.Join(titleWords[:4], " ") + "..."
	}

	var shots []ScriptSegment
	for _, seg := range splitSegments(script, 5) {
		if seg.Potential == "high" {
			shots = append(shots, seg)
		}
	}

	return &ThumbnailBrief{
		ColorScheme: Advice{
			Recommendation: scheme,
			Explanation:    "This color scheme has high contrast and performs well in your niche.",
		},
		Elements: ElementsAdvice{
			Recommendations: elements,
			Explanation:     "These visual elements tend to drive higher CTR in your content category.",
		},
		TitleTreatment: Advice{
			Recommendation: fmt.Sprintf("Use '%s' with high contrast against the background", shortTitle),
			Explanation:    "Shorter text is more readable in thumbnails.",
		},
		PotentialShots: shots,
		CompositionTips: []string{
			"Position your face/subject on the left side of the frame for better CTR",
			"Use expressive facial emotions that convey the value of the content",
			"Ensure text is limited to 3-5 words maximum for readability",
		},
	}, nil
}

// splitSegments divides the script into n segments. Openings and endings
// tend to hold the strongest visual moments, so the first and last segment
// are marked high potential.
func splitSegments(script string, n int) []ScriptSegment {
	words := strings.Fields(script)
	if len(words) == 0 {
		return nil
	}
	size := len(words) / n
	if size < 1 {
		size = 1
	}

	var segments []ScriptSegment
	step := 100 / n
	for i := 0; i < n; i++ {
		start := i * size
		if start >= len(words) {
			break
		}
		end := (i + 1) * size
		if i == n-1 || end > len(words) {
			end = len(words)
		}
		potential := "medium"
		if i == 0 || i == n-1 {
			potential = "high"
		}
		segments = append(segments, ScriptSegment{
			Number:    i + 1,
			Text:      strings.Join(words[start:end], " "),
			Position:  fmt.Sprintf("%d%% - %d%%", i*step, (i+1)*step),
			Potential: potential,
		})
	}
	return segments
}

func sampleTwo(items []string, g *Generator) []string {
	if len(items) <= 2 {
		return append([]string(nil), items...)
	}
	perm := g.Rng.Perm(len(items))
	return []string{items[perm[0]], items[perm[1]]}
}
