package generate

import (
	"fmt"
	"regexp"
	"strings"

	"content-optimizer/internal/models"
)

const speakingRateWPM = 150.0

var sentenceRe = regexp.MustCompile(`[.!?]+`)

// ScriptAnalysis is the full breakdown of a draft script.
type ScriptAnalysis struct {
	WordCount         int                `json:"word_count"`
	EstimatedDuration string             `json:"estimated_duration"`
	AvgSentenceLength float64            `json:"avg_sentence_length"`
	Hook              HookAnalysis       `json:"hook_analysis"`
	RetentionMarkers  []MarkerAnalysis   `json:"retention_marker_analysis"`
	Structure         StructureAnalysis  `json:"structure_analysis"`
	Recommendations   []ScriptSuggestion `json:"recommendations"`
}

// HookAnalysis is the opening of the script and its length.
type HookAnalysis struct {
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
}

// MarkerAnalysis maps one retention marker onto the draft.
type MarkerAnalysis struct {
	ExpectedPosition string `json:"expected_position"`
	WordPosition     int    `json:"approximate_word_position"`
	Context          string `json:"context"`
	Importance       string `json:"importance"`
	ExpectedElement  string `json:"expected_element"`
}

// StructureAnalysis compares the draft's rough sections to the niche ideal.
type StructureAnalysis struct {
	OptimalStructure []string `json:"optimal_structure"`
	Sections         []string `json:"approximated_sections"`
}

// ScriptSuggestion is one analysis finding with a suggested edit.
type ScriptSuggestion struct {
	Type       string `json:"type"`
	Position   string `json:"position,omitempty"`
	Analysis   string `json:"analysis"`
	Suggestion string `json:"suggestion"`
}

// AnalyzeScript maps the niche's retention markers onto the draft and checks
// the section count against the niche's optimal structure.
func (g *Generator) AnalyzeScript(script string, niche models.Niche) (*ScriptAnalysis, error) {
	patterns, err := g.DB.Niche(niche)
	if err != nil {
		return nil, err
	}
	sp := patterns.ScriptPatterns

	words := strings.Fields(script)
	wordCount := len(words)
	sentences := sentenceRe.Split(script, -1)
	nSentences := len(sentences)
	if nSentences < 1 {
		nSentences = 1
	}

	totalMinutes := float64(wordCount) / speakingRateWPM

	hookWords := words
	if len(hookWords) > 100 {
		hookWords = hookWords[:100]
	}
	hook := strings.Join(hookWords, " ")

	markers := make([]MarkerAnalysis, 0, len(sp.RetentionMarkers))
	for _, m := range sp.RetentionMarkers {
		pos := markerWordPosition(m.Position, wordCount)
		markers = append(markers, MarkerAnalysis{
			ExpectedPosition: m.Position,
			WordPosition:     pos,
			Context:          contextAround(words, pos, 25),
			Importance:       m.Importance,
			ExpectedElement:  m.Element,
		})
	}

	structure := StructureAnalysis{
		OptimalStructure: sp.OptimalStructure,
		Sections:         approximateSections(words, len(sp.OptimalStructure)),
	}

	analysis := &ScriptAnalysis{
		WordCount:         wordCount,
		EstimatedDuration: fmt.Sprintf("%.2f minutes", totalMinutes),
		AvgSentenceLength: float64(wordCount) / float64(nSentences),
		Hook:              HookAnalysis{Text: hook, WordCount: len(hookWords)},
		RetentionMarkers:  markers,
		Structure:         structure,
	}
	analysis.Recommendations = scriptSuggestions(script, analysis, sp, niche)
	return analysis, nil
}

func markerWordPosition(position string, wordCount int) int {
	switch position {
	case "0-15s":
		return 0
	case "1min":
		return int(speakingRateWPM)
	case "midpoint":
		return wordCount / 2
	case "75%":
		return int(float64(wordCount) * 0.75)
	}
	return 0
}

func contextAround(words []string, pos, radius int) string {
	start := pos - radius
	if start < 0 {
		start = 0
	}
	end := pos + radius
	if end > len(words) {
		end = len(words)
	}
	if start >= end {
		return ""
	}
	return strings.Join(words[start:end], " ")
}

func approximateSections(words []string, n int) []string {
	if n < 1 || len(words) == 0 {
		return nil
	}
	size := len(words) / n
	if size < 1 {
		size = 1
	}
	var sections []string
	for i := 0; i < n; i++ {
		start := i * size
		if start >= len(words) {
			break
		}
		end := (i + 1) * size
		if end > len(words) {
			end = len(words)
		}
		sections = append(sections, strings.Join(words[start:end], " "))
	}
	return sections
}

func scriptSuggestions(script string, a *ScriptAnalysis, sp ScriptPatterns, niche models.Niche) []ScriptSuggestion {
	var recs []ScriptSuggestion

	recs = append(recs, ScriptSuggestion{
		Type:       "hook",
		Analysis:   "Your hook appears to be informational rather than emotional or curiosity-driven.",
		Suggestion: fmt.Sprintf("Consider using one of these hook types that perform well in %s: %s.", niche, strings.Join(sp.HookTypes, ", ")),
	})

	for _, m := range a.RetentionMarkers {
		if m.Importance == "critical" {
			recs = append(recs, ScriptSuggestion{
				Type:       "retention_marker",
				Position:   m.ExpectedPosition,
				Analysis:   "This is a critical retention point where viewers decide to continue watching.",
				Suggestion: fmt.Sprintf("Ensure you have a strong %s here. Consider adding visual elements or pattern interrupts.", m.ExpectedElement),
			})
		}
	}

	if len(a.Structure.Sections) < len(a.Structure.OptimalStructure) {
		missing := a.Structure.OptimalStructure[len(a.Structure.Sections):]
		recs = append(recs, ScriptSuggestion{
			Type:       "structure",
			Analysis:   fmt.Sprintf("Your script appears to be missing some optimal sections for %s content.", niche),
			Suggestion: "Consider adding these sections to follow the optimal structure: " + strings.Join(missing, ", "),
		})
	}

	if kws := ExtractKeywords(script, 5); len(kws) > 0 {
		words := make([]string, len(kws))
		for i, kw := range kws {
			words[i] = kw.Word
		}
		recs = append(recs, ScriptSuggestion{
			Type:       "keywords",
			Analysis:   "Your most frequent words are: " + strings.Join(words, ", "),
			Suggestion: "Ensure your title and description include these key terms for SEO optimization.",
		})
	}

	return recs
}

// nicheSettings are upload-time recommendations per niche. Lengths are in
// minutes.
type nicheSettings struct {
	MinLength       float64
	MaxLength       float64
	BestUploadTimes []string
	Category        string
	TagsCount       string
	CardPlacement   string
}

var settingsTable = map[models.Niche]nicheSettings{
	models.NicheProductivity: {
		MinLength: 10, MaxLength: 15,
		BestUploadTimes: []string{"Monday 2pm-4pm", "Wednesday 11am-1pm", "Sunday 8am-10am"},
		Category:        "Education",
		TagsCount:       "15-20 tags",
		CardPlacement:   "70% through video",
	},
	models.NicheHealthFitness: {
		MinLength: 12, MaxLength: 18,
		BestUploadTimes: []string{"Monday 6am-8am", "Wednesday 5pm-7pm", "Saturday 9am-11am"},
		Category:        "How-To & Style",
		TagsCount:       "15-25 tags",
		CardPlacement:   "60% through video",
	},
	models.NicheAITech: {
		MinLength: 8, MaxLength: 12,
		BestUploadTimes: []string{"Tuesday 3pm-5pm", "Thursday 1pm-3pm", "Sunday 7pm-9pm"},
		Category:        "Science & Technology",
		TagsCount:       "10-15 technical tags",
		CardPlacement:   "75% through video",
	},
}

// VideoSettings is the upload configuration advice for a draft.
type VideoSettings struct {
	EstimatedDuration string   `json:"estimated_duration"`
	LengthAnalysis    string   `json:"length_analysis"`
	OptimalLength     string   `json:"optimal_length"`
	BestUploadTimes   []string `json:"best_upload_times"`
	Category          string   `json:"category"`
	TagsCount         string   `json:"tags_count"`
	AlgorithmTips     []string `json:"algorithm_tips"`
}

// AnalyzeVideoSettings recommends length, upload windows, and category for
// the draft based on the niche's conventions.
func (g *Generator) AnalyzeVideoSettings(script string, niche models.Niche) *VideoSettings {
	s, ok := settingsTable[niche]
	if !ok {
		s = settingsTable[models.NicheProductivity]
	}

	duration := float64(len(strings.Fields(script))) / speakingRateWPM

	length := "Your video is "
	switch {
	case duration < s.MinLength:
		length += fmt.Sprintf("shorter than the optimal range for %s content. Consider expanding on key points.", niche)
	case duration > s.MaxLength:
		length += fmt.Sprintf("longer than the optimal range for %s content. Consider tightening the script.", niche)
	default:
		length += fmt.Sprintf("within the optimal range for %s content.", niche)
	}

	return &VideoSettings{
		EstimatedDuration: fmt.Sprintf("%.2f minutes", duration),
		LengthAnalysis:    length,
		OptimalLength:     fmt.Sprintf("%.0f-%.0f minutes", s.MinLength, s.MaxLength),
		BestUploadTimes:   s.BestUploadTimes,
		Category:          s.Category,
		TagsCount:         s.TagsCount,
		AlgorithmTips: []string{
			"Include your main keyword in the first 25 words of your description",
			"Add 2-3 hashtags directly relevant to your content",
			"Enable community contributions if applicable",
			"Create a custom thumbnail with text that reinforces the title",
			fmt.Sprintf("Add end screen elements at %s to increase session time", s.CardPlacement),
		},
	}
}
