package analysis

import (
	"fmt"
	"strings"

	"content-optimizer/internal/models"
)

// Marker phrases used to detect script structure. Matching is substring
// based on the lowercased text.
var (
	transitionMarkers = []string{"next", "moving on", "now let's", "first", "second", "finally", "let's talk about"}
	ctaMarkers        = []string{"subscribe", "like this video", "comment below", "check out", "link in the description"}
)

// ScriptReport is the result of scoring a draft script against a niche DNA.
type ScriptReport struct {
	WordCount       int                     `json:"word_count"`
	HookWordCount   int                     `json:"hook_word_count"`
	Recommendations []models.Recommendation `json:"recommendations"`
}

// ScoreScript compares a draft script to the niche's aggregated patterns and
// returns concrete edits ordered by priority.
func ScoreScript(script string, dna *models.ContentDNA) *ScriptReport {
	lower := strings.ToLower(script)
	words := strings.Fields(script)

	report := &ScriptReport{
		WordCount:     len(words),
		HookWordCount: min(len(words), 50),
	}

	if p := dna.FindPattern("script", "hook_length"); p != nil && p.Value != nil {
		delta := *p.Value - float64(report.HookWordCount)
		if delta > 10 || delta < -10 {
			verb := "Lengthen"
			if delta < 0 {
				verb = "Tighten"
			}
			report.Recommendations = append(report.Recommendations, models.Recommendation{
				Element: "script", Type: "hook",
				Recommendation: fmt.Sprintf("%s your hook: top %s videos open with about %.0f words", verb, dna.Niche, *p.Value),
				Priority:       "high",
			})
		}
	}

	if p := dna.FindPattern("script", "speaking_pace"); p != nil && p.Value != nil {
		// Without audio the draft's pace is assumed at the 150 wpm baseline.
		estimated := baselineWPM
		delta := *p.Value - estimated
		if delta > 20 || delta < -20 {
			direction := "faster"
			if delta < 0 {
				direction = "slower"
			}
			report.Recommendations = append(report.Recommendations, models.Recommendation{
				Element: "script", Type: "pace",
				Recommendation: fmt.Sprintf("Top videos in %s speak %s, around %.0f words per minute", dna.Niche, direction, *p.Value),
				Priority:       "medium",
			})
		}
	}

	if p := dna.FindPattern("script", "clear_transitions"); p != nil && p.Prevalence != nil && !containsAny(lower, transitionMarkers...) {
		report.Recommendations = append(report.Recommendations, models.Recommendation{
			Element: "script", Type: "transitions",
			Recommendation: fmt.Sprintf("Add section transitions (%.0f%% of top videos signpost sections)", *p.Prevalence),
			Priority:       "medium",
		})
	}

	if p := dna.FindPattern("script", "verbal_cta"); p != nil && p.Prevalence != nil && !containsAny(lower, ctaMarkers...) {
		report.Recommendations = append(report.Recommendations, models.Recommendation{
			Element: "script", Type: "cta",
			Recommendation: fmt.Sprintf("Add a verbal call to action (%.0f%% of top videos have one)", *p.Prevalence),
			Priority:       "medium",
		})
	}

	for _, p := range dna.Patterns {
		if p.Element == "title" && p.Prevalence != nil {
			report.Recommendations = append(report.Recommendations, models.Recommendation{
				Element: "title", Type: "structure",
				Recommendation: fmt.Sprintf("Frame the title as %s (%.0f%% of top videos do)", p.Pattern, *p.Prevalence),
				Priority:       "medium",
			})
			break
		}
	}

	if kws := dna.ScriptDNA.Keywords; len(kws) > 0 {
		top := kws
		if len(top) > 5 {
			top = top[:5]
		}
		report.Recommendations = append(report.Recommendations, models.Recommendation{
			Element: "script", Type: "keywords",
			Recommendation: "Work in the niche's proven keywords",
			Priority:       "low",
			Keywords:       top,
		})
	}

	return report
}

// MeasureScriptStructure derives the stored per-video script fields from a
// transcript. durationSeconds of zero leaves words-per-minute unset.
func MeasureScriptStructure(transcript string, durationSeconds int) *models.ScriptStructure {
	words := strings.Fields(transcript)
	if len(words) == 0 {
		return nil
	}
	lower := strings.ToLower(transcript)

	hook := min(len(words), 50)
	transitions := 0
	for _, m := range transitionMarkers {
		transitions += strings.Count(lower, m)
	}
	sections := transitions + 1
	hasTransitions := transitions > 0
	hasCTA := containsAny(lower, ctaMarkers...)

	ss := &models.ScriptStructure{
		HookWordCount:       &hook,
		SectionCount:        &sections,
		HasClearTransitions: &hasTransitions,
		HasCTA:              &hasCTA,
	}
	if durationSeconds > 0 {
		wpm := float64(len(words)) / (float64(durationSeconds) / 60)
		ss.WordsPerMinute = &wpm
	}
	return ss
}
