package analysis

import (
	"sort"
	"strings"

	"content-optimizer/internal/models"
)

// Baseline script statistics. They stand until stored records supply
// measured values, so the generators always have something to work from.
const (
	baselineHookWords   = 25.0
	baselineSections    = 5.0
	baselineWPM         = 150.0
	baselineTransitions = 60.0 // percent
	baselineCTA         = 80.0 // percent
)

// titleStructures is the fixed classification table. Order matters twice:
// it is the tie-break order when picking the dominant structure, and the
// iteration order everywhere a deterministic walk is needed. The predicates
// are not mutually exclusive; one title can count toward several.
var titleStructures = []struct {
	name  string
	match func(lower, raw string) bool
}{
	{"question", func(lower, raw string) bool {
		return strings.Contains(raw, "?")
	}},
	{"number", func(lower, raw string) bool {
		return strings.ContainsAny(raw, "0123456789")
	}},
	{"how_to", func(lower, raw string) bool {
		return strings.HasPrefix(lower, "how to") || strings.HasPrefix(lower, "how i")
	}},
	{"list", func(lower, raw string) bool {
		return containsAny(lower, "top", "best", "ways", "tips")
	}},
	{"emotional", func(lower, raw string) bool {
		return containsAny(lower, "amazing", "incredible", "shocking", "surprising", "best", "worst")
	}},
}

// StructureOrder returns the structure names in classification order.
func StructureOrder() []string {
	names := make([]string, len(titleStructures))
	for i, s := range titleStructures {
		names[i] = s.name
	}
	return names
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// BuildContentDNA aggregates every stored record for a niche into a single
// ContentDNA document. The result is deterministic for a given input slice;
// the caller stamps GeneratedAt before persisting.
func BuildContentDNA(videos []models.VideoRecord, niche models.Niche) (*models.ContentDNA, error) {
	if len(videos) == 0 {
		return nil, ErrNoData
	}

	dna := &models.ContentDNA{
		Niche:      niche,
		VideoCount: len(videos),
	}

	dna.TitleDNA = buildTitleDNA(videos)
	dna.ScriptDNA = buildScriptDNA(videos)
	dna.Engagement = buildEngagementFactors(videos)
	dna.Patterns = buildPatterns(dna)
	dna.Summary = buildSummary(dna)

	return dna, nil
}

func buildTitleDNA(videos []models.VideoRecord) models.TitleDNA {
	counts := make(map[string]int, len(titleStructures))
	freq := make(map[string]int)
	var order []string // keywords in first-seen order for stable ties
	totalWords := 0

	for _, v := range videos {
		lower := strings.ToLower(v.Title)
		words := strings.Fields(lower)
		totalWords += len(words)

		for _, s := range titleStructures {
			if s.match(lower, v.Title) {
				counts[s.name]++
			}
		}
		for _, w := range words {
			if len(w) > 3 {
				if _, seen := freq[w]; !seen {
					order = append(order, w)
				}
				freq[w]++
			}
		}
	}

	structures := make(map[string]models.StructureStat, len(titleStructures))
	for _, s := range titleStructures {
		c := counts[s.name]
		structures[s.name] = models.StructureStat{
			Count:      c,
			Percentage: float64(c) / float64(len(videos)) * 100,
		}
	}

	keywords := make([]models.KeywordCount, 0, len(order))
	for _, w := range order {
		keywords = append(keywords, models.KeywordCount{Word: w, Count: freq[w]})
	}
	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Count > keywords[j].Count
	})
	if len(keywords) > 20 {
		keywords = keywords[:20]
	}

	return models.TitleDNA{
		Keywords:   keywords,
		Structures: structures,
		AvgLength:  float64(totalWords) / float64(len(videos)),
	}
}

// buildScriptDNA folds measured script fields into running averages. Each
// field keeps its own sample count so records that only measured some fields
// still contribute what they have.
func buildScriptDNA(videos []models.VideoRecord) models.ScriptDNA {
	stats := models.ScriptStats{
		AvgHookWords:   baselineHookWords,
		AvgSections:    baselineSections,
		AvgWPM:         baselineWPM,
		TransitionsPct: baselineTransitions,
		CTAPct:         baselineCTA,
	}
	var nHook, nSect, nWPM, nTrans, nCTA int

	fold := func(avg float64, n int, x float64) float64 {
		return (avg*float64(n-1) + x) / float64(n)
	}

	for _, v := range videos {
		ss := v.ScriptStructure
		if ss == nil {
			continue
		}
		if ss.HookWordCount != nil {
			nHook++
			stats.AvgHookWords = fold(stats.AvgHookWords, nHook, float64(*ss.HookWordCount))
		}
		if ss.SectionCount != nil {
			nSect++
			stats.AvgSections = fold(stats.AvgSections, nSect, float64(*ss.SectionCount))
		}
		if ss.WordsPerMinute != nil {
			nWPM++
			stats.AvgWPM = fold(stats.AvgWPM, nWPM, *ss.WordsPerMinute)
		}
		// Boolean fields fold only true observations. A false still widens
		// the denominator of later trues but never moves the stat itself,
		// so a lone false keeps the baseline in place.
		if ss.HasClearTransitions != nil {
			nTrans++
			if *ss.HasClearTransitions {
				stats.TransitionsPct = fold(stats.TransitionsPct, nTrans, 100)
			}
		}
		if ss.HasCTA != nil {
			nCTA++
			if *ss.HasCTA {
				stats.CTAPct = fold(stats.CTAPct, nCTA, 100)
			}
		}
	}

	keywords := make([]string, 0, 10)
	for _, kw := range buildTitleDNA(videos).Keywords {
		keywords = append(keywords, kw.Word)
		if len(keywords) == 10 {
			break
		}
	}

	return models.ScriptDNA{Stats: stats, Keywords: keywords}
}

func buildEngagementFactors(videos []models.VideoRecord) *models.EngagementFactors {
	if len(videos) < 2 {
		return nil
	}
	var views, likes int64
	for _, v := range videos {
		views += v.Views
		likes += v.Likes
	}
	return &models.EngagementFactors{
		AvgViews: float64(views) / float64(len(videos)),
		AvgLikes: float64(likes) / float64(len(videos)),
	}
}

// buildPatterns turns the aggregates into the flat pattern list the
// generators and report writers consume. Order is fixed: dominant title
// structure first, then the script patterns.
func buildPatterns(dna *models.ContentDNA) []models.DNAPattern {
	var patterns []models.DNAPattern

	dominant, stat := dominantStructure(dna.TitleDNA.Structures)
	if stat.Count > 0 {
		p := stat.Percentage
		patterns = append(patterns, models.DNAPattern{
			Element:        "title",
			Pattern:        dominant,
			Prevalence:     &p,
			Recommendation: "Use " + dominant + " structure in titles",
		})
	}

	s := dna.ScriptDNA.Stats
	if s.TransitionsPct > 50 {
		p := s.TransitionsPct
		patterns = append(patterns, models.DNAPattern{
			Element:        "script",
			Pattern:        "clear_transitions",
			Prevalence:     &p,
			Recommendation: "Use clear section transitions",
		})
	}
	if s.CTAPct > 50 {
		p := s.CTAPct
		patterns = append(patterns, models.DNAPattern{
			Element:        "script",
			Pattern:        "verbal_cta",
			Prevalence:     &p,
			Recommendation: "Include verbal calls to action",
		})
	}

	hook := s.AvgHookWords
	patterns = append(patterns, models.DNAPattern{
		Element:        "script",
		Pattern:        "hook_length",
		Value:          &hook,
		Recommendation: "Open with a hook of this length",
	})
	wpm := s.AvgWPM
	patterns = append(patterns, models.DNAPattern{
		Element:        "script",
		Pattern:        "speaking_pace",
		Value:          &wpm,
		Recommendation: "Target this speaking pace",
	})

	return patterns
}

// dominantStructure picks the structure with the highest count. Ties resolve
// to whichever comes first in the classification table.
func dominantStructure(structures map[string]models.StructureStat) (string, models.StructureStat) {
	best := titleStructures[0].name
	bestStat := structures[best]
	for _, s := range titleStructures[1:] {
		if structures[s.name].Count > bestStat.Count {
			best = s.name
			bestStat = structures[s.name]
		}
	}
	return best, bestStat
}

func buildSummary(dna *models.ContentDNA) models.DNASummary {
	dominant, _ := dominantStructure(dna.TitleDNA.Structures)

	top := make([]string, 0, 5)
	for _, kw := range dna.TitleDNA.Keywords {
		top = append(top, kw.Word)
		if len(top) == 5 {
			break
		}
	}

	names := make([]string, 0, 3)
	for _, p := range dna.Patterns {
		names = append(names, p.Pattern)
		if len(names) == 3 {
			break
		}
	}

	return models.DNASummary{
		TitleStrategy: "Use " + dominant + " structure with keywords: " + strings.Join(top, ", "),
		PatternCount:  len(dna.Patterns),
		TopPatterns:   names,
		HasScriptDNA:  true,
	}
}
