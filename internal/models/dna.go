package models

// KeywordCount is one entry of a frequency-ranked keyword list.
type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// StructureStat is the usage count and percentage of one title structure.
type StructureStat struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TitleDNA summarizes lexical patterns across a niche's stored titles.
type TitleDNA struct {
	Keywords   []KeywordCount           `json:"keywords"`
	Structures map[string]StructureStat `json:"structures"`
	AvgLength  float64                  `json:"avg_length"` // words per title
}

// ScriptStats are running averages over records that carry script data.
// When no record supplies a field the baseline value stands.
type ScriptStats struct {
	AvgHookWords   float64 `json:"avg_hook_words"`
	AvgSections    float64 `json:"avg_sections"`
	AvgWPM         float64 `json:"avg_wpm"`
	TransitionsPct float64 `json:"transitions_pct"`
	CTAPct         float64 `json:"cta_pct"`
}

// ScriptDNA wraps script statistics for the niche.
type ScriptDNA struct {
	Stats    ScriptStats `json:"stats"`
	Keywords []string    `json:"keywords"`
}

// EngagementFactors are niche-wide engagement averages.
type EngagementFactors struct {
	AvgViews float64 `json:"avg_views"`
	AvgLikes float64 `json:"avg_likes"`
}

// DNAPattern is one observed content pattern with its recommendation.
// Prevalence is set for percentage-backed patterns, Value for numeric ones.
type DNAPattern struct {
	Element        string   `json:"element"`
	Pattern        string   `json:"pattern"`
	Prevalence     *float64 `json:"prevalence,omitempty"`
	Value          *float64 `json:"value,omitempty"`
	Recommendation string   `json:"recommendation"`
}

// DNASummary is the short form of a ContentDNA document.
type DNASummary struct {
	TitleStrategy string   `json:"title_strategy"`
	PatternCount  int      `json:"pattern_count"`
	TopPatterns   []string `json:"top_patterns"`
	HasScriptDNA  bool     `json:"has_script_dna"`
}

// ContentDNA is the aggregated pattern summary for one niche. It is fully
// recomputed from the stored records on every run; the cached copy on disk
// is only a convenience for the generators.
type ContentDNA struct {
	Niche       Niche              `json:"niche"`
	VideoCount  int                `json:"video_count"`
	GeneratedAt string             `json:"timestamp"`
	TitleDNA    TitleDNA           `json:"title_dna"`
	ScriptDNA   ScriptDNA          `json:"script_dna"`
	Engagement  *EngagementFactors `json:"engagement_factors,omitempty"`
	Patterns    []DNAPattern       `json:"content_dna_patterns"`
	Summary     DNASummary         `json:"summary"`
}

// FindPattern returns the first pattern matching element and name, or nil.
func (d *ContentDNA) FindPattern(element, pattern string) *DNAPattern {
	for i := range d.Patterns {
		if d.Patterns[i].Element == element && d.Patterns[i].Pattern == pattern {
			return &d.Patterns[i]
		}
	}
	return nil
}

// Recommendation is a single actionable suggestion. Never persisted as
// state, only written into report files.
type Recommendation struct {
	Element        string   `json:"element"`
	Type           string   `json:"type"`
	Recommendation string   `json:"recommendation"`
	Priority       string   `json:"priority,omitempty"`
	Prevalence     string   `json:"prevalence,omitempty"`
	Examples       []string `json:"examples,omitempty"`
	Keywords       []string `json:"keywords,omitempty"`
}
