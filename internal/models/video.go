package models

// Niche is one of the fixed content categories that partition the database.
type Niche string

const (
	NicheProductivity  Niche = "productivity"
	NicheHealthFitness Niche = "health_fitness"
	NicheAITech        Niche = "ai_tech"
)

// Niches lists every valid niche in a fixed order.
var Niches = []Niche{NicheProductivity, NicheHealthFitness, NicheAITech}

// ValidNiche reports whether s names a configured niche.
func ValidNiche(s string) bool {
	for _, n := range Niches {
		if string(n) == s {
			return true
		}
	}
	return false
}

// SearchTerm returns the YouTube search query used when fetching top
// videos for the niche.
func (n Niche) SearchTerm() string {
	switch n {
	case NicheProductivity:
		return "productivity tips"
	case NicheHealthFitness:
		return "fitness workout"
	case NicheAITech:
		return "AI technology tutorial"
	}
	return string(n)
}

// Thumbnail describes the visual makeup of a video thumbnail. Without
// image analysis the fields are inferred from title and niche.
type Thumbnail struct {
	HasFace bool     `json:"has_face"`
	HasText bool     `json:"has_text"`
	Colors  []string `json:"colors"`
}

// ScriptStructure carries per-video script measurements when a transcript
// has been analyzed. Pointer fields distinguish "absent" from zero so the
// aggregator can skip records that never supplied a value.
type ScriptStructure struct {
	HookWordCount       *int     `json:"hook_word_count,omitempty"`
	SectionCount        *int     `json:"section_count,omitempty"`
	WordsPerMinute      *float64 `json:"words_per_minute,omitempty"`
	HasClearTransitions *bool    `json:"has_clear_transitions,omitempty"`
	HasCTA              *bool    `json:"has_cta,omitempty"`
}

// EngagementMetrics holds view-normalized ratios, computed only when the
// view count is positive.
type EngagementMetrics struct {
	LikeRatio    float64 `json:"like_ratio"`
	CommentRatio float64 `json:"comment_ratio"`
}

// ChannelData is the owning channel's statistics at fetch time.
type ChannelData struct {
	SubscriberCount int64 `json:"subscriber_count"`
	VideoCount      int64 `json:"video_count"`
	TotalViews      int64 `json:"total_views"`
}

// RichData carries SEO extras from the API response.
type RichData struct {
	Keywords   []string `json:"keywords"`
	CategoryID string   `json:"category_id"`
	HasCaption bool     `json:"has_caption"`
}

// DetectedPatterns names the per-video lexical patterns found at fetch time.
type DetectedPatterns struct {
	TitlePatterns       []string `json:"title_patterns,omitempty"`
	DescriptionPatterns []string `json:"description_patterns,omitempty"`
	EngagementPatterns  []string `json:"engagement_patterns,omitempty"`
}

// VideoRecord is one stored competitor video. Records are append-only:
// fields may be back-filled later (transcript, ctr) but never removed.
type VideoRecord struct {
	Title       string    `json:"title"`
	Channel     string    `json:"channel"`
	URL         string    `json:"url"`
	VideoID     string    `json:"video_id"`
	Views       int64     `json:"views"`
	Likes       int64     `json:"likes"`
	Comments    int64     `json:"comments"`
	Description string    `json:"description"`
	Thumbnail   Thumbnail `json:"thumbnail"`
	UploadDate  string    `json:"upload_date"`
	Duration    int       `json:"duration"` // seconds

	// Optional analytics only the channel owner can export.
	CTR             *float64         `json:"ctr,omitempty"`
	Retention       *float64         `json:"retention,omitempty"`
	RetentionPoints []RetentionPoint `json:"retention_points,omitempty"`

	Transcript      string             `json:"transcript,omitempty"`
	ScriptStructure *ScriptStructure   `json:"script_structure,omitempty"`
	Engagement      *EngagementMetrics `json:"engagement_metrics,omitempty"`
	ChannelData     *ChannelData       `json:"channel_data,omitempty"`
	RichData        *RichData          `json:"rich_data,omitempty"`
	Patterns        *DetectedPatterns  `json:"detected_patterns,omitempty"`

	DateAdded string `json:"date_added"`
}

// RetentionPoint marks a spot in the audience-retention curve, exported
// from the channel owner's analytics.
type RetentionPoint struct {
	Type            string `json:"type"` // "drop" or "spike"
	PositionPercent int    `json:"position_percent"`
}

// Comment is a top-level viewer comment kept with per-video analysis files.
type Comment struct {
	Author      string `json:"author"`
	Text        string `json:"text"`
	LikeCount   int64  `json:"like_count"`
	PublishedAt string `json:"published_at"`
}
