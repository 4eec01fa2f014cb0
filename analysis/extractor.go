package analysis

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"content-optimizer/internal/models"
)

var (
	listicleRe = regexp.MustCompile(`^\d+\s`)
	wordRe     = regexp.MustCompile(`\b[a-z]{3,15}\b`)
)

// Extractor derives pattern reports from stored records. MinSample suppresses
// the CTR group comparison when either group has fewer samples; below 2 the
// guard is off and comparisons are reported as-is.
type Extractor struct {
	MinSample int
}

// TitlePatternReport summarizes how a niche's competitors construct titles.
type TitlePatternReport struct {
	TotalVideos     int                     `json:"total_videos"`
	AvgWordCount    float64                 `json:"avg_word_count"`
	PatternUsage    map[string]float64      `json:"pattern_usage"` // percentages
	CommonWords     []models.KeywordCount   `json:"common_words"`
	Performance     *TitlePerformance       `json:"performance,omitempty"`
	Recommendations []models.Recommendation `json:"recommendations"`
}

// TitlePerformance compares CTR across title groupings. Only present when
// enough records carry CTR data.
type TitlePerformance struct {
	HowToAvgCTR  float64        `json:"how_to_avg_ctr"`
	OtherAvgCTR  float64        `json:"other_avg_ctr"`
	Difference   float64        `json:"difference"`
	HowToCount   int            `json:"how_to_count"`
	OtherCount   int            `json:"other_count"`
	WordCountCTR []WordCountCTR `json:"word_count_ctr,omitempty"`
}

// WordCountCTR is the average CTR of titles at one word count.
type WordCountCTR struct {
	WordCount int     `json:"word_count"`
	AvgCTR    float64 `json:"avg_ctr"`
	Samples   int     `json:"samples"`
}

// titleClasses is the exclusive classification chain: the first matching
// class wins. i_personal and you_focused are checked independently after.
var titleClasses = []struct {
	name  string
	match func(lower string) bool
}{
	{"how_to", func(lower string) bool {
		return strings.HasPrefix(lower, "how to") || strings.HasPrefix(lower, "how i")
	}},
	{"listicle", func(lower string) bool {
		return listicleRe.MatchString(lower) || strings.Contains(lower, "ways to") || strings.Contains(lower, "tips for")
	}},
	{"question", func(lower string) bool {
		return strings.HasSuffix(strings.TrimSpace(lower), "?") ||
			strings.HasPrefix(lower, "why") || strings.HasPrefix(lower, "what")
	}},
}

// TitlePatterns classifies every stored title and correlates the classes
// with CTR where the data carries it.
func (e *Extractor) TitlePatterns(videos []models.VideoRecord, niche models.Niche) (*TitlePatternReport, error) {
	if len(videos) == 0 {
		return nil, ErrNoData
	}

	counts := map[string]int{}
	freq := map[string]int{}
	var order []string
	totalWords := 0

	for _, v := range videos {
		lower := strings.ToLower(v.Title)
		totalWords += len(strings.Fields(lower))

		for _, c := range titleClasses {
			if c.match(lower) {
				counts[c.name]++
				break
			}
		}

		if strings.HasPrefix(lower, "i ") || strings.Contains(lower, "i tried") || strings.Contains(lower, "i tested") {
			counts["i_personal"]++
		}
		// Token-level match, so "youtube" is not audience-focused.
		for _, w := range strings.Fields(lower) {
			if w == "you" || w == "your" {
				counts["you_focused"]++
				break
			}
		}

		for _, w := range wordRe.FindAllString(lower, -1) {
			if _, seen := freq[w]; !seen {
				order = append(order, w)
			}
			freq[w]++
		}
	}

	n := len(videos)
	if n < 1 {
		n = 1
	}
	// "statement" closes out the classification table but has no
	// predicate of its own; it stays at zero, matching the stored
	// report shape the rest of the tooling expects.
	usage := make(map[string]float64, len(counts)+1)
	for _, name := range []string{"how_to", "listicle", "question", "statement", "i_personal", "you_focused"} {
		usage[name] = float64(counts[name]) / float64(n) * 100
	}

	common := make([]models.KeywordCount, 0, len(order))
	for _, w := range order {
		common = append(common, models.KeywordCount{Word: w, Count: freq[w]})
	}
	sort.SliceStable(common, func(i, j int) bool { return common[i].Count > common[j].Count })
	if len(common) > 20 {
		common = common[:20]
	}

	report := &TitlePatternReport{
		TotalVideos:  len(videos),
		AvgWordCount: float64(totalWords) / float64(n),
		PatternUsage: usage,
		CommonWords:  common,
	}
	report.Performance = titlePerformance(videos, e.MinSample)
	report.Recommendations = titleRecommendations(report)
	return report, nil
}

func titlePerformance(videos []models.VideoRecord, minSample int) *TitlePerformance {
	var howToSum, otherSum float64
	var howToN, otherN int
	byWC := map[int]*WordCountCTR{}

	for _, v := range videos {
		if v.CTR == nil {
			continue
		}
		lower := strings.ToLower(v.Title)
		if titleClasses[0].match(lower) {
			howToSum += *v.CTR
			howToN++
		} else {
			otherSum += *v.CTR
			otherN++
		}

		wc := len(strings.Fields(v.Title))
		if wc >= 3 && wc <= 14 {
			b, ok := byWC[wc]
			if !ok {
				b = &WordCountCTR{WordCount: wc}
				byWC[wc] = b
			}
			b.AvgCTR += *v.CTR
			b.Samples++
		}
	}

	if howToN == 0 && otherN == 0 {
		return nil
	}
	// A handful of CTR samples per group makes the averages noise, not
	// signal; suppress the comparison rather than recommend off it.
	if minSample >= 2 && (howToN < minSample || otherN < minSample) {
		return nil
	}

	perf := &TitlePerformance{HowToCount: howToN, OtherCount: otherN}
	if howToN > 0 {
		perf.HowToAvgCTR = howToSum / float64(howToN)
	}
	if otherN > 0 {
		perf.OtherAvgCTR = otherSum / float64(otherN)
	}
	perf.Difference = perf.HowToAvgCTR - perf.OtherAvgCTR

	wcs := make([]int, 0, len(byWC))
	for wc := range byWC {
		wcs = append(wcs, wc)
	}
	sort.Ints(wcs)
	for _, wc := range wcs {
		b := byWC[wc]
		perf.WordCountCTR = append(perf.WordCountCTR, WordCountCTR{
			WordCount: wc,
			AvgCTR:    b.AvgCTR / float64(b.Samples),
			Samples:   b.Samples,
		})
	}
	return perf
}

func titleRecommendations(r *TitlePatternReport) []models.Recommendation {
	var recs []models.Recommendation

	if p := r.Performance; p != nil {
		if p.Difference > 1 {
			recs = append(recs, models.Recommendation{
				Element: "title", Type: "structure",
				Recommendation: fmt.Sprintf("How-to titles outperform others by %.1f%% CTR, lean into them", p.Difference),
				Priority:       "high",
			})
		} else if p.Difference < -1 {
			recs = append(recs, models.Recommendation{
				Element: "title", Type: "structure",
				Recommendation: fmt.Sprintf("Non how-to titles outperform by %.1f%% CTR, vary your formats", -p.Difference),
				Priority:       "high",
			})
		}
		if len(p.WordCountCTR) > 0 {
			best := p.WordCountCTR[0]
			for _, b := range p.WordCountCTR[1:] {
				if b.AvgCTR > best.AvgCTR {
					best = b
				}
			}
			recs = append(recs, models.Recommendation{
				Element: "title", Type: "length",
				Recommendation: fmt.Sprintf("Titles around %d words show the best CTR (%.1f%%)", best.WordCount, best.AvgCTR),
				Priority:       "medium",
			})
		}
	}

	for _, name := range []string{"how_to", "listicle", "question"} {
		pct := r.PatternUsage[name]
		if pct > 40 {
			recs = append(recs, models.Recommendation{
				Element: "title", Type: "saturation",
				Recommendation: fmt.Sprintf("%s titles are saturated (%.1f%% of competitors), differentiate to stand out", name, pct),
				Priority:       "medium",
			})
		} else if pct < 10 {
			recs = append(recs, models.Recommendation{
				Element: "title", Type: "opportunity",
				Recommendation: fmt.Sprintf("%s titles are rare (%.1f%%), an underused format worth testing", name, pct),
				Priority:       "low",
			})
		}
	}

	return recs
}

// ThumbnailPatternReport summarizes thumbnail composition across a niche.
type ThumbnailPatternReport struct {
	TotalThumbnails int                     `json:"total_thumbnails"`
	FacePct         float64                 `json:"face_pct"`
	TextPct         float64                 `json:"text_pct"`
	CommonColors    []models.KeywordCount   `json:"common_colors"`
	Recommendations []models.Recommendation `json:"recommendations"`
}

// ThumbnailPatterns reports face and text presence plus the color palette.
func (e *Extractor) ThumbnailPatterns(videos []models.VideoRecord, niche models.Niche) (*ThumbnailPatternReport, error) {
	if len(videos) == 0 {
		return nil, ErrNoData
	}

	var faces, texts int
	colorFreq := map[string]int{}
	var colorOrder []string

	for _, v := range videos {
		if v.Thumbnail.HasFace {
			faces++
		}
		if v.Thumbnail.HasText {
			texts++
		}
		for _, c := range v.Thumbnail.Colors {
			c = strings.ToLower(c)
			if _, seen := colorFreq[c]; !seen {
				colorOrder = append(colorOrder, c)
			}
			colorFreq[c]++
		}
	}

	n := len(videos)
	if n < 1 {
		n = 1
	}
	colors := make([]models.KeywordCount, 0, len(colorOrder))
	for _, c := range colorOrder {
		colors = append(colors, models.KeywordCount{Word: c, Count: colorFreq[c]})
	}
	sort.SliceStable(colors, func(i, j int) bool { return colors[i].Count > colors[j].Count })

	report := &ThumbnailPatternReport{
		TotalThumbnails: len(videos),
		FacePct:         float64(faces) / float64(n) * 100,
		TextPct:         float64(texts) / float64(n) * 100,
		CommonColors:    colors,
	}

	if report.FacePct > 60 {
		report.Recommendations = append(report.Recommendations, models.Recommendation{
			Element: "thumbnail", Type: "composition",
			Recommendation: fmt.Sprintf("%.0f%% of competitor thumbnails show a face, include one", report.FacePct),
			Priority:       "high",
		})
	}
	if report.TextPct > 60 {
		report.Recommendations = append(report.Recommendations, models.Recommendation{
			Element: "thumbnail", Type: "composition",
			Recommendation: "Text overlays are standard in this niche, add a short readable phrase",
			Priority:       "medium",
		})
	}
	if len(colors) > 0 {
		top := colors
		if len(top) > 3 {
			top = top[:3]
		}
		names := make([]string, len(top))
		for i, c := range top {
			names[i] = c.Word
		}
		report.Recommendations = append(report.Recommendations, models.Recommendation{
			Element: "thumbnail", Type: "color",
			Recommendation: "Dominant niche palette: " + strings.Join(names, ", "),
			Priority:       "low",
		})
	}

	return report, nil
}

// DropOffBucket is one 10% slice of video runtime and how many drop points
// land in it across the niche.
type DropOffBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// RetentionPatternReport summarizes audience retention where records carry it.
type RetentionPatternReport struct {
	VideosAnalyzed   int                     `json:"videos_analyzed"`
	AvgRetention     float64                 `json:"avg_retention,omitempty"`
	DropOffPattern   []DropOffBucket         `json:"drop_off_pattern,omitempty"`
	CriticalSections []string                `json:"critical_sections,omitempty"`
	Recommendations  []models.Recommendation `json:"recommendations"`
}

// RetentionPatterns histograms drop points into 10% runtime buckets and
// averages overall retention. Records without retention data are skipped,
// not treated as zero.
func (e *Extractor) RetentionPatterns(videos []models.VideoRecord, niche models.Niche) (*RetentionPatternReport, error) {
	if len(videos) == 0 {
		return nil, ErrNoData
	}

	var retentionSum float64
	var withData, withScalar int
	buckets := make([]DropOffBucket, 10)
	for i := range buckets {
		buckets[i].Range = fmt.Sprintf("%d%%-%d%%", i*10, (i+1)*10)
	}

	for _, v := range videos {
		hasData := false
		if v.Retention != nil {
			retentionSum += *v.Retention
			withScalar++
			hasData = true
		}
		for _, p := range v.RetentionPoints {
			if p.Type != "drop" {
				continue
			}
			hasData = true
			i := p.PositionPercent / 10
			if i < 0 {
				i = 0
			}
			if i > 9 {
				i = 9
			}
			buckets[i].Count++
		}
		if hasData {
			withData++
		}
	}
	if withData == 0 {
		return nil, fmt.Errorf("retention analysis for %s: %w", niche, ErrNoData)
	}

	report := &RetentionPatternReport{VideosAnalyzed: withData}
	if withScalar > 0 {
		report.AvgRetention = retentionSum / float64(withScalar)
	}

	// The two heaviest buckets are the critical sections. Ties resolve to
	// the earlier runtime slice.
	ranked := make([]DropOffBucket, len(buckets))
	copy(ranked, buckets)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })

	var totalDrops int
	for _, b := range buckets {
		totalDrops += b.Count
	}
	if totalDrops > 0 {
		report.DropOffPattern = buckets
		report.CriticalSections = []string{ranked[0].Range, ranked[1].Range}
		report.Recommendations = append(report.Recommendations, models.Recommendation{
			Element: "script", Type: "retention_risk",
			Recommendation: fmt.Sprintf("Pay special attention to content during %s, most videos in your niche lose viewers there", ranked[0].Range),
			Priority:       "high",
		})
	}

	if withScalar > 0 {
		if report.AvgRetention < 40 {
			report.Recommendations = append(report.Recommendations, models.Recommendation{
				Element: "script", Type: "retention",
				Recommendation: fmt.Sprintf("Niche average retention is low (%.1f%%), stronger hooks can win here", report.AvgRetention),
				Priority:       "high",
			})
		} else {
			report.Recommendations = append(report.Recommendations, models.Recommendation{
				Element: "script", Type: "retention",
				Recommendation: fmt.Sprintf("Niche average retention is %.1f%%, match the pacing of the top performers", report.AvgRetention),
				Priority:       "medium",
			})
		}
	}
	return report, nil
}
