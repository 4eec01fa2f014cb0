package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"content-optimizer/internal/models"
)

var (
	digitRe      = regexp.MustCompile(`\d+`)
	timestampRe  = regexp.MustCompile(`\d+:\d+`)
	linkRe       = regexp.MustCompile(`https?://`)
	hashtagRe    = regexp.MustCompile(`#\w+`)
	sectionRe    = regexp.MustCompile(`[A-Z][A-Z\s]+:`)
	emotionWords = []string{"amazing", "incredible", "shocking", "surprising", "best", "worst"}
)

// DetectVideoPatterns surfaces the structural signals of a single video:
// title constructions, description formatting, and engagement ratios. The
// engagement ratios are only computed when the view count is positive.
func DetectVideoPatterns(rec models.VideoRecord) models.DetectedPatterns {
	var out models.DetectedPatterns

	title := strings.ToLower(rec.Title)
	if digitRe.MatchString(rec.Title) {
		out.TitlePatterns = append(out.TitlePatterns, "number_in_title")
	}
	if strings.Contains(rec.Title, "?") {
		out.TitlePatterns = append(out.TitlePatterns, "question_title")
	}
	for _, w := range emotionWords {
		if strings.Contains(title, w) {
			out.TitlePatterns = append(out.TitlePatterns, "emotional_title")
			break
		}
	}
	if strings.HasPrefix(title, "how to") || strings.HasPrefix(title, "how i") {
		out.TitlePatterns = append(out.TitlePatterns, "how_to_title")
	}

	if timestampRe.MatchString(rec.Description) {
		out.DescriptionPatterns = append(out.DescriptionPatterns, "timestamps")
	}
	if linkRe.MatchString(rec.Description) {
		out.DescriptionPatterns = append(out.DescriptionPatterns, "external_links")
	}
	if hashtagRe.MatchString(rec.Description) {
		out.DescriptionPatterns = append(out.DescriptionPatterns, "hashtags")
	}
	if sectionRe.MatchString(rec.Description) {
		out.DescriptionPatterns = append(out.DescriptionPatterns, "structured_sections")
	}

	if rec.Views > 0 {
		likeRatio := float64(rec.Likes) / float64(rec.Views) * 100
		commentRatio := float64(rec.Comments) / float64(rec.Views) * 100
		out.EngagementPatterns = append(out.EngagementPatterns,
			fmt.Sprintf("like_ratio:%.2f%%", likeRatio),
			fmt.Sprintf("comment_ratio:%.2f%%", commentRatio),
		)
	}

	return out
}

// EngagementRatios computes the like and comment ratios for a record.
// Returns nil when the view count is zero so callers never divide by zero.
func EngagementRatios(rec models.VideoRecord) *models.EngagementMetrics {
	if rec.Views <= 0 {
		return nil
	}
	return &models.EngagementMetrics{
		LikeRatio:    float64(rec.Likes) / float64(rec.Views) * 100,
		CommentRatio: float64(rec.Comments) / float64(rec.Views) * 100,
	}
}
