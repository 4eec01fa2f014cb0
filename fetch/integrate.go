package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"content-optimizer/analysis"
	"content-optimizer/internal/models"
	"content-optimizer/shared/storage"
	"content-optimizer/youtube"
)

// Integrator pulls videos from the API, turns responses into stored records,
// and writes per-video analysis files. The transcript fetcher is optional;
// without it records still carry caption availability but no script data.
type Integrator struct {
	Client      *youtube.Client
	Store       *storage.VideoStore
	Transcripts *youtube.TranscriptFetcher
}

// VideoAnalysis is the per-video report saved next to the database.
type VideoAnalysis struct {
	Record       models.VideoRecord     `json:"video_data"`
	Comments     []models.Comment       `json:"top_comments,omitempty"`
	Captions     []youtube.CaptionTrack `json:"caption_tracks,omitempty"`
	AnalyzedAt   string                 `json:"analyzed_at"`
	AnalysisFile string                 `json:"-"`
}

// AnalyzeVideo fetches one video, stores its record in the niche database,
// and writes the <id>_api_analysis.json file.
func (in *Integrator) AnalyzeVideo(ctx context.Context, videoURL string, niche models.Niche) (*VideoAnalysis, error) {
	videoID, err := youtube.ExtractVideoID(videoURL)
	if err != nil {
		return nil, err
	}

	details, err := in.Client.VideoDetails(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("fetching video %s: %w", videoID, err)
	}

	comments, err := in.Client.TopComments(ctx, videoID, 10)
	if err != nil {
		log.Printf("Comments unavailable for %s: %v", videoID, err)
	}

	captions, err := in.Client.CaptionTracks(ctx, videoID)
	if err != nil {
		log.Printf("Caption listing failed for %s: %v", videoID, err)
	}

	record := in.buildRecord(ctx, details, captions, niche)

	if err := in.Store.Append(niche, record); err != nil {
		return nil, err
	}

	result := &VideoAnalysis{
		Record:     record,
		Comments:   comments,
		Captions:   captions,
		AnalyzedAt: time.Now().Format("2006-01-02 15:04:05"),
	}
	path, err := in.Store.WriteAnalysisFile(videoID+"_api_analysis.json", result)
	if err != nil {
		return nil, err
	}
	result.AnalysisFile = path
	return result, nil
}

// buildRecord maps an API response onto a stored record, inferring thumbnail
// composition and measuring the script when a transcript can be pulled.
func (in *Integrator) buildRecord(ctx context.Context, d *youtube.VideoDetails, captions []youtube.CaptionTrack, niche models.Niche) models.VideoRecord {
	record := models.VideoRecord{
		Title:       d.Title,
		Channel:     d.ChannelTitle,
		URL:         youtube.WatchURL(d.VideoID),
		VideoID:     d.VideoID,
		Views:       d.ViewCount,
		Likes:       d.LikeCount,
		Comments:    d.CommentCount,
		Description: d.Description,
		UploadDate:  d.PublishedAt,
		Duration:    d.Duration,
		Thumbnail:   InferThumbnail(d.Title, niche),
		ChannelData: d.Channel,
		RichData: &models.RichData{
			Keywords:   d.Tags,
			CategoryID: d.CategoryID,
			HasCaption: d.HasCaption,
		},
	}

	patterns := analysis.DetectVideoPatterns(record)
	record.Patterns = &patterns
	record.Engagement = analysis.EngagementRatios(record)

	if in.Transcripts != nil {
		if track, ok := youtube.PickEnglishTrack(captions); ok {
			transcript, err := in.Transcripts.Download(ctx, track.ID)
			if err != nil {
				log.Printf("Transcript download failed for %s: %v", d.VideoID, err)
			} else {
				record.Transcript = transcript
				record.ScriptStructure = analysis.MeasureScriptStructure(transcript, d.Duration)
			}
		}
	}

	return record
}

// InferThumbnail guesses thumbnail composition from the title and niche.
// Creator-led niches default to face thumbnails; first-person titles signal
// an on-camera creator in the rest. Text overlays are near universal on
// competitive thumbnails.
func InferThumbnail(title string, niche models.Niche) models.Thumbnail {
	lower := strings.ToLower(title)
	hasFace := niche == models.NicheHealthFitness || niche == models.NicheProductivity
	if !hasFace {
		for _, w := range strings.Fields(lower) {
			if w == "i" || w == "my" || w == "me" {
				hasFace = true
				break
			}
		}
	}
	return models.Thumbnail{
		HasFace: hasFace,
		HasText: true,
		Colors:  []string{"blue", "red", "white"},
	}
}

// BatchSummary is the report written after a selective batch import.
type BatchSummary struct {
	Niche      models.Niche `json:"niche"`
	Query      string       `json:"query"`
	Found      int          `json:"found"`
	Skipped    int          `json:"skipped_duplicates"`
	Imported   []string     `json:"imported_video_ids"`
	Failed     []string     `json:"failed_video_ids,omitempty"`
	ImportedAt string       `json:"imported_at"`
}

// FetchTopVideos imports the top search results for a niche, skipping videos
// already in the database, and writes a batch summary file.
func (in *Integrator) FetchTopVideos(ctx context.Context, niche models.Niche, query string, maxResults int64) (*BatchSummary, error) {
	if query == "" {
		query = niche.SearchTerm()
	}

	results, err := in.Client.TopVideos(ctx, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	return in.importResults(ctx, niche, query, results)
}

// FetchChannelVideos imports a channel's recent uploads into a niche.
func (in *Integrator) FetchChannelVideos(ctx context.Context, niche models.Niche, channelID string, maxResults int64) (*BatchSummary, error) {
	results, err := in.Client.ChannelVideos(ctx, channelID, maxResults)
	if err != nil {
		return nil, fmt.Errorf("listing channel %s: %w", channelID, err)
	}
	return in.importResults(ctx, niche, "channel:"+channelID, results)
}

func (in *Integrator) importResults(ctx context.Context, niche models.Niche, query string, results []youtube.SearchResult) (*BatchSummary, error) {
	known, err := in.Store.VideoIDs(niche)
	if err != nil {
		return nil, err
	}

	summary := &BatchSummary{
		Niche: niche,
		Query: query,
		Found: len(results),
	}
	for _, r := range results {
		if known[r.VideoID] {
			summary.Skipped++
			continue
		}
		if _, err := in.AnalyzeVideo(ctx, r.VideoID, niche); err != nil {
			log.Printf("Import failed for %s: %v", r.VideoID, err)
			summary.Failed = append(summary.Failed, r.VideoID)
			continue
		}
		summary.Imported = append(summary.Imported, r.VideoID)
	}
	summary.ImportedAt = time.Now().Format("2006-01-02 15:04:05")

	name := fmt.Sprintf("api_batch_import_%s_%d.json", niche, time.Now().Unix())
	if _, err := in.Store.WriteAnalysisFile(name, summary); err != nil {
		return nil, err
	}
	return summary, nil
}
