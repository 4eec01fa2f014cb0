package youtube

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"content-optimizer/internal/models"
	"content-optimizer/shared/config"

	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Client wraps the YouTube Data API v3. All calls are sequential and paced
// by a shared rate limiter so batch runs stay inside the daily quota.
type Client struct {
	service *youtube.Service
	config  *config.YouTubeConfig
	limiter *rate.Limiter
}

func NewClient(ctx context.Context, cfg *config.YouTubeConfig) (*Client, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{
		service: service,
		config:  cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}, nil
}

func (c *Client) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	return nil
}

// VideoDetails is the merged videos.list + channels.list response for one video.
type VideoDetails struct {
	VideoID      string
	Title        string
	ChannelID    string
	ChannelTitle string
	PublishedAt  string
	Description  string
	Tags         []string
	CategoryID   string
	Duration     int // seconds
	HasCaption   bool
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
	Channel      *models.ChannelData
}

// VideoDetails fetches snippet, statistics and content details for a video,
// plus the owning channel's statistics.
func (c *Client) VideoDetails(ctx context.Context, videoID string) (*VideoDetails, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get video details: %w", err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("video %s not found or API quota exceeded", videoID)
	}

	item := resp.Items[0]
	details := &VideoDetails{
		VideoID:      item.Id,
		Title:        item.Snippet.Title,
		ChannelID:    item.Snippet.ChannelId,
		ChannelTitle: item.Snippet.ChannelTitle,
		PublishedAt:  item.Snippet.PublishedAt,
		Description:  item.Snippet.Description,
		Tags:         item.Snippet.Tags,
		CategoryID:   item.Snippet.CategoryId,
	}
	if item.ContentDetails != nil {
		details.Duration = parseDurationSeconds(item.ContentDetails.Duration)
		details.HasCaption = strings.EqualFold(item.ContentDetails.Caption, "true")
	}
	if item.Statistics != nil {
		details.ViewCount = int64(item.Statistics.ViewCount)
		details.LikeCount = int64(item.Statistics.LikeCount)
		details.CommentCount = int64(item.Statistics.CommentCount)
	}

	channel, err := c.channelStats(ctx, details.ChannelID)
	if err != nil {
		// Channel stats are an enrichment, not a requirement.
		log.Printf("Failed to get channel stats for %s: %v", details.ChannelID, err)
	} else {
		details.Channel = channel
	}

	return details, nil
}

func (c *Client) channelStats(ctx context.Context, channelID string) (*models.ChannelData, error) {
	if channelID == "" {
		return nil, fmt.Errorf("empty channel ID")
	}
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.service.Channels.List([]string{"statistics"}).
		Id(channelID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel: %w", err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Statistics == nil {
		return nil, fmt.Errorf("channel %s has no statistics", channelID)
	}

	stats := resp.Items[0].Statistics
	return &models.ChannelData{
		SubscriberCount: int64(stats.SubscriberCount),
		VideoCount:      int64(stats.VideoCount),
		TotalViews:      int64(stats.ViewCount),
	}, nil
}

// SearchResult is one hit from a search.list call, before detail lookup.
type SearchResult struct {
	VideoID      string
	Title        string
	ChannelTitle string
	PublishedAt  string
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
}

// TopVideos searches for the most-viewed videos matching a query and
// resolves their statistics in one batched videos.list call.
func (c *Client) TopVideos(ctx context.Context, query string, maxResults int64) ([]SearchResult, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	searchResp, err := c.service.Search.List([]string{"snippet"}).
		Q(query).Type("video").Order("viewCount").
		MaxResults(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}
	if len(searchResp.Items) == 0 {
		return nil, nil
	}

	var ids []string
	for _, item := range searchResp.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	videosResp, err := c.service.Videos.List([]string{"snippet", "statistics"}).
		Id(strings.Join(ids, ",")).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get video statistics: %w", err)
	}

	var results []SearchResult
	for _, item := range videosResp.Items {
		result := SearchResult{
			VideoID:      item.Id,
			Title:        item.Snippet.Title,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  item.Snippet.PublishedAt,
		}
		if item.Statistics != nil {
			result.ViewCount = int64(item.Statistics.ViewCount)
			result.LikeCount = int64(item.Statistics.LikeCount)
			result.CommentCount = int64(item.Statistics.CommentCount)
		}
		results = append(results, result)
	}

	return results, nil
}

// ChannelVideos lists a channel's most recent uploads.
func (c *Client) ChannelVideos(ctx context.Context, channelID string, maxResults int64) ([]SearchResult, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.service.Search.List([]string{"snippet"}).
		ChannelId(channelID).Type("video").Order("date").
		MaxResults(maxResults).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list channel videos: %w", err)
	}

	var results []SearchResult
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		results = append(results, SearchResult{
			VideoID:      item.Id.VideoId,
			Title:        item.Snippet.Title,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  item.Snippet.PublishedAt,
		})
	}

	return results, nil
}

// TopComments fetches the most relevant top-level comments for a video.
// Comments being disabled is reported as an empty slice, not an error.
func (c *Client) TopComments(ctx context.Context, videoID string, maxResults int64) ([]models.Comment, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.service.CommentThreads.List([]string{"snippet"}).
		VideoId(videoID).Order("relevance").
		MaxResults(maxResults).Context(ctx).Do()
	if err != nil {
		if strings.Contains(err.Error(), "disabled") {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	var comments []models.Comment
	for _, item := range resp.Items {
		if item.Snippet == nil || item.Snippet.TopLevelComment == nil {
			continue
		}
		snippet := item.Snippet.TopLevelComment.Snippet
		comments = append(comments, models.Comment{
			Author:      snippet.AuthorDisplayName,
			Text:        snippet.TextDisplay,
			LikeCount:   snippet.LikeCount,
			PublishedAt: snippet.PublishedAt,
		})
	}

	return comments, nil
}

// ExtractVideoID pulls the video ID out of the usual YouTube URL shapes,
// or returns the input unchanged when it already looks like a bare ID.
func ExtractVideoID(rawURL string) (string, error) {
	if !strings.Contains(rawURL, "/") && !strings.Contains(rawURL, ".") {
		return rawURL, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("could not parse URL %s: %w", rawURL, err)
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	switch {
	case host == "youtu.be":
		id := strings.Trim(u.Path, "/")
		if id != "" {
			return id, nil
		}
	case strings.HasSuffix(host, "youtube.com"):
		if u.Path == "/watch" {
			if v := u.Query().Get("v"); v != "" {
				return v, nil
			}
		}
		for _, prefix := range []string{"/embed/", "/v/", "/shorts/"} {
			if strings.HasPrefix(u.Path, prefix) {
				return strings.Trim(strings.TrimPrefix(u.Path, prefix), "/"), nil
			}
		}
	}

	return "", fmt.Errorf("could not extract video ID from URL: %s", rawURL)
}

var durationRe = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// parseDurationSeconds converts an ISO 8601 duration ("PT2H15M30S") to seconds.
func parseDurationSeconds(duration string) int {
	if duration == "" {
		return 0
	}

	matches := durationRe.FindStringSubmatch(duration)
	if len(matches) == 0 {
		return 0
	}

	var totalSeconds int
	if matches[1] != "" {
		if hours, err := strconv.Atoi(matches[1]); err == nil {
			totalSeconds += hours * 3600
		}
	}
	if matches[2] != "" {
		if minutes, err := strconv.Atoi(matches[2]); err == nil {
			totalSeconds += minutes * 60
		}
	}
	if matches[3] != "" {
		if seconds, err := strconv.Atoi(matches[3]); err == nil {
			totalSeconds += seconds
		}
	}

	return totalSeconds
}

// WatchURL reconstructs the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}
