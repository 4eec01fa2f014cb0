package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"content-optimizer/shared/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// CaptionTrack describes one available caption track for a video.
type CaptionTrack struct {
	ID        string `json:"id"`
	Language  string `json:"language"`
	TrackKind string `json:"track_kind"`
}

// CaptionTracks lists the caption tracks for a video. This works with the
// API key alone; downloading the actual text requires OAuth.
func (c *Client) CaptionTracks(ctx context.Context, videoID string) ([]CaptionTrack, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.service.Captions.List([]string{"snippet"}, videoID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list caption tracks: %w", err)
	}

	var tracks []CaptionTrack
	for _, item := range resp.Items {
		if item.Snippet == nil {
			continue
		}
		tracks = append(tracks, CaptionTrack{
			ID:        item.Id,
			Language:  item.Snippet.Language,
			TrackKind: item.Snippet.TrackKind,
		})
	}
	return tracks, nil
}

// PickEnglishTrack prefers an English track, falling back to the first one.
func PickEnglishTrack(tracks []CaptionTrack) (CaptionTrack, bool) {
	if len(tracks) == 0 {
		return CaptionTrack{}, false
	}
	for _, t := range tracks {
		if strings.HasPrefix(t.Language, "en") {
			return t, true
		}
	}
	return tracks[0], true
}

// TranscriptFetcher downloads caption track text through an OAuth-
// authenticated service. It is constructed lazily because most commands
// never need transcripts and the OAuth flow prompts the user.
type TranscriptFetcher struct {
	config      *config.YouTubeConfig
	oauthConfig *oauth2.Config

	mu      sync.Mutex
	service *youtube.Service
}

func NewTranscriptFetcher(cfg *config.YouTubeConfig) *TranscriptFetcher {
	return &TranscriptFetcher{
		config: cfg,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Scopes:       []string{"https://www.googleapis.com/auth/youtube.force-ssl"},
			Endpoint:     google.Endpoint,
		},
	}
}

// Download fetches the text of one caption track in SRT form and strips
// the cue numbering and timing lines, leaving plain transcript text.
func (f *TranscriptFetcher) Download(ctx context.Context, trackID string) (string, error) {
	service, err := f.authedService(ctx)
	if err != nil {
		return "", err
	}

	resp, err := service.Captions.Download(trackID).Tfmt("srt").Context(ctx).Download()
	if err != nil {
		return "", fmt.Errorf("failed to download caption track %s: %w", trackID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read caption body: %w", err)
	}

	return flattenSRT(string(body)), nil
}

func (f *TranscriptFetcher) authedService(ctx context.Context) (*youtube.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.service != nil {
		return f.service, nil
	}

	token, err := f.token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get OAuth token: %w", err)
	}

	source := &savingTokenSource{
		config:    f.oauthConfig,
		token:     token,
		tokenFile: f.config.TokenFile,
	}
	httpClient := oauth2.NewClient(ctx, source)

	service, err := youtube.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticated YouTube service: %w", err)
	}
	f.service = service
	return service, nil
}

// token loads a cached token, keeping expired ones that still carry a
// refresh token, and runs the device flow only when nothing usable exists.
func (f *TranscriptFetcher) token(ctx context.Context) (*oauth2.Token, error) {
	tok, err := tokenFromFile(f.config.TokenFile)
	if err == nil {
		if tok.RefreshToken != "" || tok.Valid() {
			return tok, nil
		}
	}

	log.Println("No cached OAuth token, starting device authorization...")
	resp, err := f.oauthConfig.DeviceAuth(ctx, oauth2.AccessTypeOffline)
	if err != nil {
		return nil, fmt.Errorf("unable to start device authorization: %w", err)
	}

	fmt.Printf("\nVisit %s and enter code: %s\n", resp.VerificationURI, resp.UserCode)
	fmt.Println("Waiting for authorization to complete... (Ctrl+C to cancel)")

	tok, err = f.oauthConfig.DeviceAccessToken(ctx, resp, oauth2.AccessTypeOffline)
	if err != nil {
		return nil, fmt.Errorf("device authorization did not complete: %w", err)
	}

	if err := saveToken(f.config.TokenFile, tok); err != nil {
		log.Printf("Warning: Failed to save token: %v", err)
	}
	return tok, nil
}

// savingTokenSource refreshes through the wrapped config and persists any
// refreshed token so it survives restarts.
type savingTokenSource struct {
	config    *oauth2.Config
	token     *oauth2.Token
	tokenFile string
	mu        sync.Mutex
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	newToken, err := s.config.TokenSource(context.Background(), s.token).Token()
	if err != nil {
		return nil, err
	}

	if newToken.AccessToken != s.token.AccessToken {
		log.Println("OAuth token refreshed, saving to file")
		s.token = newToken
		if err := saveToken(s.tokenFile, newToken); err != nil {
			log.Printf("Warning: Failed to save refreshed token: %v", err)
		}
	}

	return newToken, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("unable to create token directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache oauth token: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(token); err != nil {
		return fmt.Errorf("failed to encode oauth token: %w", err)
	}
	return nil
}

// flattenSRT strips SRT cue indices and timing lines, joining the caption
// text into a single whitespace-normalized string.
func flattenSRT(srt string) string {
	var parts []string
	for _, line := range strings.Split(srt, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isCueIndex(line) || strings.Contains(line, "-->") {
			continue
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}

func isCueIndex(line string) bool {
	for _, r := range line {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(line) > 0
}
