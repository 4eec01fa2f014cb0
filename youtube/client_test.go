package youtube

import "testing"

func TestParseDurationSeconds(t *testing.T) {
	tests := []struct {
		duration string
		want     int
	}{
		{"PT45S", 45},
		{"PT1M30S", 90},
		{"PT2H15M30S", 8130},
		{"PT3M", 180},
		{"PT1H", 3600},
		{"", 0},
		{"garbage", 0},
	}

	for _, tt := range tests {
		t.Run(tt.duration, func(t *testing.T) {
			if got := parseDurationSeconds(tt.duration); got != tt.want {
				t.Errorf("parseDurationSeconds(%q) = %d, want %d", tt.duration, got, tt.want)
			}
		})
	}
}

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"watch URL with params", "https://youtube.com/watch?v=abc123&t=42s", "abc123", false},
		{"short URL", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"short URL with query", "https://youtu.be/dQw4w9WgXcQ?si=xyz", "dQw4w9WgXcQ", false},
		{"embed URL", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"legacy v URL", "https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"shorts URL", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"bare ID", "dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"unrelated URL", "https://example.com/watch?v=nope", "", true},
		{"watch without v", "https://www.youtube.com/watch", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractVideoID(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ExtractVideoID(%q) = %q, want error", tt.url, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractVideoID(%q) error: %v", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestPickEnglishTrack(t *testing.T) {
	tracks := []CaptionTrack{
		{ID: "1", Language: "fr"},
		{ID: "2", Language: "en-US"},
		{ID: "3", Language: "de"},
	}

	track, ok := PickEnglishTrack(tracks)
	if !ok || track.ID != "2" {
		t.Errorf("PickEnglishTrack = %+v, want track 2", track)
	}

	track, ok = PickEnglishTrack(tracks[:1])
	if !ok || track.ID != "1" {
		t.Errorf("PickEnglishTrack fallback = %+v, want track 1", track)
	}

	if _, ok := PickEnglishTrack(nil); ok {
		t.Error("PickEnglishTrack(nil) should report no track")
	}
}

func TestFlattenSRT(t *testing.T) {
	srt := "1\n00:00:00,000 --> 00:00:02,000\nHey everyone welcome back\n\n2\n00:00:02,000 --> 00:00:04,500\nto the channel\n"
	want := "Hey everyone welcome back to the channel"
	if got := flattenSRT(srt); got != want {
		t.Errorf("flattenSRT = %q, want %q", got, want)
	}
}
