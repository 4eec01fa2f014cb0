package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"content-optimizer/analysis"
	"content-optimizer/internal/models"
	"content-optimizer/shared/storage"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewVideoStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewVideoStore: %v", err)
	}
	for _, title := range []string{"How to Focus Better", "5 Tips for Sleep"} {
		err := store.Append(models.NicheProductivity, models.VideoRecord{
			Title: title, VideoID: title, Views: 1000, Likes: 40,
		})
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	return New(store, nil, 0)
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := get(t, testServer(t), "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestNiches(t *testing.T) {
	w := get(t, testServer(t), "/api/niches")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Niches []struct {
			Niche      string `json:"niche"`
			VideoCount int    `json:"video_count"`
		} `json:"niches"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Niches) != 3 {
		t.Fatalf("niches = %d, want 3", len(body.Niches))
	}
	if body.Niches[0].Niche != "productivity" || body.Niches[0].VideoCount != 2 {
		t.Errorf("productivity entry = %+v", body.Niches[0])
	}
}

func TestVideosLimit(t *testing.T) {
	w := get(t, testServer(t), "/api/niches/productivity/videos?limit=1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Count  int                  `json:"count"`
		Videos []models.VideoRecord `json:"videos"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 2 || len(body.Videos) != 1 {
		t.Errorf("count = %d, returned = %d, want 2 and 1", body.Count, len(body.Videos))
	}
}

func TestVideosUnknownNiche(t *testing.T) {
	w := get(t, testServer(t), "/api/niches/gaming/videos")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestDNA(t *testing.T) {
	s := testServer(t)

	// No cached analysis yet.
	if w := get(t, s, "/api/niches/productivity/dna"); w.Code != http.StatusNotFound {
		t.Fatalf("status before caching = %d, want 404", w.Code)
	}

	videos, err := s.store.Videos(models.NicheProductivity)
	if err != nil {
		t.Fatalf("Videos: %v", err)
	}
	dna, err := analysis.BuildContentDNA(videos, models.NicheProductivity)
	if err != nil {
		t.Fatalf("BuildContentDNA: %v", err)
	}
	if _, err := s.store.SaveDNA(dna); err != nil {
		t.Fatalf("SaveDNA: %v", err)
	}

	w := get(t, s, "/api/niches/productivity/dna")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got models.ContentDNA
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.VideoCount != 2 || got.Niche != models.NicheProductivity {
		t.Errorf("dna = niche %s count %d", got.Niche, got.VideoCount)
	}
}
