package fetch

import (
	"os"
	"path/filepath"
	"testing"

	"content-optimizer/internal/models"
	"content-optimizer/shared/storage"
)

func TestImportCSV(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewVideoStore(dir)
	if err != nil {
		t.Fatalf("NewVideoStore: %v", err)
	}

	csvPath := filepath.Join(dir, "import.csv")
	data := "title,channel,views,likes,comments,ctr,retention,thumbnail_has_face,thumbnail_colors\n" +
		"How to Plan Your Week,Planner Pro,120000,6000,300,5.4,47.5,true,blue|white\n" +
		",Missing Title,10,1,0,,,false,\n" +
		"7 Tips for Deep Work,Focus Lab,90000,4500,210,,,yes,red\n"
	if err := os.WriteFile(csvPath, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := ImportCSV(csvPath, models.NicheProductivity, store)
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if result.Imported != 2 || result.Skipped != 1 {
		t.Fatalf("imported/skipped = %d/%d, want 2/1", result.Imported, result.Skipped)
	}

	videos, err := store.Videos(models.NicheProductivity)
	if err != nil {
		t.Fatalf("Videos: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("stored = %d, want 2", len(videos))
	}

	first := videos[0]
	if first.CTR == nil || *first.CTR != 5.4 {
		t.Errorf("ctr = %v, want 5.4", first.CTR)
	}
	if !first.Thumbnail.HasFace || len(first.Thumbnail.Colors) != 2 {
		t.Errorf("thumbnail = %+v", first.Thumbnail)
	}
	if first.Engagement == nil || first.Engagement.LikeRatio != 5 {
		t.Errorf("engagement = %+v, want like ratio 5", first.Engagement)
	}
	if first.Patterns == nil || len(first.Patterns.TitlePatterns) == 0 {
		t.Errorf("patterns = %+v, want how_to_title detected", first.Patterns)
	}
	if first.DateAdded == "" {
		t.Error("DateAdded not stamped")
	}

	second := videos[1]
	if second.CTR != nil {
		t.Errorf("blank ctr parsed as %v, want nil", *second.CTR)
	}
	if !second.Thumbnail.HasFace {
		t.Error("yes not accepted as true")
	}
}

func TestImportCSVBadNumber(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewVideoStore(dir)
	if err != nil {
		t.Fatalf("NewVideoStore: %v", err)
	}

	csvPath := filepath.Join(dir, "bad.csv")
	data := "title,views\nGood Row,100\nBad Row,lots\n"
	if err := os.WriteFile(csvPath, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := ImportCSV(csvPath, models.NicheAITech, store)
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if result.Imported != 1 || result.Skipped != 1 || len(result.Errors) != 1 {
		t.Errorf("result = %+v, want one import, one row error", result)
	}
}

func TestWriteCSVTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.csv")
	if err := WriteCSVTemplate(path); err != nil {
		t.Fatalf("WriteCSVTemplate: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("template is empty")
	}
	// Template round-trips through the importer.
	store, err := storage.NewVideoStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	result, err := ImportCSV(path, models.NicheProductivity, store)
	if err != nil {
		t.Fatalf("ImportCSV(template): %v", err)
	}
	if result.Imported != 1 {
		t.Errorf("template example row not importable: %+v", result)
	}
}
