package fetch

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"content-optimizer/analysis"
	"content-optimizer/internal/models"
	"content-optimizer/shared/storage"
)

// csvColumns is the template header. Only title is required; everything
// else is back-filled with zero values when blank.
var csvColumns = []string{
	"title", "channel", "url", "views", "likes", "comments",
	"description", "upload_date", "duration_seconds",
	"ctr", "retention", "thumbnail_has_face", "thumbnail_has_text", "thumbnail_colors",
}

// WriteCSVTemplate writes an import template with one example row.
func WriteCSVTemplate(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating template: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvColumns); err != nil {
		return err
	}
	example := []string{
		"How I Doubled My Output in 30 Days", "Example Channel",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"150000", "8200", "430",
		"A worked example row, replace it with your data.",
		"2026-01-15", "720",
		"6.5", "48.2", "true", "true", "blue|white",
	}
	if err := w.Write(example); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// ImportResult summarizes a CSV import run.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportCSV loads manually collected competitor data into a niche. Rows
// without a title are skipped; malformed numbers fail the row, not the file.
func ImportCSV(path string, niche models.Niche, store *storage.VideoStore) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := col["title"]; !ok {
		return nil, fmt.Errorf("%s has no title column", path)
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	result := &ImportResult{}
	line := 1
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			result.Skipped++
			continue
		}

		title := field(row, "title")
		if title == "" {
			result.Skipped++
			continue
		}

		record, err := rowToRecord(title, row, field)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			result.Skipped++
			continue
		}
		if err := store.Append(niche, record); err != nil {
			return result, err
		}
		result.Imported++
	}
	return result, nil
}

func rowToRecord(title string, row []string, field func([]string, string) string) (models.VideoRecord, error) {
	record := models.VideoRecord{
		Title:       title,
		Channel:     field(row, "channel"),
		URL:         field(row, "url"),
		Description: field(row, "description"),
		UploadDate:  field(row, "upload_date"),
	}

	var err error
	if record.Views, err = parseInt(field(row, "views")); err != nil {
		return record, fmt.Errorf("views: %w", err)
	}
	if record.Likes, err = parseInt(field(row, "likes")); err != nil {
		return record, fmt.Errorf("likes: %w", err)
	}
	if record.Comments, err = parseInt(field(row, "comments")); err != nil {
		return record, fmt.Errorf("comments: %w", err)
	}
	if dur, err := parseInt(field(row, "duration_seconds")); err != nil {
		return record, fmt.Errorf("duration_seconds: %w", err)
	} else {
		record.Duration = int(dur)
	}

	if s := field(row, "ctr"); s != "" {
		ctr, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return record, fmt.Errorf("ctr: %w", err)
		}
		record.CTR = &ctr
	}
	if s := field(row, "retention"); s != "" {
		ret, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return record, fmt.Errorf("retention: %w", err)
		}
		record.Retention = &ret
	}

	record.Thumbnail = models.Thumbnail{
		HasFace: parseBool(field(row, "thumbnail_has_face")),
		HasText: parseBool(field(row, "thumbnail_has_text")),
	}
	if colors := field(row, "thumbnail_colors"); colors != "" {
		record.Thumbnail.Colors = strings.Split(colors, "|")
	}

	patterns := analysis.DetectVideoPatterns(record)
	record.Patterns = &patterns
	record.Engagement = analysis.EngagementRatios(record)
	return record, nil
}

func parseInt(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "1", "y":
		return true
	}
	return false
}
