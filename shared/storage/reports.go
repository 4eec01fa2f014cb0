package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"content-optimizer/internal/models"
)

// ReportWriter drops timestamped result files into the output directory.
type ReportWriter struct {
	outputDir string
}

func NewReportWriter(outputDir string) (*ReportWriter, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &ReportWriter{outputDir: outputDir}, nil
}

// WriteJSON saves v as <kind>_<niche>_<unix>.json and returns the path.
func (w *ReportWriter) WriteJSON(kind string, niche models.Niche, v any) (string, error) {
	name := fmt.Sprintf("%s_%s_%d.json", kind, niche, time.Now().Unix())
	path := filepath.Join(w.outputDir, name)
	if err := writeJSON(path, v); err != nil {
		return "", err
	}
	return path, nil
}

// WriteText saves plain text alongside the JSON reports, for easy copying.
func (w *ReportWriter) WriteText(kind string, niche models.Niche, text string) (string, error) {
	name := fmt.Sprintf("%s_%s_%d.txt", kind, niche, time.Now().Unix())
	path := filepath.Join(w.outputDir, name)
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
