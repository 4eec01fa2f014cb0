package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"

	"content-optimizer/internal/models"
)

func TestTitlePatternsClassification(t *testing.T) {
	videos := titled(
		"How to Focus Better",
		"5 Tips for Sleep",
		"Why Diets Fail?",
	)

	var e Extractor
	report, err := e.TitlePatterns(videos, models.NicheHealthFitness)
	if err != nil {
		t.Fatalf("TitlePatterns: %v", err)
	}

	for _, name := range []string{"how_to", "listicle", "question"} {
		got := report.PatternUsage[name]
		if math.Abs(got-33.3) > 0.1 {
			t.Errorf("usage[%s] = %.2f, want 33.3", name, got)
		}
	}
	if got, ok := report.PatternUsage["statement"]; !ok || got != 0 {
		t.Errorf("usage[statement] = %v, %v, want present at 0", got, ok)
	}
}

func TestTitlePatternsExclusiveChain(t *testing.T) {
	// Starts with "how to" and contains "tips for": the chain stops at
	// how_to, so listicle stays zero.
	videos := titled("How to Use These Tips for Focus")

	var e Extractor
	report, err := e.TitlePatterns(videos, models.NicheProductivity)
	if err != nil {
		t.Fatalf("TitlePatterns: %v", err)
	}
	if report.PatternUsage["how_to"] != 100 {
		t.Errorf("how_to = %v, want 100", report.PatternUsage["how_to"])
	}
	if report.PatternUsage["listicle"] != 0 {
		t.Errorf("listicle = %v, want 0", report.PatternUsage["listicle"])
	}
}

func TestTitlePatternsEmpty(t *testing.T) {
	var e Extractor
	_, err := e.TitlePatterns(nil, models.NicheProductivity)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("error = %v, want ErrNoData", err)
	}
}

func TestTitlePatternsPersonalClassifiers(t *testing.T) {
	cases := []struct {
		title      string
		iPersonal  float64
		youFocused float64
	}{
		{"I Tried Waking Up at 5 AM", 100, 0},
		{"We Tested Every Note App", 0, 0},
		{"What Your Desk Says About You", 0, 100},
		{"Best AI Tools This Year", 0, 0},
		{"YouTube Automation Explained", 0, 0},
	}

	var e Extractor
	for _, tc := range cases {
		report, err := e.TitlePatterns(titled(tc.title), models.NicheAITech)
		if err != nil {
			t.Fatalf("TitlePatterns(%q): %v", tc.title, err)
		}
		if got := report.PatternUsage["i_personal"]; got != tc.iPersonal {
			t.Errorf("%q: i_personal = %v, want %v", tc.title, got, tc.iPersonal)
		}
		if got := report.PatternUsage["you_focused"]; got != tc.youFocused {
			t.Errorf("%q: you_focused = %v, want %v", tc.title, got, tc.youFocused)
		}
	}
}

func TestTitlePatternsMinSampleSuppressesComparison(t *testing.T) {
	high, low := 9.0, 3.0
	videos := titled(
		"How to Build a Morning Routine",
		"The Truth About Productivity Apps",
		"Deep Work for Beginners",
		"Stop Multitasking Today",
		"Why Planners Fail?",
		"The Two Minute Rule",
	)
	videos[0].CTR = &high
	videos[1].CTR = &low

	e := Extractor{MinSample: 3}
	report, err := e.TitlePatterns(videos, models.NicheProductivity)
	if err != nil {
		t.Fatalf("TitlePatterns: %v", err)
	}
	if report.Performance != nil {
		t.Errorf("CTR comparison reported off one sample per group: %+v", report.Performance)
	}
	// The rest of the report is unaffected by the guard.
	if report.TotalVideos != 6 || len(report.PatternUsage) == 0 {
		t.Errorf("report gated on sample size: %+v", report)
	}

	var open Extractor
	full, err := open.TitlePatterns(videos, models.NicheProductivity)
	if err != nil {
		t.Fatalf("TitlePatterns: %v", err)
	}
	if full.Performance == nil {
		t.Error("comparison missing with the guard disabled")
	}
}

func TestTitlePatternsCTRComparison(t *testing.T) {
	highCTR, lowCTR := 8.0, 4.0
	videos := titled(
		"How to Build a Morning Routine",
		"The Truth About Productivity Apps",
	)
	videos[0].CTR = &highCTR
	videos[1].CTR = &lowCTR

	var e Extractor
	report, err := e.TitlePatterns(videos, models.NicheProductivity)
	if err != nil {
		t.Fatalf("TitlePatterns: %v", err)
	}
	if report.Performance == nil {
		t.Fatal("performance comparison missing")
	}
	if report.Performance.Difference != 4 {
		t.Errorf("difference = %v, want 4", report.Performance.Difference)
	}

	var found bool
	for _, r := range report.Recommendations {
		if r.Type == "structure" && r.Priority == "high" {
			found = true
		}
	}
	if !found {
		t.Errorf("no high-priority structure recommendation for a 4%% CTR gap: %+v", report.Recommendations)
	}
}

func TestThumbnailPatterns(t *testing.T) {
	videos := titled("One", "Two", "Three")
	videos[0].Thumbnail = models.Thumbnail{HasFace: true, HasText: true, Colors: []string{"blue", "red"}}
	videos[1].Thumbnail = models.Thumbnail{HasFace: true, HasText: true, Colors: []string{"blue"}}
	videos[2].Thumbnail = models.Thumbnail{HasFace: true, HasText: false, Colors: []string{"white"}}

	var e Extractor
	report, err := e.ThumbnailPatterns(videos, models.NicheProductivity)
	if err != nil {
		t.Fatalf("ThumbnailPatterns: %v", err)
	}
	if report.FacePct != 100 {
		t.Errorf("FacePct = %v, want 100", report.FacePct)
	}
	if report.CommonColors[0].Word != "blue" || report.CommonColors[0].Count != 2 {
		t.Errorf("top color = %+v, want blue x2", report.CommonColors[0])
	}
	if len(report.Recommendations) == 0 {
		t.Error("expected a face-presence recommendation at 100%")
	}
}

func TestRetentionPatterns(t *testing.T) {
	r1, r2 := 30.0, 40.0
	videos := titled("One", "Two", "Three")
	videos[0].Retention = &r1
	videos[1].Retention = &r2

	var e Extractor
	report, err := e.RetentionPatterns(videos, models.NicheProductivity)
	if err != nil {
		t.Fatalf("RetentionPatterns: %v", err)
	}
	if report.VideosAnalyzed != 2 {
		t.Errorf("VideosAnalyzed = %d, want 2 (record without retention skipped)", report.VideosAnalyzed)
	}
	if report.AvgRetention != 35 {
		t.Errorf("AvgRetention = %v, want 35", report.AvgRetention)
	}
	if report.DropOffPattern != nil {
		t.Errorf("drop-off pattern without drop points: %v", report.DropOffPattern)
	}
}

func TestRetentionPatternsDropOff(t *testing.T) {
	videos := titled("One", "Two")
	videos[0].RetentionPoints = []models.RetentionPoint{
		{Type: "drop", PositionPercent: 25},
		{Type: "drop", PositionPercent: 27},
		{Type: "spike", PositionPercent: 50},
	}
	videos[1].RetentionPoints = []models.RetentionPoint{
		{Type: "drop", PositionPercent: 82},
	}

	var e Extractor
	report, err := e.RetentionPatterns(videos, models.NicheHealthFitness)
	if err != nil {
		t.Fatalf("RetentionPatterns: %v", err)
	}
	if len(report.DropOffPattern) != 10 {
		t.Fatalf("buckets = %d, want 10", len(report.DropOffPattern))
	}
	if report.DropOffPattern[2].Count != 2 {
		t.Errorf("20%%-30%% bucket = %d, want 2", report.DropOffPattern[2].Count)
	}
	if report.DropOffPattern[5].Count != 0 {
		t.Errorf("spike counted as drop: %+v", report.DropOffPattern[5])
	}
	if len(report.CriticalSections) != 2 || report.CriticalSections[0] != "20%-30%" {
		t.Errorf("critical sections = %v", report.CriticalSections)
	}

	var found bool
	for _, r := range report.Recommendations {
		if r.Type == "retention_risk" && strings.Contains(r.Recommendation, "20%-30%") {
			found = true
		}
	}
	if !found {
		t.Errorf("no retention_risk recommendation: %+v", report.Recommendations)
	}
}

func TestRetentionPatternsNoData(t *testing.T) {
	var e Extractor
	_, err := e.RetentionPatterns(titled("No Metrics Here"), models.NicheProductivity)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("error = %v, want ErrNoData", err)
	}
}
