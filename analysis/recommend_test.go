package analysis

import (
	"strings"
	"testing"

	"content-optimizer/internal/models"
)

func testDNA(t *testing.T) *models.ContentDNA {
	t.Helper()
	videos := titled(
		"How to Focus Better",
		"How to Sleep Deeper",
		"How to Plan Your Week",
	)
	dna, err := BuildContentDNA(videos, models.NicheProductivity)
	if err != nil {
		t.Fatalf("BuildContentDNA: %v", err)
	}
	return dna
}

func TestScoreScriptTransitionsAndCTA(t *testing.T) {
	dna := testDNA(t)
	report := ScoreScript("just some rambling words with no structure at all", dna)

	var types []string
	for _, r := range report.Recommendations {
		types = append(types, r.Type)
	}
	joined := strings.Join(types, ",")
	if !strings.Contains(joined, "transitions") {
		t.Errorf("no transitions recommendation in %v", types)
	}
	if !strings.Contains(joined, "cta") {
		t.Errorf("no cta recommendation in %v", types)
	}
}

func TestScoreScriptMarkersSatisfied(t *testing.T) {
	dna := testDNA(t)
	script := "First we cover the basics. Next we go deeper. Subscribe for more."
	report := ScoreScript(script, dna)

	for _, r := range report.Recommendations {
		if r.Type == "transitions" || r.Type == "cta" {
			t.Errorf("unexpected %s recommendation for a script that has markers", r.Type)
		}
	}
}

func TestScoreScriptMissingPrevalence(t *testing.T) {
	// A hand-edited or stale cached DNA file can carry patterns without
	// the prevalence field; those must be skipped, not dereferenced.
	dna := &models.ContentDNA{
		Niche: models.NicheProductivity,
		Patterns: []models.DNAPattern{
			{Element: "script", Pattern: "clear_transitions"},
			{Element: "script", Pattern: "verbal_cta"},
		},
	}

	report := ScoreScript("just some rambling words with no structure at all", dna)
	for _, r := range report.Recommendations {
		if r.Type == "transitions" || r.Type == "cta" {
			t.Errorf("recommendation built without prevalence data: %+v", r)
		}
	}
}

func TestScoreScriptHook(t *testing.T) {
	hook := 45
	videos := titled("How to Focus")
	videos[0].ScriptStructure = &models.ScriptStructure{HookWordCount: &hook}
	dna, err := BuildContentDNA(videos, models.NicheProductivity)
	if err != nil {
		t.Fatalf("BuildContentDNA: %v", err)
	}

	// Ten-word script: hook is ten words, niche average is 45.
	report := ScoreScript("one two three four five six seven eight nine ten", dna)

	var found bool
	for _, r := range report.Recommendations {
		if r.Type == "hook" && r.Priority == "high" {
			found = true
			if !strings.Contains(r.Recommendation, "Lengthen") {
				t.Errorf("hook recommendation = %q, want a lengthen edit", r.Recommendation)
			}
		}
	}
	if !found {
		t.Errorf("no hook recommendation for a 35-word gap: %+v", report.Recommendations)
	}
}

func TestScoreScriptTitleStructure(t *testing.T) {
	dna := testDNA(t)
	report := ScoreScript("anything", dna)

	var found bool
	for _, r := range report.Recommendations {
		if r.Element == "title" && strings.Contains(r.Recommendation, "how_to") {
			found = true
		}
	}
	if !found {
		t.Errorf("no how_to title recommendation: %+v", report.Recommendations)
	}
}

func TestMeasureScriptStructure(t *testing.T) {
	script := "Welcome back. First we warm up. Next we lift. Subscribe for weekly plans."
	ss := MeasureScriptStructure(script, 60)
	if ss == nil {
		t.Fatal("structure missing")
	}
	if *ss.SectionCount != 3 {
		t.Errorf("sections = %d, want 3 (two transition markers)", *ss.SectionCount)
	}
	if !*ss.HasClearTransitions || !*ss.HasCTA {
		t.Errorf("markers = transitions %v, cta %v, want both true", *ss.HasClearTransitions, *ss.HasCTA)
	}
	if *ss.WordsPerMinute != 13 {
		t.Errorf("wpm = %v, want 13", *ss.WordsPerMinute)
	}
	if *ss.HookWordCount != 13 {
		t.Errorf("hook = %d, want 13 (entire short script)", *ss.HookWordCount)
	}

	if got := MeasureScriptStructure("", 60); got != nil {
		t.Errorf("structure for empty transcript = %+v, want nil", got)
	}
}
