package generate

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"content-optimizer/internal/models"
)

func testGenerator() *Generator {
	return NewGenerator(defaultPatternDB(), rand.New(rand.NewSource(1)))
}

func TestLoadPatternDBCreatesStarter(t *testing.T) {
	dir := t.TempDir()

	db, err := LoadPatternDB(dir)
	if err != nil {
		t.Fatalf("LoadPatternDB: %v", err)
	}
	if len(db) != 3 {
		t.Fatalf("niches = %d, want 3", len(db))
	}

	// The starter database was persisted and loads back identically.
	again, err := LoadPatternDB(dir)
	if err != nil {
		t.Fatalf("second LoadPatternDB: %v", err)
	}
	p, err := again.Niche(models.NicheAITech)
	if err != nil {
		t.Fatalf("Niche: %v", err)
	}
	if len(p.TitlePatterns) != 3 || p.TitlePatterns[0].CTRScore != 0.91 {
		t.Errorf("reloaded ai_tech patterns = %+v", p.TitlePatterns)
	}
}

func TestLoadPatternDBCorrupt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pattern_database.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPatternDB(dir); err == nil {
		t.Fatal("corrupt pattern database loaded without error")
	}
}

func TestExtractKeywords(t *testing.T) {
	kws := ExtractKeywords("Focus focus DEEP deep focus it at go", 0)
	if len(kws) != 2 {
		t.Fatalf("keywords = %v, want focus and deep only", kws)
	}
	if kws[0].Word != "focus" || kws[0].Count != 3 {
		t.Errorf("top keyword = %+v", kws[0])
	}
	if kws[1].Word != "deep" || kws[1].Count != 2 {
		t.Errorf("second keyword = %+v", kws[1])
	}
}

func TestExtractKeywordsTieOrder(t *testing.T) {
	kws := ExtractKeywords("zebra apple zebra apple", 0)
	if kws[0].Word != "zebra" || kws[1].Word != "apple" {
		t.Errorf("tie order = %v, want first-seen order", kws)
	}
}

func TestGenerateTitleOptions(t *testing.T) {
	g := testGenerator()
	opts, err := g.GenerateTitleOptions("productivity workflow productivity systems workflow", models.NicheProductivity)
	if err != nil {
		t.Fatalf("GenerateTitleOptions: %v", err)
	}
	if len(opts.Options) != 3 {
		t.Fatalf("options = %d, want 3", len(opts.Options))
	}

	// Sorted by score, best first.
	for i := 1; i < len(opts.Options); i++ {
		if opts.Options[i].CTRScore > opts.Options[i-1].CTRScore {
			t.Errorf("options not sorted by ctr score: %v", opts.Options)
		}
	}

	// Every placeholder was filled.
	for _, o := range opts.Options {
		if strings.ContainsAny(o.Title, "{}") {
			t.Errorf("unfilled placeholder in %q", o.Title)
		}
	}

	if len(opts.KeyTerms) != 2 {
		t.Errorf("key terms = %v, want productivity and workflow", opts.KeyTerms)
	}
}

func TestGenerateTitleOptionsDeterministic(t *testing.T) {
	a, err := NewGenerator(defaultPatternDB(), rand.New(rand.NewSource(42))).
		GenerateTitleOptions("script", models.NicheAITech)
	if err != nil {
		t.Fatalf("GenerateTitleOptions: %v", err)
	}
	b, err := NewGenerator(defaultPatternDB(), rand.New(rand.NewSource(42))).
		GenerateTitleOptions("script", models.NicheAITech)
	if err != nil {
		t.Fatalf("GenerateTitleOptions: %v", err)
	}
	for i := range a.Options {
		if a.Options[i].Title != b.Options[i].Title {
			t.Errorf("same seed produced different titles: %q vs %q", a.Options[i].Title, b.Options[i].Title)
		}
	}
}

func TestGenerateTitleOptionsUnknownNiche(t *testing.T) {
	g := testGenerator()
	if _, err := g.GenerateTitleOptions("script", models.Niche("gaming")); err == nil {
		t.Fatal("unknown niche accepted")
	}
}

func TestGenerateDescription(t *testing.T) {
	g := testGenerator()
	script := "This system changed everything. It saves hours every single week. The system works because the system is simple."
	desc, err := g.GenerateDescription(script, "My Productivity System", models.NicheProductivity)
	if err != nil {
		t.Fatalf("GenerateDescription: %v", err)
	}

	if !strings.HasPrefix(desc.Description, "In this video, I share my productivity system.") {
		t.Errorf("intro = %q", strings.SplitN(desc.Description, "\n", 2)[0])
	}
	if !strings.Contains(desc.Description, "TIMESTAMPS:") {
		t.Error("timestamps section missing")
	}
	if !strings.Contains(desc.Description, "#productivity") {
		t.Error("niche hashtags missing")
	}

	hashtagLine := desc.Description[strings.LastIndex(desc.Description, "\n")+1:]
	if n := len(strings.Fields(hashtagLine)); n > 10 {
		t.Errorf("hashtag count = %d, want at most 10", n)
	}
}

func TestGenerateDescriptionHowTitle(t *testing.T) {
	g := testGenerator()
	desc, err := g.GenerateDescription("words here.", "How to Focus", models.NicheProductivity)
	if err != nil {
		t.Fatalf("GenerateDescription: %v", err)
	}
	if !strings.HasPrefix(desc.Description, "In this video, I share How to Focus.") {
		t.Errorf("How-titles should keep their casing: %q", strings.SplitN(desc.Description, "\n", 2)[0])
	}
}

func TestSummarizeCutsAtSentence(t *testing.T) {
	long := strings.Repeat("word ", 195) + "This sentence ends. And this trails off without"
	got := summarize(long, 200)
	if !strings.HasSuffix(got, "This sentence ends.") {
		t.Errorf("summary does not end on a sentence: %q", got[len(got)-40:])
	}
}

func TestRecommendThumbnail(t *testing.T) {
	g := testGenerator()
	script := strings.Repeat("segment words here and more filler ", 20)
	brief, err := g.RecommendThumbnail(script, "The Five Step System That Changed My Mornings", models.NicheHealthFitness)
	if err != nil {
		t.Fatalf("RecommendThumbnail: %v", err)
	}

	if brief.ColorScheme.Recommendation == "" {
		t.Error("no color scheme picked")
	}
	if len(brief.Elements.Recommendations) != 2 {
		t.Errorf("elements = %v, want 2", brief.Elements.Recommendations)
	}
	if !strings.Contains(brief.TitleTreatment.Recommendation, "The Five Step System...") {
		t.Errorf("title treatment = %q, want truncated title", brief.TitleTreatment.Recommendation)
	}
	if len(brief.PotentialShots) != 2 {
		t.Errorf("high-potential segments = %d, want first and last", len(brief.PotentialShots))
	}
}

func TestAnalyzeScript(t *testing.T) {
	g := testGenerator()
	script := strings.Repeat("one sentence of filler words right here. ", 50) // 350 words
	analysis, err := g.AnalyzeScript(script, models.NicheProductivity)
	if err != nil {
		t.Fatalf("AnalyzeScript: %v", err)
	}

	if analysis.WordCount != 350 {
		t.Errorf("word count = %d, want 350", analysis.WordCount)
	}
	if analysis.EstimatedDuration != "2.33 minutes" {
		t.Errorf("duration = %q", analysis.EstimatedDuration)
	}
	if analysis.Hook.WordCount != 100 {
		t.Errorf("hook words = %d, want 100", analysis.Hook.WordCount)
	}
	if len(analysis.RetentionMarkers) != 4 {
		t.Errorf("markers = %d, want 4", len(analysis.RetentionMarkers))
	}
	if analysis.RetentionMarkers[2].WordPosition != 175 {
		t.Errorf("midpoint marker at word %d, want 175", analysis.RetentionMarkers[2].WordPosition)
	}

	var hasHookRec, hasKeywordRec bool
	for _, r := range analysis.Recommendations {
		switch r.Type {
		case "hook":
			hasHookRec = true
		case "keywords":
			hasKeywordRec = true
		}
	}
	if !hasHookRec || !hasKeywordRec {
		t.Errorf("recommendations missing hook or keywords: %+v", analysis.Recommendations)
	}
}

func TestAnalyzeVideoSettings(t *testing.T) {
	g := testGenerator()

	short := g.AnalyzeVideoSettings("just a few words", models.NicheAITech)
	if !strings.Contains(short.LengthAnalysis, "shorter than") {
		t.Errorf("length analysis = %q", short.LengthAnalysis)
	}
	if short.OptimalLength != "8-12 minutes" {
		t.Errorf("optimal length = %q", short.OptimalLength)
	}

	inRange := g.AnalyzeVideoSettings(strings.Repeat("word ", 1500), models.NicheAITech)
	if !strings.Contains(inRange.LengthAnalysis, "within the optimal range") {
		t.Errorf("length analysis = %q", inRange.LengthAnalysis)
	}
}
