package generate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"content-optimizer/internal/models"
)

// TitleTemplate is one proven title shape with its observed click-through
// score. Placeholders in braces are filled at generation time.
type TitleTemplate struct {
	Pattern  string  `json:"pattern"`
	CTRScore float64 `json:"ctr_score"`
}

// RetentionMarker names a moment in the video where viewers decide to stay.
type RetentionMarker struct {
	Position   string `json:"position"`
	Element    string `json:"element"`
	Importance string `json:"importance"`
}

// ScriptPatterns describe how top scripts in a niche are built.
type ScriptPatterns struct {
	HookTypes        []string          `json:"hook_types"`
	OptimalStructure []string          `json:"optimal_structure"`
	RetentionMarkers []RetentionMarker `json:"retention_markers"`
}

// ThumbnailPatterns describe the visual conventions of a niche.
type ThumbnailPatterns struct {
	ColorSchemes []string `json:"color_schemes"`
	Elements     []string `json:"elements"`
}

// NichePatterns is the full pattern set for one niche.
type NichePatterns struct {
	TitlePatterns     []TitleTemplate   `json:"title_patterns"`
	ScriptPatterns    ScriptPatterns    `json:"script_patterns"`
	ThumbnailPatterns ThumbnailPatterns `json:"thumbnail_patterns"`
}

// PatternDB maps each niche to its patterns. It ships with a starter set
// and persists alongside the video database so learned patterns survive runs.
type PatternDB map[models.Niche]NichePatterns

const patternDBFile = "pattern_database.json"

// LoadPatternDB reads the pattern database from dataDir. A missing file is
// not an error: the starter database is written out and returned.
func LoadPatternDB(dataDir string) (PatternDB, error) {
	path := filepath.Join(dataDir, patternDBFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		db := defaultPatternDB()
		if err := db.Save(dataDir); err != nil {
			return nil, err
		}
		return db, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading pattern database: %w", err)
	}

	var db PatternDB
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("parsing pattern database %s: %w", path, err)
	}
	return db, nil
}

// Save writes the database under dataDir, creating the directory if needed.
func (db PatternDB) Save(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding pattern database: %w", err)
	}
	path := filepath.Join(dataDir, patternDBFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing pattern database: %w", err)
	}
	return nil
}

// Niche returns the pattern set for a niche or an error when unknown.
func (db PatternDB) Niche(niche models.Niche) (NichePatterns, error) {
	p, ok := db[niche]
	if !ok {
		return NichePatterns{}, fmt.Errorf("niche %s not found in pattern database", niche)
	}
	return p, nil
}

func defaultPatternDB() PatternDB {
	return PatternDB{
		models.NicheProductivity: {
			TitlePatterns: []TitleTemplate{
				{Pattern: "How I {action} to {positive_outcome}", CTRScore: 0.87},
				{Pattern: "{number} {tools/methods} to {goal} in {timeframe}", CTRScore: 0.83},
				{Pattern: "The {adjective} Way to {achieve_goal} | {secondary_benefit}", CTRScore: 0.79},
			},
			ScriptPatterns: ScriptPatterns{
				HookTypes:        []string{"problem_statement", "surprising_fact", "personal_story", "direct_question"},
				OptimalStructure: []string{"hook", "problem", "solution_overview", "detailed_steps", "results", "cta"},
				RetentionMarkers: []RetentionMarker{
					{Position: "0-15s", Element: "hook_statement", Importance: "critical"},
					{Position: "1min", Element: "intrigue_point", Importance: "high"},
					{Position: "midpoint", Element: "value_revelation", Importance: "high"},
					{Position: "75%", Element: "unexpected_insight", Importance: "medium"},
				},
			},
			ThumbnailPatterns: ThumbnailPatterns{
				ColorSchemes: []string{"blue/orange", "dark/light contrast", "minimalist with pop color"},
				Elements:     []string{"before/after", "tools/systems", "results visualization", "emotional reaction"},
			},
		},
		models.NicheHealthFitness: {
			TitlePatterns: []TitleTemplate{
				{Pattern: "I Tried {fitness_method} for {timeframe} | Here's What Happened", CTRScore: 0.89},
				{Pattern: "{number} Ways to {health_goal} Without {common_obstacle}", CTRScore: 0.85},
				{Pattern: "How to {health_action} Like a {expert_type} | {timeframe} Plan", CTRScore: 0.82},
			},
			ScriptPatterns: ScriptPatterns{
				HookTypes:        []string{"transformation_reveal", "health_myth_debunk", "unexpected_result", "relatable_struggle"},
				OptimalStructure: []string{"hook", "personal_context", "method_explanation", "implementation", "results", "scientific_basis", "cta"},
				RetentionMarkers: []RetentionMarker{
					{Position: "0-15s", Element: "visual_hook", Importance: "critical"},
					{Position: "1min", Element: "challenge_reveal", Importance: "high"},
					{Position: "midpoint", Element: "progress_update", Importance: "high"},
					{Position: "75%", Element: "results_reveal", Importance: "critical"},
				},
			},
			ThumbnailPatterns: ThumbnailPatterns{
				ColorSchemes: []string{"energetic red/white", "green/black wellness", "bright transformation colors"},
				Elements:     []string{"before/after", "progress_tracking", "comparison visual", "achievement_highlight"},
			},
		},
		models.NicheAITech: {
			TitlePatterns: []TitleTemplate{
				{Pattern: "I Built an AI that {impressive_action} | Here's How", CTRScore: 0.91},
				{Pattern: "{tool_name}: The AI {tool_type} That Will {benefit}", CTRScore: 0.84},
				{Pattern: "How to Use {ai_tool} to {productivity_goal} | Step-by-Step Guide", CTRScore: 0.82},
			},
			ScriptPatterns: ScriptPatterns{
				HookTypes:        []string{"demo_result", "future_implications", "problem_solved", "accessibility_statement"},
				OptimalStructure: []string{"hook", "problem_context", "technical_overview", "demonstration", "practical_application", "future_potential", "cta"},
				RetentionMarkers: []RetentionMarker{
					{Position: "0-15s", Element: "capability_demo", Importance: "critical"},
					{Position: "1min", Element: "technical_insight", Importance: "medium"},
					{Position: "midpoint", Element: "impressive_demonstration", Importance: "high"},
					{Position: "75%", Element: "practical_application", Importance: "high"},
				},
			},
			ThumbnailPatterns: ThumbnailPatterns{
				ColorSchemes: []string{"tech blue/black", "futuristic dark/accent", "clean interface colors"},
				Elements:     []string{"tool interface", "result visualization", "before/after", "reaction shot"},
			},
		},
	}
}
