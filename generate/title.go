package generate

import (
	"math/rand"
	"regexp"
	"sort"

	"content-optimizer/internal/models"
)

// Generator produces titles, descriptions, and thumbnail briefs from a
// script draft. The rand source is injected so callers can pin outputs.
type Generator struct {
	DB  PatternDB
	Rng *rand.Rand
}

// NewGenerator wires a pattern database to a random source.
func NewGenerator(db PatternDB, rng *rand.Rand) *Generator {
	return &Generator{DB: db, Rng: rng}
}

// TitleOption is one generated title with the template it came from.
type TitleOption struct {
	Title    string  `json:"title"`
	Pattern  string  `json:"pattern"`
	CTRScore float64 `json:"ctr_score"`
	Analysis string  `json:"analysis"`
}

// TitleOptions is the result of title generation, best-scoring first.
type TitleOptions struct {
	Options        []TitleOption `json:"title_options"`
	KeyTerms       []string      `json:"key_terms"`
	Recommendation string        `json:"recommendation"`
}

var placeholderRe = regexp.MustCompile(`\{[\w/]+\}`)

// phrases maps each template placeholder to its candidate fillers.
var phrases = map[string][]string{
	"{action}":            {"Optimized My Workflow", "Doubled My Productivity", "Streamlined My System"},
	"{positive_outcome}":  {"Save 10 Hours Every Week", "Finally Achieve Inbox Zero", "Boost My Focus"},
	"{number}":            {"3", "5", "7", "10"},
	"{tools/methods}":     {"Simple Tools", "Powerful Methods", "Game-Changing Techniques", "AI-Powered Strategies"},
	"{goal}":              {"Boost Productivity", "Optimize Your Workflow", "Automate Your Life"},
	"{timeframe}":         {"30 Days", "One Week", "Just 10 Minutes a Day"},
	"{adjective}":         {"Smartest", "Simplest", "Fastest"},
	"{achieve_goal}":      {"Organize Your Day", "Beat Procrastination", "Get More Done"},
	"{secondary_benefit}": {"No Burnout", "Backed by Science", "Works in Any Job"},
	"{fitness_method}":    {"Intermittent Fasting", "HIIT Training", "Cold Therapy", "Meditation"},
	"{health_goal}":       {"Lose Fat", "Build Muscle", "Sleep Better"},
	"{common_obstacle}":   {"Counting Calories", "Expensive Equipment", "Giving Up Your Weekends"},
	"{health_action}":     {"Train", "Eat", "Recover"},
	"{expert_type}":       {"Pro Athlete", "Physical Therapist", "Olympic Coach"},
	"{impressive_action}": {"Writes My Emails", "Plans My Week", "Edits My Videos"},
	"{tool_name}":         {"AutoPilot", "TaskMind", "FlowKit"},
	"{tool_type}":         {"Assistant", "Agent", "Copilot"},
	"{benefit}":           {"Change How You Work", "Save You Hours", "Run Your Inbox"},
	"{ai_tool}":           {"GPT-4", "Claude", "Midjourney", "AutoGPT"},
	"{productivity_goal}": {"Automate Your Notes", "Summarize Anything", "Plan Your Projects"},
}

// GenerateTitleOptions fills every template for the niche and ranks the
// results by click-through score.
func (g *Generator) GenerateTitleOptions(script string, niche models.Niche) (*TitleOptions, error) {
	patterns, err := g.DB.Niche(niche)
	if err != nil {
		return nil, err
	}

	options := make([]TitleOption, 0, len(patterns.TitlePatterns))
	for _, tpl := range patterns.TitlePatterns {
		options = append(options, TitleOption{
			Title:    g.fillTemplate(tpl.Pattern),
			Pattern:  tpl.Pattern,
			CTRScore: tpl.CTRScore,
			Analysis: "This title follows a high-performing pattern in your niche",
		})
	}
	sort.SliceStable(options, func(i, j int) bool { return options[i].CTRScore > options[j].CTRScore })

	return &TitleOptions{
		Options:        options,
		KeyTerms:       RepeatedKeywords(script, 10),
		Recommendation: "Consider including your most distinctive keyword in the title to improve searchability.",
	}, nil
}

func (g *Generator) fillTemplate(template string) string {
	return placeholderRe.ReplaceAllStringFunc(template, func(ph string) string {
		candidates, ok := phrases[ph]
		if !ok {
			return ph
		}
		return candidates[g.Rng.Intn(len(candidates))]
	})
}
