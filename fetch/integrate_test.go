package fetch

import (
	"testing"

	"content-optimizer/internal/models"
)

func TestInferThumbnail(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		niche    models.Niche
		wantFace bool
	}{
		{"creator niche", "Morning Routine Guide", models.NicheProductivity, true},
		{"fitness niche", "Full Body Workout", models.NicheHealthFitness, true},
		{"tech without personal angle", "Transformer Architecture Explained", models.NicheAITech, false},
		{"tech with personal angle", "How I Built My First Agent", models.NicheAITech, true},
		{"tech first person", "I Tried Coding With AI for a Week", models.NicheAITech, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InferThumbnail(tt.title, tt.niche)
			if got.HasFace != tt.wantFace {
				t.Errorf("HasFace = %v, want %v", got.HasFace, tt.wantFace)
			}
			if !got.HasText {
				t.Error("HasText = false, want true")
			}
			if len(got.Colors) != 3 {
				t.Errorf("colors = %v, want default palette", got.Colors)
			}
		})
	}
}
