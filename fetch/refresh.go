package fetch

import (
	"context"
	"fmt"
	"log"
	"strings"

	"content-optimizer/analysis"
	"content-optimizer/internal/models"
)

// RefreshAgent is the scheduled job: pull the current top videos for every
// niche, skip what the database already holds, and rebuild each niche's DNA
// so the generators always work from fresh aggregates.
type RefreshAgent struct {
	Integrator *Integrator
	MaxPerRun  int64
}

func (a *RefreshAgent) Name() string { return "content-refresh" }

func (a *RefreshAgent) Initialize() error {
	if a.Integrator == nil || a.Integrator.Client == nil {
		return fmt.Errorf("refresh agent has no API client")
	}
	if a.MaxPerRun <= 0 {
		a.MaxPerRun = 10
	}
	return nil
}

func (a *RefreshAgent) RunOnce(ctx context.Context) (string, error) {
	var parts []string
	var failures int

	for _, niche := range models.Niches {
		summary, err := a.Integrator.FetchTopVideos(ctx, niche, "", a.MaxPerRun)
		if err != nil {
			log.Printf("Refresh failed for %s: %v", niche, err)
			failures++
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %d new, %d known", niche, len(summary.Imported), summary.Skipped))

		videos, err := a.Integrator.Store.Videos(niche)
		if err != nil || len(videos) == 0 {
			continue
		}
		dna, err := analysis.BuildContentDNA(videos, niche)
		if err != nil {
			log.Printf("DNA rebuild failed for %s: %v", niche, err)
			continue
		}
		if _, err := a.Integrator.Store.SaveDNA(dna); err != nil {
			log.Printf("DNA save failed for %s: %v", niche, err)
		}
	}

	if failures == len(models.Niches) {
		return "", fmt.Errorf("all %d niches failed to refresh", failures)
	}
	return strings.Join(parts, "; "), nil
}
