package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"content-optimizer/analysis"
	"content-optimizer/fetch"
	"content-optimizer/generate"
	"content-optimizer/internal/models"
	"content-optimizer/server"
	"content-optimizer/shared/ai"
	"content-optimizer/shared/config"
	"content-optimizer/shared/email"
	"content-optimizer/shared/monitoring"
	"content-optimizer/shared/scheduler"
	"content-optimizer/shared/storage"
	"content-optimizer/youtube"
)

const usage = `content-optimizer analyzes competitor videos and generates
optimized titles, descriptions, thumbnails, and script feedback.

Usage:
  optimizer fetch    -niche <n> [-url URL | -query Q | -channel ID] [-max N]
  optimizer import   -niche <n> -file data.csv
  optimizer template -file template.csv
  optimizer analyze  -niche <n>
  optimizer dna      -niche <n> [-narrate] [-email]
  optimizer optimize -niche <n> -script draft.txt [-title T] [-mode script|title|description|thumbnail|settings]
  optimizer report   -niche <n>
  optimizer serve
  optimizer watch

Niches: productivity, health_fitness, ai_tech
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := &app{cfg: cfg}

	var runErr error
	switch os.Args[1] {
	case "fetch":
		runErr = app.fetch(ctx, os.Args[2:])
	case "import":
		runErr = app.importCSV(os.Args[2:])
	case "template":
		runErr = app.template(os.Args[2:])
	case "analyze":
		runErr = app.analyze(os.Args[2:])
	case "dna":
		runErr = app.dna(ctx, os.Args[2:])
	case "optimize":
		runErr = app.optimize(os.Args[2:])
	case "report":
		runErr = app.report(os.Args[2:])
	case "serve":
		runErr = app.serve()
	case "watch":
		runErr = app.watch(ctx)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if runErr != nil {
		log.Fatalf("%s failed: %v", os.Args[1], runErr)
	}
}

type app struct {
	cfg *config.Config
}

func (a *app) store() (*storage.VideoStore, error) {
	return storage.NewVideoStore(a.cfg.Storage.DataDir)
}

func (a *app) integrator(ctx context.Context) (*fetch.Integrator, error) {
	client, err := youtube.NewClient(ctx, &a.cfg.YouTube)
	if err != nil {
		return nil, err
	}
	store, err := a.store()
	if err != nil {
		return nil, err
	}
	in := &fetch.Integrator{Client: client, Store: store}
	if a.cfg.OAuthEnabled() {
		in.Transcripts = youtube.NewTranscriptFetcher(&a.cfg.YouTube)
	}
	return in, nil
}

func nicheFlag(fs *flag.FlagSet) *string {
	return fs.String("niche", "", "content niche (productivity, health_fitness, ai_tech)")
}

func parseNiche(raw string) (models.Niche, error) {
	if !models.ValidNiche(raw) {
		return "", fmt.Errorf("invalid niche %q, valid: %v", raw, models.Niches)
	}
	return models.Niche(raw), nil
}

func (a *app) fetch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	nicheArg := nicheFlag(fs)
	url := fs.String("url", "", "single video URL or ID to analyze")
	query := fs.String("query", "", "search query (defaults to the niche search term)")
	channel := fs.String("channel", "", "channel ID to import recent uploads from")
	maxResults := fs.Int64("max", 10, "maximum videos to import")
	fs.Parse(args)

	niche, err := parseNiche(*nicheArg)
	if err != nil {
		return err
	}
	in, err := a.integrator(ctx)
	if err != nil {
		return err
	}

	switch {
	case *url != "":
		result, err := in.AnalyzeVideo(ctx, *url, niche)
		if err != nil {
			return err
		}
		log.Printf("Stored %q (%d views) under %s", result.Record.Title, result.Record.Views, niche)
		log.Printf("Analysis written to %s", result.AnalysisFile)
	case *channel != "":
		summary, err := in.FetchChannelVideos(ctx, niche, *channel, *maxResults)
		if err != nil {
			return err
		}
		log.Printf("Channel import: %d found, %d new, %d duplicates skipped",
			summary.Found, len(summary.Imported), summary.Skipped)
	default:
		summary, err := in.FetchTopVideos(ctx, niche, *query, *maxResults)
		if err != nil {
			return err
		}
		log.Printf("Search import for %q: %d found, %d new, %d duplicates skipped",
			summary.Query, summary.Found, len(summary.Imported), summary.Skipped)
	}
	return nil
}

func (a *app) importCSV(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	nicheArg := nicheFlag(fs)
	file := fs.String("file", "", "CSV file to import")
	fs.Parse(args)

	niche, err := parseNiche(*nicheArg)
	if err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("-file is required")
	}
	store, err := a.store()
	if err != nil {
		return err
	}

	result, err := fetch.ImportCSV(*file, niche, store)
	if err != nil {
		return err
	}
	log.Printf("Imported %d videos into %s (%d skipped)", result.Imported, niche, result.Skipped)
	for _, e := range result.Errors {
		log.Printf("  %s", e)
	}
	return nil
}

func (a *app) template(args []string) error {
	fs := flag.NewFlagSet("template", flag.ExitOnError)
	file := fs.String("file", "import_template.csv", "where to write the template")
	fs.Parse(args)

	if err := fetch.WriteCSVTemplate(*file); err != nil {
		return err
	}
	log.Printf("Template written to %s", *file)
	return nil
}

func (a *app) analyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	nicheArg := nicheFlag(fs)
	fs.Parse(args)

	niche, err := parseNiche(*nicheArg)
	if err != nil {
		return err
	}
	store, err := a.store()
	if err != nil {
		return err
	}
	videos, err := store.Videos(niche)
	if err != nil {
		return err
	}

	extractor := analysis.Extractor{MinSample: a.cfg.Analysis.MinSample}
	titles, err := extractor.TitlePatterns(videos, niche)
	if err != nil {
		return err
	}
	thumbnails, err := extractor.ThumbnailPatterns(videos, niche)
	if err != nil {
		return err
	}

	reports, err := storage.NewReportWriter(a.cfg.Storage.OutputDir)
	if err != nil {
		return err
	}
	titlePath, err := reports.WriteJSON("title_patterns", niche, titles)
	if err != nil {
		return err
	}
	thumbPath, err := reports.WriteJSON("thumbnail_patterns", niche, thumbnails)
	if err != nil {
		return err
	}

	// Retention is optional channel-owner data; skip quietly when absent.
	if retention, err := extractor.RetentionPatterns(videos, niche); err == nil {
		if path, err := reports.WriteJSON("retention_patterns", niche, retention); err == nil {
			log.Printf("Retention report: %s", path)
		}
	}

	log.Printf("Analyzed %d videos in %s", titles.TotalVideos, niche)
	log.Printf("Title report: %s", titlePath)
	log.Printf("Thumbnail report: %s", thumbPath)
	printJSON(titles.Recommendations)
	return nil
}

func (a *app) dna(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("dna", flag.ExitOnError)
	nicheArg := nicheFlag(fs)
	narrate := fs.Bool("narrate", false, "add an AI-written briefing (needs GEMINI_API_KEY)")
	sendEmail := fs.Bool("email", false, "mail the report (needs SMTP settings)")
	fs.Parse(args)

	niche, err := parseNiche(*nicheArg)
	if err != nil {
		return err
	}
	store, err := a.store()
	if err != nil {
		return err
	}
	videos, err := store.Videos(niche)
	if err != nil {
		return err
	}
	if len(videos) < a.cfg.Analysis.MinVideos {
		return fmt.Errorf("%w (run fetch or import first)",
			&analysis.InsufficientDataError{Niche: niche, Have: len(videos), Need: a.cfg.Analysis.MinVideos})
	}

	dna, err := analysis.BuildContentDNA(videos, niche)
	if err != nil {
		return err
	}
	path, err := store.SaveDNA(dna)
	if err != nil {
		return err
	}
	log.Printf("Content DNA for %s rebuilt from %d videos: %s", niche, dna.VideoCount, path)
	log.Printf("Strategy: %s", dna.Summary.TitleStrategy)

	var narration string
	if *narrate {
		if !a.cfg.AIEnabled() {
			return fmt.Errorf("-narrate requires GEMINI_API_KEY")
		}
		narrator, err := ai.NewNarrator(ctx, &a.cfg.AI)
		if err != nil {
			return err
		}
		if narration, err = narrator.NarrateDNA(ctx, dna); err != nil {
			return err
		}
		fmt.Println("\n" + narration)
	}

	if *sendEmail {
		if !a.cfg.EmailEnabled() {
			return fmt.Errorf("-email requires SMTP configuration")
		}
		if err := email.NewSender(&a.cfg.Email).SendDNAReport(dna, narration); err != nil {
			return err
		}
		log.Printf("Report mailed to %s", a.cfg.Email.ToEmail)
	}
	return nil
}

func (a *app) optimize(args []string) error {
	fs := flag.NewFlagSet("optimize", flag.ExitOnError)
	nicheArg := nicheFlag(fs)
	scriptFile := fs.String("script", "", "path to the draft script")
	title := fs.String("title", "", "working title (used by description and thumbnail modes)")
	mode := fs.String("mode", "script", "script, title, description, thumbnail, or settings")
	seed := fs.Int64("seed", 0, "random seed (0 uses the current time)")
	fs.Parse(args)

	niche, err := parseNiche(*nicheArg)
	if err != nil {
		return err
	}
	if *scriptFile == "" {
		return fmt.Errorf("-script is required")
	}
	raw, err := os.ReadFile(*scriptFile)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	script := string(raw)

	db, err := generate.LoadPatternDB(a.cfg.Storage.DataDir)
	if err != nil {
		return err
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	gen := generate.NewGenerator(db, rand.New(rand.NewSource(*seed)))

	store, err := a.store()
	if err != nil {
		return err
	}
	reports, err := storage.NewReportWriter(a.cfg.Storage.OutputDir)
	if err != nil {
		return err
	}

	var out any
	switch *mode {
	case "script":
		structural, err := gen.AnalyzeScript(script, niche)
		if err != nil {
			return err
		}
		result := map[string]any{"analysis": structural}
		// Score against the niche DNA when one is cached.
		if dna, err := store.LoadDNA(niche); err == nil {
			result["dna_comparison"] = analysis.ScoreScript(script, dna)
		} else {
			log.Printf("No cached DNA for %s, run the dna command for competitor-based scoring", niche)
		}
		out = result
	case "title":
		if out, err = gen.GenerateTitleOptions(script, niche); err != nil {
			return err
		}
	case "description":
		if *title == "" {
			return fmt.Errorf("-title is required for description mode")
		}
		if out, err = gen.GenerateDescription(script, *title, niche); err != nil {
			return err
		}
	case "thumbnail":
		if *title == "" {
			return fmt.Errorf("-title is required for thumbnail mode")
		}
		if out, err = gen.RecommendThumbnail(script, *title, niche); err != nil {
			return err
		}
	case "settings":
		out = gen.AnalyzeVideoSettings(script, niche)
	default:
		return fmt.Errorf("unknown mode %q", *mode)
	}

	path, err := reports.WriteJSON("optimize_"+*mode, niche, out)
	if err != nil {
		return err
	}
	log.Printf("Report written to %s", path)
	printJSON(out)
	return nil
}

func (a *app) report(args []string) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	nicheArg := nicheFlag(fs)
	fs.Parse(args)

	niche, err := parseNiche(*nicheArg)
	if err != nil {
		return err
	}
	store, err := a.store()
	if err != nil {
		return err
	}
	videos, err := store.Videos(niche)
	if err != nil {
		return err
	}

	extractor := analysis.Extractor{MinSample: a.cfg.Analysis.MinSample}
	titles, err := extractor.TitlePatterns(videos, niche)
	if err != nil {
		return err
	}
	thumbnails, err := extractor.ThumbnailPatterns(videos, niche)
	if err != nil {
		return err
	}
	dna, err := analysis.BuildContentDNA(videos, niche)
	if err != nil {
		return err
	}

	combined := map[string]any{
		"niche":              niche,
		"video_count":        len(videos),
		"title_patterns":     titles,
		"thumbnail_patterns": thumbnails,
		"content_dna":        dna,
	}
	if retention, err := extractor.RetentionPatterns(videos, niche); err == nil {
		combined["retention_patterns"] = retention
	}

	reports, err := storage.NewReportWriter(a.cfg.Storage.OutputDir)
	if err != nil {
		return err
	}
	path, err := reports.WriteJSON("competition_report", niche, combined)
	if err != nil {
		return err
	}
	log.Printf("Competition report for %s (%d videos): %s", niche, len(videos), path)
	return nil
}

func (a *app) serve() error {
	store, err := a.store()
	if err != nil {
		return err
	}
	srv := server.New(store, monitoring.NewMonitor(), a.cfg.Server.Port)
	log.Printf("Serving on :%d", a.cfg.Server.Port)
	return srv.Run()
}

func (a *app) watch(ctx context.Context) error {
	in, err := a.integrator(ctx)
	if err != nil {
		return err
	}
	agent := &fetch.RefreshAgent{Integrator: in, MaxPerRun: 10}
	monitor := monitoring.NewMonitor()

	store := in.Store
	srv := server.New(store, monitor, a.cfg.Server.Port)
	go func() {
		if err := srv.Run(); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	fmt.Println("Starting scheduler...")
	s := scheduler.New(a.cfg.Schedule, monitor, agent)
	return s.Start(ctx)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Printf("Failed to render output: %v", err)
		return
	}
	fmt.Println(string(data))
}
