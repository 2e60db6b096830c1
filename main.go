package main

import (
	"context"
	"fmt"
	"os"

	"youtube-leadgen/config"
	"youtube-leadgen/llm"
	"youtube-leadgen/models"
	"youtube-leadgen/scraper/apify"
	"youtube-leadgen/scraper/chrome"
	"youtube-leadgen/services"
	"youtube-leadgen/storage"
	"youtube-leadgen/utils"
	"youtube-leadgen/youtube"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== YouTube Lead Generation System starting ===")
	logger.Info("Config: keywords: %d | countries: %v | subs: [%d, %d] | cap/keyword: %d",
		len(cfg.Run.Keywords), cfg.Run.AllowedCountries,
		cfg.Run.MinSubscribers, cfg.Run.MaxSubscribers, cfg.Run.MaxPerKeyword)

	if err := cfg.Run.Validate(); err != nil {
		logger.Error("Invalid run configuration: %v", err)
		os.Exit(1)
	}
	if cfg.YouTubeAPIKey == "" {
		logger.Error("YOUTUBE_API_KEY is required")
		os.Exit(1)
	}
	if cfg.OpenAIAPIKey == "" {
		logger.Warn("OPENAI_API_KEY not set, enrichment will fall back to defaults")
	}

	ctx := context.Background()

	store, err := storage.NewPostgresStore(cfg.DSN())
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL: %v", err)
		logger.Error("Make sure Docker is running: docker compose up -d")
		os.Exit(1)
	}
	defer store.Close()

	sheet, err := storage.NewSheetsWriter(ctx, cfg.SheetsCredentialsFile, cfg.SheetID, cfg.SheetTabName)
	if err != nil {
		logger.Error("Failed to create Sheets writer: %v", err)
		os.Exit(1)
	}

	yt := youtube.NewClient(cfg.YouTubeAPIKey, logger)
	enricher := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, logger)

	var scraper services.EmailScraper
	source := "Apify"
	if cfg.Run.ApifyToken != "" {
		scraper = apify.NewClient(cfg.Run.ApifyToken, cfg.ApifyActorID, logger)
	} else {
		logger.Warn("No Apify token configured, using browser fallback scraper")
		scraper = chrome.New(logger)
		source = "Browser"
	}
	resolver := services.NewEmailResolver(scraper, source, logger)

	pipeline := services.NewPipeline(&cfg.Run, yt, resolver, enricher, store, sheet, logger, nil)
	total, leads, err := pipeline.Run(ctx)
	if err != nil {
		logger.Error("Pipeline failed: %v", err)
		os.Exit(1)
	}

	if cfg.CSVOutputPath != "" && len(leads) > 0 {
		exportLeads(cfg.CSVOutputPath, leads, logger)
	}

	insightSvc := services.NewInsightService(logger)
	insightSvc.Print(insightSvc.Generate(leads))

	fmt.Printf("  Done. %d leads generated → PostgreSQL (leads table) + Google Sheet %q\n\n",
		total, cfg.SheetTabName)
}

// exportLeads dumps the run's leads to a local CSV file. Export
// problems are logged, never fatal.
func exportLeads(path string, leads []*models.Lead, logger *utils.Logger) {
	csvWriter, err := storage.NewCSVWriter(path)
	if err != nil {
		logger.Error("CSV export failed: %v", err)
		return
	}
	defer csvWriter.Close()

	if err := csvWriter.WriteLeads(leads); err != nil {
		logger.Error("CSV export failed: %v", err)
		return
	}
	logger.Info("Leads exported to %s", path)
}
