package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"fort-chatbot-be/internal/bootstrap"
	"fort-chatbot-be/internal/config"
	"fort-chatbot-be/pkg/database"
	"fort-chatbot-be/pkg/ingest"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()

	forts, err := ingest.LoadRecords(cfg.Ingest.FortsFile)
	if err != nil {
		color.Red("Failed to load forts: %v", err)
		os.Exit(1)
	}
	if len(forts) == 0 {
		color.Yellow("No forts found in %s, nothing to ingest", cfg.Ingest.FortsFile)
		return
	}

	gormDB, err := database.NewOptionalGormDB(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewIngestContainer(gormDB, cfg)
	defer container.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	color.Cyan("🚀 Ingesting %d forts from %s in batches of %d\n", len(forts), cfg.Ingest.FortsFile, cfg.Ingest.BatchSize)

	summary, err := container.IngestService.Run(ctx, forts)
	if err != nil {
		color.Red("Ingestion interrupted: %v", err)
	}
	if summary == nil {
		os.Exit(1)
	}

	color.Green("Batches succeeded: %d/%d", summary.Succeeded, summary.Batches)
	color.Green("Records upserted:  %d/%d", summary.Upserted, summary.Records)
	if summary.Failed > 0 {
		color.Red("Batches failed:    %d (see %s for their metadata)", summary.Failed, cfg.App.LogFilePath)
		os.Exit(1)
	}
	color.Cyan("✅ Ingestion complete")
}
