package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/incomemap/dashboard/apps/api/internal/business/income"
	"github.com/incomemap/dashboard/apps/api/internal/business/loader"
	"github.com/incomemap/dashboard/apps/api/internal/platform/config"
	firestoreclient "github.com/incomemap/dashboard/apps/api/internal/platform/firestore"
	"github.com/incomemap/dashboard/apps/api/internal/repository"
	"github.com/incomemap/dashboard/apps/api/pkg/model"
	"github.com/joho/godotenv"
)

func main() {
	source := flag.String("source", "", "dataset source to import from: file, url or kaggle (default DATASET_SOURCE)")
	path := flag.String("path", "", "CSV or ZIP file to import (overrides DATASET_PATH)")
	dryRun := flag.Bool("dry-run", false, "load and summarize the dataset without writing to Firestore")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load(".env.local", ".env")

	// Flags override the environment before it is validated.
	if *path != "" {
		os.Setenv("DATASET_PATH", *path)
		if *source == "" {
			os.Setenv("DATASET_SOURCE", config.SourceFile)
		}
	}
	if *source != "" {
		os.Setenv("DATASET_SOURCE", *source)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.DatasetSource == config.SourceFirestore {
		log.Fatalf("Cannot import from firestore into firestore; pass -source or -path")
	}

	table, err := cfg.BinTable()
	if err != nil {
		log.Fatalf("Invalid income bins: %v", err)
	}

	src, err := loader.NewSource(cfg, nil)
	if err != nil {
		log.Fatalf("Failed to build dataset source: %v", err)
	}

	run := model.ImportRun{
		RunID:     "IMPORT_" + uuid.NewString(),
		Source:    src.Describe(),
		Status:    "running",
		StartedAt: time.Now().UTC(),
	}

	fmt.Printf("Importing dataset from %s\n", run.Source)
	fmt.Println("========================================")

	records, stats, err := src.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load dataset: %v", err)
	}
	run.Stats = model.ImportRunStats{Read: stats.Read, Skipped: stats.Skipped}
	run.ErrorSample = stats.Problems
	summary := income.Summarize(records, table)

	fmt.Printf("Read %d rows, loaded %d, skipped %d\n", stats.Read, stats.Loaded, stats.Skipped)
	fmt.Printf("%d states, average mean income %.0f\n", summary.TotalStates, summary.AvgMean)
	for _, p := range stats.Problems {
		fmt.Printf("  line %d: %s\n", p.Line, p.Reason)
	}

	if *dryRun {
		fmt.Println("Dry run, nothing written")
		return
	}

	client, credsSource, err := firestoreclient.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer client.Close()
	log.Printf("Connected to Firestore project %s using %s credentials", cfg.FirebaseProjectID, credsSource)

	recordRepo := repository.NewRecordRepository(client)
	summaryRepo := repository.NewSummaryRepository(client)
	runRepo := repository.NewRunRepository(client)

	if prev, err := summaryRepo.GetSummary(ctx); err != nil {
		log.Printf("No previous summary: %v", err)
	} else {
		fmt.Printf("Previous import: %d records across %d states (updated %s)\n",
			prev.TotalRecords, prev.TotalStates, prev.LastUpdated.Format(time.RFC3339))
	}

	if err := runRepo.SaveRun(ctx, run); err != nil {
		log.Fatalf("Failed to record import run: %v", err)
	}

	if err := recordRepo.BatchUpsert(ctx, records); err != nil {
		finishRun(ctx, runRepo, run, "failed")
		log.Fatalf("Failed to write records: %v", err)
	}
	run.Stats.Imported = len(records)

	if err := summaryRepo.SaveSummary(ctx, summary); err != nil {
		finishRun(ctx, runRepo, run, "failed")
		log.Fatalf("Failed to save summary: %v", err)
	}

	finishRun(ctx, runRepo, run, "success")

	fmt.Println("========================================")
	fmt.Printf("Import %s completed: %d records written\n", run.RunID, run.Stats.Imported)
}

func finishRun(ctx context.Context, repo *repository.RunRepository, run model.ImportRun, status string) {
	run.Status = status
	run.FinishedAt = time.Now().UTC()
	if err := repo.SaveRun(ctx, run); err != nil {
		log.Printf("Failed to update import run %s: %v", run.RunID, err)
	}
}
