package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/incomemap/dashboard/apps/api/internal/platform/config"
	firestoreclient "github.com/incomemap/dashboard/apps/api/internal/platform/firestore"
	"github.com/incomemap/dashboard/apps/api/internal/repository"
	"github.com/joho/godotenv"
)

func main() {
	docID := flag.String("id", "", "income_records document ID to print")
	flag.Parse()

	ctx := context.Background()
	_ = godotenv.Load(".env.local", ".env")
	if os.Getenv("DATASET_SOURCE") == "" {
		os.Setenv("DATASET_SOURCE", config.SourceFirestore)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, credsSource, err := firestoreclient.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer client.Close()

	if err := firestoreclient.Ping(ctx, client); err != nil {
		log.Fatalf("Firestore ping failed: %v", err)
	}
	fmt.Printf("Connected to Firestore project %s using %s credentials\n\n", cfg.FirebaseProjectID, credsSource)

	summary, err := repository.NewSummaryRepository(client).GetSummary(ctx)
	if err != nil {
		log.Fatalf("Failed to get summary: %v", err)
	}
	printJSON("Income summary:", summary)

	if *docID == "" {
		return
	}
	rec, err := repository.NewRecordRepository(client).Get(ctx, *docID)
	if err != nil {
		log.Fatalf("Failed to get document: %v", err)
	}
	fmt.Println()
	printJSON(fmt.Sprintf("Document %s:", *docID), rec)
}

func printJSON(title string, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal: %v", err)
	}
	fmt.Println(title)
	fmt.Println(string(data))
}
