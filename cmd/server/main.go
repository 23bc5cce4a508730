package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/incomemap/dashboard/apps/api/internal/business/income"
	"github.com/incomemap/dashboard/apps/api/internal/business/loader"
	"github.com/incomemap/dashboard/apps/api/internal/platform/config"
	firestoreclient "github.com/incomemap/dashboard/apps/api/internal/platform/firestore"
	apirouter "github.com/incomemap/dashboard/apps/api/internal/platform/http"
	"github.com/incomemap/dashboard/apps/api/internal/repository"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	gin.SetMode(cfg.GinMode)

	table, err := cfg.BinTable()
	if err != nil {
		log.Fatalf("income bins: %v", err)
	}

	var records loader.RecordStreamer
	if cfg.DatasetSource == config.SourceFirestore {
		firestoreClient, credsSource, err := firestoreclient.New(ctx, cfg)
		if err != nil {
			log.Fatalf("firestore init: %v", err)
		}
		defer firestoreClient.Close()

		if err := firestoreclient.Ping(ctx, firestoreClient); err != nil {
			log.Fatalf("firestore ping: %v", err)
		}
		log.Printf("connected to Firestore project %s using %s credentials", cfg.FirebaseProjectID, credsSource)
		records = repository.NewRecordRepository(firestoreClient)
	}

	src, err := loader.NewSource(cfg, records)
	if err != nil {
		log.Fatalf("dataset source: %v", err)
	}

	started := time.Now()
	log.Printf("loading dataset from %s", src.Describe())
	loaded, stats, err := src.Load(ctx)
	if err != nil {
		log.Fatalf("dataset load: %v", err)
	}
	log.Printf("dataset loaded in %s: read=%d loaded=%d skipped=%d", time.Since(started).Round(time.Millisecond), stats.Read, stats.Loaded, stats.Skipped)
	for _, p := range stats.Problems {
		log.Printf("skipped line %d: %s", p.Line, p.Reason)
	}

	dataset := income.NewDataset(loaded, table)
	log.Printf("dashboard ready: %d records across %d states", dataset.Len(), len(dataset.States()))

	router := apirouter.NewRouter(dataset, cfg.AllowedOrigins)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on :%s", cfg.Port)

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
	log.Println("server exited")
}
