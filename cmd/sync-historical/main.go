// Command sync-historical backfills the trailing N months of MGNREGA
// performance data for every district, pacing upstream calls at one
// per two seconds. Intended for out-of-band runs; the HTTP trigger
// only syncs the current month.
//
// Usage: sync-historical [months]   (1-24, default 12)
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/Dozzergeeky/mgnrega-insights/config"
	"github.com/Dozzergeeky/mgnrega-insights/mgnrega"
	"github.com/Dozzergeeky/mgnrega-insights/store"
)

func main() {
	monthsBack := 12
	if len(os.Args) > 1 {
		parsed, err := strconv.Atoi(os.Args[1])
		if err != nil || parsed < 1 || parsed > 24 {
			fmt.Fprintln(os.Stderr, "Usage: sync-historical [months]")
			fmt.Fprintln(os.Stderr, "Example: sync-historical 12")
			fmt.Fprintln(os.Stderr, "Months must be between 1 and 24")
			os.Exit(1)
		}
		monthsBack = parsed
	}

	config.LoadEnv()
	cfg := config.Load()

	if err := cfg.ValidateAPIConfig(); err != nil {
		log.Printf("Historical sync failed: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()

	mongoClient, mongoDB, err := config.ConnectMongo(ctx, cfg)
	if err != nil {
		log.Printf("Historical sync failed: %v", err)
		os.Exit(1)
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		mongoClient.Disconnect(disconnectCtx)
	}()

	metrics := store.NewMetrics(mongoDB)
	indexCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	err = metrics.EnsureIndexes(indexCtx)
	cancel()
	if err != nil {
		log.Printf("Historical sync failed: could not ensure indexes: %v", err)
		os.Exit(1)
	}

	// Postgres is optional here; district listing falls through tiers.
	db, err := config.OpenPostgresWithRetry(cfg)
	if err != nil {
		log.Printf("Warning: PostgreSQL unavailable, district reference will fall back: %v", err)
		db = nil
	} else {
		defer db.Close()
	}

	syncer := mgnrega.NewSyncer(mgnrega.NewClient(cfg), metrics, store.NewTieredDistricts(db, mongoDB))

	tally, err := syncer.SyncHistorical(ctx, monthsBack)
	if err != nil {
		log.Printf("Historical sync failed: %v", err)
		os.Exit(1)
	}

	log.Println("============================================================")
	log.Println("SYNC SUMMARY")
	log.Println("============================================================")
	log.Printf("Successfully synced: %d periods", tally.Synced)
	log.Printf("Already existed:     %d periods", tally.Skipped)
	log.Printf("No data available:   %d periods", tally.NoData)
	log.Printf("Errors:              %d periods", tally.Failed)
	log.Printf("Total processed:     %d periods", tally.Synced+tally.Skipped+tally.NoData+tally.Failed)
	log.Println("============================================================")
	log.Println("Historical sync complete")
}
