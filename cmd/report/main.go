// Package main renders reports for stored evolution runs.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/your-org/strategy-miner/internal/config"
	"github.com/your-org/strategy-miner/internal/datastore"
	"github.com/your-org/strategy-miner/internal/report"
	"github.com/your-org/strategy-miner/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to the configuration file")
	runID := flag.String("run", "", "Run ID to report on (empty lists recent runs)")
	limit := flag.Int("limit", 20, "Number of runs to list")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.SetGlobalLogLevel(cfg.LogLevel)

	dsn := cfg.DatabaseDSN()
	if dsn == "" {
		logger.Fatal("Database is not configured; set DB_HOST and related environment variables.")
	}

	ctx := context.Background()
	dbpool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Fatalf("Unable to connect to database: %v", err)
	}
	defer dbpool.Close()

	repo := datastore.NewRepository(dbpool)

	if *runID == "" {
		listRuns(ctx, repo, *limit)
		return
	}

	service := report.NewService(repo)
	r, err := service.BuildRunReport(ctx, *runID)
	if err != nil {
		logger.Fatalf("Failed to build report for run %s: %v", *runID, err)
	}
	fmt.Fprint(os.Stdout, r.Render())
}

func listRuns(ctx context.Context, repo *datastore.Repository, limit int) {
	runs, err := repo.FetchRuns(ctx, limit)
	if err != nil {
		logger.Fatalf("Failed to fetch runs: %v", err)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}
	fmt.Printf("%-36s  %-19s  %11s  %12s\n", "run_id", "started_at", "generations", "best_fitness")
	for _, r := range runs {
		fmt.Printf("%-36s  %-19s  %11d  %12.4f\n",
			r.RunID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Generations, r.BestFitness)
	}
}
