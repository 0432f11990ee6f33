// Package main is the entry point of the strategy miner.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/your-org/strategy-miner/internal/alert"
	"github.com/your-org/strategy-miner/internal/catalog"
	"github.com/your-org/strategy-miner/internal/config"
	"github.com/your-org/strategy-miner/internal/csvwriter"
	"github.com/your-org/strategy-miner/internal/datastore"
	"github.com/your-org/strategy-miner/internal/dbwriter"
	"github.com/your-org/strategy-miner/internal/engine"
	"github.com/your-org/strategy-miner/internal/evaluator"
	"github.com/your-org/strategy-miner/internal/http/handler"
	"github.com/your-org/strategy-miner/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to the configuration file")
	outDir := flag.String("out", "results", "Directory for CSV exports")
	migrationsDir := flag.String("migrations", "migrations", "Path to the migrations directory")
	alertThreshold := flag.Float64("alert-threshold", 0, "Fitness threshold for alerting (0 disables)")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.SetGlobalLogLevel(cfg.LogLevel)
	logger.Info("Strategy miner starting...")
	logger.Infof("Loaded configuration from: %s", *configPath)

	zapLogger, zapErr := newZapLogger(cfg.LogLevel)
	if zapErr != nil {
		logger.Fatalf("Failed to initialize Zap logger: %v", zapErr)
	}
	defer zapLogger.Sync() //nolint:errcheck

	// --- Market Data ---
	candles, err := datastore.LoadCandlesFromCSV(cfg.Data.CandlesCSV)
	if err != nil {
		logger.Fatalf("Failed to load candles from %s: %v", cfg.Data.CandlesCSV, err)
	}
	logger.Infof("Loaded %d candles from %s", len(candles), cfg.Data.CandlesCSV)

	// --- Result Writer (Optional) ---
	var resultWriter dbwriter.ResultWriter
	dsn := cfg.DatabaseDSN()
	if dsn != "" && cfg.DBWriter.BatchSize > 0 {
		if err := datastore.RunMigrations(*migrationsDir, dsn); err != nil {
			logger.Fatalf("Failed to run migrations: %v", err)
		}
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			logger.Fatalf("Unable to connect to database: %v", err)
		}
		resultWriter, err = dbwriter.NewPostgresWriter(pool, cfg.DBWriter, zapLogger)
		if err != nil {
			logger.Fatalf("Failed to initialize PostgreSQL writer: %v", err)
		}
		logger.Info("PostgreSQL result writer initialized successfully.")
	} else {
		resultWriter = dbwriter.NewDummyWriter(logger.Default())
	}
	defer resultWriter.Close()

	// --- Sinks ---
	statusHandler := handler.NewStatusHandler()
	streamHandler := handler.NewStreamHandler(zapLogger)
	defer streamHandler.Close()
	sinks := []engine.StatsSink{statusHandler, streamHandler, dbSink{resultWriter}}
	if *alertThreshold != 0 {
		sinks = append(sinks, alert.NewThresholdSink(alert.NewLogNotifier(logger.Default()), *alertThreshold))
	}

	// --- HTTP Server (Optional) ---
	if cfg.HTTP.Port > 0 {
		go func() {
			r := chi.NewRouter()
			r.Get("/health", handler.HealthCheckHandler)
			statusHandler.RegisterRoutes(r)
			streamHandler.RegisterRoutes(r)
			addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
			logger.Infof("Status server starting on %s", addr)
			if err := http.ListenAndServe(addr, r); err != nil {
				logger.Fatalf("Status server failed: %v", err)
			}
		}()
	}

	// --- Engine ---
	backtest := evaluator.NewBacktest(candles, zapLogger)
	eng := engine.New(cfg.Evolution, cfg.Fitness.Objectives, catalog.Default(), backtest, sinks...)

	// --- Graceful Shutdown Setup ---
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		logger.Infof("Received signal %v, stopping run...", sig)
		cancel()
	}()

	if err := resultWriter.SaveRunStart(ctx, dbwriter.RunRecord{
		RunID:          eng.RunID().String(),
		StartedAt:      time.Now().UTC(),
		PopulationSize: cfg.Evolution.PopulationSize,
		Generations:    cfg.Evolution.Generations,
		Seed:           cfg.Evolution.Seed,
	}); err != nil {
		logger.Errorf("Failed to record run start: %v", err)
	}

	// --- Run ---
	res, runErr := eng.Run(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logger.Fatalf("Run failed: %v", runErr)
	}

	persistResult(res, resultWriter)
	exportResult(res, *outDir, zapLogger)

	if runErr != nil {
		logger.Info("Run stopped early, partial results saved.")
		return
	}
	logger.Info("Run complete.")
}

func newZapLogger(level string) (*zap.Logger, error) {
	if level == "debug" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// dbSink adapts the result writer to the engine's sink interface.
type dbSink struct {
	writer dbwriter.ResultWriter
}

func (s dbSink) PublishGeneration(stats engine.GenerationStats) {
	s.writer.SaveGenerationStat(dbwriter.GenerationStat{
		RunID:          stats.RunID,
		Generation:     stats.Generation,
		BestFitness:    stats.Best,
		MeanFitness:    stats.Mean,
		WorstFitness:   stats.Worst,
		InvalidCount:   stats.InvalidCount,
		FailedCount:    stats.FailedCount,
		BestExpression: stats.BestExpression,
		Time:           stats.Time,
	})
}

func persistResult(res *engine.Result, writer dbwriter.ResultWriter) {
	ctx := context.Background()
	runID := res.RunID.String()

	elites := make([]dbwriter.Elite, len(res.HallOfFame))
	for i, ind := range res.HallOfFame {
		elites[i] = dbwriter.EliteFromIndividual(runID, i+1, ind)
	}
	if err := writer.SaveElites(ctx, elites); err != nil {
		logger.Errorf("Failed to persist hall of fame: %v", err)
	}

	best := engine.SentinelFitness
	if res.Best != nil {
		best = res.Best.Fitness
	}
	if err := writer.FinishRun(ctx, runID, best); err != nil {
		logger.Errorf("Failed to finish run record: %v", err)
	}
}

func exportResult(res *engine.Result, outDir string, zapLogger *zap.Logger) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		logger.Errorf("Failed to create output directory %s: %v", outDir, err)
		return
	}
	statsPath := filepath.Join(outDir, fmt.Sprintf("%s_generations.csv", res.RunID))
	if err := csvwriter.ExportGenerationStats(statsPath, res.Generations, zapLogger); err != nil {
		logger.Errorf("Failed to export generation stats: %v", err)
	}
	hofPath := filepath.Join(outDir, fmt.Sprintf("%s_hall_of_fame.csv", res.RunID))
	if err := csvwriter.ExportHallOfFame(hofPath, res.HallOfFame, zapLogger); err != nil {
		logger.Errorf("Failed to export hall of fame: %v", err)
	}
}
