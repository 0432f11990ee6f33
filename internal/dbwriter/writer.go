package dbwriter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/your-org/strategy-miner/internal/config"
)

// Pool is an interface that abstracts the pgxpool.Pool for testability.
type Pool interface {
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Close()
}

// PostgresWriter persists run output to PostgreSQL. Generation stats
// are buffered and batch-inserted either when the buffer reaches the
// configured batch size or on the flush ticker, whichever comes first.
// Run records and elites are written directly.
type PostgresWriter struct {
	pool   Pool
	logger *zap.Logger
	config config.DBWriterConfig

	statBuffer  []GenerationStat
	bufferMutex sync.Mutex

	flushTicker  *time.Ticker
	shutdownChan chan struct{}
}

// NewPostgresWriter starts a background batch writer over the provided
// pool. The writer takes ownership of the pool and closes it on Close.
func NewPostgresWriter(pool Pool, writerConfig config.DBWriterConfig, logger *zap.Logger) (*PostgresWriter, error) {
	if pool == nil {
		return nil, fmt.Errorf("postgres writer requires a connection pool")
	}
	if writerConfig.WriteIntervalSeconds <= 0 {
		logger.Warn("WriteIntervalSeconds is zero or negative, defaulting to 1s",
			zap.Int("originalValue", writerConfig.WriteIntervalSeconds))
		writerConfig.WriteIntervalSeconds = 1
	}
	if writerConfig.BatchSize <= 0 {
		logger.Warn("BatchSize is zero or negative, defaulting to 100",
			zap.Int("originalValue", writerConfig.BatchSize))
		writerConfig.BatchSize = 100
	}

	w := &PostgresWriter{
		pool:         pool,
		logger:       logger,
		config:       writerConfig,
		statBuffer:   make([]GenerationStat, 0, writerConfig.BatchSize),
		shutdownChan: make(chan struct{}),
	}
	w.flushTicker = time.NewTicker(time.Duration(writerConfig.WriteIntervalSeconds) * time.Second)
	go w.run()
	logger.Info("Started PostgreSQL batch writer",
		zap.Int("batchSize", writerConfig.BatchSize),
		zap.Int("writeIntervalSeconds", writerConfig.WriteIntervalSeconds))
	return w, nil
}

func (w *PostgresWriter) run() {
	for {
		select {
		case <-w.flushTicker.C:
			w.flushStats()
		case <-w.shutdownChan:
			return
		}
	}
}

// SaveRunStart records the run before the first generation completes so
// partial runs remain attributable.
func (w *PostgresWriter) SaveRunStart(ctx context.Context, run RunRecord) error {
	query := `INSERT INTO runs (run_id, started_at, population_size, generations, seed, best_fitness)
	          VALUES ($1, $2, $3, $4, $5, 0)`
	_, err := w.pool.Exec(ctx, query,
		run.RunID, run.StartedAt, run.PopulationSize, run.Generations, run.Seed,
	)
	if err != nil {
		w.logger.Error("Failed to insert run record", zap.Error(err), zap.String("runID", run.RunID))
		return fmt.Errorf("failed to insert run record: %w", err)
	}
	return nil
}

// SaveGenerationStat buffers one generation summary.
func (w *PostgresWriter) SaveGenerationStat(stat GenerationStat) {
	w.bufferMutex.Lock()
	w.statBuffer = append(w.statBuffer, stat)
	shouldFlush := len(w.statBuffer) >= w.config.BatchSize
	w.bufferMutex.Unlock()

	if shouldFlush {
		w.flushStats()
	}
}

func (w *PostgresWriter) flushStats() {
	w.bufferMutex.Lock()
	defer w.bufferMutex.Unlock()

	if len(w.statBuffer) == 0 {
		return
	}
	w.batchInsertStats(context.Background(), w.statBuffer)
	w.statBuffer = w.statBuffer[:0]
}

func (w *PostgresWriter) batchInsertStats(ctx context.Context, stats []GenerationStat) {
	w.logger.Debug("Flushing generation stats", zap.Int("count", len(stats)))

	_, err := w.pool.CopyFrom(
		ctx,
		pgx.Identifier{"generation_stats"},
		[]string{"run_id", "generation", "best_fitness", "mean_fitness", "worst_fitness", "invalid_count", "failed_count", "best_expression", "time"},
		pgx.CopyFromRows(toStatInterfaces(stats)),
	)
	if err != nil {
		w.logger.Error("Failed to batch insert generation stats", zap.Error(err))
	}
}

func toStatInterfaces(stats []GenerationStat) [][]interface{} {
	rows := make([][]interface{}, len(stats))
	for i, s := range stats {
		rows[i] = []interface{}{s.RunID, s.Generation, s.BestFitness, s.MeanFitness, s.WorstFitness, s.InvalidCount, s.FailedCount, s.BestExpression, s.Time}
	}
	return rows
}

// SaveElites replaces the stored hall of fame for the run.
func (w *PostgresWriter) SaveElites(ctx context.Context, elites []Elite) error {
	if len(elites) == 0 {
		return nil
	}
	runID := elites[0].RunID
	if _, err := w.pool.Exec(ctx, `DELETE FROM hall_of_fame WHERE run_id = $1`, runID); err != nil {
		w.logger.Error("Failed to clear previous elites", zap.Error(err), zap.String("runID", runID))
		return fmt.Errorf("failed to clear previous elites: %w", err)
	}

	_, err := w.pool.CopyFrom(
		ctx,
		pgx.Identifier{"hall_of_fame"},
		[]string{"run_id", "rank", "fitness", "expression", "genome", "total_pnl", "win_rate", "trades", "max_drawdown"},
		pgx.CopyFromRows(toEliteInterfaces(elites)),
	)
	if err != nil {
		w.logger.Error("Failed to batch insert elites", zap.Error(err), zap.String("runID", runID))
		return fmt.Errorf("failed to batch insert elites: %w", err)
	}
	w.logger.Debug("Saved hall of fame", zap.String("runID", runID), zap.Int("count", len(elites)))
	return nil
}

func toEliteInterfaces(elites []Elite) [][]interface{} {
	rows := make([][]interface{}, len(elites))
	for i, e := range elites {
		rows[i] = []interface{}{e.RunID, e.Rank, e.Fitness, e.Expression, e.Genome, e.TotalPnL, e.WinRate, e.Trades, e.MaxDrawdown}
	}
	return rows
}

// FinishRun stamps the run finished and records the final best score.
func (w *PostgresWriter) FinishRun(ctx context.Context, runID string, bestFitness float64) error {
	query := `UPDATE runs SET finished_at = $1, best_fitness = $2 WHERE run_id = $3`
	_, err := w.pool.Exec(ctx, query, time.Now().UTC(), bestFitness, runID)
	if err != nil {
		w.logger.Error("Failed to finish run record", zap.Error(err), zap.String("runID", runID))
		return fmt.Errorf("failed to finish run record: %w", err)
	}
	return nil
}

// Close flushes the remaining buffer and closes the pool.
func (w *PostgresWriter) Close() {
	w.logger.Info("Closing PostgreSQL writer...")
	close(w.shutdownChan)
	w.flushTicker.Stop()

	w.flushStats()
	w.pool.Close()
	w.logger.Info("PostgreSQL connection pool closed")
}
