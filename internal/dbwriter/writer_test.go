package dbwriter

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/your-org/strategy-miner/internal/config"
)

func TestPostgresWriter_ImplementsResultWriter(t *testing.T) {
	assert.Implements(t, (*ResultWriter)(nil), new(PostgresWriter))
	assert.Implements(t, (*ResultWriter)(nil), new(InMemWriter))
}

func testWriterConfig() config.DBWriterConfig {
	return config.DBWriterConfig{
		BatchSize:            1, // flush on every stat
		WriteIntervalSeconds: 60,
	}
}

func TestPostgresWriter_SaveGenerationStat(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	writer, err := NewPostgresWriter(mock, testWriterConfig(), zap.NewNop())
	require.NoError(t, err)

	mock.ExpectCopyFrom(
		pgx.Identifier{"generation_stats"},
		[]string{"run_id", "generation", "best_fitness", "mean_fitness", "worst_fitness", "invalid_count", "failed_count", "best_expression", "time"},
	)

	// Batch size 1 triggers an immediate flush.
	writer.SaveGenerationStat(GenerationStat{
		RunID:          "run-1",
		Generation:     0,
		BestFitness:    12.5,
		MeanFitness:    3.1,
		WorstFitness:   -4.0,
		InvalidCount:   2,
		FailedCount:    1,
		BestExpression: "greater_than(sma(close, 20), close)",
		Time:           time.Now().UTC(),
	})

	require.NoError(t, mock.ExpectationsWereMet(), "there were unfulfilled expectations")
}

func TestPostgresWriter_BuffersUntilBatchSize(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	cfg := testWriterConfig()
	cfg.BatchSize = 3
	writer, err := NewPostgresWriter(mock, cfg, zap.NewNop())
	require.NoError(t, err)

	// Two stats stay in the buffer; no database call expected yet.
	writer.SaveGenerationStat(GenerationStat{RunID: "run-1", Generation: 0})
	writer.SaveGenerationStat(GenerationStat{RunID: "run-1", Generation: 1})
	require.NoError(t, mock.ExpectationsWereMet())

	// The third stat reaches the batch size and flushes all three.
	mock.ExpectCopyFrom(
		pgx.Identifier{"generation_stats"},
		[]string{"run_id", "generation", "best_fitness", "mean_fitness", "worst_fitness", "invalid_count", "failed_count", "best_expression", "time"},
	)
	writer.SaveGenerationStat(GenerationStat{RunID: "run-1", Generation: 2})
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresWriter_SaveRunStartAndFinish(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	writer, err := NewPostgresWriter(mock, testWriterConfig(), zap.NewNop())
	require.NoError(t, err)

	run := RunRecord{
		RunID:          "run-1",
		StartedAt:      time.Now().UTC(),
		PopulationSize: 500,
		Generations:    100,
		Seed:           42,
	}
	mock.ExpectExec("INSERT INTO runs").
		WithArgs(run.RunID, run.StartedAt, run.PopulationSize, run.Generations, run.Seed).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, writer.SaveRunStart(context.Background(), run))

	mock.ExpectExec("UPDATE runs SET finished_at").
		WithArgs(pgxmock.AnyArg(), 99.5, "run-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, writer.FinishRun(context.Background(), "run-1", 99.5))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresWriter_SaveElites(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	writer, err := NewPostgresWriter(mock, testWriterConfig(), zap.NewNop())
	require.NoError(t, err)

	mock.ExpectExec("DELETE FROM hall_of_fame").
		WithArgs("run-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectCopyFrom(
		pgx.Identifier{"hall_of_fame"},
		[]string{"run_id", "rank", "fitness", "expression", "genome", "total_pnl", "win_rate", "trades", "max_drawdown"},
	)

	err = writer.SaveElites(context.Background(), []Elite{
		{
			RunID:      "run-1",
			Rank:       1,
			Fitness:    42.0,
			Expression: "IF greater_than(sma(close, 20), close) THEN open_long",
			Genome:     "1,2,3",
			TotalPnL:   decimal.NewFromFloat(42.0),
			WinRate:    0.6,
			Trades:     15,
		},
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	// Nothing to persist for an empty hall.
	require.NoError(t, writer.SaveElites(context.Background(), nil))
}

func TestInMemWriter_RecordsEverything(t *testing.T) {
	w := NewInMemWriter()

	require.NoError(t, w.SaveRunStart(context.Background(), RunRecord{RunID: "run-1"}))
	w.SaveGenerationStat(GenerationStat{RunID: "run-1", Generation: 0, BestFitness: 1})
	w.SaveGenerationStat(GenerationStat{RunID: "run-1", Generation: 1, BestFitness: 2})
	require.NoError(t, w.SaveElites(context.Background(), []Elite{{RunID: "run-1", Rank: 1}}))
	require.NoError(t, w.FinishRun(context.Background(), "run-1", 2))
	w.Close()

	assert.Len(t, w.Runs, 1)
	assert.Len(t, w.Stats, 2)
	assert.Len(t, w.Elites, 1)
	assert.Equal(t, 2.0, w.Finished["run-1"])
	assert.True(t, w.IsClosed)

	w.Clear()
	assert.Empty(t, w.Stats)
	assert.False(t, w.IsClosed)
}
