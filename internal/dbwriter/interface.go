package dbwriter

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/your-org/strategy-miner/internal/engine"
	"github.com/your-org/strategy-miner/internal/evaluator"
)

// RunRecord describes an evolution run at the moment it starts.
type RunRecord struct {
	RunID          string    `db:"run_id"`
	StartedAt      time.Time `db:"started_at"`
	PopulationSize int       `db:"population_size"`
	Generations    int       `db:"generations"`
	Seed           int64     `db:"seed"`
}

// GenerationStat is one per-generation summary row.
type GenerationStat struct {
	RunID          string    `db:"run_id"`
	Generation     int       `db:"generation"`
	BestFitness    float64   `db:"best_fitness"`
	MeanFitness    float64   `db:"mean_fitness"`
	WorstFitness   float64   `db:"worst_fitness"`
	InvalidCount   int       `db:"invalid_count"`
	FailedCount    int       `db:"failed_count"`
	BestExpression string    `db:"best_expression"`
	Time           time.Time `db:"time"`
}

// Elite is one hall-of-fame member persisted at the end of a run.
type Elite struct {
	RunID       string          `db:"run_id"`
	Rank        int             `db:"rank"`
	Fitness     float64         `db:"fitness"`
	Expression  string          `db:"expression"`
	Genome      string          `db:"genome"`
	TotalPnL    decimal.Decimal `db:"total_pnl"`
	WinRate     float64         `db:"win_rate"`
	Trades      int             `db:"trades"`
	MaxDrawdown float64         `db:"max_drawdown"`
}

// EliteFromIndividual converts a hall-of-fame member into its
// persistence row.
func EliteFromIndividual(runID string, rank int, ind *engine.Individual) Elite {
	e := Elite{
		RunID:   runID,
		Rank:    rank,
		Fitness: ind.Fitness,
		Genome:  ind.Genome.String(),
	}
	if ind.Rule != nil {
		e.Expression = ind.Rule.String()
	}
	if ind.Metrics != nil {
		e.TotalPnL = decimal.NewFromFloat(ind.Metrics[evaluator.MetricTotalPnL])
		e.WinRate = ind.Metrics[evaluator.MetricWinRate]
		e.Trades = int(ind.Metrics[evaluator.MetricNumTrades])
		e.MaxDrawdown = ind.Metrics[evaluator.MetricMaxDrawdown]
	}
	return e
}

// ResultWriter defines the interface for persisting run output.
// This allows for mocking in tests.
type ResultWriter interface {
	SaveRunStart(ctx context.Context, run RunRecord) error
	SaveGenerationStat(stat GenerationStat)
	SaveElites(ctx context.Context, elites []Elite) error
	FinishRun(ctx context.Context, runID string, bestFitness float64) error
	Close()
}
