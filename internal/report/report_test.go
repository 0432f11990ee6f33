package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/strategy-miner/internal/datastore"
)

func TestAnalyzeRequiresStats(t *testing.T) {
	_, err := Analyze(datastore.RunSummary{RunID: "run-1"}, nil, nil)
	require.ErrorIs(t, err, ErrNoGenerations)
}

func TestAnalyzeComputesProgress(t *testing.T) {
	run := datastore.RunSummary{RunID: "run-1", StartedAt: time.Now(), Generations: 4}
	stats := []datastore.GenerationRow{
		{Generation: 0, BestFitness: 1.0, InvalidCount: 10, FailedCount: 2},
		{Generation: 1, BestFitness: 1.0, InvalidCount: 8, FailedCount: 0},
		{Generation: 2, BestFitness: 3.0, InvalidCount: 6, FailedCount: 2},
		{Generation: 3, BestFitness: 4.0, InvalidCount: 4, FailedCount: 0},
	}
	elites := []datastore.EliteRow{
		{Rank: 1, Fitness: 4.0, Expression: "greater_than(sma(close, 20), close)", TotalPnL: decimal.NewFromFloat(120.5), WinRate: 0.6, Trades: 14},
		{Rank: 2, Fitness: 3.5, Expression: "less_than(rsi(close, 14), 30)", TotalPnL: decimal.NewFromFloat(80)},
	}

	r, err := Analyze(run, stats, elites)
	require.NoError(t, err)

	assert.Equal(t, 1.0, r.InitialBest)
	assert.Equal(t, 4.0, r.FinalBest)
	assert.Equal(t, 3.0, r.Improvement)
	assert.Equal(t, 2, r.ImprovedGens)
	assert.Equal(t, 7.0, r.MeanInvalidRate)
	assert.Equal(t, 1.0, r.MeanFailedRate)
	assert.True(t, r.BestElitePnL.Equal(decimal.NewFromFloat(120.5)))
	assert.True(t, r.EliteTotalPnL.Equal(decimal.NewFromFloat(200.5)))
}

func TestRenderContainsKeySections(t *testing.T) {
	run := datastore.RunSummary{RunID: "run-1", StartedAt: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	stats := []datastore.GenerationRow{{Generation: 0, BestFitness: 2.5}}
	elites := []datastore.EliteRow{
		{Rank: 1, Fitness: 2.5, Expression: "greater_than(close, open)", TotalPnL: decimal.NewFromInt(10), WinRate: 0.5, Trades: 4},
	}

	r, err := Analyze(run, stats, elites)
	require.NoError(t, err)

	out := r.Render()
	assert.Contains(t, out, "Run run-1")
	assert.Contains(t, out, "Hall of Fame")
	assert.Contains(t, out, "greater_than(close, open)")
	assert.Contains(t, out, "10.00")
}

func TestRenderEmptyHall(t *testing.T) {
	r, err := Analyze(datastore.RunSummary{RunID: "run-2"}, []datastore.GenerationRow{{BestFitness: 1}}, nil)
	require.NoError(t, err)
	assert.Contains(t, r.Render(), "(empty)")
}
