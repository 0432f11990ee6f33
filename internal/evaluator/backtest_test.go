package evaluator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/strategy-miner/internal/ast"
	"github.com/your-org/strategy-miner/internal/catalog"
)

func closeAboveRule(threshold float64, action string) *ast.Rule {
	return &ast.Rule{
		Condition: ast.NewCall(catalog.AliasGreaterThan, ast.NewCall(catalog.AliasClose), ast.NewFloatConst(threshold)),
		Action:    ast.NewCall(action),
	}
}

func TestBacktestLongRoundTrips(t *testing.T) {
	// Signal is F T T F T: enter at 6, exit at 3, re-enter at 8 and get
	// force-closed at the final candle for a flat trade.
	bt := NewBacktest(candlesWithCloses(4, 6, 7, 3, 8), nil)

	metrics, err := bt.Evaluate(context.Background(), closeAboveRule(5, catalog.AliasOpenLong))
	require.NoError(t, err)

	assert.InDelta(t, -3.0, metrics[MetricTotalPnL], 1e-9)
	assert.Equal(t, 2.0, metrics[MetricNumTrades])
	assert.Equal(t, 0.0, metrics[MetricWinRate])
	assert.InDelta(t, 3.0, metrics[MetricMaxDrawdown], 1e-9)
	assert.InDelta(t, -0.7071067811, metrics[MetricSharpe], 1e-6)
}

func TestBacktestShortProfitsOnDecline(t *testing.T) {
	bt := NewBacktest(candlesWithCloses(4, 6, 3), nil)

	metrics, err := bt.Evaluate(context.Background(), closeAboveRule(5, catalog.AliasOpenShort))
	require.NoError(t, err)

	assert.InDelta(t, 3.0, metrics[MetricTotalPnL], 1e-9)
	assert.Equal(t, 1.0, metrics[MetricNumTrades])
	assert.Equal(t, 1.0, metrics[MetricWinRate])
	assert.Equal(t, 0.0, metrics[MetricMaxDrawdown])
}

func TestBacktestForceClosesAtFinalCandle(t *testing.T) {
	bt := NewBacktest(candlesWithCloses(4, 6, 7), nil)

	metrics, err := bt.Evaluate(context.Background(), closeAboveRule(5, catalog.AliasOpenLong))
	require.NoError(t, err)

	assert.InDelta(t, 1.0, metrics[MetricTotalPnL], 1e-9)
	assert.Equal(t, 1.0, metrics[MetricNumTrades])
	assert.Equal(t, 1.0, metrics[MetricWinRate])
}

func TestBacktestNoSignalNoTrades(t *testing.T) {
	bt := NewBacktest(candlesWithCloses(1, 2, 3), nil)

	metrics, err := bt.Evaluate(context.Background(), closeAboveRule(10, catalog.AliasOpenLong))
	require.NoError(t, err)

	assert.Equal(t, 0.0, metrics[MetricTotalPnL])
	assert.Equal(t, 0.0, metrics[MetricNumTrades])
	assert.Equal(t, 0.0, metrics[MetricWinRate])
	assert.Equal(t, 0.0, metrics[MetricSharpe])
}

func TestBacktestErrors(t *testing.T) {
	bt := NewBacktest(candlesWithCloses(1, 2), nil)
	var evalErr *EvaluationError

	_, err := bt.Evaluate(context.Background(), nil)
	require.ErrorAs(t, err, &evalErr)

	_, err = bt.Evaluate(context.Background(), closeAboveRule(5, "sell_everything"))
	require.ErrorAs(t, err, &evalErr)
	assert.Contains(t, err.Error(), "unknown action")

	empty := NewBacktest(nil, nil)
	_, err = empty.Evaluate(context.Background(), closeAboveRule(5, catalog.AliasOpenLong))
	require.ErrorAs(t, err, &evalErr)
	assert.Contains(t, err.Error(), "no market data")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = bt.Evaluate(ctx, closeAboveRule(5, catalog.AliasOpenLong))
	require.ErrorIs(t, err, context.Canceled)
}

func TestSharpe(t *testing.T) {
	assert.Equal(t, 0.0, sharpe(nil))
	assert.Equal(t, 0.0, sharpe([]float64{5}))
	assert.Equal(t, 0.0, sharpe([]float64{2, 2, 2}))
	assert.InDelta(t, -0.7071067811, sharpe([]float64{-3, 0}), 1e-6)
}
