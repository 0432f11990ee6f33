package evaluator

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/your-org/strategy-miner/internal/ast"
	"github.com/your-org/strategy-miner/internal/catalog"
	"github.com/your-org/strategy-miner/internal/datastore"
	"github.com/your-org/strategy-miner/internal/pnl"
	"github.com/your-org/strategy-miner/internal/position"
)

// Backtest scores strategies by simulating them over historical candles:
// enter one unit when the condition turns true while flat, exit when it
// turns false. The candle set is bound at construction and treated as
// read-only, so one Backtest can be shared across evaluation workers.
type Backtest struct {
	candles datastore.Series
	logger  *zap.Logger
}

// NewBacktest creates a backtest evaluator over the given candles.
func NewBacktest(candles datastore.Series, logger *zap.Logger) *Backtest {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Backtest{candles: candles, logger: logger}
}

// Evaluate runs the simulation for one rule and returns its metrics.
func (b *Backtest) Evaluate(ctx context.Context, rule *ast.Rule) (Metrics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if rule == nil || rule.Condition == nil || rule.Action == nil {
		return nil, evalErrorf("rule is missing condition or action")
	}
	if len(b.candles) == 0 {
		return nil, evalErrorf("no market data")
	}

	direction := 0.0
	switch rule.Action.Alias {
	case catalog.AliasOpenLong:
		direction = 1
	case catalog.AliasOpenShort:
		direction = -1
	default:
		return nil, evalErrorf("unknown action %q", rule.Action.Alias)
	}

	se := &seriesEval{candles: b.candles}
	signal, err := se.evalBool(rule.Condition)
	if err != nil {
		return nil, err
	}

	pos := position.New()
	tracker := pnl.NewTracker()
	for i, c := range b.candles {
		if signal[i] && pos.Flat() {
			pos.Update(direction, c.Close)
			continue
		}
		if !signal[i] && !pos.Flat() {
			realized := pos.Update(-direction, c.Close)
			tracker.AddTrade(realized)
		}
	}
	// Force-close any open position at the final candle so every entry
	// contributes a realized result.
	if !pos.Flat() {
		realized := pos.Update(-direction, b.candles[len(b.candles)-1].Close)
		tracker.AddTrade(realized)
	}

	metrics := Metrics{
		MetricTotalPnL:    tracker.Realized(),
		MetricNumTrades:   float64(tracker.Trades()),
		MetricWinRate:     tracker.WinRate(),
		MetricMaxDrawdown: tracker.MaxDrawdown(),
		MetricSharpe:      sharpe(tracker.TradeResults()),
	}
	b.logger.Debug("evaluated strategy",
		zap.String("rule", rule.String()),
		zap.Float64("total_pnl", metrics[MetricTotalPnL]),
		zap.Float64("trades", metrics[MetricNumTrades]),
	)
	return metrics, nil
}

// sharpe computes the per-trade Sharpe ratio (mean over stddev of trade
// results). Fewer than two trades yield 0.
func sharpe(results []float64) float64 {
	if len(results) < 2 {
		return 0
	}
	mean := 0.0
	for _, r := range results {
		mean += r
	}
	mean /= float64(len(results))

	variance := 0.0
	for _, r := range results {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(results) - 1)
	if variance == 0 {
		return 0
	}
	return mean / math.Sqrt(variance)
}
