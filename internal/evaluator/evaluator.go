// Package evaluator scores strategy trees against market data. The engine
// treats it as an external collaborator: it only depends on the Evaluator
// interface and converts evaluation failures into sentinel fitness.
package evaluator

import (
	"context"
	"fmt"

	"github.com/your-org/strategy-miner/internal/ast"
)

// Metrics are the named scores produced by one evaluation.
type Metrics map[string]float64

// Metric names produced by the backtest evaluator.
const (
	MetricTotalPnL    = "total_pnl"
	MetricNumTrades   = "num_trades"
	MetricWinRate     = "win_rate"
	MetricMaxDrawdown = "max_drawdown"
	MetricSharpe      = "sharpe"
)

// EvaluationError reports a failure to score one strategy. It never
// aborts a generation; the engine assigns sentinel fitness instead.
type EvaluationError struct {
	Reason string
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluation failed: %s", e.Reason)
}

func evalErrorf(format string, args ...interface{}) *EvaluationError {
	return &EvaluationError{Reason: fmt.Sprintf(format, args...)}
}

// Evaluator scores a strategy tree.
type Evaluator interface {
	Evaluate(ctx context.Context, rule *ast.Rule) (Metrics, error)
}
