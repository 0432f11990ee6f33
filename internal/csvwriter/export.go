package csvwriter

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/your-org/strategy-miner/internal/engine"
	"github.com/your-org/strategy-miner/internal/evaluator"
)

// ExportGenerationStats writes one row per completed generation.
func ExportGenerationStats(filePath string, stats []engine.GenerationStats, logger *zap.Logger) error {
	header := []string{"generation", "best", "mean", "worst", "invalid_count", "failed_count", "best_expression"}
	w, err := NewWriter(filePath, header, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	for _, s := range stats {
		record := []string{
			strconv.Itoa(s.Generation),
			formatFloat(s.Best),
			formatFloat(s.Mean),
			formatFloat(s.Worst),
			strconv.Itoa(s.InvalidCount),
			strconv.Itoa(s.FailedCount),
			s.BestExpression,
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	logger.Info("Exported generation stats", zap.String("path", filePath), zap.Int("rows", len(stats)))
	return w.Flush()
}

// ExportHallOfFame writes the final elites, best first. The genome
// column lets a strategy be reloaded and re-evaluated later.
func ExportHallOfFame(filePath string, elites []*engine.Individual, logger *zap.Logger) error {
	header := []string{"rank", "fitness", "expression", "total_pnl", "win_rate", "trades", "max_drawdown", "genome"}
	w, err := NewWriter(filePath, header, logger)
	if err != nil {
		return err
	}
	defer w.Close()

	for i, ind := range elites {
		record := []string{
			strconv.Itoa(i + 1),
			formatFloat(ind.Fitness),
			ind.Rule.String(),
			formatFloat(ind.Metrics[evaluator.MetricTotalPnL]),
			formatFloat(ind.Metrics[evaluator.MetricWinRate]),
			strconv.Itoa(int(ind.Metrics[evaluator.MetricNumTrades])),
			formatFloat(ind.Metrics[evaluator.MetricMaxDrawdown]),
			ind.Genome.String(),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	logger.Info("Exported hall of fame", zap.String("path", filePath), zap.Int("rows", len(elites)))
	return w.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
