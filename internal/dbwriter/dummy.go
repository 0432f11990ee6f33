package dbwriter

import (
	"context"

	"github.com/your-org/strategy-miner/pkg/logger"
)

// dummyWriter is a no-op implementation of the ResultWriter interface.
// It is used when the database connection is not available.
type dummyWriter struct {
	logger logger.Logger
}

// NewDummyWriter creates a new dummy writer.
func NewDummyWriter(l logger.Logger) ResultWriter {
	l.Info("Creating dummy result writer because no database connection is available.")
	return &dummyWriter{logger: l}
}

// SaveRunStart does nothing and returns nil.
func (d *dummyWriter) SaveRunStart(ctx context.Context, run RunRecord) error {
	d.logger.Debugf("Dummy writer: SaveRunStart called for %s", run.RunID)
	return nil
}

// SaveGenerationStat does nothing.
func (d *dummyWriter) SaveGenerationStat(stat GenerationStat) {
	// No-op
}

// SaveElites does nothing and returns nil.
func (d *dummyWriter) SaveElites(ctx context.Context, elites []Elite) error {
	d.logger.Debugf("Dummy writer: SaveElites called with %d elites", len(elites))
	return nil
}

// FinishRun does nothing and returns nil.
func (d *dummyWriter) FinishRun(ctx context.Context, runID string, bestFitness float64) error {
	d.logger.Debugf("Dummy writer: FinishRun called for %s", runID)
	return nil
}

// Close does nothing.
func (d *dummyWriter) Close() {
	d.logger.Debug("Dummy writer: Close called")
}
