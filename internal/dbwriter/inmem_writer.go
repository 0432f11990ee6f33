package dbwriter

import (
	"context"
	"sync"
)

// InMemWriter is an in-memory implementation of the ResultWriter
// interface for testing.
type InMemWriter struct {
	mu       sync.RWMutex
	Runs     []RunRecord
	Stats    []GenerationStat
	Elites   []Elite
	Finished map[string]float64
	IsClosed bool
}

// NewInMemWriter creates a new InMemWriter.
func NewInMemWriter() *InMemWriter {
	return &InMemWriter{
		Runs:     make([]RunRecord, 0),
		Stats:    make([]GenerationStat, 0),
		Elites:   make([]Elite, 0),
		Finished: make(map[string]float64),
	}
}

// SaveRunStart appends the run record to the in-memory slice.
func (w *InMemWriter) SaveRunStart(ctx context.Context, run RunRecord) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Runs = append(w.Runs, run)
	return nil
}

// SaveGenerationStat appends a stat row to the in-memory slice.
func (w *InMemWriter) SaveGenerationStat(stat GenerationStat) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Stats = append(w.Stats, stat)
}

// SaveElites appends the elites to the in-memory slice.
func (w *InMemWriter) SaveElites(ctx context.Context, elites []Elite) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Elites = append(w.Elites, elites...)
	return nil
}

// FinishRun records the run's final best fitness.
func (w *InMemWriter) FinishRun(ctx context.Context, runID string, bestFitness float64) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Finished[runID] = bestFitness
	return nil
}

// Close marks the writer as closed.
func (w *InMemWriter) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.IsClosed = true
}

// Clear resets all the in-memory state.
func (w *InMemWriter) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Runs = make([]RunRecord, 0)
	w.Stats = make([]GenerationStat, 0)
	w.Elites = make([]Elite, 0)
	w.Finished = make(map[string]float64)
	w.IsClosed = false
}
