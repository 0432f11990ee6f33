// Package report turns stored run data into human-readable summaries.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/your-org/strategy-miner/internal/datastore"
)

// ErrNoGenerations is returned when a run has no stored generation
// stats to analyze.
var ErrNoGenerations = errors.New("no generation stats recorded for run")

// RunReport holds the analysis of one stored evolution run.
type RunReport struct {
	Run    datastore.RunSummary      `json:"run"`
	Stats  []datastore.GenerationRow `json:"stats"`
	Elites []datastore.EliteRow      `json:"elites"`

	InitialBest     float64         `json:"initial_best"`
	FinalBest       float64         `json:"final_best"`
	Improvement     float64         `json:"improvement"`
	ImprovedGens    int             `json:"improved_generations"`
	MeanInvalidRate float64         `json:"mean_invalid_rate"`
	MeanFailedRate  float64         `json:"mean_failed_rate"`
	BestElitePnL    decimal.Decimal `json:"best_elite_pnl"`
	EliteTotalPnL   decimal.Decimal `json:"elite_total_pnl"`
}

// Service builds run reports from the datastore.
type Service struct {
	repo *datastore.Repository
}

// NewService creates a new report service.
func NewService(repo *datastore.Repository) *Service {
	return &Service{repo: repo}
}

// BuildRunReport fetches and analyzes one run.
func (s *Service) BuildRunReport(ctx context.Context, runID string) (RunReport, error) {
	runs, err := s.repo.FetchRuns(ctx, 1000)
	if err != nil {
		return RunReport{}, fmt.Errorf("failed to fetch runs: %w", err)
	}
	var run datastore.RunSummary
	found := false
	for _, r := range runs {
		if r.RunID == runID {
			run = r
			found = true
			break
		}
	}
	if !found {
		return RunReport{}, fmt.Errorf("run %s not found", runID)
	}

	stats, err := s.repo.FetchGenerationStats(ctx, runID)
	if err != nil {
		return RunReport{}, fmt.Errorf("failed to fetch generation stats: %w", err)
	}
	elites, err := s.repo.FetchElites(ctx, runID)
	if err != nil {
		return RunReport{}, fmt.Errorf("failed to fetch elites: %w", err)
	}
	return Analyze(run, stats, elites)
}

// Analyze computes the derived report fields from raw rows.
func Analyze(run datastore.RunSummary, stats []datastore.GenerationRow, elites []datastore.EliteRow) (RunReport, error) {
	if len(stats) == 0 {
		return RunReport{}, ErrNoGenerations
	}

	r := RunReport{
		Run:         run,
		Stats:       stats,
		Elites:      elites,
		InitialBest: stats[0].BestFitness,
		FinalBest:   stats[len(stats)-1].BestFitness,
	}
	r.Improvement = r.FinalBest - r.InitialBest

	var invalidSum, failedSum float64
	prevBest := stats[0].BestFitness
	for i, g := range stats {
		if i > 0 && g.BestFitness > prevBest {
			r.ImprovedGens++
		}
		prevBest = g.BestFitness
		invalidSum += float64(g.InvalidCount)
		failedSum += float64(g.FailedCount)
	}
	n := float64(len(stats))
	r.MeanInvalidRate = invalidSum / n
	r.MeanFailedRate = failedSum / n

	for i, e := range elites {
		if i == 0 {
			r.BestElitePnL = e.TotalPnL
		}
		r.EliteTotalPnL = r.EliteTotalPnL.Add(e.TotalPnL)
	}
	return r, nil
}

// Render formats the report as a fixed-width text block.
func (r RunReport) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run %s\n", r.Run.RunID)
	fmt.Fprintf(&b, "Started:      %s\n", r.Run.StartedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "Generations:  %d\n", len(r.Stats))
	fmt.Fprintf(&b, "Best fitness: %.4f (started at %.4f, +%.4f)\n", r.FinalBest, r.InitialBest, r.Improvement)
	fmt.Fprintf(&b, "Improved generations: %d\n", r.ImprovedGens)
	fmt.Fprintf(&b, "Mean invalid per generation: %.1f\n", r.MeanInvalidRate)
	fmt.Fprintf(&b, "Mean failed per generation:  %.1f\n", r.MeanFailedRate)
	b.WriteString("\nHall of Fame\n")
	if len(r.Elites) == 0 {
		b.WriteString("  (empty)\n")
		return b.String()
	}
	fmt.Fprintf(&b, "%4s  %12s  %12s  %8s  %7s  %s\n", "rank", "fitness", "total_pnl", "win_rate", "trades", "expression")
	for _, e := range r.Elites {
		fmt.Fprintf(&b, "%4d  %12.4f  %12s  %8.2f  %7d  %s\n",
			e.Rank, e.Fitness, e.TotalPnL.StringFixed(2), e.WinRate, e.Trades, e.Expression)
	}
	return b.String()
}
