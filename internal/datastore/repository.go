package datastore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Repository handles database reads for stored evolution runs.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// RunSummary is one stored evolution run.
type RunSummary struct {
	RunID       string    `json:"run_id"`
	StartedAt   time.Time `json:"started_at"`
	Generations int       `json:"generations"`
	BestFitness float64   `json:"best_fitness"`
}

// GenerationRow is one stored per-generation stats record.
type GenerationRow struct {
	Generation   int     `json:"generation"`
	BestFitness  float64 `json:"best_fitness"`
	MeanFitness  float64 `json:"mean_fitness"`
	WorstFitness float64 `json:"worst_fitness"`
	InvalidCount int     `json:"invalid_count"`
	FailedCount  int     `json:"failed_count"`
}

// EliteRow is one stored hall-of-fame member.
type EliteRow struct {
	Rank       int             `json:"rank"`
	Fitness    float64         `json:"fitness"`
	Expression string          `json:"expression"`
	TotalPnL   decimal.Decimal `json:"total_pnl"`
	WinRate    float64         `json:"win_rate"`
	Trades     int             `json:"trades"`
}

// FetchRuns returns stored runs, most recent first.
func (r *Repository) FetchRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `
        SELECT run_id, started_at, generations, best_fitness
        FROM runs
        ORDER BY started_at DESC
        LIMIT $1;
    `
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var s RunSummary
		if err := rows.Scan(&s.RunID, &s.StartedAt, &s.Generations, &s.BestFitness); err != nil {
			return nil, err
		}
		runs = append(runs, s)
	}
	return runs, rows.Err()
}

// FetchGenerationStats returns the per-generation stats of one run in
// generation order.
func (r *Repository) FetchGenerationStats(ctx context.Context, runID string) ([]GenerationRow, error) {
	query := `
        SELECT generation, best_fitness, mean_fitness, worst_fitness, invalid_count, failed_count
        FROM generation_stats
        WHERE run_id = $1
        ORDER BY generation ASC;
    `
	rows, err := r.db.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch generation stats: %w", err)
	}
	defer rows.Close()

	var stats []GenerationRow
	for rows.Next() {
		var g GenerationRow
		if err := rows.Scan(&g.Generation, &g.BestFitness, &g.MeanFitness, &g.WorstFitness, &g.InvalidCount, &g.FailedCount); err != nil {
			return nil, err
		}
		stats = append(stats, g)
	}
	return stats, rows.Err()
}

// FetchElites returns the stored hall of fame of one run, best first.
func (r *Repository) FetchElites(ctx context.Context, runID string) ([]EliteRow, error) {
	query := `
        SELECT rank, fitness, expression, total_pnl, win_rate, trades
        FROM hall_of_fame
        WHERE run_id = $1
        ORDER BY rank ASC;
    `
	rows, err := r.db.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch elites: %w", err)
	}
	defer rows.Close()

	var elites []EliteRow
	for rows.Next() {
		var e EliteRow
		if err := rows.Scan(&e.Rank, &e.Fitness, &e.Expression, &e.TotalPnL, &e.WinRate, &e.Trades); err != nil {
			return nil, err
		}
		elites = append(elites, e)
	}
	return elites, rows.Err()
}
