package engine

import "time"

// GenerationStats summarizes one fully evaluated generation.
type GenerationStats struct {
	RunID          string    `json:"run_id"`
	Generation     int       `json:"generation"`
	Best           float64   `json:"best"`
	Mean           float64   `json:"mean"`
	Worst          float64   `json:"worst"`
	InvalidCount   int       `json:"invalid_count"`
	FailedCount    int       `json:"failed_count"`
	BestExpression string    `json:"best_expression"`
	Time           time.Time `json:"time"`
}

// StatsSink receives per-generation summaries as the run progresses.
// Implementations must not block for long; the engine publishes from
// the orchestration goroutine between generations.
type StatsSink interface {
	PublishGeneration(stats GenerationStats)
}

// summarize computes aggregate statistics over an evaluated population.
// Sentinel-scored individuals count toward invalid/failed tallies and
// are excluded from the mean, matching what report readers expect.
func summarize(runID string, gen int, pop []*Individual) GenerationStats {
	s := GenerationStats{
		RunID:      runID,
		Generation: gen,
		Best:       SentinelFitness,
		Worst:      SentinelFitness,
		Time:       time.Now().UTC(),
	}
	var (
		sum    float64
		scored int
		best   *Individual
	)
	for _, ind := range pop {
		switch {
		case ind.evalFailed:
			s.FailedCount++
		case !ind.Valid:
			s.InvalidCount++
		}
		if IsSentinel(ind.Fitness) {
			continue
		}
		if scored == 0 || ind.Fitness < s.Worst {
			s.Worst = ind.Fitness
		}
		if ind.Fitness > s.Best {
			s.Best = ind.Fitness
			best = ind
		}
		sum += ind.Fitness
		scored++
	}
	if scored > 0 {
		s.Mean = sum / float64(scored)
	}
	if best != nil && best.Rule != nil {
		s.BestExpression = best.Rule.String()
	}
	return s
}
