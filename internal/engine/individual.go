package engine

import (
	"github.com/your-org/strategy-miner/internal/ast"
	"github.com/your-org/strategy-miner/internal/evaluator"
	"github.com/your-org/strategy-miner/internal/genome"
)

// SentinelFitness is assigned to individuals that fail validation or
// evaluation. It is worse than any achievable score, so failed
// individuals never win selection against a scored one but still occupy
// their population slot.
const SentinelFitness = -1e30

// IsSentinel reports whether f is the sentinel worst-case fitness.
func IsSentinel(f float64) bool {
	return f <= SentinelFitness
}

// Individual pairs a genome with its derived tree and scores. Derived
// fields are recomputed whenever the genome changes; offspring never
// inherit them.
type Individual struct {
	Genome  genome.Genome
	Rule    *ast.Rule
	Valid   bool
	Fitness float64
	Metrics evaluator.Metrics

	// evalFailed distinguishes evaluator errors from validation
	// rejections in the per-generation counts.
	evalFailed bool
	decodeErr  error
}

// newIndividual wraps a genome with unset derived fields.
func newIndividual(g genome.Genome) *Individual {
	return &Individual{Genome: g, Fitness: SentinelFitness}
}

// clone returns a deep copy, detached from any population slice.
func (ind *Individual) clone() *Individual {
	c := &Individual{
		Genome:     ind.Genome.Clone(),
		Rule:       ind.Rule.Clone(),
		Valid:      ind.Valid,
		Fitness:    ind.Fitness,
		evalFailed: ind.evalFailed,
	}
	if ind.Metrics != nil {
		c.Metrics = make(evaluator.Metrics, len(ind.Metrics))
		for k, v := range ind.Metrics {
			c.Metrics[k] = v
		}
	}
	return c
}
