package engine

import (
	"github.com/your-org/strategy-miner/internal/config"
	"github.com/your-org/strategy-miner/internal/evaluator"
	"github.com/your-org/strategy-miner/pkg/logger"
)

// fitnessCombiner folds an evaluator's metric map into a single score
// as a weighted sum over the configured objectives. A metric absent
// from the map contributes zero; the first occurrence of each missing
// name is logged once per run so a misconfigured objective does not
// flood the log.
type fitnessCombiner struct {
	objectives []config.Objective
	warned     map[string]bool
}

func newFitnessCombiner(objectives []config.Objective) *fitnessCombiner {
	return &fitnessCombiner{
		objectives: objectives,
		warned:     make(map[string]bool),
	}
}

func (fc *fitnessCombiner) combine(m evaluator.Metrics) float64 {
	total := 0.0
	for _, obj := range fc.objectives {
		v, ok := m[obj.Metric]
		if !ok {
			if !fc.warned[obj.Metric] {
				fc.warned[obj.Metric] = true
				logger.Warnf("objective metric %q not reported by evaluator, contributing 0", obj.Metric)
			}
			continue
		}
		total += obj.Weight * v
	}
	return total
}
