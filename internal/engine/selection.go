package engine

import (
	"math/rand"
	"sort"

	"github.com/your-org/strategy-miner/internal/genome"
)

// tournament draws tournamentSize individuals uniformly at random with
// replacement and returns the fittest. Sentinel-scored individuals can
// be drawn but lose to any scored contestant.
func tournament(rng *rand.Rand, pop []*Individual, tournamentSize int) *Individual {
	best := pop[rng.Intn(len(pop))]
	for i := 1; i < tournamentSize; i++ {
		contender := pop[rng.Intn(len(pop))]
		if contender.Fitness > best.Fitness {
			best = contender
		}
	}
	return best
}

// breed produces the next generation: elites carried over unchanged,
// the rest filled with tournament-selected parents run through
// crossover and mutation. All randomness flows through the single rng
// so runs with a fixed seed reproduce exactly.
func (e *Engine) breed(pop []*Individual) []*Individual {
	n := len(pop)
	next := make([]*Individual, 0, n)

	for _, elite := range topN(pop, e.cfg.ElitismCount) {
		next = append(next, newIndividual(elite.Genome.Clone()))
	}

	for len(next) < n {
		p1 := tournament(e.rng, pop, e.cfg.TournamentSize)
		p2 := tournament(e.rng, pop, e.cfg.TournamentSize)

		var c1, c2 genome.Genome
		if e.rng.Float64() < e.cfg.CrossoverRate {
			c1, c2 = genome.Crossover(e.rng, p1.Genome, p2.Genome)
		} else {
			c1, c2 = p1.Genome.Clone(), p2.Genome.Clone()
		}
		c1 = genome.Mutate(e.rng, c1, e.cfg.MutationRate)
		c2 = genome.Mutate(e.rng, c2, e.cfg.MutationRate)

		next = append(next, newIndividual(c1))
		if len(next) < n {
			next = append(next, newIndividual(c2))
		}
	}
	return next
}

// topN returns the n fittest individuals, best first. Ties keep
// population order so the result is deterministic.
func topN(pop []*Individual, n int) []*Individual {
	if n <= 0 {
		return nil
	}
	ranked := make([]*Individual, len(pop))
	copy(ranked, pop)
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Fitness > ranked[b].Fitness
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}
