package engine

import (
	"context"
	"errors"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/your-org/strategy-miner/internal/catalog"
	"github.com/your-org/strategy-miner/internal/config"
	"github.com/your-org/strategy-miner/internal/evaluator"
	"github.com/your-org/strategy-miner/internal/genome"
	"github.com/your-org/strategy-miner/internal/mapper"
	"github.com/your-org/strategy-miner/internal/validator"
	"github.com/your-org/strategy-miner/pkg/logger"
)

// Engine drives an evolutionary search over rule genomes. Each
// generation it decodes, validates and scores the population in
// parallel, then breeds the next generation on the orchestration
// goroutine. Breeding draws from a single random stream, so a fixed
// seed reproduces a run exactly regardless of worker count.
type Engine struct {
	cfg        config.EvolutionConfig
	cat        *catalog.Catalog
	mapper     *mapper.Mapper
	structural *validator.Structural
	diversity  *validator.Diversity
	eval       evaluator.Evaluator
	combiner   *fitnessCombiner
	rng        *rand.Rand
	workers    int
	runID      uuid.UUID
	sinks      []StatsSink
	hof        *HallOfFame
}

// Result is what a run leaves behind: generation summaries for every
// generation that finished, the best strategy found and the hall of
// fame, best first.
type Result struct {
	RunID       uuid.UUID
	Generations []GenerationStats
	Best        *Individual
	HallOfFame  []*Individual
	Elapsed     time.Duration
}

// New builds an engine from validated configuration. A zero seed draws
// one from the clock; a zero worker count uses all CPUs.
func New(cfg config.EvolutionConfig, objectives []config.Objective, cat *catalog.Catalog, eval evaluator.Evaluator, sinks ...StatsSink) *Engine {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	diversity := validator.NewDiversity(cfg.DiversityMinDifference)
	return &Engine{
		cfg:        cfg,
		cat:        cat,
		mapper:     mapper.New(cat, cfg.MaxTreeDepth),
		structural: validator.NewStructural(cat, cfg.MaxTreeDepth),
		diversity:  diversity,
		eval:       eval,
		combiner:   newFitnessCombiner(objectives),
		rng:        rand.New(rand.NewSource(seed)),
		workers:    workers,
		runID:      uuid.New(),
		sinks:      sinks,
		hof:        NewHallOfFame(cfg.HallOfFameSize, diversity),
	}
}

// RunID identifies this engine's run in persisted stats and reports.
func (e *Engine) RunID() uuid.UUID { return e.runID }

// Run executes the configured number of generations and returns the
// run result. On context cancellation the generation in flight is
// discarded and the result covers only completed generations, returned
// together with the context error. A decode error caused by catalog
// misconfiguration aborts the run.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	logger.Infof("run %s starting: population=%d generations=%d workers=%d",
		e.runID, e.cfg.PopulationSize, e.cfg.Generations, e.workers)

	pop := make([]*Individual, e.cfg.PopulationSize)
	for i := range pop {
		pop[i] = newIndividual(genome.NewRandom(e.rng, e.cfg.GenomeLength))
	}

	res := &Result{RunID: e.runID}
	for gen := 0; gen < e.cfg.Generations; gen++ {
		if err := e.evaluatePopulation(ctx, pop); err != nil {
			e.finish(res, start)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				logger.Infof("run %s cancelled after %d generations", e.runID, gen)
			} else {
				logger.Errorf("run %s aborted at generation %d: %v", e.runID, gen, err)
			}
			return res, err
		}

		stats := summarize(e.runID.String(), gen, pop)
		res.Generations = append(res.Generations, stats)
		for _, sink := range e.sinks {
			sink.PublishGeneration(stats)
		}
		logger.Infof("gen %d: best=%.4f mean=%.4f worst=%.4f invalid=%d failed=%d",
			gen, stats.Best, stats.Mean, stats.Worst, stats.InvalidCount, stats.FailedCount)

		for _, ind := range pop {
			e.hof.Offer(ind)
		}

		if gen < e.cfg.Generations-1 {
			pop = e.breed(pop)
		}
	}

	e.finish(res, start)
	logger.Infof("run %s finished in %s: best=%.4f hall_of_fame=%d",
		e.runID, res.Elapsed.Round(time.Millisecond), bestFitness(res), len(res.HallOfFame))
	return res, nil
}

func (e *Engine) finish(res *Result, start time.Time) {
	res.Best = e.hof.Best()
	res.HallOfFame = e.hof.Entries()
	res.Elapsed = time.Since(start)
}

func bestFitness(res *Result) float64 {
	if res.Best == nil {
		return SentinelFitness
	}
	return res.Best.Fitness
}

// evaluatePopulation decodes, validates and scores every individual
// using a pool of workers. Each worker writes only to the individual
// at its own index, so no locking is needed on the population.
func (e *Engine) evaluatePopulation(ctx context.Context, pop []*Individual) error {
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				e.evaluateOne(ctx, pop[i])
			}
		}()
	}

feed:
	for i := range pop {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	// A decode failure from a missing catalog production is
	// configuration, not chance: every genome hits it. Surface the
	// first one and abort.
	for _, ind := range pop {
		var genErr *mapper.GenerationError
		if errors.As(ind.decodeErr, &genErr) {
			return ind.decodeErr
		}
	}

	// Fitness is combined on the orchestration goroutine so the
	// missing-metric warning bookkeeping stays race-free.
	for _, ind := range pop {
		if ind.Valid {
			ind.Fitness = e.combiner.combine(ind.Metrics)
		}
	}
	return nil
}

// evaluateOne recomputes every derived field of ind from its genome.
func (e *Engine) evaluateOne(ctx context.Context, ind *Individual) {
	ind.Rule = nil
	ind.Valid = false
	ind.Fitness = SentinelFitness
	ind.Metrics = nil
	ind.evalFailed = false
	ind.decodeErr = nil

	rule, err := e.mapper.CreateStrategy(ind.Genome)
	if err != nil {
		ind.decodeErr = err
		return
	}
	ind.Rule = rule

	if err := e.structural.ValidateRule(rule); err != nil {
		return
	}
	if !e.diversity.ValidateRule(rule) {
		return
	}

	metrics, err := e.eval.Evaluate(ctx, rule)
	if err != nil {
		ind.evalFailed = true
		return
	}
	ind.Valid = true
	ind.Metrics = metrics
}
