package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/strategy-miner/internal/ast"
	"github.com/your-org/strategy-miner/internal/catalog"
	"github.com/your-org/strategy-miner/internal/genome"
	"github.com/your-org/strategy-miner/internal/validator"
)

// smaRule builds IF greater_than(sma(close, period), close) THEN open_long.
func smaRule(period int) *ast.Rule {
	sma := ast.NewCall(catalog.AliasSMA,
		ast.NewCall(catalog.AliasClose),
		ast.NewIntConst(period),
	)
	cond := ast.NewCall(catalog.AliasGreaterThan, sma, ast.NewCall(catalog.AliasClose))
	return &ast.Rule{Condition: cond, Action: ast.NewCall(catalog.AliasOpenLong)}
}

func hofCandidate(period int, fitness float64) *Individual {
	return &Individual{
		Genome:  genome.Genome{1, 2, 3},
		Rule:    smaRule(period),
		Valid:   true,
		Fitness: fitness,
	}
}

func TestHallOfFameRejectsSentinelAndNilTree(t *testing.T) {
	hof := NewHallOfFame(3, validator.NewDiversity(5))

	assert.False(t, hof.Offer(nil))
	assert.False(t, hof.Offer(&Individual{Valid: true, Fitness: 10}))
	assert.False(t, hof.Offer(&Individual{Rule: smaRule(10), Fitness: SentinelFitness}))
	assert.Equal(t, 0, hof.Len())
}

func TestHallOfFameSortedAndBounded(t *testing.T) {
	hof := NewHallOfFame(3, validator.NewDiversity(5))

	require.True(t, hof.Offer(hofCandidate(10, 1.0)))
	require.True(t, hof.Offer(hofCandidate(20, 3.0)))
	require.True(t, hof.Offer(hofCandidate(50, 2.0)))

	entries := hof.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, 3.0, entries[0].Fitness)
	assert.Equal(t, 2.0, entries[1].Fitness)
	assert.Equal(t, 1.0, entries[2].Fitness)

	// Full and worse than the current worst: rejected.
	assert.False(t, hof.Offer(hofCandidate(100, 0.5)))
	assert.Equal(t, 3, hof.Len())

	// Full and better: displaces the worst.
	require.True(t, hof.Offer(hofCandidate(100, 2.5)))
	entries = hof.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, 3.0, entries[0].Fitness)
	assert.Equal(t, 2.5, entries[1].Fitness)
	assert.Equal(t, 2.0, entries[2].Fitness)
}

func TestHallOfFameClashReplacesOnlyIfStrictlyBetter(t *testing.T) {
	hof := NewHallOfFame(5, validator.NewDiversity(5))

	require.True(t, hof.Offer(hofCandidate(10, 2.0)))

	// Period 12 is within the diversity threshold of 10, so it
	// competes head to head instead of taking a free slot.
	assert.False(t, hof.Offer(hofCandidate(12, 2.0)))
	assert.False(t, hof.Offer(hofCandidate(12, 1.0)))
	assert.Equal(t, 1, hof.Len())

	require.True(t, hof.Offer(hofCandidate(12, 2.5)))
	assert.Equal(t, 1, hof.Len())
	assert.Equal(t, 2.5, hof.Best().Fitness)

	// A genuinely distinct period gets its own slot.
	require.True(t, hof.Offer(hofCandidate(50, 0.1)))
	assert.Equal(t, 2, hof.Len())
}

func TestHallOfFameEntriesAreDetachedCopies(t *testing.T) {
	hof := NewHallOfFame(2, validator.NewDiversity(5))

	cand := hofCandidate(10, 1.0)
	require.True(t, hof.Offer(cand))

	cand.Genome[0] = 999
	cand.Fitness = -5

	best := hof.Best()
	assert.Equal(t, uint64(1), best.Genome[0])
	assert.Equal(t, 1.0, best.Fitness)
}
