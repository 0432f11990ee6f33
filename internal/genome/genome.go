// Package genome holds the heritable material of the search and the
// genetic operators that transform it. A genome is a fixed-length
// sequence of unsigned integers; it is never mutated in place, every
// operator returns fresh copies.
package genome

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// MaxGeneValue is the largest value a single gene can take. Gene values are
// kept well below the uint64 ceiling so that modulo and float normalization
// stay exact in float64 arithmetic.
const MaxGeneValue = 1 << 30

// Genome is an ordered, fixed-length sequence of genes.
type Genome []uint64

// NewRandom returns a genome of the given length with genes drawn from rng.
func NewRandom(rng *rand.Rand, length int) Genome {
	g := make(Genome, length)
	for i := range g {
		g[i] = uint64(rng.Int63n(MaxGeneValue))
	}
	return g
}

// Clone returns a copy of the genome.
func (g Genome) Clone() Genome {
	c := make(Genome, len(g))
	copy(c, g)
	return c
}

// String renders the genome as comma-separated gene values, the form
// used when persisting genomes.
func (g Genome) String() string {
	parts := make([]string, len(g))
	for i, v := range g {
		parts[i] = strconv.FormatUint(v, 10)
	}
	return strings.Join(parts, ",")
}

// Parse reads a genome back from its String form. Genes at or above
// MaxGeneValue are rejected rather than reduced; the consumer's range
// mapping assumes the bound holds.
func Parse(s string) (Genome, error) {
	if s == "" {
		return Genome{}, nil
	}
	parts := strings.Split(s, ",")
	g := make(Genome, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		if v >= MaxGeneValue {
			return nil, fmt.Errorf("gene %d out of range: %d", i, v)
		}
		g[i] = v
	}
	return g, nil
}

// Crossover performs single-point crossover between two equal-length parents
// and returns two offspring. The parents are left untouched. If the genomes
// are too short to cut, clones are returned.
func Crossover(rng *rand.Rand, a, b Genome) (Genome, Genome) {
	if len(a) < 2 || len(a) != len(b) {
		return a.Clone(), b.Clone()
	}
	cut := 1 + rng.Intn(len(a)-1)
	c1 := make(Genome, len(a))
	c2 := make(Genome, len(b))
	copy(c1, a[:cut])
	copy(c1[cut:], b[cut:])
	copy(c2, b[:cut])
	copy(c2[cut:], a[cut:])
	return c1, c2
}

// Mutate returns a copy of g where each gene is independently replaced with
// a fresh random value with probability rate.
func Mutate(rng *rand.Rand, g Genome, rate float64) Genome {
	c := g.Clone()
	for i := range c {
		if rng.Float64() < rate {
			c[i] = uint64(rng.Int63n(MaxGeneValue))
		}
	}
	return c
}
