package genome

// Consumer is a transient cursor over one genome, scoped to a single
// decoding pass. The cursor wraps to zero when it reaches the end of the
// genome, so consumption never fails regardless of how many genes a
// decode needs.
type Consumer struct {
	genome Genome
	cursor int
}

// NewConsumer returns a consumer positioned at the start of g.
func NewConsumer(g Genome) *Consumer {
	return &Consumer{genome: g}
}

// Consume returns the gene under the cursor and advances it, wrapping to
// the start of the genome when the end is reached.
func (c *Consumer) Consume() uint64 {
	if len(c.genome) == 0 {
		return 0
	}
	if c.cursor >= len(c.genome) {
		c.cursor = 0
	}
	v := c.genome[c.cursor]
	c.cursor++
	return v
}

// Choose returns Consume() mod n. When n is zero it returns 0 without
// consuming a gene, so degenerate catalogs cannot crash synthesis.
func (c *Consumer) Choose(n int) int {
	if n <= 0 {
		return 0
	}
	return int(c.Consume() % uint64(n))
}

// IntRange maps one gene into [min, max). If min >= max it returns min
// without consuming. The modulo map is deliberately simple and carries a
// slight bias toward low values; accepted, not a defect.
func (c *Consumer) IntRange(min, max int) int {
	if min >= max {
		return min
	}
	return min + int(c.Consume()%uint64(max-min))
}

// FloatRange normalizes one gene into [0,1) and affine-maps it into
// [min, max). If min >= max it returns min without consuming.
func (c *Consumer) FloatRange(min, max float64) float64 {
	if min >= max {
		return min
	}
	unit := float64(c.Consume()) / float64(MaxGeneValue)
	return min + unit*(max-min)
}

// Position returns the current cursor position. Introspection only.
func (c *Consumer) Position() int {
	return c.cursor
}

// HasRemaining reports whether the cursor has not yet wrapped past the end.
// Introspection only.
func (c *Consumer) HasRemaining() bool {
	return c.cursor < len(c.genome)
}
