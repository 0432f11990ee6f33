// Package position tracks a simulated trading position during strategy
// evaluation. Positive size is long, negative is short. Each evaluation
// owns its Position exclusively, so no locking is needed.
package position

import "fmt"

// Position holds the open size and average entry price.
type Position struct {
	Size          float64
	AvgEntryPrice float64
}

// New returns a flat position.
func New() *Position {
	return &Position{}
}

// Flat reports whether no position is open.
func (p *Position) Flat() bool {
	return p.Size == 0
}

// Update applies a signed trade (positive buys, negative sells) and
// returns the PnL realized by any closed portion.
func (p *Position) Update(tradeSize, tradePrice float64) (realizedPnL float64) {
	if p.Size == 0 {
		p.Size = tradeSize
		p.AvgEntryPrice = tradePrice
		return 0
	}

	// Same direction: extend the position at a blended entry price.
	if (p.Size > 0) == (tradeSize > 0) {
		newSize := p.Size + tradeSize
		p.AvgEntryPrice = (p.Size*p.AvgEntryPrice + tradeSize*tradePrice) / newSize
		p.Size = newSize
		return 0
	}

	// Opposite direction: close up to the open size, flip the remainder.
	closed := min(abs(tradeSize), abs(p.Size))
	realizedPnL = (tradePrice - p.AvgEntryPrice) * closed
	if p.Size < 0 {
		realizedPnL = -realizedPnL
	}

	p.Size += tradeSize
	if p.Size == 0 {
		p.AvgEntryPrice = 0
	} else if abs(tradeSize) > closed {
		// Flipped through flat; the remainder opens at the trade price.
		p.AvgEntryPrice = tradePrice
	}
	return realizedPnL
}

// UnrealizedPnL returns the mark-to-market PnL at the given price.
func (p *Position) UnrealizedPnL(price float64) float64 {
	if p.Size == 0 {
		return 0
	}
	return (price - p.AvgEntryPrice) * p.Size
}

// String returns a short human-readable summary.
func (p *Position) String() string {
	return fmt.Sprintf("Position{Size: %.4f, AvgEntryPrice: %.2f}", p.Size, p.AvgEntryPrice)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
