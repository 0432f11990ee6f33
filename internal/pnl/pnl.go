// Package pnl accumulates profit-and-loss during a simulated run.
package pnl

// Tracker accumulates realized PnL and the per-trade results needed for
// win-rate and drawdown metrics.
type Tracker struct {
	realized     float64
	tradeResults []float64

	peak        float64
	maxDrawdown float64
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// AddTrade records the realized PnL of one closed trade and updates the
// equity peak / drawdown bookkeeping.
func (t *Tracker) AddTrade(pnl float64) {
	t.realized += pnl
	t.tradeResults = append(t.tradeResults, pnl)

	if t.realized > t.peak {
		t.peak = t.realized
	}
	if dd := t.peak - t.realized; dd > t.maxDrawdown {
		t.maxDrawdown = dd
	}
}

// Realized returns the total realized PnL.
func (t *Tracker) Realized() float64 {
	return t.realized
}

// Trades returns the number of closed trades.
func (t *Tracker) Trades() int {
	return len(t.tradeResults)
}

// WinRate returns the fraction of closed trades with positive PnL, or 0
// when no trades closed.
func (t *Tracker) WinRate() float64 {
	if len(t.tradeResults) == 0 {
		return 0
	}
	wins := 0
	for _, r := range t.tradeResults {
		if r > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(t.tradeResults))
}

// MaxDrawdown returns the largest peak-to-trough decline of realized
// equity, as a non-negative number.
func (t *Tracker) MaxDrawdown() float64 {
	return t.maxDrawdown
}

// TradeResults returns the realized PnL of each closed trade in order.
func (t *Tracker) TradeResults() []float64 {
	return t.tradeResults
}
