package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	src := []float64{1, 2, 3, 4, 5}
	out := SMA(src, 3)

	require.Len(t, out, 5)
	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	assert.InDelta(t, 2, out[2], 1e-9)
	assert.InDelta(t, 3, out[3], 1e-9)
	assert.InDelta(t, 4, out[4], 1e-9)
}

func TestSMAInvalidPeriod(t *testing.T) {
	out := SMA([]float64{1, 2, 3}, 0)
	for _, v := range out {
		assert.True(t, math.IsNaN(v))
	}
}

func TestEMASeedAndSmoothing(t *testing.T) {
	src := []float64{1, 2, 3, 4, 5}
	out := EMA(src, 3)

	assert.True(t, math.IsNaN(out[0]))
	assert.True(t, math.IsNaN(out[1]))
	// Seeded with SMA(1,2,3) = 2.
	assert.InDelta(t, 2, out[2], 1e-9)
	// alpha = 0.5: 0.5*4 + 0.5*2 = 3.
	assert.InDelta(t, 3, out[3], 1e-9)
	assert.InDelta(t, 4, out[4], 1e-9)
}

func TestEMATooShort(t *testing.T) {
	out := EMA([]float64{1, 2}, 3)
	for _, v := range out {
		assert.True(t, math.IsNaN(v))
	}
}

func TestRSIAllGains(t *testing.T) {
	src := []float64{1, 2, 3, 4, 5, 6}
	out := RSI(src, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, math.IsNaN(out[i]), "index %d", i)
	}
	for i := 3; i < len(out); i++ {
		assert.InDelta(t, 100, out[i], 1e-9, "index %d", i)
	}
}

func TestRSIFlatSeriesIsNeutral(t *testing.T) {
	src := []float64{5, 5, 5, 5, 5}
	out := RSI(src, 3)
	assert.InDelta(t, 50, out[3], 1e-9)
	assert.InDelta(t, 50, out[4], 1e-9)
}

func TestRSIMixedMoves(t *testing.T) {
	// One gain of 2 and one loss of 1 inside the first period.
	src := []float64{10, 12, 11, 11}
	out := RSI(src, 2)

	// avgGain = 1, avgLoss = 0.5, RS = 2, RSI = 66.67.
	assert.InDelta(t, 100-100.0/3.0, out[2], 1e-6)
}

func TestHighestLowest(t *testing.T) {
	src := []float64{3, 1, 4, 1, 5}

	hi := Highest(src, 3)
	assert.True(t, math.IsNaN(hi[1]))
	assert.Equal(t, 4.0, hi[2])
	assert.Equal(t, 4.0, hi[3])
	assert.Equal(t, 5.0, hi[4])

	lo := Lowest(src, 3)
	assert.Equal(t, 1.0, lo[2])
	assert.Equal(t, 1.0, lo[3])
	assert.Equal(t, 1.0, lo[4])
}
