// Package indicator implements the numeric series transforms available to
// generated strategies. All functions are pure: they take a source series
// and return a new series of equal length, with NaN for the warm-up
// prefix where the indicator is not yet defined.
package indicator

import (
	"math"

	"github.com/your-org/strategy-miner/pkg/window"
)

// SMA returns the simple moving average of src over the given period.
func SMA(src []float64, period int) []float64 {
	out := nanSeries(len(src))
	if period <= 0 {
		return out
	}
	w := window.NewRing(period)
	for i, v := range src {
		w.Push(v)
		if w.Full() {
			out[i] = w.Mean()
		}
	}
	return out
}

// EMA returns the exponential moving average of src over the given period,
// seeded with the SMA of the first period samples.
func EMA(src []float64, period int) []float64 {
	out := nanSeries(len(src))
	if period <= 0 || len(src) < period {
		return out
	}
	seed := 0.0
	for _, v := range src[:period] {
		seed += v
	}
	seed /= float64(period)
	out[period-1] = seed

	alpha := 2.0 / (float64(period) + 1.0)
	prev := seed
	for i := period; i < len(src); i++ {
		prev = alpha*src[i] + (1-alpha)*prev
		out[i] = prev
	}
	return out
}

// RSI returns Wilder's relative strength index of src over the given
// period, in [0, 100].
func RSI(src []float64, period int) []float64 {
	out := nanSeries(len(src))
	if period <= 0 || len(src) <= period {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		delta := src[i] - src[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss -= delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(src); i++ {
		delta := src[i] - src[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

// Highest returns the rolling maximum of src over the given period.
func Highest(src []float64, period int) []float64 {
	out := nanSeries(len(src))
	if period <= 0 {
		return out
	}
	w := window.NewRing(period)
	for i, v := range src {
		w.Push(v)
		if w.Full() {
			out[i] = w.Max()
		}
	}
	return out
}

// Lowest returns the rolling minimum of src over the given period.
func Lowest(src []float64, period int) []float64 {
	out := nanSeries(len(src))
	if period <= 0 {
		return out
	}
	w := window.NewRing(period)
	for i, v := range src {
		w.Push(v)
		if w.Full() {
			out[i] = w.Min()
		}
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
