package datastore

import "time"

// Candle is one OHLCV bar of market data.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series is an ordered sequence of candles, oldest first.
type Series []Candle

// Column extracts one named field ("open", "high", "low", "close",
// "volume") as a float series. Unknown names return nil.
func (s Series) Column(name string) []float64 {
	if len(s) == 0 {
		return nil
	}
	out := make([]float64, len(s))
	switch name {
	case "open":
		for i, c := range s {
			out[i] = c.Open
		}
	case "high":
		for i, c := range s {
			out[i] = c.High
		}
	case "low":
		for i, c := range s {
			out[i] = c.Low
		}
	case "close":
		for i, c := range s {
			out[i] = c.Close
		}
	case "volume":
		for i, c := range s {
			out[i] = c.Volume
		}
	default:
		return nil
	}
	return out
}
