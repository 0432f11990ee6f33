// Package window provides a fixed-size ring buffer over float64 samples,
// used by the rolling indicator computations.
package window

// Ring holds the most recent samples in a circular buffer. Once full, the
// oldest sample is overwritten.
type Ring struct {
	values []float64
	size   int
	head   int // next write slot
	count  int
}

// NewRing creates a ring buffer holding up to size samples.
func NewRing(size int) *Ring {
	if size <= 0 {
		panic("window: ring size must be positive")
	}
	return &Ring{
		values: make([]float64, size),
		size:   size,
	}
}

// Push adds a sample, evicting the oldest when full.
func (r *Ring) Push(v float64) {
	r.values[r.head] = v
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// Len returns the number of samples currently held.
func (r *Ring) Len() int {
	return r.count
}

// Full reports whether the buffer holds size samples.
func (r *Ring) Full() bool {
	return r.count == r.size
}

// Sum returns the sum of the held samples.
func (r *Ring) Sum() float64 {
	s := 0.0
	for i := 0; i < r.count; i++ {
		s += r.values[i]
	}
	return s
}

// Mean returns the average of the held samples, or 0 when empty.
func (r *Ring) Mean() float64 {
	if r.count == 0 {
		return 0
	}
	return r.Sum() / float64(r.count)
}

// Max returns the largest held sample, or 0 when empty.
func (r *Ring) Max() float64 {
	if r.count == 0 {
		return 0
	}
	max := r.values[0]
	for i := 1; i < r.count; i++ {
		if r.values[i] > max {
			max = r.values[i]
		}
	}
	return max
}

// Min returns the smallest held sample, or 0 when empty.
func (r *Ring) Min() float64 {
	if r.count == 0 {
		return 0
	}
	min := r.values[0]
	for i := 1; i < r.count; i++ {
		if r.values[i] < min {
			min = r.values[i]
		}
	}
	return min
}

// Values returns the held samples in insertion order, oldest first.
func (r *Ring) Values() []float64 {
	out := make([]float64, r.count)
	if r.count < r.size {
		copy(out, r.values[:r.count])
		return out
	}
	n := copy(out, r.values[r.head:])
	copy(out[n:], r.values[:r.head])
	return out
}
