// Package telemetry collects per-frame render statistics for the debug
// overlay.
package telemetry

// Number is the sample type Sum accepts.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// RingBuffer keeps the most recent samples up to a fixed capacity. Pushing
// into a full buffer evicts the oldest sample.
type RingBuffer[T any] struct {
	buf   []T
	start int
	n     int
}

// NewRingBuffer returns an empty buffer. Capacity below 1 is raised to 1.
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer[T]{buf: make([]T, capacity)}
}

// Push appends v, evicting the oldest sample when full.
func (r *RingBuffer[T]) Push(v T) {
	if r.n < len(r.buf) {
		r.buf[(r.start+r.n)%len(r.buf)] = v
		r.n++
		return
	}
	r.buf[r.start] = v
	r.start = (r.start + 1) % len(r.buf)
}

// Len returns the number of stored samples.
func (r *RingBuffer[T]) Len() int { return r.n }

// Cap returns the capacity.
func (r *RingBuffer[T]) Cap() int { return len(r.buf) }

// At returns the i-th sample, oldest first. It panics when i is out of range.
func (r *RingBuffer[T]) At(i int) T {
	if i < 0 || i >= r.n {
		panic("telemetry: ring index out of range")
	}
	return r.buf[(r.start+i)%len(r.buf)]
}

// Last returns the newest sample.
func (r *RingBuffer[T]) Last() (T, bool) {
	if r.n == 0 {
		var zero T
		return zero, false
	}
	return r.At(r.n - 1), true
}

// Values copies the samples into a new slice, oldest first.
func (r *RingBuffer[T]) Values() []T {
	out := make([]T, r.n)
	for i := range out {
		out[i] = r.At(i)
	}
	return out
}

// Sum adds every sample in r.
func Sum[T Number](r *RingBuffer[T]) T {
	var s T
	for i := 0; i < r.n; i++ {
		s += r.At(i)
	}
	return s
}
