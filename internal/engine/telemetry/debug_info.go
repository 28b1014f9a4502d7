package telemetry

// DefaultHistory is the number of frames kept per series.
const DefaultHistory = 50

// DebugInfo holds the current frame's draw accumulators and the history of
// finished frames.
type DebugInfo struct {
	FrameTimes *RingBuffer[float32] // seconds
	Triangles  *RingBuffer[int]
	DrawCalls  *RingBuffer[int]

	CurrentTriangles int
	CurrentDrawCalls int
}

// NewDebugInfo returns empty telemetry keeping history frames per series.
func NewDebugInfo(history int) *DebugInfo {
	return &DebugInfo{
		FrameTimes: NewRingBuffer[float32](history),
		Triangles:  NewRingBuffer[int](history),
		DrawCalls:  NewRingBuffer[int](history),
	}
}

// RecordDraw counts one draw call of the given number of triangles.
func (d *DebugInfo) RecordDraw(triangles int) {
	d.CurrentDrawCalls++
	d.CurrentTriangles += triangles
}

// Reset pushes the accumulated counters and the last frame time into the
// history, then zeroes the accumulators. It runs once per frame before any
// pass records draws.
func (d *DebugInfo) Reset(dt float32) {
	d.Triangles.Push(d.CurrentTriangles)
	d.DrawCalls.Push(d.CurrentDrawCalls)
	d.FrameTimes.Push(dt)
	d.CurrentTriangles = 0
	d.CurrentDrawCalls = 0
}

// SmoothedFPS is the sample count over the summed frame time, or 0 with no
// measured time.
func (d *DebugInfo) SmoothedFPS() float32 {
	sum := Sum(d.FrameTimes)
	if sum <= 0 {
		return 0
	}
	return float32(d.FrameTimes.Len()) / sum
}

// FPSHistory returns 1/dt for each stored frame time, oldest first. Zero
// frame times map to 0.
func (d *DebugInfo) FPSHistory() []float32 {
	out := d.FrameTimes.Values()
	for i, dt := range out {
		if dt > 0 {
			out[i] = 1 / dt
		} else {
			out[i] = 0
		}
	}
	return out
}
