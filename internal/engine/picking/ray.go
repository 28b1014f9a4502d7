// Package picking casts rays from screen coordinates into the scene.
package picking

import (
	"github.com/Faultbox/motorino/pkg/math"
)

// bisectSteps refines a terrain crossing to step/2^bisectSteps.
const bisectSteps = 12

// Ray is a half-line with a normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point t units along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// ScreenToRay unprojects a cursor position, in the same units as the
// viewport size with y down, into a world-space ray starting on the near
// plane. It fails for an empty viewport or a singular view-projection.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, proj, view math.Mat4) (Ray, bool) {
	if viewportW <= 0 || viewportH <= 0 {
		return Ray{}, false
	}
	inv, ok := proj.Mul(view).Inverse()
	if !ok {
		return Ray{}, false
	}

	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH

	near := inv.TransformVec3(math.V3(ndcX, ndcY, -1))
	far := inv.TransformVec3(math.V3(ndcX, ndcY, 1))
	dir := far.Sub(near)
	if dir.Length() == 0 {
		return Ray{}, false
	}
	return Ray{Origin: near, Direction: dir.Normalize()}, true
}

// IntersectPlaneY returns where the ray crosses the horizontal plane y.
func (r Ray) IntersectPlaneY(y float32) (math.Vec3, bool) {
	if r.Direction.Y > -1e-3 && r.Direction.Y < 1e-3 {
		return math.Vec3{}, false
	}
	t := (y - r.Origin.Y) / r.Direction.Y
	if t < 0 {
		return math.Vec3{}, false
	}
	return r.At(t), true
}

// IntersectHeight marches along the ray in step increments up to maxDist
// and returns the first point where it passes below height(x, z).
func (r Ray) IntersectHeight(height func(x, z float32) float32, maxDist, step float32) (math.Vec3, bool) {
	if step <= 0 || maxDist <= 0 {
		return math.Vec3{}, false
	}
	below := func(t float32) bool {
		p := r.At(t)
		return p.Y <= height(p.X, p.Z)
	}
	if below(0) {
		return math.Vec3{}, false
	}

	prev := float32(0)
	for t := step; t <= maxDist+step/2; t += step {
		t = min(t, maxDist)
		if below(t) {
			lo, hi := prev, t
			for range bisectSteps {
				mid := (lo + hi) / 2
				if below(mid) {
					hi = mid
				} else {
					lo = mid
				}
			}
			p := r.At(hi)
			p.Y = height(p.X, p.Z)
			return p, true
		}
		if t == maxDist {
			break
		}
		prev = t
	}
	return math.Vec3{}, false
}
