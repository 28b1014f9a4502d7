package camera

import (
	gomath "math"

	"github.com/charmbracelet/harmonica"

	"github.com/Faultbox/motorino/pkg/math"
)

// Follow offsets from the target.
const (
	FollowDistance = 20.0
	FollowHeight   = 10.0
)

// FollowTarget returns where a follow camera sits for a target at pos
// facing rotY degrees, and the camera yaw that looks along the target's
// heading.
func FollowTarget(pos math.Vec3, rotY float32) (math.Vec3, float32) {
	rad := float64(math.Radians(rotY))
	eye := math.Vec3{
		X: pos.X - float32(gomath.Sin(rad)*FollowDistance),
		Y: pos.Y + FollowHeight,
		Z: pos.Z - float32(gomath.Cos(rad)*FollowDistance),
	}
	return eye, -rotY + 90
}

// Follow places the camera behind the target and recomputes the basis.
func (c *Camera) Follow(pos math.Vec3, rotY float32) {
	c.Position, c.yaw = FollowTarget(pos, rotY)
	c.UpdateVectors()
}

// Smoother eases the camera position toward a moving target with one
// critically damped spring per axis. Yaw is applied directly.
type Smoother struct {
	frequency float64
	damping   float64

	pos    [3]float64
	vel    [3]float64
	primed bool
}

// NewSmoother returns a smoother with the given angular frequency and
// damping ratio.
func NewSmoother(frequency, damping float64) *Smoother {
	return &Smoother{frequency: frequency, damping: damping}
}

// Follow moves c toward the follow target over dt seconds. The first call
// snaps to the target.
func (s *Smoother) Follow(c *Camera, pos math.Vec3, rotY, dt float32) {
	eye, yaw := FollowTarget(pos, rotY)
	target := [3]float64{float64(eye.X), float64(eye.Y), float64(eye.Z)}

	if !s.primed || dt <= 0 {
		if !s.primed {
			s.pos = target
			s.primed = true
		}
	} else {
		spring := harmonica.NewSpring(float64(dt), s.frequency, s.damping)
		for i := range s.pos {
			s.pos[i], s.vel[i] = spring.Update(s.pos[i], s.vel[i], target[i])
		}
	}

	c.Position = math.V3(float32(s.pos[0]), float32(s.pos[1]), float32(s.pos[2]))
	c.yaw = yaw
	c.UpdateVectors()
}

// Reset forgets the eased state so the next Follow snaps.
func (s *Smoother) Reset() {
	s.primed = false
	s.vel = [3]float64{}
}
