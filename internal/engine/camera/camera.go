// Package camera provides the free-look camera used by the renderer and
// the follow behaviour that tracks the player.
package camera

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/motorino/pkg/math"
)

// Projection parameters shared by every shader-driven pass.
const (
	FOV  = 45.0 // degrees
	Near = 0.1
	Far  = 200.0
)

// Defaults for a fresh camera.
const (
	DefaultYaw   = -90.0
	DefaultPitch = -10.0
)

// Camera is a yaw/pitch camera with a cached orientation basis. Yaw and
// pitch are in degrees.
type Camera struct {
	FollowPlayer bool

	Position math.Vec3
	Front    math.Vec3
	Up       math.Vec3
	Right    math.Vec3
	WorldUp  math.Vec3

	yaw   float32
	pitch float32
}

// New returns a camera at the default position following the player.
func New() *Camera {
	c := &Camera{
		FollowPlayer: true,
		Position:     math.V3(4, 50, 120),
		Front:        math.V3(0, 0, -1),
		WorldUp:      math.V3(0, 1, 0),
		yaw:          DefaultYaw,
		pitch:        DefaultPitch,
	}
	c.UpdateVectors()
	return c
}

// Yaw returns the yaw in degrees.
func (c *Camera) Yaw() float32 { return c.yaw }

// Pitch returns the pitch in degrees.
func (c *Camera) Pitch() float32 { return c.pitch }

// SetYaw sets the yaw and recomputes the basis.
func (c *Camera) SetYaw(deg float32) {
	c.yaw = deg
	c.UpdateVectors()
}

// SetPitch sets the pitch and recomputes the basis.
func (c *Camera) SetPitch(deg float32) {
	c.pitch = deg
	c.UpdateVectors()
}

// UpdateVectors recomputes Front, Right and Up from yaw and pitch.
func (c *Camera) UpdateVectors() {
	yaw := float64(math.Radians(c.yaw))
	pitch := float64(math.Radians(c.pitch))

	c.Front = math.Vec3{
		X: float32(gomath.Cos(yaw) * gomath.Cos(pitch)),
		Y: float32(gomath.Sin(pitch)),
		Z: float32(gomath.Sin(yaw) * gomath.Cos(pitch)),
	}.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}

// ViewMatrix looks from Position along Front.
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Front), c.Up)
}

// ProjectionMatrix returns the perspective projection for the aspect ratio.
func ProjectionMatrix(aspect float32) math.Mat4 {
	return math.Perspective(math.Radians(FOV), aspect, Near, Far)
}

func (c *Camera) String() string {
	return fmt.Sprintf("Camera: [%.1f, %.1f, %.1f] [%.1f, %.1f]",
		c.Position.X, c.Position.Y, c.Position.Z, c.yaw, c.pitch)
}
