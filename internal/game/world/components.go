package world

import "github.com/Faultbox/motorino/pkg/math"

// Transform places an entity. Rotation is in degrees per axis.
type Transform struct {
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
}

// NewTransform returns an unrotated transform with uniform scale.
func NewTransform(pos math.Vec3, scale float32) Transform {
	return Transform{
		Position: pos,
		Scale:    math.V3(scale, scale, scale),
	}
}

// Matrix returns the model matrix T·S·Rx·Ry·Rz.
func (t Transform) Matrix() math.Mat4 {
	return math.ModelMatrix(t.Position, t.Rotation, t.Scale)
}

// Velocity is the player's current motion. Run is along the heading in
// units per second, Turn is degrees per second around Y, Upwards is
// vertical units per second.
type Velocity struct {
	Run     float32
	Turn    float32
	Upwards float32
}

// Player marks the entity the player controller drives.
type Player struct{}

// GridPosition is the terrain tile an entity belongs to.
type GridPosition struct {
	X, Z int
}
