// Package systems holds the per-frame systems that update the world
// outside the render passes.
package systems

import (
	"context"
	gomath "math"

	"github.com/Faultbox/motorino/internal/ecs"
	"github.com/Faultbox/motorino/internal/engine/dispatch"
	"github.com/Faultbox/motorino/internal/engine/input"
	"github.com/Faultbox/motorino/internal/game/world"
	"github.com/Faultbox/motorino/pkg/math"
)

// Player movement tuning.
const (
	RunSpeed  = 50.0  // units per second
	TurnSpeed = 120.0 // degrees per second
	Gravity   = -80.0 // units per second squared
	JumpPower = 25.0  // initial upward speed
)

// PlayerController turns key events into velocity and integrates the
// player against the terrain.
type PlayerController struct {
	inAir bool
	held  map[input.Key]bool
}

// NewPlayerController returns a grounded controller.
func NewPlayerController() *PlayerController {
	return &PlayerController{held: make(map[input.Key]bool, 4)}
}

func (*PlayerController) Name() string { return "player_controller" }

func (*PlayerController) Access() dispatch.Access {
	return dispatch.Access{
		Reads: []dispatch.Resource{
			world.ResKeyEvents, world.ResDeltaTime, world.ResPlayers,
			world.ResGridPositions, world.ResHeightFields,
		},
		Writes: []dispatch.Resource{world.ResVelocities, world.ResTransforms},
	}
}

// InAir reports whether the player is airborne.
func (c *PlayerController) InAir() bool { return c.inAir }

func (c *PlayerController) Run(_ context.Context, w *world.World) error {
	for _, row := range ecs.Join3(w.Players, w.Transforms, w.Velocities) {
		for _, ev := range w.KeyEvents {
			c.applyKey(row.C, ev)
		}
		c.integrate(w, row.B, row.C, w.DeltaTime)
	}
	return nil
}

// axisSpeed is the velocity a held movement key asks for.
var axisSpeed = map[input.Key]float32{
	input.KeyW: RunSpeed,
	input.KeyS: -RunSpeed,
	input.KeyA: TurnSpeed,
	input.KeyD: -TurnSpeed,
}

var opposite = map[input.Key]input.Key{
	input.KeyW: input.KeyS,
	input.KeyS: input.KeyW,
	input.KeyA: input.KeyD,
	input.KeyD: input.KeyA,
}

func (c *PlayerController) applyKey(v *world.Velocity, ev input.KeyEvent) {
	if ev.Key == input.KeySpace {
		if ev.Action != input.Release && !c.inAir {
			v.Upwards = JumpPower
			c.inAir = true
		}
		return
	}

	speed, ok := axisSpeed[ev.Key]
	if !ok {
		return
	}
	axis := &v.Run
	if ev.Key == input.KeyA || ev.Key == input.KeyD {
		axis = &v.Turn
	}

	if ev.Action == input.Release {
		c.held[ev.Key] = false
		// fall back to the other key on this axis if it is still down
		if other := opposite[ev.Key]; c.held[other] {
			*axis = axisSpeed[other]
		} else {
			*axis = 0
		}
		return
	}
	c.held[ev.Key] = true
	*axis = speed
}

func (c *PlayerController) integrate(w *world.World, t *world.Transform, v *world.Velocity, dt float32) {
	t.Rotation.Y += v.Turn * dt
	rad := float64(math.Radians(t.Rotation.Y))
	dz := v.Run * dt * float32(gomath.Sin(rad))
	dx := v.Run * dt * float32(gomath.Cos(rad))
	t.Position.X += dz
	t.Position.Z += dx

	height := w.TerrainHeight(t.Position.X, t.Position.Z)

	v.Upwards += Gravity * dt
	t.Position.Y += v.Upwards * dt

	if t.Position.Y < height {
		v.Upwards = 0
		c.inAir = false
		t.Position.Y = height
	}
}
