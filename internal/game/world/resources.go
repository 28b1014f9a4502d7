package world

import (
	"github.com/Faultbox/motorino/internal/engine/dispatch"
	"github.com/Faultbox/motorino/pkg/math"
)

// Light is the single directional-ish point light.
type Light struct {
	Position math.Vec3
	Colour   math.Vec3
}

// DefaultLight returns the stock white light above the scene.
func DefaultLight() Light {
	return Light{
		Position: math.V3(0, 600, -20),
		Colour:   math.V3(1, 1, 1),
	}
}

// Fog holds the sky colours and the exponential fog parameters.
type Fog struct {
	DayColour   math.Vec3
	NightColour math.Vec3
	Density     float32
	Gradient    float32
}

// DefaultFog returns the stock fog.
func DefaultFog() Fog {
	return Fog{
		DayColour:   math.V3(0.78, 0.86, 0.86),
		NightColour: math.V3(0.275, 0.275, 0.275),
		Density:     0.007,
		Gradient:    1.5,
	}
}

// RenderSettings are the toggles driven by debug keys.
type RenderSettings struct {
	DebugUI             bool
	Wireframes          bool
	ScreenshotRequested bool
}

// WindowSize is the drawable size in pixels.
type WindowSize struct {
	Width, Height int
}

// Aspect returns width/height, or 1 for a degenerate window.
func (s WindowSize) Aspect() float32 {
	if s.Width <= 0 || s.Height <= 0 {
		return 1
	}
	return float32(s.Width) / float32(s.Height)
}

// Resource identifiers systems declare in their dispatch.Access.
const (
	ResTransforms    dispatch.Resource = "transforms"
	ResVelocities    dispatch.Resource = "velocities"
	ResPlayers       dispatch.Resource = "players"
	ResGridPositions dispatch.Resource = "grid_positions"
	ResHeightFields  dispatch.Resource = "height_fields"
	ResCamera        dispatch.Resource = "camera"
	ResLight         dispatch.Resource = "light"
	ResFog           dispatch.Resource = "fog"
	ResDebugInfo     dispatch.Resource = "debug_info"
	ResWindow        dispatch.Resource = "window"
	ResKeyEvents     dispatch.Resource = "key_events"
	ResMouseEvents   dispatch.Resource = "mouse_events"
	ResSettings      dispatch.Resource = "render_settings"
	ResDeltaTime     dispatch.Resource = "delta_time"
)
