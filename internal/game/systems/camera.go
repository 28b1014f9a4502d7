package systems

import (
	"context"

	"github.com/Faultbox/motorino/internal/config"
	"github.com/Faultbox/motorino/internal/ecs"
	"github.com/Faultbox/motorino/internal/engine/camera"
	"github.com/Faultbox/motorino/internal/engine/dispatch"
	"github.com/Faultbox/motorino/internal/game/world"
)

// CameraController keeps the camera behind the player while follow mode
// is on.
type CameraController struct {
	smoother *camera.Smoother
}

// NewCameraController returns a controller that snaps to the follow
// position, or eases toward it when smoothing is configured.
func NewCameraController(cfg config.CameraConfig) *CameraController {
	c := &CameraController{}
	if cfg.Smoothing {
		c.smoother = camera.NewSmoother(cfg.Frequency, cfg.Damping)
	}
	return c
}

func (*CameraController) Name() string { return "camera_controller" }

func (*CameraController) Access() dispatch.Access {
	return dispatch.Access{
		Reads:  []dispatch.Resource{world.ResTransforms, world.ResPlayers, world.ResDeltaTime},
		Writes: []dispatch.Resource{world.ResCamera},
	}
}

func (c *CameraController) Run(_ context.Context, w *world.World) error {
	if !w.Camera.FollowPlayer {
		if c.smoother != nil {
			c.smoother.Reset()
		}
		return nil
	}
	for _, row := range ecs.Join2(w.Players, w.Transforms) {
		t := row.B
		if c.smoother != nil {
			c.smoother.Follow(w.Camera, t.Position, t.Rotation.Y, w.DeltaTime)
		} else {
			w.Camera.Follow(t.Position, t.Rotation.Y)
		}
	}
	return nil
}
