package systems

import (
	"context"
	"fmt"

	"github.com/Faultbox/motorino/internal/config"
	"github.com/Faultbox/motorino/internal/engine/dispatch"
	"github.com/Faultbox/motorino/internal/engine/input"
	"github.com/Faultbox/motorino/internal/game/world"
)

// RenderSettingsController flips render toggles on key presses.
type RenderSettingsController struct {
	toggleUI   input.Key
	wireframe  input.Key
	screenshot input.Key
}

// NewRenderSettingsController resolves the configured key names.
func NewRenderSettingsController(cfg config.DebugConfig) (*RenderSettingsController, error) {
	c := &RenderSettingsController{}
	for _, k := range []struct {
		name string
		dst  *input.Key
	}{
		{cfg.ToggleKey, &c.toggleUI},
		{cfg.WireframeKey, &c.wireframe},
		{cfg.ScreenshotKey, &c.screenshot},
	} {
		key, err := input.KeyByName(k.name)
		if err != nil {
			return nil, fmt.Errorf("debug keys: %w", err)
		}
		*k.dst = key
	}
	return c, nil
}

// Keys returns the keys this controller reacts to.
func (c *RenderSettingsController) Keys() []input.Key {
	return []input.Key{c.toggleUI, c.wireframe, c.screenshot}
}

func (*RenderSettingsController) Name() string { return "render_settings_controller" }

func (*RenderSettingsController) Access() dispatch.Access {
	return dispatch.Access{
		Reads:  []dispatch.Resource{world.ResKeyEvents},
		Writes: []dispatch.Resource{world.ResSettings},
	}
}

func (c *RenderSettingsController) Run(_ context.Context, w *world.World) error {
	for _, ev := range w.KeyEvents {
		if ev.Action != input.Press {
			continue
		}
		switch ev.Key {
		case c.toggleUI:
			w.Settings.DebugUI = !w.Settings.DebugUI
		case c.wireframe:
			w.Settings.Wireframes = !w.Settings.Wireframes
		case c.screenshot:
			w.Settings.ScreenshotRequested = true
		}
	}
	return nil
}
