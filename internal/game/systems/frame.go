package systems

import (
	"context"

	"github.com/Faultbox/motorino/internal/engine/input"
	"github.com/Faultbox/motorino/internal/game/world"
)

// DebugInfoResetter moves last frame's draw counters into the telemetry
// history. It must run before any pass that records draws.
type DebugInfoResetter struct{}

func (DebugInfoResetter) Name() string { return "debug_info_resetter" }

func (DebugInfoResetter) Run(_ context.Context, w *world.World) error {
	w.Debug.Reset(w.DeltaTime)
	return nil
}

// InputSource is what the harvester polls each frame.
type InputSource interface {
	input.Source
	CursorPos() input.Cursor
}

// InputHarvester replaces the frame's key and mouse events with the edges
// seen since the previous harvest. It runs last so the next frame's
// systems see fresh events.
type InputHarvester struct {
	src       InputSource
	harvester *input.Harvester
}

// NewInputHarvester polls src for the given keys, or every key if none.
func NewInputHarvester(src InputSource, keys ...input.Key) *InputHarvester {
	return &InputHarvester{src: src, harvester: input.NewHarvester(keys...)}
}

func (*InputHarvester) Name() string { return "input_harvester" }

func (h *InputHarvester) Run(_ context.Context, w *world.World) error {
	w.KeyEvents, w.MouseEvents = h.harvester.Harvest(h.src, w.KeyEvents[:0], w.MouseEvents[:0])
	w.Mouse = h.harvester.Mouse()
	w.Cursor = h.src.CursorPos()
	return nil
}
