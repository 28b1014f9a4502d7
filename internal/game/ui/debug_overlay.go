// Package ui provides the in-game debug overlay.
package ui

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/motorino/internal/engine/camera"
	"github.com/Faultbox/motorino/internal/engine/picking"
	"github.com/Faultbox/motorino/internal/game/world"
	"github.com/Faultbox/motorino/pkg/math"
)

const (
	// memRefresh is how often heap stats are re-read.
	memRefresh = 2 * time.Second

	// pickStep is the ray-march step for the cursor ground probe.
	pickStep = 2

	// fpsPlotMax is the top of the FPS history plot.
	fpsPlotMax = 60
)

// DebugOverlayPass draws telemetry and live-editable world resources while
// RenderSettings.DebugUI is set.
type DebugOverlayPass struct {
	memStats   runtime.MemStats
	memUpdated time.Time
}

// NewDebugOverlayPass returns the overlay. It must only be run inside an
// imgui frame, after the passes that record draws.
func NewDebugOverlayPass() *DebugOverlayPass {
	return &DebugOverlayPass{}
}

func (*DebugOverlayPass) Name() string { return "debug_overlay" }

func (d *DebugOverlayPass) Run(_ context.Context, w *world.World) error {
	if !w.Settings.DebugUI {
		return nil
	}
	if now := time.Now(); now.Sub(d.memUpdated) >= memRefresh {
		runtime.ReadMemStats(&d.memStats)
		d.memUpdated = now
	}

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondFirstUseEver, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(320, 0), imgui.CondFirstUseEver)
	imgui.SetNextWindowBgAlpha(0.7)

	if imgui.BeginV("Debug", nil, imgui.WindowFlagsNoSavedSettings) {
		d.renderStats(w)
		d.renderPositions(w)
		renderCamera(w)
		renderLight(w)
		renderFog(w)
		d.renderMemory()
	}
	imgui.End()
	return nil
}

func (d *DebugOverlayPass) renderStats(w *world.World) {
	fps := w.Debug.SmoothedFPS()
	imgui.TextColored(FPSColor(fps), fmt.Sprintf("FPS: %.1f", fps))
	if dt, ok := w.Debug.FrameTimes.Last(); ok {
		imgui.SameLine()
		imgui.TextDisabled(fmt.Sprintf("(%.2f ms)", dt*1000))
	}
	if fps := w.Debug.FPSHistory(); len(fps) > 0 {
		imgui.PlotLinesFloatPtrV("Fps", &fps[0], int32(len(fps)), 0, "", 0, fpsPlotMax, imgui.NewVec2(0, 40), 4)
	}
	tris, calls := FrameStats(w)
	imgui.Text(fmt.Sprintf("Triangles: %d", tris))
	imgui.Text(fmt.Sprintf("Draw calls: %d", calls))
	imgui.Text(fmt.Sprintf("Entities: %d", w.Entities.Count()))
}

func (d *DebugOverlayPass) renderPositions(w *world.World) {
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Cursor: %.0f, %.0f", w.Cursor.X, w.Cursor.Y))
	imgui.Text(fmt.Sprintf("Mouse: L=%v M=%v R=%v", w.Mouse.Left, w.Mouse.Middle, w.Mouse.Right))
	display := imgui.CurrentIO().DisplaySize()
	if p, ok := CursorGround(w, display.X, display.Y); ok {
		imgui.Text(fmt.Sprintf("Ground: %.1f, %.1f, %.1f", p.X, p.Y, p.Z))
	} else {
		imgui.TextDisabled("Ground: -")
	}
	if _, tr, ok := w.Player(); ok {
		editVec3("Player position", &tr.Position, imgui.DragFloat3)
		imgui.Text(fmt.Sprintf("Heading: %.1f", tr.Rotation.Y))
	} else {
		imgui.TextDisabled("No player")
	}
}

func renderCamera(w *world.World) {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Camera", imgui.TreeNodeFlagsDefaultOpen) {
		return
	}
	c := w.Camera
	imgui.Checkbox("Follow player", &c.FollowPlayer)
	editVec3("Position", &c.Position, imgui.DragFloat3)

	yaw, pitch := c.Yaw(), c.Pitch()
	if imgui.SliderFloat("Yaw", &yaw, -360, 360) {
		c.SetYaw(yaw)
	}
	if imgui.SliderFloat("Pitch", &pitch, -89, 89) {
		c.SetPitch(pitch)
	}
}

func renderLight(w *world.World) {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Light", 0) {
		return
	}
	editVec3("Light position", &w.Light.Position, imgui.DragFloat3)
	editVec3("Light colour", &w.Light.Colour, imgui.ColorEdit3)
}

func renderFog(w *world.World) {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Fog", 0) {
		return
	}
	imgui.SliderFloat("Density", &w.Fog.Density, 0, 0.05)
	imgui.SliderFloat("Gradient", &w.Fog.Gradient, 0.1, 10)
	editVec3("Day colour", &w.Fog.DayColour, imgui.ColorEdit3)
	editVec3("Night colour", &w.Fog.NightColour, imgui.ColorEdit3)
}

func (d *DebugOverlayPass) renderMemory() {
	if !imgui.CollapsingHeaderTreeNodeFlagsV("Memory", 0) {
		return
	}
	imgui.Text(fmt.Sprintf("Alloc: %s", FormatBytes(int64(d.memStats.Alloc))))
	imgui.Text(fmt.Sprintf("Sys: %s", FormatBytes(int64(d.memStats.Sys))))
	imgui.Text(fmt.Sprintf("GC: %d", d.memStats.NumGC))
}

// CursorGround returns the terrain point under the cursor, for a viewport
// of width x height in cursor units.
func CursorGround(w *world.World, width, height float32) (math.Vec3, bool) {
	if width <= 0 || height <= 0 {
		return math.Vec3{}, false
	}
	proj := camera.ProjectionMatrix(width / height)
	ray, ok := picking.ScreenToRay(w.Cursor.X, w.Cursor.Y, width, height, proj, w.Camera.ViewMatrix())
	if !ok {
		return math.Vec3{}, false
	}
	return ray.IntersectHeight(w.TerrainHeight, camera.Far, pickStep)
}

// FrameStats returns the triangles and draw calls recorded so far this
// frame. The overlay runs after every draw pass, so these are complete.
func FrameStats(w *world.World) (triangles, drawCalls int) {
	return w.Debug.CurrentTriangles, w.Debug.CurrentDrawCalls
}

// editVec3 runs a three-component widget over v and writes back on change.
func editVec3(label string, v *math.Vec3, widget func(string, *[3]float32) bool) {
	a := v.Array()
	if widget(label, &a) {
		*v = math.FromArray(a)
	}
}

// FPSColor is green at 60 and above, yellow from 30, red below.
func FPSColor(fps float32) imgui.Vec4 {
	switch {
	case fps < 30:
		return imgui.NewVec4(1.0, 0.2, 0.2, 1.0)
	case fps < 60:
		return imgui.NewVec4(1.0, 1.0, 0.2, 1.0)
	default:
		return imgui.NewVec4(0.2, 1.0, 0.2, 1.0)
	}
}

// FormatBytes formats a byte count for display.
func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
