package scene

import (
	"context"
	gomath "math"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/motorino/internal/ecs"
	"github.com/Faultbox/motorino/internal/engine/terrain"
	"github.com/Faultbox/motorino/internal/game/world"
	"github.com/Faultbox/motorino/pkg/math"
)

// SkyboxRotationSpeed is the skybox spin in degrees per second.
const SkyboxRotationSpeed = 0.5

// SkyboxVertexCount is the number of non-indexed vertices in the cube.
const SkyboxVertexCount = 36

var terrainSamplers = [5]string{
	"background_texture",
	"r_texture",
	"g_texture",
	"b_texture",
	"blend_map",
}

// ClearPass binds the scene framebuffer at window size and clears it to the
// fog colour. It also applies the wireframe toggle.
type ClearPass struct{ r *Renderer }

func (*ClearPass) Name() string { return "clear" }

func (p *ClearPass) Run(_ context.Context, w *world.World) error {
	if w.Window != p.r.window && w.Window.Width > 0 && w.Window.Height > 0 {
		p.r.resize(w.Window)
	}
	p.r.view = w.Camera.ViewMatrix()

	p.r.fb.Bind(int32(p.r.window.Width), int32(p.r.window.Height))
	gl.Enable(gl.DEPTH_TEST)
	if w.Settings.Wireframes {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	c := w.Fog.DayColour
	gl.ClearColor(c.X, c.Y, c.Z, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	return nil
}

// TerrainTransform places a tile at its grid cell in world units.
func TerrainTransform(g world.GridPosition) math.Mat4 {
	return math.Translate(float32(g.X)*terrain.Size, 0, float32(g.Z)*terrain.Size)
}

// TerrainPass draws every entity with a model, a texture pack and a grid
// position.
type TerrainPass struct{ r *Renderer }

func (*TerrainPass) Name() string { return "terrain" }

func (p *TerrainPass) Run(_ context.Context, w *world.World) error {
	prog := p.r.terrain
	prog.Use()
	setEnvironment(prog, w, p.r.view)
	prog.SetFloat("reflectivity", 0)
	prog.SetFloat("shine_damper", 1)

	for _, row := range ecs.Join3(w.Models, w.TexturePacks, w.GridPositions) {
		model, pack, grid := row.A, row.B, row.C

		gl.BindVertexArray(model.VAO)
		for unit, tex := range pack.Units() {
			gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
			gl.BindTexture(gl.TEXTURE_2D, tex.ID)
		}
		prog.SetMat4("transformation_matrix", TerrainTransform(*grid))
		drawElements(w, model.VertexCount, model.Triangles())
	}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(0)
	return nil
}

// EntityPass draws every entity with a model, a model texture and a
// transform.
type EntityPass struct{ r *Renderer }

func (*EntityPass) Name() string { return "entities" }

func (p *EntityPass) Run(_ context.Context, w *world.World) error {
	prog := p.r.entity
	prog.Use()
	setEnvironment(prog, w, p.r.view)

	gl.ActiveTexture(gl.TEXTURE0)
	for _, row := range ecs.Join3(w.Models, w.Textures, w.Transforms) {
		model, tex, tr := row.A, row.B, row.C

		gl.BindVertexArray(model.VAO)
		gl.BindTexture(gl.TEXTURE_2D, tex.ID)
		prog.SetFloat("reflectivity", tex.Reflectivity)
		prog.SetFloat("shine_damper", tex.ShineDamper)
		prog.SetMat4("transformation_matrix", tr.Matrix())
		drawElements(w, model.VertexCount, model.Triangles())
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindVertexArray(0)
	return nil
}

// AdvanceSkyRotation adds dt seconds of spin to rot and wraps the result
// into [0, 360).
func AdvanceSkyRotation(rot, dt float32) float32 {
	rot = float32(gomath.Mod(float64(rot+dt*SkyboxRotationSpeed), 360))
	if rot < 0 {
		rot += 360
	}
	return rot
}

// SkyboxView strips the camera translation so the sky stays centred on the
// eye, then applies the sky's own spin.
func SkyboxView(view math.Mat4, rotDeg float32) math.Mat4 {
	return view.WithoutTranslation().Mul(math.RotateY(math.Radians(rotDeg)))
}

// SkyboxPass draws the rotating day/night cube behind everything else.
type SkyboxPass struct{ r *Renderer }

func (*SkyboxPass) Name() string { return "skybox" }

func (p *SkyboxPass) Run(_ context.Context, w *world.World) error {
	p.r.skyRot = AdvanceSkyRotation(p.r.skyRot, w.DeltaTime)

	prog := p.r.skybox
	prog.Use()
	prog.SetMat4("view_matrix", SkyboxView(p.r.view, p.r.skyRot))
	prog.SetFloat("blend_factor", 0.5)
	prog.SetVec3("day_sky_colour", w.Fog.DayColour)
	prog.SetVec3("night_sky_colour", w.Fog.NightColour)

	gl.DepthFunc(gl.LEQUAL)
	for _, row := range ecs.Join2(w.Models, w.Skyboxes) {
		model, sky := row.A, row.B

		gl.BindVertexArray(model.VAO)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_CUBE_MAP, sky.Day.ID)
		gl.ActiveTexture(gl.TEXTURE1)
		gl.BindTexture(gl.TEXTURE_CUBE_MAP, sky.Night.ID)

		gl.DrawArrays(gl.TRIANGLES, 0, SkyboxVertexCount)
		w.Debug.RecordDraw(SkyboxVertexCount / 3)
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.DepthFunc(gl.LESS)
	gl.BindVertexArray(0)
	return nil
}

// PresentPass hands the finished scene to imgui as a full-window
// background and serves screenshot requests.
type PresentPass struct{ r *Renderer }

func (*PresentPass) Name() string { return "present" }

func (p *PresentPass) Run(_ context.Context, w *world.World) error {
	if w.Settings.ScreenshotRequested {
		w.Settings.ScreenshotRequested = false
		p.screenshot()
	}

	p.r.fb.Unbind()
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.Disable(gl.DEPTH_TEST)
	gl.UseProgram(0)
	gl.Viewport(0, 0, int32(w.Window.Width), int32(w.Window.Height))

	vp := imgui.MainViewport()
	imgui.SetNextWindowPos(vp.WorkPos())
	imgui.SetNextWindowSize(vp.WorkSize())
	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsNoScrollWithMouse | imgui.WindowFlagsNoBringToFrontOnFocus |
		imgui.WindowFlagsNoInputs | imgui.WindowFlagsNoSavedSettings

	imgui.PushStyleVarVec2(imgui.StyleVarWindowPadding, imgui.NewVec2(0, 0))
	if imgui.BeginV("##Scene", nil, flags) {
		texRef := imgui.NewTextureRefTextureID(imgui.TextureID(p.r.fb.ColorTexture()))
		imgui.ImageV(*texRef, vp.WorkSize(), imgui.NewVec2(0, 1), imgui.NewVec2(1, 0))
	}
	imgui.End()
	imgui.PopStyleVar()

	return checkGL("frame")
}

func (p *PresentPass) screenshot() {
	if p.r.shots == nil {
		return
	}
	width, height := p.r.fb.Size()
	path, err := p.r.shots.CaptureFromPixels(p.r.fb.ReadPixels(), int(width), int(height))
	if err != nil {
		p.r.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	p.r.log.Info("screenshot saved", zap.String("path", path))
}
