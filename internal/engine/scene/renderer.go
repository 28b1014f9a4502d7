// Package scene draws the world into an offscreen framebuffer and presents
// it behind the UI. Each pass is a thread-local system run in a fixed order
// on the goroutine that owns the GL context.
package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/motorino/internal/engine/camera"
	"github.com/Faultbox/motorino/internal/engine/debug"
	"github.com/Faultbox/motorino/internal/engine/dispatch"
	"github.com/Faultbox/motorino/internal/engine/framebuffer"
	"github.com/Faultbox/motorino/internal/engine/shader"
	"github.com/Faultbox/motorino/internal/game/world"
	"github.com/Faultbox/motorino/internal/logger"
	"github.com/Faultbox/motorino/pkg/math"
)

// Renderer owns the shader programs, the scene framebuffer and the state
// shared between passes within a frame.
type Renderer struct {
	fb      *framebuffer.Framebuffer
	entity  *shader.Program
	terrain *shader.Program
	skybox  *shader.Program
	shots   *debug.Screenshots

	projection math.Mat4
	window     world.WindowSize
	view       math.Mat4
	skyRot     float32 // degrees

	log *zap.Logger
}

// New compiles the default, terrain and skybox programs from src and
// creates the scene framebuffer. Any failure is returned with everything
// allocated so far released.
func New(src shader.Source, size world.WindowSize, shots *debug.Screenshots) (*Renderer, error) {
	r := &Renderer{shots: shots, log: logger.Named("scene")}

	var err error
	if r.entity, err = shader.Load(src, "default"); err != nil {
		r.Destroy()
		return nil, err
	}
	if r.terrain, err = shader.Load(src, "terrain"); err != nil {
		r.Destroy()
		return nil, err
	}
	if r.skybox, err = shader.Load(src, "skybox"); err != nil {
		r.Destroy()
		return nil, err
	}
	if r.fb, err = framebuffer.New(int32(size.Width), int32(size.Height)); err != nil {
		r.Destroy()
		return nil, err
	}

	r.bindSamplers()
	r.resize(size)
	r.log.Info("scene renderer ready",
		zap.Int("width", size.Width),
		zap.Int("height", size.Height))
	return r, nil
}

// bindSamplers assigns each sampler uniform its fixed texture unit.
func (r *Renderer) bindSamplers() {
	r.entity.Use()
	r.entity.SetInt("texture_sampler", 0)

	r.terrain.Use()
	for unit, name := range terrainSamplers {
		r.terrain.SetInt(name, int32(unit))
	}

	r.skybox.Use()
	r.skybox.SetInt("day_cube_map", 0)
	r.skybox.SetInt("night_cube_map", 1)

	gl.UseProgram(0)
}

// resize recomputes the projection and uploads it to every program.
func (r *Renderer) resize(size world.WindowSize) {
	r.window = size
	r.projection = camera.ProjectionMatrix(size.Aspect())
	for _, p := range r.programs() {
		p.Use()
		p.SetMat4("projection_matrix", r.projection)
	}
	gl.UseProgram(0)
	r.log.Debug("projection updated", zap.Float32("aspect", size.Aspect()))
}

func (r *Renderer) programs() []*shader.Program {
	return []*shader.Program{r.entity, r.terrain, r.skybox}
}

// Passes returns the render passes in execution order: clear, terrain,
// entities, skybox and present.
func (r *Renderer) Passes() []dispatch.Local[*world.World] {
	return []dispatch.Local[*world.World]{
		&ClearPass{r: r},
		&TerrainPass{r: r},
		&EntityPass{r: r},
		&SkyboxPass{r: r},
		&PresentPass{r: r},
	}
}

// Destroy frees the programs and the framebuffer.
func (r *Renderer) Destroy() {
	for _, p := range r.programs() {
		if p != nil {
			r.log.Debug("deleting program", zap.String("program", p.Name()))
			p.Delete()
		}
	}
	if r.fb != nil {
		r.fb.Destroy()
	}
}

// setEnvironment uploads the per-frame lighting and fog uniforms shared by
// the lit programs. The program must be current.
func setEnvironment(p *shader.Program, w *world.World, view math.Mat4) {
	p.SetMat4("view_matrix", view)
	p.SetVec3("light_position", w.Light.Position)
	p.SetVec3("light_colour", w.Light.Colour)
	p.SetVec3("sky_colour", w.Fog.DayColour)
	p.SetFloat("fog_density", w.Fog.Density)
	p.SetFloat("fog_gradient", w.Fog.Gradient)
}

// drawElements draws an indexed model and counts it.
func drawElements(w *world.World, count int32, triangles int) {
	gl.DrawElementsWithOffset(gl.TRIANGLES, count, gl.UNSIGNED_INT, 0)
	w.Debug.RecordDraw(triangles)
}

// checkGL returns the first pending GL error, if any.
func checkGL(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: GL error 0x%x", op, code)
	}
	return nil
}
