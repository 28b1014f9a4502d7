package systems

import (
	"context"
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/motorino/internal/config"
	"github.com/Faultbox/motorino/internal/ecs"
	"github.com/Faultbox/motorino/internal/engine/dispatch"
	"github.com/Faultbox/motorino/internal/engine/handle"
	"github.com/Faultbox/motorino/internal/engine/input"
	"github.com/Faultbox/motorino/internal/engine/terrain"
	"github.com/Faultbox/motorino/internal/game/world"
	"github.com/Faultbox/motorino/pkg/math"
)

const frameDT = float32(1.0 / 60)

var ctx = context.Background()

// newWorld returns a world with a flat tile at grid (0,0) and a player.
func newWorld(t *testing.T, groundHeight float32, spawn math.Vec3) (*world.World, ecs.Entity) {
	t.Helper()
	w := world.New(8)
	field := &terrain.HeightField{}
	for i := range field.Heights {
		for j := range field.Heights[i] {
			field.Heights[i][j] = groundHeight
		}
	}
	world.SpawnTerrain(w, world.GridPosition{}, handle.RawModel{}, handle.TerrainTexturePack{}, field)
	e := world.SpawnPlayer(w, handle.RawModel{}, handle.ModelTexture{}, spawn)
	w.DeltaTime = frameDT
	return w, e
}

func step(t *testing.T, c *PlayerController, w *world.World, events ...input.KeyEvent) {
	t.Helper()
	w.KeyEvents = events
	require.NoError(t, c.Run(ctx, w))
}

func velocity(t *testing.T, w *world.World, e ecs.Entity) world.Velocity {
	t.Helper()
	v, ok := w.Velocities.Get(e)
	require.True(t, ok)
	return *v
}

func transform(t *testing.T, w *world.World, e ecs.Entity) world.Transform {
	t.Helper()
	tr, ok := w.Transforms.Get(e)
	require.True(t, ok)
	return *tr
}

func TestPlayerKeyVelocities(t *testing.T) {
	tests := []struct {
		key      input.Key
		wantRun  float32
		wantTurn float32
	}{
		{input.KeyW, RunSpeed, 0},
		{input.KeyS, -RunSpeed, 0},
		{input.KeyA, 0, TurnSpeed},
		{input.KeyD, 0, -TurnSpeed},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			w, e := newWorld(t, 0, math.V3(400, 0, 400))
			c := NewPlayerController()

			step(t, c, w, input.KeyEvent{Key: tt.key, Action: input.Press})
			v := velocity(t, w, e)
			assert.Equal(t, float32(tt.wantRun), v.Run)
			assert.Equal(t, float32(tt.wantTurn), v.Turn)

			step(t, c, w, input.KeyEvent{Key: tt.key, Action: input.Repeat})
			v = velocity(t, w, e)
			assert.Equal(t, float32(tt.wantRun), v.Run)

			step(t, c, w, input.KeyEvent{Key: tt.key, Action: input.Release})
			v = velocity(t, w, e)
			assert.Zero(t, v.Run)
			assert.Zero(t, v.Turn)
		})
	}
}

func TestPlayerReleaseKeepsHeldOpposite(t *testing.T) {
	w, e := newWorld(t, 0, math.V3(400, 0, 400))
	c := NewPlayerController()

	step(t, c, w,
		input.KeyEvent{Key: input.KeyW, Action: input.Press},
		input.KeyEvent{Key: input.KeyS, Action: input.Press})
	assert.Equal(t, float32(-RunSpeed), velocity(t, w, e).Run)

	step(t, c, w, input.KeyEvent{Key: input.KeyS, Action: input.Release})
	assert.Equal(t, float32(RunSpeed), velocity(t, w, e).Run, "W is still held")

	step(t, c, w, input.KeyEvent{Key: input.KeyW, Action: input.Release})
	assert.Zero(t, velocity(t, w, e).Run)
}

func TestPlayerRunAxisMapping(t *testing.T) {
	// Heading 0 moves along +z; heading 90 moves along +x.
	tests := []struct {
		name    string
		rotY    float32
		wantDir math.Vec3
	}{
		{"heading 0", 0, math.V3(0, 0, 1)},
		{"heading 90", 90, math.V3(1, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, e := newWorld(t, 0, math.V3(400, 0, 400))
			tr, _ := w.Transforms.Get(e)
			tr.Rotation.Y = tt.rotY
			c := NewPlayerController()

			step(t, c, w, input.KeyEvent{Key: input.KeyW, Action: input.Press})

			got := transform(t, w, e).Position.Sub(math.V3(400, 0, 400))
			want := tt.wantDir.Scale(RunSpeed * frameDT)
			assert.InDelta(t, want.X, got.X, 1e-3)
			assert.InDelta(t, want.Z, got.Z, 1e-3)
		})
	}
}

func TestPlayerTurnIntegrates(t *testing.T) {
	w, e := newWorld(t, 0, math.V3(400, 0, 400))
	c := NewPlayerController()

	step(t, c, w, input.KeyEvent{Key: input.KeyA, Action: input.Press})
	for range 59 {
		step(t, c, w)
	}
	assert.InDelta(t, TurnSpeed, transform(t, w, e).Rotation.Y, 1e-2)
}

func TestPlayerJumpIdempotent(t *testing.T) {
	w, e := newWorld(t, 0, math.V3(400, 0, 400))
	c := NewPlayerController()

	step(t, c, w, input.KeyEvent{Key: input.KeySpace, Action: input.Press})
	require.True(t, c.InAir())
	after := velocity(t, w, e).Upwards
	assert.InDelta(t, JumpPower+Gravity*frameDT, after, 1e-4)

	// Space again while airborne only sees gravity.
	step(t, c, w, input.KeyEvent{Key: input.KeySpace, Action: input.Repeat})
	assert.InDelta(t, after+Gravity*frameDT, velocity(t, w, e).Upwards, 1e-4)
	assert.True(t, c.InAir())
}

func TestPlayerFallsToFlatTerrain(t *testing.T) {
	w, e := newWorld(t, 0, math.V3(400, 100, 400))
	c := NewPlayerController()

	prevY := float32(100)
	landed := false
	for i := 0; i < 600; i++ {
		step(t, c, w)
		y := transform(t, w, e).Position.Y
		require.LessOrEqual(t, y, prevY, "player must not rise while falling")
		prevY = y
		if y == 0 {
			landed = true
			break
		}
	}
	require.True(t, landed, "player never reached the ground")

	assert.False(t, c.InAir())
	assert.Zero(t, velocity(t, w, e).Upwards)

	// Stays on the ground.
	step(t, c, w)
	assert.Zero(t, transform(t, w, e).Position.Y)
}

func TestPlayerSnapsUpToTerrain(t *testing.T) {
	w, e := newWorld(t, 30, math.V3(400, 0, 400))
	c := NewPlayerController()

	step(t, c, w)
	assert.InDelta(t, 30, transform(t, w, e).Position.Y, 1e-4)
}

func TestPlayerIgnoresNonPlayers(t *testing.T) {
	w, _ := newWorld(t, 0, math.V3(400, 0, 400))
	tree := w.Entities.Create()
	w.Transforms.Insert(tree, world.NewTransform(math.V3(10, 50, 10), 1))
	w.Velocities.Insert(tree, world.Velocity{Run: 10})

	step(t, NewPlayerController(), w)
	assert.Equal(t, math.V3(10, 50, 10), transform(t, w, tree).Position)
}

func TestCameraFollowsPlayer(t *testing.T) {
	w, _ := newWorld(t, 0, math.V3(0, 0, 0))
	c := NewCameraController(config.CameraConfig{})

	require.NoError(t, c.Run(ctx, w))

	pos := w.Camera.Position
	assert.InDelta(t, 0, pos.X, 1e-4)
	assert.InDelta(t, 10, pos.Y, 1e-4)
	assert.InDelta(t, -20, pos.Z, 1e-4)
	assert.Equal(t, float32(90), w.Camera.Yaw())
}

func TestCameraFreeWhenNotFollowing(t *testing.T) {
	w, _ := newWorld(t, 0, math.V3(0, 0, 0))
	w.Camera.FollowPlayer = false
	before := w.Camera.Position

	c := NewCameraController(config.CameraConfig{Smoothing: true, Frequency: 6, Damping: 1})
	require.NoError(t, c.Run(ctx, w))
	assert.Equal(t, before, w.Camera.Position)
}

func TestCameraSmoothingConverges(t *testing.T) {
	w, e := newWorld(t, 0, math.V3(0, 0, 0))
	c := NewCameraController(config.CameraConfig{Smoothing: true, Frequency: 6, Damping: 1})

	require.NoError(t, c.Run(ctx, w))
	tr, _ := w.Transforms.Get(e)
	tr.Position.X = 50

	require.NoError(t, c.Run(ctx, w))
	assert.Less(t, w.Camera.Position.X, float32(50))

	for range 1200 {
		require.NoError(t, c.Run(ctx, w))
	}
	assert.InDelta(t, 50, w.Camera.Position.X, 1e-2)
}

func TestRenderSettingsToggles(t *testing.T) {
	c, err := NewRenderSettingsController(config.Default().Debug)
	require.NoError(t, err)

	w := world.New(4)
	w.KeyEvents = []input.KeyEvent{
		{Key: input.KeySlash, Action: input.Press},
		{Key: input.KeyF3, Action: input.Press},
		{Key: input.KeySlash, Action: input.Repeat},
	}
	require.NoError(t, c.Run(ctx, w))
	assert.True(t, w.Settings.DebugUI)
	assert.True(t, w.Settings.Wireframes)
	assert.False(t, w.Settings.ScreenshotRequested)

	w.KeyEvents = []input.KeyEvent{
		{Key: input.KeySlash, Action: input.Release},
		{Key: input.KeySlash, Action: input.Press},
		{Key: input.KeyF12, Action: input.Press},
	}
	require.NoError(t, c.Run(ctx, w))
	assert.False(t, w.Settings.DebugUI)
	assert.True(t, w.Settings.ScreenshotRequested)
}

func TestRenderSettingsBadKey(t *testing.T) {
	cfg := config.Default().Debug
	cfg.WireframeKey = "Hyper"
	_, err := NewRenderSettingsController(cfg)
	assert.ErrorContains(t, err, "Hyper")
}

func TestDebugInfoResetter(t *testing.T) {
	w := world.New(4)
	w.DeltaTime = 0.02
	w.Debug.RecordDraw(100)
	w.Debug.RecordDraw(100)

	require.NoError(t, DebugInfoResetter{}.Run(ctx, w))

	tris, _ := w.Debug.Triangles.Last()
	assert.Equal(t, 200, tris)
	assert.Zero(t, w.Debug.CurrentTriangles)
	ft, _ := w.Debug.FrameTimes.Last()
	assert.Equal(t, float32(0.02), ft)
}

type fakeInput struct {
	keys   map[input.Key]bool
	mouse  map[input.MouseButton]bool
	cursor input.Cursor
}

func (f *fakeInput) IsKeyDown(k input.Key) bool           { return f.keys[k] }
func (f *fakeInput) IsMouseDown(b input.MouseButton) bool { return f.mouse[b] }
func (f *fakeInput) CursorPos() input.Cursor              { return f.cursor }

func TestInputHarvesterReplacesEvents(t *testing.T) {
	src := &fakeInput{
		keys:   map[input.Key]bool{input.KeyW: true},
		mouse:  map[input.MouseButton]bool{input.MouseLeft: true},
		cursor: input.Cursor{X: 12, Y: 34},
	}
	h := NewInputHarvester(src, input.KeyW, input.KeyS)

	w := world.New(4)
	w.KeyEvents = []input.KeyEvent{{Key: input.KeyF1, Action: input.Press}}
	require.NoError(t, h.Run(ctx, w))

	assert.Equal(t, []input.KeyEvent{{Key: input.KeyW, Action: input.Press}}, w.KeyEvents)
	assert.Equal(t, []input.MouseEvent{{Button: input.MouseLeft, Action: input.Press}}, w.MouseEvents)
	assert.True(t, w.Mouse.Left)
	assert.Equal(t, input.Cursor{X: 12, Y: 34}, w.Cursor)

	src.keys[input.KeyW] = false
	require.NoError(t, h.Run(ctx, w))
	assert.Equal(t, []input.KeyEvent{{Key: input.KeyW, Action: input.Release}}, w.KeyEvents)
}

func TestScheduleStages(t *testing.T) {
	settings, err := NewRenderSettingsController(config.Default().Debug)
	require.NoError(t, err)

	d := dispatch.NewBuilder[*world.World]().
		Add(NewPlayerController()).
		Add(NewCameraController(config.CameraConfig{})).
		Add(settings).
		Build()

	assert.Equal(t, [][]string{
		{"player_controller", "render_settings_controller"},
		{"camera_controller"},
	}, d.Stages())
}

func TestFrameEndToEnd(t *testing.T) {
	w, e := newWorld(t, 0, math.V3(0, 0, 0))
	settings, err := NewRenderSettingsController(config.Default().Debug)
	require.NoError(t, err)

	d := dispatch.NewBuilder[*world.World]().
		Add(NewPlayerController()).
		Add(NewCameraController(config.CameraConfig{})).
		Add(settings).
		AddLocal(DebugInfoResetter{}).
		Build()

	w.KeyEvents = []input.KeyEvent{{Key: input.KeyW, Action: input.Press}}
	require.NoError(t, d.Dispatch(ctx, w))

	// camera sees the moved player in the same frame
	p := transform(t, w, e).Position
	assert.Greater(t, p.Z, float32(0))
	assert.InDelta(t, p.Z-20, w.Camera.Position.Z, 1e-4)
	assert.False(t, gomath.IsNaN(float64(w.Camera.Front.X)))
	assert.Equal(t, 1, w.Debug.FrameTimes.Len())
}
