// Package game wires the window, GPU resources, world and systems together
// and runs the frame loop.
package game

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/motorino/internal/assets"
	"github.com/Faultbox/motorino/internal/config"
	"github.com/Faultbox/motorino/internal/engine/debug"
	"github.com/Faultbox/motorino/internal/engine/dispatch"
	"github.com/Faultbox/motorino/internal/engine/loader"
	"github.com/Faultbox/motorino/internal/engine/scene"
	engineui "github.com/Faultbox/motorino/internal/engine/ui"
	"github.com/Faultbox/motorino/internal/game/systems"
	"github.com/Faultbox/motorino/internal/game/ui"
	"github.com/Faultbox/motorino/internal/game/world"
	"github.com/Faultbox/motorino/internal/logger"
)

// maxFrameTime is the largest dt, in seconds, a frame integrates.
const maxFrameTime = 0.25

// Game is the running renderer.
type Game struct {
	cfg        *config.Config
	backend    *engineui.Backend
	assets     *assets.Manager
	loader     *loader.Loader
	renderer   *scene.Renderer
	world      *world.World
	dispatcher *dispatch.Dispatcher[*world.World]

	lastFrame time.Time
	frames    uint64
	log       *zap.Logger
}

// New opens the window, loads every resource and builds the world. On
// error everything allocated so far is released.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{cfg: cfg, log: logger.Named("game")}
	g.log.Info("initializing",
		zap.String("title", cfg.Graphics.Title),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height))

	var err error
	g.backend, err = engineui.NewBackend(cfg.Graphics.Title, cfg.Graphics.Width, cfg.Graphics.Height)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	g.assets = NewAssets(cfg.Assets)
	g.loader = loader.New()
	g.world = world.New(cfg.Debug.History)
	g.world.Window = world.WindowSize{Width: cfg.Graphics.Width, Height: cfg.Graphics.Height}
	g.world.Settings.DebugUI = cfg.Debug.ShowOnStart

	shots := debug.NewScreenshots(cfg.Debug.ScreenshotDir, "motorino")
	g.renderer, err = scene.New(g.assets, g.world.Window, shots)
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	rng := world.NewRand(cfg.World.Seed)
	if err := world.Build(g.world, g.loader, g.assets, cfg.World, rng); err != nil {
		g.Close()
		return nil, fmt.Errorf("building world: %w", err)
	}

	passes := append(g.renderer.Passes(), ui.NewDebugOverlayPass())
	g.dispatcher, err = NewDispatcher(cfg, engineui.Input{}, passes...)
	if err != nil {
		g.Close()
		return nil, err
	}

	vaos, vbos, textures := g.loader.Stats()
	g.log.Info("world ready",
		zap.Int("entities", g.world.Entities.Count()),
		zap.Int("vaos", vaos),
		zap.Int("vbos", vbos),
		zap.Int("textures", textures))
	return g, nil
}

// NewAssets resolves the resource root and falls back to the embedded
// shaders. A relative root is searched next to the executable and then in
// the working directory, which wins.
func NewAssets(cfg config.AssetsConfig) *assets.Manager {
	m := assets.NewManager()
	if filepath.IsAbs(cfg.Root) {
		m.AddRoot(cfg.Root)
	} else {
		m.AddRoot(assets.ExecutableRoot(cfg.Root))
		m.AddRoot(cfg.Root)
	}
	m.SetFallback(scene.ShaderFS)
	return m
}

// NewDispatcher schedules the controllers and brackets the thread-local
// passes with the telemetry reset and the input harvest.
func NewDispatcher(cfg *config.Config, src systems.InputSource, passes ...dispatch.Local[*world.World]) (*dispatch.Dispatcher[*world.World], error) {
	settings, err := systems.NewRenderSettingsController(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("debug keys: %w", err)
	}

	b := dispatch.NewBuilder[*world.World]().
		WithLogger(logger.Named("dispatch")).
		Add(systems.NewPlayerController()).
		Add(systems.NewCameraController(cfg.Camera)).
		Add(settings).
		AddLocal(systems.DebugInfoResetter{})
	for _, p := range passes {
		b.AddLocal(p)
	}
	b.AddLocal(systems.NewInputHarvester(src))
	return b.Build(), nil
}

// Run blocks until the window is closed.
func (g *Game) Run() {
	g.log.Info("starting frame loop")
	g.lastFrame = time.Now()
	g.backend.Run(g.frame)
	g.log.Info("window closed", zap.Uint64("frames", g.frames))
}

func (g *Game) frame() {
	now := time.Now()
	dt := float32(now.Sub(g.lastFrame).Seconds())
	g.lastFrame = now

	g.world.DeltaTime = min(dt, maxFrameTime)
	if w, h := engineui.DrawableSize(); w > 0 && h > 0 {
		g.world.Window = world.WindowSize{Width: w, Height: h}
	}

	if err := g.dispatcher.Dispatch(context.Background(), g.world); err != nil {
		g.log.Error("frame", zap.Uint64("frame", g.frames), zap.Error(err))
	}
	g.frames++
}

// Close frees GPU resources and the asset cache.
func (g *Game) Close() {
	g.log.Info("closing")
	if g.renderer != nil {
		g.renderer.Destroy()
		g.renderer = nil
	}
	if g.loader != nil {
		g.loader.Destroy()
	}
	if g.assets != nil {
		g.assets.Close()
	}
}
