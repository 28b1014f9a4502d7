// Package config handles renderer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Assets   AssetsConfig   `yaml:"assets"`
	World    WorldConfig    `yaml:"world"`
	Camera   CameraConfig   `yaml:"camera"`
	Debug    DebugConfig    `yaml:"debug"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds window settings.
type GraphicsConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// AssetsConfig locates resources.
type AssetsConfig struct {
	// Root is the resource directory. Relative paths are resolved next to
	// the executable first, then against the working directory.
	Root string `yaml:"root"`
}

// WorldConfig drives world construction.
type WorldConfig struct {
	Seed        int64      `yaml:"seed"` // 0 = seed from the clock
	Trees       []TreeKind `yaml:"trees"`
	PlayerModel string     `yaml:"player_model"`
	PlayerTex   string     `yaml:"player_texture"`
	PlayerSpawn [3]float32 `yaml:"player_spawn"`
}

// TreeKind is one batch of randomly scattered static entities.
type TreeKind struct {
	Model   string  `yaml:"model"`
	Texture string  `yaml:"texture"`
	Count   int     `yaml:"count"`
	Scale   float32 `yaml:"scale"`
}

// CameraConfig holds follow-camera settings.
type CameraConfig struct {
	Smoothing bool    `yaml:"smoothing"`
	Frequency float64 `yaml:"frequency"` // spring angular frequency
	Damping   float64 `yaml:"damping"`   // spring damping ratio
}

// DebugConfig holds overlay and tooling settings.
type DebugConfig struct {
	ShowOnStart   bool   `yaml:"show_on_start"`
	ToggleKey     string `yaml:"toggle_key"`
	WireframeKey  string `yaml:"wireframe_key"`
	ScreenshotKey string `yaml:"screenshot_key"`
	ScreenshotDir string `yaml:"screenshot_dir"`
	History       int    `yaml:"history"` // telemetry ring buffer capacity
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock world and window.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Title:  "motorino",
			Width:  800,
			Height: 800,
		},
		Assets: AssetsConfig{
			Root: "res-output",
		},
		World: WorldConfig{
			Seed: 0,
			Trees: []TreeKind{
				{Model: "models/tree1.obj", Texture: "textures/tree1.jpg", Count: 50, Scale: 2.5},
				{Model: "models/tree2.obj", Texture: "textures/tree2.jpg", Count: 100, Scale: 2.5},
				{Model: "models/tree3.obj", Texture: "textures/tree3.jpg", Count: 300, Scale: 2.5},
			},
			PlayerModel: "models/lego-man.obj",
			PlayerTex:   "textures/lego-man.jpg",
			PlayerSpawn: [3]float32{400, 0, 400},
		},
		Camera: CameraConfig{
			Smoothing: false,
			Frequency: 6.0,
			Damping:   1.0,
		},
		Debug: DebugConfig{
			ShowOnStart:   false,
			ToggleKey:     "Slash",
			WireframeKey:  "F3",
			ScreenshotKey: "F12",
			ScreenshotDir: "screenshots",
			History:       50,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings the renderer cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: window size %dx%d", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Assets.Root == "" {
		errs = append(errs, errors.New("assets: empty root"))
	}
	if c.Debug.History <= 0 {
		errs = append(errs, fmt.Errorf("debug: history %d must be positive", c.Debug.History))
	}
	for i, t := range c.World.Trees {
		if t.Count < 0 {
			errs = append(errs, fmt.Errorf("world: trees[%d] negative count", i))
		}
		if t.Model == "" || t.Texture == "" {
			errs = append(errs, fmt.Errorf("world: trees[%d] needs model and texture", i))
		}
	}
	if c.Camera.Smoothing && c.Camera.Frequency <= 0 {
		errs = append(errs, fmt.Errorf("camera: spring frequency %v must be positive", c.Camera.Frequency))
	}
	return errors.Join(errs...)
}
