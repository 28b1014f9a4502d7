package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging and show the overlay")
	flagWidth     = flag.Int("width", 0, "Window width")
	flagHeight    = flag.Int("height", 0, "Window height")
	flagResources = flag.String("resources", "", "Resource root directory")
	flagSeed      = flag.Int64("seed", 0, "World scatter seed (0 = random)")
	flagDebugUI   = flag.Bool("debug-ui", false, "Show the debug overlay on start")
	flagSmooth    = flag.Bool("smooth-camera", false, "Ease the follow camera with a spring")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.ShowOnStart = true
	}
	if *flagDebugUI {
		cfg.Debug.ShowOnStart = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagResources != "" {
		cfg.Assets.Root = *flagResources
	}
	if *flagSeed != 0 {
		cfg.World.Seed = *flagSeed
	}
	if *flagSmooth {
		cfg.Camera.Smoothing = true
	}
}
