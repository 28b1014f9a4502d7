package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 800 || cfg.Graphics.Height != 800 {
		t.Errorf("expected 800x800 window, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Assets.Root != "res-output" {
		t.Errorf("expected resource root res-output, got %s", cfg.Assets.Root)
	}

	wantCounts := []int{50, 100, 300}
	if len(cfg.World.Trees) != len(wantCounts) {
		t.Fatalf("expected %d tree kinds, got %d", len(wantCounts), len(cfg.World.Trees))
	}
	for i, want := range wantCounts {
		if cfg.World.Trees[i].Count != want {
			t.Errorf("trees[%d].Count = %d, want %d", i, cfg.World.Trees[i].Count, want)
		}
		if cfg.World.Trees[i].Scale != 2.5 {
			t.Errorf("trees[%d].Scale = %v, want 2.5", i, cfg.World.Trees[i].Scale)
		}
	}

	if cfg.Camera.Smoothing {
		t.Error("expected camera smoothing to be off by default")
	}
	if cfg.Debug.ToggleKey != "Slash" {
		t.Errorf("expected toggle key Slash, got %s", cfg.Debug.ToggleKey)
	}
	if cfg.Debug.History != 50 {
		t.Errorf("expected history 50, got %d", cfg.Debug.History)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080

assets:
  root: /opt/motorino/res

world:
  seed: 42
  trees:
    - model: models/fern.glb
      texture: textures/fern.png
      count: 12
      scale: 1.5

camera:
  smoothing: true
  frequency: 4.0

debug:
  toggle_key: F1
  history: 120

logging:
  level: "debug"
  log_file: "motorino.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.Title != "motorino" {
		t.Errorf("expected title to keep its default, got %q", cfg.Graphics.Title)
	}
	if cfg.Assets.Root != "/opt/motorino/res" {
		t.Errorf("expected root /opt/motorino/res, got %s", cfg.Assets.Root)
	}
	if cfg.World.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.World.Seed)
	}
	if len(cfg.World.Trees) != 1 || cfg.World.Trees[0].Model != "models/fern.glb" {
		t.Errorf("expected tree list to be replaced, got %+v", cfg.World.Trees)
	}
	if !cfg.Camera.Smoothing || cfg.Camera.Frequency != 4.0 {
		t.Errorf("expected smoothing at 4.0, got %+v", cfg.Camera)
	}
	if cfg.Camera.Damping != 1.0 {
		t.Errorf("expected damping to keep its default, got %v", cfg.Camera.Damping)
	}
	if cfg.Debug.ToggleKey != "F1" || cfg.Debug.History != 120 {
		t.Errorf("expected F1/120, got %s/%d", cfg.Debug.ToggleKey, cfg.Debug.History)
	}
	if cfg.Logging.LogFile != "motorino.log" {
		t.Errorf("expected log file 'motorino.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, true},
		{"empty root", func(c *Config) { c.Assets.Root = "" }, true},
		{"no history", func(c *Config) { c.Debug.History = 0 }, true},
		{"negative trees", func(c *Config) { c.World.Trees[0].Count = -1 }, true},
		{"tree without texture", func(c *Config) { c.World.Trees[1].Texture = "" }, true},
		{"no trees", func(c *Config) { c.World.Trees = nil }, false},
		{"smoothing without frequency", func(c *Config) {
			c.Camera.Smoothing = true
			c.Camera.Frequency = 0
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Keep the user's real config out of the way.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 640\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
				if !cfg.Debug.ShowOnStart {
					t.Error("expected overlay to show with debug flag")
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "resources flag",
			setup: func() { *flagResources = "/data/res" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Assets.Root != "/data/res" {
					t.Errorf("expected root /data/res, got %s", cfg.Assets.Root)
				}
			},
			teardown: func() { *flagResources = "" },
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = 7 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.World.Seed != 7 {
					t.Errorf("expected seed 7, got %d", cfg.World.Seed)
				}
			},
			teardown: func() { *flagSeed = 0 },
		},
		{
			name:  "smooth camera flag",
			setup: func() { *flagSmooth = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Camera.Smoothing {
					t.Error("expected smoothing to be enabled")
				}
			},
			teardown: func() { *flagSmooth = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("debug:\n  history: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected Load() to reject history 0")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.World.Seed = 99
	cfg.Debug.ShowOnStart = true
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile() error = %v", err)
	}
	if loaded.World.Seed != 99 || !loaded.Debug.ShowOnStart {
		t.Errorf("round trip lost values: seed=%d show=%v", loaded.World.Seed, loaded.Debug.ShowOnStart)
	}
	if loaded.World.PlayerSpawn != cfg.World.PlayerSpawn {
		t.Errorf("PlayerSpawn = %v, want %v", loaded.World.PlayerSpawn, cfg.World.PlayerSpawn)
	}
}
