package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/geosphere/internal/lod"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Window.Height)
	}
	if cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Window.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Planet.Radius != 6371 {
		t.Errorf("expected radius 6371, got %v", cfg.Planet.Radius)
	}
	if cfg.Planet.MaxLevel != 15 {
		t.Errorf("expected max level 15, got %d", cfg.Planet.MaxLevel)
	}

	if cfg.LOD.AllowedTriPx != 300 {
		t.Errorf("expected allowed tri px 300, got %v", cfg.LOD.AllowedTriPx)
	}
	if cfg.LOD.PatchLevels != 4 {
		t.Errorf("expected patch levels 4, got %d", cfg.LOD.PatchLevels)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

camera:
  fov_degrees: 45
  altitude: 250

planet:
  radius: 1737
  max_height: 10.7
  max_level: 12
  rotation_speed: 2

lod:
  allowed_tri_px: 150
  patch_levels: 5
  workers: 4
  regen_threshold: 0.5
  wireframe: true

logging:
  level: "debug"
  log_file: "geosphere.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.VSync {
		t.Error("expected vsync to be false")
	}
	if cfg.Window.Title != "Geosphere" {
		t.Errorf("expected title to keep its default, got %q", cfg.Window.Title)
	}

	if cfg.Camera.FOVDegrees != 45 {
		t.Errorf("expected fov 45, got %v", cfg.Camera.FOVDegrees)
	}
	if cfg.Camera.Near != 1 {
		t.Errorf("expected near to keep its default, got %v", cfg.Camera.Near)
	}

	p := cfg.PlanetParams()
	if p.Radius != 1737 || p.MaxLevel != 12 {
		t.Errorf("unexpected planet params %+v", p)
	}
	if cfg.Planet.RotationSpeed != 2 {
		t.Errorf("expected rotation speed 2, got %v", cfg.Planet.RotationSpeed)
	}

	o := cfg.LODOptions()
	if o.AllowedTriPx != 150 || o.Workers != 4 || o.RegenThreshold != 0.5 {
		t.Errorf("unexpected lod options %+v", o)
	}
	if cfg.LOD.PatchLevels != 5 || !cfg.LOD.Wireframe {
		t.Errorf("unexpected lod section %+v", cfg.LOD)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "geosphere.log" {
		t.Errorf("expected log file 'geosphere.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
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
	if err := loadFromFile(cfg, "/nonexistent/path/geosphere.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
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

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, FileName)
	if err := os.WriteFile(configPath, []byte("window:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Errorf("expected to find %s in current directory", FileName)
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
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "windowed flag",
			setup: func() { *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() { *flagWindowed = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "lod flags",
			setup: func() {
				*flagMaxLevel = 0
				*flagPatchLevels = 6
				*flagWorkers = 8
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Planet.MaxLevel != 0 {
					t.Errorf("expected max level 0, got %d", cfg.Planet.MaxLevel)
				}
				if cfg.LOD.PatchLevels != 6 {
					t.Errorf("expected patch levels 6, got %d", cfg.LOD.PatchLevels)
				}
				if cfg.LOD.Workers != 8 {
					t.Errorf("expected 8 workers, got %d", cfg.LOD.Workers)
				}
			},
			teardown: func() {
				*flagMaxLevel = -1
				*flagPatchLevels = -1
				*flagWorkers = -1
			},
		},
		{
			name:  "unset lod flags keep defaults",
			setup: func() {},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Planet.MaxLevel != 15 || cfg.LOD.PatchLevels != 4 || cfg.LOD.Workers != 1 {
					t.Errorf("defaults overridden: %+v %+v", cfg.Planet, cfg.LOD)
				}
			},
			teardown: func() {},
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
	configPath := filepath.Join(tmpDir, FileName)

	yamlContent := `
window:
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

	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(configPath, []byte("planet:\n  radius: -1\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, lod.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"negative height", func(c *Config) { c.Window.Height = -1 }},
		{"zero fov", func(c *Config) { c.Camera.FOVDegrees = 0 }},
		{"fov too wide", func(c *Config) { c.Camera.FOVDegrees = 180 }},
		{"zero near", func(c *Config) { c.Camera.Near = 0 }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.5 }},
		{"zero altitude", func(c *Config) { c.Camera.Altitude = 0 }},
		{"patch levels too deep", func(c *Config) { c.LOD.PatchLevels = 9 }},
		{"negative patch levels", func(c *Config) { c.LOD.PatchLevels = -1 }},
		{"zero radius", func(c *Config) { c.Planet.Radius = 0 }},
		{"negative max height", func(c *Config) { c.Planet.MaxHeight = -1 }},
		{"max level too deep", func(c *Config) { c.Planet.MaxLevel = lod.MaxLevelLimit + 1 }},
		{"zero allowed tri px", func(c *Config) { c.LOD.AllowedTriPx = 0 }},
		{"negative workers", func(c *Config) { c.LOD.Workers = -2 }},
		{"negative regen threshold", func(c *Config) { c.LOD.RegenThreshold = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, lod.ErrInvalidConfiguration) {
				t.Errorf("expected ErrInvalidConfiguration, got %v", err)
			}
		})
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Planet.MaxLevel = 9
	cfg.LOD.Wireframe = true
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Planet.MaxLevel != 9 || !loaded.LOD.Wireframe {
		t.Errorf("saved values not restored: %+v %+v", loaded.Planet, loaded.LOD)
	}
}

func TestSave(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("APPDATA", t.TempDir())

	if err := Default().Save(); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}
	if _, err := os.Stat(filepath.Join(ConfigDir(), FileName)); err != nil {
		t.Errorf("expected config in %s: %v", ConfigDir(), err)
	}
}
