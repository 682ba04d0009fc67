package config

import "flag"

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed    = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen  = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
	flagMaxLevel    = flag.Int("max-level", -1, "Deepest subdivision level")
	flagPatchLevels = flag.Int("patch-levels", -1, "Subdivision levels of the patch template")
	flagWorkers     = flag.Int("workers", -1, "Goroutines used for triangulation")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagMaxLevel >= 0 {
		cfg.Planet.MaxLevel = *flagMaxLevel
	}
	if *flagPatchLevels >= 0 {
		cfg.LOD.PatchLevels = *flagPatchLevels
	}
	if *flagWorkers >= 0 {
		cfg.LOD.Workers = *flagWorkers
	}
}
