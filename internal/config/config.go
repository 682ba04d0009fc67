// Package config handles viewer configuration loading and management.
package config

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/geosphere/internal/lod"
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Planet  PlanetConfig  `yaml:"planet"`
	LOD     LODConfig     `yaml:"lod"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title            string `yaml:"title"`
	Width            int    `yaml:"width"`
	Height           int    `yaml:"height"`
	Fullscreen       bool   `yaml:"fullscreen"`
	VSync            bool   `yaml:"vsync"`
	ScreenshotDir    string `yaml:"screenshot_dir"`
	ScreenshotFormat string `yaml:"screenshot_format"` // png, tiff or bmp
}

// CameraConfig holds projection and navigation settings.
type CameraConfig struct {
	FOVDegrees float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
	Altitude   float32 `yaml:"altitude"` // start height above the surface
	Speed      float32 `yaml:"speed"`    // orbit degrees per pixel of drag
}

// PlanetConfig describes the rendered sphere.
type PlanetConfig struct {
	Radius        float32 `yaml:"radius"`
	MaxHeight     float32 `yaml:"max_height"`
	MaxLevel      int     `yaml:"max_level"`
	RotationSpeed float32 `yaml:"rotation_speed"` // degrees per second around Y
	SunLongitude  float32 `yaml:"sun_longitude"`  // degrees
	SunLatitude   float32 `yaml:"sun_latitude"`   // degrees
}

// LODConfig holds triangulation and patch settings.
type LODConfig struct {
	AllowedTriPx   float32 `yaml:"allowed_tri_px"`
	PatchLevels    int     `yaml:"patch_levels"`
	Workers        int     `yaml:"workers"`
	RegenThreshold float32 `yaml:"regen_threshold"`
	Wireframe      bool    `yaml:"wireframe"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	planet := lod.DefaultPlanet()
	opts := lod.DefaultOptions()
	return &Config{
		Window: WindowConfig{
			Title:            "Geosphere",
			Width:            1280,
			Height:           720,
			VSync:            true,
			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
		},
		Camera: CameraConfig{
			FOVDegrees: 60,
			Near:       1,
			Far:        1e5,
			Altitude:   4000,
			Speed:      0.2,
		},
		Planet: PlanetConfig{
			Radius:       planet.Radius,
			MaxHeight:    planet.MaxHeight,
			MaxLevel:     planet.MaxLevel,
			SunLongitude: 30,
			SunLatitude:  20,
		},
		LOD: LODConfig{
			AllowedTriPx:   opts.AllowedTriPx,
			PatchLevels:    4,
			Workers:        opts.Workers,
			RegenThreshold: opts.RegenThreshold,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// PlanetParams converts the planet section for the triangulator.
func (c *Config) PlanetParams() lod.PlanetParams {
	return lod.PlanetParams{
		Radius:    c.Planet.Radius,
		MaxHeight: c.Planet.MaxHeight,
		MaxLevel:  c.Planet.MaxLevel,
		World:     mgl32.Ident4(),
	}
}

// LODOptions converts the lod section for the triangulator.
func (c *Config) LODOptions() lod.Options {
	return lod.Options{
		AllowedTriPx:   c.LOD.AllowedTriPx,
		Workers:        c.LOD.Workers,
		RegenThreshold: c.LOD.RegenThreshold,
	}
}
