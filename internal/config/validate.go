package config

import (
	"fmt"

	"github.com/Faultbox/geosphere/internal/engine/patch"
	"github.com/Faultbox/geosphere/internal/lod"
)

// Validate reports the first setting the viewer cannot run with. Errors wrap
// lod.ErrInvalidConfiguration.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", lod.ErrInvalidConfiguration, c.Window.Width, c.Window.Height)
	}
	if !(c.Camera.FOVDegrees > 0 && c.Camera.FOVDegrees < 180) {
		return fmt.Errorf("%w: fov must be in (0, 180), got %v", lod.ErrInvalidConfiguration, c.Camera.FOVDegrees)
	}
	if !(c.Camera.Near > 0) || !(c.Camera.Far > c.Camera.Near) {
		return fmt.Errorf("%w: clip range [%v, %v]", lod.ErrInvalidConfiguration, c.Camera.Near, c.Camera.Far)
	}
	if !(c.Camera.Altitude > 0) {
		return fmt.Errorf("%w: camera altitude must be positive, got %v", lod.ErrInvalidConfiguration, c.Camera.Altitude)
	}
	if c.LOD.PatchLevels < 0 || c.LOD.PatchLevels > patch.MaxTemplateLevels {
		return fmt.Errorf("%w: patch levels must be in [0, %d], got %d",
			lod.ErrInvalidConfiguration, patch.MaxTemplateLevels, c.LOD.PatchLevels)
	}
	if err := c.PlanetParams().Validate(); err != nil {
		return fmt.Errorf("planet: %w", err)
	}
	if err := c.LODOptions().Validate(); err != nil {
		return fmt.Errorf("lod: %w", err)
	}
	return nil
}
