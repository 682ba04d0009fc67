package lod

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is returned for planet or option values that would
// make triangulation meaningless.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Validate checks the planet parameters.
func (p PlanetParams) Validate() error {
	if !(p.Radius > 0) {
		return fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidConfiguration, p.Radius)
	}
	if !(p.MaxHeight >= 0) {
		return fmt.Errorf("%w: max height must not be negative, got %v", ErrInvalidConfiguration, p.MaxHeight)
	}
	if p.MaxLevel < 0 || p.MaxLevel > MaxLevelLimit {
		return fmt.Errorf("%w: max level must be in [0, %d], got %d", ErrInvalidConfiguration, MaxLevelLimit, p.MaxLevel)
	}
	return nil
}

// Validate checks the triangulation options.
func (o Options) Validate() error {
	if !(o.AllowedTriPx > 0) {
		return fmt.Errorf("%w: allowed triangle size must be positive, got %v", ErrInvalidConfiguration, o.AllowedTriPx)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfiguration, o.Workers)
	}
	if o.RegenThreshold < 0 {
		return fmt.Errorf("%w: regen threshold must not be negative, got %v", ErrInvalidConfiguration, o.RegenThreshold)
	}
	return nil
}
