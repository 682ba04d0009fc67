package main

import (
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/geosphere/internal/lod"
)

func cmdLUT(w io.Writer, args []string) error {
	fs := newFlagSet("lut")
	var radius, maxHeight float64
	var maxLevel int
	planetFlags(fs, &radius, &maxHeight, &maxLevel)
	px := fs.Float64("px", float64(lod.DefaultOptions().AllowedTriPx), "Allowed on-screen triangle size in pixels")
	fov := fs.Float64("fov", 60, "Vertical field of view in degrees")
	width := fs.Int("width", 1280, "Viewport width")
	if err := fs.Parse(args); err != nil {
		return err
	}

	planet := lod.PlanetParams{
		Radius:    float32(radius),
		MaxHeight: float32(maxHeight),
		MaxLevel:  maxLevel,
	}
	tri, err := lod.New(planet, lod.Options{AllowedTriPx: float32(*px)}, nil)
	if err != nil {
		return err
	}
	tri.Precalculate(mgl32.DegToRad(float32(*fov)), *width)

	dots := tri.DotLUT()
	mults := tri.HeightMultLUT()
	distances := tri.DistanceLUT()

	fmt.Fprintf(w, "%5s %12s %12s %14s\n", "level", "dot", "height mult", "distance")
	for level, d := range distances {
		if level < len(dots) {
			fmt.Fprintf(w, "%5d %12.8f %12.8f %14.4f\n", level, dots[level], mults[level], d)
		} else {
			fmt.Fprintf(w, "%5d %12s %12s %14.4f\n", level, "-", "-", d)
		}
	}
	return nil
}
