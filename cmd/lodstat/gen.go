package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/geosphere/internal/engine/camera"
	"github.com/Faultbox/geosphere/internal/engine/frustum"
	"github.com/Faultbox/geosphere/internal/lod"
)

// view describes the camera placement shared by gen and lut.
type view struct {
	altitude float32
	lat, lon float32 // degrees
	tilt     float32 // degrees
	fov      float32 // degrees
	width    int
	height   int
}

type genOptions struct {
	planet lod.PlanetParams
	opts   lod.Options
	view   view
	runs   int
}

// planetFlags registers the planet description on fs.
func planetFlags(fs *flag.FlagSet, radius, maxHeight *float64, maxLevel *int) {
	def := lod.DefaultPlanet()
	fs.Float64Var(radius, "radius", float64(def.Radius), "Planet radius")
	fs.Float64Var(maxHeight, "max-height", float64(def.MaxHeight), "Highest terrain elevation")
	fs.IntVar(maxLevel, "max-level", def.MaxLevel, "Deepest subdivision level")
}

func parseGen(args []string) (genOptions, error) {
	fs := newFlagSet("gen")
	var radius, maxHeight float64
	var maxLevel int
	planetFlags(fs, &radius, &maxHeight, &maxLevel)

	def := lod.DefaultOptions()
	px := fs.Float64("px", float64(def.AllowedTriPx), "Allowed on-screen triangle size in pixels")
	workers := fs.Int("workers", def.Workers, "Goroutines used for triangulation")
	altitude := fs.Float64("altitude", 4000, "Camera height above the surface")
	lat := fs.Float64("lat", 0, "Camera latitude in degrees")
	lon := fs.Float64("lon", 0, "Camera longitude in degrees")
	tilt := fs.Float64("tilt", 0, "View tilt from straight down, in degrees")
	fov := fs.Float64("fov", 60, "Vertical field of view in degrees")
	width := fs.Int("width", 1280, "Viewport width")
	height := fs.Int("height", 720, "Viewport height")
	runs := fs.Int("runs", 1, "Number of timed generations")
	if err := fs.Parse(args); err != nil {
		return genOptions{}, err
	}

	o := genOptions{
		planet: lod.PlanetParams{
			Radius:    float32(radius),
			MaxHeight: float32(maxHeight),
			MaxLevel:  maxLevel,
			World:     mgl32.Ident4(),
		},
		opts: lod.Options{
			AllowedTriPx: float32(*px),
			Workers:      *workers,
		},
		view: view{
			altitude: float32(*altitude),
			lat:      float32(*lat),
			lon:      float32(*lon),
			tilt:     float32(*tilt),
			fov:      float32(*fov),
			width:    *width,
			height:   *height,
		},
		runs: max(*runs, 1),
	}
	if !(o.view.altitude > 0) {
		return o, fmt.Errorf("%w: altitude must be positive, got %v", lod.ErrInvalidConfiguration, o.view.altitude)
	}
	if o.view.width <= 0 || o.view.height <= 0 {
		return o, fmt.Errorf("%w: viewport must be positive, got %dx%d", lod.ErrInvalidConfiguration, o.view.width, o.view.height)
	}
	return o, nil
}

// frustumFor places a camera above the planet and returns its frustum.
func frustumFor(radius float32, v view) *frustum.Frustum {
	cam := camera.NewPlanetCamera(radius, v.altitude)
	cam.Latitude = mgl32.DegToRad(v.lat)
	cam.Longitude = mgl32.DegToRad(v.lon)
	cam.Tilt = mgl32.DegToRad(v.tilt)
	cam.FOV = mgl32.DegToRad(v.fov)
	cam.Near = v.altitude * 0.01
	cam.Far = (radius + v.altitude) * 4
	cam.SetViewport(v.width, v.height)

	f := frustum.New()
	f.SetCamera(cam.ViewMatrix(), cam.ProjectionMatrix(), cam.Position(), cam.FOV)
	return f
}

func cmdGen(w io.Writer, args []string) error {
	o, err := parseGen(args)
	if err != nil {
		return err
	}
	return runGen(w, o)
}

func runGen(w io.Writer, o genOptions) error {
	tri, err := lod.New(o.planet, o.opts, nil)
	if err != nil {
		return err
	}

	ctx := lod.ViewContext{
		Culler:        frustumFor(o.planet.Radius, o.view),
		ViewportWidth: o.view.width,
	}

	var total time.Duration
	for range o.runs {
		tri.Update(ctx)
		tri.GenerateGeometry()
		total += tri.Stats().Duration
	}

	stats := tri.Stats()
	histogram := make([]int, o.planet.MaxLevel+1)
	for _, p := range tri.Instances() {
		histogram[p.Level]++
	}

	fmt.Fprintf(w, "Planet:     radius %g, max height %g, max level %d\n",
		o.planet.Radius, o.planet.MaxHeight, o.planet.MaxLevel)
	fmt.Fprintf(w, "Camera:     altitude %g, lat %g, lon %g, tilt %g, fov %g, %dx%d\n",
		o.view.altitude, o.view.lat, o.view.lon, o.view.tilt, o.view.fov, o.view.width, o.view.height)
	fmt.Fprintf(w, "Instances:  %d\n", stats.Instances)
	fmt.Fprintf(w, "Culled:     %d\n", stats.Culled)
	fmt.Fprintf(w, "Splits:     %d\n", stats.Splits)
	fmt.Fprintf(w, "Tests:      %d\n", stats.FrustumTests)
	fmt.Fprintf(w, "Deepest:    %d\n", stats.DeepestLevel)
	fmt.Fprintf(w, "Time:       %v avg over %d run(s), %d worker(s)\n",
		total/time.Duration(o.runs), o.runs, max(o.opts.Workers, 1))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Instances by level:")
	for level, n := range histogram {
		if n > 0 {
			fmt.Fprintf(w, "  %3d %8d\n", level, n)
		}
	}
	return nil
}
