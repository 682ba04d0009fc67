package app

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/geosphere/internal/config"
	"github.com/Faultbox/geosphere/internal/engine/camera"
	"github.com/Faultbox/geosphere/internal/engine/frustum"
	"github.com/Faultbox/geosphere/internal/lod"
)

// Frame is what the renderer needs after one controller step.
type Frame struct {
	// Regenerated is set when Instances and Distances changed and must be
	// uploaded again.
	Regenerated bool
	Instances   []lod.PatchInstance
	Distances   []float32

	ViewProj mgl32.Mat4
	World    mgl32.Mat4
	// CameraObject is the live camera in planet object space. It keeps
	// moving while the frustum is locked.
	CameraObject mgl32.Vec3
	// PlanetVisible is false when the planet's bounding sphere lies outside
	// the live frustum. A locked frustum always draws.
	PlanetVisible bool
}

// Controller drives camera, frustum and triangulator without touching GL.
type Controller struct {
	cfg *config.Config
	log *zap.Logger

	camera  *camera.PlanetCamera
	frustum *frustum.Frustum
	tri     *lod.Triangulator

	width, height int
	locked        bool
	rotation      float32 // radians about Y
}

// NewController builds the triangulator and camera from cfg.
func NewController(cfg *config.Config, log *zap.Logger) (*Controller, error) {
	if log == nil {
		log = zap.NewNop()
	}

	tri, err := lod.New(cfg.PlanetParams(), cfg.LODOptions(), log.Named("lod"))
	if err != nil {
		return nil, fmt.Errorf("creating triangulator: %w", err)
	}

	cam := camera.NewPlanetCamera(cfg.Planet.Radius, cfg.Camera.Altitude)
	cam.FOV = mgl32.DegToRad(cfg.Camera.FOVDegrees)
	cam.Near = cfg.Camera.Near
	cam.Far = cfg.Camera.Far
	cam.DragSensitivity = mgl32.DegToRad(cfg.Camera.Speed)

	c := &Controller{
		cfg:     cfg,
		log:     log,
		camera:  cam,
		frustum: frustum.New(),
		tri:     tri,
	}
	c.Resize(cfg.Window.Width, cfg.Window.Height)
	return c, nil
}

// Resize sets the viewport used for projection and the distance LUT.
func (c *Controller) Resize(width, height int) {
	c.width, c.height = width, height
	c.camera.SetViewport(width, height)
}

// HandleMouse applies one frame of mouse input. Dragging with shift held
// tilts the view instead of orbiting.
func (c *Controller) HandleMouse(dragX, dragY, wheel float32, shift bool) {
	if shift {
		c.camera.HandleTilt(dragY)
	} else if dragX != 0 || dragY != 0 {
		c.camera.HandleDrag(dragX, dragY)
	}
	if wheel != 0 {
		c.camera.HandleZoom(wheel)
	}
}

// Step advances the planet rotation by dt seconds, feeds the camera to the
// frustum and regenerates geometry when the triangulator asks for it.
func (c *Controller) Step(dt float64) Frame {
	c.rotation += mgl32.DegToRad(c.cfg.Planet.RotationSpeed) * float32(dt)
	world := mgl32.HomogRotate3DY(c.rotation)
	c.tri.SetWorld(world)

	view := c.camera.ViewMatrix()
	proj := c.camera.ProjectionMatrix()
	pos := c.camera.Position()
	c.frustum.SetCamera(view, proj, pos, c.camera.FOV)

	f := Frame{
		ViewProj:     proj.Mul4(view),
		World:        world,
		CameraObject: world.Inv().Mul4x1(pos.Vec4(1)).Vec3(),
	}

	ctx := lod.ViewContext{
		Culler:        c.frustum,
		ViewportWidth: c.width,
		Locked:        c.locked,
	}
	if c.tri.Update(ctx) {
		c.tri.GenerateGeometry()
		f.Regenerated = true
	}
	f.Instances = c.tri.Instances()
	f.Distances = c.tri.DistanceLUT()
	f.PlanetVisible = c.locked || c.frustum.ContainsSphere(mgl32.Vec3{}, c.boundingRadius()) != lod.Outside
	return f
}

func (c *Controller) boundingRadius() float32 {
	p := c.tri.Planet()
	return p.Radius + p.MaxHeight
}

// NadirVisible reports whether the surface point straight below the camera
// is inside the culling frustum of the last step.
func (c *Controller) NadirVisible() bool {
	pos := c.frustum.PositionObjectSpace()
	if pos.Len() == 0 {
		return false
	}
	return c.frustum.ContainsPoint(pos.Normalize().Mul(c.tri.Planet().Radius))
}

// ToggleLock freezes or releases the frustum used for culling.
func (c *Controller) ToggleLock() bool {
	c.locked = !c.locked
	c.log.Info("frustum lock", zap.Bool("locked", c.locked))
	return c.locked
}

// ChangeMaxLevel moves the deepest subdivision level by delta. Out of range
// values are rejected and logged.
func (c *Controller) ChangeMaxLevel(delta int) {
	level := c.tri.Planet().MaxLevel + delta
	if err := c.tri.SetMaxLevel(level); err != nil {
		c.log.Warn("max level unchanged", zap.Error(err))
		return
	}
	c.log.Info("max level", zap.Int("level", level))
}

// LogStats writes the counters of the last generation.
func (c *Controller) LogStats() {
	s := c.tri.Stats()
	c.log.Info("triangulation stats",
		zap.Int("instances", s.Instances),
		zap.Int("culled", s.Culled),
		zap.Int("splits", s.Splits),
		zap.Int("frustumTests", s.FrustumTests),
		zap.Int("deepest", s.DeepestLevel),
		zap.Duration("took", s.Duration),
		zap.Float32("altitude", c.camera.Altitude),
		zap.Bool("locked", c.locked),
		zap.Bool("nadirVisible", c.NadirVisible()),
	)
}

// Camera returns the viewer camera.
func (c *Controller) Camera() *camera.PlanetCamera { return c.camera }

// Triangulator returns the LOD triangulator.
func (c *Controller) Triangulator() *lod.Triangulator { return c.tri }

// Locked reports whether the frustum is frozen.
func (c *Controller) Locked() bool { return c.locked }
