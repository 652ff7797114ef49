package orbit

import (
	"github.com/charmbracelet/harmonica"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"cube-showcase/internal/camera"
)

// Config tunes the orbit controller.
type Config struct {
	FPS         int     // update rate the spring is tuned for
	Frequency   float64 // spring angular frequency; higher stops sooner
	Damping     float64 // spring damping ratio; 1 is critically damped
	RotateSpeed float32 // radians per viewport height of drag, divided by 2π
	ZoomSpeed   float32
	MinDistance float32
	MaxDistance float32
}

// DefaultConfig returns settings close to a damped orbit control with damping factor 0.1.
func DefaultConfig() Config {
	return Config{
		FPS:         60,
		Frequency:   6,
		Damping:     1,
		RotateSpeed: 1,
		ZoomSpeed:   1,
		MinDistance: 1,
		MaxDistance: 500,
	}
}

const poleEpsilon = 1e-3

// axis carries one angular velocity that a spring pulls back to zero.
type axis struct {
	velocity float32
	accel    float64
	spring   harmonica.Spring
}

func (a *axis) decay() {
	v, acc := a.spring.Update(float64(a.velocity), a.accel, 0)
	a.velocity, a.accel = float32(v), acc
}

func (a *axis) reset() {
	a.velocity, a.accel = 0, 0
}

// Controller orbits the camera around a target point. Drags feed angular velocity that
// decays smoothly; Update applies it and keeps the camera looking at the target.
type Controller struct {
	cfg    Config
	target mgl32.Vec3
	yaw    axis
	pitch  axis
	scale  float32
}

// New returns a controller orbiting the origin.
func New(cfg Config) *Controller {
	if cfg.FPS <= 0 {
		cfg.FPS = 60
	}
	spring := harmonica.NewSpring(harmonica.FPS(cfg.FPS), cfg.Frequency, cfg.Damping)
	return &Controller{
		cfg:   cfg,
		yaw:   axis{spring: spring},
		pitch: axis{spring: spring},
		scale: 1,
	}
}

// Target returns the orbit centre.
func (c *Controller) Target() mgl32.Vec3 { return c.target }

// SetTarget moves the orbit centre.
func (c *Controller) SetTarget(t mgl32.Vec3) { c.target = t }

// Drag feeds a pointer movement of (dx, dy) pixels in a viewport of the given height.
// A drag across the full height turns the camera 2π·RotateSpeed.
func (c *Controller) Drag(dx, dy float32, viewportHeight int) {
	if viewportHeight <= 0 {
		return
	}
	k := 2 * math32.Pi * c.cfg.RotateSpeed / float32(viewportHeight)
	c.yaw.velocity -= dx * k
	c.pitch.velocity -= dy * k
}

// Zoom scales the orbit radius on the next update. Positive wheel steps move closer.
func (c *Controller) Zoom(steps float32) {
	if steps == 0 {
		return
	}
	c.scale *= math32.Pow(0.95, steps*c.cfg.ZoomSpeed)
}

// Velocity returns the current yaw and pitch angular velocity in radians per update.
func (c *Controller) Velocity() (yaw, pitch float32) {
	return c.yaw.velocity, c.pitch.velocity
}

// Stop drops any remaining motion.
func (c *Controller) Stop() {
	c.yaw.reset()
	c.pitch.reset()
	c.scale = 1
}

// Update rotates the camera offset from the target by the current angular velocity,
// keeps the polar angle off the poles, applies pending zoom, re-aims the camera at the
// target and then lets the velocity decay.
func (c *Controller) Update(rig *camera.Rig) {
	offset := rig.Position().Sub(c.target)
	radius := offset.Len()
	if radius > 0 {
		theta := math32.Atan2(offset.X(), offset.Z())
		phi := math32.Acos(clamp(offset.Y()/radius, -1, 1))

		theta += c.yaw.velocity
		phi = clamp(phi+c.pitch.velocity, poleEpsilon, math32.Pi-poleEpsilon)
		radius = clamp(radius*c.scale, c.cfg.MinDistance, c.cfg.MaxDistance)

		sinPhi := math32.Sin(phi)
		offset = mgl32.Vec3{
			radius * sinPhi * math32.Sin(theta),
			radius * math32.Cos(phi),
			radius * sinPhi * math32.Cos(theta),
		}
		rig.SetPosition(c.target.Add(offset))
	}
	rig.LookAt(c.target)

	c.scale = 1
	c.yaw.decay()
	c.pitch.decay()
}

func clamp(v, lo, hi float32) float32 {
	if hi < lo {
		return lo
	}
	return max(lo, min(hi, v))
}
