package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"cube-showcase/internal/input"
	"cube-showcase/internal/raycast"
)

// Config holds the projection and motion constants of the rig.
// FOV is the vertical field of view in degrees. Speeds and steps are per tick.
type Config struct {
	FOV          float32
	Near         float32
	Far          float32
	StartZ       float32
	IntroTargetZ float32
	IntroStep    float32
	MoveSpeed    float32
	MinDistance  float32
}

// DefaultConfig returns the reference constants: start at z=100, fly in 0.2 per tick
// down to z=30, move 0.2 per tick and never come closer than 1 to the origin.
func DefaultConfig() Config {
	return Config{
		FOV:          75,
		Near:         0.1,
		Far:          1000,
		StartZ:       100,
		IntroTargetZ: 30,
		IntroStep:    0.2,
		MoveSpeed:    0.2,
		MinDistance:  1,
	}
}

// State is the camera pose. IntroComplete is a one-way latch.
type State struct {
	Position      mgl32.Vec3
	Orientation   mgl32.Quat
	IntroComplete bool
}

var (
	localForward = mgl32.Vec3{0, 0, -1}
	localRight   = mgl32.Vec3{1, 0, 0}
	localUp      = mgl32.Vec3{0, 1, 0}
	worldUp      = mgl32.Vec3{0, 1, 0}
)

// Rig owns the camera pose and projection. Tick runs the intro fly-in and free flight;
// orbiting is left to a separate controller that runs after Tick.
type Rig struct {
	cfg    Config
	state  State
	width  int
	height int
}

// New returns a rig at (0, 0, StartZ) looking down -Z with a width×height viewport.
func New(cfg Config, width, height int) *Rig {
	r := &Rig{
		cfg: cfg,
		state: State{
			Position:    mgl32.Vec3{0, 0, cfg.StartZ},
			Orientation: mgl32.QuatIdent(),
		},
	}
	r.Resize(width, height)
	return r
}

// Config returns the rig's constants.
func (r *Rig) Config() Config { return r.cfg }

// State returns a copy of the current pose.
func (r *Rig) State() State { return r.state }

// Position returns the camera position.
func (r *Rig) Position() mgl32.Vec3 { return r.state.Position }

// SetPosition moves the camera without applying any constraint.
func (r *Rig) SetPosition(p mgl32.Vec3) { r.state.Position = p }

// Orientation returns the camera rotation.
func (r *Rig) Orientation() mgl32.Quat { return r.state.Orientation }

// SetOrientation replaces the camera rotation.
func (r *Rig) SetOrientation(q mgl32.Quat) { r.state.Orientation = q.Normalize() }

// IntroComplete reports whether the fly-in has finished.
func (r *Rig) IntroComplete() bool { return r.state.IntroComplete }

// Forward returns the camera's forward axis in world space.
func (r *Rig) Forward() mgl32.Vec3 { return r.state.Orientation.Rotate(localForward) }

// Right returns the camera's right axis in world space.
func (r *Rig) Right() mgl32.Vec3 { return r.state.Orientation.Rotate(localRight) }

// Up returns the camera's up axis in world space.
func (r *Rig) Up() mgl32.Vec3 { return r.state.Orientation.Rotate(localUp) }

// Tick advances the rig by one frame: the intro fly-in (until latched), then free flight
// from the held keys, then the minimum-distance constraint.
func (r *Rig) Tick(keys input.Snapshot) {
	r.stepIntro()
	r.fly(keys)
	r.constrain()
}

func (r *Rig) stepIntro() {
	if r.state.IntroComplete {
		return
	}
	r.state.Position[2] -= r.cfg.IntroStep
	if r.state.Position[2] <= r.cfg.IntroTargetZ {
		r.state.Position[2] = r.cfg.IntroTargetZ
		r.state.IntroComplete = true
	}
}

// fly translates along the camera's own axes. Each held key contributes MoveSpeed along
// its axis and contributions are summed as-is: forward+right moves sqrt(2)·MoveSpeed.
func (r *Rig) fly(keys input.Snapshot) {
	forward := r.Forward()
	right := r.Right()
	speed := r.cfg.MoveSpeed
	var delta mgl32.Vec3
	if keys.Held(input.Forward) {
		delta = delta.Add(forward.Mul(speed))
	}
	if keys.Held(input.Back) {
		delta = delta.Add(forward.Mul(-speed))
	}
	if keys.Held(input.Left) {
		delta = delta.Add(right.Mul(-speed))
	}
	if keys.Held(input.Right) {
		delta = delta.Add(right.Mul(speed))
	}
	r.state.Position = r.state.Position.Add(delta)
}

// constrain rescales the position onto the MinDistance sphere when it gets closer to the
// origin, keeping its direction. The origin itself has no direction and maps to +Z.
func (r *Rig) constrain() {
	floor := r.cfg.MinDistance
	l := r.state.Position.Len()
	if l >= floor {
		return
	}
	if l == 0 {
		r.state.Position = mgl32.Vec3{0, 0, floor}
		return
	}
	r.state.Position = r.state.Position.Mul(floor / l)
}

// LookAt turns the camera toward target keeping world +Y up. It does nothing when target
// is the camera position or straight above or below it.
func (r *Rig) LookAt(target mgl32.Vec3) {
	f := target.Sub(r.state.Position)
	if f.Len() == 0 {
		return
	}
	f = f.Normalize()
	side := f.Cross(worldUp)
	if side.Len() < 1e-6 {
		return
	}
	side = side.Normalize()
	up := side.Cross(f)
	basis := mgl32.Mat4{
		side[0], side[1], side[2], 0,
		up[0], up[1], up[2], 0,
		-f[0], -f[1], -f[2], 0,
		0, 0, 0, 1,
	}
	r.state.Orientation = mgl32.Mat4ToQuat(basis).Normalize()
}

// Resize updates the viewport used for the aspect ratio and screen-to-ray mapping.
// Non-positive sizes (minimized windows) are ignored.
func (r *Rig) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
}

// Viewport returns the current viewport size in pixels.
func (r *Rig) Viewport() (width, height int) { return r.width, r.height }

// Aspect returns width / height.
func (r *Rig) Aspect() float32 {
	if r.height == 0 {
		return 1
	}
	return float32(r.width) / float32(r.height)
}

// View returns the world-to-camera matrix.
func (r *Rig) View() mgl32.Mat4 {
	p := r.state.Position
	return mgl32.LookAtV(p, p.Add(r.Forward()), r.Up())
}

// Projection returns the perspective projection matrix.
func (r *Rig) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(r.cfg.FOV), r.Aspect(), r.cfg.Near, r.cfg.Far)
}

// RayAt returns the pick ray through the screen point (pixels, origin top-left).
func (r *Rig) RayAt(screenX, screenY float32) raycast.Ray {
	w, h := float32(r.width), float32(r.height)
	if w == 0 || h == 0 {
		return raycast.Ray{Origin: r.state.Position, Dir: r.Forward()}
	}
	ndcX := screenX/w*2 - 1
	ndcY := -(screenY/h)*2 + 1
	return raycast.FromNDC(ndcX, ndcY, r.state.Position, r.View(), r.Projection())
}
