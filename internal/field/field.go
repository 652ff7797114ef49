package field

import (
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"cube-showcase/internal/assets"
	"cube-showcase/internal/raycast"
	"cube-showcase/internal/sampler"
)

// PlacedObject is one cube in the field. Orientation holds Euler angles (radians, XYZ)
// and is set to the sampled position at creation; it is never recomputed.
type PlacedObject struct {
	Identity    assets.Identity
	Position    mgl32.Vec3
	Orientation mgl32.Vec3
}

// Intersector answers ray queries over a set of cube transforms, returning the index of
// the nearest hit. The renderer provides it.
type Intersector interface {
	Intersect(r raycast.Ray, transforms []mgl32.Mat4) (int, bool)
}

// Field owns the placed cubes and the single rotation shared by the whole group.
// Objects are only added by Populate; the group rotation is the only per-frame change.
type Field struct {
	objects   []PlacedObject
	local     []mgl32.Mat4 // per-object translate·rotate, fixed after Populate
	world     []mgl32.Mat4 // local transforms under the current group rotation
	rotation  mgl32.Vec2
	rate      float32 // radians per second on both axes
	dirty     bool
	intersect Intersector
	log       *slog.Logger
}

// New returns an empty field that spins at rate radians per second about X and Y and
// delegates picking to isect.
func New(rate float32, isect Intersector, log *slog.Logger) *Field {
	if log == nil {
		log = slog.Default()
	}
	return &Field{rate: rate, intersect: isect, log: log}
}

// Populate places count cubes at random shell positions of the given radius, each with
// an identity drawn uniformly from pool. With an empty pool the slot is logged and
// skipped, so the field ends up with fewer cubes (possibly none). It returns the number
// of cubes added.
func (f *Field) Populate(rng sampler.Rand, count int, radius float32, pool []assets.Identity) int {
	added := 0
	for i := 0; i < count; i++ {
		if len(pool) == 0 {
			f.log.Warn("empty identity pool, skipping placement", "slot", i)
			continue
		}
		id := pool[rng.Intn(len(pool))]
		pos := sampler.Sample(rng, radius)
		f.add(PlacedObject{Identity: id, Position: pos, Orientation: pos})
		added++
	}
	if added > 0 {
		f.log.Debug("field populated", "added", added, "total", len(f.objects))
	}
	return added
}

func (f *Field) add(obj PlacedObject) {
	o := obj.Orientation
	m := mgl32.Translate3D(obj.Position.X(), obj.Position.Y(), obj.Position.Z()).
		Mul4(mgl32.HomogRotate3DX(o.X())).
		Mul4(mgl32.HomogRotate3DY(o.Y())).
		Mul4(mgl32.HomogRotate3DZ(o.Z()))
	f.objects = append(f.objects, obj)
	f.local = append(f.local, m)
	f.dirty = true
}

// Len returns the number of placed cubes.
func (f *Field) Len() int {
	return len(f.objects)
}

// Objects returns the placed cubes. The slice must not be modified.
func (f *Field) Objects() []PlacedObject {
	return f.objects
}

// SetRotation sets the absolute group rotation in radians.
func (f *Field) SetRotation(x, y float32) {
	if f.rotation.X() == x && f.rotation.Y() == y {
		return
	}
	f.rotation = mgl32.Vec2{x, y}
	f.dirty = true
}

// RotateAt sets the group rotation for the time elapsed since the scene started:
// angle = elapsed·rate on both axes. Spin speed therefore depends on wall-clock time only,
// never on how many frames were drawn.
func (f *Field) RotateAt(elapsed time.Duration) {
	a := float32(elapsed.Seconds()) * f.rate
	f.SetRotation(a, a)
}

// Rotation returns the current group rotation (X, Y) in radians.
func (f *Field) Rotation() mgl32.Vec2 {
	return f.rotation
}

// Group returns the group rotation matrix.
func (f *Field) Group() mgl32.Mat4 {
	return mgl32.HomogRotate3DX(f.rotation.X()).Mul4(mgl32.HomogRotate3DY(f.rotation.Y()))
}

// Transforms returns the world matrix of every cube under the current group rotation.
// The slice is reused between calls and must not be retained across rotation changes.
func (f *Field) Transforms() []mgl32.Mat4 {
	if !f.dirty {
		return f.world
	}
	g := f.Group()
	if cap(f.world) < len(f.local) {
		f.world = make([]mgl32.Mat4, len(f.local))
	}
	f.world = f.world[:len(f.local)]
	for i, m := range f.local {
		f.world[i] = g.Mul4(m)
	}
	f.dirty = false
	return f.world
}

// Intersect returns the cube nearest along the ray, using the field's intersector over
// the current transforms.
func (f *Field) Intersect(r raycast.Ray) (PlacedObject, bool) {
	if f.intersect == nil || len(f.objects) == 0 {
		return PlacedObject{}, false
	}
	i, ok := f.intersect.Intersect(r, f.Transforms())
	if !ok || i < 0 || i >= len(f.objects) {
		return PlacedObject{}, false
	}
	return f.objects[i], true
}
