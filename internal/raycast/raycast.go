package raycast

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// cubeHalf is the half extent of the unit cube every placed object is drawn with.
const cubeHalf = 0.5

// parallelEpsilon: direction components below this are treated as parallel to a slab.
const parallelEpsilon = 1e-8

// Ray is a half-line from Origin along Dir. Dir is normalized by FromNDC but need not be.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// FromNDC builds the pick ray of a perspective camera at eye through normalized device
// coordinates (x right, y up, both in [-1, 1]): the point is unprojected at mid depth and
// the ray runs from the eye through it.
func FromNDC(ndcX, ndcY float32, eye mgl32.Vec3, view, projection mgl32.Mat4) Ray {
	inv := projection.Mul4(view).Inv()
	p := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, 0.5, 1})
	target := p.Vec3().Mul(1 / p.W())
	return Ray{Origin: eye, Dir: target.Sub(eye).Normalize()}
}

// IntersectCube tests the ray against a unit cube placed by model (rotation and
// translation). The ray is moved into the cube's local space and clipped against the
// three slabs. It returns the distance along the world ray to the entry point.
// A ray starting inside the cube does not hit it: only outward faces are pickable.
func IntersectCube(r Ray, model mgl32.Mat4) (float32, bool) {
	inv := model.Inv()
	o := inv.Mul4x1(r.Origin.Vec4(1)).Vec3()
	d := inv.Mul4x1(r.Dir.Vec4(0)).Vec3()

	tmin, tmax := math32.Inf(-1), math32.Inf(1)
	for axis := 0; axis < 3; axis++ {
		if math32.Abs(d[axis]) < parallelEpsilon {
			if o[axis] < -cubeHalf || o[axis] > cubeHalf {
				return 0, false
			}
			continue
		}
		t1 := (-cubeHalf - o[axis]) / d[axis]
		t2 := (cubeHalf - o[axis]) / d[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmin < 0 {
		return 0, false
	}
	return tmin, true
}

// Nearest returns the index of the closest cube hit by the ray, or false when none is.
func Nearest(r Ray, transforms []mgl32.Mat4) (int, bool) {
	best, bestT := -1, math32.Inf(1)
	for i, m := range transforms {
		t, ok := IntersectCube(r, m)
		if ok && t < bestT {
			best, bestT = i, t
		}
	}
	return best, best >= 0
}
