package raycast

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var down = Ray{Origin: mgl32.Vec3{0, 0, 5}, Dir: mgl32.Vec3{0, 0, -1}}

func TestIntersectCubeAxisAligned(t *testing.T) {
	d, ok := IntersectCube(down, mgl32.Ident4())
	require.True(t, ok)
	assert.InDelta(t, 4.5, d, 1e-5)
	assert.InDelta(t, 0.5, down.At(d).Z(), 1e-5)
}

func TestIntersectCubeRotated(t *testing.T) {
	// 45 degrees about Y puts an edge toward the ray.
	d, ok := IntersectCube(down, mgl32.HomogRotate3DY(math32.Pi/4))
	require.True(t, ok)
	assert.InDelta(t, 5-math32.Sqrt(2)/2, d, 1e-4)
}

func TestIntersectCubeMisses(t *testing.T) {
	_, ok := IntersectCube(down, mgl32.Translate3D(3, 0, 0))
	assert.False(t, ok, "off to the side")

	_, ok = IntersectCube(down, mgl32.Translate3D(0, 0, 10))
	assert.False(t, ok, "behind the origin")

	_, ok = IntersectCube(Ray{Origin: mgl32.Vec3{0, 0, 0}, Dir: mgl32.Vec3{0, 0, -1}}, mgl32.Ident4())
	assert.False(t, ok, "origin inside the cube")

	_, ok = IntersectCube(Ray{Origin: mgl32.Vec3{0, 2, 5}, Dir: mgl32.Vec3{0, 0, -1}}, mgl32.Ident4())
	assert.False(t, ok, "parallel above the cube")
}

func TestNearest(t *testing.T) {
	transforms := []mgl32.Mat4{
		mgl32.Translate3D(0, 0, -3),
		mgl32.Translate3D(4, 0, 0),
		mgl32.Translate3D(0, 0, 2),
		mgl32.Translate3D(0, 0, 0),
	}
	i, ok := Nearest(down, transforms)
	require.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = Nearest(down, transforms[1:2])
	assert.False(t, ok)

	_, ok = Nearest(down, nil)
	assert.False(t, ok)
}

func TestFromNDC(t *testing.T) {
	eye := mgl32.Vec3{0, 0, 10}
	view := mgl32.LookAtV(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(75), 16.0/9.0, 0.1, 1000)

	r := FromNDC(0, 0, eye, view, proj)
	assert.Equal(t, eye, r.Origin)
	assert.InDelta(t, 0, r.Dir.X(), 1e-4)
	assert.InDelta(t, 0, r.Dir.Y(), 1e-4)
	assert.InDelta(t, -1, r.Dir.Z(), 1e-4)

	right := FromNDC(1, 0, eye, view, proj)
	assert.Greater(t, right.Dir.X(), float32(0))
	up := FromNDC(0, 1, eye, view, proj)
	assert.Greater(t, up.Dir.Y(), float32(0))
	assert.InDelta(t, 1, up.Dir.Len(), 1e-4)
}
