package field

import (
	"bytes"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cube-showcase/internal/assets"
	"cube-showcase/internal/raycast"
)

type nearest struct{ calls int }

func (n *nearest) Intersect(r raycast.Ray, transforms []mgl32.Mat4) (int, bool) {
	n.calls++
	return raycast.Nearest(r, transforms)
}

func TestPopulate(t *testing.T) {
	f := New(0.1, nil, nil)
	pool := []assets.Identity{"cpp_logo", "go_logo", "js_logo"}
	added := f.Populate(rand.New(rand.NewSource(3)), 500, 45, pool)
	assert.Equal(t, 500, added)
	assert.Equal(t, 500, f.Len())

	seen := map[assets.Identity]int{}
	for _, o := range f.Objects() {
		seen[o.Identity]++
		assert.Equal(t, o.Position, o.Orientation, "orientation mirrors position")
		l := o.Position.Len()
		assert.GreaterOrEqual(t, l, float32(11.24))
		assert.Less(t, l, float32(45.01))
	}
	assert.Len(t, seen, 3)
	for id, n := range seen {
		assert.InDelta(t, 500.0/3, n, 60, "identity %s", id)
	}
}

func TestPopulateEmptyPoolSkips(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	f := New(0.1, nil, log)
	added := f.Populate(rand.New(rand.NewSource(1)), 3, 45, nil)
	assert.Equal(t, 0, added)
	assert.Equal(t, 0, f.Len())
	assert.Contains(t, buf.String(), "empty identity pool")
}

func TestRotateAtIsFrameRateIndependent(t *testing.T) {
	const k = 0.1
	elapsed := 2500 * time.Millisecond

	slow := New(k, nil, nil)
	for _, ms := range []int{500, 1000, 2500} {
		slow.RotateAt(time.Duration(ms) * time.Millisecond)
	}
	fast := New(k, nil, nil)
	for ms := 0; ms <= 2500; ms += 16 {
		fast.RotateAt(time.Duration(ms) * time.Millisecond)
	}
	fast.RotateAt(elapsed)

	want := mgl32.Vec2{float32(elapsed.Seconds()) * k, float32(elapsed.Seconds()) * k}
	assert.Equal(t, want, slow.Rotation())
	assert.Equal(t, want, fast.Rotation())
}

func TestTransformsFollowGroupRotation(t *testing.T) {
	f := New(1, nil, nil)
	f.add(PlacedObject{Identity: "a", Position: mgl32.Vec3{0, 0, 10}})
	p := f.Transforms()[0].Col(3).Vec3()
	assert.InDelta(t, 10, p.Z(), 1e-5)

	// A quarter turn about X carries +Z onto -Y.
	f.SetRotation(mgl32.DegToRad(90), 0)
	p = f.Transforms()[0].Col(3).Vec3()
	assert.InDelta(t, -10, p.Y(), 1e-4)
	assert.InDelta(t, 0, p.Z(), 1e-4)
}

func TestIntersectNearestIdentity(t *testing.T) {
	isect := &nearest{}
	f := New(0, isect, nil)
	f.add(PlacedObject{Identity: "far", Position: mgl32.Vec3{0, 0, -5}})
	f.add(PlacedObject{Identity: "near", Position: mgl32.Vec3{0, 0, 5}})
	f.add(PlacedObject{Identity: "aside", Position: mgl32.Vec3{10, 0, 0}})

	hit, ok := f.Intersect(raycast.Ray{Origin: mgl32.Vec3{0, 0, 30}, Dir: mgl32.Vec3{0, 0, -1}})
	require.True(t, ok)
	assert.Equal(t, assets.Identity("near"), hit.Identity)

	_, ok = f.Intersect(raycast.Ray{Origin: mgl32.Vec3{0, 30, 30}, Dir: mgl32.Vec3{0, 0, -1}})
	assert.False(t, ok)
	assert.Equal(t, 2, isect.calls)
}

func TestIntersectEmptyField(t *testing.T) {
	isect := &nearest{}
	f := New(0, isect, nil)
	_, ok := f.Intersect(raycast.Ray{Dir: mgl32.Vec3{0, 0, -1}})
	assert.False(t, ok)
	assert.Zero(t, isect.calls)
}
