package picking

import (
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cube-showcase/internal/assets"
	"cube-showcase/internal/camera"
	"cube-showcase/internal/catalog"
	"cube-showcase/internal/field"
	"cube-showcase/internal/raycast"
)

type fixedRays struct{ calls int }

func (f *fixedRays) RayAt(x, y float32) raycast.Ray {
	f.calls++
	return raycast.Ray{Origin: mgl32.Vec3{x, y, 30}, Dir: mgl32.Vec3{0, 0, -1}}
}

type countingTarget struct {
	calls int
	hit   field.PlacedObject
	ok    bool
}

func (c *countingTarget) Intersect(raycast.Ray) (field.PlacedObject, bool) {
	c.calls++
	return c.hit, c.ok
}

type recorder struct {
	presented []catalog.Entry
	dismissed int
}

func (r *recorder) Present(e catalog.Entry) { r.presented = append(r.presented, e) }
func (r *recorder) Dismiss()                 { r.dismissed++ }

// scripted replays identity picks and placement draws in the order Populate asks for them.
type scripted struct {
	ints   []int
	floats []float32
}

func (s *scripted) Intn(int) int {
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v
}

func (s *scripted) Float32() float32 {
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

type nearest struct{}

func (nearest) Intersect(r raycast.Ray, transforms []mgl32.Mat4) (int, bool) {
	return raycast.Nearest(r, transforms)
}

var entryA = catalog.Entry{
	Title: "A things",
	Projects: []catalog.Project{
		{Title: "Alpha", Link: "https://example.com/a", Bullets: []string{"one", "two"}},
	},
}

func TestOverlayTransitions(t *testing.T) {
	var o Overlay
	assert.False(t, o.IsOpen())
	assert.True(t, o.Open())
	assert.False(t, o.Open())
	assert.True(t, o.IsOpen())
	assert.True(t, o.Close())
	assert.False(t, o.Close())
	assert.False(t, o.IsOpen())
}

func TestActivateWhileOpenNeverQueriesField(t *testing.T) {
	rays := &fixedRays{}
	target := &countingTarget{hit: field.PlacedObject{Identity: "A"}, ok: true}
	cat := catalog.New(map[assets.Identity]catalog.Entry{"A": entryA})
	pres := &recorder{}
	c := NewController(&Overlay{}, rays, target, cat, pres, nil)

	require.True(t, c.Activate(0, 0))
	assert.Equal(t, 1, target.calls)

	for i := 0; i < 5; i++ {
		assert.False(t, c.Activate(0, 0))
	}
	assert.Equal(t, 1, target.calls)
	assert.Equal(t, 1, rays.calls)
	assert.Len(t, pres.presented, 1)

	c.Close()
	assert.Equal(t, 1, pres.dismissed)
	assert.False(t, c.Overlay().IsOpen())

	require.True(t, c.Activate(0, 0))
	assert.Equal(t, 2, target.calls)
}

func TestActivateMiss(t *testing.T) {
	target := &countingTarget{}
	pres := &recorder{}
	c := NewController(&Overlay{}, &fixedRays{}, target, catalog.New(nil), pres, nil)
	assert.False(t, c.Activate(10, 10))
	assert.False(t, c.Overlay().IsOpen())
	assert.Empty(t, pres.presented)
	assert.Equal(t, 1, target.calls)
}

func TestCloseWhenIdle(t *testing.T) {
	pres := &recorder{}
	c := NewController(&Overlay{}, &fixedRays{}, &countingTarget{}, catalog.New(nil), pres, nil)
	c.Close()
	assert.Zero(t, pres.dismissed)
}

func TestPickScenario(t *testing.T) {
	// A lands at (0, 0, 10) and B at (0, 25, 0) for a field radius of 40.
	rng := &scripted{
		ints:   []int{0, 1},
		floats: []float32{0, 0, 1, 0.5, 0.25, 0.5},
	}
	f := field.New(0, nearest{}, nil)
	require.Equal(t, 2, f.Populate(rng, 2, 40, []assets.Identity{"A", "B"}))

	cat := catalog.New(map[assets.Identity]catalog.Entry{"A": entryA})
	rig := camera.New(camera.DefaultConfig(), 800, 600)
	rig.SetPosition(mgl32.Vec3{0, 0, 30})
	pres := &recorder{}
	overlay := &Overlay{}
	c := NewController(overlay, rig, f, cat, pres, nil)

	require.True(t, c.Activate(400, 300))
	assert.True(t, overlay.IsOpen())
	require.Len(t, pres.presented, 1)
	assert.Equal(t, entryA, pres.presented[0])

	c.Close()
	rig.SetPosition(mgl32.Vec3{0, 25, 30})
	assert.False(t, c.Activate(400, 300))
	assert.False(t, overlay.IsOpen())
	assert.Len(t, pres.presented, 1)
}

func TestPresentedEntryIsACopy(t *testing.T) {
	cat := catalog.New(map[assets.Identity]catalog.Entry{"A": entryA})
	pres := &recorder{}
	target := &countingTarget{hit: field.PlacedObject{Identity: "A"}, ok: true}
	c := NewController(&Overlay{}, &fixedRays{}, target, cat, pres, nil)
	require.True(t, c.Activate(0, 0))
	pres.presented[0].Projects[0].Bullets[0] = "changed"

	again, ok := cat.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, "one", again.Projects[0].Bullets[0])
}

func TestConcurrentActivateOpensOnce(t *testing.T) {
	var mu sync.Mutex
	pres := &lockedRecorder{mu: &mu}
	target := &lockedTarget{hit: field.PlacedObject{Identity: "A"}}
	cat := catalog.New(map[assets.Identity]catalog.Entry{"A": entryA})
	c := NewController(&Overlay{}, rayAt{}, target, cat, pres, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Activate(0, 0)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, pres.count())
}

type rayAt struct{}

func (rayAt) RayAt(float32, float32) raycast.Ray { return raycast.Ray{Dir: mgl32.Vec3{0, 0, -1}} }

type lockedTarget struct{ hit field.PlacedObject }

func (l *lockedTarget) Intersect(raycast.Ray) (field.PlacedObject, bool) { return l.hit, true }

type lockedRecorder struct {
	mu *sync.Mutex
	n  int
}

func (l *lockedRecorder) Present(catalog.Entry) {
	l.mu.Lock()
	l.n++
	l.mu.Unlock()
}

func (l *lockedRecorder) Dismiss() {}

func (l *lockedRecorder) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.n
}
