package debug

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cube-showcase/internal/bloom"
	"cube-showcase/internal/camera"
	"cube-showcase/internal/field"
	"cube-showcase/internal/scene"
)

func TestHiddenByDefault(t *testing.T) {
	h := New()
	assert.False(t, h.Enabled())
	h.Update(scene.Frame{}, 60)
	assert.Empty(t, h.Lines())
}

func TestLines(t *testing.T) {
	h := New()
	h.ShowFPS = true
	h.ShowBloom = true
	f := scene.Frame{
		Camera: camera.State{Position: mgl32.Vec3{0, 0, 64.2}},
		Bloom:  bloom.Params{Strength: 1.5, Radius: 0.4},
	}
	h.Update(f, 58)
	require.Len(t, h.Lines(), 3)
	assert.Equal(t, "FPS: 58", h.Lines()[0])
	assert.Equal(t, "Bloom: strength 1.5 radius 0.4", h.Lines()[1])
	assert.Equal(t, "Intro: z 64.2", h.Lines()[2])
}

func TestRefreshInterval(t *testing.T) {
	h := New()
	h.ShowFPS = true
	h.Update(scene.Frame{}, 10)
	for i := 0; i < updateInterval-2; i++ {
		h.Update(scene.Frame{}, 99)
	}
	assert.Equal(t, "FPS: 10", h.Lines()[0])
	h.Update(scene.Frame{}, 99)
	assert.Equal(t, "FPS: 99", h.Lines()[0])
}

func TestIntroDoneShowsObjects(t *testing.T) {
	h := New()
	h.ShowBloom = true
	h.ShowMemAlloc = true
	h.Update(scene.Frame{Camera: camera.State{IntroComplete: true}, Objects: make([]field.PlacedObject, 3)}, 60)
	require.Len(t, h.Lines(), 3)
	assert.Equal(t, "Objects: 3", h.Lines()[1])
	assert.Contains(t, h.Lines()[2], "MiB")
}
