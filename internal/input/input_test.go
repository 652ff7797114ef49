package input

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPressRelease(t *testing.T) {
	s := NewState(nil)
	assert.Equal(t, Snapshot{}, s.Snapshot())

	s.Press(Forward)
	s.Press(BloomUp)
	snap := s.Snapshot()
	assert.True(t, snap.Held(Forward))
	assert.True(t, snap.Held(BloomUp))
	assert.False(t, snap.Held(Back))

	// Held until the matching release, however many snapshots are taken.
	for i := 0; i < 3; i++ {
		assert.True(t, s.Snapshot().Held(Forward))
	}
	s.Release(Forward)
	assert.False(t, s.Snapshot().Held(Forward))
	assert.True(t, s.Snapshot().Held(BloomUp))
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewState(nil)
	s.Press(Right)
	snap := s.Snapshot()
	s.Release(Right)
	assert.True(t, snap.Held(Right))
}

func TestLastWriteWins(t *testing.T) {
	s := NewState(nil)
	s.KeyDown("a")
	s.KeyUp("a")
	s.KeyDown("a")
	assert.True(t, s.Snapshot().Held(Left))
	s.KeyUp("a")
	assert.False(t, s.Snapshot().Held(Left))
}

func TestPhysicalBindings(t *testing.T) {
	s := NewState(nil)
	for phys, k := range DefaultBindings() {
		s.KeyDown(phys)
		assert.True(t, s.Snapshot().Held(k), phys)
		s.KeyUp(phys)
		assert.False(t, s.Snapshot().Held(k), phys)
	}
	s.KeyDown("q")
	s.KeyDown("W")
	assert.Equal(t, Snapshot{}, s.Snapshot(), "unbound keys are ignored")
}

func TestOutOfRangeKeys(t *testing.T) {
	s := NewState(nil)
	s.Press(Key(99))
	s.Release(Key(-1))
	assert.False(t, s.Snapshot().Held(Key(99)))
	assert.Equal(t, "Key(99)", Key(99).String())
}

func TestParseBindings(t *testing.T) {
	b, err := ParseBindings(map[string]string{"ArrowUp": "forward", "k": "Bloom_Up"})
	require.NoError(t, err)
	assert.Equal(t, Bindings{"ArrowUp": Forward, "k": BloomUp}, b)

	_, err = ParseBindings(map[string]string{"x": "jump"})
	assert.Error(t, err)

	for _, k := range Keys() {
		got, err := ParseKey(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
}

func TestConcurrentEvents(t *testing.T) {
	s := NewState(nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				s.KeyDown("d")
				_ = s.Snapshot()
			}
		}()
	}
	wg.Wait()
	assert.True(t, s.Snapshot().Held(Right))
}
