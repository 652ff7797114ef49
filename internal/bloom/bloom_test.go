package bloom

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cube-showcase/internal/input"
)

func held(keys ...input.Key) input.Snapshot {
	var s input.Snapshot
	for _, k := range keys {
		s[k] = true
	}
	return s
}

func TestStrengthGrowsByStep(t *testing.T) {
	c := NewController(Params{}, 0.1)
	for n := 1; n <= 50; n++ {
		p := c.Tick(held(input.BloomUp))
		assert.InDelta(t, float32(n)*0.1, p.Strength, 1e-4, "after %d ticks", n)
		assert.Zero(t, p.Radius)
	}
}

func TestRadiusGrowsByStep(t *testing.T) {
	c := NewController(Params{}, 0.1)
	var p Params
	for n := 0; n < 20; n++ {
		p = c.Tick(held(input.RadiusUp))
	}
	assert.InDelta(t, 2, p.Radius, 1e-4)
	assert.Zero(t, p.Strength)
}

func TestDecreaseFloorsAtZero(t *testing.T) {
	c := NewController(Params{Strength: 0.25, Radius: 0.05}, 0.1)
	for i := 0; i < 10; i++ {
		p := c.Tick(held(input.BloomDown, input.RadiusDown))
		assert.GreaterOrEqual(t, p.Strength, float32(0))
		assert.GreaterOrEqual(t, p.Radius, float32(0))
	}
	assert.Equal(t, Params{}, c.Params())
}

func TestNegativeInitialValuesStartAtZero(t *testing.T) {
	c := NewController(Params{Strength: -1, Radius: -0.5, Threshold: -2}, 0.1)
	assert.Equal(t, Params{}, c.Params())

	p := c.Tick(input.Snapshot{})
	assert.Equal(t, Params{}, p)

	p = c.Tick(held(input.BloomUp))
	assert.InDelta(t, 0.1, p.Strength, 1e-6)
	assert.Zero(t, p.Radius)
}

func TestDecreaseIgnoredAtZero(t *testing.T) {
	c := NewController(Params{}, 0.1)
	p := c.Tick(held(input.BloomDown, input.RadiusDown))
	assert.Equal(t, Params{}, p)
}

func TestUpAndDownSameTick(t *testing.T) {
	// The increase runs first, so from zero the decrease sees a positive value and the
	// net change is zero.
	c := NewController(Params{}, 0.1)
	p := c.Tick(held(input.BloomUp, input.BloomDown, input.RadiusUp, input.RadiusDown))
	assert.InDelta(t, 0, p.Strength, 1e-6)
	assert.InDelta(t, 0, p.Radius, 1e-6)
}

func TestNoUpperBound(t *testing.T) {
	c := NewController(Params{}, 0.1)
	var p Params
	for i := 0; i < 10000; i++ {
		p = c.Tick(held(input.BloomUp, input.RadiusUp))
	}
	assert.InDelta(t, 1000, p.Strength, 0.5)
	assert.InDelta(t, 1000, p.Radius, 0.5)
}

func TestThresholdUntouched(t *testing.T) {
	c := NewController(Params{Threshold: 0.3}, 0)
	assert.Equal(t, DefaultStep, c.Step())
	p := c.Tick(held(input.BloomUp, input.RadiusDown))
	assert.Equal(t, float32(0.3), p.Threshold)
}

func TestOtherKeysIgnored(t *testing.T) {
	c := NewController(Params{Strength: 1, Radius: 1}, 0.1)
	p := c.Tick(held(input.Forward, input.Back, input.Left, input.Right))
	assert.Equal(t, Params{Strength: 1, Radius: 1}, p)
}
