package bloom

import (
	"cube-showcase/internal/input"
)

// DefaultStep is the per-tick change applied while a bloom key is held.
const DefaultStep float32 = 0.1

// Params are the bloom post-effect parameters handed to the renderer each frame.
type Params struct {
	Strength  float32
	Radius    float32
	Threshold float32
}

// Controller adjusts Params from held keys. Strength and radius never drop below zero;
// there is no upper bound.
type Controller struct {
	params Params
	step   float32
}

// NewController returns a controller starting from initial, with negative values raised
// to zero. A non-positive step falls back to DefaultStep.
func NewController(initial Params, step float32) *Controller {
	if step <= 0 {
		step = DefaultStep
	}
	initial.Strength = max(initial.Strength, 0)
	initial.Radius = max(initial.Radius, 0)
	initial.Threshold = max(initial.Threshold, 0)
	return &Controller{params: initial, step: step}
}

// Params returns the current parameters.
func (c *Controller) Params() Params { return c.params }

// Step returns the per-tick increment.
func (c *Controller) Step() float32 { return c.step }

// Tick applies one frame of adjustments in a fixed order: radius up, strength up,
// strength down, radius down. Decreases only apply while the value is positive and
// are floored at zero.
func (c *Controller) Tick(keys input.Snapshot) Params {
	p := &c.params
	if keys.Held(input.RadiusUp) {
		p.Radius += c.step
	}
	if keys.Held(input.BloomUp) {
		p.Strength += c.step
	}
	if p.Strength > 0 && keys.Held(input.BloomDown) {
		p.Strength = max(0, p.Strength-c.step)
	}
	if p.Radius > 0 && keys.Held(input.RadiusDown) {
		p.Radius = max(0, p.Radius-c.step)
	}
	return c.params
}
