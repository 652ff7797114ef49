package input

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Key is a logical input signal, independent of the physical key that produces it.
type Key int

const (
	Forward Key = iota
	Left
	Back
	Right
	BloomUp
	BloomDown
	RadiusUp
	RadiusDown
	keyCount
)

var keyNames = [keyCount]string{"forward", "left", "back", "right", "bloom_up", "bloom_down", "radius_up", "radius_down"}

// String returns the config name of k (e.g. "bloom_up").
func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return fmt.Sprintf("Key(%d)", int(k))
	}
	return keyNames[k]
}

// ParseKey returns the logical key with the given config name.
func ParseKey(name string) (Key, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range keyNames {
		if n == name {
			return Key(k), nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

// Keys returns every logical key in declaration order.
func Keys() []Key {
	out := make([]Key, keyCount)
	for i := range out {
		out[i] = Key(i)
	}
	return out
}

// Snapshot is the held state of every logical key at one instant. The frame loop reads
// one snapshot per tick.
type Snapshot [keyCount]bool

// Held reports whether k was held.
func (s Snapshot) Held(k Key) bool {
	return k >= 0 && k < keyCount && s[k]
}

// State latches which logical keys are held. Events may arrive from any goroutine; a key
// stays held from its down event until its matching up event and never auto-releases.
// Rapid toggles of the same key are last-write-wins.
type State struct {
	held     [keyCount]atomic.Bool
	bindings Bindings
}

// NewState returns a state with nothing held that routes physical keys through b.
// A nil b uses DefaultBindings.
func NewState(b Bindings) *State {
	if b == nil {
		b = DefaultBindings()
	}
	return &State{bindings: b}
}

// Press marks k held.
func (s *State) Press(k Key) {
	if k >= 0 && k < keyCount {
		s.held[k].Store(true)
	}
}

// Release marks k released.
func (s *State) Release(k Key) {
	if k >= 0 && k < keyCount {
		s.held[k].Store(false)
	}
}

// KeyDown handles a physical key-down event. Keys without a binding are ignored.
func (s *State) KeyDown(name string) {
	if k, ok := s.bindings[name]; ok {
		s.Press(k)
	}
}

// KeyUp handles a physical key-up event. Keys without a binding are ignored.
func (s *State) KeyUp(name string) {
	if k, ok := s.bindings[name]; ok {
		s.Release(k)
	}
}

// Snapshot returns the current held state of every key.
func (s *State) Snapshot() Snapshot {
	var snap Snapshot
	for i := range s.held {
		snap[i] = s.held[i].Load()
	}
	return snap
}

// Bindings maps physical key names to logical keys. Names follow the browser
// KeyboardEvent.key spelling ("w", "ArrowUp").
type Bindings map[string]Key

// DefaultBindings returns WASD for flight and the arrow keys for bloom:
// up/down change strength, right/left change radius.
func DefaultBindings() Bindings {
	return Bindings{
		"w":          Forward,
		"a":          Left,
		"s":          Back,
		"d":          Right,
		"ArrowUp":    BloomUp,
		"ArrowDown":  BloomDown,
		"ArrowRight": RadiusUp,
		"ArrowLeft":  RadiusDown,
	}
}

// ParseBindings builds bindings from a config map of physical name -> logical key name.
func ParseBindings(m map[string]string) (Bindings, error) {
	b := make(Bindings, len(m))
	for phys, logical := range m {
		k, err := ParseKey(logical)
		if err != nil {
			return nil, fmt.Errorf("binding %q: %w", phys, err)
		}
		b[phys] = k
	}
	return b, nil
}
