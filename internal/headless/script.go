package headless

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cube-showcase/internal/scene"
)

// Script wraps a frame source and runs queued actions just before given frames are
// delivered, standing in for window events.
type Script struct {
	src     scene.FrameSource
	frame   uint64
	actions map[uint64][]func()
}

// NewScript returns a script over src.
func NewScript(src scene.FrameSource) *Script {
	return &Script{src: src, actions: make(map[uint64][]func())}
}

// At queues fn to run before frame (zero-based) is delivered. Actions for the same frame
// run in the order they were queued.
func (s *Script) At(frame uint64, fn func()) *Script {
	s.actions[frame] = append(s.actions[frame], fn)
	return s
}

// Next implements scene.FrameSource.
func (s *Script) Next(ctx context.Context) (time.Duration, bool) {
	elapsed, ok := s.src.Next(ctx)
	if !ok {
		return 0, false
	}
	for _, fn := range s.actions[s.frame] {
		fn()
	}
	delete(s.actions, s.frame)
	s.frame++
	return elapsed, true
}

// ParseAt splits a command-line event of the form "value" or "value@frame". Without a
// frame the event happens before frame 0.
func ParseAt(s string) (string, uint64, error) {
	value, at, found := strings.Cut(strings.TrimSpace(s), "@")
	value = strings.TrimSpace(value)
	if value == "" {
		return "", 0, fmt.Errorf("event %q: empty value", s)
	}
	if !found {
		return value, 0, nil
	}
	frame, err := strconv.ParseUint(strings.TrimSpace(at), 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("event %q: bad frame: %w", s, err)
	}
	return value, frame, nil
}

// ParsePoint parses "x,y" screen coordinates in pixels.
func ParsePoint(s string) (x, y float32, err error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("point %q: want x,y", s)
	}
	fx, err := strconv.ParseFloat(strings.TrimSpace(xs), 32)
	if err != nil {
		return 0, 0, fmt.Errorf("point %q: %w", s, err)
	}
	fy, err := strconv.ParseFloat(strings.TrimSpace(ys), 32)
	if err != nil {
		return 0, 0, fmt.Errorf("point %q: %w", s, err)
	}
	return float32(fx), float32(fy), nil
}
