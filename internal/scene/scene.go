package scene

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"cube-showcase/internal/bloom"
	"cube-showcase/internal/camera"
	"cube-showcase/internal/field"
	"cube-showcase/internal/input"
	"cube-showcase/internal/picking"
)

// Context is the state shared between event handlers and the loop. Event handlers write
// it at any time; the loop reads it once per tick.
type Context struct {
	Input   *input.State
	Overlay *picking.Overlay
}

// NewContext returns a context with default key bindings and a closed overlay.
func NewContext() Context {
	return Context{Input: input.NewState(nil), Overlay: &picking.Overlay{}}
}

// Frame is everything a renderer needs to draw one frame.
type Frame struct {
	Index       uint64
	Elapsed     time.Duration
	Width       int
	Height      int
	Camera      camera.State
	View        mgl32.Mat4
	Projection  mgl32.Mat4
	Objects     []field.PlacedObject
	Transforms  []mgl32.Mat4
	Bloom       bloom.Params
	OverlayOpen bool
}

// Renderer draws a frame and composites the post-effect output to the screen.
type Renderer interface {
	Render(f Frame)
}

// PostEffectChain receives the bloom parameters before the frame is rendered.
type PostEffectChain interface {
	Apply(p bloom.Params)
}

// Resizer is implemented by renderers whose output size follows the viewport.
type Resizer interface {
	Resize(width, height int)
}

// Orbiter runs after the camera's own movement each tick.
type Orbiter interface {
	Update(rig *camera.Rig)
}

// Parts are the components a Loop drives. Orbit may be nil.
type Parts struct {
	Camera   *camera.Rig
	Bloom    *bloom.Controller
	Field    *field.Field
	Effects  PostEffectChain
	Renderer Renderer
	Orbit    Orbiter
}

type viewport struct {
	width, height int
}

// Loop advances the scene one tick per frame. All tick state is owned by the goroutine
// calling Tick or Run; Resize and Stop may be called from anywhere.
type Loop struct {
	ctx   Context
	parts Parts
	log   *slog.Logger

	frames uint64

	mu      sync.Mutex
	pending *viewport

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLoop returns a loop over parts. log may be nil.
func NewLoop(ctx Context, parts Parts, log *slog.Logger) *Loop {
	if log == nil {
		log = slog.Default()
	}
	return &Loop{ctx: ctx, parts: parts, log: log, stop: make(chan struct{})}
}

// Context returns the shared input and overlay state.
func (l *Loop) Context() Context { return l.ctx }

// Frames returns the number of completed ticks.
func (l *Loop) Frames() uint64 { return l.frames }

// Resize records a new viewport size. It takes effect at the start of the next tick;
// the loop keeps running and no scene state is reset.
func (l *Loop) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	l.mu.Lock()
	l.pending = &viewport{width: width, height: height}
	l.mu.Unlock()
}

func (l *Loop) takeResize() (viewport, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pending == nil {
		return viewport{}, false
	}
	v := *l.pending
	l.pending = nil
	return v, true
}

// Tick runs one frame. elapsed is the time since the scene started. The order is fixed:
// camera intro and free flight, bloom keys, field rotation, post-effect parameters and
// render, then orbit damping.
func (l *Loop) Tick(elapsed time.Duration) {
	p := l.parts
	if v, ok := l.takeResize(); ok {
		p.Camera.Resize(v.width, v.height)
		if r, ok := p.Renderer.(Resizer); ok {
			r.Resize(v.width, v.height)
		}
		l.log.Debug("viewport resized", "width", v.width, "height", v.height)
	}

	keys := l.ctx.Input.Snapshot()
	p.Camera.Tick(keys)
	params := p.Bloom.Tick(keys)
	p.Field.RotateAt(elapsed)

	p.Effects.Apply(params)
	w, h := p.Camera.Viewport()
	p.Renderer.Render(Frame{
		Index:       l.frames,
		Elapsed:     elapsed,
		Width:       w,
		Height:      h,
		Camera:      p.Camera.State(),
		View:        p.Camera.View(),
		Projection:  p.Camera.Projection(),
		Objects:     p.Field.Objects(),
		Transforms:  p.Field.Transforms(),
		Bloom:       params,
		OverlayOpen: l.ctx.Overlay.IsOpen(),
	})

	if p.Orbit != nil {
		p.Orbit.Update(p.Camera)
	}
	l.frames++
}

// Stop makes Run return before its next tick. It is safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

// Run ticks once per frame delivered by frames until the source is exhausted, Stop is
// called, or ctx is cancelled. Only cancellation is reported as an error.
func (l *Loop) Run(ctx context.Context, frames FrameSource) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-l.stop:
			cancel()
		case <-runCtx.Done():
		}
	}()

	l.log.Info("scene loop started", "objects", l.parts.Field.Len())
	for {
		select {
		case <-l.stop:
			l.log.Info("scene loop stopped", "frames", l.frames)
			return nil
		default:
		}
		elapsed, ok := frames.Next(runCtx)
		if !ok {
			select {
			case <-l.stop:
				l.log.Info("scene loop stopped", "frames", l.frames)
				return nil
			default:
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			l.log.Info("frame source finished", "frames", l.frames)
			return nil
		}
		l.Tick(elapsed)
	}
}
