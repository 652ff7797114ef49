// Package headless runs the scene without a window: frames are recorded instead of
// drawn, picking uses the CPU ray test and presented content goes to the log.
package headless

import (
	"log/slog"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"cube-showcase/internal/bloom"
	"cube-showcase/internal/catalog"
	"cube-showcase/internal/raycast"
	"cube-showcase/internal/scene"
)

// Intersector answers ray queries with the CPU slab test.
type Intersector struct{}

// Intersect implements field.Intersector.
func (Intersector) Intersect(r raycast.Ray, transforms []mgl32.Mat4) (int, bool) {
	return raycast.Nearest(r, transforms)
}

// Effects remembers the last bloom parameters it was given.
type Effects struct {
	mu    sync.Mutex
	last  bloom.Params
	calls int
}

// Apply implements scene.PostEffectChain.
func (e *Effects) Apply(p bloom.Params) {
	e.mu.Lock()
	e.last = p
	e.calls++
	e.mu.Unlock()
}

// Last returns the most recent parameters.
func (e *Effects) Last() bloom.Params {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// Renderer keeps the last frame and logs a summary every Every frames.
type Renderer struct {
	Every uint64

	mu     sync.Mutex
	last   scene.Frame
	frames uint64
	width  int
	height int
	log    *slog.Logger
}

// NewRenderer returns a renderer logging every n frames (0 disables the summary).
func NewRenderer(n uint64, log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.Default()
	}
	return &Renderer{Every: n, log: log}
}

// Render implements scene.Renderer.
func (r *Renderer) Render(f scene.Frame) {
	r.mu.Lock()
	r.last = f
	r.frames++
	n := r.frames
	r.mu.Unlock()

	if r.Every == 0 || n%r.Every != 0 {
		return
	}
	p := f.Camera.Position
	r.log.Info("frame",
		"index", f.Index,
		"elapsed", f.Elapsed,
		"camera", []float32{p.X(), p.Y(), p.Z()},
		"intro_complete", f.Camera.IntroComplete,
		"bloom_strength", f.Bloom.Strength,
		"bloom_radius", f.Bloom.Radius,
		"objects", len(f.Objects),
	)
}

// Resize implements scene.Resizer.
func (r *Renderer) Resize(width, height int) {
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
}

// Last returns the most recent frame and the number of frames rendered.
func (r *Renderer) Last() (scene.Frame, uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, r.frames
}

// Size returns the output size set by the last resize.
func (r *Renderer) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// LogPresenter writes presented content to the log.
type LogPresenter struct {
	log *slog.Logger

	mu      sync.Mutex
	current *catalog.Entry
	shown   int
}

// NewLogPresenter returns a presenter logging to log.
func NewLogPresenter(log *slog.Logger) *LogPresenter {
	if log == nil {
		log = slog.Default()
	}
	return &LogPresenter{log: log}
}

// Present implements picking.Presenter.
func (p *LogPresenter) Present(e catalog.Entry) {
	p.mu.Lock()
	p.current = &e
	p.shown++
	p.mu.Unlock()

	p.log.Info("content", "title", e.Title, "projects", len(e.Projects))
	for _, proj := range e.Projects {
		p.log.Info("project", "title", proj.Title, "link", proj.Link, "bullets", len(proj.Bullets))
	}
}

// Dismiss implements picking.Presenter.
func (p *LogPresenter) Dismiss() {
	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()
	p.log.Info("content dismissed")
}

// Current returns the entry on show, if any.
func (p *LogPresenter) Current() (catalog.Entry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return catalog.Entry{}, false
	}
	return *p.current, true
}

// Shown returns how many entries have been presented.
func (p *LogPresenter) Shown() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shown
}
