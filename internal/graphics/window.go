package graphics

import (
	"context"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"cube-showcase/internal/input"
	"cube-showcase/internal/ui"
)

// Options configure the window.
type Options struct {
	Title      string
	Width      int
	Height     int
	FPS        int
	Fullscreen bool
}

// Handlers receive the window's input events. Nil handlers are skipped.
type Handlers struct {
	Input  *input.State
	Click  func(x, y float32)
	Escape func()
	Drag   func(dx, dy float32, viewportHeight int)
	Wheel  func(steps float32)
	Resize func(width, height int)
}

type boundKey struct {
	name string
	code int32
}

// Window owns the raylib window and acts as the scene's frame source: every Next polls
// input, dispatches it to the handlers and reports the time since the scene started.
// All methods must run on the thread that opened the window.
type Window struct {
	handlers Handlers
	keys     []boundKey
	log      *slog.Logger
	start    float64
}

// Open creates the window. ESC is not an exit key; the window closes from its close button.
func Open(opts Options, bindings input.Bindings, h Handlers, log *slog.Logger) *Window {
	if log == nil {
		log = slog.Default()
	}
	w, hgt := int32(opts.Width), int32(opts.Height)
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if opts.Fullscreen {
		flags |= uint32(rl.FlagFullscreenMode)
		w, hgt = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(w, hgt, opts.Title)
	rl.SetExitKey(rl.KeyNull)
	if opts.FPS > 0 {
		rl.SetTargetFPS(int32(opts.FPS))
	}

	win := &Window{handlers: h, log: log}
	for name := range bindings {
		code, ok := KeyCode(name)
		if !ok {
			log.Warn("unsupported key binding", "key", name)
			continue
		}
		win.keys = append(win.keys, boundKey{name: name, code: code})
	}
	win.start = rl.GetTime()
	log.Info("window opened", "width", rl.GetScreenWidth(), "height", rl.GetScreenHeight(), "fullscreen", opts.Fullscreen)
	return win
}

// Size returns the current screen size.
func (w *Window) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// WaitForStart shows the start button until it is clicked or Enter is pressed. Elapsed
// time is measured from the moment it returns true. It returns false when the window is
// closed or ctx is cancelled first.
func (w *Window) WaitForStart(ctx context.Context, face *Typeface, sheet *ui.Stylesheet) bool {
	btn := ui.NewNode("button", "start", "start", "Start")
	btn.Style = sheet.Resolve(btn)
	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			return false
		}
		sw, sh := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
		bw, bh := float32(btn.Style.Width), float32(btn.Style.Height)
		btn.Bounds = ui.Rect{X: (sw - bw) / 2, Y: (sh - bh) / 2, Width: bw, Height: bh}

		m := rl.GetMousePosition()
		clicked := rl.IsMouseButtonPressed(rl.MouseButtonLeft) && btn.Bounds.Contains(m.X, m.Y)
		if clicked || rl.IsKeyPressed(rl.KeyEnter) {
			w.start = rl.GetTime()
			w.log.Info("scene started")
			return true
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		drawNodes(face, []*ui.Node{btn})
		rl.EndDrawing()
	}
	return false
}

// Next implements scene.FrameSource.
func (w *Window) Next(ctx context.Context) (time.Duration, bool) {
	if ctx.Err() != nil || rl.WindowShouldClose() {
		return 0, false
	}
	w.poll()
	secs := rl.GetTime() - w.start
	return time.Duration(secs * float64(time.Second)), true
}

func (w *Window) poll() {
	h := w.handlers
	if h.Input != nil {
		for _, k := range w.keys {
			if rl.IsKeyPressed(k.code) {
				h.Input.KeyDown(k.name)
			}
			if rl.IsKeyReleased(k.code) {
				h.Input.KeyUp(k.name)
			}
		}
	}
	if h.Escape != nil && rl.IsKeyPressed(rl.KeyEscape) {
		h.Escape()
	}
	if h.Resize != nil && rl.IsWindowResized() {
		h.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}
	if h.Click != nil && rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		m := rl.GetMousePosition()
		h.Click(m.X, m.Y)
	}
	if h.Drag != nil && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		if d := rl.GetMouseDelta(); d.X != 0 || d.Y != 0 {
			h.Drag(d.X, d.Y, rl.GetScreenHeight())
		}
	}
	if h.Wheel != nil {
		if s := rl.GetMouseWheelMove(); s != 0 {
			h.Wheel(s)
		}
	}
}

// Close closes the window.
func (w *Window) Close() {
	rl.CloseWindow()
	w.log.Info("window closed")
}

// OpenURL opens url in the system browser.
func OpenURL(url string) {
	rl.OpenURL(url)
}
