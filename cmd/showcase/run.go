package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"cube-showcase/internal/assets"
	"cube-showcase/internal/bloom"
	"cube-showcase/internal/camera"
	"cube-showcase/internal/catalog"
	"cube-showcase/internal/config"
	"cube-showcase/internal/debug"
	"cube-showcase/internal/field"
	"cube-showcase/internal/fonts"
	"cube-showcase/internal/graphics"
	"cube-showcase/internal/headless"
	"cube-showcase/internal/input"
	"cube-showcase/internal/orbit"
	"cube-showcase/internal/picking"
	"cube-showcase/internal/sampler"
	"cube-showcase/internal/scene"
	"cube-showcase/internal/ui"
)

type runOptions struct {
	headless bool
	realtime bool
	frames   uint64
	holds    []string
	picks    []string
}

func newRunCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the showcase window (or simulate it with --headless)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadPrefs()
			if err != nil {
				return err
			}
			log := newLog(p)
			if opts.headless {
				return runHeadless(cmd.Context(), cmd.OutOrStdout(), p, opts, log)
			}
			return runWindow(cmd.Context(), p, opts, log)
		},
	}
	f := cmd.Flags()
	f.BoolVar(&opts.headless, "headless", false, "Run without a window, logging frames instead of drawing them")
	f.BoolVar(&opts.realtime, "realtime", false, "Pace headless frames in real time instead of stepping")
	f.Uint64Var(&opts.frames, "frames", 0, "Stop after this many frames (0 runs until closed)")
	f.StringArrayVar(&opts.holds, "hold", nil, "Headless: hold a key from a frame, as key[@frame]")
	f.StringArrayVar(&opts.picks, "pick", nil, "Headless: click a screen point at a frame, as x,y[@frame]")
	return cmd
}

// world is the backend-independent part of a running scene.
type world struct {
	ctx     scene.Context
	catalog *catalog.Catalog
	rig     *camera.Rig
	bloom   *bloom.Controller
	field   *field.Field
	orbit   *orbit.Controller
}

func loadCatalog(p config.Prefs) (*catalog.Catalog, error) {
	if p.Catalog == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(p.Catalog)
}

// newWorld loads the catalog and textures and populates the field. isect answers pick rays
// for the backend in use.
func newWorld(ctx context.Context, p config.Prefs, isect field.Intersector, log *slog.Logger) (*world, []assets.Texture, error) {
	cat, err := loadCatalog(p)
	if err != nil {
		return nil, nil, err
	}
	w := &world{
		ctx:     scene.Context{Input: input.NewState(p.Bindings()), Overlay: &picking.Overlay{}},
		catalog: cat,
		rig:     camera.New(p.CameraRig(), p.Window.Width, p.Window.Height),
		bloom:   bloom.NewController(p.InitialBloom(), p.Bloom.Step),
		field:   field.New(p.Scene.RotationRate, isect, log),
	}
	if p.Orbit.Enabled {
		w.orbit = orbit.New(p.OrbitControls())
	}

	loader := &assets.FileLoader{Dir: p.Assets.Dir, CacheDir: p.Assets.CacheDir, Size: p.Assets.TextureSize}
	placement := scene.Placement{
		Count:  p.Scene.ObjectCount,
		Radius: p.Scene.Radius,
		Rand:   sampler.NewRand(p.Scene.Seed),
	}
	textures, err := scene.Setup(ctx, loader, p.Assets.Textures, w.field, placement, log)
	if err != nil {
		return nil, nil, err
	}
	if missing := cat.Missing(assets.Identities(textures)); len(missing) > 0 {
		log.Warn("textures without content", "identities", missing)
	}
	return w, textures, nil
}

func (w *world) parts(effects scene.PostEffectChain, r scene.Renderer) scene.Parts {
	parts := scene.Parts{
		Camera:   w.rig,
		Bloom:    w.bloom,
		Field:    w.field,
		Effects:  effects,
		Renderer: r,
	}
	if w.orbit != nil {
		parts.Orbit = w.orbit
	}
	return parts
}

func runHeadless(ctx context.Context, out io.Writer, p config.Prefs, opts runOptions, log *slog.Logger) error {
	if opts.frames == 0 && !opts.realtime {
		return errors.New("headless stepping needs --frames (or --realtime)")
	}
	w, _, err := newWorld(ctx, p, headless.Intersector{}, log)
	if err != nil {
		return err
	}
	presenter := headless.NewLogPresenter(log)
	picker := picking.NewController(w.ctx.Overlay, w.rig, w.field, w.catalog, presenter, log)

	var src scene.FrameSource
	if opts.realtime {
		t := scene.NewTicker(p.Window.FPS, opts.frames)
		defer t.Stop()
		src = t
	} else {
		src = scene.NewStepper(p.Window.FPS, opts.frames)
	}
	script := headless.NewScript(src)
	for _, h := range opts.holds {
		key, frame, err := headless.ParseAt(h)
		if err != nil {
			return err
		}
		script.At(frame, func() { w.ctx.Input.KeyDown(key) })
	}
	for _, pk := range opts.picks {
		pt, frame, err := headless.ParseAt(pk)
		if err != nil {
			return err
		}
		x, y, err := headless.ParsePoint(pt)
		if err != nil {
			return err
		}
		script.At(frame, func() { picker.Activate(x, y) })
	}

	effects := &headless.Effects{}
	renderer := headless.NewRenderer(uint64(max(p.Window.FPS, 1)), log)
	loop := scene.NewLoop(w.ctx, w.parts(effects, renderer), log)
	if err := loop.Run(ctx, script); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	last, _ := renderer.Last()
	pos := last.Camera.Position
	fmt.Fprintf(out, "frames: %d\n", loop.Frames())
	fmt.Fprintf(out, "objects: %d\n", w.field.Len())
	fmt.Fprintf(out, "camera: %.2f %.2f %.2f (intro complete: %t)\n", pos.X(), pos.Y(), pos.Z(), last.Camera.IntroComplete)
	fmt.Fprintf(out, "bloom: strength %.1f radius %.1f threshold %.1f\n", last.Bloom.Strength, last.Bloom.Radius, last.Bloom.Threshold)
	if e, ok := presenter.Current(); ok {
		fmt.Fprintf(out, "overlay: %s\n", e.Title)
	} else {
		fmt.Fprintln(out, "overlay: closed")
	}
	return nil
}

func loadStylesheet(p config.Prefs) (*ui.Stylesheet, error) {
	if p.UI.Stylesheet == "" {
		return ui.DefaultStylesheet(), nil
	}
	return ui.LoadCSS(p.UI.Stylesheet)
}

func loadTypeface(p config.Prefs, log *slog.Logger) *graphics.Typeface {
	if p.UI.Font == "" {
		return &graphics.Typeface{}
	}
	path, err := fonts.Resolve(p.UI.FontDir, p.UI.Font)
	if err != nil {
		log.Warn("font not found, using default", "font", p.UI.Font, "err", err)
		return &graphics.Typeface{}
	}
	face, err := graphics.LoadTypeface(path)
	if err != nil {
		log.Warn("font not loaded, using default", "path", path, "err", err)
	}
	return face
}

func runWindow(ctx context.Context, p config.Prefs, opts runOptions, log *slog.Logger) error {
	sheet, err := loadStylesheet(p)
	if err != nil {
		return err
	}
	pass := graphics.NewBloomPass()
	renderer := graphics.NewRenderer(p.Scene.FogDensity, pass, log)
	w, textures, err := newWorld(ctx, p, renderer, log)
	if err != nil {
		return err
	}

	var (
		popup  *ui.Popup
		picker *picking.Controller
		loop   *scene.Loop
	)
	handlers := graphics.Handlers{
		Input: w.ctx.Input,
		Click: func(x, y float32) {
			if !popup.Visible() {
				picker.Activate(x, y)
				return
			}
			switch action, url := popup.Click(x, y); action {
			case ui.ActionClose:
				picker.Close()
			case ui.ActionLink:
				log.Info("opening link", "url", url)
				graphics.OpenURL(url)
			}
		},
		Escape: func() { picker.Close() },
		Drag: func(dx, dy float32, height int) {
			if w.orbit != nil && !w.ctx.Overlay.IsOpen() {
				w.orbit.Drag(dx, dy, height)
			}
		},
		Wheel: func(steps float32) {
			if popup.Visible() {
				popup.Scroll(-steps)
			} else if w.orbit != nil {
				w.orbit.Zoom(steps)
			}
		},
		Resize: func(width, height int) { loop.Resize(width, height) },
	}

	win := graphics.Open(graphics.Options{
		Title:      p.Window.Title,
		Width:      p.Window.Width,
		Height:     p.Window.Height,
		FPS:        p.Window.FPS,
		Fullscreen: p.Window.Fullscreen,
	}, p.Bindings(), handlers, log)
	defer win.Close()

	face := loadTypeface(p, log)
	defer face.Unload()

	popup = ui.NewPopup(sheet, face)
	picker = picking.NewController(w.ctx.Overlay, w.rig, w.field, w.catalog, popup, log)

	hud := debug.New()
	hud.ShowFPS = p.Debug.ShowFPS
	hud.ShowBloom = p.Debug.ShowBloom
	hud.ShowMemAlloc = p.Debug.ShowMem
	renderer.AddOverlay(graphics.PopupOverlay{Popup: popup, Face: face})
	renderer.AddOverlay(graphics.NewHUDOverlay(hud, face, sheet))
	renderer.UploadTextures(textures)
	defer renderer.Unload()

	loop = scene.NewLoop(w.ctx, w.parts(pass, renderer), log)
	loop.Resize(win.Size())

	if p.Window.StartGate && !win.WaitForStart(ctx, face, sheet) {
		return nil
	}

	var src scene.FrameSource = win
	if opts.frames > 0 {
		src = limit(win, opts.frames)
	}
	if err := loop.Run(ctx, src); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// limit ends src after n frames.
func limit(src scene.FrameSource, n uint64) scene.FrameSource {
	var count uint64
	return scene.FrameSourceFunc(func(ctx context.Context) (time.Duration, bool) {
		if count >= n {
			return 0, false
		}
		count++
		return src.Next(ctx)
	})
}
