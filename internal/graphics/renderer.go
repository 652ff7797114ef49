package graphics

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"cube-showcase/internal/assets"
	"cube-showcase/internal/primitives"
	"cube-showcase/internal/raycast"
	"cube-showcase/internal/scene"
)

// Overlay is drawn in screen space on top of the composited scene.
type Overlay interface {
	Draw(f scene.Frame)
}

// Renderer draws the cube field into an off-screen target, composites it through the bloom
// pass and then draws overlays. It also answers pick rays against the cube mesh.
type Renderer struct {
	Camera   rl.Camera3D
	cubes    *primitives.Registry
	bloom    *BloomPass
	overlays []Overlay
	log      *slog.Logger

	target  rl.RenderTexture2D
	hasRT   bool
	width   int32
	height  int32
	pending bool
}

// NewRenderer returns a renderer with a perspective camera and fog of the given density.
func NewRenderer(fogDensity float32, pass *BloomPass, log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.Default()
	}
	r := &Renderer{
		cubes: primitives.NewRegistry(fogDensity),
		bloom: pass,
		log:   log,
	}
	r.Camera.Up = rl.NewVector3(0, 1, 0)
	r.Camera.Projection = rl.CameraPerspective
	return r
}

// AddOverlay appends an overlay. Overlays are drawn in order.
func (r *Renderer) AddOverlay(o Overlay) {
	r.overlays = append(r.overlays, o)
}

// Cubes returns the cube registry.
func (r *Renderer) Cubes() *primitives.Registry { return r.cubes }

// UploadTextures moves decoded textures to the GPU and binds each to its identity. It must
// run on the thread that owns the window.
func (r *Renderer) UploadTextures(textures []assets.Texture) []rl.Texture2D {
	out := make([]rl.Texture2D, 0, len(textures))
	for _, t := range textures {
		if t.Image == nil {
			continue
		}
		img := rl.NewImageFromImage(t.Image)
		tex := rl.LoadTextureFromImage(img)
		rl.UnloadImage(img)
		if !rl.IsTextureValid(tex) {
			r.log.Warn("texture upload failed", "identity", t.Identity, "path", t.Path)
			continue
		}
		r.cubes.AddTexture(t.Identity, tex)
		out = append(out, tex)
	}
	r.log.Debug("textures uploaded", "count", len(out))
	return out
}

// Resize implements scene.Resizer. The render target is recreated on the next frame.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = int32(width), int32(height)
	r.pending = true
}

func (r *Renderer) ensureTarget(width, height int32) {
	if r.hasRT && !r.pending && r.target.Texture.Width == width && r.target.Texture.Height == height {
		return
	}
	if r.hasRT {
		rl.UnloadRenderTexture(r.target)
	}
	r.target = rl.LoadRenderTexture(width, height)
	r.hasRT = true
	r.pending = false
}

// syncCamera copies the rig pose into the raylib camera.
func (r *Renderer) syncCamera(f scene.Frame) {
	q := f.Camera.Orientation
	pos := f.Camera.Position
	r.Camera.Position = toVector3(pos)
	r.Camera.Target = toVector3(pos.Add(q.Rotate(mgl32.Vec3{0, 0, -1})))
	r.Camera.Up = toVector3(q.Rotate(mgl32.Vec3{0, 1, 0}))
}

// Render implements scene.Renderer.
func (r *Renderer) Render(f scene.Frame) {
	w, h := int32(f.Width), int32(f.Height)
	if w <= 0 || h <= 0 {
		w, h = int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	}
	r.ensureTarget(w, h)
	r.syncCamera(f)

	pos := f.Camera.Position
	r.cubes.SetView([3]float32{pos.X(), pos.Y(), pos.Z()})

	rl.BeginTextureMode(r.target)
	rl.ClearBackground(rl.Black)
	rl.BeginMode3D(r.Camera)
	rl.SetMatrixProjection(toMatrix(f.Projection))
	rl.SetMatrixModelview(toMatrix(f.View))
	r.cubes.Begin()
	for i, obj := range f.Objects {
		r.cubes.Draw(obj.Identity, toMatrix(f.Transforms[i]))
	}
	rl.EndMode3D()
	rl.EndTextureMode()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	r.bloom.Composite(r.target, w, h)
	for _, o := range r.overlays {
		o.Draw(f)
	}
	rl.EndDrawing()
}

// Intersect implements field.Intersector with raylib's ray/mesh test against the cube mesh.
// Before the mesh exists it falls back to the analytic box test.
func (r *Renderer) Intersect(ray raycast.Ray, transforms []mgl32.Mat4) (int, bool) {
	if !r.cubes.Ready() {
		return raycast.Nearest(ray, transforms)
	}
	mesh := r.cubes.Mesh()
	rr := rl.NewRay(toVector3(ray.Origin), toVector3(ray.Dir))
	best, bestDist := -1, float32(0)
	for i, m := range transforms {
		hit := rl.GetRayCollisionMesh(rr, mesh, toMatrix(m))
		if !hit.Hit {
			continue
		}
		if best < 0 || hit.Distance < bestDist {
			best, bestDist = i, hit.Distance
		}
	}
	return best, best >= 0
}

// Unload frees GPU resources owned by the renderer.
func (r *Renderer) Unload() {
	if r.hasRT {
		rl.UnloadRenderTexture(r.target)
		r.hasRT = false
	}
	r.bloom.Unload()
	r.cubes.Unload()
}
