package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"cube-showcase/internal/assets"
)

// Registry holds the unit cube mesh and one textured material per identity. GPU resources
// are created on first use so they are allocated after the window/OpenGL context exists.
type Registry struct {
	mesh      rl.Mesh
	shader    rl.Shader
	fallback  rl.Material
	materials map[assets.Identity]rl.Material
	ready     bool

	viewPos    [3]float32
	fogDensity float32
	fogColor   [3]float32

	viewPosLoc    int32
	fogDensityLoc int32
	fogColorLoc   int32
}

// NewRegistry returns a registry with black exponential-squared fog of the given density.
func NewRegistry(fogDensity float32) *Registry {
	return &Registry{
		materials:  make(map[assets.Identity]rl.Material),
		fogDensity: fogDensity,
	}
}

// ensureCube creates the cube mesh, fog shader and fallback material if not yet created.
func (r *Registry) ensureCube() {
	if r.ready {
		return
	}
	r.mesh = rl.GenMeshCube(1, 1, 1)
	r.shader = rl.LoadShaderFromMemory(fogVS, fogFS)
	if rl.IsShaderValid(r.shader) {
		r.viewPosLoc = rl.GetShaderLocation(r.shader, "viewPos")
		r.fogDensityLoc = rl.GetShaderLocation(r.shader, "fogDensity")
		r.fogColorLoc = rl.GetShaderLocation(r.shader, "fogColor")
	}
	r.fallback = r.newMaterial()
	if albedo := r.fallback.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.NewColor(128, 128, 128, 255)
	}
	r.ready = true
}

func (r *Registry) newMaterial() rl.Material {
	mtl := rl.LoadMaterialDefault()
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.White
	}
	if rl.IsShaderValid(r.shader) {
		mtl.Shader = r.shader
	}
	return mtl
}

// Mesh returns the unit cube mesh, creating it if needed.
func (r *Registry) Mesh() rl.Mesh {
	r.ensureCube()
	return r.mesh
}

// Ready reports whether GPU resources exist.
func (r *Registry) Ready() bool { return r.ready }

// AddTexture binds tex as the surface of every cube tagged id.
func (r *Registry) AddTexture(id assets.Identity, tex rl.Texture2D) {
	r.ensureCube()
	mtl := r.newMaterial()
	rl.SetMaterialTexture(&mtl, rl.MapAlbedo, tex)
	r.materials[id] = mtl
}

// SetView sets the camera position for this frame. Call once per frame before drawing so the
// fog distance is measured from the right place.
func (r *Registry) SetView(viewPos [3]float32) {
	r.viewPos = viewPos
}

// SetFogDensity changes the fog density.
func (r *Registry) SetFogDensity(d float32) {
	r.fogDensity = d
}

func (r *Registry) setFogUniforms() {
	if !rl.IsShaderValid(r.shader) {
		return
	}
	viewPos := r.viewPos
	fogColor := r.fogColor
	if r.viewPosLoc >= 0 {
		rl.SetShaderValueV(r.shader, r.viewPosLoc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if r.fogDensityLoc >= 0 {
		rl.SetShaderValue(r.shader, r.fogDensityLoc, []float32{r.fogDensity}, rl.ShaderUniformFloat)
	}
	if r.fogColorLoc >= 0 {
		rl.SetShaderValueV(r.shader, r.fogColorLoc, fogColor[:], rl.ShaderUniformVec3, 1)
	}
}

// Begin uploads the per-frame shader uniforms. Call after SetView and before Draw.
func (r *Registry) Begin() {
	r.ensureCube()
	r.setFogUniforms()
}

// Draw draws one cube with the material for id. Identities without a texture use the grey
// fallback material.
func (r *Registry) Draw(id assets.Identity, transform rl.Matrix) {
	mtl, ok := r.materials[id]
	if !ok {
		mtl = r.fallback
	}
	rl.DrawMesh(r.mesh, mtl, transform)
}

// Unload frees the mesh and shader. Textures are owned by the caller.
func (r *Registry) Unload() {
	if !r.ready {
		return
	}
	rl.UnloadMesh(&r.mesh)
	if rl.IsShaderValid(r.shader) {
		rl.UnloadShader(r.shader)
	}
	r.materials = make(map[assets.Identity]rl.Material)
	r.ready = false
}

// Unlit textured shader with exponential-squared fog toward fogColor.
const (
	fogVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  gl_Position = matProjection * matView * worldPos;
}
`
	fogFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform float fogDensity;
uniform vec3 fogColor;
out vec4 finalColor;
void main() {
  vec4 texel = texture(texture0, fragTexCoord) * colDiffuse;
  float d = fogDensity * length(viewPos - fragPosition);
  float visible = clamp(exp(-d * d), 0.0, 1.0);
  finalColor = vec4(mix(fogColor, texel.rgb, visible), texel.a);
}
`
)
