package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"cube-showcase/internal/bloom"
)

// BloomPass composites the rendered scene to the screen adding a blurred bright-pass of
// itself, scaled by strength and spread by radius.
type BloomPass struct {
	params bloom.Params
	shader rl.Shader
	ready  bool

	resolutionLoc int32
	strengthLoc   int32
	radiusLoc     int32
	thresholdLoc  int32
}

// NewBloomPass returns a pass with zero strength.
func NewBloomPass() *BloomPass {
	return &BloomPass{}
}

// Apply implements scene.PostEffectChain.
func (b *BloomPass) Apply(p bloom.Params) {
	b.params = p
}

// Params returns the parameters applied last.
func (b *BloomPass) Params() bloom.Params { return b.params }

func (b *BloomPass) ensure() {
	if b.ready {
		return
	}
	b.shader = rl.LoadShaderFromMemory(screenVS, bloomFS)
	if rl.IsShaderValid(b.shader) {
		b.resolutionLoc = rl.GetShaderLocation(b.shader, "resolution")
		b.strengthLoc = rl.GetShaderLocation(b.shader, "strength")
		b.radiusLoc = rl.GetShaderLocation(b.shader, "radius")
		b.thresholdLoc = rl.GetShaderLocation(b.shader, "threshold")
	}
	b.ready = true
}

// Composite draws src to the screen through the bloom shader. Call between BeginDrawing and
// EndDrawing.
func (b *BloomPass) Composite(src rl.RenderTexture2D, width, height int32) {
	b.ensure()
	// Render textures are stored upside down.
	rect := rl.NewRectangle(0, 0, float32(src.Texture.Width), -float32(src.Texture.Height))
	if !rl.IsShaderValid(b.shader) {
		rl.DrawTextureRec(src.Texture, rect, rl.NewVector2(0, 0), rl.White)
		return
	}
	res := []float32{float32(width), float32(height)}
	set := func(loc int32, v float32) {
		if loc >= 0 {
			rl.SetShaderValue(b.shader, loc, []float32{v}, rl.ShaderUniformFloat)
		}
	}
	if b.resolutionLoc >= 0 {
		rl.SetShaderValue(b.shader, b.resolutionLoc, res, rl.ShaderUniformVec2)
	}
	set(b.strengthLoc, b.params.Strength)
	set(b.radiusLoc, b.params.Radius)
	set(b.thresholdLoc, b.params.Threshold)

	rl.BeginShaderMode(b.shader)
	rl.DrawTextureRec(src.Texture, rect, rl.NewVector2(0, 0), rl.White)
	rl.EndShaderMode()
}

// Unload frees the shader.
func (b *BloomPass) Unload() {
	if b.ready && rl.IsShaderValid(b.shader) {
		rl.UnloadShader(b.shader)
	}
	b.ready = false
}

const (
	screenVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec4 vertexColor;
uniform mat4 mvp;
out vec2 fragTexCoord;
out vec4 fragColor;
void main() {
  fragTexCoord = vertexTexCoord;
  fragColor = vertexColor;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	bloomFS = `#version 330
in vec2 fragTexCoord;
in vec4 fragColor;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec2 resolution;
uniform float strength;
uniform float radius;
uniform float threshold;
out vec4 finalColor;
const int TAPS = 6;
void main() {
  vec4 base = texture(texture0, fragTexCoord);
  if (strength <= 0.0) {
    finalColor = base * colDiffuse;
    return;
  }
  float spread = 1.0 + radius * 8.0;
  vec3 sum = vec3(0.0);
  float total = 0.0;
  for (int x = -TAPS; x <= TAPS; x++) {
    for (int y = -TAPS; y <= TAPS; y++) {
      vec2 offset = vec2(float(x), float(y)) * spread / resolution;
      vec3 c = texture(texture0, fragTexCoord + offset).rgb;
      float lum = dot(c, vec3(0.2126, 0.7152, 0.0722));
      float w = exp(-float(x * x + y * y) / float(TAPS * TAPS));
      sum += c * step(threshold, lum) * w;
      total += w;
    }
  }
  finalColor = vec4(base.rgb + strength * sum / total, base.a) * colDiffuse;
}
`
)
