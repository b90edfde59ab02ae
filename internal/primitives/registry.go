package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// cached holds mesh and material for a primitive type. Created lazily on
// first Draw so GPU resources are allocated after the window/OpenGL context
// exists.
type cached struct {
	mesh rl.Mesh
	mtl  rl.Material
}

// Registry maps primitive type names to mesh+material. One mesh and material
// per type are shared by every drawn instance; per-instance tint and
// transform are applied at draw time.
type Registry struct {
	cache    map[string]cached
	viewPos  rl.Vector3 // camera position, set each frame for lighting
	lightDir rl.Vector3 // direction to light (normalized), set each frame
}

// NewRegistry returns a registry with no primitives. The cube is created on
// first Draw.
func NewRegistry() *Registry {
	return &Registry{
		cache:    make(map[string]cached),
		lightDir: rl.NewVector3(0.5, 1, 0.5), // default: from above-right
	}
}

// SetView sets camera position and direction-to-light for this frame. Call
// once per frame before drawing so lit primitives get correct shading.
func (r *Registry) SetView(viewPos, lightDir rl.Vector3) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

// ensureCube creates the cube mesh and material if not yet cached.
// Uses a simple lighting shader (directional light + ambient) so boxes have
// visible shading.
func (r *Registry) ensureCube() {
	if _, ok := r.cache["cube"]; ok {
		return
	}
	mesh := rl.GenMeshCube(1, 1, 1)
	mtl := rl.LoadMaterialDefault()
	if shader := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(shader) {
		mtl.Shader = shader
	}
	r.cache["cube"] = cached{mesh: mesh, mtl: mtl}
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float NdotH = max(dot(N, H), 0.0);
  float spec = pow(NdotH, specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular, tint.a);
}
`
)

// defaultAmbient is the ambient term (dim so shadowed areas aren't pure black).
var defaultAmbient = [4]float32{0.2, 0.22, 0.26, 1.0}

// defaultLightColor is a soft warm-white for the directional light.
var defaultLightColor = [3]float32{1.0, 0.98, 0.95}

// defaultLightIntensity scales the directional diffuse (0–1).
const defaultLightIntensity = float32(0.75)

// defaultSpecularPower controls highlight tightness (higher = smaller, sharper highlight).
const defaultSpecularPower = float32(48.0)

// defaultSpecularStrength scales specular contribution (0–1).
const defaultSpecularStrength = float32(0.35)

// setLitShaderUniforms sets viewPos, lightDir, ambient, light color/intensity,
// and specular on the given shader (cgo-safe: local arrays).
func (r *Registry) setLitShaderUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := [3]float32{r.viewPos.X, r.viewPos.Y, r.viewPos.Z}
	lightDir := [3]float32{r.lightDir.X, r.lightDir.Y, r.lightDir.Z}
	amb := defaultAmbient
	lightColor := defaultLightColor
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultLightIntensity}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularPower"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularPower}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularStrength}, rl.ShaderUniformFloat)
	}
}

// drawCached draws a cached mesh with the given key: scale, then rotate, then
// translate. The material albedo is tinted per draw so one shared material
// serves differently colored instances.
func (r *Registry) drawCached(key string, position rl.Vector3, rotation rl.Quaternion, scale rl.Vector3, tint rl.Color) {
	c, ok := r.cache[key]
	if !ok {
		return
	}
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	r.setLitShaderUniforms(c.mtl.Shader)
	if scale.X == 0 {
		scale.X = 1
	}
	if scale.Y == 0 {
		scale.Y = 1
	}
	if scale.Z == 0 {
		scale.Z = 1
	}
	scaleM := rl.MatrixScale(scale.X, scale.Y, scale.Z)
	rotM := rl.QuaternionToMatrix(rotation)
	transM := rl.MatrixTranslate(position.X, position.Y, position.Z)
	// Order: scale, then rotate, then translate to position.
	transform := rl.MatrixMultiply(rl.MatrixMultiply(scaleM, rotM), transM)
	rl.DrawMesh(c.mesh, c.mtl, transform)
}

// Draw draws one instance of the given type at position with rotation, scale,
// and tint. Must be called between BeginMode3D and EndMode3D; SetView must be
// called once per frame before drawing. Unknown types are skipped.
func (r *Registry) Draw(primType string, position rl.Vector3, rotation rl.Quaternion, scale rl.Vector3, tint rl.Color) {
	switch primType {
	case "cube":
		r.ensureCube()
		r.drawCached("cube", position, rotation, scale, tint)
	default:
		// Unknown type; skip. More primitives added on demand.
	}
}

// Unload releases every cached mesh and material. Call once at teardown,
// before the window closes.
func (r *Registry) Unload() {
	for key, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		rl.UnloadMaterial(c.mtl)
		delete(r.cache, key)
	}
}
