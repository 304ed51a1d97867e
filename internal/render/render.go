// Package render draws a composed cube scene with raylib: one shared quad mesh for every cubie
// face and the ground, one material per distinct surface, a lit shader and a directional shadow
// map. GPU resources are created on the first Draw, after the window/OpenGL context exists.
package render

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	rl "github.com/gen2brain/raylib-go/raylib"

	"rubik/internal/compose"
	"rubik/internal/scenegraph"
)

// shadowSlot is the texture unit the depth map is bound to. Kept clear of the units raylib uses
// for material maps.
const shadowSlot = 10

// quadRes: 1 subdivision = single quad (1x1 in XZ). Lighting is per-fragment so faces need no more.
const quadRes = 1

// uniforms caches shader uniform locations; -1 means the driver optimised the uniform out.
type uniforms struct {
	viewPos          int32
	lightDir         int32
	ambient          int32
	lightColor       int32
	lightIntensity   int32
	specularPower    int32
	specularStrength int32
	lightVP          int32
	shadowMap        int32
	shadowStrength   int32
	shadowTexel      int32
	shadowBias       int32
}

// Renderer owns every GPU resource used to draw the scene. Not safe for concurrent use; call
// from the thread that created the window.
type Renderer struct {
	log *slog.Logger

	loaded    bool
	quad      rl.Mesh
	shader    rl.Shader
	locs      uniforms
	materials map[compose.Material]rl.Material
	shadow    *shadowMap
}

// New returns a renderer with nothing loaded yet.
func New(log *slog.Logger) *Renderer {
	return &Renderer{
		log:       log,
		materials: make(map[compose.Material]rl.Material),
	}
}

// ensureLoaded creates the quad mesh, shader, materials and shadow map on first use.
func (r *Renderer) ensureLoaded(scn *compose.Scene) {
	if r.loaded {
		return
	}
	r.loaded = true

	r.quad = rl.GenMeshPlane(1, 1, quadRes, quadRes)
	r.shader = rl.LoadShaderFromMemory(litVS, litFS)
	if !rl.IsShaderValid(r.shader) {
		r.log.Error("lit shader failed to compile; using raylib default shader")
	} else {
		r.locs = uniforms{
			viewPos:          rl.GetShaderLocation(r.shader, "viewPos"),
			lightDir:         rl.GetShaderLocation(r.shader, "lightDir"),
			ambient:          rl.GetShaderLocation(r.shader, "ambient"),
			lightColor:       rl.GetShaderLocation(r.shader, "lightColor"),
			lightIntensity:   rl.GetShaderLocation(r.shader, "lightIntensity"),
			specularPower:    rl.GetShaderLocation(r.shader, "specularPower"),
			specularStrength: rl.GetShaderLocation(r.shader, "specularStrength"),
			lightVP:          rl.GetShaderLocation(r.shader, "lightVP"),
			shadowMap:        rl.GetShaderLocation(r.shader, "shadowMap"),
			shadowStrength:   rl.GetShaderLocation(r.shader, "shadowStrength"),
			shadowTexel:      rl.GetShaderLocation(r.shader, "shadowTexel"),
			shadowBias:       rl.GetShaderLocation(r.shader, "shadowBias"),
		}
	}

	for _, m := range scn.Materials() {
		r.material(m)
	}

	if size := scn.Sun.ShadowMapSize; size > 0 && rl.IsShaderValid(r.shader) {
		r.shadow = loadShadowMap(int32(size))
		if r.shadow == nil {
			r.log.Warn("shadow framebuffer incomplete; shadows disabled", "size", size)
		}
	}
	r.log.Info("renderer loaded",
		"materials", len(r.materials),
		"shadows", r.shadow != nil,
	)
}

// material returns the raylib material for m, creating it on first use.
func (r *Renderer) material(m compose.Material) rl.Material {
	if mtl, ok := r.materials[m]; ok {
		return mtl
	}
	mtl := rl.LoadMaterialDefault()
	if albedo := mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = m.Color
	}
	if rl.IsShaderValid(r.shader) {
		mtl.Shader = r.shader
	}
	r.materials[m] = mtl
	return mtl
}

func (r *Renderer) setFloat(loc int32, v float32) {
	if loc >= 0 {
		rl.SetShaderValue(r.shader, loc, []float32{v}, rl.ShaderUniformFloat)
	}
}

func (r *Renderer) setVec3(loc int32, v [3]float32) {
	if loc >= 0 {
		rl.SetShaderValueV(r.shader, loc, v[:], rl.ShaderUniformVec3, 1)
	}
}

// setFrameUniforms uploads camera and light state shared by every draw in the lit pass.
func (r *Renderer) setFrameUniforms(scn *compose.Scene, cam rl.Camera3D) {
	if !rl.IsShaderValid(r.shader) {
		return
	}
	ambient := colorVec(scn.Ambient.Color).Mul(scn.Ambient.Intensity)
	toLight := scn.Sun.Position.Normalize()
	r.setVec3(r.locs.viewPos, [3]float32{cam.Position.X, cam.Position.Y, cam.Position.Z})
	r.setVec3(r.locs.lightDir, toLight)
	r.setVec3(r.locs.ambient, ambient)
	r.setVec3(r.locs.lightColor, colorVec(scn.Sun.Color))
	r.setFloat(r.locs.lightIntensity, scn.Sun.Intensity)

	if r.shadow == nil {
		r.setFloat(r.locs.shadowStrength, 0)
		return
	}
	r.setFloat(r.locs.shadowStrength, 1)
	r.setFloat(r.locs.shadowTexel, r.shadow.texel())
	if r.locs.shadowBias >= 0 {
		rl.SetShaderValue(r.shader, r.locs.shadowBias, []float32{compose.ShadowBiasSlope, compose.ShadowBiasMin}, rl.ShaderUniformVec2)
	}
	if r.locs.lightVP >= 0 {
		rl.SetShaderValueMatrix(r.shader, r.locs.lightVP, toMatrix(r.shadow.lightVP))
	}
	if r.locs.shadowMap >= 0 {
		rl.EnableShader(r.shader.ID)
		rl.ActiveTextureSlot(shadowSlot)
		rl.EnableTexture(r.shadow.target.Depth.ID)
		// Sampler uniforms are ints; raylib-go only takes float slices, so pass the bit pattern.
		rl.SetShaderValue(r.shader, r.locs.shadowMap, []float32{math.Float32frombits(shadowSlot)}, rl.ShaderUniformInt)
		rl.ActiveTextureSlot(0)
	}
}

// unbindShadowMap releases the depth texture unit so the next shadow pass can write it.
func (r *Renderer) unbindShadowMap() {
	if r.shadow == nil {
		return
	}
	rl.ActiveTextureSlot(shadowSlot)
	rl.DisableTexture()
	rl.ActiveTextureSlot(0)
}

// drawNode draws n's payload with the given world matrix. Ground is skipped unless withGround.
func (r *Renderer) drawNode(n *scenegraph.Node, world mgl32.Mat4, withGround bool) {
	switch d := n.Drawable.(type) {
	case compose.Face:
		r.drawQuad(d.Material, world)
	case compose.Ground:
		if withGround {
			r.drawQuad(d.Material, world.Mul4(mgl32.Scale3D(d.Size, 1, d.Size)))
		}
	}
}

func (r *Renderer) drawQuad(m compose.Material, world mgl32.Mat4) {
	mtl := r.material(m)
	if rl.IsShaderValid(r.shader) {
		power, strength := m.Specular()
		r.setFloat(r.locs.specularPower, power)
		r.setFloat(r.locs.specularStrength, strength)
	}
	rl.DrawMesh(r.quad, mtl, toMatrix(world))
}

// Draw renders scn from cam: the shadow pass from the sun first, then the lit pass.
// Call between BeginDrawing and EndDrawing, outside BeginMode3D.
func (r *Renderer) Draw(scn *compose.Scene, cam rl.Camera3D) {
	r.ensureLoaded(scn)

	if r.shadow != nil {
		r.shadow.render(scn.Sun, func() {
			scn.Spinner.Walk(func(n *scenegraph.Node, world mgl32.Mat4) bool {
				r.drawNode(n, world, false)
				return true
			})
		})
	}

	rl.BeginMode3D(cam)
	r.setFrameUniforms(scn, cam)
	scn.Root.Walk(func(n *scenegraph.Node, world mgl32.Mat4) bool {
		r.drawNode(n, world, true)
		return true
	})
	rl.EndMode3D()
	r.unbindShadowMap()
}

// Close releases GPU resources. Materials share the lit shader, so each is pointed back at the
// default shader before UnloadMaterial frees its maps; the lit shader is unloaded once.
func (r *Renderer) Close() {
	if !r.loaded {
		return
	}
	if r.shadow != nil {
		r.shadow.unload()
		r.shadow = nil
	}
	rl.UnloadMesh(&r.quad)
	for _, mtl := range r.materials {
		mtl.Shader.ID = rl.GetShaderIdDefault()
		rl.UnloadMaterial(mtl)
	}
	if rl.IsShaderValid(r.shader) {
		rl.UnloadShader(r.shader)
	}
	clear(r.materials)
	r.loaded = false
}
