package render

import (
	"github.com/go-gl/mathgl/mgl32"

	rl "github.com/gen2brain/raylib-go/raylib"

	"rubik/internal/compose"
)

// shadowMap is a depth-only framebuffer rendered from the directional light each frame.
// Based on raylib examples/shaders/shaders_shadowmap.
type shadowMap struct {
	target  rl.RenderTexture2D
	size    int32
	camera  rl.Camera3D
	lightVP mgl32.Mat4
}

// loadShadowMap creates the framebuffer and depth texture. Returns nil when the driver rejects the
// framebuffer; callers fall back to unshadowed lighting.
func loadShadowMap(size int32) *shadowMap {
	fbo := rl.LoadFramebuffer()
	if fbo == 0 {
		return nil
	}
	rl.EnableFramebuffer(fbo)
	depth := rl.LoadTextureDepth(size, size, false)
	rl.FramebufferAttach(fbo, depth, rl.AttachmentDepth, rl.AttachmentTexture2d, 0)
	complete := rl.FramebufferComplete(fbo)
	rl.DisableFramebuffer()
	if !complete {
		rl.UnloadFramebuffer(fbo)
		return nil
	}
	return &shadowMap{
		target: rl.RenderTexture2D{
			ID:      fbo,
			Texture: rl.Texture2D{Width: size, Height: size},
			Depth:   rl.Texture2D{ID: depth, Width: size, Height: size, Mipmaps: 1},
		},
		size: size,
		camera: rl.Camera3D{
			Up:         rl.NewVector3(0, 1, 0),
			Fovy:       2 * compose.ShadowReach,
			Projection: rl.CameraOrthographic,
		},
	}
}

// render draws casters into the depth map from light and records the light's view-projection
// for the lit pass.
func (s *shadowMap) render(light compose.DirectionalLight, drawCasters func()) {
	view, proj := light.ShadowView()
	s.camera.Position = vec3(light.Position)

	rl.BeginTextureMode(s.target)
	rl.ClearBackground(rl.White)
	// BeginMode3D saves the projection for EndMode3D to restore; the light matrices replace
	// raylib's 0.01..1000 depth range.
	rl.BeginMode3D(s.camera)
	rl.SetMatrixProjection(toMatrix(proj))
	rl.SetMatrixModelview(toMatrix(view))
	drawCasters()
	rl.EndMode3D()
	rl.EndTextureMode()

	s.lightVP = proj.Mul4(view)
}

func (s *shadowMap) unload() {
	rl.UnloadFramebuffer(s.target.ID)
}

// texel is the UV size of one depth-map texel, used for PCF offsets.
func (s *shadowMap) texel() float32 {
	return 1 / float32(s.size)
}
