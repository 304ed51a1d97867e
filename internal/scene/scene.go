package scene

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	rl "github.com/gen2brain/raylib-go/raylib"

	"rubik/internal/compose"
	"rubik/internal/orbit"
	"rubik/internal/render"
	"rubik/internal/spin"
)

// Scene holds the composed cube, its spin state, the orbit camera and the renderer. Update
// advances spin and camera; Draw renders the shadow and lit passes.
// Based on raylib examples/core/core_3d_camera_mode with an orbit controller in place of UpdateCamera.
type Scene struct {
	Camera rl.Camera3D

	graph    *compose.Scene
	rotation spin.Rotation
	rates    spin.Rates
	orbit    *orbit.Controller
	renderer *render.Renderer
}

// New returns a scene for graph with the camera placed at the graph's initial viewpoint.
func New(graph *compose.Scene, rates spin.Rates, orbitOpts orbit.Options, log *slog.Logger) *Scene {
	s := &Scene{
		graph:    graph,
		rates:    rates,
		orbit:    orbit.New(graph.Camera.Position, graph.Camera.Target, orbitOpts),
		renderer: render.New(log),
	}
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = graph.Camera.Fovy
	s.Camera.Projection = rl.CameraPerspective
	s.syncCamera()
	graph.Apply(s.rotation)
	return s
}

// Rotation is the cube's current orientation.
func (s *Scene) Rotation() spin.Rotation {
	return s.rotation
}

// Update runs once per frame with the elapsed seconds since the previous frame.
func (s *Scene) Update(dt float32) {
	s.rotation = spin.Advance(s.rotation, s.rates, dt)
	s.graph.Apply(s.rotation)

	// Idle camera: nothing to ease out, so the view stays put.
	if in := readInput(); in.Active() || s.orbit.Moving() {
		s.orbit.Update(in)
		s.syncCamera()
	}
}

// readInput maps the mouse onto orbit input: left drag rotates, right or middle drag pans,
// wheel zooms.
func readInput() orbit.Input {
	in := orbit.Input{
		Wheel:          rl.GetMouseWheelMove(),
		ViewportHeight: float32(rl.GetScreenHeight()),
	}
	d := rl.GetMouseDelta()
	switch {
	case rl.IsMouseButtonDown(rl.MouseButtonLeft):
		in.RotateDX, in.RotateDY = d.X, d.Y
	case rl.IsMouseButtonDown(rl.MouseButtonRight), rl.IsMouseButtonDown(rl.MouseButtonMiddle):
		in.PanDX, in.PanDY = d.X, d.Y
	}
	return in
}

func (s *Scene) syncCamera() {
	s.Camera.Position = toVector3(s.orbit.Position())
	s.Camera.Target = toVector3(s.orbit.Target())
}

// Draw renders the scene. Call after ClearBackground and before 2D overlays.
func (s *Scene) Draw() {
	s.renderer.Draw(s.graph, s.Camera)
}

// Close releases GPU resources. Call before the window closes.
func (s *Scene) Close() {
	s.renderer.Close()
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}
