// Package compose assembles the cube scene: a scene graph with one spinning group holding a
// node per cubie and a node per cubie face, plus the ground plane and the light and camera
// descriptions the renderer needs. Nothing here talks to the GPU.
package compose

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"rubik/internal/cube"
	"rubik/internal/scenegraph"
	"rubik/internal/spin"
)

// Node names used in the composed graph.
const (
	RootName    = "scene"
	SpinnerName = "cube"
	GroundName  = "ground"
)

// Material is a flat surface description. It is comparable so renderers can key caches by it.
type Material struct {
	Color     color.RGBA
	Roughness float32
	Metalness float32
}

// Specular maps roughness and metalness onto Blinn-Phong terms: smooth surfaces get a tight,
// bright highlight and fully rough ones none.
func (m Material) Specular() (power, strength float32) {
	r := math32.Max(0, math32.Min(1, m.Roughness))
	power = 4 + (1-r)*(1-r)*124
	strength = (1-r)*0.5 + m.Metalness*0.5
	return power, strength
}

// Face is the drawable payload of one cubie face: a unit quad in the XZ plane facing +Y,
// oriented and scaled by its node.
type Face struct {
	Material Material
	Dir      cube.Face
	Sticker  bool
}

// Ground is the drawable payload of the floor: a Size x Size quad facing +Y.
type Ground struct {
	Material Material
	Size     float32
}

// AmbientLight lights every surface evenly.
type AmbientLight struct {
	Color     color.RGBA
	Intensity float32
}

// DirectionalLight shines from Position towards the origin and casts shadows into a square
// depth map of ShadowMapSize texels.
type DirectionalLight struct {
	Position      mgl32.Vec3
	Color         color.RGBA
	Intensity     float32
	ShadowMapSize int
}

// Shadow depth bias in normalised light depth: slope-scaled up to ShadowBiasSlope, never below
// ShadowBiasMin. With ShadowReach 10 they are 0.02 and 0.002 world units, under the 0.07 gap
// between cubies.
const (
	ShadowBiasSlope = 0.001
	ShadowBiasMin   = 0.0001
)

// ShadowReach is the half-extent of the box around the origin covered by the shadow map, in
// width, height and depth.
const ShadowReach = 10

// ShadowView returns the light's view and orthographic projection. The light looks at the origin
// from Position and its depth range hugs the ShadowReach box, so depth resolution is spent on the
// scene rather than on empty space.
func (l DirectionalLight) ShadowView() (view, proj mgl32.Mat4) {
	dir := l.Position.Normalize()
	up := mgl32.Vec3{0, 1, 0}
	if dir.Cross(up).Len() < 1e-3 {
		up = mgl32.Vec3{0, 0, -1}
	}
	dist := l.Position.Len()
	view = mgl32.LookAtV(l.Position, mgl32.Vec3{}, up)
	near := math32.Max(dist-ShadowReach, 0.01)
	proj = mgl32.Ortho(-ShadowReach, ShadowReach, -ShadowReach, ShadowReach, near, dist+ShadowReach)
	return view, proj
}

// Camera is the initial viewpoint. Damping is the orbit damping factor (0 disables damping).
type Camera struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
	Fovy     float32
	Damping  float32
}

// Options controls composition. DefaultOptions reproduces the stock scene.
type Options struct {
	Scheme  cube.Scheme
	Spacing float32
	Size    float32

	StickerRoughness float32
	StickerMetalness float32
	BodyRoughness    float32

	GroundSize  float32
	GroundY     float32
	GroundColor color.RGBA

	Ambient AmbientLight
	Sun     DirectionalLight
	Camera  Camera

	// CullHidden drops faces that touch a neighbouring cubie. They can never be seen from
	// outside the assembled cube.
	CullHidden bool
}

// DefaultOptions returns the stock scene settings.
func DefaultOptions() Options {
	return Options{
		Scheme:           cube.DefaultScheme(),
		Spacing:          cube.Spacing,
		Size:             cube.Size,
		StickerRoughness: 0.35,
		StickerMetalness: 0.05,
		BodyRoughness:    1,
		GroundSize:       30,
		GroundY:          -2.2,
		GroundColor:      color.RGBA{0x20, 0x20, 0x20, 0xff},
		Ambient:          AmbientLight{Color: color.RGBA{0xff, 0xff, 0xff, 0xff}, Intensity: 0.35},
		Sun: DirectionalLight{
			Position:      mgl32.Vec3{6, 8, 6},
			Color:         color.RGBA{0xff, 0xff, 0xff, 0xff},
			Intensity:     1,
			ShadowMapSize: 1024,
		},
		Camera: Camera{
			Position: mgl32.Vec3{5, 5, 7},
			Fovy:     45,
			Damping:  0.05,
		},
	}
}

// Scene is the composed, render-ready description. Only Spinner's rotation changes after Build.
type Scene struct {
	Root    *scenegraph.Node
	Spinner *scenegraph.Node
	Ground  *scenegraph.Node
	Ambient AmbientLight
	Sun     DirectionalLight
	Camera  Camera
}

// faceRotation turns the +Y facing unit quad so its normal points along f.
var faceRotation = [cube.FaceCount]mgl32.Vec3{
	cube.PosX: {0, 0, -math32.Pi / 2},
	cube.NegX: {0, 0, math32.Pi / 2},
	cube.PosY: {0, 0, 0},
	cube.NegY: {math32.Pi, 0, 0},
	cube.PosZ: {math32.Pi / 2, 0, 0},
	cube.NegZ: {-math32.Pi / 2, 0, 0},
}

// Build composes the scene for the given cubies.
func Build(cubies []cube.Cubie, opts Options) *Scene {
	root := scenegraph.New(RootName)
	spinner := root.Add(scenegraph.New(SpinnerName))

	body := Material{Color: opts.Scheme.Body, Roughness: opts.BodyRoughness}
	half := opts.Size / 2

	s := &Scene{
		Root:    root,
		Spinner: spinner,
		Ambient: opts.Ambient,
		Sun:     opts.Sun,
		Camera:  opts.Camera,
	}

	for _, c := range cubies {
		cn := spinner.Add(scenegraph.New(c.Coord.Key()))
		cn.Position = c.Position

		for _, f := range cube.Faces {
			if opts.CullHidden && cube.Neighbor(c.Coord, f) {
				continue
			}
			mat := body
			st := c.Stickers[f]
			if st.OK {
				mat = Material{Color: st.Color, Roughness: opts.StickerRoughness, Metalness: opts.StickerMetalness}
			}
			fn := cn.Add(scenegraph.New(c.Coord.Key() + "/" + f.String()))
			fn.Position = f.Normal().Mul(half)
			fn.Rotation = faceRotation[f]
			fn.Scale = mgl32.Vec3{opts.Size, opts.Size, opts.Size}
			fn.Drawable = Face{Material: mat, Dir: f, Sticker: st.OK}
		}
	}

	ground := root.Add(scenegraph.New(GroundName))
	ground.Position = mgl32.Vec3{0, opts.GroundY, 0}
	ground.Drawable = Ground{Material: Material{Color: opts.GroundColor, Roughness: 1}, Size: opts.GroundSize}
	s.Ground = ground

	return s
}

// Apply sets the spinning group's orientation, reduced to one turn. Called once per frame.
func (s *Scene) Apply(r spin.Rotation) {
	x, y := r.Wrapped()
	s.Spinner.Rotation = mgl32.Vec3{x, y, 0}
}

// Materials returns every distinct material used by the scene, in first-use order.
func (s *Scene) Materials() []Material {
	seen := map[Material]bool{}
	var out []Material
	add := func(m Material) {
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	s.Root.Walk(func(n *scenegraph.Node, _ mgl32.Mat4) bool {
		switch d := n.Drawable.(type) {
		case Face:
			add(d.Material)
		case Ground:
			add(d.Material)
		}
		return true
	})
	return out
}
