package cube

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Spacing is the distance between neighbouring lattice points in world units.
// Size is the edge length of one cubie; smaller than Spacing so gaps show between cubies.
const (
	Spacing = float32(1.02)
	Size    = float32(0.95)
)

// axisRange is the coordinate range on every axis. The lattice is its Cartesian product.
var axisRange = [3]int{-1, 0, 1}

// Face is one of the six outward face directions of a cubie.
type Face int

const (
	PosX Face = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// FaceCount is the number of faces; Face values are 0..FaceCount-1.
const FaceCount = 6

// Faces lists every face in enum order.
var Faces = [FaceCount]Face{PosX, NegX, PosY, NegY, PosZ, NegZ}

// Axis returns 0, 1 or 2 for X, Y or Z.
func (f Face) Axis() int {
	return int(f) / 2
}

// Sign returns +1 for the positive face on its axis and -1 for the negative one.
func (f Face) Sign() int {
	if f%2 == 0 {
		return 1
	}
	return -1
}

// Normal returns the outward unit normal of the face.
func (f Face) Normal() mgl32.Vec3 {
	var n mgl32.Vec3
	n[f.Axis()] = float32(f.Sign())
	return n
}

func (f Face) String() string {
	switch f {
	case PosX:
		return "+X"
	case NegX:
		return "-X"
	case PosY:
		return "+Y"
	case NegY:
		return "-Y"
	case PosZ:
		return "+Z"
	case NegZ:
		return "-Z"
	}
	return fmt.Sprintf("Face(%d)", int(f))
}

// Scheme assigns one sticker colour per face direction. Body is the neutral plastic colour used
// for every face that carries no sticker.
type Scheme struct {
	Stickers [FaceCount]color.RGBA
	Body     color.RGBA
}

// DefaultScheme is the usual western colour layout: red/orange on X, white/yellow on Y,
// green/blue on Z, black plastic.
func DefaultScheme() Scheme {
	return Scheme{
		Stickers: [FaceCount]color.RGBA{
			PosX: {0xc4, 0x1e, 0x3a, 0xff},
			NegX: {0xff, 0x7a, 0x00, 0xff},
			PosY: {0xff, 0xff, 0xff, 0xff},
			NegY: {0xff, 0xd5, 0x00, 0xff},
			PosZ: {0x00, 0x9e, 0x60, 0xff},
			NegZ: {0x00, 0x51, 0xba, 0xff},
		},
		Body: color.RGBA{0x11, 0x11, 0x11, 0xff},
	}
}

// Sticker is the optional colour on one face. OK is false for faces without a sticker.
type Sticker struct {
	Color color.RGBA
	OK    bool
}

// StickerSet holds the sticker (or its absence) for each face, indexed by Face.
type StickerSet [FaceCount]Sticker

// Color returns the sticker colour of face f, or body when f has no sticker.
func (s StickerSet) Color(f Face, body color.RGBA) color.RGBA {
	if st := s[f]; st.OK {
		return st.Color
	}
	return body
}

// Count returns how many faces carry a sticker.
func (s StickerSet) Count() int {
	n := 0
	for _, st := range s {
		if st.OK {
			n++
		}
	}
	return n
}

// Coord is a lattice coordinate with every component in {-1, 0, 1}.
type Coord [3]int

// Key returns the unique identity string of the coordinate, e.g. "1,-1,0".
func (c Coord) Key() string {
	return fmt.Sprintf("%d,%d,%d", c[0], c[1], c[2])
}

// Cubie is one of the 27 small cubes. Position is Coord scaled by the lattice spacing.
type Cubie struct {
	Coord    Coord
	Position mgl32.Vec3
	Stickers StickerSet
}

// Lattice returns all 27 coordinates in X-major, then Y, then Z order.
func Lattice() []Coord {
	out := make([]Coord, 0, len(axisRange)*len(axisRange)*len(axisRange))
	for _, x := range axisRange {
		for _, y := range axisRange {
			for _, z := range axisRange {
				out = append(out, Coord{x, y, z})
			}
		}
	}
	return out
}

// StickersFor returns the sticker set for a cubie at c: face f gets scheme's colour only when
// c lies on the outer layer that f points at.
func StickersFor(c Coord, scheme Scheme) StickerSet {
	var s StickerSet
	for _, f := range Faces {
		if c[f.Axis()] == f.Sign() {
			s[f] = Sticker{Color: scheme.Stickers[f], OK: true}
		}
	}
	return s
}

// Generate builds the 27 cubies of the puzzle. Order follows Lattice; identity is Coord.
func Generate(scheme Scheme, spacing float32) []Cubie {
	coords := Lattice()
	cubies := make([]Cubie, 0, len(coords))
	for _, c := range coords {
		cubies = append(cubies, Cubie{
			Coord:    c,
			Position: mgl32.Vec3{float32(c[0]) * spacing, float32(c[1]) * spacing, float32(c[2]) * spacing},
			Stickers: StickersFor(c, scheme),
		})
	}
	return cubies
}

// Neighbor reports whether the lattice contains a cubie next to c in direction f.
func Neighbor(c Coord, f Face) bool {
	v := c[f.Axis()] + f.Sign()
	return v >= axisRange[0] && v <= axisRange[len(axisRange)-1]
}
