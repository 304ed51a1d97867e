package cube

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func byKey(t *testing.T, cubies []Cubie) map[string]Cubie {
	t.Helper()
	m := make(map[string]Cubie, len(cubies))
	for _, c := range cubies {
		_, dup := m[c.Coord.Key()]
		require.False(t, dup, "duplicate cubie %s", c.Coord.Key())
		m[c.Coord.Key()] = c
	}
	return m
}

func TestGenerateCoversLattice(t *testing.T) {
	cubies := Generate(DefaultScheme(), Spacing)
	require.Len(t, cubies, 27)

	m := byKey(t, cubies)
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				_, ok := m[Coord{x, y, z}.Key()]
				assert.True(t, ok, "missing %d,%d,%d", x, y, z)
			}
		}
	}
}

func TestStickerIffOuterLayer(t *testing.T) {
	scheme := DefaultScheme()
	for _, c := range Generate(scheme, Spacing) {
		for _, f := range Faces {
			want := c.Coord[f.Axis()] == f.Sign()
			got := c.Stickers[f]
			assert.Equal(t, want, got.OK, "cubie %s face %s", c.Coord.Key(), f)
			if want {
				assert.Equal(t, scheme.Stickers[f], c.Stickers.Color(f, scheme.Body))
			} else {
				assert.Equal(t, scheme.Body, c.Stickers.Color(f, scheme.Body))
			}
		}
	}
}

func TestCenterHasNoStickers(t *testing.T) {
	m := byKey(t, Generate(DefaultScheme(), Spacing))
	center := m[Coord{0, 0, 0}.Key()]
	assert.Equal(t, 0, center.Stickers.Count())
}

func TestCornerAndEdge(t *testing.T) {
	scheme := DefaultScheme()
	m := byKey(t, Generate(scheme, Spacing))

	corner := m[Coord{1, 1, 1}.Key()]
	assert.Equal(t, 3, corner.Stickers.Count())
	assert.Equal(t, scheme.Stickers[PosX], corner.Stickers[PosX].Color)
	assert.Equal(t, scheme.Stickers[PosY], corner.Stickers[PosY].Color)
	assert.Equal(t, scheme.Stickers[PosZ], corner.Stickers[PosZ].Color)

	edge := m[Coord{1, 1, 0}.Key()]
	assert.Equal(t, 2, edge.Stickers.Count())
	assert.Equal(t, scheme.Stickers[PosX], edge.Stickers.Color(PosX, scheme.Body))
	assert.Equal(t, scheme.Stickers[PosY], edge.Stickers.Color(PosY, scheme.Body))
	for _, f := range []Face{NegX, NegY, PosZ, NegZ} {
		assert.Equal(t, scheme.Body, edge.Stickers.Color(f, scheme.Body), "face %s", f)
	}
}

func TestStickerCountsByKind(t *testing.T) {
	counts := map[int]int{}
	for _, c := range Generate(DefaultScheme(), Spacing) {
		counts[c.Stickers.Count()]++
	}
	// 1 centre, 6 face centres, 12 edges, 8 corners
	assert.Equal(t, map[int]int{0: 1, 1: 6, 2: 12, 3: 8}, counts)
}

func TestPositionScaledBySpacing(t *testing.T) {
	m := byKey(t, Generate(DefaultScheme(), 1.02))
	got := m[Coord{1, -1, 0}.Key()].Position
	assertVec(t, mgl32.Vec3{1.02, -1.02, 0}, got, 1e-6, "got %v", got)

	for _, c := range m {
		want := mgl32.Vec3{float32(c.Coord[0]) * 1.02, float32(c.Coord[1]) * 1.02, float32(c.Coord[2]) * 1.02}
		assert.Equal(t, want, c.Position)
	}
}

func TestFaceAxisAndSign(t *testing.T) {
	tests := []struct {
		face Face
		axis int
		sign int
		name string
	}{
		{PosX, 0, 1, "+X"},
		{NegX, 0, -1, "-X"},
		{PosY, 1, 1, "+Y"},
		{NegY, 1, -1, "-Y"},
		{PosZ, 2, 1, "+Z"},
		{NegZ, 2, -1, "-Z"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.axis, tt.face.Axis(), tt.name)
		assert.Equal(t, tt.sign, tt.face.Sign(), tt.name)
		assert.Equal(t, tt.name, tt.face.String())
		assert.Equal(t, float32(tt.sign), tt.face.Normal()[tt.axis])
	}
}

func TestNeighbor(t *testing.T) {
	assert.False(t, Neighbor(Coord{1, 0, 0}, PosX))
	assert.True(t, Neighbor(Coord{1, 0, 0}, NegX))
	assert.True(t, Neighbor(Coord{0, 0, 0}, PosZ))
	assert.False(t, Neighbor(Coord{0, -1, 0}, NegY))
}

func assertVec(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, msgAndArgs...)
	}
}
