package spin

import (
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestAdvanceSingleStep(t *testing.T) {
	r := Advance(Rotation{}, DefaultRates(), 2)
	assert.InDelta(t, 0.5, r.X, 1e-6)
	assert.InDelta(t, 1.2, r.Y, 1e-6)
}

func TestAdvanceIndependentOfSplit(t *testing.T) {
	rates := DefaultRates()
	splits := [][]float32{
		{3},
		{1, 1, 1},
		{0.5, 2.5},
		{0.016, 0.017, 0.016, 2.951},
	}
	whole := Advance(Rotation{}, rates, 3)
	for _, steps := range splits {
		var r Rotation
		for _, dt := range steps {
			r = Advance(r, rates, dt)
		}
		assert.InDelta(t, whole.X, r.X, 1e-5, "steps %v", steps)
		assert.InDelta(t, whole.Y, r.Y, 1e-5, "steps %v", steps)
		assert.InDelta(t, 3*float64(rates.X), r.X, 1e-5)
		assert.InDelta(t, 3*float64(rates.Y), r.Y, 1e-5)
	}
}

func TestAdvanceManyFramesMonotonic(t *testing.T) {
	rates := DefaultRates()
	var r Rotation
	for i := 0; i < 600; i++ {
		next := Advance(r, rates, 1.0/60)
		assert.Greater(t, next.X, r.X)
		assert.Greater(t, next.Y, r.Y)
		r = next
	}
	assert.InDelta(t, 10*float64(rates.X), r.X, 1e-3)
	assert.InDelta(t, 10*float64(rates.Y), r.Y, 1e-3)
}

func TestAdvanceTenHoursAtSixtyFPS(t *testing.T) {
	rates := DefaultRates()
	dt := float32(1.0 / 60)
	frames := 10 * 3600 * 60
	var r Rotation
	for i := 0; i < frames; i++ {
		r = Advance(r, rates, dt)
	}
	elapsed := float64(frames) * float64(dt)
	assert.InDelta(t, elapsed*float64(rates.X), r.X, 1e-3)
	assert.InDelta(t, elapsed*float64(rates.Y), r.Y, 1e-3)
}

func TestAdvanceKeepsMovingAtLargeAngles(t *testing.T) {
	rates := DefaultRates()
	start := Rotation{X: 65536, Y: 262144}
	next := Advance(start, rates, 1.0/60)
	assert.InDelta(t, float64(rates.X)/60, next.X-start.X, 1e-9)
	assert.InDelta(t, float64(rates.Y)/60, next.Y-start.Y, 1e-9)
}

func TestWrapped(t *testing.T) {
	x, y := Rotation{X: 2*math.Pi + 0.5, Y: -0.5}.Wrapped()
	assert.InDelta(t, 0.5, x, 1e-5)
	assert.InDelta(t, 2*math.Pi-0.5, y, 1e-5)

	x, y = Rotation{X: 262144 + 0.25, Y: 1e6}.Wrapped()
	assert.InDelta(t, math.Mod(262144.25, 2*math.Pi), x, 1e-5)
	assert.InDelta(t, math.Mod(1e6, 2*math.Pi), y, 1e-5)
	assert.Less(t, x, float32(2*math.Pi))
}

func TestAdvanceIgnoresBadDelta(t *testing.T) {
	start := Rotation{X: 1, Y: 2}
	for _, dt := range []float32{0, -0.5, math32.NaN(), math32.Inf(1)} {
		assert.Equal(t, start, Advance(start, DefaultRates(), dt), "dt %v", dt)
	}
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	start := Rotation{}
	_ = Advance(start, DefaultRates(), 1)
	assert.Equal(t, Rotation{}, start)
}
