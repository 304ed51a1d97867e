package spin

import (
	"math"

	"github.com/chewxy/math32"
)

// Rotation holds the accumulated Euler angles (radians) of the spinning group. Angles grow
// without bound in float64 so frame-sized steps keep their precision over days of uptime;
// Wrapped reduces them to one turn for rendering.
type Rotation struct {
	X float64
	Y float64
}

// Rates are the angular speeds in radians per second around X and Y.
type Rates struct {
	X float32
	Y float32
}

// DefaultRates tumble the cube slowly around X while spinning it faster around Y.
func DefaultRates() Rates {
	return Rates{X: 0.25, Y: 0.6}
}

// Advance returns r moved forward by dt seconds at the given rates. A negative or
// non-finite dt (e.g. the first frame after a stall) leaves r unchanged.
func Advance(r Rotation, rates Rates, dt float32) Rotation {
	if !(dt > 0) || math32.IsInf(dt, 0) {
		return r
	}
	r.X += float64(dt) * float64(rates.X)
	r.Y += float64(dt) * float64(rates.Y)
	return r
}

// Wrapped returns the angles reduced to [0, 2π) as float32, ready for a transform.
func (r Rotation) Wrapped() (x, y float32) {
	return float32(wrap(r.X)), float32(wrap(r.Y))
}

func wrap(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
