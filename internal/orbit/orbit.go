// Package orbit is a damped orbit camera controller: drag to rotate around a target, wheel to
// zoom, secondary drag to pan. It only does the math; the caller feeds mouse deltas and copies
// Position/Target into its camera.
package orbit

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// polarEpsilon keeps the camera off the poles where the up vector degenerates.
const polarEpsilon = 1e-6

// zoomBase is the radius factor applied per wheel notch (wheel up zooms in).
const zoomBase = float32(0.95)

// Input is one frame of user input in screen pixels. ViewportHeight converts pixels to angles.
type Input struct {
	RotateDX, RotateDY float32
	PanDX, PanDY       float32
	Wheel              float32
	ViewportHeight     float32
}

// Active reports whether in carries any drag or wheel motion.
func (in Input) Active() bool {
	return in.RotateDX != 0 || in.RotateDY != 0 || in.PanDX != 0 || in.PanDY != 0 || in.Wheel != 0
}

// Options tune the controller. Damping in (0,1] is the fraction of pending motion applied per
// update; 0 applies motion immediately with no inertia.
type Options struct {
	Damping     float32
	RotateSpeed float32
	PanSpeed    float32
	ZoomSpeed   float32
	MinDistance float32
	MaxDistance float32
	Fovy        float32 // degrees, used to scale panning with distance
}

// DefaultOptions matches the usual orbit-control feel with damping on.
func DefaultOptions() Options {
	return Options{
		Damping:     0.05,
		RotateSpeed: 1,
		PanSpeed:    1,
		ZoomSpeed:   1,
		MinDistance: 2,
		MaxDistance: 60,
		Fovy:        45,
	}
}

// spherical is a position relative to the target: radius, polar angle from +Y, and azimuth
// around +Y measured from +Z towards +X.
type spherical struct {
	radius float32
	phi    float32
	theta  float32
}

// Controller tracks the camera position around a target. Not safe for concurrent use.
type Controller struct {
	opts   Options
	target mgl32.Vec3
	sph    spherical

	dPhi   float32
	dTheta float32
	pan    mgl32.Vec3
}

// New returns a controller looking from position at target.
func New(position, target mgl32.Vec3, opts Options) *Controller {
	c := &Controller{opts: opts, target: target}
	c.sph = toSpherical(position.Sub(target))
	c.sph.radius = c.clampRadius(c.sph.radius)
	return c
}

func toSpherical(v mgl32.Vec3) spherical {
	r := v.Len()
	if r == 0 {
		return spherical{}
	}
	return spherical{
		radius: r,
		phi:    math32.Acos(clamp(v.Y()/r, -1, 1)),
		theta:  math32.Atan2(v.X(), v.Z()),
	}
}

func (s spherical) vec() mgl32.Vec3 {
	sinPhi := math32.Sin(s.phi)
	return mgl32.Vec3{
		s.radius * sinPhi * math32.Sin(s.theta),
		s.radius * math32.Cos(s.phi),
		s.radius * sinPhi * math32.Cos(s.theta),
	}
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}

func (c *Controller) clampRadius(r float32) float32 {
	lo, hi := c.opts.MinDistance, c.opts.MaxDistance
	if hi <= 0 {
		hi = math32.Inf(1)
	}
	return clamp(r, lo, hi)
}

// Position returns the camera position.
func (c *Controller) Position() mgl32.Vec3 {
	return c.target.Add(c.sph.vec())
}

// Target returns the point the camera looks at.
func (c *Controller) Target() mgl32.Vec3 {
	return c.target
}

// Distance returns the current distance between camera and target.
func (c *Controller) Distance() float32 {
	return c.sph.radius
}

// Update consumes one frame of input and moves the camera. It must be called every frame,
// even without input, so damped motion keeps easing out.
func (c *Controller) Update(in Input) {
	h := in.ViewportHeight
	if h <= 0 {
		h = 1
	}

	if in.RotateDX != 0 || in.RotateDY != 0 {
		c.dTheta -= 2 * math32.Pi * in.RotateDX / h * c.opts.RotateSpeed
		c.dPhi -= 2 * math32.Pi * in.RotateDY / h * c.opts.RotateSpeed
	}
	if in.PanDX != 0 || in.PanDY != 0 {
		c.queuePan(in.PanDX, in.PanDY, h)
	}

	f := c.opts.Damping
	if f <= 0 || f > 1 {
		f = 1
	}

	c.sph.theta += c.dTheta * f
	c.sph.phi = clamp(c.sph.phi+c.dPhi*f, polarEpsilon, math32.Pi-polarEpsilon)
	c.target = c.target.Add(c.pan.Mul(f))

	if in.Wheel != 0 {
		c.sph.radius *= math32.Pow(zoomBase, in.Wheel*c.opts.ZoomSpeed)
	}
	c.sph.radius = c.clampRadius(c.sph.radius)

	keep := 1 - f
	c.dTheta *= keep
	c.dPhi *= keep
	c.pan = c.pan.Mul(keep)
}

// queuePan turns a screen drag into a world offset in the camera plane. Moving the mouse right
// drags the scene right, so the target moves left.
func (c *Controller) queuePan(dx, dy, h float32) {
	offset := c.sph.vec()
	fov := c.opts.Fovy
	if fov <= 0 {
		fov = 45
	}
	dist := offset.Len() * math32.Tan(fov/2*math32.Pi/180)

	forward := offset.Mul(-1).Normalize()
	right := forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()
	up := right.Cross(forward)

	left := 2 * dx * dist / h * c.opts.PanSpeed
	upward := 2 * dy * dist / h * c.opts.PanSpeed
	c.pan = c.pan.Add(right.Mul(-left)).Add(up.Mul(upward))
}

// Moving reports whether damped motion is still pending.
func (c *Controller) Moving() bool {
	const eps = 1e-5
	return math32.Abs(c.dTheta) > eps || math32.Abs(c.dPhi) > eps || c.pan.Len() > eps
}
