package debug

import (
	"fmt"

	"github.com/chewxy/math32"

	rl "github.com/gen2brain/raylib-go/raylib"

	"rubik/internal/spin"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh text every N frames to reduce allocations.
	updateInterval = 30
)

// Debug holds runtime overlays. All are off by default.
type Debug struct {
	ShowFPS    bool
	ShowAngles bool

	frameCount uint32
	fpsText    string
	anglesText string
}

// New returns a Debug system with all overlays hidden.
func New() *Debug {
	return &Debug{}
}

// AnglesText formats r in degrees wrapped to [0, 360).
func AnglesText(r spin.Rotation) string {
	x, y := r.Wrapped()
	return fmt.Sprintf("X: %5.1f deg  Y: %5.1f deg", degrees(x), degrees(y))
}

func degrees(rad float32) float32 {
	return rad * 180 / math32.Pi
}

// Draw renders enabled overlays top-right in green, FPS first, then the cube's spin angles.
// Text is only recomputed every updateInterval frames.
func (d *Debug) Draw(r spin.Rotation) {
	d.frameCount++
	update := d.frameCount%updateInterval == 0

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	line := func(text string) {
		w := rl.MeasureText(text, fontSize)
		rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
		y += lineHeight
	}

	if d.ShowFPS {
		if update || d.fpsText == "" {
			d.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		line(d.fpsText)
	}
	if d.ShowAngles {
		if update || d.anglesText == "" {
			d.anglesText = AnglesText(r)
		}
		line(d.anglesText)
	}
}
