package config

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHexColor parses #RGB or #RRGGBB into an opaque colour. Returns false on parse error.
func ParseHexColor(s string) (color.RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 4 && len(s) != 7 {
		return color.RGBA{}, false
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, false
	}
	// Hex stops scanning at the first non-hex digit, so a long form must survive a round trip.
	if len(s) == 7 && c.Hex() != s {
		return color.RGBA{}, false
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 0xff}, true
}

// FormatHexColor renders c as #rrggbb, dropping alpha.
func FormatHexColor(c color.RGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}
