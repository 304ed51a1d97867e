// Package config holds the scene settings. Every value has a built-in default, so the file is
// optional: a missing file yields Default() and a partial file only overrides what it names.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"rubik/internal/compose"
	"rubik/internal/cube"
	"rubik/internal/orbit"
	"rubik/internal/spin"
)

// DefaultPath is the config file path, relative to the process working directory.
const DefaultPath = "config/rubik.yaml"

const (
	// minCameraDistance keeps the orbit camera off its target.
	minCameraDistance = 1e-3
	minSunDistance    = 1e-3
	// minSunTilt is the sine of the smallest angle allowed between the sun direction and +-Y.
	minSunTilt = 1e-3
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full set of scene settings.
type Config struct {
	Window   Window   `yaml:"window"`
	Camera   Camera   `yaml:"camera"`
	Spin     Spin     `yaml:"spin"`
	Lighting Lighting `yaml:"lighting"`
	Cube     Cube     `yaml:"cube"`
	Ground   Ground   `yaml:"ground"`
	Debug    Debug    `yaml:"debug"`
}

// Window controls the display surface. Fullscreen ignores Width/Height and uses the monitor size.
type Window struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	TargetFPS  int    `yaml:"target_fps"`
	MSAA       bool   `yaml:"msaa"`
}

// Camera is the initial view and orbit behaviour. Damping 0 turns easing off.
type Camera struct {
	Position    [3]float32 `yaml:"position,flow"`
	Target      [3]float32 `yaml:"target,flow"`
	Fovy        float32    `yaml:"fovy"`
	Damping     float32    `yaml:"damping"`
	MinDistance float32    `yaml:"min_distance"`
	MaxDistance float32    `yaml:"max_distance"`
}

// Spin holds the angular rates of the whole cube in radians per second.
type Spin struct {
	RateX float32 `yaml:"rate_x"`
	RateY float32 `yaml:"rate_y"`
}

// Lighting is one ambient light and one shadow-casting directional light.
type Lighting struct {
	Ambient       float32    `yaml:"ambient"`
	SunPosition   [3]float32 `yaml:"sun_position,flow"`
	SunIntensity  float32    `yaml:"sun_intensity"`
	Shadows       bool       `yaml:"shadows"`
	ShadowMapSize int        `yaml:"shadow_map_size"`
}

// Scheme is the sticker colour per face direction, as #RRGGBB.
type Scheme struct {
	PosX string `yaml:"px"`
	NegX string `yaml:"nx"`
	PosY string `yaml:"py"`
	NegY string `yaml:"ny"`
	PosZ string `yaml:"pz"`
	NegZ string `yaml:"nz"`
}

// Cube holds the lattice geometry and colours.
type Cube struct {
	Spacing    float32 `yaml:"spacing"`
	CubieSize  float32 `yaml:"cubie_size"`
	Body       string  `yaml:"body"`
	Scheme     Scheme  `yaml:"scheme"`
	CullHidden bool    `yaml:"cull_hidden"`
}

// Ground is the shadow-receiving floor.
type Ground struct {
	Size  float32 `yaml:"size"`
	Y     float32 `yaml:"y"`
	Color string  `yaml:"color"`
}

// Debug toggles the on-screen overlays.
type Debug struct {
	ShowFPS    bool `yaml:"show_fps"`
	ShowAngles bool `yaml:"show_angles"`
}

// Default returns the stock settings.
func Default() Config {
	opts := compose.DefaultOptions()
	rates := spin.DefaultRates()
	orb := orbit.DefaultOptions()
	s := opts.Scheme.Stickers
	return Config{
		Window: Window{
			Title:     "rubik",
			Width:     1280,
			Height:    800,
			TargetFPS: 60,
			MSAA:      true,
		},
		Camera: Camera{
			Position:    opts.Camera.Position,
			Target:      opts.Camera.Target,
			Fovy:        opts.Camera.Fovy,
			Damping:     opts.Camera.Damping,
			MinDistance: orb.MinDistance,
			MaxDistance: orb.MaxDistance,
		},
		Spin: Spin{RateX: rates.X, RateY: rates.Y},
		Lighting: Lighting{
			Ambient:       opts.Ambient.Intensity,
			SunPosition:   opts.Sun.Position,
			SunIntensity:  opts.Sun.Intensity,
			Shadows:       true,
			ShadowMapSize: opts.Sun.ShadowMapSize,
		},
		Cube: Cube{
			Spacing:   opts.Spacing,
			CubieSize: opts.Size,
			Body:      FormatHexColor(opts.Scheme.Body),
			Scheme: Scheme{
				PosX: FormatHexColor(s[cube.PosX]),
				NegX: FormatHexColor(s[cube.NegX]),
				PosY: FormatHexColor(s[cube.PosY]),
				NegY: FormatHexColor(s[cube.NegY]),
				PosZ: FormatHexColor(s[cube.PosZ]),
				NegZ: FormatHexColor(s[cube.NegZ]),
			},
		},
		Ground: Ground{
			Size:  opts.GroundSize,
			Y:     opts.GroundY,
			Color: FormatHexColor(opts.GroundColor),
		},
	}
}

// Load reads settings from path on top of Default(). A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the parent directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Marshal returns cfg as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func finite(vs ...float32) bool {
	for _, v := range vs {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Validate checks every setting. Errors wrap ErrInvalid.
func (c Config) Validate() error {
	if !c.Window.Fullscreen && (c.Window.Width <= 0 || c.Window.Height <= 0) {
		return invalid("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TargetFPS < 0 {
		return invalid("target_fps %d", c.Window.TargetFPS)
	}
	if !finite(c.Camera.Position[:]...) || !finite(c.Camera.Target[:]...) ||
		!finite(c.Camera.Fovy, c.Camera.Damping, c.Camera.MinDistance, c.Camera.MaxDistance) {
		return invalid("camera values must be finite")
	}
	if mgl32.Vec3(c.Camera.Position).Sub(mgl32.Vec3(c.Camera.Target)).Len() < minCameraDistance {
		return invalid("camera position %v coincides with target %v", c.Camera.Position, c.Camera.Target)
	}
	if c.Camera.Fovy <= 0 || c.Camera.Fovy >= 180 {
		return invalid("camera fovy %v", c.Camera.Fovy)
	}
	if c.Camera.Damping < 0 || c.Camera.Damping > 1 {
		return invalid("camera damping %v outside [0,1]", c.Camera.Damping)
	}
	if c.Camera.MinDistance < 0 || (c.Camera.MaxDistance > 0 && c.Camera.MaxDistance < c.Camera.MinDistance) {
		return invalid("camera distance range [%v,%v]", c.Camera.MinDistance, c.Camera.MaxDistance)
	}
	if !finite(c.Spin.RateX, c.Spin.RateY) {
		return invalid("spin rates must be finite")
	}
	if !finite(c.Lighting.Ambient, c.Lighting.SunIntensity) || c.Lighting.Ambient < 0 || c.Lighting.SunIntensity < 0 {
		return invalid("light intensities must be finite and not negative")
	}
	if err := validateSun(mgl32.Vec3(c.Lighting.SunPosition)); err != nil {
		return err
	}
	if n := c.Lighting.ShadowMapSize; n <= 0 || n&(n-1) != 0 {
		return invalid("shadow_map_size %d is not a power of two", n)
	}
	if !finite(c.Cube.Spacing, c.Cube.CubieSize) {
		return invalid("cube spacing and cubie_size must be finite")
	}
	if c.Cube.Spacing <= 0 {
		return invalid("cube spacing %v", c.Cube.Spacing)
	}
	if c.Cube.CubieSize <= 0 || c.Cube.CubieSize >= c.Cube.Spacing {
		return invalid("cubie_size %v must be in (0, spacing %v)", c.Cube.CubieSize, c.Cube.Spacing)
	}
	if !finite(c.Ground.Size, c.Ground.Y) {
		return invalid("ground size and y must be finite")
	}
	if c.Ground.Size <= 0 {
		return invalid("ground size %v", c.Ground.Size)
	}
	if _, err := c.scheme(); err != nil {
		return err
	}
	if _, ok := ParseHexColor(c.Ground.Color); !ok {
		return invalid("ground color %q", c.Ground.Color)
	}
	return nil
}

// validateSun rejects light positions the shadow camera cannot look from: the origin itself, and
// points on the Y axis where the view direction is parallel to the camera's up vector.
func validateSun(p mgl32.Vec3) error {
	if !finite(p[:]...) {
		return invalid("sun_position must be finite")
	}
	if p.Len() < minSunDistance {
		return invalid("sun_position %v is at the origin", p)
	}
	if p.Normalize().Cross(mgl32.Vec3{0, 1, 0}).Len() < minSunTilt {
		return invalid("sun_position %v is straight above or below the origin", p)
	}
	return nil
}

func (c Config) scheme() (cube.Scheme, error) {
	var s cube.Scheme
	named := []struct {
		face cube.Face
		key  string
		val  string
	}{
		{cube.PosX, "px", c.Cube.Scheme.PosX},
		{cube.NegX, "nx", c.Cube.Scheme.NegX},
		{cube.PosY, "py", c.Cube.Scheme.PosY},
		{cube.NegY, "ny", c.Cube.Scheme.NegY},
		{cube.PosZ, "pz", c.Cube.Scheme.PosZ},
		{cube.NegZ, "nz", c.Cube.Scheme.NegZ},
	}
	for _, n := range named {
		col, ok := ParseHexColor(n.val)
		if !ok {
			return s, invalid("scheme %s color %q", n.key, n.val)
		}
		s.Stickers[n.face] = col
	}
	body, ok := ParseHexColor(c.Cube.Body)
	if !ok {
		return s, invalid("body color %q", c.Cube.Body)
	}
	s.Body = body
	return s, nil
}

// Scheme returns the parsed colour scheme.
func (c Config) Scheme() (cube.Scheme, error) {
	return c.scheme()
}

// ComposeOptions converts the settings into scene composition options.
func (c Config) ComposeOptions() (compose.Options, error) {
	if err := c.Validate(); err != nil {
		return compose.Options{}, err
	}
	scheme, _ := c.scheme()
	ground, _ := ParseHexColor(c.Ground.Color)

	opts := compose.DefaultOptions()
	opts.Scheme = scheme
	opts.Spacing = c.Cube.Spacing
	opts.Size = c.Cube.CubieSize
	opts.CullHidden = c.Cube.CullHidden
	opts.GroundSize = c.Ground.Size
	opts.GroundY = c.Ground.Y
	opts.GroundColor = ground
	opts.Ambient.Intensity = c.Lighting.Ambient
	opts.Sun.Position = mgl32.Vec3(c.Lighting.SunPosition)
	opts.Sun.Intensity = c.Lighting.SunIntensity
	opts.Sun.ShadowMapSize = c.Lighting.ShadowMapSize
	if !c.Lighting.Shadows {
		opts.Sun.ShadowMapSize = 0
	}
	opts.Camera = compose.Camera{
		Position: mgl32.Vec3(c.Camera.Position),
		Target:   mgl32.Vec3(c.Camera.Target),
		Fovy:     c.Camera.Fovy,
		Damping:  c.Camera.Damping,
	}
	return opts, nil
}

// SpinRates returns the rotation rates.
func (c Config) SpinRates() spin.Rates {
	return spin.Rates{X: c.Spin.RateX, Y: c.Spin.RateY}
}

// OrbitOptions returns the orbit controller settings.
func (c Config) OrbitOptions() orbit.Options {
	o := orbit.DefaultOptions()
	o.Damping = c.Camera.Damping
	o.MinDistance = c.Camera.MinDistance
	o.MaxDistance = c.Camera.MaxDistance
	o.Fovy = c.Camera.Fovy
	return o
}
