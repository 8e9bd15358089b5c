package cloud

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Color is a linear RGBA colour.
type Color struct {
	R, G, B, A float32
}

var (
	White = Color{1, 1, 1, 1}
	Black = Color{0, 0, 0, 1}
)

func NewColor(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

// Scale multiplies the colour channels, leaving alpha untouched.
func (c Color) Scale(k float32) Color {
	return Color{R: c.R * k, G: c.G * k, B: c.B * k, A: c.A}
}

// ParseColor reads the "r g b" or "r g b a" form used by scene files.
func ParseColor(s string) (Color, error) {
	parts := strings.Fields(s)
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("color %q: want 3 or 4 components, got %d", s, len(parts))
	}

	channels := [4]float32{0, 0, 0, 1}
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 32)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: component %d: %w", s, i, err)
		}
		channels[i] = float32(f)
	}
	return Color{channels[0], channels[1], channels[2], channels[3]}, nil
}

func (c Color) String() string {
	f := func(v float32) string { return strconv.FormatFloat(float64(v), 'g', -1, 32) }
	if c.A == 1 {
		return f(c.R) + " " + f(c.G) + " " + f(c.B)
	}
	return f(c.R) + " " + f(c.G) + " " + f(c.B) + " " + f(c.A)
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
