package theme

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGBA color with channels in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// White and Black are opaque convenience colors.
var (
	White = Color{R: 1, G: 1, B: 1, A: 1}
	Black = Color{A: 1}
)

// Hex parses "#rrggbb" or "#rgb" (the leading '#' is optional) into an
// opaque color.
func Hex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// MustHex is like Hex but panics on malformed input. Intended for
// package level literals.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats the color as "#rrggbb", ignoring alpha.
func (c Color) Hex() string {
	return colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}.Hex()
}

// WithAlpha returns a copy of c with the given opacity.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Mix blends c towards o by t in Lab space.
func (c Color) Mix(o Color, t float64) Color {
	m := c.colorful().BlendLab(o.colorful(), t).Clamped()
	return Color{R: m.R, G: m.G, B: m.B, A: c.A + (o.A-c.A)*t}
}

// Valid reports whether every channel is a finite value in [0, 1].
func (c Color) Valid() bool {
	for _, v := range [...]float64{c.R, c.G, c.B, c.A} {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return false
		}
	}
	return true
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
