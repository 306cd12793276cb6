package doc

import "github.com/matzehuels/screenforge/pkg/theme"

// PaintType distinguishes solid fills from gradients.
type PaintType string

const (
	PaintSolid          PaintType = "solid"
	PaintLinearGradient PaintType = "gradient-linear"
)

// GradientStop is one color stop of a gradient, Position in [0, 1].
type GradientStop struct {
	Position float64     `json:"position"`
	Color    theme.Color `json:"color"`
}

// Paint is a fill or stroke.
type Paint struct {
	Type  PaintType      `json:"type"`
	Color theme.Color    `json:"color,omitzero"`
	Stops []GradientStop `json:"stops,omitempty"`
}

// Solid returns a solid paint.
func Solid(c theme.Color) Paint {
	return Paint{Type: PaintSolid, Color: c}
}

// VerticalGradient returns a top to bottom linear gradient between two
// colors.
func VerticalGradient(from, to theme.Color) Paint {
	return Paint{
		Type: PaintLinearGradient,
		Stops: []GradientStop{
			{Position: 0, Color: from},
			{Position: 1, Color: to},
		},
	}
}

// EffectType names a visual effect.
type EffectType string

const EffectDropShadow EffectType = "drop-shadow"

// Effect is a drop shadow.
type Effect struct {
	Type    EffectType  `json:"type"`
	Color   theme.Color `json:"color"`
	OffsetX float64     `json:"offset_x"`
	OffsetY float64     `json:"offset_y"`
	Radius  float64     `json:"radius"`
}

// DropShadow returns a black drop shadow with the given opacity, vertical
// offset and blur radius.
func DropShadow(alpha, offsetY, radius float64) Effect {
	return Effect{
		Type:    EffectDropShadow,
		Color:   theme.Black.WithAlpha(alpha),
		OffsetY: offsetY,
		Radius:  radius,
	}
}
