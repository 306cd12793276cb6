// Package theme maps semantic color roles to concrete colors for the light
// and dark themes.
//
// A [Resolver] is built once from two palettes and is immutable afterwards,
// so it may be shared freely between goroutines. Construction fails with a
// [*MissingRoleError] if either palette lacks any of [Roles]; resolution
// after construction therefore cannot fail for a known role.
package theme

import (
	"fmt"

	"github.com/matzehuels/screenforge/pkg/errors"
)

// Role is a semantic color name.
type Role string

// Semantic roles. Every palette must define all of them.
const (
	Background    Role = "background"
	Surface       Role = "surface"
	TextPrimary   Role = "text-primary"
	TextSecondary Role = "text-secondary"
	TextMuted     Role = "text-muted"
	Brand         Role = "brand"
	BrandAlt      Role = "brand-alt"
	Border        Role = "border"
	Accent        Role = "accent"
	Danger        Role = "danger"
)

// Roles lists every semantic role in style-generation order.
var Roles = []Role{
	Background, Surface, TextPrimary, TextSecondary, TextMuted,
	Brand, BrandAlt, Border, Accent, Danger,
}

// Title returns the human name used for paint styles, e.g. "Text Primary".
func (r Role) Title() string {
	switch r {
	case Background:
		return "Background"
	case Surface:
		return "Surface"
	case TextPrimary:
		return "Text Primary"
	case TextSecondary:
		return "Text Secondary"
	case TextMuted:
		return "Text Muted"
	case Brand:
		return "Brand"
	case BrandAlt:
		return "Brand Alt"
	case Border:
		return "Border"
	case Accent:
		return "Accent"
	case Danger:
		return "Danger"
	}
	return string(r)
}

// Palette maps roles to colors for one theme.
type Palette map[Role]Color

// Name identifies the theme a palette belongs to.
type Name string

const (
	Light Name = "Light"
	Dark  Name = "Dark"
)

// MissingRoleError reports a semantic role absent from a palette.
type MissingRoleError struct {
	Role  Role
	Theme Name
}

func (e *MissingRoleError) Error() string {
	return fmt.Sprintf("theme %s: missing color role %q", e.Theme, e.Role)
}

// Code maps the error onto the structured error taxonomy.
func (e *MissingRoleError) Code() errors.Code { return errors.ErrCodeMissingRole }

// Resolver resolves roles against a light and a dark palette.
type Resolver struct {
	light Palette
	dark  Palette
}

// NewResolver validates both palettes and returns a Resolver holding
// private copies of them.
func NewResolver(light, dark Palette) (*Resolver, error) {
	if err := checkPalette(Light, light); err != nil {
		return nil, err
	}
	if err := checkPalette(Dark, dark); err != nil {
		return nil, err
	}
	return &Resolver{light: clonePalette(light), dark: clonePalette(dark)}, nil
}

func checkPalette(name Name, p Palette) error {
	for _, r := range Roles {
		c, ok := p[r]
		if !ok {
			return &MissingRoleError{Role: r, Theme: name}
		}
		if !c.Valid() {
			return errors.New(errors.ErrCodeInvalidTokens, "theme %s: role %q has out of range color", name, r)
		}
	}
	return nil
}

func clonePalette(p Palette) Palette {
	out := make(Palette, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Resolve returns the color for role in the requested theme.
func (r *Resolver) Resolve(role Role, isDark bool) (Color, error) {
	p, name := r.light, Light
	if isDark {
		p, name = r.dark, Dark
	}
	c, ok := p[role]
	if !ok {
		return Color{}, &MissingRoleError{Role: role, Theme: name}
	}
	return c, nil
}

// Context returns the per-screen theme context.
func (r *Resolver) Context(isDark bool) Context {
	if isDark {
		return Context{IsDark: true, Palette: r.dark}
	}
	return Context{Palette: r.light}
}

// Context is the theme information handed to composers.
type Context struct {
	IsDark  bool
	Palette Palette
}

// Color returns the color for role. Unknown roles resolve to magenta so a
// typo is visible in output instead of aborting a screen.
func (c Context) Color(role Role) Color {
	if v, ok := c.Palette[role]; ok {
		return v
	}
	return Color{R: 1, B: 1, A: 1}
}

// Pick returns light or dark depending on the context.
func (c Context) Pick(light, dark Color) Color {
	if c.IsDark {
		return dark
	}
	return light
}
