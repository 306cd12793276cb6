// Package tokens loads the design-token table: the light and dark palettes,
// brand swatches, type scale, spacing and radius scales.
//
// Tokens are authored in TOML. The package ships a default table embedded in
// the binary; [Load] and [Parse] read alternatives. Every table is validated
// before use, so downstream code can rely on well-formed hex colors and a
// complete set of semantic roles.
package tokens

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/screenforge/internal/validation"
	"github.com/matzehuels/screenforge/pkg/doc"
	"github.com/matzehuels/screenforge/pkg/errors"
	"github.com/matzehuels/screenforge/pkg/fonts"
	"github.com/matzehuels/screenforge/pkg/theme"
)

//go:embed default.toml
var defaultTOML []byte

// Swatch is one named brand color.
type Swatch struct {
	Name string `toml:"name" json:"name" validate:"required,name"`
	Hex  string `toml:"hex" json:"hex" validate:"required,hexcolor"`
}

// TypeStyle is one entry of the type scale.
type TypeStyle struct {
	Name       string  `toml:"name" json:"name" validate:"required,name"`
	Size       float64 `toml:"size" json:"size" validate:"gt=0"`
	LineHeight float64 `toml:"line_height" json:"line_height" validate:"gtefield=Size"`
	Weight     string  `toml:"weight" json:"weight" validate:"oneof=Regular Bold"`
}

// Bold reports whether the style uses the bold face.
func (s TypeStyle) Bold() bool { return s.Weight == fonts.Bold }

// Tokens is a validated token table.
type Tokens struct {
	Light   map[string]string  `toml:"light" json:"light" validate:"required,dive,keys,required,endkeys,hexcolor"`
	Dark    map[string]string  `toml:"dark" json:"dark" validate:"required,dive,keys,required,endkeys,hexcolor"`
	Brand   []Swatch           `toml:"brand" json:"brand" validate:"dive"`
	Type    []TypeStyle        `toml:"type" json:"type" validate:"required,min=1,dive"`
	Spacing map[string]float64 `toml:"spacing" json:"spacing" validate:"dive,gte=0"`
	Radius  map[string]float64 `toml:"radius" json:"radius" validate:"dive,gte=0"`
}

// Default returns the embedded token table.
func Default() (*Tokens, error) {
	t, err := Parse(defaultTOML)
	if err != nil {
		return nil, fmt.Errorf("embedded tokens: %w", err)
	}
	return t, nil
}

// Load reads and validates a token file.
func Load(path string) (*Tokens, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTokens, err, "read tokens %s", path)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes and validates a TOML token table. Unknown keys are
// rejected so a misspelled role does not silently disappear.
func Parse(data []byte) (*Tokens, error) {
	var t Tokens
	md, err := toml.Decode(string(data), &t)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTokens, err, "decode tokens")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidTokens, "unknown token keys: %s", strings.Join(keys, ", "))
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks struct constraints, role names and uniqueness of style
// names.
func (t *Tokens) Validate() error {
	if err := validation.Struct(t, errors.ErrCodeInvalidTokens); err != nil {
		return err
	}
	known := make(map[string]bool, len(theme.Roles))
	for _, r := range theme.Roles {
		known[string(r)] = true
	}
	for name, p := range map[theme.Name]map[string]string{theme.Light: t.Light, theme.Dark: t.Dark} {
		for _, k := range sortedKeys(p) {
			if !known[k] {
				return errors.New(errors.ErrCodeInvalidTokens, "%s palette: unknown role %q", name, k)
			}
		}
	}
	seen := map[string]bool{}
	for i, s := range t.Brand {
		if seen[s.Name] {
			return errors.New(errors.ErrCodeInvalidTokens, "%s: duplicate swatch %q", validation.Field("brand", i, "name"), s.Name)
		}
		seen[s.Name] = true
	}
	seen = map[string]bool{}
	for i, s := range t.Type {
		if seen[s.Name] {
			return errors.New(errors.ErrCodeInvalidTokens, "%s: duplicate type style %q", validation.Field("type", i, "name"), s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

// Palettes parses the light and dark tables.
func (t *Tokens) Palettes() (light, dark theme.Palette, err error) {
	if light, err = parsePalette(t.Light); err != nil {
		return nil, nil, err
	}
	if dark, err = parsePalette(t.Dark); err != nil {
		return nil, nil, err
	}
	return light, dark, nil
}

func parsePalette(m map[string]string) (theme.Palette, error) {
	p := make(theme.Palette, len(m))
	for k, v := range m {
		c, err := theme.Hex(v)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTokens, err, "role %q", k)
		}
		p[theme.Role(k)] = c
	}
	return p, nil
}

// Resolver builds a theme resolver from the palettes. A missing role fails
// with *theme.MissingRoleError.
func (t *Tokens) Resolver() (*theme.Resolver, error) {
	light, dark, err := t.Palettes()
	if err != nil {
		return nil, err
	}
	return theme.NewResolver(light, dark)
}

// NamedColor is a paint style to generate.
type NamedColor struct {
	Name  string
	Color theme.Color
}

// PaintStyles lists the color styles in generation order: light roles,
// dark roles, then brand swatches. Roles absent from a palette are skipped;
// callers that need completeness build a Resolver first.
func (t *Tokens) PaintStyles() ([]NamedColor, error) {
	light, dark, err := t.Palettes()
	if err != nil {
		return nil, err
	}
	var out []NamedColor
	for _, group := range []struct {
		prefix theme.Name
		p      theme.Palette
	}{{theme.Light, light}, {theme.Dark, dark}} {
		for _, r := range theme.Roles {
			if c, ok := group.p[r]; ok {
				out = append(out, NamedColor{Name: string(group.prefix) + "/" + r.Title(), Color: c})
			}
		}
	}
	for _, s := range t.Brand {
		c, err := theme.Hex(s.Hex)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidTokens, err, "brand %q", s.Name)
		}
		out = append(out, NamedColor{Name: "Brand/" + s.Name, Color: c})
	}
	return out, nil
}

// TextStyles materializes the type scale against the resolved fonts.
func (t *Tokens) TextStyles(fc fonts.Context) []doc.TextStyle {
	out := make([]doc.TextStyle, 0, len(t.Type))
	for _, s := range t.Type {
		out = append(out, doc.TextStyle{
			Name:       "Typography/" + s.Name,
			Font:       fc.Pick(s.Bold()),
			FontSize:   s.Size,
			LineHeight: s.LineHeight,
		})
	}
	return out
}

// Style returns the type style with the given name.
func (t *Tokens) Style(name string) (TypeStyle, bool) {
	for _, s := range t.Type {
		if s.Name == name {
			return s, true
		}
	}
	return TypeStyle{}, false
}

// Space returns a spacing value, or fallback when undefined.
func (t *Tokens) Space(name string, fallback float64) float64 {
	if v, ok := t.Spacing[name]; ok {
		return v
	}
	return fallback
}

// Corner returns a radius value, or fallback when undefined.
func (t *Tokens) Corner(name string, fallback float64) float64 {
	if v, ok := t.Radius[name]; ok {
		return v
	}
	return fallback
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
