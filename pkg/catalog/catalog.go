// Package catalog loads the screen catalog: the ordered list of screens to
// generate, the dark variants rendered below them and the navigation flow
// adjacency list.
//
// Catalogs are authored in YAML. A default catalog is embedded in the
// binary.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/screenforge/internal/validation"
	"github.com/matzehuels/screenforge/pkg/errors"
	"github.com/matzehuels/screenforge/pkg/flow"
)

//go:embed default.yaml
var defaultYAML []byte

// Category groups screens.
type Category string

// Known categories.
const (
	Auth     Category = "Auth"
	Main     Category = "Main"
	Purchase Category = "Purchase"
	Premium  Category = "Premium"
	Learning Category = "Learning"
	Exam     Category = "Exam"
	Support  Category = "Support"
	Profile  Category = "Profile"
)

// Categories lists the known categories in display order.
var Categories = []Category{Auth, Main, Purchase, Premium, Learning, Exam, Support, Profile}

// Descriptor names one screen to generate.
type Descriptor struct {
	ID       string   `yaml:"id" json:"id" validate:"required,key"`
	Name     string   `yaml:"name" json:"name" validate:"required,name"`
	Category Category `yaml:"category" json:"category" validate:"required,oneof=Auth Main Purchase Premium Learning Exam Support Profile"`
	Design   string   `yaml:"design" json:"design" validate:"required,key"`
	Dark     bool     `yaml:"dark,omitempty" json:"dark,omitempty"`
}

// Catalog is a validated screen catalog.
type Catalog struct {
	Screens      []Descriptor `yaml:"screens" json:"screens" validate:"required,min=1,dive"`
	DarkVariants []Descriptor `yaml:"dark_variants" json:"dark_variants" validate:"dive"`
	Flows        []flow.Node  `yaml:"flows" json:"flows" validate:"dive"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	c, err := Parse(defaultYAML)
	if err != nil {
		return nil, fmt.Errorf("embedded catalog: %w", err)
	}
	return c, nil
}

// Load reads and validates a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "read catalog %s", path)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Parse decodes and validates a YAML catalog. Unknown fields are rejected.
// Every descriptor listed under dark_variants is marked Dark.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if m := yamlLineRegex.FindStringSubmatch(err.Error()); m != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode catalog (line %s)", m[1])
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode catalog")
	}
	for i := range c.DarkVariants {
		c.DarkVariants[i].Dark = true
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks struct constraints and cross-entry uniqueness.
func (c *Catalog) Validate() error {
	if err := validation.Struct(c, errors.ErrCodeInvalidCatalog); err != nil {
		return err
	}
	ids := map[string]bool{}
	check := func(list string, ds []Descriptor) error {
		for i, d := range ds {
			if ids[d.ID] {
				return errors.New(errors.ErrCodeInvalidCatalog, "%s: duplicate screen id %q", validation.Field(list, i, "id"), d.ID)
			}
			ids[d.ID] = true
		}
		return nil
	}
	if err := check("screens", c.Screens); err != nil {
		return err
	}
	if err := check("dark_variants", c.DarkVariants); err != nil {
		return err
	}
	designs := map[string]bool{}
	for _, d := range c.Screens {
		designs[d.Design] = true
	}
	for i, d := range c.DarkVariants {
		if !designs[d.Design] {
			return errors.New(errors.ErrCodeInvalidCatalog, "%s: dark variant of design %q has no light screen", validation.Field("dark_variants", i, "design"), d.Design)
		}
	}
	names := map[string]bool{}
	for i, f := range c.Flows {
		if names[f.Name] {
			return errors.New(errors.ErrCodeInvalidCatalog, "%s: duplicate flow node %q", validation.Field("flows", i, "name"), f.Name)
		}
		names[f.Name] = true
	}
	return nil
}

// All returns the screens followed by the dark variants.
func (c *Catalog) All() []Descriptor {
	out := make([]Descriptor, 0, len(c.Screens)+len(c.DarkVariants))
	out = append(out, c.Screens...)
	return append(out, c.DarkVariants...)
}

// ByCategory groups the main screens by category, in catalog order.
func (c *Catalog) ByCategory() map[Category][]Descriptor {
	out := make(map[Category][]Descriptor)
	for _, d := range c.Screens {
		out[d.Category] = append(out[d.Category], d)
	}
	return out
}

// Find returns the descriptor with the given id.
func (c *Catalog) Find(id string) (Descriptor, bool) {
	for _, d := range c.All() {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Designs returns the distinct design keys in first-use order.
func (c *Catalog) Designs() []string {
	seen := map[string]bool{}
	var out []string
	for _, d := range c.All() {
		if !seen[d.Design] {
			seen[d.Design] = true
			out = append(out, d.Design)
		}
	}
	return out
}
