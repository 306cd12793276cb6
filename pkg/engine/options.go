package engine

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/screenforge/pkg/catalog"
	"github.com/matzehuels/screenforge/pkg/compose"
	"github.com/matzehuels/screenforge/pkg/errors"
	"github.com/matzehuels/screenforge/pkg/fonts"
	"github.com/matzehuels/screenforge/pkg/grid"
	"github.com/matzehuels/screenforge/pkg/tokens"
)

// Default values for Options fields.
const (
	DefaultPagePrefix = "DDA Mobile"
	DefaultWorkers    = 1
	MaxWorkers        = 64
)

// Options configures an Engine. The serializable fields can be read from a
// TOML config file; the rest are wired in code.
type Options struct {
	// PagePrefix names the output pages and selects them for cleanup.
	PagePrefix string `toml:"page_prefix" json:"page_prefix"`

	// PreferredFont and FallbackFonts drive font resolution.
	PreferredFont string   `toml:"preferred_font" json:"preferred_font"`
	FallbackFonts []string `toml:"fallback_fonts" json:"fallback_fonts"`

	// Grid places screens on the page.
	Grid grid.Config `toml:"grid" json:"grid"`

	// Workers above 1 composes screens concurrently.
	Workers int `toml:"workers" json:"workers"`

	// StrictFlow fails a flow map batch on dangling edges instead of
	// skipping them with a warning.
	StrictFlow bool `toml:"strict_flow" json:"strict_flow"`

	// Inputs. Nil selects the embedded defaults.
	Catalog  *catalog.Catalog  `toml:"-" json:"-"`
	Tokens   *tokens.Tokens    `toml:"-" json:"-"`
	Registry *compose.Registry `toml:"-" json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `toml:"-" json:"-"`

	validated bool
}

// SetDefaults fills zero fields. It does not load inputs.
func (o *Options) SetDefaults() {
	if o.PagePrefix == "" {
		o.PagePrefix = DefaultPagePrefix
	}
	if o.PreferredFont == "" {
		o.PreferredFont = fonts.DefaultPreferred
	}
	if o.FallbackFonts == nil {
		o.FallbackFonts = append([]string(nil), fonts.DefaultFallbacks...)
	}
	if o.Grid == (grid.Config{}) {
		o.Grid = grid.Default()
	} else {
		o.Grid.SetDefaults()
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the serializable fields.
func (o *Options) Validate() error {
	if err := errors.ValidateName(o.PagePrefix); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOptions, err, "page_prefix")
	}
	if o.Workers < 1 || o.Workers > MaxWorkers {
		return errors.New(errors.ErrCodeInvalidOptions, "workers must be between 1 and %d, got %d", MaxWorkers, o.Workers)
	}
	return o.Grid.Validate()
}

// ValidateAndSetDefaults applies defaults, validates, and loads the default
// inputs for any left nil.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	if o.Catalog == nil {
		c, err := catalog.Default()
		if err != nil {
			return err
		}
		o.Catalog = c
	}
	if o.Tokens == nil {
		t, err := tokens.Default()
		if err != nil {
			return err
		}
		o.Tokens = t
	}
	if o.Registry == nil {
		o.Registry = compose.Default()
	}
	o.validated = true
	return nil
}

// ScreensPage is the name of the page holding the screen frames.
func (o *Options) ScreensPage() string { return "📱 " + o.PagePrefix + " — All Screens" }

// FlowPage is the name of the page holding the flow map.
func (o *Options) FlowPage() string { return "🗺️ " + o.PagePrefix + " — Flow Map" }
