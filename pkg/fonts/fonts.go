// Package fonts selects and loads the font pair used by a batch.
//
// Selection is a pure function of the preferred family, the fonts the host
// reports as available and a fallback priority list. Loading goes through a
// host supplied [Loader]; a failed load is recorded as a [*LoadError] and the
// affected slot falls back to [SystemFont] so the batch continues.
//
// The resolved pair is returned as a [Context] value and threaded to every
// composer explicitly. Nothing here is process-wide state.
package fonts

import (
	"context"
	"fmt"

	"github.com/matzehuels/screenforge/pkg/errors"
)

// Standard style names.
const (
	Regular = "Regular"
	Bold    = "Bold"
)

// DefaultPreferred is the family tried before the fallbacks.
const DefaultPreferred = "Inter"

// DefaultFallbacks is the fallback priority list.
var DefaultFallbacks = []string{"Roboto", "Arial", "Helvetica"}

// FontRef names one face of a font family.
type FontRef struct {
	Family string `json:"family"`
	Style  string `json:"style"`
}

// SystemFont is the null font: the host's default face.
var SystemFont = FontRef{}

// IsSystem reports whether f is the null font.
func (f FontRef) IsSystem() bool { return f.Family == "" }

func (f FontRef) String() string {
	if f.IsSystem() {
		return "system"
	}
	return f.Family + " " + f.Style
}

// Context is the resolved font pair handed to composers.
type Context struct {
	Regular FontRef `json:"regular"`
	Bold    FontRef `json:"bold"`
}

// Pick returns the bold face when bold is true.
func (c Context) Pick(bold bool) FontRef {
	if bold {
		return c.Bold
	}
	return c.Regular
}

// Selection is the outcome of choosing faces against an availability list.
type Selection struct {
	Regular  FontRef
	Bold     FontRef
	Fallback bool // the preferred family was not available at Regular
}

// Select chooses the regular and bold faces.
//
// The preferred family is matched exactly at Regular and Bold. When its
// Regular face is missing, the first fallback family present in available
// wins, in fallback order, whatever style it is listed with. When nothing
// matches, both faces are SystemFont.
func Select(preferred string, available []FontRef, fallbacks []string) Selection {
	var sel Selection
	if f, ok := find(available, preferred, Regular); ok {
		sel.Regular = f
	}
	if f, ok := find(available, preferred, Bold); ok {
		sel.Bold = f
	}

	if sel.Regular.IsSystem() {
		sel.Fallback = true
		for _, family := range fallbacks {
			f, ok := findFamily(available, family)
			if !ok {
				continue
			}
			sel.Regular = f
			if sel.Bold.IsSystem() {
				if b, ok := find(available, family, Bold); ok {
					sel.Bold = b
				}
			}
			break
		}
	}

	if sel.Bold.IsSystem() {
		sel.Bold = sel.Regular
	}
	return sel
}

func find(available []FontRef, family, style string) (FontRef, bool) {
	for _, f := range available {
		if f.Family == family && f.Style == style {
			return f, true
		}
	}
	return FontRef{}, false
}

// findFamily returns the Regular face of family if listed, otherwise the
// first face of that family.
func findFamily(available []FontRef, family string) (FontRef, bool) {
	if f, ok := find(available, family, Regular); ok {
		return f, true
	}
	for _, f := range available {
		if f.Family == family {
			return f, true
		}
	}
	return FontRef{}, false
}

// Loader makes a font usable by subsequent text nodes.
type Loader interface {
	LoadFont(ctx context.Context, f FontRef) error
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context, f FontRef) error

// LoadFont implements Loader.
func (fn LoaderFunc) LoadFont(ctx context.Context, f FontRef) error { return fn(ctx, f) }

// LoadError records a font that could not be loaded.
type LoadError struct {
	Font FontRef
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load font %s: %v", e.Font, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Code maps the error onto the structured error taxonomy.
func (e *LoadError) Code() errors.Code { return errors.ErrCodeFontLoad }
