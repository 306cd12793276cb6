// Package host provides an in-memory host for the engine.
//
// A host owns the document the engine writes into and answers the two
// questions the engine cannot answer itself: which fonts exist and whether
// one can be loaded. [Memory] answers both from configuration and can be
// told to fail, which is how the CLI runs headless and how tests exercise
// the error paths.
package host

import (
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/screenforge/pkg/doc"
	"github.com/matzehuels/screenforge/pkg/fonts"
)

// DefaultFonts is the font list of a typical design tool installation.
var DefaultFonts = []fonts.FontRef{
	{Family: "Inter", Style: fonts.Regular},
	{Family: "Inter", Style: "Medium"},
	{Family: "Inter", Style: fonts.Bold},
	{Family: "Roboto", Style: fonts.Regular},
	{Family: "Roboto", Style: fonts.Bold},
	{Family: "Arial", Style: fonts.Regular},
	{Family: "Arial", Style: fonts.Bold},
}

// Memory is a host backed by a doc.Document in memory. It is safe for
// concurrent use, though the engine calls it from one goroutine at a time.
type Memory struct {
	mu          sync.Mutex
	document    *doc.Document
	fonts       []fonts.FontRef
	loadErrs    map[fonts.FontRef]error
	fontListErr error
	removeErr   error
	loads       []fonts.FontRef
	removed     []string
}

// Option configures a Memory host.
type Option func(*Memory)

// WithFonts replaces the available font list.
func WithFonts(f ...fonts.FontRef) Option {
	return func(m *Memory) { m.fonts = slices.Clone(f) }
}

// WithDocument starts from an existing document instead of an empty one.
func WithDocument(d *doc.Document) Option {
	return func(m *Memory) {
		if d != nil {
			m.document = d
		}
	}
}

// WithLoadError makes loading f fail with err.
func WithLoadError(f fonts.FontRef, err error) Option {
	return func(m *Memory) { m.loadErrs[f] = err }
}

// WithFontListError makes listing fonts fail with err.
func WithFontListError(err error) Option {
	return func(m *Memory) { m.fontListErr = err }
}

// WithRemoveError makes every page removal fail with err.
func WithRemoveError(err error) Option {
	return func(m *Memory) { m.removeErr = err }
}

// NewMemory returns a host with DefaultFonts and an empty document.
func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		document: doc.New(),
		fonts:    slices.Clone(DefaultFonts),
		loadErrs: make(map[fonts.FontRef]error),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AvailableFonts lists the installed fonts.
func (m *Memory) AvailableFonts(ctx context.Context) ([]fonts.FontRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fontListErr != nil {
		return nil, m.fontListErr
	}
	return slices.Clone(m.fonts), nil
}

// LoadFont records the load and fails if configured to.
func (m *Memory) LoadFont(ctx context.Context, f fonts.FontRef) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads = append(m.loads, f)
	return m.loadErrs[f]
}

// Document returns the document the engine writes into.
func (m *Memory) Document() *doc.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.document
}

// RemovePage deletes every page named name.
func (m *Memory) RemovePage(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.removeErr != nil {
		return m.removeErr
	}
	if m.document.RemovePage(name) {
		m.removed = append(m.removed, name)
	}
	return nil
}

// Loads returns the fonts loaded so far, in order.
func (m *Memory) Loads() []fonts.FontRef {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.loads)
}

// Removed returns the names of removed pages, in order.
func (m *Memory) Removed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.removed)
}
