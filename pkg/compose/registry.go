// Package compose turns screen descriptors into node trees.
//
// A [Registry] maps design keys to composer functions. Each composer fills a
// fresh 375x812 frame using only the [Env] it is given: theme colors and the
// resolved font pair travel as parameters, never as shared state, so screens
// can be composed concurrently.
//
// Composition never fails from the caller's point of view. An unknown key,
// a composer error, a composer panic or a tree with invalid geometry all end
// in the default composer, which draws the screen name and category. The
// failure is reported in [Result.Err] for logging.
package compose

import (
	"fmt"
	"sort"

	"github.com/matzehuels/screenforge/pkg/catalog"
	"github.com/matzehuels/screenforge/pkg/doc"
	"github.com/matzehuels/screenforge/pkg/errors"
	"github.com/matzehuels/screenforge/pkg/fonts"
	"github.com/matzehuels/screenforge/pkg/theme"
)

// Env is everything a composer may read.
type Env struct {
	Theme theme.Context
	Fonts fonts.Context
}

// Func populates frame for one screen.
type Func func(frame *doc.Node, env Env) error

// State is the lifecycle position of one screen.
type State int

const (
	Pending State = iota
	Composing
	Composed
	Failed
	FallbackComposed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Composing:
		return "composing"
	case Composed:
		return "composed"
	case Failed:
		return "failed"
	case FallbackComposed:
		return "fallback"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText renders the state name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Result is the outcome of composing one descriptor. Node is never nil.
type Result struct {
	Node  *doc.Node
	State State
	Err   *BuildError
}

// BuildError describes why a screen was rendered by the default composer.
type BuildError struct {
	Screen       string
	Design       string
	Unregistered bool
	Panicked     bool
	Err          error
}

func (e *BuildError) Error() string {
	switch {
	case e.Unregistered:
		return fmt.Sprintf("screen %q: no composer for design %q", e.Screen, e.Design)
	case e.Panicked:
		return fmt.Sprintf("screen %q: composer %q panicked: %v", e.Screen, e.Design, e.Err)
	}
	return fmt.Sprintf("screen %q: composer %q: %v", e.Screen, e.Design, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// Code maps the error onto the structured error taxonomy.
func (e *BuildError) Code() errors.Code { return errors.ErrCodeComposerBuild }

// Registry dispatches design keys to composers. Register everything before
// the first Compose; after that the registry is read-only and safe for
// concurrent use.
type Registry struct {
	funcs map[string]Func
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

// Register adds a composer. Registering a key twice is an error.
func (r *Registry) Register(key string, fn Func) error {
	if err := errors.ValidateKey(key); err != nil {
		return err
	}
	if fn == nil {
		return errors.New(errors.ErrCodeInvalidInput, "composer %q is nil", key)
	}
	if _, dup := r.funcs[key]; dup {
		return errors.New(errors.ErrCodeInvalidInput, "composer %q already registered", key)
	}
	r.funcs[key] = fn
	return nil
}

// MustRegister is Register that panics on error, for static tables.
func (r *Registry) MustRegister(key string, fn Func) {
	if err := r.Register(key, fn); err != nil {
		panic(err)
	}
}

// Has reports whether key has a composer.
func (r *Registry) Has(key string) bool {
	_, ok := r.funcs[key]
	return ok
}

// Keys returns the registered design keys in sorted order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.funcs))
	for k := range r.funcs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Compose builds the frame for d.
func (r *Registry) Compose(d catalog.Descriptor, env Env) Result {
	fn, ok := r.funcs[d.Design]
	if !ok {
		return Result{
			Node:  Fallback(d, env),
			State: FallbackComposed,
			Err:   &BuildError{Screen: d.Name, Design: d.Design, Unregistered: true},
		}
	}

	frame := NewFrame(d.Name, env)
	if err := run(fn, frame, env); err != nil {
		err.Screen, err.Design = d.Name, d.Design
		return Result{Node: Fallback(d, env), State: FallbackComposed, Err: err}
	}
	if err := doc.Validate(frame); err != nil {
		return Result{
			Node:  Fallback(d, env),
			State: FallbackComposed,
			Err:   &BuildError{Screen: d.Name, Design: d.Design, Err: err},
		}
	}
	return Result{Node: frame, State: Composed}
}

func run(fn Func, frame *doc.Node, env Env) (berr *BuildError) {
	defer func() {
		if rec := recover(); rec != nil {
			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("%v", rec)
			}
			berr = &BuildError{Panicked: true, Err: err}
		}
	}()
	if err := fn(frame, env); err != nil {
		return &BuildError{Err: err}
	}
	return nil
}

// Frame dimensions of a mobile screen.
const (
	FrameWidth  = 375
	FrameHeight = 812
	FrameRadius = 20
)

// NewFrame returns an empty screen frame filled with the theme background.
func NewFrame(name string, env Env) *doc.Node {
	return doc.NewContainer(name, doc.Rect{W: FrameWidth, H: FrameHeight}, doc.Solid(env.Theme.Color(theme.Background))).
		Radius(FrameRadius)
}

// Fallback renders the descriptor's name and category on a fresh frame. It
// reads nothing but its arguments and cannot fail.
func Fallback(d catalog.Descriptor, env Env) *doc.Node {
	frame := NewFrame(d.Name, env)
	frame.Append(
		doc.NewText(d.Name, env.Fonts.Bold, 18, env.Theme.Color(theme.TextPrimary)).At(20, 40),
		doc.NewText("📱 "+string(d.Category), env.Fonts.Regular, 14, env.Theme.Color(theme.TextSecondary)).At(20, 70),
	)
	return frame
}
