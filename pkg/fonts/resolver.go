package fonts

import (
	"context"
	"sync"
)

// Resolution is the result of resolving fonts for one batch.
type Resolution struct {
	Context   Context
	Selection Selection
	Errors    []*LoadError
}

// Resolver resolves and loads the font pair once per batch. Loads are
// memoized until Reset, so a face shared by both slots is loaded once.
type Resolver struct {
	Preferred string
	Fallbacks []string

	mu     sync.Mutex
	loaded map[FontRef]error
}

// NewResolver returns a Resolver for the given preferred family and
// fallback list. Empty arguments select the defaults.
func NewResolver(preferred string, fallbacks []string) *Resolver {
	if preferred == "" {
		preferred = DefaultPreferred
	}
	if fallbacks == nil {
		fallbacks = DefaultFallbacks
	}
	return &Resolver{Preferred: preferred, Fallbacks: fallbacks}
}

// Reset drops the memoized loads. Call at the start of every batch.
func (r *Resolver) Reset() {
	r.mu.Lock()
	r.loaded = nil
	r.mu.Unlock()
}

// Resolve selects the font pair against available and loads both faces.
// Load failures are collected in the Resolution and replaced by SystemFont.
// The only returned error is the context's, when it is done before loading
// finishes.
func (r *Resolver) Resolve(ctx context.Context, loader Loader, available []FontRef) (Resolution, error) {
	sel := Select(r.Preferred, available, r.Fallbacks)
	res := Resolution{Selection: sel}

	regular, err := r.load(ctx, loader, sel.Regular)
	if err != nil {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		res.Errors = append(res.Errors, &LoadError{Font: sel.Regular, Err: err})
	}
	bold, err := r.load(ctx, loader, sel.Bold)
	if err != nil {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		if sel.Bold != sel.Regular {
			res.Errors = append(res.Errors, &LoadError{Font: sel.Bold, Err: err})
		}
		bold = regular
	}
	res.Context = Context{Regular: regular, Bold: bold}
	return res, nil
}

func (r *Resolver) load(ctx context.Context, loader Loader, f FontRef) (FontRef, error) {
	if f.IsSystem() {
		return SystemFont, nil
	}
	if err := ctx.Err(); err != nil {
		return SystemFont, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded == nil {
		r.loaded = make(map[FontRef]error)
	}
	err, seen := r.loaded[f]
	if !seen {
		err = loader.LoadFont(ctx, f)
		r.loaded[f] = err
	}
	if err != nil {
		return SystemFont, err
	}
	return f, nil
}
