package cache

// ScopedKeyer wraps a Keyer with a prefix. The CLI scopes keys by build
// version so an upgraded binary never serves artifacts rendered by an older
// one.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SVGKey generates a prefixed key for a flow map rendering.
func (k *ScopedKeyer) SVGKey(dot string) string {
	return k.prefix + k.inner.SVGKey(dot)
}

// DocumentKey generates a prefixed key for a generated document.
func (k *ScopedKeyer) DocumentKey(opts DocumentKeyOpts) string {
	return k.prefix + k.inner.DocumentKey(opts)
}
