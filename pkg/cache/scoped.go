package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Useful when several ingestion sources share one cache backend and their
// documents must not collide.
//
// Example usage:
//
//	// Source-specific keys
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "batch:2026-08:")
//
//	// Global keys
//	keyer := NewDefaultKeyer()
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
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DocumentKey generates a prefixed key for a canonical document.
func (k *ScopedKeyer) DocumentKey(hash string) string {
	return k.prefix + k.inner.DocumentKey(hash)
}

// ShapeKey generates a prefixed key for a transformed shape.
func (k *ScopedKeyer) ShapeKey(hash, target string) string {
	return k.prefix + k.inner.ShapeKey(hash, target)
}
