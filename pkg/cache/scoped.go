package cache

import "github.com/matzehuels/seqgram/pkg/seq/layout"

// ScopedKeyer wraps a Keyer with a prefix so that independent users of one
// backend never read each other's entries. `seqgram serve` scopes its keys
// with "serve:" when it shares a Redis instance with CLI runners.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer is replaced with the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed geometry key.
func (k *ScopedKeyer) LayoutKey(inputHash string, cfg layout.Config) string {
	return k.prefix + k.inner.LayoutKey(inputHash, cfg)
}

// OutputKey generates a prefixed output key.
func (k *ScopedKeyer) OutputKey(geometryHash string, opts OutputKeyOpts) string {
	return k.prefix + k.inner.OutputKey(geometryHash, opts)
}
