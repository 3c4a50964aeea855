package cache

// ScopedKeyer prefixes every key of an inner Keyer. A Redis instance shared
// with other applications uses it to keep sorttrace entries apart.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer returns a keyer that prepends prefix. A nil inner keyer
// means the DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SweepKey returns the prefixed sweep key.
func (k *ScopedKeyer) SweepKey(opts SweepKeyOpts) string {
	return k.prefix + k.inner.SweepKey(opts)
}

// RenderKey returns the prefixed render key.
func (k *ScopedKeyer) RenderKey(values []int, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(values, opts)
}
