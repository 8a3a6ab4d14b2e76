package cache

// ScopedKeyer prefixes every key of another [Keyer]. The CLI and server scope
// keys by build version, so an upgraded binary never reads a tree rendered by
// an older renderer:
//
//	keyer := NewScopedKeyer(nil, "v0.3.0:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or a [DefaultKeyer] when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ReportKey(fingerprint string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(fingerprint, opts)
}

func (k *ScopedKeyer) VPCListKey(fingerprint string) string {
	return k.prefix + k.inner.VPCListKey(fingerprint)
}
