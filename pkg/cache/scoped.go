package cache

// ScopedKeyer wraps another Keyer and prefixes every generated key.
// Deployments that share one Redis instance across environments use it
// to keep, say, staging and production entries apart.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prefixes all keys from inner
// with "prefix:".
func NewScopedKeyer(inner Keyer, prefix string) *ScopedKeyer {
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// BlobKey generates a prefixed blob key.
func (k *ScopedKeyer) BlobKey(textHash string, opts BlobKeyOpts) string {
	return k.prefix + ":" + k.inner.BlobKey(textHash, opts)
}

// HTTPKey generates a prefixed HTTP response key.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + ":" + k.inner.HTTPKey(namespace, key)
}

var _ Keyer = (*ScopedKeyer)(nil)
