package unit

import "sync"

// Default registry instance and initialization guard.
var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide registry, building the standard catalogs
// on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		if defaultRegistry == nil {
			defaultRegistry = NewDefaultRegistry()
		}
	})
	return defaultRegistry
}

// InitDefault installs a custom registry as the process-wide default.
// Must be called before any call to Default() to take effect.
// Safe for concurrent use but only the first call has any effect.
func InitDefault(r *Registry) {
	defaultOnce.Do(func() {
		defaultRegistry = r
	})
}

// ResetDefault resets the process-wide registry for testing purposes.
// This is NOT thread-safe and should only be used in tests.
func ResetDefault() {
	defaultOnce = sync.Once{}
	defaultRegistry = nil
}

// Resolve resolves expr against the process-wide registry.
func Resolve(expr string) (*Unit, error) {
	return Default().Resolve(expr)
}
