// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about store access and persistence
// operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Store().OnRead(ctx, key, found)
package observability

import (
	"context"
	"sync"
)

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from layout store operations.
type StoreHooks interface {
	// OnRead records a store read. found is false for missing keys.
	OnRead(ctx context.Context, key string, found bool)

	// OnWrite records a store write with the serialized payload size.
	OnWrite(ctx context.Context, key string, size int)

	// OnCorrupt records stored content that failed to parse and was
	// discarded in favor of an empty collection.
	OnCorrupt(ctx context.Context, key string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnRead(context.Context, string, bool)     {}
func (NoopStoreHooks) OnWrite(context.Context, string, int)     {}
func (NoopStoreHooks) OnCorrupt(context.Context, string, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	storeHooks StoreHooks = NoopStoreHooks{}
	hooksMu    sync.RWMutex
)

// SetStoreHooks registers custom store hooks.
// This should be called once at application startup before any store operations.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	storeHooks = NoopStoreHooks{}
}
