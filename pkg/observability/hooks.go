// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about forge execution, validation
// outcomes, and registry operations.
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
//   - Keeps the engine dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetForgeHooks(&myForgeHooks{})
//	    observability.SetRegistryHooks(&myRegistryHooks{})
//	    // ... run application
//	}
//
// The forge calls hooks to emit events:
//
//	observability.Forge().OnGenerateStart(ctx, kind, len(dims))
//	// ... run pipeline ...
//	observability.Forge().OnGenerateComplete(ctx, kind, capsules, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Forge Hooks
// =============================================================================

// ForgeHooks receives events from the generation and morph pipelines.
type ForgeHooks interface {
	// Generation events
	OnGenerateStart(ctx context.Context, kind string, dimensionCount int)
	OnGenerateComplete(ctx context.Context, kind string, capsuleCount int, duration time.Duration, err error)

	// Per-capsule validation outcome
	OnValidate(ctx context.Context, capsuleID string, valid bool)

	// Fallback capsule produced for an unregistered kind
	OnFallback(ctx context.Context, kind string)

	// Morph events
	OnMorphStart(ctx context.Context, sourceA, sourceB string)
	OnMorphComplete(ctx context.Context, capsuleID string, duration time.Duration, err error)
}

// =============================================================================
// Registry Hooks
// =============================================================================

// RegistryHooks receives events from capsule registry operations.
type RegistryHooks interface {
	// OnAppend records a registry append. duplicate is true when the record
	// was skipped because the capsule ID already existed.
	OnAppend(ctx context.Context, capsuleID string, duplicate bool)

	// OnExport records a capsule export (raster plus metadata written).
	OnExport(ctx context.Context, capsuleID string, bytes int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopForgeHooks is a no-op implementation of ForgeHooks.
type NoopForgeHooks struct{}

func (NoopForgeHooks) OnGenerateStart(context.Context, string, int) {}
func (NoopForgeHooks) OnGenerateComplete(context.Context, string, int, time.Duration, error) {
}
func (NoopForgeHooks) OnValidate(context.Context, string, bool)                     {}
func (NoopForgeHooks) OnFallback(context.Context, string)                           {}
func (NoopForgeHooks) OnMorphStart(context.Context, string, string)                 {}
func (NoopForgeHooks) OnMorphComplete(context.Context, string, time.Duration, error) {}

// NoopRegistryHooks is a no-op implementation of RegistryHooks.
type NoopRegistryHooks struct{}

func (NoopRegistryHooks) OnAppend(context.Context, string, bool) {}
func (NoopRegistryHooks) OnExport(context.Context, string, int)  {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	forgeHooks    ForgeHooks    = NoopForgeHooks{}
	registryHooks RegistryHooks = NoopRegistryHooks{}
	hooksMu       sync.RWMutex
)

// SetForgeHooks registers custom forge hooks.
// This should be called once at application startup before any generation.
func SetForgeHooks(h ForgeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		forgeHooks = h
	}
}

// SetRegistryHooks registers custom registry hooks.
// This should be called once at application startup before any exports.
func SetRegistryHooks(h RegistryHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		registryHooks = h
	}
}

// Forge returns the registered forge hooks.
func Forge() ForgeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return forgeHooks
}

// Registry returns the registered registry hooks.
func Registry() RegistryHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return registryHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	forgeHooks = NoopForgeHooks{}
	registryHooks = NoopRegistryHooks{}
}
