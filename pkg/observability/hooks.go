// Package observability provides hooks for metrics and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register hooks
// at startup to receive events about solver trials and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, which keeps the solver and
// cache packages free of logging and metrics dependencies.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSolverHooks(&mySolverHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Solver().OnTrialStart(solverName, k)
//	// ... run the trial ...
//	observability.Solver().OnTrialComplete(solverName, k, solved, duration)
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Solver Hooks
// =============================================================================

// SolverHooks receives events from labeling solver runs. One trial is a
// complete search at a fixed label bound k.
type SolverHooks interface {
	// OnTrialStart records the beginning of a search at bound k.
	OnTrialStart(solver string, k int)

	// OnTrialComplete records the end of a search at bound k.
	OnTrialComplete(solver string, k int, solved bool, duration time.Duration)

	// OnSolutionFound records a completed labeling with its final k.
	OnSolutionFound(solver string, k int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from result cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSolverHooks is a no-op implementation of SolverHooks.
type NoopSolverHooks struct{}

func (NoopSolverHooks) OnTrialStart(string, int)                         {}
func (NoopSolverHooks) OnTrialComplete(string, int, bool, time.Duration) {}
func (NoopSolverHooks) OnSolutionFound(string, int, time.Duration)       {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(string)      {}
func (NoopCacheHooks) OnCacheMiss(string)     {}
func (NoopCacheHooks) OnCacheSet(string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	solverHooks SolverHooks = NoopSolverHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetSolverHooks registers custom solver hooks.
// This should be called once at application startup before any solver runs.
func SetSolverHooks(h SolverHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		solverHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Solver returns the registered solver hooks.
func Solver() SolverHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return solverHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	solverHooks = NoopSolverHooks{}
	cacheHooks = NoopCacheHooks{}
}
