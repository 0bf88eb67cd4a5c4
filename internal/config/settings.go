package config

import "sync"

// RuntimeSettings holds the settings that may change while the window is
// open, e.g. from key bindings
type RuntimeSettings struct {
	mu        sync.RWMutex
	fpsLimit  int
	showStats bool
}

var globalRuntimeSettings = &RuntimeSettings{}

// Apply copies the runtime part of c into the global settings
func Apply(c Config) {
	SetFPSLimit(c.FPSLimit)
}

// GetFPSLimit returns the frame cap, 0 when uncapped
func GetFPSLimit() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.fpsLimit
}

// SetFPSLimit sets the frame cap; negative values mean uncapped
func SetFPSLimit(limit int) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 1000 {
		limit = 1000
	}

	globalRuntimeSettings.fpsLimit = limit
}

// GetShowStats returns whether per-frame stats are logged
func GetShowStats() bool {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.showStats
}

// ToggleShowStats flips stats logging and returns the new state
func ToggleShowStats() bool {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()
	globalRuntimeSettings.showStats = !globalRuntimeSettings.showStats
	return globalRuntimeSettings.showStats
}
