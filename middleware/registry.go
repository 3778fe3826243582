package middleware

import (
	"sync"

	"github.com/nerva-io/nerva/types"
)

// Registry is the per-module store built during resolution: resolved
// wrappers keyed by token name plus the ordered configuration list.
// Entries are append-only and live for the process lifetime.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*moduleEntry
}

type moduleEntry struct {
	mu       sync.Mutex
	wrappers map[string]*types.MiddlewareWrapper
	configs  []types.MiddlewareConfig
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*moduleEntry),
	}
}

func (r *Registry) entry(moduleName string) *moduleEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.entries[moduleName]
	if !exists {
		entry = &moduleEntry{
			wrappers: make(map[string]*types.MiddlewareWrapper),
		}
		r.entries[moduleName] = entry
	}

	return entry
}

func (r *Registry) AddConfig(config types.MiddlewareConfig, moduleName string) {
	entry := r.entry(moduleName)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.configs = append(entry.configs, config)
}

// Configs returns a read-only snapshot of the module's configuration list.
// Unconfigured modules yield an empty slice, never nil handling at call
// sites.
func (r *Registry) Configs(moduleName string) []types.MiddlewareConfig {
	r.mu.RLock()
	entry, exists := r.entries[moduleName]
	r.mu.RUnlock()

	if !exists {
		return []types.MiddlewareConfig{}
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	configs := make([]types.MiddlewareConfig, len(entry.configs))
	copy(configs, entry.configs)
	return configs
}

func (r *Registry) InsertWrapper(token types.MiddlewareToken, instance interface{}, moduleName string) {
	entry := r.entry(moduleName)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.wrappers[token.Name] = &types.MiddlewareWrapper{
		Token:    token,
		Instance: instance,
		Module:   moduleName,
	}
}

func (r *Registry) Wrapper(moduleName, tokenName string) (*types.MiddlewareWrapper, bool) {
	r.mu.RLock()
	entry, exists := r.entries[moduleName]
	r.mu.RUnlock()

	if !exists {
		return nil, false
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	wrapper, found := entry.wrappers[tokenName]
	return wrapper, found
}

// Modules lists every module that holds registry state.
func (r *Registry) Modules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	return names
}
