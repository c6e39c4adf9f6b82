// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"sort"
	"sync"

	"github.com/gogpu/gpucontext"
)

// Options configures host creation through a Registry.
type Options struct {
	// MaxWidth and MaxHeight bound canvas size for hosts that honor them.
	// Zero means unlimited.
	MaxWidth  int
	MaxHeight int

	// Drawer is the presentation context for the texture backend.
	Drawer gpucontext.TextureDrawer
}

// HostFactory creates a new Host with the given options.
// Implementations should validate options and return descriptive errors.
type HostFactory func(opts Options) (Host, error)

// RegistryEntry represents a registered host backend.
type RegistryEntry struct {
	// Name is the unique identifier for this backend.
	Name string

	// Priority determines selection order (higher = preferred).
	// Standard priorities:
	//   - 100: GPU presentation (texture)
	//   - 50: Browser document (dom)
	//   - 10: In-memory (image)
	Priority int

	// Factory creates host instances.
	Factory HostFactory

	// Available reports if the backend is available on this system.
	Available func() bool
}

// Registry manages registered host backends.
//
// There is no process-wide registry. Applications build one and fill it
// explicitly:
//
//	r := surface.NewRegistry()
//	surface.RegisterBuiltins(r)
//	host, err := r.NewHostByName("image", surface.Options{})
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// RegisterBuiltins adds the backends compiled into this build: "image" and
// "texture" everywhere, plus "dom" under js/wasm.
func RegisterBuiltins(r *Registry) {
	r.Register("image", 10, func(opts Options) (Host, error) {
		return NewImageHost(WithMaxSize(opts.MaxWidth, opts.MaxHeight)), nil
	}, nil)
	r.Register("texture", 100, func(opts Options) (Host, error) {
		h, err := NewTextureHost(opts.Drawer)
		if err != nil {
			return nil, err
		}
		return h, nil
	}, nil)
	registerPlatform(r)
}

// Register adds a backend to this registry.
//
// If available is nil, the backend is assumed always available.
// Registering a name that already exists replaces the previous entry.
func (r *Registry) Register(name string, priority int, factory HostFactory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entries == nil {
		r.entries = make(map[string]*RegistryEntry)
	}

	if available == nil {
		available = func() bool { return true }
	}

	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes a backend from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered backend names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns names of all available backends sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// Get returns information about a specific backend.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}

	entryCopy := *entry
	return &entryCopy, true
}

// NewHost creates a host using the best available backend whose factory
// accepts opts.
func (r *Registry) NewHost(opts Options) (Host, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, ErrNoBackendAvailable
	}

	var lastErr error
	for _, name := range available {
		h, err := r.NewHostByName(name, opts)
		if err == nil {
			return h, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// NewHostByName creates a host using a specific backend.
func (r *Registry) NewHostByName(name string, opts Options) (Host, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}

	if !entry.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}

	return entry.Factory(opts)
}

// sortedNames returns backend names sorted by priority (highest first),
// then by name. Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	type entry struct {
		name     string
		priority int
	}

	entries := make([]entry, 0, len(r.entries))
	for name, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, entry{name: name, priority: e.Priority})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].name < entries[j].name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// Errors.
var (
	// ErrNoBackendAvailable is returned when no host backends are registered
	// or available on the current system.
	ErrNoBackendAvailable = errors.New("surface: no backend available")
)

// BackendNotFoundError indicates a named backend is not registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

// BackendUnavailableError indicates a backend exists but is not available.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "surface: backend unavailable: " + e.Name
}
