package backend

import (
	"fmt"
	"sync"

	"github.com/gogpu/glyphfont/atlas"
)

// BackendFactory creates a new backend instance.
type BackendFactory func() Backend

var (
	registryMu sync.RWMutex
	factories  = make(map[string]BackendFactory)

	// Open("") tries these in order, then any other registered backend.
	backendPriority = []string{BackendEbiten, BackendSoftware}
)

// Register makes a backend available to Open under name, replacing any
// earlier registration. Backend packages call it from init.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Open initializes the named backend and returns it together with a new
// uploader for its textures. An empty name picks the first registered
// backend in priority order. Close the backend after the fonts using the
// uploader are closed.
func Open(name string) (Backend, atlas.TextureUploader, error) {
	factory := lookup(name)
	if factory == nil {
		if name == "" {
			return nil, nil, ErrBackendNotAvailable
		}
		return nil, nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	b := factory()
	if err := b.Init(); err != nil {
		return nil, nil, fmt.Errorf("backend: init %s: %w", b.Name(), err)
	}
	up, err := b.NewUploader()
	if err != nil {
		b.Close()
		return nil, nil, fmt.Errorf("backend: %s uploader: %w", b.Name(), err)
	}
	return b, up, nil
}

// lookup returns the factory registered as name, or for an empty name the
// best registered one.
func lookup(name string) BackendFactory {
	registryMu.RLock()
	defer registryMu.RUnlock()

	if name != "" {
		return factories[name]
	}
	for _, n := range backendPriority {
		if f, ok := factories[n]; ok {
			return f
		}
	}
	for _, f := range factories {
		return f
	}
	return nil
}
