package backend

import (
	"errors"

	"github.com/gogpu/glyphfont/atlas"
)

// Backend name constants.
const (
	// BackendSoftware is the name of the CPU image backend.
	BackendSoftware = "software"
	// BackendEbiten is the name of the Ebitengine backend.
	BackendEbiten = "ebiten"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// Backend provides the texture side of a drawing backend: somewhere to put
// atlas pages. Drawing quads is backend specific and done through the
// DrawDriver each backend package provides.
//
// Backends register themselves with Register and are opened with Open.
type Backend interface {
	// Name returns the backend identifier (e.g., "software", "ebiten").
	Name() string

	// Init prepares the backend. Call before NewUploader.
	Init() error

	// Close releases backend resources.
	Close()

	// NewUploader returns an uploader creating textures of this backend.
	NewUploader() (atlas.TextureUploader, error)
}
