package glyphfont

import "errors"

// Sentinel errors for the glyphfont package.
var (
	// ErrNilDriver is returned by draw calls given a nil DrawDriver.
	ErrNilDriver = errors.New("glyphfont: draw driver is nil")

	// ErrInvalidPageLimit is returned by NewFont for a negative page limit.
	ErrInvalidPageLimit = errors.New("glyphfont: page limit must not be negative")
)
