package rasterize

import "errors"

// Sentinel errors for the rasterize package.
var (
	// ErrUnknownFamily is returned for a family that is not registered.
	ErrUnknownFamily = errors.New("rasterize: unknown font family")

	// ErrEmptyFamily is returned when registering a font without a family name.
	ErrEmptyFamily = errors.New("rasterize: empty family name")
)
