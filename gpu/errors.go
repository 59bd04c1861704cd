package gpu

import "errors"

var (
	// ErrNilDevice is returned when a hal device or queue is missing.
	ErrNilDevice = errors.New("gpu: device or queue is nil")

	// ErrTextureReleased is returned when drawing or uploading through a
	// texture that was already released.
	ErrTextureReleased = errors.New("gpu: texture already released")

	// ErrForeignTexture is returned when a quad references a texture that
	// was not created by this package.
	ErrForeignTexture = errors.New("gpu: texture was not created by this package")

	// ErrNotHALProvider is returned when a device provider does not expose
	// HalDevice and HalQueue.
	ErrNotHALProvider = errors.New("gpu: provider does not expose HAL types")

	// ErrNilCreator is returned when no gpucontext texture creator is available.
	ErrNilCreator = errors.New("gpu: texture creator is nil")

	// ErrPipelineDestroyed is returned when using a destroyed QuadPipeline.
	ErrPipelineDestroyed = errors.New("gpu: pipeline destroyed")
)
