package atlas

import "image"

// Metrics are the measurements of a single glyph in pixels.
type Metrics struct {
	// Advance is the horizontal distance to the next glyph origin.
	Advance float64

	// Height is the logical line height of the glyph box, ascent plus descent.
	Height float64

	// Ascent is the distance from the top of the glyph box to the baseline.
	Ascent float64
}

// Rasterizer measures and renders individual code points.
//
// Implementations return *UnsupportedGlyphError when the font has no glyph
// for a code point; any other error aborts the page build.
type Rasterizer interface {
	// Measure returns the metrics of cp in the face described by desc.
	Measure(desc FontDescriptor, cp rune) (Metrics, error)

	// Render draws cp in opaque white into dst with its origin on the
	// baseline at (x, y). Coverage goes into the alpha channel, so the
	// result is premultiplied.
	Render(desc FontDescriptor, cp rune, dst *image.RGBA, x, y float64) error
}

// Texture is a handle to an uploaded page image.
type Texture interface {
	// Size returns the texture dimensions in pixels.
	Size() (width, height int)

	// Release frees the texture. Pages call it at most once.
	Release()
}

// TextureUploader turns a finished page image into a texture.
// Upload is called exactly once per page, after every glyph is rendered.
type TextureUploader interface {
	Upload(img *image.RGBA) (Texture, error)
}

// UploaderFunc adapts a function to the TextureUploader interface.
type UploaderFunc func(img *image.RGBA) (Texture, error)

// Upload calls f(img).
func (f UploaderFunc) Upload(img *image.RGBA) (Texture, error) {
	return f(img)
}
