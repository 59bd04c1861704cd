package atlas

import "fmt"

// GlyphRect is the placement of one glyph inside its page, in pixels.
// Width includes the descriptor spacing and is the advance used for layout.
type GlyphRect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// UV returns the normalized texture origin and extent of the rectangle.
// du and dv are extents, not the opposite corner.
func (r GlyphRect) UV() (u0, v0, du, dv float64) {
	return r.X / PageSize, r.Y / PageSize, r.Width / PageSize, r.Height / PageSize
}

// Right returns the x coordinate of the right edge.
func (r GlyphRect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y coordinate of the bottom edge.
func (r GlyphRect) Bottom() float64 {
	return r.Y + r.Height
}

// String returns a string representation of the rectangle.
func (r GlyphRect) String() string {
	return fmt.Sprintf("Rect(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}
