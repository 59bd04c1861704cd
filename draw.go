package glyphfont

import (
	"image/color"

	"github.com/gogpu/glyphfont/atlas"
)

// Quad is one textured rectangle: a destination box on the target and the
// matching region of a page texture.
//
// U0, V0 is the normalized texture origin; U1, V1 is the normalized extent
// (width and height), not the opposite corner. Use Corners for the corner.
type Quad struct {
	Texture atlas.Texture

	DstX, DstY float32
	DstW, DstH float32

	U0, V0 float32
	U1, V1 float32

	// Color tints the glyph coverage. It is not premultiplied.
	Color color.NRGBA
}

// Corners returns the texture coordinates of the top-left and bottom-right
// corners of the quad.
func (q Quad) Corners() (u0, v0, u1, v1 float32) {
	return q.U0, q.V0, q.U0 + q.U1, q.V0 + q.V1
}

// DrawDriver receives the quads of drawn text. Implementations should skip
// rebinding when consecutive quads share a texture.
type DrawDriver interface {
	DrawQuad(q Quad) error
}

// StateSaver is implemented by drivers that keep render state (bound
// texture, blend mode, clip) which must survive a text draw. SaveState
// captures the state and returns the function restoring it.
type StateSaver interface {
	SaveState() (restore func())
}

// DrawString draws text with the top-left corner of its first glyph box at
// (x, y), one quad per code point, and returns the width drawn.
func (f *Font) DrawString(d DrawDriver, text string, x, y float64, c color.Color) (float64, error) {
	if d == nil {
		return 0, ErrNilDriver
	}
	if s, ok := d.(StateSaver); ok {
		restore := s.SaveState()
		defer restore()
	}

	tint := toNRGBA(c)
	cursor := x
	for cp := range f.codePoints(text) {
		w, err := f.drawGlyph(d, cp, cursor, y, tint)
		if err != nil {
			return cursor - x, err
		}
		cursor += w
	}
	return cursor - x, nil
}

// DrawChar draws one code point at (x, y) and returns its width.
func (f *Font) DrawChar(d DrawDriver, cp rune, x, y float64, c color.Color) (float64, error) {
	if d == nil {
		return 0, ErrNilDriver
	}
	if s, ok := d.(StateSaver); ok {
		restore := s.SaveState()
		defer restore()
	}
	return f.drawGlyph(d, cp, x, y, toNRGBA(c))
}

// DrawPage draws the whole page holding cp as a single PageSize square quad
// at (x, y). Useful for inspecting how a block was packed.
func (f *Font) DrawPage(d DrawDriver, cp rune, x, y float64, c color.Color) error {
	if d == nil {
		return ErrNilDriver
	}
	p, _, err := f.atlas.Lookup(cp)
	if err != nil {
		return err
	}
	if s, ok := d.(StateSaver); ok {
		restore := s.SaveState()
		defer restore()
	}
	return d.DrawQuad(Quad{
		Texture: p.Texture(),
		DstX:    float32(x),
		DstY:    float32(y),
		DstW:    atlas.PageSize,
		DstH:    atlas.PageSize,
		U0:      0,
		V0:      0,
		U1:      1,
		V1:      1,
		Color:   toNRGBA(c),
	})
}

// drawGlyph emits the quad for cp and returns its advance.
func (f *Font) drawGlyph(d DrawDriver, cp rune, x, y float64, tint color.NRGBA) (float64, error) {
	p, r, err := f.atlas.Lookup(cp)
	if err != nil {
		return 0, err
	}
	return r.Width, d.DrawQuad(glyphQuad(p, r, x, y, tint))
}

// glyphQuad maps a glyph rectangle onto the destination (x, y).
func glyphQuad(p *atlas.Page, r atlas.GlyphRect, x, y float64, tint color.NRGBA) Quad {
	u0, v0, du, dv := r.UV()
	return Quad{
		Texture: p.Texture(),
		DstX:    float32(x),
		DstY:    float32(y),
		DstW:    float32(r.Width),
		DstH:    float32(r.Height),
		U0:      float32(u0),
		V0:      float32(v0),
		U1:      float32(du),
		V1:      float32(dv),
		Color:   tint,
	}
}
