package rasterize

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/glyphfont/atlas"
)

// faceKey identifies a sized face.
type faceKey struct {
	src     *Source
	size    float64
	hinting font.Hinting
}

// face is a sized opentype face with its vertical metrics.
// opentype faces are not safe for concurrent use, hence the mutex.
type face struct {
	mu      sync.Mutex
	src     *Source
	face    font.Face
	buf     sfnt.Buffer
	ascent  float64
	descent float64
}

// OpenType rasterizes glyphs from a Library with golang.org/x/image.
//
// Glyph heights are the logical line height of the face (ascent plus
// descent), so every glyph box of a face has the same height and glyphs
// share a baseline when drawn at the same y.
//
// OpenType is safe for concurrent use.
type OpenType struct {
	lib    *Library
	notdef rune

	mu    sync.Mutex
	faces map[faceKey]*face
}

// OpenTypeOption configures an OpenType rasterizer.
type OpenTypeOption func(*OpenType)

// WithNotdefRune sets the code point drawn with the font's .notdef glyph
// when the font has no real glyph for it. It should match the fallback rune
// of the atlas cache. Default: atlas.DefaultFallbackRune.
func WithNotdefRune(r rune) OpenTypeOption {
	return func(o *OpenType) {
		o.notdef = r
	}
}

// NewOpenType creates a rasterizer resolving families through lib.
// A nil lib uses NewLibrary().
func NewOpenType(lib *Library, opts ...OpenTypeOption) *OpenType {
	if lib == nil {
		lib = NewLibrary()
	}
	o := &OpenType{
		lib:    lib,
		notdef: atlas.DefaultFallbackRune,
		faces:  make(map[faceKey]*face),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

var defaultRasterizer = sync.OnceValue(func() *OpenType {
	return NewOpenType(NewLibrary())
})

// Default returns a shared rasterizer over the built-in Go fonts.
func Default() *OpenType {
	return defaultRasterizer()
}

// Library returns the font library.
func (o *OpenType) Library() *Library {
	return o.lib
}

// Measure implements atlas.Rasterizer.
func (o *OpenType) Measure(desc atlas.FontDescriptor, cp rune) (atlas.Metrics, error) {
	f, err := o.face(desc)
	if err != nil {
		return atlas.Metrics{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if !o.hasGlyph(f, cp) {
		return atlas.Metrics{}, &atlas.UnsupportedGlyphError{CodePoint: cp}
	}
	adv, ok := f.face.GlyphAdvance(cp)
	if !ok {
		return atlas.Metrics{}, &atlas.UnsupportedGlyphError{CodePoint: cp}
	}
	return atlas.Metrics{
		Advance: fixedToFloat64(adv),
		Height:  f.ascent + f.descent,
		Ascent:  f.ascent,
	}, nil
}

// Render implements atlas.Rasterizer. The glyph is drawn in white with its
// origin at (x, y) on the baseline. Without antialiasing the coverage is
// thresholded to fully opaque or fully transparent.
func (o *OpenType) Render(desc atlas.FontDescriptor, cp rune, dst *image.RGBA, x, y float64) error {
	f, err := o.face(desc)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if !o.hasGlyph(f, cp) {
		return &atlas.UnsupportedGlyphError{CodePoint: cp}
	}
	dot := fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(y)}
	dr, mask, maskp, _, ok := f.face.Glyph(dot, cp)
	if !ok {
		return &atlas.UnsupportedGlyphError{CodePoint: cp}
	}
	draw.DrawMask(dst, dr, image.White, image.Point{}, mask, maskp, draw.Over)
	if !desc.AntiAlias {
		threshold(dst, dr.Intersect(dst.Bounds()))
	}
	return nil
}

// hasGlyph reports whether the font maps cp to a real glyph. The notdef
// rune is always accepted and drawn as .notdef when unmapped.
func (o *OpenType) hasGlyph(f *face, cp rune) bool {
	if cp == o.notdef {
		return true
	}
	idx, err := f.src.Font.GlyphIndex(&f.buf, cp)
	return err == nil && idx != 0
}

// face returns the cached sized face for desc, creating it on first use.
func (o *OpenType) face(desc atlas.FontDescriptor) (*face, error) {
	src, err := o.lib.Lookup(desc.Family, desc.Style)
	if err != nil {
		return nil, err
	}
	key := faceKey{src: src, size: desc.Size, hinting: hintingFor(desc)}

	o.mu.Lock()
	defer o.mu.Unlock()
	if f, ok := o.faces[key]; ok {
		return f, nil
	}

	otFace, err := opentype.NewFace(src.Font, &opentype.FaceOptions{
		Size:    desc.Size,
		DPI:     72,
		Hinting: key.hinting,
	})
	if err != nil {
		return nil, fmt.Errorf("rasterize: failed to create face %s: %w", desc, err)
	}
	m := otFace.Metrics()
	f := &face{
		src:     src,
		face:    otFace,
		ascent:  fixedToFloat64(m.Ascent),
		descent: fixedToFloat64(m.Descent),
	}
	o.faces[key] = f
	return f, nil
}

// Close releases every cached face.
func (o *OpenType) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for k, f := range o.faces {
		_ = f.face.Close()
		delete(o.faces, k)
	}
	return nil
}

// hintingFor keeps fractional metrics for antialiased text and snaps
// outlines to the pixel grid for aliased text.
func hintingFor(desc atlas.FontDescriptor) font.Hinting {
	if desc.AntiAlias {
		return font.HintingNone
	}
	return font.HintingFull
}

// threshold snaps premultiplied white pixels in r to opaque or transparent.
func threshold(img *image.RGBA, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := img.Pix[img.PixOffset(r.Min.X, y):img.PixOffset(r.Max.X, y)]
		for i := 0; i < len(row); i += 4 {
			v := uint8(0)
			if row[i+3] >= 0x80 {
				v = 0xFF
			}
			row[i], row[i+1], row[i+2], row[i+3] = v, v, v, v
		}
	}
}

// fixedToFloat64 converts fixed.Int26_6 to float64.
func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}

// floatToFixed converts float64 to fixed.Int26_6, rounding to nearest.
func floatToFixed(x float64) fixed.Int26_6 {
	if x < 0 {
		return fixed.Int26_6(x*64 - 0.5)
	}
	return fixed.Int26_6(x*64 + 0.5)
}
