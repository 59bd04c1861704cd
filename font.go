package glyphfont

import (
	"iter"
	"unicode/utf16"

	"github.com/gogpu/glyphfont/atlas"
	"github.com/gogpu/glyphfont/rasterize"
)

// FontDescriptor describes the face a Font renders: family, style, pixel
// size, antialiasing and extra spacing added to every advance.
type FontDescriptor = atlas.FontDescriptor

// Font measures and draws text through a glyph atlas.
//
// Font is safe for concurrent use with the default locker, though page
// uploads happen on the goroutine that first uses a block, so GPU uploaders
// usually require a single render goroutine.
type Font struct {
	atlas atlas.Atlas
	mode  atlas.BlockMode
	opts  fontOptions
}

// NewFont creates a font for desc whose pages are uploaded through up.
func NewFont(desc FontDescriptor, up atlas.TextureUploader, opts ...Option) (*Font, error) {
	o := defaultFontOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.pageLimit < 0 {
		return nil, ErrInvalidPageLimit
	}
	if o.rasterizer == nil {
		o.rasterizer = rasterize.Default()
	}

	var (
		a   atlas.Atlas
		err error
	)
	if o.pageLimit > 0 {
		a, err = atlas.NewBounded(o.rasterizer, up, desc, o.pageLimit, o.cache...)
	} else {
		a, err = atlas.NewCache(o.rasterizer, up, desc, o.cache...)
	}
	if err != nil {
		return nil, err
	}

	f := &Font{
		atlas: a,
		mode:  a.Mode(),
		opts:  o,
	}
	if len(o.prewarm) > 0 {
		if err := a.Prewarm(o.prewarm...); err != nil {
			_ = a.Close()
			return nil, err
		}
	}

	Logger().Info("glyphfont: font created",
		"font", desc.String(), "mode", f.mode.String(), "page_limit", o.pageLimit)
	return f, nil
}

// Descriptor returns the font descriptor.
func (f *Font) Descriptor() FontDescriptor {
	return f.atlas.Descriptor()
}

// Atlas returns the underlying page cache.
func (f *Font) Atlas() atlas.Atlas {
	return f.atlas
}

// Stats returns page cache statistics.
func (f *Font) Stats() atlas.Stats {
	return f.atlas.Stats()
}

// Lookup returns the page holding cp and the placement of cp on it.
func (f *Font) Lookup(cp rune) (*atlas.Page, atlas.GlyphRect, error) {
	return f.atlas.Lookup(cp)
}

// Prewarm builds the listed blocks now.
func (f *Font) Prewarm(ids ...atlas.BlockID) error {
	return f.atlas.Prewarm(ids...)
}

// Close releases every page texture.
func (f *Font) Close() error {
	s := f.atlas.Stats()
	Logger().Info("glyphfont: font closed",
		"font", f.Descriptor().String(), "pages", s.Pages, "hits", s.Hits, "misses", s.Misses)
	return f.atlas.Close()
}

// MeasureWidth returns the sum of glyph widths of text. The result is
// additive: MeasureWidth(a+b) == MeasureWidth(a) + MeasureWidth(b) unless
// normalization is enabled.
func (f *Font) MeasureWidth(text string) (float64, error) {
	var w float64
	for cp := range f.codePoints(text) {
		_, r, err := f.atlas.Lookup(cp)
		if err != nil {
			return 0, err
		}
		w += r.Width
	}
	return w, nil
}

// MeasureHeight returns the tallest glyph height of text, 0 for empty text.
func (f *Font) MeasureHeight(text string) (float64, error) {
	var h float64
	for cp := range f.codePoints(text) {
		_, r, err := f.atlas.Lookup(cp)
		if err != nil {
			return 0, err
		}
		h = max(h, r.Height)
	}
	return h, nil
}

// CharWidth returns the width of a single code point.
func (f *Font) CharWidth(cp rune) (float64, error) {
	_, r, err := f.atlas.Lookup(cp)
	return r.Width, err
}

// CharHeight returns the height of a single code point.
func (f *Font) CharHeight(cp rune) (float64, error) {
	_, r, err := f.atlas.Lookup(cp)
	return r.Height, err
}

// LineHeight returns the tallest glyph height of the page holding 'a'.
func (f *Font) LineHeight() (float64, error) {
	return f.LineHeightOf('a')
}

// LineHeightOf returns the tallest glyph height of the page holding cp.
func (f *Font) LineHeightOf(cp rune) (float64, error) {
	p, _, err := f.atlas.Lookup(cp)
	if err != nil {
		return 0, err
	}
	return p.MaxHeight(), nil
}

// codePoints iterates over the code points of text in drawing order.
// Legacy mode yields UTF-16 code units, so characters outside the Basic
// Multilingual Plane become two surrogate lookups.
func (f *Font) codePoints(text string) iter.Seq[rune] {
	if f.opts.normalize {
		text = f.opts.form.String(text)
	}
	if f.mode == atlas.BlockModeLegacy {
		return func(yield func(rune) bool) {
			for _, u := range utf16.Encode([]rune(text)) {
				if !yield(rune(u)) {
					return
				}
			}
		}
	}
	return func(yield func(rune) bool) {
		for _, r := range text {
			if !yield(r) {
				return
			}
		}
	}
}
