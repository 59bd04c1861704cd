package glyphfont

import (
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/glyphfont/atlas"
)

// Option configures a Font during creation.
//
// Example:
//
//	f, err := glyphfont.NewFont(desc, uploader,
//		glyphfont.WithPrewarm(0),
//		glyphfont.WithPageLimit(32),
//	)
type Option func(*fontOptions)

// fontOptions holds optional configuration for Font creation.
type fontOptions struct {
	rasterizer atlas.Rasterizer
	prewarm    []atlas.BlockID
	pageLimit  int
	normalize  bool
	form       norm.Form
	cache      []atlas.CacheOption
}

// defaultFontOptions returns the default font options.
func defaultFontOptions() fontOptions {
	return fontOptions{
		rasterizer: nil, // rasterize.Default() if nil
		pageLimit:  0,   // unbounded
	}
}

// WithRasterizer sets the glyph rasterizer. The default is an OpenType
// rasterizer over the built-in Go font families.
func WithRasterizer(r atlas.Rasterizer) Option {
	return func(o *fontOptions) {
		o.rasterizer = r
	}
}

// WithPrewarm builds the listed blocks while the font is created, so the
// first draw of those scripts does not pay for rasterization.
//
//	glyphfont.WithPrewarm(0)    // Basic Latin and Latin-1
//	glyphfont.WithPrewarm(4, 5) // Cyrillic
func WithPrewarm(ids ...atlas.BlockID) Option {
	return func(o *fontOptions) {
		o.prewarm = append(o.prewarm, ids...)
	}
}

// WithPageLimit bounds the number of resident pages. When the limit is
// reached the least recently used page is evicted and its texture released.
// Zero means unbounded, which is the default.
func WithPageLimit(n int) Option {
	return func(o *fontOptions) {
		o.pageLimit = n
	}
}

// WithBlockMode selects how code points are routed to pages and how text is
// walked. atlas.BlockModeLegacy walks UTF-16 code units.
func WithBlockMode(mode atlas.BlockMode) Option {
	return func(o *fontOptions) {
		o.cache = append(o.cache, atlas.WithBlockMode(mode))
	}
}

// WithFaceSelector sets the policy choosing the font per block, e.g.
// atlas.LegacyFallbackFace("DEFAULT").
func WithFaceSelector(f atlas.FaceSelector) Option {
	return func(o *fontOptions) {
		o.cache = append(o.cache, atlas.WithFaceSelector(f))
	}
}

// WithFallbackRune sets the code point drawn for glyphs the font lacks.
func WithFallbackRune(r rune) Option {
	return func(o *fontOptions) {
		o.cache = append(o.cache, atlas.WithFallbackRune(r))
	}
}

// WithLocker sets the lock guarding the page map.
func WithLocker(l sync.Locker) Option {
	return func(o *fontOptions) {
		o.cache = append(o.cache, atlas.WithLocker(l))
	}
}

// WithEvictHandler sets the handler receiving pages evicted under
// WithPageLimit.
func WithEvictHandler(f func(*atlas.Page)) Option {
	return func(o *fontOptions) {
		o.cache = append(o.cache, atlas.WithEvictHandler(f))
	}
}

// WithNormalization applies a Unicode normalization form to text before it
// is measured or drawn. With norm.NFC, "e" followed by a combining acute
// accent is drawn as the single glyph "é".
func WithNormalization(form norm.Form) Option {
	return func(o *fontOptions) {
		o.normalize = true
		o.form = form
	}
}
