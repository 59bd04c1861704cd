package atlas

import (
	"errors"
	"image"
	"time"
)

// DefaultFallbackRune is drawn in place of code points the font cannot render.
const DefaultFallbackRune = '�'

// Builder rasterizes whole blocks into pages.
//
// Glyphs are packed on shelves: left to right starting at (margin, margin),
// wrapping to a new row when the next glyph would cross the right edge.
// Rows are never checked against the bottom edge; glyphs that land past it
// are clipped and a warning is logged.
type Builder struct {
	rasterizer Rasterizer
	uploader   TextureUploader
	mode       BlockMode
	fallback   rune
}

// NewBuilder creates a page builder. A fallback of -1 selects
// DefaultFallbackRune.
func NewBuilder(r Rasterizer, up TextureUploader, mode BlockMode, fallback rune) *Builder {
	if fallback < 0 {
		fallback = DefaultFallbackRune
	}
	return &Builder{
		rasterizer: r,
		uploader:   up,
		mode:       mode,
		fallback:   fallback,
	}
}

// Build measures, packs, renders and uploads every code point of block id.
// On error the image is discarded and no texture is created.
func (b *Builder) Build(id BlockID, desc FontDescriptor) (*Page, error) {
	start := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, PageSize, PageSize))
	page := &Page{block: id, mode: b.mode, desc: desc}

	margin := desc.Margin()
	x, y := margin, margin
	var rowHeight float64
	clipped := 0
	fallbacks := 0

	first := id.First()
	for i := range BlockSize {
		cp := first + rune(i)

		glyph, m, err := b.measure(desc, cp)
		if err != nil {
			return nil, &PageBuildError{Block: id, CodePoint: cp, Op: "measure", Err: err}
		}
		if glyph != cp {
			fallbacks++
		}

		width := m.Advance + desc.Spacing
		if x+width > PageSize {
			x = margin
			y += rowHeight + margin
			rowHeight = 0
		}
		rowHeight = max(rowHeight, m.Height)
		page.maxHeight = max(page.maxHeight, rowHeight)
		if y+m.Height > PageSize {
			clipped++
		}

		if err := b.render(desc, glyph, img, x, y+m.Ascent); err != nil {
			return nil, &PageBuildError{Block: id, CodePoint: cp, Op: "render", Err: err}
		}

		page.rects[i] = GlyphRect{X: x, Y: y, Width: width, Height: m.Height}
		x += width + margin
	}

	if fallbacks == BlockSize {
		slogger().Warn("atlas: font has no glyphs for block",
			"block", id.String(), "font", desc.String(), "fallback", describeRune(b.fallback))
	}
	if clipped > 0 {
		slogger().Warn("atlas: glyphs overflow page",
			"block", id.String(), "font", desc.String(), "clipped", clipped)
	}

	tex, err := b.uploader.Upload(img)
	if err != nil {
		return nil, &PageBuildError{Block: id, CodePoint: -1, Op: "upload", Err: err}
	}
	page.texture = tex

	slogger().Debug("atlas: page built",
		"block", id.String(),
		"font", desc.String(),
		"max_height", page.maxHeight,
		"fallbacks", fallbacks,
		"elapsed", time.Since(start))
	return page, nil
}

// measure returns the glyph to draw for cp and its metrics, substituting the
// fallback rune for unsupported code points.
func (b *Builder) measure(desc FontDescriptor, cp rune) (rune, Metrics, error) {
	m, err := b.rasterizer.Measure(desc, cp)
	if err == nil {
		return cp, m, nil
	}
	var unsupported *UnsupportedGlyphError
	if !errors.As(err, &unsupported) || cp == b.fallback {
		return cp, Metrics{}, err
	}
	m, err = b.rasterizer.Measure(desc, b.fallback)
	if err != nil {
		return cp, Metrics{}, err
	}
	return b.fallback, m, nil
}

// render draws glyph, retrying with the fallback rune if the rasterizer
// accepted the measurement but cannot draw it.
func (b *Builder) render(desc FontDescriptor, glyph rune, dst *image.RGBA, x, y float64) error {
	err := b.rasterizer.Render(desc, glyph, dst, x, y)
	var unsupported *UnsupportedGlyphError
	if err == nil || glyph == b.fallback || !errors.As(err, &unsupported) {
		return err
	}
	return b.rasterizer.Render(desc, b.fallback, dst, x, y)
}
