package atlas

import (
	"iter"
	"sync"
)

// Page is one built block: a texture and the placement of each of its
// BlockSize code points. A Page is immutable once returned by a Builder.
type Page struct {
	block     BlockID
	mode      BlockMode
	desc      FontDescriptor
	texture   Texture
	maxHeight float64
	rects     [BlockSize]GlyphRect

	releaseOnce sync.Once
}

// Block returns the block id of the page.
func (p *Page) Block() BlockID {
	return p.block
}

// Descriptor returns the font descriptor the page was rendered with.
// It differs from the cache descriptor when a FaceSelector substituted it.
func (p *Page) Descriptor() FontDescriptor {
	return p.desc
}

// Texture returns the uploaded page texture.
func (p *Page) Texture() Texture {
	return p.texture
}

// MaxHeight returns the tallest glyph height recorded on the page.
func (p *Page) MaxHeight() float64 {
	return p.maxHeight
}

// Contains reports whether cp is routed to this page.
func (p *Page) Contains(cp rune) bool {
	return BlockOf(cp, p.mode) == p.block
}

// Rect returns the placement of cp, or *GlyphNotInPageError when cp belongs
// to another block.
func (p *Page) Rect(cp rune) (GlyphRect, error) {
	if want := BlockOf(cp, p.mode); want != p.block {
		return GlyphRect{}, &GlyphNotInPageError{CodePoint: cp, Page: p.block, Want: want}
	}
	if cp < 0 {
		cp = 0
	}
	return p.rects[cp&(BlockSize-1)], nil
}

// Glyphs iterates over every code point of the page and its rectangle in
// ascending code point order.
func (p *Page) Glyphs() iter.Seq2[rune, GlyphRect] {
	return func(yield func(rune, GlyphRect) bool) {
		first := p.block.First()
		for i := range p.rects {
			if !yield(first+rune(i), p.rects[i]) {
				return
			}
		}
	}
}

// Release frees the page texture. It is safe to call more than once.
func (p *Page) Release() {
	p.releaseOnce.Do(func() {
		if p.texture != nil {
			p.texture.Release()
		}
	})
}
