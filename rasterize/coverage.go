package rasterize

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"

	"github.com/gogpu/glyphfont/atlas"
)

// Coverage reports which code points the fonts of a Library map to glyphs.
// Fonts are parsed with go-text/typesetting on first use and cached.
//
// Coverage is safe for concurrent use.
type Coverage struct {
	lib *Library

	mu    sync.Mutex
	fonts map[*Source]*font.Font
	// counts caches per-block coverage, keyed by source and block.
	counts map[coverageKey]int
}

type coverageKey struct {
	src   *Source
	block atlas.BlockID
}

// NewCoverage creates a coverage index over lib.
func NewCoverage(lib *Library) *Coverage {
	return &Coverage{
		lib:    lib,
		fonts:  make(map[*Source]*font.Font),
		counts: make(map[coverageKey]int),
	}
}

// Covers reports whether family in style has a glyph for cp.
func (c *Coverage) Covers(family string, style atlas.Style, cp rune) (bool, error) {
	src, err := c.lib.Lookup(family, style)
	if err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	f, err := c.fontLocked(src)
	if err != nil {
		return false, err
	}
	_, ok := f.NominalGlyph(cp)
	return ok, nil
}

// Count returns how many code points of block id family in style covers.
func (c *Coverage) Count(family string, style atlas.Style, id atlas.BlockID) (int, error) {
	src, err := c.lib.Lookup(family, style)
	if err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	key := coverageKey{src: src, block: id}
	if n, ok := c.counts[key]; ok {
		return n, nil
	}
	f, err := c.fontLocked(src)
	if err != nil {
		return 0, err
	}
	n := 0
	first := id.First()
	for cp := first; cp < first+atlas.BlockSize; cp++ {
		if _, ok := f.NominalGlyph(cp); ok {
			n++
		}
	}
	c.counts[key] = n
	return n, nil
}

// fontLocked returns the parsed go-text font of src. Must hold c.mu.
func (c *Coverage) fontLocked(src *Source) (*font.Font, error) {
	if f, ok := c.fonts[src]; ok {
		return f, nil
	}
	// ParseTTF returns a *Face which embeds the read-only *Font.
	face, err := font.ParseTTF(bytes.NewReader(src.Data))
	if err != nil {
		return nil, fmt.Errorf("rasterize: failed to parse cmap: %w", err)
	}
	c.fonts[src] = face.Font
	return face.Font, nil
}

// CoverageFace returns a FaceSelector that renders each block with the
// family covering most of its code points. The configured family is tried
// first, then chain in order; ties keep the earlier family. Families that
// are not registered are skipped. Choices are cached per block.
func CoverageFace(c *Coverage, chain ...string) atlas.FaceSelector {
	var (
		mu     sync.Mutex
		chosen = make(map[atlas.BlockID]string)
	)
	return func(id atlas.BlockID, desc atlas.FontDescriptor) atlas.FontDescriptor {
		mu.Lock()
		defer mu.Unlock()
		if family, ok := chosen[id]; ok {
			return desc.WithFamily(family)
		}

		best, bestCount := desc.Family, -1
		for _, family := range append([]string{desc.Family}, chain...) {
			n, err := c.Count(family, desc.Style, id)
			if err != nil {
				continue
			}
			if n > bestCount {
				best, bestCount = family, n
			}
		}
		chosen[id] = best
		return desc.WithFamily(best)
	}
}

// BlockScript returns the script of the first code point of block id that
// is not shared between scripts, or language.Common.
func BlockScript(id atlas.BlockID) language.Script {
	first := id.First()
	for cp := first; cp < first+atlas.BlockSize; cp++ {
		if s := language.LookupScript(cp); s != language.Common {
			return s
		}
	}
	return language.Common
}
