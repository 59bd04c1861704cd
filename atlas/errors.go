package atlas

import (
	"errors"
	"fmt"

	"golang.org/x/text/unicode/runenames"
)

// Sentinel errors for the atlas package.
var (
	// ErrCacheClosed is returned by lookups on a closed cache.
	ErrCacheClosed = errors.New("atlas: cache is closed")

	// ErrNilRasterizer is returned when a cache is created without a rasterizer.
	ErrNilRasterizer = errors.New("atlas: rasterizer is nil")

	// ErrNilUploader is returned when a cache is created without an uploader.
	ErrNilUploader = errors.New("atlas: texture uploader is nil")
)

// UnsupportedGlyphError is returned by a Rasterizer that cannot produce a
// glyph for a code point. Page builds recover from it with a fallback glyph.
type UnsupportedGlyphError struct {
	CodePoint rune
}

func (e *UnsupportedGlyphError) Error() string {
	return "atlas: unsupported glyph " + describeRune(e.CodePoint)
}

// PageBuildError reports a page that could not be built. Nothing is cached
// for the block, so a later lookup retries the build.
type PageBuildError struct {
	Block     BlockID
	CodePoint rune   // code point being processed, -1 for upload failures
	Op        string // "measure", "render" or "upload"
	Err       error
}

func (e *PageBuildError) Error() string {
	if e.CodePoint < 0 {
		return fmt.Sprintf("atlas: build page %s: %s: %v", e.Block, e.Op, e.Err)
	}
	return fmt.Sprintf("atlas: build page %s: %s %s: %v", e.Block, e.Op, describeRune(e.CodePoint), e.Err)
}

func (e *PageBuildError) Unwrap() error {
	return e.Err
}

// GlyphNotInPageError is returned when a page is asked for a code point of
// another block.
type GlyphNotInPageError struct {
	CodePoint rune
	Page      BlockID
	Want      BlockID
}

func (e *GlyphNotInPageError) Error() string {
	return fmt.Sprintf("atlas: %s belongs to block %s, not page %s",
		describeRune(e.CodePoint), e.Want, e.Page)
}

// BlockRangeError is returned when a block id cannot be reached by any
// lookup in the cache's block mode.
type BlockRangeError struct {
	Block BlockID
	Mode  BlockMode
}

func (e *BlockRangeError) Error() string {
	return fmt.Sprintf("atlas: block %s out of range for %s mode (max %s)",
		e.Block, e.Mode, e.Mode.MaxBlock())
}

// describeRune formats a code point as "U+0041 'A' (LATIN CAPITAL LETTER A)".
func describeRune(r rune) string {
	name := runenames.Name(r)
	if name == "" {
		return fmt.Sprintf("U+%04X", r)
	}
	return fmt.Sprintf("U+%04X %q (%s)", r, r, name)
}
