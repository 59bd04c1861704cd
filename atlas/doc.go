// Package atlas caches lazily rasterized glyph pages.
//
// Code points are grouped into blocks of 256 consecutive values. The first
// time any code point of a block is requested, the whole block is measured,
// shelf-packed and rendered into one PageSize x PageSize RGBA image, which is
// then uploaded once through a [TextureUploader]. The resulting [Page] is
// immutable: it records a [GlyphRect] for every code point of its block and
// the tallest glyph height seen while packing.
//
// # Cache
//
// A [Cache] maps block ids to pages and only ever grows:
//
//	c, err := atlas.NewCache(rasterizer, uploader, atlas.FontDescriptor{
//		Family:    "Go",
//		Size:      24,
//		AntiAlias: true,
//	})
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//
//	page, rect, err := c.Lookup('A')
//
// Failed builds are never cached, so a later lookup retries from scratch.
// A [Bounded] wrapper adds least-recently-used eviction for long running
// programs that walk many scripts.
//
// # Blocks
//
// [BlockModeUnicode] addresses the full Unicode range. [BlockModeLegacy]
// keeps only the low eight bits of the block number, the layout used by
// renderers that iterate text as UTF-16 code units.
package atlas
