// Package rasterize renders glyphs for the atlas package from OpenType
// fonts.
//
// [OpenType] implements atlas.Rasterizer on golang.org/x/image/font/opentype.
// It resolves font families through a [Library], which ships with the Go
// fonts ("Go" and "Go Mono" in four styles) and accepts any TrueType or
// OpenType file:
//
//	lib := rasterize.NewLibrary()
//	if err := lib.RegisterFile("Noto Sans", atlas.StyleNormal, "NotoSans-Regular.ttf"); err != nil {
//		return err
//	}
//	r := rasterize.NewOpenType(lib)
//
// [Coverage] answers which code points a family can draw, using the cmap
// parser of github.com/go-text/typesetting. [CoverageFace] turns it into an
// atlas.FaceSelector that picks, per block, the family of a fallback chain
// covering the block best.
package rasterize
