// Package glyphfont renders Unicode text from lazily built glyph atlases.
//
// # Overview
//
// A [Font] rasterizes glyphs on demand: the first time a code point of a
// 256-code-point block is used, the whole block is packed into one
// 1024x1024 RGBA page and uploaded as a texture. Afterwards every code point
// of that block is a map lookup away. Measurement and drawing work per code
// point; there is no kerning, shaping or bidirectional reordering.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/glyphfont"
//		"github.com/gogpu/glyphfont/backend/software"
//	)
//
//	f, err := glyphfont.NewFont(glyphfont.FontDescriptor{
//		Family:    "Go",
//		Size:      24,
//		AntiAlias: true,
//	}, software.NewUploader())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer f.Close()
//
//	canvas := software.NewCanvas(640, 480)
//	width, err := f.DrawString(canvas, "Привет, 世界", 10, 10, color.White)
//
// # Backends
//
// Pages are uploaded through an [atlas.TextureUploader] and drawn through a
// [DrawDriver], one textured quad per code point:
//
//   - backend/software: CPU images, used for tests and PNG output
//   - gpu: gogpu/wgpu HAL textures and a batched quad pipeline
//   - backend/ebiten: Ebitengine images and DrawTriangles
//
// Drivers that implement [StateSaver] get their render state saved before a
// string is drawn and restored afterwards.
//
// # Coordinate System
//
// Origin (0,0) at top-left, X increases right, Y increases down. Text is
// positioned by the top-left corner of its first glyph box.
package glyphfont
