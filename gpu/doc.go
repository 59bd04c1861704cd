// Package gpu puts glyph pages on the GPU.
//
// HALUploader turns finished page images into wgpu/hal textures; pass it
// to glyphfont.NewFont as the page uploader. QuadBatcher is a glyphfont.DrawDriver
// that collects glyph quads into per-texture batches, and QuadPipeline turns
// those batches into vertex data and indexed draws inside a host-owned
// render pass.
//
// For hosts that only expose gpucontext interfaces, ContextUploader creates
// page textures through a gpucontext.TextureCreator and PageBlitter draws
// whole pages through a gpucontext.TextureDrawer.
//
// Typical frame:
//
//	batcher.Reset()
//	font.DrawString(batcher, "Hello", 10, 10, color.White)
//	if err := pipeline.Prepare(batcher, width, height); err != nil { ... }
//	pipeline.Record(renderPass)
package gpu
