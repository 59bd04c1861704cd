package gpu

import (
	"encoding/binary"
	"image/color"
	"math"

	"github.com/gogpu/glyphfont"
	"github.com/gogpu/gputypes"
)

// quadVertexStride is the byte stride per vertex in the glyph quad pipeline.
// Layout per vertex:
//
//	position  (vec2<f32>) = 8 bytes  (location 0)
//	tex_coord (vec2<f32>) = 8 bytes  (location 1)
//	color     (vec4<f32>) = 16 bytes (location 2), premultiplied
//
// Total = 32 bytes per vertex.
const quadVertexStride = 32

// quadUniformSize is the byte size of the viewport uniform:
// viewport (vec2<f32>) = 8 bytes + 8 bytes padding.
const quadUniformSize = 16

// maxQuadsPerBatch keeps every index of a batch within uint16 range.
const maxQuadsPerBatch = (math.MaxUint16 + 1) / 4

// quadVertexLayout returns the vertex buffer layout matching VertexInput in
// glyph_quad.wgsl.
func quadVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: quadVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},  // tex_coord
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2}, // color
			},
		},
	}
}

// buildQuadVertexData serializes quads into raw vertex bytes. Each quad
// produces 4 vertices x 32 bytes = 128 bytes.
func buildQuadVertexData(quads []glyphfont.Quad) []byte {
	if len(quads) == 0 {
		return nil
	}
	data := make([]byte, len(quads)*4*quadVertexStride)
	off := 0
	for _, q := range quads {
		x0, y0 := q.DstX, q.DstY
		x1, y1 := q.DstX+q.DstW, q.DstY+q.DstH
		u0, v0, u1, v1 := q.Corners()
		c := premultiplied(q.Color)

		// Vertex 0: top-left
		writeQuadVertex(data[off:], x0, y0, u0, v0, c)
		off += quadVertexStride
		// Vertex 1: top-right
		writeQuadVertex(data[off:], x1, y0, u1, v0, c)
		off += quadVertexStride
		// Vertex 2: bottom-right
		writeQuadVertex(data[off:], x1, y1, u1, v1, c)
		off += quadVertexStride
		// Vertex 3: bottom-left
		writeQuadVertex(data[off:], x0, y1, u0, v1, c)
		off += quadVertexStride
	}
	return data
}

// writeQuadVertex writes a single vertex into buf.
func writeQuadVertex(buf []byte, x, y, u, v float32, c [4]float32) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(x))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(y))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(u))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(v))
	for i, ch := range c {
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(ch))
	}
}

// generateQuadIndices generates index data for numQuads quads using the
// pattern 0,1,2, 2,3,0 (two triangles per quad).
func generateQuadIndices(numQuads int) []uint16 {
	indices := make([]uint16, numQuads*6)
	for i := 0; i < numQuads; i++ {
		base := i * 6
		vertex := uint16(i * 4) //nolint:gosec // numQuads is bounded by maxQuadsPerBatch

		indices[base+0] = vertex + 0
		indices[base+1] = vertex + 1
		indices[base+2] = vertex + 2
		indices[base+3] = vertex + 2
		indices[base+4] = vertex + 3
		indices[base+5] = vertex + 0
	}
	return indices
}

// buildQuadIndexData serializes quad indices into raw bytes.
func buildQuadIndexData(numQuads int) []byte {
	indices := generateQuadIndices(numQuads)
	data := make([]byte, len(indices)*2)
	for i, idx := range indices {
		binary.LittleEndian.PutUint16(data[i*2:], idx)
	}
	return data
}

// makeViewportUniform creates the 16-byte uniform holding the target size.
func makeViewportUniform(w, h uint32) []byte {
	buf := make([]byte, quadUniformSize)
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(float32(w)))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(float32(h)))
	// Padding bytes 8..15 remain zero.
	return buf
}

// premultiplied converts a straight-alpha color to premultiplied floats.
func premultiplied(c color.NRGBA) [4]float32 {
	a := float32(c.A) / 255
	return [4]float32{
		float32(c.R) / 255 * a,
		float32(c.G) / 255 * a,
		float32(c.B) / 255 * a,
		a,
	}
}
