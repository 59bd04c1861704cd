package ebiten

import "github.com/gogpu/glyphfont"

// quadIndices are the two triangles of a quad.
var quadIndices = []uint16{0, 1, 2, 2, 3, 0}

// quadVertex mirrors the fields of ebiten.Vertex.
type quadVertex struct {
	DstX, DstY float32
	SrcX, SrcY float32

	ColorR, ColorG, ColorB, ColorA float32
}

// quadVertices maps q onto a source image whose top-left texel is at
// (minX, minY) and whose size is w x h. Source coordinates are in texels;
// colors are straight alpha in [0, 1].
func quadVertices(q glyphfont.Quad, minX, minY, w, h int) [4]quadVertex {
	u0, v0, u1, v1 := q.Corners()
	sx0 := float32(minX) + u0*float32(w)
	sy0 := float32(minY) + v0*float32(h)
	sx1 := float32(minX) + u1*float32(w)
	sy1 := float32(minY) + v1*float32(h)

	x0, y0 := q.DstX, q.DstY
	x1, y1 := q.DstX+q.DstW, q.DstY+q.DstH

	r := float32(q.Color.R) / 255
	g := float32(q.Color.G) / 255
	b := float32(q.Color.B) / 255
	a := float32(q.Color.A) / 255

	return [4]quadVertex{
		{DstX: x0, DstY: y0, SrcX: sx0, SrcY: sy0, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
		{DstX: x1, DstY: y0, SrcX: sx1, SrcY: sy0, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
		{DstX: x1, DstY: y1, SrcX: sx1, SrcY: sy1, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
		{DstX: x0, DstY: y1, SrcX: sx0, SrcY: sy1, ColorR: r, ColorG: g, ColorB: b, ColorA: a},
	}
}
