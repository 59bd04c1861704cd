package ebiten

import (
	"image/color"
	"testing"

	"github.com/gogpu/glyphfont"
)

func TestQuadVertices(t *testing.T) {
	q := glyphfont.Quad{
		DstX: 10, DstY: 20, DstW: 8, DstH: 16,
		U0: 0.25, V0: 0.5, U1: 0.125, V1: 0.25,
		Color: color.NRGBA{R: 255, G: 0, B: 0, A: 255},
	}

	tests := []struct {
		name       string
		minX, minY int
		want       [4][4]float32 // DstX, DstY, SrcX, SrcY
	}{
		{
			name: "origin",
			want: [4][4]float32{
				{10, 20, 16, 32},
				{18, 20, 24, 32},
				{18, 36, 24, 48},
				{10, 36, 16, 48},
			},
		},
		{
			name: "offset bounds",
			minX: 100, minY: 200,
			want: [4][4]float32{
				{10, 20, 116, 232},
				{18, 20, 124, 232},
				{18, 36, 124, 248},
				{10, 36, 116, 248},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verts := quadVertices(q, tt.minX, tt.minY, 64, 64)
			for i, v := range verts {
				got := [4]float32{v.DstX, v.DstY, v.SrcX, v.SrcY}
				if got != tt.want[i] {
					t.Errorf("vertex %d = %v, want %v", i, got, tt.want[i])
				}
				if v.ColorR != 1 || v.ColorG != 0 || v.ColorA != 1 {
					t.Errorf("vertex %d color = %v,%v,%v,%v", i, v.ColorR, v.ColorG, v.ColorB, v.ColorA)
				}
			}
		})
	}
}

func TestQuadIndices(t *testing.T) {
	want := []uint16{0, 1, 2, 2, 3, 0}
	if len(quadIndices) != len(want) {
		t.Fatalf("len = %d", len(quadIndices))
	}
	for i := range want {
		if quadIndices[i] != want[i] {
			t.Errorf("quadIndices[%d] = %d, want %d", i, quadIndices[i], want[i])
		}
	}
}
