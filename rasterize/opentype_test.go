package rasterize

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/glyphfont/atlas"
)

func goDescriptor(size float64, aa bool) atlas.FontDescriptor {
	return atlas.FontDescriptor{Family: "Go", Size: size, AntiAlias: aa}
}

func TestOpenTypeMeasure(t *testing.T) {
	r := NewOpenType(nil)
	defer r.Close()
	desc := goDescriptor(24, true)

	a, err := r.Measure(desc, 'A')
	if err != nil {
		t.Fatalf("Measure('A') error = %v", err)
	}
	if a.Advance <= 0 || a.Advance > 24 {
		t.Errorf("Advance = %v, want in (0, 24]", a.Advance)
	}
	if a.Ascent <= 0 || a.Ascent >= a.Height {
		t.Errorf("Ascent = %v, Height = %v", a.Ascent, a.Height)
	}

	g, err := r.Measure(desc, 'g')
	if err != nil {
		t.Fatal(err)
	}
	if g.Height != a.Height || g.Ascent != a.Ascent {
		t.Errorf("'g' box %v/%v differs from 'A' box %v/%v", g.Height, g.Ascent, a.Height, a.Ascent)
	}

	i, _ := r.Measure(desc, 'i')
	w, _ := r.Measure(desc, 'W')
	if i.Advance >= w.Advance {
		t.Errorf("'i' advance %v >= 'W' advance %v", i.Advance, w.Advance)
	}
}

func TestOpenTypeMeasureScalesWithSize(t *testing.T) {
	r := NewOpenType(nil)
	small, _ := r.Measure(goDescriptor(12, true), 'M')
	large, _ := r.Measure(goDescriptor(48, true), 'M')
	if large.Advance <= small.Advance*3 {
		t.Errorf("48px advance %v not ~4x 12px advance %v", large.Advance, small.Advance)
	}
}

func TestOpenTypeUnsupported(t *testing.T) {
	r := NewOpenType(nil)
	_, err := r.Measure(goDescriptor(16, true), 0x4E2D)
	var ue *atlas.UnsupportedGlyphError
	if !errors.As(err, &ue) || ue.CodePoint != 0x4E2D {
		t.Errorf("Measure(U+4E2D) error = %v, want *UnsupportedGlyphError", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, 64, 64))
	if err := r.Render(goDescriptor(16, true), 0x4E2D, dst, 4, 40); !errors.As(err, &ue) {
		t.Errorf("Render(U+4E2D) error = %v, want *UnsupportedGlyphError", err)
	}

	if _, err := r.Measure(goDescriptor(16, true), atlas.DefaultFallbackRune); err != nil {
		t.Errorf("Measure(fallback) error = %v, want notdef metrics", err)
	}
}

func TestOpenTypeNotdefRune(t *testing.T) {
	r := NewOpenType(nil, WithNotdefRune(0x4E2D))
	if _, err := r.Measure(goDescriptor(16, true), 0x4E2D); err != nil {
		t.Errorf("Measure(notdef rune) error = %v", err)
	}
}

func TestOpenTypeUnknownFamily(t *testing.T) {
	r := NewOpenType(nil)
	desc := goDescriptor(16, true)
	desc.Family = "Comic Sans"
	if _, err := r.Measure(desc, 'A'); !errors.Is(err, ErrUnknownFamily) {
		t.Errorf("Measure() error = %v, want ErrUnknownFamily", err)
	}
}

func TestOpenTypeRender(t *testing.T) {
	tests := []struct {
		name string
		aa   bool
	}{
		{"antialiased", true},
		{"aliased", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewOpenType(nil)
			dst := image.NewRGBA(image.Rect(0, 0, 64, 64))
			if err := r.Render(goDescriptor(32, tt.aa), 'W', dst, 8, 40); err != nil {
				t.Fatalf("Render() error = %v", err)
			}

			opaque, partial := 0, 0
			for i := 0; i < len(dst.Pix); i += 4 {
				r, a := dst.Pix[i], dst.Pix[i+3]
				if r != a {
					t.Fatalf("pixel %d not premultiplied white: r=%d a=%d", i/4, r, a)
				}
				switch {
				case a == 0xFF:
					opaque++
				case a > 0:
					partial++
				}
			}
			if opaque == 0 {
				t.Error("no opaque pixels rendered")
			}
			if !tt.aa && partial != 0 {
				t.Errorf("aliased render has %d partial pixels", partial)
			}
			if tt.aa && partial == 0 {
				t.Error("antialiased render has no partial pixels")
			}
		})
	}
}

func TestOpenTypeRenderClipped(t *testing.T) {
	r := NewOpenType(nil)
	dst := image.NewRGBA(image.Rect(0, 0, 16, 16))
	// Mostly outside the image; must not panic.
	if err := r.Render(goDescriptor(32, false), 'W', dst, 10, 40); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
}

func TestOpenTypeAtlasPage(t *testing.T) {
	var uploaded *image.RGBA
	up := atlas.UploaderFunc(func(img *image.RGBA) (atlas.Texture, error) {
		uploaded = img
		return nopTexture{}, nil
	})
	c, err := atlas.NewCache(NewOpenType(nil), up, goDescriptor(24, true))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	p, rect, err := c.Lookup('A')
	if err != nil {
		t.Fatalf("Lookup('A') error = %v", err)
	}
	if rect.X < 4 || rect.Y < 4 {
		t.Errorf("Rect('A') = %v, want inside margin 4", rect)
	}
	if p.MaxHeight() != rect.Height {
		t.Errorf("MaxHeight() = %v, want uniform glyph height %v", p.MaxHeight(), rect.Height)
	}

	// The glyph box of 'A' holds ink.
	ink := false
	for y := int(rect.Y); y < int(rect.Bottom()); y++ {
		for x := int(rect.X); x < int(rect.Right()); x++ {
			if uploaded.RGBAAt(x, y).A > 0 {
				ink = true
			}
		}
	}
	if !ink {
		t.Error("no ink inside the glyph rectangle of 'A'")
	}
}

type nopTexture struct{}

func (nopTexture) Size() (int, int) { return atlas.PageSize, atlas.PageSize }
func (nopTexture) Release()         {}
