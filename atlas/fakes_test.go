package atlas

import (
	"errors"
	"image"
	"image/color"
	"sync"
)

// fakeRasterizer produces deterministic metrics and marks each glyph origin
// with a single opaque pixel.
type fakeRasterizer struct {
	mu          sync.Mutex
	advance     func(cp rune) float64
	height      func(cp rune) float64
	unsupported map[rune]bool
	failMeasure map[rune]error
	failRender  map[rune]error
	measured    []rune
	rendered    []rune
}

func newFakeRasterizer() *fakeRasterizer {
	return &fakeRasterizer{
		advance:     func(cp rune) float64 { return float64(8 + cp%5) },
		height:      func(rune) float64 { return 20 },
		unsupported: make(map[rune]bool),
		failMeasure: make(map[rune]error),
		failRender:  make(map[rune]error),
	}
}

func (f *fakeRasterizer) Measure(desc FontDescriptor, cp rune) (Metrics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.measured = append(f.measured, cp)
	if err := f.failMeasure[cp]; err != nil {
		return Metrics{}, err
	}
	if f.unsupported[cp] {
		return Metrics{}, &UnsupportedGlyphError{CodePoint: cp}
	}
	h := f.height(cp)
	return Metrics{Advance: f.advance(cp), Height: h, Ascent: h * 0.75}, nil
}

func (f *fakeRasterizer) Render(desc FontDescriptor, cp rune, dst *image.RGBA, x, y float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failRender[cp]; err != nil {
		return err
	}
	if f.unsupported[cp] {
		return &UnsupportedGlyphError{CodePoint: cp}
	}
	f.rendered = append(f.rendered, cp)
	dst.SetRGBA(int(x), int(y)-1, color.RGBA{255, 255, 255, 255})
	return nil
}

func (f *fakeRasterizer) renderCount(cp rune) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.rendered {
		if r == cp {
			n++
		}
	}
	return n
}

// fakeTexture records how often it was released.
type fakeTexture struct {
	id       int
	img      *image.RGBA
	released int
}

func (t *fakeTexture) Size() (int, int) {
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

func (t *fakeTexture) Release() { t.released++ }

type fakeUploader struct {
	textures []*fakeTexture
	fail     error
}

func (u *fakeUploader) Upload(img *image.RGBA) (Texture, error) {
	if u.fail != nil {
		return nil, u.fail
	}
	tex := &fakeTexture{id: len(u.textures), img: img}
	u.textures = append(u.textures, tex)
	return tex, nil
}

var errBoom = errors.New("boom")

func testDescriptor(size float64) FontDescriptor {
	return FontDescriptor{Family: "Test", Size: size, AntiAlias: true}
}
