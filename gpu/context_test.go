package gpu

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/glyphfont"
	"github.com/gogpu/glyphfont/atlas"
	"github.com/gogpu/gpucontext"
)

// mockHostTexture implements gpucontext.Texture plus the optional
// Destroy and SetPremultiplied methods.
type mockHostTexture struct {
	width, height int
	data          []byte
	premultiplied bool
	destroyed     int
}

func (m *mockHostTexture) Width() int              { return m.width }
func (m *mockHostTexture) Height() int             { return m.height }
func (m *mockHostTexture) Destroy()                { m.destroyed++ }
func (m *mockHostTexture) SetPremultiplied(v bool) { m.premultiplied = v }

// mockCreator implements gpucontext.TextureCreator.
type mockCreator struct {
	textures []*mockHostTexture
	failNext bool
}

func (m *mockCreator) NewTextureFromRGBA(width, height int, data []byte) (gpucontext.Texture, error) {
	if m.failNext {
		m.failNext = false
		return nil, errors.New("mock texture creation failed")
	}
	tex := &mockHostTexture{width: width, height: height, data: make([]byte, len(data))}
	copy(tex.data, data)
	m.textures = append(m.textures, tex)
	return tex, nil
}

// mockDrawer implements gpucontext.TextureDrawer.
type mockDrawer struct {
	creator *mockCreator
	drawn   []gpucontext.Texture
	x, y    float32
}

func (m *mockDrawer) DrawTexture(tex gpucontext.Texture, x, y float32) error {
	m.drawn = append(m.drawn, tex)
	m.x, m.y = x, y
	return nil
}

func (m *mockDrawer) TextureCreator() gpucontext.TextureCreator {
	if m.creator == nil {
		return nil
	}
	return m.creator
}

func TestContextUploader(t *testing.T) {
	creator := &mockCreator{}
	up, err := NewContextUploader(creator)
	if err != nil {
		t.Fatal(err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(1, 1, color.RGBA{255, 255, 255, 255})
	tex, err := up.Upload(img)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	ct := tex.(*ContextTexture)
	if w, h := ct.Size(); w != 2 || h != 2 {
		t.Errorf("Size() = %dx%d, want 2x2", w, h)
	}
	host := creator.textures[0]
	if !host.premultiplied {
		t.Error("host texture not marked premultiplied")
	}
	if len(host.data) != 16 || host.data[15] != 255 {
		t.Errorf("host data = %v", host.data)
	}
	if ct.Handle() != gpucontext.Texture(host) {
		t.Error("Handle() does not return the host texture")
	}
	if up.Live() != 1 {
		t.Errorf("Live() = %d, want 1", up.Live())
	}

	ct.Release()
	ct.Release()
	if host.destroyed != 1 {
		t.Errorf("Destroy called %d times, want 1", host.destroyed)
	}
	if up.Live() != 0 || !ct.Released() {
		t.Errorf("Live/Released = %d/%v after Release", up.Live(), ct.Released())
	}

	creator.failNext = true
	if _, err := up.Upload(img); err == nil {
		t.Error("Upload() error = nil when creator fails")
	}
}

func TestNewContextUploaderNil(t *testing.T) {
	if _, err := NewContextUploader(nil); !errors.Is(err, ErrNilCreator) {
		t.Errorf("NewContextUploader(nil) error = %v, want ErrNilCreator", err)
	}
	if _, err := NewContextUploaderFor(nil); !errors.Is(err, ErrNilCreator) {
		t.Errorf("NewContextUploaderFor(nil) error = %v, want ErrNilCreator", err)
	}
	if _, err := NewContextUploaderFor(&mockDrawer{}); !errors.Is(err, ErrNilCreator) {
		t.Errorf("NewContextUploaderFor(no creator) error = %v, want ErrNilCreator", err)
	}
}

func TestPageBlitter(t *testing.T) {
	drawer := &mockDrawer{creator: &mockCreator{}}
	up, err := NewContextUploaderFor(drawer)
	if err != nil {
		t.Fatal(err)
	}
	f, err := glyphfont.NewFont(glyphfont.FontDescriptor{Family: "Go", Size: 16, AntiAlias: true}, up)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	page, _, err := f.Lookup('A')
	if err != nil {
		t.Fatal(err)
	}
	if w, h := page.Texture().Size(); w != atlas.PageSize || h != atlas.PageSize {
		t.Errorf("page texture = %dx%d, want %d square", w, h, atlas.PageSize)
	}

	blitter := NewPageBlitter(drawer)
	if err := blitter.DrawPage(page, 5, 7); err != nil {
		t.Fatalf("DrawPage failed: %v", err)
	}
	if len(drawer.drawn) != 1 || drawer.x != 5 || drawer.y != 7 {
		t.Errorf("drawn = %d at (%v,%v)", len(drawer.drawn), drawer.x, drawer.y)
	}

	// Font.DrawPage emits one whole-page quad.
	if err := f.DrawPage(blitter, 'A', 1, 2, color.White); err != nil {
		t.Fatalf("Font.DrawPage failed: %v", err)
	}
	if len(drawer.drawn) != 2 {
		t.Errorf("drawn = %d, want 2", len(drawer.drawn))
	}

	// Glyph quads are sub-rectangles and cannot be blitted.
	if _, err := f.DrawString(blitter, "A", 0, 0, color.White); err == nil {
		t.Error("DrawString through PageBlitter error = nil, want error")
	}
}

func TestPageBlitterForeignTexture(t *testing.T) {
	blitter := NewPageBlitter(&mockDrawer{})
	if err := blitter.DrawQuad(glyphfont.Quad{}); !errors.Is(err, ErrForeignTexture) {
		t.Errorf("DrawQuad(nil texture) error = %v, want ErrForeignTexture", err)
	}
}
