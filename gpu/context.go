package gpu

import (
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/gogpu/glyphfont"
	"github.com/gogpu/glyphfont/atlas"
	"github.com/gogpu/gpucontext"
)

// textureDestroyer is implemented by host textures that own GPU memory.
type textureDestroyer interface {
	Destroy()
}

// ContextUploader creates page textures through a gpucontext.TextureCreator,
// for hosts (e.g., gogpu) that do not expose hal directly.
type ContextUploader struct {
	creator gpucontext.TextureCreator

	mu   sync.Mutex
	live int
}

// NewContextUploader returns an uploader creating textures with c.
func NewContextUploader(c gpucontext.TextureCreator) (*ContextUploader, error) {
	if c == nil {
		return nil, ErrNilCreator
	}
	return &ContextUploader{creator: c}, nil
}

// NewContextUploaderFor returns an uploader using the texture creator of
// drawer, so its textures can be drawn by drawer.
func NewContextUploaderFor(drawer gpucontext.TextureDrawer) (*ContextUploader, error) {
	if drawer == nil {
		return nil, ErrNilCreator
	}
	return NewContextUploader(drawer.TextureCreator())
}

// Upload creates a host texture holding the pixels of img.
func (u *ContextUploader) Upload(img *image.RGBA) (atlas.Texture, error) {
	pix, w, h := packedPixels(img)
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("gpu: empty page image %v", img.Bounds())
	}
	tex, err := u.creator.NewTextureFromRGBA(w, h, pix)
	if err != nil {
		return nil, fmt.Errorf("gpu: NewTextureFromRGBA failed: %w", err)
	}

	// Page pixels are premultiplied; hosts that track this pick the
	// matching blend mode.
	if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
		pt.SetPremultiplied(true)
	}

	u.mu.Lock()
	u.live++
	u.mu.Unlock()
	return &ContextTexture{owner: u, tex: tex}, nil
}

// Live returns how many textures were created and not yet released.
func (u *ContextUploader) Live() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.live
}

// ContextTexture is a page texture owned by a gpucontext host.
type ContextTexture struct {
	owner    *ContextUploader
	tex      gpucontext.Texture
	released atomic.Bool
}

// Size returns the texture dimensions in pixels.
func (t *ContextTexture) Size() (width, height int) {
	return t.tex.Width(), t.tex.Height()
}

// Handle returns the host texture.
func (t *ContextTexture) Handle() gpucontext.Texture {
	return t.tex
}

// Released reports whether Release has run.
func (t *ContextTexture) Released() bool {
	return t.released.Load()
}

// Release destroys the host texture if it supports destruction.
// Later calls do nothing.
func (t *ContextTexture) Release() {
	if !t.released.CompareAndSwap(false, true) {
		return
	}
	if d, ok := t.tex.(textureDestroyer); ok {
		d.Destroy()
	}
	t.owner.mu.Lock()
	t.owner.live--
	t.owner.mu.Unlock()
}

// PageBlitter draws whole glyph pages through a gpucontext.TextureDrawer.
// gpucontext can only draw complete textures, so this is the page view of
// glyphfont's DrawPage; glyph-level drawing needs QuadPipeline.
type PageBlitter struct {
	drawer gpucontext.TextureDrawer
}

// NewPageBlitter returns a blitter drawing with d.
func NewPageBlitter(d gpucontext.TextureDrawer) *PageBlitter {
	return &PageBlitter{drawer: d}
}

// DrawPage draws page p with its top-left corner at (x, y).
func (b *PageBlitter) DrawPage(p *atlas.Page, x, y float32) error {
	tex, ok := p.Texture().(*ContextTexture)
	if !ok {
		return ErrForeignTexture
	}
	if tex.Released() {
		return ErrTextureReleased
	}
	glyphfont.Logger().Debug("gpu: page blit", "block", p.Block().String(), "x", x, "y", y)
	return b.drawer.DrawTexture(tex.tex, x, y)
}

// DrawQuad implements glyphfont.DrawDriver for whole-page quads, as emitted
// by Font.DrawPage. Sub-rectangle quads cannot be expressed through
// gpucontext and return an error.
func (b *PageBlitter) DrawQuad(q glyphfont.Quad) error {
	tex, ok := q.Texture.(*ContextTexture)
	if !ok {
		return ErrForeignTexture
	}
	if tex.Released() {
		return ErrTextureReleased
	}
	if q.U0 != 0 || q.V0 != 0 || q.U1 != 1 || q.V1 != 1 {
		return fmt.Errorf("gpu: PageBlitter draws whole pages only, got uv (%g,%g)+(%g,%g)",
			q.U0, q.V0, q.U1, q.V1)
	}
	return b.drawer.DrawTexture(tex.tex, q.DstX, q.DstY)
}
