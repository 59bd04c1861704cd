//go:build !noebiten

package ebiten

import (
	"errors"
	"image"
	"sync"
	"sync/atomic"

	"github.com/gogpu/glyphfont"
	"github.com/gogpu/glyphfont/atlas"
	"github.com/gogpu/glyphfont/backend"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	// ErrForeignTexture is returned when a quad references a texture that
	// was not created by an ebiten Uploader.
	ErrForeignTexture = errors.New("ebiten: texture was not created by this backend")

	// ErrTextureReleased is returned when drawing a released texture.
	ErrTextureReleased = errors.New("ebiten: texture already released")

	// ErrNilTarget is returned when drawing without a target image.
	ErrNilTarget = errors.New("ebiten: target image is nil")
)

// Uploader creates page textures as Ebitengine images.
type Uploader struct {
	mu      sync.Mutex
	uploads int
	live    int
}

// NewUploader returns an empty uploader.
func NewUploader() *Uploader {
	return &Uploader{}
}

// Upload copies img into a new Ebitengine image.
func (u *Uploader) Upload(img *image.RGBA) (atlas.Texture, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, errors.New("ebiten: empty page image")
	}
	out := ebiten.NewImageFromImageWithOptions(img, &ebiten.NewImageFromImageOptions{PreserveBounds: true})

	u.mu.Lock()
	u.uploads++
	u.live++
	u.mu.Unlock()
	return &Texture{owner: u, img: out, bounds: b}, nil
}

// Uploads returns how many textures were created.
func (u *Uploader) Uploads() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.uploads
}

// Live returns how many textures were created and not yet released.
func (u *Uploader) Live() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.live
}

// Texture is a page held in an Ebitengine image.
type Texture struct {
	owner    *Uploader
	img      *ebiten.Image
	bounds   image.Rectangle
	released atomic.Bool
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (width, height int) {
	return t.bounds.Dx(), t.bounds.Dy()
}

// Image returns the Ebitengine image backing the texture.
func (t *Texture) Image() *ebiten.Image {
	return t.img
}

// Released reports whether Release has run.
func (t *Texture) Released() bool {
	return t.released.Load()
}

// Release disposes the image. Later calls do nothing.
func (t *Texture) Release() {
	if !t.released.CompareAndSwap(false, true) {
		return
	}
	t.img.Dispose()
	t.owner.mu.Lock()
	t.owner.live--
	t.owner.mu.Unlock()
}

// Driver draws glyph quads onto an Ebitengine image. Call it from the
// game's Draw method.
type Driver struct {
	target *ebiten.Image
	opts   ebiten.DrawTrianglesOptions
	verts  [4]ebiten.Vertex

	bound *Texture
	binds int
	quads int
	saves int
}

// NewDriver returns a driver drawing onto target.
func NewDriver(target *ebiten.Image) *Driver {
	d := &Driver{target: target}
	d.opts.Filter = ebiten.FilterNearest
	d.opts.ColorScaleMode = ebiten.ColorScaleModeStraightAlpha
	return d
}

// SetTarget changes the image drawn onto, e.g. the screen of a new frame.
func (d *Driver) SetTarget(target *ebiten.Image) {
	d.target = target
}

// DrawQuad draws q with one DrawTriangles call.
func (d *Driver) DrawQuad(q glyphfont.Quad) error {
	if d.target == nil {
		return ErrNilTarget
	}
	tex, ok := q.Texture.(*Texture)
	if !ok || tex == nil {
		return ErrForeignTexture
	}
	if tex.Released() {
		return ErrTextureReleased
	}
	if tex != d.bound {
		d.bound = tex
		d.binds++
	}

	b := tex.bounds
	for i, v := range quadVertices(q, b.Min.X, b.Min.Y, b.Dx(), b.Dy()) {
		d.verts[i] = ebiten.Vertex{
			DstX: v.DstX, DstY: v.DstY,
			SrcX: v.SrcX, SrcY: v.SrcY,
			ColorR: v.ColorR, ColorG: v.ColorG, ColorB: v.ColorB, ColorA: v.ColorA,
		}
	}
	d.target.DrawTriangles(d.verts[:], quadIndices, tex.img, &d.opts)
	d.quads++
	return nil
}

// SaveState captures the bound texture; the returned function restores it.
func (d *Driver) SaveState() (restore func()) {
	saved := d.bound
	d.saves++
	return func() {
		d.bound = saved
	}
}

// Binds returns how many times the source texture changed.
func (d *Driver) Binds() int { return d.binds }

// Quads returns the number of quads drawn.
func (d *Driver) Quads() int { return d.quads }

// Saves returns how many times SaveState was called.
func (d *Driver) Saves() int { return d.saves }

// ebitenBackend adapts the package to the backend registry.
type ebitenBackend struct {
	initialized bool
}

// init registers the ebiten backend on package import.
func init() {
	backend.Register(backend.BackendEbiten, func() backend.Backend {
		return &ebitenBackend{}
	})
}

func (b *ebitenBackend) Name() string { return backend.BackendEbiten }

func (b *ebitenBackend) Init() error {
	b.initialized = true
	return nil
}

func (b *ebitenBackend) Close() {
	b.initialized = false
}

func (b *ebitenBackend) NewUploader() (atlas.TextureUploader, error) {
	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	return NewUploader(), nil
}
