package software

import (
	"errors"
	"image"
	"sync"

	"github.com/gogpu/glyphfont/atlas"
	"github.com/gogpu/glyphfont/backend"
)

// Software backend errors.
var (
	// ErrTextureReleased is returned when drawing with a released texture.
	ErrTextureReleased = errors.New("software: texture is released")

	// ErrForeignTexture is returned when a quad carries a texture created by
	// another backend.
	ErrForeignTexture = errors.New("software: texture was not created by the software backend")
)

// Texture is an atlas page held in memory.
type Texture struct {
	owner  *Uploader
	width  int
	height int

	mu       sync.Mutex
	img      *image.RGBA
	released bool
}

// Size returns the texture dimensions in pixels. It stays valid after
// Release.
func (t *Texture) Size() (int, int) {
	return t.width, t.height
}

// Image returns the page pixels, premultiplied white glyph coverage, or nil
// once the texture is released.
func (t *Texture) Image() *image.RGBA {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.img
}

// Released reports whether Release was called.
func (t *Texture) Released() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.released
}

// Release drops the pixels and forgets the texture in its uploader.
// Drawing with it afterwards fails.
func (t *Texture) Release() {
	t.mu.Lock()
	if t.released {
		t.mu.Unlock()
		return
	}
	t.released = true
	t.img = nil
	t.mu.Unlock()

	if t.owner != nil {
		t.owner.forget(t)
	}
}

// Uploader creates in-memory textures. The uploaded image is kept as is;
// the atlas builder never touches it again.
type Uploader struct {
	mu      sync.Mutex
	live    map[*Texture]struct{}
	uploads int
}

// NewUploader creates an uploader.
func NewUploader() *Uploader {
	return &Uploader{live: make(map[*Texture]struct{})}
}

// Upload implements atlas.TextureUploader.
func (u *Uploader) Upload(img *image.RGBA) (atlas.Texture, error) {
	b := img.Bounds()
	t := &Texture{owner: u, img: img, width: b.Dx(), height: b.Dy()}
	u.mu.Lock()
	u.live[t] = struct{}{}
	u.uploads++
	u.mu.Unlock()
	return t, nil
}

func (u *Uploader) forget(t *Texture) {
	u.mu.Lock()
	delete(u.live, t)
	u.mu.Unlock()
}

// Uploads returns the number of textures created so far.
func (u *Uploader) Uploads() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.uploads
}

// Live returns the number of textures not yet released.
func (u *Uploader) Live() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.live)
}

// Textures returns the textures not yet released, in no particular order.
func (u *Uploader) Textures() []*Texture {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]*Texture, 0, len(u.live))
	for t := range u.live {
		out = append(out, t)
	}
	return out
}

// softwareBackend adapts the package to the backend registry.
type softwareBackend struct {
	initialized bool
}

// init registers the software backend on package import.
func init() {
	backend.Register(backend.BackendSoftware, func() backend.Backend {
		return &softwareBackend{}
	})
}

func (b *softwareBackend) Name() string { return backend.BackendSoftware }

func (b *softwareBackend) Init() error {
	b.initialized = true
	return nil
}

func (b *softwareBackend) Close() {
	b.initialized = false
}

func (b *softwareBackend) NewUploader() (atlas.TextureUploader, error) {
	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	return NewUploader(), nil
}
