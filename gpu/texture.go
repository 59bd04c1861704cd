package gpu

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/glyphfont"
	"github.com/gogpu/glyphfont/atlas"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// pageFormat is the texel format of every page texture.
const pageFormat = gputypes.TextureFormatRGBA8Unorm

// HALUploader creates page textures on a wgpu/hal device.
//
// HALUploader is safe for concurrent use.
type HALUploader struct {
	device hal.Device
	queue  hal.Queue

	mu      sync.Mutex
	uploads int
	live    int
}

// NewHALUploader returns an uploader for device and queue.
func NewHALUploader(device hal.Device, queue hal.Queue) (*HALUploader, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	return &HALUploader{device: device, queue: queue}, nil
}

// NewHALUploaderFromProvider returns an uploader sharing the device of an
// external provider (e.g., gogpu). The provider must implement
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
func NewHALUploaderFromProvider(provider any) (*HALUploader, error) {
	device, queue, err := halFromProvider(provider)
	if err != nil {
		return nil, err
	}
	return NewHALUploader(device, queue)
}

// halFromProvider extracts the hal device and queue from a provider.
func halFromProvider(provider any) (hal.Device, hal.Queue, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, ErrNotHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNotHALProvider)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNotHALProvider)
	}
	return device, queue, nil
}

// Upload creates a texture sized to img and writes its pixels.
func (u *HALUploader) Upload(img *image.RGBA) (atlas.Texture, error) {
	pix, w, h := packedPixels(img)
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("gpu: empty page image %v", img.Bounds())
	}
	width, height := uint32(w), uint32(h) //nolint:gosec // page images are at most a few thousand pixels

	tex, err := u.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "glyphfont_page",
		Size:          hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        pageFormat,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create page texture: %w", err)
	}

	view, err := u.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "glyphfont_page_view",
		Format:        pageFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		u.device.DestroyTexture(tex)
		return nil, fmt.Errorf("create page texture view: %w", err)
	}

	err = u.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
		},
		pix,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  width * 4,
			RowsPerImage: height,
		},
		&hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
	)
	if err != nil {
		u.device.DestroyTextureView(view)
		u.device.DestroyTexture(tex)
		return nil, fmt.Errorf("write page texture: %w", err)
	}

	u.mu.Lock()
	u.uploads++
	u.live++
	u.mu.Unlock()

	glyphfont.Logger().Debug("gpu: page texture uploaded", "width", w, "height", h)
	return &Texture{owner: u, tex: tex, view: view, width: w, height: h}, nil
}

// Uploads returns how many textures were created.
func (u *HALUploader) Uploads() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.uploads
}

// Live returns how many textures were created and not yet released.
func (u *HALUploader) Live() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.live
}

// Texture is a page texture on a hal device.
type Texture struct {
	owner *HALUploader
	tex   hal.Texture
	view  hal.TextureView

	width, height int

	mu        sync.Mutex
	released  bool
	onRelease []func()
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (width, height int) {
	return t.width, t.height
}

// View returns the texture view used for sampling.
func (t *Texture) View() hal.TextureView {
	return t.view
}

// Released reports whether Release has run.
func (t *Texture) Released() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.released
}

// Release destroys resources that reference the texture, then the view and
// the texture itself. Later calls do nothing.
func (t *Texture) Release() {
	t.mu.Lock()
	if t.released {
		t.mu.Unlock()
		return
	}
	t.released = true
	hooks := t.onRelease
	t.onRelease = nil
	t.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	t.owner.device.DestroyTextureView(t.view)
	t.owner.device.DestroyTexture(t.tex)

	t.owner.mu.Lock()
	t.owner.live--
	t.owner.mu.Unlock()
}

// addReleaseHook registers fn to run before the texture is destroyed.
// It reports false if the texture is already released.
func (t *Texture) addReleaseHook(fn func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.released {
		return false
	}
	t.onRelease = append(t.onRelease, fn)
	return true
}

// packedPixels returns the pixels of img as tightly packed RGBA rows.
func packedPixels(img *image.RGBA) (pix []byte, w, h int) {
	b := img.Bounds()
	w, h = b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, 0, 0
	}
	rowLen := w * 4
	start := img.PixOffset(b.Min.X, b.Min.Y)
	if img.Stride == rowLen {
		return img.Pix[start : start+rowLen*h], w, h
	}
	pix = make([]byte, rowLen*h)
	for y := 0; y < h; y++ {
		off := start + y*img.Stride
		copy(pix[y*rowLen:], img.Pix[off:off+rowLen])
	}
	return pix, w, h
}
