package software

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/draw"

	"github.com/gogpu/glyphfont"
)

// Canvas is a DrawDriver compositing glyph quads onto an RGBA image.
//
// Page texels are sampled with nearest-neighbor filtering. The quad color
// tints the glyph coverage and the result is blended source-over.
type Canvas struct {
	dst  *image.RGBA
	clip image.Rectangle

	bound *Texture
	binds int
	quads int
	saves int
}

// NewCanvas creates a transparent canvas of the given size.
func NewCanvas(width, height int) *Canvas {
	return NewCanvasFrom(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// NewCanvasFrom creates a canvas drawing into dst.
func NewCanvasFrom(dst *image.RGBA) *Canvas {
	return &Canvas{dst: dst, clip: dst.Bounds()}
}

// Image returns the canvas pixels.
func (c *Canvas) Image() *image.RGBA {
	return c.dst
}

// Fill paints the whole canvas with col, ignoring the clip.
func (c *Canvas) Fill(col color.Color) {
	draw.Draw(c.dst, c.dst.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// SetClip restricts drawing to r.
func (c *Canvas) SetClip(r image.Rectangle) {
	c.clip = r.Intersect(c.dst.Bounds())
}

// Clip returns the current clip rectangle.
func (c *Canvas) Clip() image.Rectangle {
	return c.clip
}

// Binds returns how many times the bound texture changed.
func (c *Canvas) Binds() int {
	return c.binds
}

// Quads returns the number of quads drawn.
func (c *Canvas) Quads() int {
	return c.quads
}

// Saves returns how many times SaveState was called.
func (c *Canvas) Saves() int {
	return c.saves
}

// SaveState implements glyphfont.StateSaver. It saves the clip and the
// bound texture.
func (c *Canvas) SaveState() func() {
	c.saves++
	clip, bound := c.clip, c.bound
	return func() {
		c.clip, c.bound = clip, bound
	}
}

// DrawQuad implements glyphfont.DrawDriver.
func (c *Canvas) DrawQuad(q glyphfont.Quad) error {
	tex, ok := q.Texture.(*Texture)
	if !ok {
		return fmt.Errorf("%w: %T", ErrForeignTexture, q.Texture)
	}
	pix := tex.Image()
	if pix == nil {
		return ErrTextureReleased
	}
	if tex != c.bound {
		c.bound = tex
		c.binds++
	}
	c.quads++

	w, h := tex.Size()
	u0, v0, u1, v1 := q.Corners()
	src := image.Rect(
		roundInt(float64(u0)*float64(w)), roundInt(float64(v0)*float64(h)),
		roundInt(float64(u1)*float64(w)), roundInt(float64(v1)*float64(h)),
	)
	dst := image.Rect(
		roundInt(float64(q.DstX)), roundInt(float64(q.DstY)),
		roundInt(float64(q.DstX+q.DstW)), roundInt(float64(q.DstY+q.DstH)),
	)
	if src.Empty() || dst.Empty() {
		return nil
	}
	visible := dst.Intersect(c.clip)
	if visible.Empty() {
		return nil
	}

	// The page alpha is the glyph coverage; use it as the mask for the tint.
	var mask image.Image = pix
	mp := src.Min.Add(visible.Min.Sub(dst.Min))
	if src.Dx() != dst.Dx() || src.Dy() != dst.Dy() {
		scaled := image.NewRGBA(image.Rect(0, 0, dst.Dx(), dst.Dy()))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), pix, src, draw.Src, nil)
		mask = scaled
		mp = visible.Min.Sub(dst.Min)
	}
	draw.DrawMask(c.dst, visible, image.NewUniform(q.Color), image.Point{}, mask, mp, draw.Over)
	return nil
}

// SavePNG writes the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	return SavePNG(path, c.dst)
}

// SavePNG writes img to a PNG file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("software: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("software: encode %s: %w", path, err)
	}
	return f.Close()
}

func roundInt(x float64) int {
	return int(math.Round(x))
}
