package gpu

import "github.com/gogpu/glyphfont"

// Batch is a run of consecutive quads sampling the same texture.
type Batch struct {
	Texture *Texture
	Quads   []glyphfont.Quad
}

// QuadBatcher is a glyphfont.DrawDriver that records quads for a
// QuadPipeline. Consecutive quads on the same texture share a batch, so a
// string drawn from one page costs one texture bind.
//
// A QuadBatcher is not safe for concurrent use.
type QuadBatcher struct {
	batches []Batch
	bound   *Texture
	binds   int
	quads   int
	saves   int
}

// NewQuadBatcher returns an empty batcher.
func NewQuadBatcher() *QuadBatcher {
	return &QuadBatcher{}
}

// DrawQuad appends q to the current batch, starting a new batch when the
// texture changes or the batch is full.
func (b *QuadBatcher) DrawQuad(q glyphfont.Quad) error {
	tex, ok := q.Texture.(*Texture)
	if !ok || tex == nil {
		return ErrForeignTexture
	}
	if tex.Released() {
		return ErrTextureReleased
	}

	if n := len(b.batches); n > 0 {
		last := &b.batches[n-1]
		if last.Texture == tex && len(last.Quads) < maxQuadsPerBatch {
			last.Quads = append(last.Quads, q)
			b.quads++
			return nil
		}
	}
	if tex != b.bound {
		b.bound = tex
		b.binds++
	}
	b.batches = append(b.batches, Batch{Texture: tex, Quads: []glyphfont.Quad{q}})
	b.quads++
	return nil
}

// SaveState captures the bound texture; the returned function restores it.
func (b *QuadBatcher) SaveState() (restore func()) {
	saved := b.bound
	b.saves++
	return func() {
		b.bound = saved
	}
}

// Batches returns the recorded batches in draw order.
func (b *QuadBatcher) Batches() []Batch {
	return b.batches
}

// Len returns the number of recorded quads.
func (b *QuadBatcher) Len() int {
	return b.quads
}

// Binds returns how many times the bound texture changed.
func (b *QuadBatcher) Binds() int {
	return b.binds
}

// Saves returns how many times SaveState was called.
func (b *QuadBatcher) Saves() int {
	return b.saves
}

// Reset drops all recorded batches for the next frame.
func (b *QuadBatcher) Reset() {
	clear(b.batches)
	b.batches = b.batches[:0]
	b.bound = nil
	b.binds = 0
	b.quads = 0
	b.saves = 0
}
