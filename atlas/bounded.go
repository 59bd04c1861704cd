package atlas

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/gogpu/glyphfont/internal/lru"
)

// ErrInvalidLimit is returned by NewBounded for a page limit below one.
var ErrInvalidLimit = errors.New("atlas: page limit must be at least 1")

// Bounded is a Cache that holds at most a fixed number of pages, evicting
// the least recently used page when a new block is built.
//
// Evicted pages are handed to the evict handler, which by default releases
// their texture at once. A page returned by Lookup must therefore not be
// drawn after a later Lookup unless the handler defers the release.
type Bounded struct {
	cache   *Cache
	limit   int
	onEvict func(*Page)

	mu        sync.Mutex
	order     *lru.Order[BlockID]
	evictions atomic.Uint64
}

// NewBounded creates a cache holding at most limit pages.
func NewBounded(r Rasterizer, up TextureUploader, desc FontDescriptor, limit int, opts ...CacheOption) (*Bounded, error) {
	if limit < 1 {
		return nil, ErrInvalidLimit
	}
	cache, err := NewCache(r, up, desc, opts...)
	if err != nil {
		return nil, err
	}
	cfg := defaultCacheConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Bounded{
		cache:   cache,
		limit:   limit,
		onEvict: cfg.onEvict,
		order:   lru.New[BlockID](),
	}, nil
}

// Limit returns the maximum number of pages held.
func (b *Bounded) Limit() int {
	return b.limit
}

// Descriptor returns the configured font descriptor.
func (b *Bounded) Descriptor() FontDescriptor {
	return b.cache.Descriptor()
}

// Mode returns the block routing mode.
func (b *Bounded) Mode() BlockMode {
	return b.cache.Mode()
}

// Lookup returns the page holding cp and marks it most recently used.
func (b *Bounded) Lookup(cp rune) (*Page, GlyphRect, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	page, rect, err := b.cache.Lookup(cp)
	if err != nil {
		return nil, GlyphRect{}, err
	}
	b.touchLocked(page.Block())
	return page, rect, nil
}

// Prewarm builds the listed blocks. When more blocks than the limit are
// listed, the earliest ones are evicted again.
func (b *Bounded) Prewarm(ids ...BlockID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, id := range ids {
		if err := b.cache.Prewarm(id); err != nil {
			return err
		}
		b.touchLocked(id)
	}
	return nil
}

// Blocks returns the ids of the held pages in ascending order.
func (b *Bounded) Blocks() []BlockID {
	return b.cache.Blocks()
}

// Stats returns cache statistics including evictions.
func (b *Bounded) Stats() Stats {
	s := b.cache.Stats()
	s.Evictions = b.evictions.Load()
	return s
}

// Close releases every held page texture.
func (b *Bounded) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.order.Clear()
	return b.cache.Close()
}

// touchLocked records use of id and evicts pages beyond the limit.
// Must hold b.mu.
func (b *Bounded) touchLocked(id BlockID) {
	b.order.Touch(id)
	for b.order.Len() > b.limit {
		victim, _ := b.order.RemoveOldest()
		p := b.cache.remove(victim)
		if p == nil {
			continue
		}
		b.evictions.Add(1)
		slogger().Debug("atlas: page evicted", "block", victim.String())
		b.onEvict(p)
	}
}
