package atlas

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
)

// Atlas is the lookup surface shared by Cache and Bounded.
type Atlas interface {
	// Lookup returns the page holding cp and the rectangle of cp,
	// building the page on first use.
	Lookup(cp rune) (*Page, GlyphRect, error)

	// Prewarm builds the listed blocks ahead of use.
	Prewarm(ids ...BlockID) error

	// Descriptor returns the configured font descriptor.
	Descriptor() FontDescriptor

	// Mode returns the block routing mode.
	Mode() BlockMode

	// Stats returns cache statistics.
	Stats() Stats

	// Close releases every page texture.
	Close() error
}

// Stats holds cache counters.
type Stats struct {
	Hits      uint64 // lookups answered by a built page
	Misses    uint64 // lookups that triggered a build
	Builds    uint64 // successful page builds
	Failures  uint64 // failed page builds
	Evictions uint64 // pages dropped by a Bounded cache
	Pages     int    // pages currently held
}

// HitRate returns hits / (hits + misses), or 0 before the first lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Cache maps block ids to pages, building pages on first lookup.
// Pages are never evicted; memory grows with the number of blocks used.
//
// Cache is safe for concurrent use with the default locker.
type Cache struct {
	builder    *Builder
	desc       FontDescriptor
	mode       BlockMode
	selectFace FaceSelector

	mu     sync.Locker
	pages  map[BlockID]*Page
	closed bool

	hits     atomic.Uint64
	misses   atomic.Uint64
	builds   atomic.Uint64
	failures atomic.Uint64
}

// NewCache creates an empty cache for desc.
func NewCache(r Rasterizer, up TextureUploader, desc FontDescriptor, opts ...CacheOption) (*Cache, error) {
	if r == nil {
		return nil, ErrNilRasterizer
	}
	if up == nil {
		return nil, ErrNilUploader
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	cfg := defaultCacheConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.locker == nil {
		cfg.locker = &sync.Mutex{}
	}

	return &Cache{
		builder:    NewBuilder(r, up, cfg.mode, cfg.fallback),
		desc:       desc,
		mode:       cfg.mode,
		selectFace: cfg.selectFace,
		mu:         cfg.locker,
		pages:      make(map[BlockID]*Page),
	}, nil
}

// Descriptor returns the configured font descriptor.
func (c *Cache) Descriptor() FontDescriptor {
	return c.desc
}

// Mode returns the block routing mode.
func (c *Cache) Mode() BlockMode {
	return c.mode
}

// Lookup returns the page holding cp and the rectangle of cp. On a miss the
// page is built synchronously; a failed build leaves the cache unchanged.
func (c *Cache) Lookup(cp rune) (*Page, GlyphRect, error) {
	page, err := c.acquire(BlockOf(cp, c.mode))
	if err != nil {
		return nil, GlyphRect{}, err
	}
	rect, err := page.Rect(cp)
	if err != nil {
		return nil, GlyphRect{}, err
	}
	return page, rect, nil
}

// Prewarm builds every listed block that is not built yet. It stops at the
// first failure. Ids beyond the block mode's range return *BlockRangeError
// before anything is built.
func (c *Cache) Prewarm(ids ...BlockID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCacheClosed
	}
	for _, id := range ids {
		if id > c.mode.MaxBlock() {
			return &BlockRangeError{Block: id, Mode: c.mode}
		}
	}
	for _, id := range ids {
		if _, ok := c.pages[id]; ok {
			continue
		}
		if _, err := c.buildLocked(id); err != nil {
			return err
		}
	}
	return nil
}

// Page returns the built page for id without building it.
func (c *Cache) Page(id BlockID) (*Page, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pages[id]
	return p, ok
}

// Blocks returns the ids of all built pages in ascending order.
func (c *Cache) Blocks() []BlockID {
	c.mu.Lock()
	ids := make([]BlockID, 0, len(c.pages))
	for id := range c.pages {
		ids = append(ids, id)
	}
	c.mu.Unlock()
	slices.Sort(ids)
	return ids
}

// Stats returns cache statistics.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	n := len(c.pages)
	c.mu.Unlock()
	return Stats{
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
		Builds:   c.builds.Load(),
		Failures: c.failures.Load(),
		Pages:    n,
	}
}

// Close releases every page texture. Later lookups return ErrCacheClosed.
// Close is idempotent.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	for id, p := range c.pages {
		p.Release()
		delete(c.pages, id)
	}
	return nil
}

// acquire returns the page for id, building it on a miss.
func (c *Cache) acquire(id BlockID) (*Page, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrCacheClosed
	}
	if p, ok := c.pages[id]; ok {
		c.hits.Add(1)
		return p, nil
	}
	c.misses.Add(1)
	return c.buildLocked(id)
}

// buildLocked builds and inserts the page for id. Must hold c.mu.
func (c *Cache) buildLocked(id BlockID) (*Page, error) {
	desc := c.selectFace(id, c.desc)
	if err := desc.Validate(); err != nil {
		c.failures.Add(1)
		return nil, &PageBuildError{Block: id, CodePoint: -1, Op: "select face", Err: err}
	}

	p, err := c.builder.Build(id, desc)
	if err != nil {
		c.failures.Add(1)
		slogger().Debug("atlas: page build failed", "block", id.String(), "err", err)
		return nil, err
	}
	c.pages[id] = p
	c.builds.Add(1)
	return p, nil
}

// remove drops the page for id from the map and returns it.
func (c *Cache) remove(id BlockID) *Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pages[id]
	if !ok {
		return nil
	}
	delete(c.pages, id)
	return p
}

// String returns a short description of the cache.
func (c *Cache) String() string {
	s := c.Stats()
	return fmt.Sprintf("atlas.Cache(%s, %d pages, %d hits, %d misses)", c.desc, s.Pages, s.Hits, s.Misses)
}
