package atlas

import "sync"

// CacheOption configures a Cache or a Bounded cache.
type CacheOption func(*cacheConfig)

type cacheConfig struct {
	mode       BlockMode
	locker     sync.Locker
	selectFace FaceSelector
	fallback   rune
	onEvict    func(*Page)
}

func defaultCacheConfig() cacheConfig {
	return cacheConfig{
		mode:       BlockModeUnicode,
		selectFace: ConfiguredFace,
		fallback:   DefaultFallbackRune,
		onEvict:    (*Page).Release,
	}
}

// WithBlockMode selects how code points are routed to pages.
// Default: BlockModeUnicode.
func WithBlockMode(mode BlockMode) CacheOption {
	return func(c *cacheConfig) {
		c.mode = mode
	}
}

// WithLocker sets the lock guarding the page map. Pass NoLock{} when every
// lookup already happens on one goroutine. Default: a sync.Mutex.
func WithLocker(l sync.Locker) CacheOption {
	return func(c *cacheConfig) {
		c.locker = l
	}
}

// WithFaceSelector sets the policy choosing the font descriptor per block.
// Default: ConfiguredFace.
func WithFaceSelector(f FaceSelector) CacheOption {
	return func(c *cacheConfig) {
		if f != nil {
			c.selectFace = f
		}
	}
}

// WithFallbackRune sets the code point rendered in place of unsupported
// glyphs. Default: U+FFFD.
func WithFallbackRune(r rune) CacheOption {
	return func(c *cacheConfig) {
		c.fallback = r
	}
}

// WithEvictHandler sets the function a Bounded cache calls with each evicted
// page. The default releases the page texture immediately; programs that
// batch draws across lookups can defer the release until the batch is
// submitted. Ignored by Cache, which never evicts.
func WithEvictHandler(f func(*Page)) CacheOption {
	return func(c *cacheConfig) {
		if f != nil {
			c.onEvict = f
		}
	}
}

// NoLock is a sync.Locker that does nothing.
type NoLock struct{}

func (NoLock) Lock()   {}
func (NoLock) Unlock() {}
