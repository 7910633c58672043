package ui

import "sync"

// CardKey identifies one rendered card. Rendering depends on the movie,
// the cursor, the theme, and the terminal width, so all four are part
// of the key.
type CardKey struct {
	ID       int64
	Selected bool
	Dark     bool
	Width    int
}

// CardCache memoizes rendered cards so cursor movement does not re-wrap
// every overview on the page. The cache resets wholesale when full.
type CardCache struct {
	mu      sync.Mutex
	entries map[CardKey]string
	maxSize int
}

// NewCardCache creates a cache bounded at maxSize entries.
func NewCardCache(maxSize int) *CardCache {
	if maxSize < 1 {
		maxSize = 1
	}
	return &CardCache{
		entries: make(map[CardKey]string),
		maxSize: maxSize,
	}
}

// GetOrCompute returns the cached render or computes and stores it.
// Safe to call on a nil cache.
func (cc *CardCache) GetOrCompute(key CardKey, compute func() string) string {
	if cc == nil {
		return compute()
	}

	cc.mu.Lock()
	if content, ok := cc.entries[key]; ok {
		cc.mu.Unlock()
		return content
	}
	cc.mu.Unlock()

	content := compute()

	cc.mu.Lock()
	if len(cc.entries) >= cc.maxSize {
		cc.entries = make(map[CardKey]string)
	}
	cc.entries[key] = content
	cc.mu.Unlock()

	return content
}

// Len returns the number of cached renders.
func (cc *CardCache) Len() int {
	if cc == nil {
		return 0
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return len(cc.entries)
}

// Clear empties the cache. Call when the result set changes.
func (cc *CardCache) Clear() {
	if cc == nil {
		return
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.entries = make(map[CardKey]string)
}
