package pattern

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/bitmatch/bits"
)

// Cache compiles each distinct pattern text once.
// It is safe for concurrent use. The zero value is ready to use.
type Cache[T bits.Word] struct {
	patterns sync.Map // cacheKey -> *Pattern[T]
	size     atomic.Int64
}

type cacheKey struct {
	text    string
	dynamic bool
}

// NewCache creates an empty cache.
func NewCache[T bits.Word]() *Cache[T] {
	return &Cache[T]{}
}

// Get returns the compiled full-width pattern for text.
// Failed compiles are not cached.
func (c *Cache[T]) Get(text string) (*Pattern[T], error) {
	key := cacheKey{text: text}
	if cached, ok := c.patterns.Load(key); ok {
		return cached.(*Pattern[T]), nil
	}

	p, err := Compile[T](text)
	if err != nil {
		Logger().Debug("pattern compile failed", zap.String("pattern", text), zap.Error(err))
		return nil, err
	}
	return c.store(key, p), nil
}

// GetDynamic returns the pattern for text compiled with CompileDynamic.
func (c *Cache[T]) GetDynamic(text string) *Pattern[T] {
	key := cacheKey{text: text, dynamic: true}
	if cached, ok := c.patterns.Load(key); ok {
		return cached.(*Pattern[T])
	}
	return c.store(key, CompileDynamic[T](text))
}

// Len returns the number of cached patterns.
func (c *Cache[T]) Len() int {
	return int(c.size.Load())
}

func (c *Cache[T]) store(key cacheKey, p *Pattern[T]) *Pattern[T] {
	actual, loaded := c.patterns.LoadOrStore(key, p)
	if !loaded {
		c.size.Add(1)
		Logger().Debug("pattern compiled",
			zap.String("pattern", key.text),
			zap.Bool("dynamic", key.dynamic),
			zap.Int("fields", p.NumFields()),
		)
	}
	return actual.(*Pattern[T])
}
