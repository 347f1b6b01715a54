package inference

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/couchcryptid/hazard-trust-engine/internal/domain"
	"github.com/couchcryptid/hazard-trust-engine/internal/engine"
	"github.com/couchcryptid/hazard-trust-engine/internal/observability"
)

// CachedScorer wraps an ImageScorer with an in-memory LRU cache keyed by
// image content and description, so re-submitted or duplicated images do
// not hit the inference service twice.
type CachedScorer struct {
	inner   engine.ImageScorer
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedScorer creates a cache decorator around an image scorer.
func NewCachedScorer(inner engine.ImageScorer, maxEntries int, metrics *observability.Metrics) *CachedScorer {
	return &CachedScorer{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

func (c *CachedScorer) ScoreImage(ctx context.Context, img domain.ImageData, description string) (float64, float64, error) {
	key := cacheKey(img.Data, description)
	if scores, ok := c.cache.get(key); ok {
		c.metrics.InferenceCache.WithLabelValues("hit").Inc()
		return scores.alignment, scores.quality, nil
	}
	c.metrics.InferenceCache.WithLabelValues("miss").Inc()

	alignment, quality, err := c.inner.ScoreImage(ctx, img, description)
	if err != nil {
		return 0, 0, err
	}
	c.cache.put(key, imageScores{alignment: alignment, quality: quality})
	return alignment, quality, nil
}

func cacheKey(data []byte, description string) string {
	h := sha256.New()
	h.Write(data)
	h.Write([]byte{0})
	h.Write([]byte(description))
	return hex.EncodeToString(h.Sum(nil))
}

type imageScores struct {
	alignment float64
	quality   float64
}

// lruCache is a simple thread-safe LRU cache for image scores.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value imageScores
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (imageScores, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return imageScores{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value imageScores) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
	e.prev = nil
	e.next = nil
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	evicted := c.tail
	c.remove(evicted)
	delete(c.entries, evicted.key)
}
