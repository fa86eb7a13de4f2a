package memory

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

const DefaultSize = 128

// TTLCache is a bounded LRU whose entries expire after a fixed ttl.
// Concurrent loads of the same key are collapsed into one.
type TTLCache struct {
	entries *lru.Cache
	ttl     time.Duration
	group   singleflight.Group

	mutex   sync.RWMutex
	nowFunc func() time.Time
}

type entry struct {
	value     interface{}
	expiresAt time.Time
}

func NewTTLCache(size int, ttl time.Duration) (*TTLCache, error) {
	if size <= 0 {
		size = DefaultSize
	}

	entries, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &TTLCache{entries: entries, ttl: ttl, nowFunc: time.Now}, nil
}

// SetNowFunc replaces the clock used for expiry.
func (c *TTLCache) SetNowFunc(nowFunc func() time.Time) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.nowFunc = nowFunc
}

func (c *TTLCache) now() time.Time {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.nowFunc()
}

// Get returns the live value for key. Expired entries are evicted.
func (c *TTLCache) Get(key string) (interface{}, bool) {
	cached, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}

	e := cached.(entry)
	if !c.now().Before(e.expiresAt) {
		c.entries.Remove(key)
		return nil, false
	}
	return e.value, true
}

func (c *TTLCache) Set(key string, value interface{}) {
	c.entries.Add(key, entry{value: value, expiresAt: c.now().Add(c.ttl)})
}

// GetOrLoad serves key from the cache or through load on a miss, storing
// the result. With refresh set the cached value is ignored and replaced.
// Load errors are returned and never cached.
func (c *TTLCache) GetOrLoad(key string, refresh bool, load func() (interface{}, error)) (interface{}, error) {
	if !refresh {
		if value, ok := c.Get(key); ok {
			return value, nil
		}
	}

	value, err, shared := c.group.Do(key, func() (interface{}, error) {
		value, err := load()
		if err != nil {
			return nil, err
		}
		c.Set(key, value)
		return value, nil
	})
	if shared {
		log.WithField("key", key).Debug("Shared in-flight cache load.")
	}
	return value, err
}

func (c *TTLCache) Len() int {
	return c.entries.Len()
}
