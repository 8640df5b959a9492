package cache

import (
	"sync"
	"time"
)

// KV is the storage behind the session cache. Implemented by the plain
// Cache and by ShardedCache for dashboards with many concurrent orders.
type KV interface {
	Put(key string, v any)
	Get(key string) (any, bool)
	Delete(key string)
	Snapshot() map[string]any
}

type entry struct {
	v   any
	exp time.Time
}

type Cache struct {
	mu   sync.RWMutex
	data map[string]entry

	ttl       time.Duration
	noJanitor bool
	ticker    *time.Ticker
	stop      chan struct{}
	now       func() time.Time
}

type Option func(*Cache)

// WithTTL makes entries expire: an abandoned editing session is
// discarded after the TTL instead of lingering forever.
func WithTTL(ttl time.Duration) Option { return func(c *Cache) { c.ttl = ttl } }

// WithNoJanitor keeps expiry lazy (checked on Get/Snapshot only).
func WithNoJanitor() Option { return func(c *Cache) { c.noJanitor = true } }

func NewCache(opts ...Option) *Cache {
	c := &Cache{
		data: make(map[string]entry),
		stop: make(chan struct{}),
		now:  time.Now,
	}
	for _, o := range opts {
		o(c)
	}

	if c.ttl > 0 && !c.noJanitor {
		c.ticker = time.NewTicker(c.ttl / 2)
		go func() {
			for {
				select {
				case <-c.ticker.C:
					c.purgeExpired()
				case <-c.stop:
					return
				}
			}
		}()
	}
	return c
}

func (c *Cache) Close() {
	if c.ticker != nil {
		c.ticker.Stop()
	}
	close(c.stop)
}

func (c *Cache) Put(key string, v any) {
	e := entry{v: v}
	if c.ttl > 0 {
		e.exp = c.now().Add(c.ttl)
	}
	c.mu.Lock()
	c.data[key] = e
	c.mu.Unlock()
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.exp.IsZero() && c.now().After(e.exp) {
		c.Delete(key)
		return nil, false
	}
	return e.v, true
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.data, key)
	c.mu.Unlock()
}

func (c *Cache) purgeExpired() {
	now := c.now()
	c.mu.Lock()
	for k, e := range c.data {
		if !e.exp.IsZero() && now.After(e.exp) {
			delete(c.data, k)
		}
	}
	c.mu.Unlock()
}

func (c *Cache) Snapshot() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]any, len(c.data))
	now := c.now()
	for k, e := range c.data {
		if !e.exp.IsZero() && now.After(e.exp) {
			continue
		}
		out[k] = e.v
	}
	return out
}
