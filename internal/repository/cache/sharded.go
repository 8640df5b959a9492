package cache

import (
	"hash/fnv"
	"sync"
	"time"
)

type shard struct {
	mu   sync.RWMutex
	data map[string]entry
}

// ShardedCache spreads sessions over several locks. Only worth it when
// many operators edit assignments at once; the plain Cache is the
// default.
type ShardedCache struct {
	shards []shard
	ttl    time.Duration
	now    func() time.Time

	ticker *time.Ticker
	stop   chan struct{}
}

type ShardedOption func(*ShardedCache)

func WithShards(n int) ShardedOption {
	return func(c *ShardedCache) {
		if n <= 0 {
			n = 16
		}
		c.shards = make([]shard, n)
		for i := range c.shards {
			c.shards[i] = shard{data: make(map[string]entry)}
		}
	}
}
func WithShardTTL(ttl time.Duration) ShardedOption { return func(c *ShardedCache) { c.ttl = ttl } }

func NewShardedCache(opts ...ShardedOption) *ShardedCache {
	c := &ShardedCache{now: time.Now, stop: make(chan struct{})}
	WithShards(16)(c)
	for _, o := range opts {
		o(c)
	}
	if c.ttl > 0 {
		c.ticker = time.NewTicker(c.ttl / 2)
		go func() {
			for {
				select {
				case <-c.ticker.C:
					c.purge()
				case <-c.stop:
					return
				}
			}
		}()
	}
	return c
}

func (c *ShardedCache) Close() {
	if c.ticker != nil {
		c.ticker.Stop()
	}
	close(c.stop)
}

func (c *ShardedCache) shardFor(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &c.shards[int(h.Sum32())%len(c.shards)]
}

func (c *ShardedCache) Put(key string, v any) {
	s := c.shardFor(key)
	e := entry{v: v}
	if c.ttl > 0 {
		e.exp = c.now().Add(c.ttl)
	}
	s.mu.Lock()
	s.data[key] = e
	s.mu.Unlock()
}

func (c *ShardedCache) Get(key string) (any, bool) {
	s := c.shardFor(key)
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.exp.IsZero() && c.now().After(e.exp) {
		s.mu.Lock()
		if cur, ok := s.data[key]; ok && cur.exp.Equal(e.exp) {
			delete(s.data, key)
		}
		s.mu.Unlock()
		return nil, false
	}
	return e.v, true
}

func (c *ShardedCache) Delete(key string) {
	s := c.shardFor(key)
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
}

func (c *ShardedCache) Snapshot() map[string]any {
	out := make(map[string]any)
	now := c.now()
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.RLock()
		for k, e := range s.data {
			if e.exp.IsZero() || now.Before(e.exp) {
				out[k] = e.v
			}
		}
		s.mu.RUnlock()
	}
	return out
}

func (c *ShardedCache) purge() {
	now := c.now()
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		for k, e := range s.data {
			if !e.exp.IsZero() && now.After(e.exp) {
				delete(s.data, k)
			}
		}
		s.mu.Unlock()
	}
}
