package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

type Cache interface {
	Set(key string, value interface{}, ttl time.Duration) error
	Get(key string, dest interface{}) error
	// Token snapshots the invalidation state of key. Take it before loading
	// a value and pass it to SetIfCurrent.
	Token(key string) Token
	// SetIfCurrent stores value unless key was invalidated after token was
	// taken. It reports whether the value was stored.
	SetIfCurrent(key string, token Token, value interface{}, ttl time.Duration) (bool, error)
	Delete(keys ...string) error
	DeletePattern(pattern string) error
	Stats() map[string]interface{}
	Health() error
	Close() error
}

var _ Cache = (*MultiLevelCache)(nil)

type Token struct {
	epoch     uint64
	local     uint64
	remote    int64
	hasRemote bool
}

// MultiLevelCache reads through a short-lived in-process L1 and an optional
// Redis L2. L1 entries never outlive localTTL so that other replicas' writes
// become visible quickly.
type MultiLevelCache struct {
	l1       *MemoryCache
	l2       *RedisCache
	localTTL time.Duration
	metrics  *CacheMetrics

	// mu orders L1 writes against invalidations. gens counts per-key
	// invalidations and epoch counts pattern deletes.
	mu    sync.Mutex
	gens  map[string]uint64
	epoch uint64
}

func NewMultiLevelCache(redisCache *RedisCache, localTTL time.Duration) *MultiLevelCache {
	if localTTL <= 0 {
		localTTL = 30 * time.Second
	}
	return &MultiLevelCache{
		l1:       NewMemoryCache(),
		l2:       redisCache,
		localTTL: localTTL,
		metrics:  NewCacheMetrics(),
		gens:     make(map[string]uint64),
	}
}

func (c *MultiLevelCache) localExpiry(ttl time.Duration) time.Duration {
	if ttl < c.localTTL {
		return ttl
	}
	return c.localTTL
}

func (c *MultiLevelCache) Set(key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	c.l1.Set(key, data, c.localExpiry(ttl))
	c.metrics.RecordSet()

	if c.l2 != nil {
		if err := c.l2.SetRaw(key, data, ttl); err != nil {
			c.metrics.RecordError(LevelRedis)
			return err
		}
	}

	return nil
}

func (c *MultiLevelCache) Token(key string) Token {
	c.mu.Lock()
	token := Token{epoch: c.epoch, local: c.gens[key]}
	c.mu.Unlock()

	if c.l2 != nil {
		if gen, err := c.l2.Generation(key); err == nil {
			token.remote, token.hasRemote = gen, true
		}
	}
	return token
}

func (c *MultiLevelCache) currentLocked(key string, token Token) bool {
	return c.epoch == token.epoch && c.gens[key] == token.local
}

// SetIfCurrent writes L2 first under a watched generation, then L1 under mu.
// When Redis could not report a generation the value stays in L1 only.
func (c *MultiLevelCache) SetIfCurrent(key string, token Token, value interface{}, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("failed to marshal value: %w", err)
	}

	var l2Err error
	if c.l2 != nil && token.hasRemote {
		stored, err := c.l2.SetRawIfGeneration(key, data, ttl, token.remote)
		switch {
		case err != nil:
			c.metrics.RecordError(LevelRedis)
			l2Err = err
		case !stored:
			return false, nil
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.currentLocked(key, token) {
		return false, l2Err
	}
	c.l1.Set(key, data, c.localExpiry(ttl))
	c.metrics.RecordSet()
	return true, l2Err
}

func (c *MultiLevelCache) Get(key string, dest interface{}) error {
	if data, found := c.l1.Get(key); found {
		c.metrics.RecordHit(LevelMemory)
		return json.Unmarshal(data, dest)
	}
	c.metrics.RecordMiss(LevelMemory, c.l2 == nil)

	if c.l2 == nil {
		return ErrCacheMiss
	}

	c.mu.Lock()
	token := Token{epoch: c.epoch, local: c.gens[key]}
	c.mu.Unlock()

	data, remaining, err := c.l2.GetRawTTL(key)
	switch {
	case errors.Is(err, ErrCacheMiss):
		c.metrics.RecordMiss(LevelRedis, true)
		return ErrCacheMiss
	case err != nil:
		c.metrics.RecordError(LevelRedis)
		return err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.metrics.RecordError(LevelRedis)
		return fmt.Errorf("failed to unmarshal cached data: %w", err)
	}

	c.metrics.RecordHit(LevelRedis)

	// The L1 copy must not outlive the Redis entry, nor land after an
	// invalidation that raced with the read.
	ttl := c.localTTL
	if remaining > 0 && remaining < ttl {
		ttl = remaining
	}
	c.mu.Lock()
	if c.currentLocked(key, token) {
		c.l1.Set(key, data, ttl)
	}
	c.mu.Unlock()
	return nil
}

func (c *MultiLevelCache) Delete(keys ...string) error {
	c.mu.Lock()
	for _, key := range keys {
		c.gens[key]++
	}
	c.l1.Delete(keys...)
	c.mu.Unlock()
	c.metrics.RecordDelete()

	if c.l2 != nil {
		return c.l2.Delete(keys...)
	}

	return nil
}

func (c *MultiLevelCache) DeletePattern(pattern string) error {
	c.mu.Lock()
	c.epoch++
	c.l1.DeletePattern(pattern)
	c.mu.Unlock()
	c.metrics.RecordDelete()

	if c.l2 != nil {
		return c.l2.DeletePattern(pattern)
	}

	return nil
}

func (c *MultiLevelCache) Metrics() *CacheMetrics {
	return c.metrics
}

func (c *MultiLevelCache) Stats() map[string]interface{} {
	stats := map[string]interface{}{
		"l1":       c.l1.Stats(),
		"metrics":  c.metrics.GetStats(),
		"hit_rate": c.metrics.HitRate(),
	}

	if c.l2 != nil {
		stats["l2"] = c.l2.Stats()
	}

	return stats
}

func (c *MultiLevelCache) Health() error {
	if c.l2 != nil {
		return c.l2.Health()
	}

	return nil
}

func (c *MultiLevelCache) Close() error {
	if c.l2 != nil {
		return c.l2.Close()
	}

	return nil
}
