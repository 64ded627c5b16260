package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// generationPrefix namespaces the invalidation counters kept next to
// cached values.
const generationPrefix = "gen:"

var (
	ErrCacheMiss = errors.New("cache miss")
	ErrCacheDown = errors.New("cache unavailable")
)

type RedisCache struct {
	client  *redis.Client
	breaker *CircuitBreaker
	ctx     context.Context
}

type CacheConfig struct {
	Addr         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Breaker      *CircuitBreakerConfig
}

func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Addr:         "localhost:6379",
		Password:     "",
		DB:           0,
		PoolSize:     10,
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

func NewRedisClient(config *CacheConfig) *redis.Client {
	if config == nil {
		config = DefaultCacheConfig()
	}

	return redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		MinIdleConns: config.MinIdleConns,
		MaxRetries:   config.MaxRetries,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	})
}

func NewRedisCache(config *CacheConfig) *RedisCache {
	if config == nil {
		config = DefaultCacheConfig()
	}
	return NewRedisCacheWithClient(NewRedisClient(config), config.Breaker)
}

// NewRedisCacheWithClient shares an existing client, e.g. with the job worker.
func NewRedisCacheWithClient(client *redis.Client, breaker *CircuitBreakerConfig) *RedisCache {
	return &RedisCache{
		client:  client,
		breaker: NewCircuitBreaker(breaker),
		ctx:     context.Background(),
	}
}

func (r *RedisCache) Client() *redis.Client {
	return r.client
}

func (r *RedisCache) Set(key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	return r.SetRaw(key, data, expiration)
}

func (r *RedisCache) SetRaw(key string, data []byte, expiration time.Duration) error {
	return r.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(r.ctx, 3*time.Second)
		defer cancel()

		if err := r.client.Set(ctx, key, data, expiration).Err(); err != nil {
			return fmt.Errorf("failed to set cache: %w", err)
		}
		return nil
	})
}

func (r *RedisCache) Get(key string, dest interface{}) error {
	data, err := r.GetRaw(key)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cached data: %w", err)
	}

	return nil
}

// GetRaw returns the stored bytes. A miss is not counted against the breaker.
func (r *RedisCache) GetRaw(key string) ([]byte, error) {
	data, _, err := r.GetRawTTL(key)
	return data, err
}

// GetRawTTL also reports how long the entry has left. The duration is zero
// when the key carries no expiry.
func (r *RedisCache) GetRawTTL(key string) ([]byte, time.Duration, error) {
	var (
		data []byte
		ttl  time.Duration
	)
	miss := false

	err := r.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(r.ctx, 3*time.Second)
		defer cancel()

		var (
			get  *redis.StringCmd
			pttl *redis.DurationCmd
		)
		_, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
			get = pipe.Get(ctx, key)
			pttl = pipe.PTTL(ctx, key)
			return nil
		})
		if errors.Is(err, redis.Nil) {
			miss = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get from cache: %w", err)
		}

		data, err = get.Bytes()
		if err != nil {
			return fmt.Errorf("failed to get from cache: %w", err)
		}
		if remaining := pttl.Val(); remaining > 0 {
			ttl = remaining
		}
		return nil
	})

	switch {
	case errors.Is(err, ErrCircuitBreakerOpen):
		return nil, 0, ErrCacheDown
	case err != nil:
		return nil, 0, err
	case miss:
		return nil, 0, ErrCacheMiss
	}
	return data, ttl, nil
}

func generationKey(key string) string {
	return generationPrefix + key
}

// Generation returns how many times key has been invalidated. Loaders read
// it before querying and hand it to SetRawIfGeneration.
func (r *RedisCache) Generation(key string) (int64, error) {
	var gen int64

	err := r.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(r.ctx, 3*time.Second)
		defer cancel()

		n, err := r.client.Get(ctx, generationKey(key)).Int64()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read generation: %w", err)
		}
		gen = n
		return nil
	})
	if errors.Is(err, ErrCircuitBreakerOpen) {
		return 0, ErrCacheDown
	}
	return gen, err
}

// SetRawIfGeneration stores data only while key's generation still equals
// gen. The generation key is watched so an invalidation that lands between
// the check and the write aborts the write.
func (r *RedisCache) SetRawIfGeneration(key string, data []byte, expiration time.Duration, gen int64) (bool, error) {
	stored := false

	err := r.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(r.ctx, 3*time.Second)
		defer cancel()

		genKey := generationKey(key)
		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			current, err := tx.Get(ctx, genKey).Int64()
			if err != nil && !errors.Is(err, redis.Nil) {
				return err
			}
			if current != gen {
				return nil
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, data, expiration)
				return nil
			})
			if err == nil {
				stored = true
			}
			return err
		}, genKey)

		if errors.Is(err, redis.TxFailedErr) {
			stored = false
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to set cache: %w", err)
		}
		return nil
	})
	if errors.Is(err, ErrCircuitBreakerOpen) {
		return false, ErrCacheDown
	}
	return stored, err
}

// Delete removes keys and bumps their generations in one transaction.
func (r *RedisCache) Delete(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	return r.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(r.ctx, 3*time.Second)
		defer cancel()

		_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, keys...)
			for _, key := range keys {
				pipe.Incr(ctx, generationKey(key))
			}
			return nil
		})
		return err
	})
}

// DeletePattern removes every key matching a glob pattern. SCAN keeps the
// server responsive where KEYS would block it.
func (r *RedisCache) DeletePattern(pattern string) error {
	return r.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(r.ctx, 10*time.Second)
		defer cancel()

		var cursor uint64
		for {
			keys, next, err := r.client.Scan(ctx, cursor, pattern, 100).Result()
			if err != nil {
				return fmt.Errorf("failed to scan keys for pattern %s: %w", pattern, err)
			}
			if len(keys) > 0 {
				if _, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
					for _, key := range keys {
						if strings.HasPrefix(key, generationPrefix) {
							continue
						}
						pipe.Del(ctx, key)
						pipe.Incr(ctx, generationKey(key))
					}
					return nil
				}); err != nil {
					return err
				}
			}
			if next == 0 {
				return nil
			}
			cursor = next
		}
	})
}

func (r *RedisCache) Exists(key string) (bool, error) {
	ctx, cancel := context.WithTimeout(r.ctx, 3*time.Second)
	defer cancel()

	result, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}

	return result > 0, nil
}

func (r *RedisCache) Health() error {
	ctx, cancel := context.WithTimeout(r.ctx, 2*time.Second)
	defer cancel()

	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Stats() map[string]interface{} {
	poolStats := r.client.PoolStats()

	return map[string]interface{}{
		"breaker":       r.breaker.GetStats(),
		"pool_hits":     poolStats.Hits,
		"pool_misses":   poolStats.Misses,
		"pool_timeouts": poolStats.Timeouts,
		"pool_total":    poolStats.TotalConns,
		"pool_idle":     poolStats.IdleConns,
		"pool_stale":    poolStats.StaleConns,
	}
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
