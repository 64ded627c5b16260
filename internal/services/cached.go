package services

import (
	"context"
	"errors"
	"time"

	"taskboard/internal/cache"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RefreshQueue schedules background recomputation of cache keys.
type RefreshQueue interface {
	EnqueueRefresh(keys ...string) error
}

type CacheOptions struct {
	ListTTL  time.Duration
	StatsTTL time.Duration
	// Queue is optional; without it invalidated keys are refilled lazily.
	Queue  RefreshQueue
	Logger *zap.Logger
}

func (o CacheOptions) withDefaults() CacheOptions {
	if o.ListTTL <= 0 {
		o.ListTTL = 10 * time.Minute
	}
	if o.StatsTTL <= 0 {
		o.StatsTTL = time.Minute
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

type cacheSupport struct {
	cache cache.Cache
	opts  CacheOptions
}

func newCacheSupport(c cache.Cache, opts CacheOptions) cacheSupport {
	return cacheSupport{cache: c, opts: opts.withDefaults()}
}

// lookup fills dest on a hit. On a miss it returns the token that store
// needs, taken before the caller goes to the database.
func (s cacheSupport) lookup(key string, dest interface{}) (cache.Token, bool) {
	err := s.cache.Get(key, dest)
	if err == nil {
		return cache.Token{}, true
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.opts.Logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	return s.cache.Token(key), false
}

// store drops value when a write invalidated key after token was taken;
// the rows it holds may predate that write.
func (s cacheSupport) store(key string, token cache.Token, value interface{}, ttl time.Duration) {
	stored, err := s.cache.SetIfCurrent(key, token, value, ttl)
	if err != nil {
		s.opts.Logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
		return
	}
	if !stored {
		s.opts.Logger.Debug("cache write skipped, key invalidated during load", zap.String("key", key))
	}
}

// invalidate drops keys after a write so the next read sees the new rows,
// then asks the worker to recompute them.
func (s cacheSupport) invalidate(keys ...string) {
	if err := s.cache.Delete(keys...); err != nil {
		s.opts.Logger.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
	if s.opts.Queue == nil {
		return
	}
	if err := s.opts.Queue.EnqueueRefresh(keys...); err != nil {
		s.opts.Logger.Warn("failed to enqueue cache refresh", zap.Strings("keys", keys), zap.Error(err))
	}
}

// CacheJobs describes how to recompute every cached key from the database.
// The same list drives start-up warming and the worker's refresh jobs.
func CacheJobs(db *gorm.DB, tasks TaskService, users UserService, stats StatsService, opts CacheOptions) []cache.WarmupJob {
	opts = opts.withDefaults()

	return []cache.WarmupJob{
		{
			Key: cache.KeyTasksAll,
			TTL: opts.ListTTL,
			Load: func(ctx context.Context) (interface{}, error) {
				return tasks.GetTasks(db.WithContext(ctx))
			},
		},
		{
			Key: cache.KeyUsersAll,
			TTL: opts.ListTTL,
			Load: func(ctx context.Context) (interface{}, error) {
				return users.GetUsers(db.WithContext(ctx))
			},
		},
		{
			Key: cache.KeyStats,
			TTL: opts.StatsTTL,
			Load: func(ctx context.Context) (interface{}, error) {
				return stats.GetStats(db.WithContext(ctx))
			},
		},
	}
}
