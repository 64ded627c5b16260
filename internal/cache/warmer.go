package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Loader produces the value to cache under a key.
type Loader func(ctx context.Context) (interface{}, error)

type WarmupJob struct {
	Key  string
	TTL  time.Duration
	Load Loader
}

// ErrStale reports that the key was invalidated while Load ran, so the
// loaded value was dropped.
var ErrStale = errors.New("cache key invalidated during load")

// Refresh loads the job's value and stores it unless a write invalidated the
// key in the meantime.
func (j WarmupJob) Refresh(ctx context.Context, c Cache) error {
	token := c.Token(j.Key)

	value, err := j.Load(ctx)
	if err != nil {
		return fmt.Errorf("load %s: %w", j.Key, err)
	}

	stored, err := c.SetIfCurrent(j.Key, token, value, j.TTL)
	if err != nil {
		return err
	}
	if !stored {
		return ErrStale
	}
	return nil
}

// CacheWarmer fills the cache on start and then on every interval so the
// first request after a deploy or an expiry does not pay for the query.
type CacheWarmer struct {
	cache    Cache
	jobs     []WarmupJob
	interval time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}

	lastRun  time.Time
	warmed   int
	failures int
}

func NewCacheWarmer(cache Cache, interval time.Duration, logger *zap.Logger) *CacheWarmer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheWarmer{
		cache:    cache,
		interval: interval,
		logger:   logger,
	}
}

func (cw *CacheWarmer) AddJob(job WarmupJob) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.jobs = append(cw.jobs, job)
}

func (cw *CacheWarmer) Start(ctx context.Context) {
	cw.mu.Lock()
	if cw.running {
		cw.mu.Unlock()
		return
	}
	ctx, cw.cancel = context.WithCancel(ctx)
	cw.done = make(chan struct{})
	cw.running = true
	cw.mu.Unlock()

	cw.logger.Info("starting cache warmer", zap.Int("jobs", len(cw.snapshot())), zap.Duration("interval", cw.interval))

	go func() {
		defer close(cw.done)

		cw.Warm(ctx)
		if cw.interval <= 0 {
			<-ctx.Done()
			return
		}

		ticker := time.NewTicker(cw.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cw.Warm(ctx)
			}
		}
	}()
}

func (cw *CacheWarmer) Stop() {
	cw.mu.Lock()
	if !cw.running {
		cw.mu.Unlock()
		return
	}
	cw.running = false
	cancel, done := cw.cancel, cw.done
	cw.mu.Unlock()

	cancel()
	<-done
	cw.logger.Info("cache warmer stopped")
}

// Warm runs every job once. A failing loader is logged and skipped.
func (cw *CacheWarmer) Warm(ctx context.Context) int {
	warmed := 0
	failed := 0
	for _, job := range cw.snapshot() {
		if ctx.Err() != nil {
			break
		}

		err := job.Refresh(ctx, cw.cache)
		switch {
		case errors.Is(err, ErrStale):
			cw.logger.Debug("cache warmup skipped, key invalidated", zap.String("key", job.Key))
		case err != nil:
			failed++
			cw.logger.Warn("cache warmup failed", zap.String("key", job.Key), zap.Error(err))
		default:
			warmed++
		}
	}

	cw.mu.Lock()
	cw.lastRun = time.Now()
	cw.warmed += warmed
	cw.failures += failed
	cw.mu.Unlock()

	cw.logger.Debug("cache warmed", zap.Int("warmed", warmed), zap.Int("failed", failed))
	return warmed
}

func (cw *CacheWarmer) snapshot() []WarmupJob {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	jobs := make([]WarmupJob, len(cw.jobs))
	copy(jobs, cw.jobs)
	return jobs
}

func (cw *CacheWarmer) GetStats() map[string]interface{} {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	return map[string]interface{}{
		"running":  cw.running,
		"jobs":     len(cw.jobs),
		"warmed":   cw.warmed,
		"failures": cw.failures,
		"last_run": cw.lastRun,
	}
}
