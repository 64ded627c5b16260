package cache

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	LevelMemory = "memory"
	LevelRedis  = "redis"
)

var cacheOperations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "taskboard_cache_operations_total",
		Help: "Cache lookups and writes by level and result",
	},
	[]string{"level", "result"},
)

type CacheMetrics struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Errors int64 `json:"errors"`

	Sets      int64 `json:"sets"`
	Deletes   int64 `json:"deletes"`
	StartTime int64 `json:"start_time"`
}

func NewCacheMetrics() *CacheMetrics {
	return &CacheMetrics{
		StartTime: time.Now().Unix(),
	}
}

// RecordHit counts a served read. Only the level that answered counts as a hit.
func (m *CacheMetrics) RecordHit(level string) {
	atomic.AddInt64(&m.Hits, 1)
	cacheOperations.WithLabelValues(level, "hit").Inc()
}

// RecordMiss counts a lookup a level could not answer. final marks the miss
// that sends the caller to the database.
func (m *CacheMetrics) RecordMiss(level string, final bool) {
	if final {
		atomic.AddInt64(&m.Misses, 1)
	}
	cacheOperations.WithLabelValues(level, "miss").Inc()
}

func (m *CacheMetrics) RecordError(level string) {
	atomic.AddInt64(&m.Errors, 1)
	cacheOperations.WithLabelValues(level, "error").Inc()
}

func (m *CacheMetrics) RecordSet() {
	atomic.AddInt64(&m.Sets, 1)
	cacheOperations.WithLabelValues(LevelMemory, "set").Inc()
}

func (m *CacheMetrics) RecordDelete() {
	atomic.AddInt64(&m.Deletes, 1)
	cacheOperations.WithLabelValues(LevelMemory, "delete").Inc()
}

func (m *CacheMetrics) GetStats() CacheMetrics {
	return CacheMetrics{
		Hits:      atomic.LoadInt64(&m.Hits),
		Misses:    atomic.LoadInt64(&m.Misses),
		Errors:    atomic.LoadInt64(&m.Errors),
		Sets:      atomic.LoadInt64(&m.Sets),
		Deletes:   atomic.LoadInt64(&m.Deletes),
		StartTime: atomic.LoadInt64(&m.StartTime),
	}
}

func (m *CacheMetrics) HitRate() float64 {
	hits := atomic.LoadInt64(&m.Hits)
	misses := atomic.LoadInt64(&m.Misses)
	total := hits + misses

	if total == 0 {
		return 0.0
	}

	return float64(hits) / float64(total) * 100.0
}

func (m *CacheMetrics) Reset() {
	atomic.StoreInt64(&m.Hits, 0)
	atomic.StoreInt64(&m.Misses, 0)
	atomic.StoreInt64(&m.Errors, 0)
	atomic.StoreInt64(&m.Sets, 0)
	atomic.StoreInt64(&m.Deletes, 0)
	atomic.StoreInt64(&m.StartTime, time.Now().Unix())
}
