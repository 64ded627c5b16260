package worker

import (
	"context"
	"errors"
	"fmt"

	"taskboard/internal/cache"
)

// NewCacheRefreshHandler recomputes the value behind a cache key using the
// loader registered for it and stores the result.
func NewCacheRefreshHandler(c cache.Cache, jobs []cache.WarmupJob) JobHandler {
	byKey := make(map[string]cache.WarmupJob, len(jobs))
	for _, job := range jobs {
		byKey[job.Key] = job
	}

	return func(ctx context.Context, job *Job) error {
		key, _ := job.Payload["key"].(string)
		warm, ok := byKey[key]
		if !ok {
			return fmt.Errorf("no loader for cache key %q", key)
		}

		err := warm.Refresh(ctx, c)
		if errors.Is(err, cache.ErrStale) {
			// A newer write invalidated the key and queued its own refresh.
			return nil
		}
		return err
	}
}
