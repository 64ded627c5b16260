package services

import (
	"taskboard/internal/cache"
	"taskboard/internal/models"

	"gorm.io/gorm"
)

type CachedStatsService struct {
	statsService StatsService
	cacheSupport
}

var _ StatsService = (*CachedStatsService)(nil)

func NewCachedStatsService(statsService StatsService, c cache.Cache, opts CacheOptions) *CachedStatsService {
	return &CachedStatsService{
		statsService: statsService,
		cacheSupport: newCacheSupport(c, opts),
	}
}

func (s *CachedStatsService) GetStats(db *gorm.DB) (models.Stats, error) {
	var cached models.Stats
	token, hit := s.lookup(cache.KeyStats, &cached)
	if hit {
		return cached, nil
	}

	stats, err := s.statsService.GetStats(db)
	if err != nil {
		return stats, err
	}

	s.store(cache.KeyStats, token, stats, s.opts.StatsTTL)
	return stats, nil
}
