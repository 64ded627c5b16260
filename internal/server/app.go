package server

import (
	"context"
	"fmt"
	"time"

	"taskboard/internal/cache"
	"taskboard/internal/config"
	"taskboard/internal/database"
	"taskboard/internal/handlers"
	"taskboard/internal/middleware"
	"taskboard/internal/monitoring"
	"taskboard/internal/services"
	"taskboard/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App owns the router and the background components that serve it.
type App struct {
	Router *gin.Engine

	cfg     *config.Config
	logger  *zap.Logger
	pool    *database.DatabasePool
	cache   *cache.MultiLevelCache
	warmer  *cache.CacheWarmer
	worker  *worker.Worker
	limiter *middleware.RateLimiter
	cancel  context.CancelFunc
}

// New wires services, cache and handlers. redisClient may be nil, in which
// case caching is in-process only and no background jobs run.
func New(cfg *config.Config, logger *zap.Logger, pool *database.DatabasePool, redisClient *redis.Client) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &App{cfg: cfg, logger: logger, pool: pool}

	var (
		taskService  services.TaskService  = services.NewTaskService()
		userService  services.UserService  = services.NewUserService()
		statsService services.StatsService = services.NewStatsService()
	)

	if cfg.Cache.Enabled {
		var redisCache *cache.RedisCache
		if redisClient != nil {
			redisCache = cache.NewRedisCacheWithClient(redisClient, &cache.CircuitBreakerConfig{
				MaxFailures:      5,
				Timeout:          30 * time.Second,
				HalfOpenMaxCalls: 3,
				OnStateChange: func(from, to cache.CircuitBreakerState) {
					logger.Warn("redis circuit breaker changed state",
						zap.Stringer("from", from), zap.Stringer("to", to))
				},
			})
		}
		app.cache = cache.NewMultiLevelCache(redisCache, cfg.Cache.LocalTTL)

		opts := services.CacheOptions{
			ListTTL:  cfg.Cache.ListTTL,
			StatsTTL: cfg.Cache.StatsTTL,
			Logger:   logger.Named("cache"),
		}
		jobs := services.CacheJobs(pool.DB, taskService, userService, statsService, opts)

		if cfg.Worker.Enabled && redisClient != nil {
			app.worker = worker.NewWorker(worker.WorkerConfig{
				RedisClient:  redisClient,
				Concurrency:  cfg.Worker.Concurrency,
				PollInterval: cfg.Worker.PollInterval,
				Queues:       cfg.Worker.Queues,
				Logger:       logger,
			})
			app.worker.RegisterHandler(worker.JobTypeCacheRefresh, worker.NewCacheRefreshHandler(app.cache, jobs))
			opts.Queue = worker.NewJobQueue(redisClient)
		}

		app.warmer = cache.NewCacheWarmer(app.cache, cfg.Cache.ListTTL/2, logger.Named("warmer"))
		for _, job := range jobs {
			app.warmer.AddJob(job)
		}

		taskService = services.NewCachedTaskService(taskService, app.cache, opts)
		userService = services.NewCachedUserService(userService, app.cache, opts)
		statsService = services.NewCachedStatsService(statsService, app.cache, opts)
	}

	health := monitoring.NewHealthChecker(3 * time.Second)
	health.Register("database", true, pool.HealthContext)
	if redisClient != nil {
		health.Register("redis", false, func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	if cfg.RateLimit.Enabled {
		app.limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMin, cfg.RateLimit.BurstSize, cfg.RateLimit.CleanupInterval)
	}

	tmpl, err := handlers.LoadTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	app.Router = NewRouter(cfg, logger, Handlers{
		Tasks:     handlers.NewTaskHandler(pool.DB, taskService, logger),
		Users:     handlers.NewUserHandler(pool.DB, userService, logger),
		Stats:     handlers.NewStatsHandler(pool.DB, statsService, logger),
		Dashboard: handlers.NewDashboardHandler(pool.DB, taskService, userService, statsService, logger),
		Health:    health,
	}, tmpl, app.limiter)

	return app, nil
}

// Start launches the background components. It does not block.
func (a *App) Start(ctx context.Context) {
	ctx, a.cancel = context.WithCancel(ctx)

	go a.pool.CollectPoolMetrics(ctx, 15*time.Second)

	if a.limiter != nil {
		go a.limiter.Run(ctx)
	}
	if a.warmer != nil {
		a.warmer.Start(ctx)
	}
	if a.worker != nil {
		a.worker.Start(a.cfg.Worker.Concurrency)
	}
}

// Stop halts background work. The database pool and the redis client belong
// to the caller.
func (a *App) Stop() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.worker != nil {
		a.worker.Stop()
	}
	if a.warmer != nil {
		a.warmer.Stop()
	}
	if a.cache != nil {
		a.logger.Info("background components stopped", zap.Float64("cache_hit_rate", a.cache.Metrics().HitRate()))
		return
	}
	a.logger.Info("background components stopped")
}
