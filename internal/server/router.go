package server

import (
	"html/template"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/handlers"
	"taskboard/internal/middleware"
	"taskboard/internal/monitoring"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

type Handlers struct {
	Tasks     *handlers.TaskHandler
	Users     *handlers.UserHandler
	Stats     *handlers.StatsHandler
	Dashboard *handlers.DashboardHandler
	Health    *monitoring.HealthChecker
}

// NewRouter builds the engine with the middleware chain and every route.
// limiter may be nil, in which case the API is not rate limited.
func NewRouter(cfg *config.Config, logger *zap.Logger, h Handlers, tmpl *template.Template, limiter *middleware.RateLimiter) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(middleware.RecoveryWithLog(logger))
	router.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	router.Use(cors.New(corsConfig(cfg.Server.AllowedOrigins)))
	router.Use(middleware.SecurityHeaders())
	router.Use(monitoring.MetricsMiddleware())

	if tmpl != nil {
		router.SetHTMLTemplate(tmpl)
	}

	router.GET("/", h.Dashboard.Index)

	router.GET("/healthz", h.Health.HealthHandler())
	router.GET("/readyz", h.Health.ReadinessHandler())
	router.GET("/livez", monitoring.LivenessHandler())
	router.GET("/metrics", monitoring.MetricsHandler())

	api := router.Group("/api")
	if limiter != nil {
		api.Use(limiter.Middleware())
	}

	tasks := api.Group("/tasks")
	{
		tasks.GET("", h.Tasks.GetTasks)
		tasks.POST("", h.Tasks.CreateTask)
		tasks.GET("/:id", h.Tasks.GetTaskByID)
		tasks.PUT("/:id", h.Tasks.UpdateTask)
		tasks.DELETE("/:id", h.Tasks.DeleteTask)
	}

	users := api.Group("/users")
	{
		users.GET("", h.Users.GetUsers)
		users.POST("", h.Users.CreateUser)
		users.GET("/:id", h.Users.GetUserByID)
		users.PUT("/:id", h.Users.UpdateUser)
		users.DELETE("/:id", h.Users.DeleteUser)
	}

	api.GET("/stats", h.Stats.GetStats)

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
