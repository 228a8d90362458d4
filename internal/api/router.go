package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/taskforge/task-management-api/docs"
	"github.com/taskforge/task-management-api/internal/api/handler"
	"github.com/taskforge/task-management-api/internal/api/metrics"
	"github.com/taskforge/task-management-api/internal/api/middleware"
	"github.com/taskforge/task-management-api/internal/core/domain"
	"github.com/taskforge/task-management-api/internal/core/service"
	"github.com/taskforge/task-management-api/internal/infrastructure/config"
	mongodb "github.com/taskforge/task-management-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskforge/task-management-api/internal/infrastructure/db/redis"
	"github.com/taskforge/task-management-api/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all routes registered, plus the
// activity dispatcher the caller must Start before serving.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("taskapi"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	activityRepo := mongodb.NewActivityRepository(db)

	// --- Activity pipeline ---
	dedup := redisdb.NewDedupChecker(rdb)
	recorder := service.NewActivityService(activityRepo, dedup, metrics.NewActivityCollector(), log)
	dispatcher := queue.NewDispatcher(cfg.Workers, recorder, log)

	// --- Services ---
	tokens := service.NewTokenIssuer(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.AccessTTLMin)*time.Minute,
		time.Duration(cfg.Auth.RefreshTTLDays)*24*time.Hour,
	)
	authService := service.NewAuthService(userRepo, tokens, cfg.Auth.BcryptCost, log)
	taskService := service.NewTaskService(taskRepo, activityRepo, dispatcher, cfg.Auth.AdminTaskAccess, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	adminHandler := handler.NewAdminHandler(authService)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	authGuard := middleware.Auth(cfg.Auth.JWTSecret, userRepo)

	// --- Unauthenticated surface ---
	e.GET("/", healthHandler.APIInfo)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- API surface ---
	apiGroup := e.Group("/api")
	if cfg.RateLimit.Enabled {
		limiter := redisdb.NewRateLimiter(rdb, redisdb.RateLimitConfig{
			Capacity: cfg.RateLimit.Capacity,
			Refill:   cfg.RateLimit.Refill,
			Interval: time.Duration(cfg.RateLimit.RefillSec) * time.Second,
		})
		apiGroup.Use(middleware.RateLimit(limiter, log))
	}

	auth := apiGroup.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout, authGuard)
	auth.GET("/me", authHandler.Me, authGuard)
	auth.PUT("/me", authHandler.UpdateMe, authGuard)
	auth.PUT("/password", authHandler.ChangePassword, authGuard)

	tasks := apiGroup.Group("/tasks", authGuard)
	tasks.POST("", taskHandler.Create)
	tasks.GET("", taskHandler.List)
	tasks.GET("/stats", taskHandler.Stats)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)
	tasks.GET("/:id/activity", taskHandler.Activity)

	admin := apiGroup.Group("/admin", authGuard, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers)

	return e, dispatcher
}
