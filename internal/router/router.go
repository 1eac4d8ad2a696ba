package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"volunteer-api/internal/client"
	"volunteer-api/internal/handler"
	"volunteer-api/internal/metrics"
	"volunteer-api/internal/middleware"
	"volunteer-api/internal/repository"
	"volunteer-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *zap.Logger
	JWTSecret      string
	TokenTTL       time.Duration
	BasePath       string
	AllowedOrigins []string
	S3Client       client.S3ClientInterface
	Mailer         client.Mailer
	Metrics        *metrics.Metrics
}

// Setup sets up the router with all routes
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics, "/metrics", "/health", "/ready"))
	}

	// Prometheus metrics endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "volunteer-api"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if cfg.DB == nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "volunteer-api"})
			return
		}
		sqlDB, err := cfg.DB.DB()
		if err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "volunteer-api"})
			return
		}
		if err := sqlDB.Ping(); err != nil {
			c.JSON(503, gin.H{"status": "not ready", "service": "volunteer-api"})
			return
		}
		c.JSON(200, gin.H{"status": "ready", "service": "volunteer-api"})
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	roleRepo := repository.NewRoleRepository(cfg.DB)
	assignmentRepo := repository.NewRoleAssignmentRepository(cfg.DB)
	newsRepo := repository.NewNewsRepository(cfg.DB)
	activityRepo := repository.NewActivityRepository(cfg.DB)
	participantRepo := repository.NewParticipantRepository(cfg.DB)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	roleService := service.NewRoleService(roleRepo, assignmentRepo, cfg.Mailer, cfg.Metrics, cfg.Logger)
	newsService := service.NewNewsService(newsRepo, roleService, cfg.Logger)
	activityService := service.NewActivityService(activityRepo, newsRepo, roleService, cfg.Logger)
	participantService := service.NewParticipantService(
		participantRepo, activityRepo, roleService, cfg.Redis, cfg.Metrics, cfg.Logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	roleHandler := handler.NewRoleHandler(roleService)
	newsHandler := handler.NewNewsHandler(newsService)
	activityHandler := handler.NewActivityHandler(activityService)
	participantHandler := handler.NewParticipantHandler(participantService)
	uploadHandler := handler.NewUploadHandler(cfg.S3Client, cfg.Logger)

	api := r.Group(cfg.BasePath)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// ============================================================
	// Auth routes
	// ============================================================
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", authMiddleware, authHandler.Me)
	}

	// ============================================================
	// Role routes
	// ============================================================
	roles := api.Group("/roles")
	roles.Use(authMiddleware)
	{
		roles.GET("", roleHandler.ListRoles)
		roles.POST("/requests", roleHandler.SubmitRequest)
	}

	// ============================================================
	// Admin review routes
	// ============================================================
	admin := api.Group("/admin")
	admin.Use(authMiddleware)
	{
		admin.GET("/role-requests", roleHandler.ListPendingRequests)
		admin.GET("/role-requests/:requestId", roleHandler.GetRequestDetail)
		admin.POST("/role-requests/:requestId/decision", roleHandler.DecideRequest)
	}

	// ============================================================
	// Upload routes
	// ============================================================
	uploads := api.Group("/uploads")
	uploads.Use(authMiddleware)
	{
		uploads.POST("/role-proof", uploadHandler.UploadRoleProof)
	}

	// ============================================================
	// News routes
	// ============================================================
	news := api.Group("/news")
	{
		news.GET("/latest", newsHandler.ListLatest)
		news.GET("/:newsId", newsHandler.Get)
		news.POST("", authMiddleware, newsHandler.Create)
	}

	// ============================================================
	// Activity and participant routes
	// ============================================================
	activities := api.Group("/activities")
	{
		activities.POST("", authMiddleware, activityHandler.Create)
		activities.GET("/by-news/:newsId", activityHandler.ListByNews)
		activities.GET("/:activityId", activityHandler.Get)
		activities.POST("/:activityId/signup", authMiddleware, participantHandler.Signup)
		activities.POST("/:activityId/cancel", authMiddleware, participantHandler.Cancel)
		activities.GET("/:activityId/registration", authMiddleware, participantHandler.CheckRegistration)
		activities.GET("/:activityId/participants", authMiddleware, participantHandler.ListParticipants)
	}

	api.GET("/slots/:slotId/count", participantHandler.SlotCount)
	api.PATCH("/participant-slots/:participantSlotId", authMiddleware, participantHandler.UpdateSlotStatus)
	api.POST("/participants/kick", authMiddleware, participantHandler.Kick)

	return r
}
