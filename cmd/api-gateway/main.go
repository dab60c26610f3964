package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sports-academy-api/api/swagger"
	"github.com/noah-isme/sports-academy-api/internal/handler"
	"github.com/noah-isme/sports-academy-api/internal/middleware"
	"github.com/noah-isme/sports-academy-api/internal/repository"
	"github.com/noah-isme/sports-academy-api/internal/service"
	rediscache "github.com/noah-isme/sports-academy-api/pkg/cache"
	"github.com/noah-isme/sports-academy-api/pkg/config"
	"github.com/noah-isme/sports-academy-api/pkg/database"
	"github.com/noah-isme/sports-academy-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/sports-academy-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sports-academy-api/pkg/middleware/requestid"
	"github.com/noah-isme/sports-academy-api/pkg/payments"
)

// @title Sports Academy API
// @version 1.0.0
// @description Class enrollment platform: offerings, selections, payments
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.Timeout)
	defer cancel()
	mongoClient, err := database.NewMongo(ctx, cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to mongodb", "error", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logr.Warn("mongodb disconnect failed", zap.Error(err))
		}
	}()
	db := mongoClient.Database(cfg.Database.Name)

	// repositories
	userRepo := repository.NewUserRepository(db)
	classRepo := repository.NewClassRepository(db)
	selectionRepo := repository.NewSelectionRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	// the cache is optional: a dead redis degrades listings to direct reads
	var cacheRepo *repository.CacheRepository
	if cfg.Cache.Enabled {
		redisClient, err := rediscache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, class cache disabled", zap.Error(err))
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient, logr)
			defer redisClient.Close() //nolint:errcheck
		}
	}

	validate := validator.New()
	metricsService := service.NewMetricsService()

	authService := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userService := service.NewUserService(userRepo, validate, logr)

	var classService *service.ClassService
	if cacheRepo != nil {
		classService = service.NewClassService(classRepo, cacheRepo, metricsService, cfg.Cache.ClassTTL, validate, logr)
	} else {
		classService = service.NewClassService(classRepo, nil, metricsService, cfg.Cache.ClassTTL, validate, logr)
	}

	intentSigner := payments.NewIntentSigner(cfg.Payments.Secret, cfg.Payments.IntentTTL)
	checkoutService := service.NewCheckoutService(
		selectionRepo, classRepo, paymentRepo, enrollmentRepo,
		intentSigner, classService, metricsService,
		cfg.Payments.Currency, validate, logr,
	)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	classHandler := handler.NewClassHandler(classService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "sports academy server is running")
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsService.Handler()))
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// public surface
	r.POST("/jwt", authHandler.IssueToken)
	r.POST("/users", userHandler.Signup)
	r.GET("/instructors", userHandler.ListInstructors)
	r.GET("/approvedClass", classHandler.ListApproved)
	r.GET("/topClasses", classHandler.Top)

	auth := r.Group("/", middleware.JWT(authService))
	admin := middleware.RequireAdmin(userRepo)
	instructor := middleware.RequireInstructor(userRepo)

	auth.GET("/users", admin, userHandler.List)
	auth.GET("/users/admin/:email", userHandler.CheckAdmin)
	auth.GET("/users/instructor/:email", userHandler.CheckInstructor)
	auth.PATCH("/users/admin/:id", admin, userHandler.MakeAdmin)
	auth.PATCH("/users/instructor/:id", admin, userHandler.MakeInstructor)
	auth.DELETE("/users/:id", admin, userHandler.Delete)

	auth.POST("/classes", instructor, classHandler.Submit)
	auth.GET("/classes", instructor, classHandler.List)
	auth.PATCH("/classes/approve/:id", admin, classHandler.Approve)
	auth.PATCH("/classes/deny/:id", admin, classHandler.Deny)
	auth.PUT("/classes/feedback/:id", admin, classHandler.Feedback)
	auth.GET("/classes/showFeedback/:id", instructor, classHandler.ShowFeedback)

	auth.POST("/selectedClasses", checkoutHandler.Select)
	auth.GET("/selectedClass", checkoutHandler.Cart)
	auth.DELETE("/selectedClass/:id", checkoutHandler.Remove)
	auth.POST("/create-payment-intent", checkoutHandler.CreateIntent)
	auth.POST("/payments", checkoutHandler.Checkout)
	auth.GET("/paymentSuccessfully/:email", checkoutHandler.PaymentHistory)
	auth.GET("/enrolledStudent/:email", checkoutHandler.Enrolled)
	auth.GET("/payments/export", admin, checkoutHandler.ExportPayments)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
