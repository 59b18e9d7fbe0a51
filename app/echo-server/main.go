package main

import (
	"context"
	"fmt"
	"foodRanking/app/echo-server/router"
	"foodRanking/business/orders"
	"foodRanking/business/ranking"
	"foodRanking/business/review"
	"foodRanking/internal/middleware"
	psqlRepo "foodRanking/internal/repository/postgres"
	redisRepo "foodRanking/internal/repository/redis"
	"foodRanking/internal/rest"
	"foodRanking/pkg/config"
	"foodRanking/pkg/database"
	redisdb "foodRanking/pkg/database/redis"
	"foodRanking/pkg/logger"
	rankingMetrics "foodRanking/pkg/metrics"
	"foodRanking/pkg/utils"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpMetrics "foodRanking/app/echo-server/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting vendor ranking service", "name", cfg.App.Name, "version", cfg.App.Version)

	utils.SetJWTSecret(cfg.JWT.SecretKey)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}

	// Metrics
	rankingMetrics.Init()
	httpMetrics.Init()

	// Init repo
	rankingRepo := psqlRepo.NewRankingRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	reviewRepo := psqlRepo.NewReviewRepository(db)

	var topCache ranking.TopVendorCache
	if redisClient != nil {
		topCache = redisRepo.NewTopVendorCache(redisClient, cfg.Ranking.TopCacheTTL)
		logger.Info("Top vendor cache enabled", "ttl", cfg.Ranking.TopCacheTTL)
	}

	// Init service
	rankingService := ranking.NewRankingService(rankingRepo, topCache, ranking.Config{
		Concurrency: cfg.Ranking.RecomputeConcurrency,
		TopMax:      cfg.Ranking.TopMax,
	})
	ordersService := orders.NewOrdersService(ordersRepo, rankingService)
	reviewService := review.NewReviewService(reviewRepo, rankingService)

	job := ranking.NewDailyJob(rankingService, ranking.JobConfig{
		Interval:   cfg.Ranking.RecomputeInterval,
		RunOnStart: cfg.Ranking.RecomputeOnStartup,
	})

	// Init handler
	rankingHandler := rest.NewRankingHandler(rankingService)
	rankingAdminHandler := rest.NewRankingAdminHandler(rankingService)
	ordersHandler := rest.NewOrdersHandler(ordersService)
	reviewHandler := rest.NewReviewHandler(reviewService)

	checkers := map[string]rest.HealthChecker{
		"database": database.NewDBChecker(db),
	}
	if redisClient != nil {
		checkers["redis"] = redisdb.NewRedisChecker(redisClient)
	}
	healthHandler := rest.NewHealthHandler(checkers)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomiddleware.ContextTimeout(cfg.Server.RequestTimeout))
	e.Use(httpMetrics.Middleware())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	router.SetupHealthRoutes(e, healthHandler)

	// Auth middleware
	authRequired := middleware.AuthMiddleware()
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupRankingRoutes(api, rankingHandler, authRequired)
	router.SetupRankingAdminRoutes(api, rankingAdminHandler, authRequired, adminOnly)
	router.SetOrdersRoutes(api, ordersHandler, authRequired)
	router.SetupReviewRoutes(api, reviewHandler, authRequired)

	jobCtx, stopJob := context.WithCancel(context.Background())
	defer stopJob()
	job.Start(jobCtx)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	job.Stop()
	stopJob()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := redisdb.CloseRedisClient(redisClient); err != nil {
		logger.Error("Redis close error", "error", err)
	}

	if err := database.ClosePostgres(db); err != nil {
		logger.Error("Database close error", "error", err)
	}

	logger.Info("Server stopped")
}
