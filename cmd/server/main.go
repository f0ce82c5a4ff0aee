package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/tubeshelf/tubeshelf-go/internal/auth"
	"github.com/tubeshelf/tubeshelf-go/internal/config"
	"github.com/tubeshelf/tubeshelf-go/internal/db"
	"github.com/tubeshelf/tubeshelf-go/internal/handler"
	"github.com/tubeshelf/tubeshelf-go/internal/middleware"
	"github.com/tubeshelf/tubeshelf-go/internal/repository"
	"github.com/tubeshelf/tubeshelf-go/internal/router"
	"github.com/tubeshelf/tubeshelf-go/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	middleware.InitLogger(cfg.LogLevel, "tubeshelf-api")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, db.PoolOptions{
		MaxConns:      cfg.DBMaxConns,
		MinConns:      cfg.DBMinConns,
		Retries:       cfg.DBConnectRetries,
		RetryInterval: cfg.DBRetryInterval,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.Bootstrap(ctx, pool); err != nil {
		log.Fatalf("failed to bootstrap schema: %v", err)
	}

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	handler.InitMetrics(pool)

	// Repositories
	users := repository.NewUserRepo(pool)
	categories := repository.NewCategoryRepo(pool)
	subcategories := repository.NewSubcategoryRepo(pool)
	tags := repository.NewTagRepo(pool)
	videos := repository.NewVideoRepo(pool)
	comments := repository.NewCommentRepo(pool)
	ratings := repository.NewRatingRepo(pool)
	activities := repository.NewActivityRepo(pool)
	channels := repository.NewWatchedChannelRepo(pool)

	// Services
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	activitySvc := service.NewActivityService(activities)
	authSvc := service.NewAuthService(users, tokens, cache, activitySvc, cfg.BcryptCost)
	catalogSvc := service.NewCatalogService(categories, subcategories, tags, activitySvc)
	videoSvc := service.NewVideoService(videos, cache, activitySvc)
	gate := service.NewCooldownGate(cache.Client(), "cooldown:comment", cfg.CommentCooldown)
	commentSvc := service.NewCommentService(comments, gate, cache, activitySvc)
	ratingSvc := service.NewRatingService(ratings, cache, activitySvc)
	userSvc := service.NewUserService(users, cache, activitySvc, cfg.BcryptCost)
	exportSvc := service.NewExportService(pool)

	importSvc, err := service.NewImportService(ctx, cfg.YouTubeAPIKey, videos, channels, cache, activitySvc)
	if err != nil {
		log.Fatalf("failed to init youtube importer: %v", err)
	}

	scheduler, err := service.NewImportScheduler(importSvc, cfg.DailyImportSpec, cfg.WeeklyImportSpec)
	if err != nil {
		log.Fatalf("failed to init import scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	app := fiber.New(fiber.Config{
		AppName:      "TubeShelf API",
		ServerHeader: "TubeShelf",
	})

	h := &router.Handlers{
		Auth:        handler.NewAuthHandler(authSvc),
		Video:       handler.NewVideoHandler(videoSvc),
		Category:    handler.NewCategoryHandler(catalogSvc),
		Subcategory: handler.NewSubcategoryHandler(catalogSvc),
		Tag:         handler.NewTagHandler(catalogSvc),
		Comment:     handler.NewCommentHandler(commentSvc),
		Rating:      handler.NewRatingHandler(ratingSvc),
		User:        handler.NewUserHandler(userSvc),
		Import:      handler.NewImportHandler(importSvc),
		Activity:    handler.NewActivityHandler(activitySvc),
		Export:      handler.NewExportHandler(exportSvc),
		Stats:       handler.NewStatsHandler(userSvc),
		Health:      handler.NewHealthHandler(pool, cache.Client()),
	}

	router.Setup(app, h, tokens, cache, cfg.CORSOrigins)

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		log.Println("shutting down...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("TubeShelf backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
