package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nilgiri-travels/service-booking/internal/application"
	"github.com/nilgiri-travels/service-booking/internal/auth"
	"github.com/nilgiri-travels/service-booking/internal/config"
	"github.com/nilgiri-travels/service-booking/internal/database"
	bookingEvents "github.com/nilgiri-travels/service-booking/internal/events"
	"github.com/nilgiri-travels/service-booking/internal/handler"
	"github.com/nilgiri-travels/service-booking/internal/health"
	"github.com/nilgiri-travels/service-booking/internal/logger"
	"github.com/nilgiri-travels/service-booking/internal/middleware"
	"github.com/nilgiri-travels/service-booking/internal/repository"
)

func main() {
	// .env is a local development convenience; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewNamed(cfg.AppEnv, "service-booking")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-booking",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
	)

	db, err := database.Connect(cfg.DB, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.BookingModel{},
			&repository.SeasonModel{},
			&repository.PriceModel{},
			&repository.PackageModel{},
			&repository.TempleModel{},
			&repository.FleetModel{},
			&repository.MediaModel{},
			&repository.SettingModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Redis is optional: with no address configured the public endpoints
	// are served uncached.
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = redisClient.Close() }()
	}

	kafkaProducer := bookingEvents.NewProducer(cfg.Kafka.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Repositories
	bookingRepo := repository.NewGormBookingRepository(db)
	seasonRepo := repository.NewGormSeasonRepository(db)
	priceRepo := repository.NewGormPriceRepository(db)
	packageRepo := repository.NewGormPackageRepository(db)
	templeRepo := repository.NewGormTempleRepository(db)
	fleetRepo := repository.NewGormFleetRepository(db)
	mediaRepo := repository.NewGormMediaRepository(db)
	settingRepo := repository.NewGormSettingRepository(db)

	// Application services
	bookingService := application.NewBookingService(
		bookingRepo, seasonRepo, priceRepo, kafkaProducer, log, cfg.LeadTimeHours)
	pricingService := application.NewPricingService(seasonRepo, priceRepo, log)
	catalogService := application.NewCatalogService(
		packageRepo, templeRepo, fleetRepo, mediaRepo, cfg.MediaDir, log)
	settingsService := application.NewSettingsService(settingRepo, log)
	voucherService := application.NewVoucherService(bookingRepo, packageRepo, log)

	// Payment event consumer confirms bookings when the gateway reports
	// an advance payment.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	groupID := cfg.Kafka.GroupPrefix + "service-booking"
	paymentConsumer := bookingEvents.NewPaymentEventConsumer(
		cfg.Kafka.Brokers, groupID, bookingService, log)
	defer func() { _ = paymentConsumer.Close() }()

	go func() {
		log.Info("starting payment event consumer", zap.String("group_id", groupID))
		if err := paymentConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("payment event consumer error", zap.Error(err))
		}
	}()

	// HTTP handlers
	bookingHandler := handler.NewBookingHandler(bookingService, pricingService)
	catalogHandler := handler.NewCatalogHandler(catalogService, settingsService)
	adminHandler := handler.NewAdminHandler(
		bookingService, pricingService, catalogService, settingsService,
		voucherService, jwtManager, cfg.Auth.AdminUsername, cfg.Auth.AdminPasswordHash)

	if cfg.AppEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	healthHandler := health.NewHandler(db, "service-booking")
	healthHandler.RegisterRoutes(router)

	// Uploaded media is served directly from disk.
	router.Static("/media", cfg.MediaDir)

	api := router.Group("/api/v1")
	{
		public := api.Group("")
		public.Use(middleware.CacheMiddleware(redisClient, cfg.Redis.CacheTTL, log))
		catalogHandler.RegisterRoutes(public)

		bookingHandler.RegisterRoutes(api)
		adminHandler.RegisterRoutes(api.Group("/admin"))
	}

	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-booking...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-booking stopped")
}
