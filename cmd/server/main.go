package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/accessway-travel/service-planner/internal/application"
	"github.com/accessway-travel/service-planner/internal/config"
	"github.com/accessway-travel/service-planner/internal/domain/plan"
	"github.com/accessway-travel/service-planner/internal/events"
	"github.com/accessway-travel/service-planner/internal/handler"
	"github.com/accessway-travel/service-planner/internal/logging"
	"github.com/accessway-travel/service-planner/internal/middleware"
	"github.com/accessway-travel/service-planner/internal/planner"
	"github.com/accessway-travel/service-planner/internal/provider"
	"github.com/accessway-travel/service-planner/internal/repository"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logging.NewNamed(cfg.AppEnv, "service-planner")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-planner",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.ReservationModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	}

	// External providers share one HTTP client with a bounded timeout.
	httpClient := &http.Client{Timeout: time.Duration(cfg.Providers.TimeoutSeconds) * time.Second}
	directions := provider.NewMapboxDirections(cfg.Providers.MapboxBaseURL, cfg.Providers.MapboxToken, httpClient)
	rail := provider.NewNavitiaRail(cfg.Providers.NavitiaBaseURL, cfg.Providers.NavitiaAPIKey, httpClient)
	places := provider.NewPhotonPlaces(cfg.Providers.PhotonBaseURL, httpClient)

	// Planner core
	geocoder := planner.NewGeocoder([]provider.PlaceSearch{places}, planner.NewHubDirectory(), log)
	router := planner.NewLegRouter(directions, rail, plan.NewStandardFareSchedule(), log)
	composer := planner.NewComposer(geocoder, router, log)

	// Initialize Kafka producer
	producer := events.NewProducer(cfg.Kafka.Brokers, "service-planner", log)
	defer func() { _ = producer.Close() }()

	// Application services
	plannerService := application.NewPlannerService(composer, log)
	reservationRepo := repository.NewGormReservationRepository(db)
	reservationService := application.NewReservationService(reservationRepo, producer, log)

	// Start the carrier status consumer in a goroutine.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	groupID := cfg.Kafka.GroupPrefix + "planner-service"
	statusConsumer := events.NewStatusConsumer(cfg.Kafka.Brokers, groupID, reservationService, log)
	defer func() { _ = statusConsumer.Close() }()

	go func() {
		log.Info("starting reservation status consumer")
		if err := statusConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("reservation status consumer error", zap.Error(err))
		}
	}()

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(log))
	engine.Use(middleware.Logger(log))
	engine.Use(middleware.CORS())

	healthHandler := handler.NewHealthHandler(db, "service-planner")
	healthHandler.RegisterRoutes(engine)

	planHandler := handler.NewPlanHandler(plannerService)
	planHandler.RegisterRoutes(&engine.RouterGroup)

	reservationHandler := handler.NewReservationHandler(reservationService)
	reservationHandler.RegisterRoutes(&engine.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-planner...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-planner stopped")
}
