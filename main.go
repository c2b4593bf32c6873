package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/TripStitch/tripstitch-backend/config"
	"github.com/TripStitch/tripstitch-backend/db"
	"github.com/TripStitch/tripstitch-backend/handlers"
	"github.com/TripStitch/tripstitch-backend/internal/cache"
	"github.com/TripStitch/tripstitch-backend/internal/itinerary"
	"github.com/TripStitch/tripstitch-backend/internal/reconcile"
	"github.com/TripStitch/tripstitch-backend/internal/store/postgres"
	"github.com/TripStitch/tripstitch-backend/logger"
	"github.com/TripStitch/tripstitch-backend/middleware"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer func() {
		_ = logger.Close()
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Apply pending schema migrations before opening the pool
	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Database connection
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL())
	if err != nil {
		log.Fatalf("Failed to parse database config: %v", err)
	}
	if cfg.Database.MaxConnections > 0 {
		poolConfig.MaxConns = int32(cfg.Database.MaxConnections)
	}
	if cfg.IsProduction() {
		poolConfig.ConnConfig.TLSConfig = &tls.Config{
			ServerName: cfg.Database.Host,
			MinVersion: tls.VersionTLS12,
		}
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	// Redis client with TLS in production
	redisOptions := &redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.UseTLS {
		redisOptions.TLSConfig = &tls.Config{
			ServerName: cfg.Redis.Address,
			MinVersion: tls.VersionTLS12,
		}
	}
	redisClient := redis.NewClient(redisOptions)
	defer func() {
		_ = redisClient.Close()
	}()

	// Stores
	userStore := postgres.NewUserStore(pool)
	tripStore := postgres.NewTripStore(pool)
	poiStore := postgres.NewPOIStore(pool)
	transportationStore := postgres.NewTransportationStore(pool)
	contactStore := postgres.NewContactStore(pool)
	itineraryStore := postgres.NewItineraryStore(pool)
	inboundStore := postgres.NewInboundStore(pool)

	// Reconciliation engine
	resolver := itinerary.NewResolver(tripStore, itineraryStore)
	linker := itinerary.NewLinker(resolver, itineraryStore)
	reconciler := reconcile.NewReconciler(poiStore, transportationStore, contactStore, linker)

	seenCache := cache.NewSeenCache(redisClient, time.Duration(cfg.Ingestion.SeenTTLSeconds)*time.Second)

	// Handlers
	emailHandler := handlers.NewEmailHandler(inboundStore, tripStore, reconciler, seenCache)
	recommendationHandler := handlers.NewRecommendationHandler(inboundStore, tripStore, reconciler, seenCache)
	healthHandler := handlers.NewHealthHandler(pool, cfg.Server.Version)

	// Router setup
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.CORSMiddleware(&cfg.Server))
	r.Use(middleware.ErrorHandler())

	r.GET("/health", healthHandler.HealthCheck)
	r.GET("/health/liveness", healthHandler.LivenessCheck)

	ingest := r.Group("/v1/ingest")
	ingest.Use(
		middleware.WebhookAuth(userStore),
		middleware.BodyLimit(cfg.Ingestion.MaxPayloadBytes),
	)
	{
		ingest.POST("/email", emailHandler.IngestEmail)
		ingest.POST("/email/:id/link", emailHandler.LinkEmail)
		ingest.GET("/email/:id", emailHandler.GetEmail)
		ingest.POST("/recommendation", recommendationHandler.IngestRecommendation)
		ingest.GET("/recommendation/:id", recommendationHandler.GetRecommendation)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server shutdown error: %v", err)
	}
}
