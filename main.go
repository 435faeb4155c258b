package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"

	"zinescan/auth"
	"zinescan/cache"
	"zinescan/capture"
	"zinescan/config"
	_ "zinescan/docs" // Swagger docs
	"zinescan/handler"
	appLogger "zinescan/logger"
	"zinescan/middleware"
	"zinescan/storage"
	"zinescan/tracker"
)

// @title Zine Scan Tracking API
// @version 1.0
// @description QR scan redirect and analytics service for zine issues. Resolves trackable links, records immutable scan events, and folds them into per-issue/per-link analytics on demand.

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @tag.name Scans
// @tag.description Public scan path: redirect resolution and QR image rendering

// @tag.name Analytics
// @tag.description Authenticated creator analytics

// @tag.name System
// @tag.description Health checks and metrics

func main() {
	// Initialize logger
	appLogger.Initialize()

	// Load configuration
	cfg := config.MustLoadConfig()
	log.Info().Msg("Configuration loaded successfully")

	// Open the relational store and migrate
	db, err := storage.OpenPostgres(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	store := storage.NewGormStore(db)
	if err := store.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	// Initialize the link cache (if enabled)
	var linkCache cache.LinkCache
	if cfg.Cache.Enabled {
		switch cfg.Cache.Backend {
		case "redis":
			rdb, err := cache.NewRedisClient(cfg.Redis)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to connect to Redis")
			}
			linkCache = cache.NewRedis(rdb, cfg.Cache)
		default:
			linkCache, err = cache.NewMemory(cfg.Cache)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to initialize cache")
			}
		}
	} else {
		log.Info().Msg("Link cache disabled in configuration")
	}

	// External collaborators
	sink := capture.NewSink(cfg.Capture)
	verifier := auth.NewHTTPVerifier(cfg.Auth)

	// Core components with dependencies injected
	recorder := tracker.NewRecorder(store)
	aggregator := tracker.NewAggregator(store)

	scanHandler := handler.NewScanHandler(store, linkCache, recorder, sink, cfg)
	analyticsHandler := handler.NewAnalyticsHandler(aggregator)
	healthHandler := handler.NewHealthHandler(db)

	// Set up router
	r := mux.NewRouter()

	// Apply global middleware
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	creatorAuth := middleware.NewCreatorAuth(verifier)

	r.Use(middleware.CORS)
	r.Use(middleware.RequestLogger)
	r.Use(rateLimiter.Limit)

	// Register routes
	r.HandleFunc("/health", healthHandler.Check).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/qr/{issueID}/{linkID}/png", scanHandler.GenerateQR).Methods("GET")
	r.HandleFunc("/qr/{issueID}/{linkID}", scanHandler.Redirect).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(creatorAuth.Protect)
	api.HandleFunc("/analytics", analyticsHandler.GetAnalytics).Methods("GET")

	// Swagger UI
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Configure HTTP server
	serverAddress := fmt.Sprintf("%s:%s", cfg.WebServer.IP, cfg.WebServer.Port)
	server := &http.Server{
		Addr:         serverAddress,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.WebServer.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WebServer.WriteTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("address", serverAddress).
			Str("scheme", cfg.WebServer.Scheme).
			Msg("Starting server")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.WebServer.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Close cache
	if linkCache != nil {
		linkCache.Close()
	}

	// Close database connection
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	log.Info().Msg("Server stopped gracefully")
}
