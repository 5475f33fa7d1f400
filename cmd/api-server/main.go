package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/natealva/blind-beer-tasting/database"
	"github.com/natealva/blind-beer-tasting/internal/cache"
	"github.com/natealva/blind-beer-tasting/internal/config"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/handler"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/middleware"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/repository"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/service"
)

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	// 2. Connect to the database and run migrations
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// 3. Results cache (optional; nil cache is a no-op)
	var resultsCache *cache.ResultsCache
	if cfg.RedisURL != "" {
		resultsCache, err = cache.NewResultsCache(cfg.RedisURL, cfg.RedisPassword, cfg.ResultsCacheTTL)
		if err != nil {
			log.Fatalf("could not connect to redis: %v", err)
		}
		defer resultsCache.Close()
		logger.Info("Results cache enabled", "ttl", cfg.ResultsCacheTTL)
	} else {
		logger.Info("REDIS_URL not set, results cache disabled")
	}

	// 4. Repositories
	sessionRepo := repository.NewSessionRepository(db)
	playerRepo := repository.NewPlayerRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	revealRepo := repository.NewRevealRepository(db)

	// 5. Services
	sessionService := service.NewSessionService(sessionRepo, cfg)
	playerService := service.NewPlayerService(playerRepo, sessionService, resultsCache)
	ratingService := service.NewRatingService(ratingRepo, playerRepo, sessionService, resultsCache)
	revealService := service.NewRevealService(revealRepo, sessionService, resultsCache)
	resultsService := service.NewResultsService(ratingRepo, revealRepo, playerRepo, sessionService, resultsCache)

	// 6. Handlers
	sessionHandler := handler.NewSessionHandler(sessionService, cfg.AdminTokenTTL)
	playerHandler := handler.NewPlayerHandler(playerService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	revealHandler := handler.NewRevealHandler(revealService)
	resultsHandler := handler.NewResultsHandler(resultsService, sessionService)

	// 7. Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	sessions := r.Group("/api/sessions")
	sessions.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	{
		sessionHandler.RegisterRoutes(sessions)
		playerHandler.RegisterRoutes(sessions)
		ratingHandler.RegisterRoutes(sessions)
		resultsHandler.RegisterPlayerRoutes(sessions)

		admin := sessions.Group("/:code/admin")
		admin.Use(middleware.AdminAuthMiddleware(sessionService))
		{
			revealHandler.RegisterRoutes(admin)
			resultsHandler.RegisterAdminRoutes(admin)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("Server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}
