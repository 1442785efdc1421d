package main

import (
	"context"
	"fmt"
	"log/slog"
	"movieticket/api/routes"
	"movieticket/internal/session"
	"movieticket/internal/shared/config"
	"movieticket/internal/shared/middleware"
	"movieticket/pkg/cache"
	"movieticket/pkg/logger"
	"movieticket/pkg/upstream"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	// Load config
	cfg := config.Load()

	// Set Gin mode (debug/release)
	gin.SetMode(cfg.GinMode)

	// Session store: Redis when reachable, in-memory otherwise.
	// A memory store loses the session on restart but keeps the
	// gateway usable during local development without Redis.
	store := newSessionStore(cfg, appLogger)

	holder := session.NewHolder(store, appLogger)
	unsubscribe := holder.Subscribe(func(s *session.Session) {
		if s == nil {
			appLogger.Info("Session observer: signed out")
			return
		}
		appLogger.Info("Session observer: signed in",
			slog.Int64("customer_id", s.CustomerID),
			slog.String("role", string(s.Role)),
		)
	})
	defer unsubscribe()

	// Restore a persisted session from a previous run
	rehydrateCtx, rehydrateCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := holder.Rehydrate(rehydrateCtx); err != nil {
		appLogger.Warn("Failed to restore persisted session", slog.Any("error", err))
	}
	rehydrateCancel()

	// Upstream ticket service client
	api := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.APIPrefix, cfg.Upstream.Timeout, appLogger)

	// Setup router
	router := setupRouter(cfg, holder, store, api)

	// HTTP server
	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info("🚀 Gateway running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("upstream", cfg.Upstream.BaseURL+cfg.Upstream.APIPrefix),
			slog.String("version", Version),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down gateway...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Gateway exited gracefully")
}

func newSessionStore(cfg *config.Config, appLogger *logger.Logger) session.Store {
	client, err := cache.NewClient(cache.Config{
		Address:  cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Redis unavailable, falling back to in-memory session store",
			slog.String("address", cfg.Redis.Addr),
			slog.Any("error", err),
		)
		return session.NewMemoryStore()
	}

	appLogger.Info("Redis session store connected", slog.String("address", cfg.Redis.Addr))
	return session.NewRedisStore(cache.NewService(client))
}

func setupRouter(cfg *config.Config, holder *session.Holder, store session.Store, api *upstream.Client) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	// Built-in middleware: logs requests + recovers from panics
	engine.Use(middleware.RequestID(), middleware.RequestLogger(appLogger), gin.Recovery())

	// CORS configuration
	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true // allow every origin dynamically
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Initialize and setup routes
	appRouter := routes.NewRouter(cfg, holder, store, api, appLogger)
	appRouter.SetupRoutes(engine)

	return engine
}
