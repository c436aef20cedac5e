package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/application/dedup"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/application/reconcile"
	catalogsync "github.com/SUPRAJ-8/NepoSMM-sub002/internal/application/sync"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/order"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/infrastructure/cache"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/infrastructure/config"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/infrastructure/logger"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/infrastructure/persistence"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/infrastructure/scheduler"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/infrastructure/smm"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/interfaces/http/handler"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/interfaces/http/middleware"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting NepoSMM Core",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	providerRepo := persistence.NewGormProviderRepository(db.DB)
	serviceRepo := persistence.NewGormServiceRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryConfigRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	resolutionRepo := persistence.NewGormDedupResolutionRepository(db.DB)

	// Sync lock: redis when reachable, otherwise a process-local fallback so
	// a single instance can still run without a redis deployment.
	syncLock := newSyncLock(cfg, log)

	// Provider gateway and status mapping
	gateway := smm.NewClient(cfg.Sync.ProviderTimeout, log)
	statusMapper := smm.NewStatusMapper(statusOverrides(cfg.StatusMappings, log))

	// Application services
	unifier := catalogsync.NewCategoryUnifier(cfg.CategoryAliases, serviceRepo, categoryRepo, log)
	syncService := catalogsync.NewCatalogSyncService(
		providerRepo,
		serviceRepo,
		categoryRepo,
		gateway,
		unifier,
		syncLock,
		cfg.Sync.Workers,
		log,
	)
	dedupService := dedup.NewService(serviceRepo, orderRepo, resolutionRepo, log)
	reconcileService := reconcile.NewService(orderRepo, providerRepo, gateway, statusMapper, log)

	// Catalog sync scheduler (if enabled)
	if cfg.Sync.Enabled {
		syncSchedulerConfig := scheduler.DefaultCatalogSyncSchedulerConfig()
		syncSchedulerConfig.Interval = cfg.Sync.Interval
		syncSchedulerConfig.DedupAfterSync = cfg.Sync.DedupAfterSync

		syncScheduler, err := scheduler.NewCatalogSyncScheduler(syncSchedulerConfig, syncService, dedupService, log)
		if err != nil {
			log.Fatal("Failed to create catalog sync scheduler", zap.Error(err))
		}
		if err := syncScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start catalog sync scheduler", zap.Error(err))
		}
		defer func() {
			if err := syncScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping catalog sync scheduler", zap.Error(err))
			}
		}()
		log.Info("Catalog sync scheduler started",
			zap.Duration("interval", syncSchedulerConfig.Interval),
			zap.Bool("dedup_after_sync", syncSchedulerConfig.DedupAfterSync),
		)
	}

	// Order refresh scheduler (if enabled)
	if cfg.Reconcile.Enabled {
		refreshSchedulerConfig := scheduler.DefaultOrderRefreshSchedulerConfig()
		refreshSchedulerConfig.PollInterval = cfg.Reconcile.PollInterval
		refreshSchedulerConfig.BatchSize = cfg.Reconcile.BatchSize

		refreshScheduler, err := scheduler.NewOrderRefreshScheduler(refreshSchedulerConfig, reconcileService, log)
		if err != nil {
			log.Fatal("Failed to create order refresh scheduler", zap.Error(err))
		}
		if err := refreshScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start order refresh scheduler", zap.Error(err))
		}
		defer func() {
			if err := refreshScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping order refresh scheduler", zap.Error(err))
			}
		}()
		log.Info("Order refresh scheduler started",
			zap.Duration("poll_interval", refreshSchedulerConfig.PollInterval),
			zap.Int("batch_size", refreshSchedulerConfig.BatchSize),
		)
	}

	// Initialize HTTP handlers
	providerHandler := handler.NewProviderHandler(providerRepo)
	catalogHandler := handler.NewCatalogHandler(serviceRepo, categoryRepo)
	syncHandler := handler.NewSyncHandler(syncService, dedupService, providerRepo, resolutionRepo)
	orderHandler := handler.NewOrderHandler(reconcileService, orderRepo)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request id first so the recovery and request logs
	// carry it, then panic recovery, request logging, CORS.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint (outside API versioning)
	engine.GET("/healthz", systemHandler.Health)

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(providerHandler).
		Register(catalogHandler).
		Register(syncHandler).
		Register(orderHandler).
		Register(systemHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newSyncLock connects to redis and returns a distributed sync lock, or a
// process-local one when redis is not reachable at startup.
func newSyncLock(cfg *config.Config, log *zap.Logger) catalogsync.SyncLock {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, falling back to in-process sync lock",
			zap.String("addr", client.Options().Addr),
			zap.Error(err),
		)
		_ = client.Close()
		return cache.NewInMemorySyncLock(cfg.Sync.LockTTL)
	}

	log.Info("Redis connected, using distributed sync lock",
		zap.String("addr", client.Options().Addr),
	)
	return cache.NewRedisSyncLock(client, cfg.Sync.LockTTL, log)
}

// statusOverrides converts the raw status mapping config, keyed by provider
// id string, into the typed form the mapper expects. Malformed entries are
// logged and skipped rather than blocking startup.
func statusOverrides(raw map[string]map[string]string, log *zap.Logger) map[uuid.UUID]map[string]order.Status {
	overrides := make(map[uuid.UUID]map[string]order.Status, len(raw))
	for providerKey, table := range raw {
		providerID, err := uuid.Parse(providerKey)
		if err != nil {
			log.Warn("Ignoring status mapping with invalid provider id",
				zap.String("provider_id", providerKey),
			)
			continue
		}
		mapped := make(map[string]order.Status, len(table))
		for rawStatus, canonical := range table {
			status := order.Status(strings.ToLower(strings.TrimSpace(canonical)))
			if !status.IsValid() {
				log.Warn("Ignoring status mapping with unknown canonical status",
					zap.String("provider_id", providerKey),
					zap.String("raw", rawStatus),
					zap.String("canonical", canonical),
				)
				continue
			}
			mapped[rawStatus] = status
		}
		if len(mapped) > 0 {
			overrides[providerID] = mapped
		}
	}
	return overrides
}
