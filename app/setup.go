package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sahilchouksey/actividades-api/api"
	"github.com/sahilchouksey/actividades-api/config"
	"github.com/sahilchouksey/actividades-api/database"
	"github.com/sahilchouksey/actividades-api/router"
	"github.com/sahilchouksey/actividades-api/services/cron"
	"github.com/sahilchouksey/actividades-api/services/storage"
	"github.com/sahilchouksey/actividades-api/utils"
	"github.com/sahilchouksey/actividades-api/utils/cache"
	"github.com/sahilchouksey/actividades-api/utils/middleware"
)

const shutdownTimeout = 15 * time.Second

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	log, err := utils.NewLogger(getEnv.GO_ENV)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		log.Error("database connection failed", "driver", getEnv.DB_DRIVER, "host", getEnv.DB_HOST, "error", err)
		return err
	}

	if err := store.Init(); err != nil {
		log.Error("failed to initialize database tables", "error", err)
		store.Close()
		return err
	}

	// Redis is optional; without it the rate limiter keeps its counters in memory
	var redisCache *cache.RedisCache
	if getEnv.REDIS_URL != "" {
		redisCache, err = cache.NewRedisCache(getEnv.REDIS_URL)
		if err != nil {
			log.Warn("redis unavailable, using in-memory rate limiting", "error", err)
			redisCache = nil
		}
	}

	deps := router.Dependencies{
		Logger: log,
		Cache:  redisCache,
		Security: middleware.SecurityConfig{
			AllowedOrigins:    getEnv.ALLOWED_ORIGINS,
			RateLimitRequests: getEnv.RATE_LIMIT_REQUESTS,
			RateLimitWindow:   time.Minute,
			RequestTimeout:    getEnv.REQUEST_TIMEOUT,
		},
	}

	if getEnv.SpacesEnabled() {
		spaces, err := storage.NewSpacesClient(storage.SpacesConfig{
			AccessKey: getEnv.SPACES_ACCESS_KEY,
			SecretKey: getEnv.SPACES_SECRET_KEY,
			Bucket:    getEnv.SPACES_BUCKET,
			Region:    getEnv.SPACES_REGION,
			Endpoint:  getEnv.SPACES_ENDPOINT,
			CDNURL:    getEnv.SPACES_CDN_URL,
		})
		if err != nil {
			log.Warn("image storage disabled", "error", err)
		} else {
			deps.Images = spaces
		}
	} else {
		log.Info("image storage not configured, uploads disabled")
	}

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if getEnv.CRON_ENABLED {
		cronManager = cron.NewCronManager(store.GetDB(), log, getEnv.AUDIT_RETENTION_DAYS)
		if err := cronManager.Start(); err != nil {
			// Don't fail the app, just log the warning
			log.Warn("failed to start cron jobs", "error", err)
			cronManager = nil
		}
	}

	// Defer closing DB, cache and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if redisCache != nil {
			redisCache.Close()
		}
		store.Close()
	}()

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT), log)
	router.SetupRoutes(server.GetEngine(), store, deps)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig.String())
		return server.Shutdown(shutdownTimeout)
	}
}
