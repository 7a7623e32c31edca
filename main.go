package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fixhub-app/fixhub/api/audit"
	"github.com/fixhub-app/fixhub/api/auth"
	"github.com/fixhub-app/fixhub/api/cache"
	"github.com/fixhub-app/fixhub/api/config"
	"github.com/fixhub-app/fixhub/api/controller"
	"github.com/fixhub-app/fixhub/api/dao"
	"github.com/fixhub-app/fixhub/api/db"
	logger "github.com/fixhub-app/fixhub/api/logging"
	"github.com/fixhub-app/fixhub/api/realtime"
	"github.com/fixhub-app/fixhub/api/router"
	"github.com/fixhub-app/fixhub/api/service"
	"github.com/fixhub-app/fixhub/api/storage"
	"github.com/fixhub-app/fixhub/api/util"
)

// cachedResources are the tables whose change feeds invalidate the fetch cache.
var cachedResources = []string{"tickets", "customers", "orders", "products", "secondhand"}

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	// Initialize Postgres
	if err := db.InitPostgres(); err != nil {
		logger.Fatal("Failed to initialize Postgres", zap.Error(err))
	}
	defer db.ClosePostgres()

	// Initialize Redis
	if err := db.InitRedis(); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis()

	// Initialize EventBus and the change feed on top of it
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)
	feed := realtime.NewBusFeed(eventBus)

	// Initialize services and utilities
	validationUtil := util.NewValidationUtil()
	notificationService := util.NewNotificationService()
	fetchCache := cache.New(config.GetDuration("cache.ttl"))
	auditRepository, err := audit.NewElasticsearchRepository(config.GetString("elasticsearch.url"))
	if err != nil {
		logger.Fatal("Failed to initialize audit repository", zap.Error(err))
	}
	auditService := audit.NewService(auditRepository)

	services, err := service.InitializeServices(
		db.DB,
		auditService,
		validationUtil,
		fetchCache,
		notificationService,
		feed,
	)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}

	// Auth: JWT sessions over the profiles table, redis-backed revocation,
	// failed-attempt tracking for the security counters.
	profileDAO := dao.NewProfileDAO(db.DB)
	sessions := auth.NewJWTSessions(
		config.GetString("auth.jwtSecret"),
		config.GetDuration("auth.sessionTTL"),
		profileDAO,
		auth.NewRedisRevoker(),
	)
	attempts := auth.NewAttemptTracker(
		config.GetInt("auth.lockoutThreshold"),
		config.GetDuration("auth.lockoutWindow"),
	)
	authService := auth.NewService(sessions, profileDAO, auditService, attempts)

	// Upload signing and storage
	signer := storage.NewSigner(
		config.GetString("storage.signingSecret"),
		config.GetString("storage.bucket"),
		config.GetDuration("storage.urlTTL"),
	)
	store := storage.NewDiskStore(config.GetString("storage.root"))

	// Bridges keep the fetch cache honest: one per cached resource, closed
	// on shutdown.
	bridges := make([]*realtime.Bridge, 0, len(cachedResources))
	for _, resource := range cachedResources {
		bridge := realtime.NewBridge(feed, fetchCache, resource)
		if err := bridge.Start(); err != nil {
			logger.Fatal("Failed to start change bridge",
				zap.String("resource", resource),
				zap.Error(err))
		}
		bridges = append(bridges, bridge)
	}
	defer func() {
		for _, bridge := range bridges {
			bridge.Close()
		}
	}()

	// Websocket hub for admin UI change notifications
	hub := realtime.NewHub()
	if err := hub.Attach(feed, cachedResources...); err != nil {
		logger.Fatal("Failed to attach websocket hub", zap.Error(err))
	}

	// Initialize controllers
	controllers := controller.InitializeControllers(services, authService, signer, store)

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	engine := router.SetupRouter(
		controllers,
		authService,
		hub,
		config.GetInt("ratelimit.requests"),
		config.GetDuration("ratelimit.window"),
	)

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: engine,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
