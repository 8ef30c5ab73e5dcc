package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsletter/pkg/config"
	"newsletter/pkg/logger"
	"newsletter/pkg/metrics"
	"newsletter/pkg/middleware"
	newsletterHTTP "newsletter/services/newsletter/internal/controller/http"
	"newsletter/services/newsletter/internal/notifier"
	"newsletter/services/newsletter/internal/repo/persistent"
	"newsletter/services/newsletter/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "newsletter/services/newsletter/docs" // Swagger docs
)

const shutdownTimeout = 5 * time.Second

type App struct {
	cfg                 *config.Config
	log                 *logger.Logger
	subscriptionUseCase usecase.SubscriptionUseCase
	router              *gin.Engine
	httpServer          *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()
	return NewAppWithLogger(cfg, log)
}

func NewAppWithLogger(cfg *config.Config, log *logger.Logger) (*App, error) {
	setGinMode(cfg.GinMode)

	// Initialize repositories
	subscriberRepo := persistent.NewSubscriberRepository(cfg.SubscribersFile)
	if err := subscriberRepo.Init(); err != nil {
		log.Error("Failed to initialize subscribers file %s: %v", cfg.SubscribersFile, err)
		return nil, err
	}

	// Initialize use cases
	subscriptionUseCase := usecase.NewSubscriptionUseCase(
		subscriberRepo,
		notifier.New(cfg.Mail, log),
		cfg.StorageLabel(),
		log,
	)

	return &App{
		cfg:                 cfg,
		log:                 log,
		subscriptionUseCase: subscriptionUseCase,
		router:              NewRouter(cfg, log, subscriptionUseCase),
	}, nil
}

// Handler exposes the router for callers that serve requests themselves.
func (a *App) Handler() http.Handler {
	return a.router
}

// NewRouter wires middleware, API routes and the static landing page.
func NewRouter(cfg *config.Config, log *logger.Logger, subscriptionUseCase usecase.SubscriptionUseCase) *gin.Engine {
	subscriptionHandler := newsletterHTTP.NewSubscriptionHandler(subscriptionUseCase, log)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(log.Zap(), "/health", "/metrics"))
	r.Use(middleware.Recovery(log.Zap()))

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:   []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:          12 * time.Hour,
	}))

	// Health check
	r.GET("/health", subscriptionHandler.Health)
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		api.POST("/subscribe", subscriptionHandler.Subscribe)
		api.GET("/subscribers", subscriptionHandler.ListSubscribers)
	}

	// Landing page
	r.NoRoute(static.Serve("/", static.LocalFile(cfg.StaticDir, false)), func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	return r
}

func (a *App) Run() error {
	a.httpServer = &http.Server{
		Addr:              ":" + a.cfg.ServerPort,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("Newsletter service starting on port %s", a.cfg.ServerPort)
		a.log.Info("Subscribers file: %s (%s)", a.cfg.SubscribersFile, a.cfg.StorageLabel())
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down newsletter service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.log.Error("Server forced to shutdown: %v", err)
			return err
		}
	}

	// Let queued welcome emails finish within the same deadline
	if err := a.subscriptionUseCase.Wait(ctx); err != nil {
		a.log.Warn("Pending confirmation emails abandoned: %v", err)
	}

	a.log.Info("Newsletter service exited")
	_ = a.log.Sync()
	return nil
}

func setGinMode(mode string) {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		gin.SetMode(mode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
}
