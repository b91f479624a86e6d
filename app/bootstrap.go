package app

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"telemetry-hub/app/handlers"
	"telemetry-hub/app/services"
	"telemetry-hub/app/transport"
	"telemetry-hub/storage/memory"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// App represents the application
type App struct {
	Config   *Config
	Logger   *slog.Logger
	Registry *services.RegistryService
	Metrics  *services.MetricsService
	Commands *services.CommandService
	Hub      *transport.Hub
	Router   *gin.Engine
}

// Bootstrap initializes the application
func Bootstrap() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// All registry and cache state lives in one in-memory store; it is
	// rebuilt from live connections after a restart.
	store := memory.NewStore()

	// Initialize services
	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTExpirationSec)
	alertService := services.NewAlertService(cfg.CPUAlertThreshold, cfg.MemAlertThreshold, logger)
	registryService := services.NewRegistryService(store, logger)
	metricsService := services.NewMetricsService(store, alertService, logger)

	// Websocket hub carries agent connections and outbound commands
	hub := transport.NewHub(registryService, metricsService, jwtService, logger)
	commandService := services.NewCommandService(registryService, hub, logger)

	// Initialize HTTP handlers
	agentHandler := handlers.NewAgentHandler(registryService, metricsService)
	commandHandler := handlers.NewCommandHandler(commandService)
	authHandler := handlers.NewAuthHandler(jwtService, cfg.RegistrationKey, cfg.JWTExpirationSec)
	healthHandler := handlers.NewHealthHandler(registryService)

	// Setup HTTP router
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	setupRoutes(router, hub, agentHandler, commandHandler, authHandler, healthHandler)

	app := &App{
		Config:   cfg,
		Logger:   logger,
		Registry: registryService,
		Metrics:  metricsService,
		Commands: commandService,
		Hub:      hub,
		Router:   router,
	}

	return app, nil
}

// setupRoutes configures HTTP routes
func setupRoutes(router *gin.Engine, hub *transport.Hub, agentHandler *handlers.AgentHandler, commandHandler *handlers.CommandHandler, authHandler *handlers.AuthHandler, healthHandler *handlers.HealthHandler) {
	// Agent websocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		hub.HandleWS(c.Writer, c.Request)
	})

	router.GET("/ready", healthHandler.Ready)

	api := router.Group("/api")
	{
		api.GET("/agents", agentHandler.ListAgents)
		api.GET("/agents/:agentId/metrics", agentHandler.GetAgentMetrics)
		api.GET("/metrics", agentHandler.GetAllMetrics)
		api.GET("/summary", agentHandler.GetSummary)
		api.GET("/health", healthHandler.Health)

		api.POST("/auth/token", authHandler.IssueToken)

		api.POST("/commands/agents/:hostname/service/restart", commandHandler.RestartService)
		api.POST("/commands/agents/:hostname/process/kill", commandHandler.KillProcess)
		api.POST("/commands/agents/:hostname/docker/restart", commandHandler.RestartContainer)
	}
}
