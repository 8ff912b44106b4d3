package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/gardenhub/docs/swagger"
	"github.com/ghuser/gardenhub/pkg/app"
	"github.com/ghuser/gardenhub/pkg/auth"
	"github.com/ghuser/gardenhub/pkg/cache"
	"github.com/ghuser/gardenhub/pkg/config"
	"github.com/ghuser/gardenhub/pkg/database"
	"github.com/ghuser/gardenhub/pkg/events"
	"github.com/ghuser/gardenhub/pkg/httpx"
	"github.com/ghuser/gardenhub/pkg/logger"
	"github.com/ghuser/gardenhub/pkg/mongostore"
	"github.com/ghuser/gardenhub/pkg/telemetry"
	"github.com/ghuser/gardenhub/pkg/workflows"
	guApi "github.com/ghuser/gardenhub/services/growingunit/application/api"
	guServices "github.com/ghuser/gardenhub/services/growingunit/application/services"
	locApi "github.com/ghuser/gardenhub/services/location/application/api"
	locServices "github.com/ghuser/gardenhub/services/location/application/services"
	plantApi "github.com/ghuser/gardenhub/services/plant/application/api"
	plantServices "github.com/ghuser/gardenhub/services/plant/application/services"
	speciesApi "github.com/ghuser/gardenhub/services/plantspecies/application/api"
	speciesServices "github.com/ghuser/gardenhub/services/plantspecies/application/services"
)

// @title			GardenHub API
// @version		1.0
// @description	Gardening management API: locations, growing units, plants and plant species.
// @license.name	MIT
// @license.url	https://opensource.org/licenses/MIT
// @host			localhost:8080
// @BasePath		/api
// @schemes		http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer pool.Close()
	log.Info("database pool connected")

	mongoClient, err := mongostore.NewClient(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to mongo", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer mongoClient.Close(context.Background()) //nolint:errcheck
	log.Info("mongo connected", "database", cfg.MongoDatabase)

	eventBus, err := events.NewEventBusWithForwarder(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	if err := eventBus.StartForwarder(ctx); err != nil {
		log.Error("failed to start event forwarder", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	sessionStore := auth.NewSessionStore(redisClient.Client(), auth.SessionOptions{
		AuthKey:       []byte(cfg.SessionAuthKey),
		EncryptionKey: []byte(cfg.SessionEncryptionKey),
		Secure:        cfg.Environment == config.EnvProduction,
		MaxAge:        cfg.SessionMaxAge,
	})
	log.Info("session store initialized", "backend", "redis")

	appConfig := &app.Application{
		Config:       cfg,
		Db:           pool,
		Mongo:        mongoClient,
		Logger:       log,
		EventBus:     eventBus,
		Redis:        redisClient,
		SessionStore: sessionStore,
	}

	if cfg.TemporalEnabled {
		temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
		if err != nil {
			log.Error("failed to initialize temporal client", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer temporalClient.Close()
		appConfig.TemporalClient = temporalClient
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			AllowCredentials:   cfg.AuthEnabled,
			RateLimitPerMinute: cfg.RateLimitPerMinute,
			MaxBodyBytes:       cfg.MaxBodyBytes,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	r.Get("/health", httpx.HealthHandler(httpx.HealthChecks{
		Database: pool,
		Redis:    redisClient,
		Mongo:    mongoClient,
		EventBus: eventBus,
	}))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		if cfg.AuthEnabled {
			r.Use(auth.RequireAuth(sessionStore, log))
		}
		registerRoutes(r, appConfig)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerRoutes mounts all bounded contexts under /api. Growing units need
// the location existence check and locations need the dependent-unit count,
// so the counter is built before either service container.
func registerRoutes(r chi.Router, a *app.Application) {
	counter := guServices.NewGrowingUnitCounter(a)
	locations := locServices.New(a, counter)
	growingUnits := guServices.New(a, locations.AssertExists)

	guApi.GrowingUnitRoutes(r, growingUnits)
	locApi.LocationRoutes(r, locations)
	plantApi.PlantRoutes(r, plantServices.New(a))
	speciesApi.PlantSpeciesRoutes(r, speciesServices.New(a))
}
