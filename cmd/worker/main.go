package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ghuser/gardenhub/pkg/app"
	"github.com/ghuser/gardenhub/pkg/cache"
	"github.com/ghuser/gardenhub/pkg/config"
	"github.com/ghuser/gardenhub/pkg/database"
	"github.com/ghuser/gardenhub/pkg/events"
	"github.com/ghuser/gardenhub/pkg/logger"
	"github.com/ghuser/gardenhub/pkg/mongostore"
	"github.com/ghuser/gardenhub/pkg/telemetry"
	"github.com/ghuser/gardenhub/pkg/workflows"
	guServices "github.com/ghuser/gardenhub/services/growingunit/application/services"
	guWorkflows "github.com/ghuser/gardenhub/services/growingunit/application/workflows"
	guEvents "github.com/ghuser/gardenhub/services/growingunit/domain/events"
	locServices "github.com/ghuser/gardenhub/services/location/application/services"
	locEvents "github.com/ghuser/gardenhub/services/location/domain/events"
	plantServices "github.com/ghuser/gardenhub/services/plant/application/services"
	plantEvents "github.com/ghuser/gardenhub/services/plant/domain/events"
	speciesServices "github.com/ghuser/gardenhub/services/plantspecies/application/services"
	speciesEvents "github.com/ghuser/gardenhub/services/plantspecies/domain/events"
)

// overviewRefreshInterval bounds how stale the overview can get when no
// growing unit events arrive.
const overviewRefreshInterval = 10 * time.Minute

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
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

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Config:   cfg,
		Db:       pool,
		Mongo:    mongoClient,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
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

	// The worker never creates growing units, so no location checker is needed.
	growingUnits := guServices.New(appConfig, nil)
	locations := locServices.New(appConfig, guServices.NewGrowingUnitCounter(appConfig))

	g, gctx := errgroup.WithContext(ctx)

	subs := []subscription{
		{context: "growing_unit", topics: guEvents.Topics, handler: growingUnits.Projector(appConfig)},
		{context: "location", topics: locEvents.Topics, handler: locations.Projector},
		{context: "plant", topics: plantEvents.Topics, handler: plantServices.New(appConfig).Projector},
		{context: "plant_species", topics: speciesEvents.Topics, handler: speciesServices.New(appConfig).Projector},
	}
	if err := registerSubscribers(gctx, g, appConfig, subs); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	if appConfig.TemporalClient != nil {
		g.Go(func() error {
			return runTemporalWorker(gctx, appConfig, growingUnits)
		})
	}

	g.Go(func() error {
		runOverviewRefresh(gctx, appConfig, growingUnits)
		return nil
	})

	log.Info("worker running")
	if err := g.Wait(); err != nil {
		log.Error("worker stopped with error", "error", err)
	}

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

type subscription struct {
	context string
	topics  []string
	handler events.EventHandler
}

// registerSubscribers subscribes every projector to its context's topics.
// Handlers must be idempotent: EventBus retries transient failures and
// drops permanent ones after they are reported here.
func registerSubscribers(ctx context.Context, g *errgroup.Group, a *app.Application, subs []subscription) error {
	for _, s := range subs {
		handler := events.HandleEvents(s.handler)
		for _, topic := range s.topics {
			errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
			if err != nil {
				return err
			}

			// Drain subscriber errors so the channel never blocks.
			g.Go(func() error {
				for err := range errCh {
					a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "permanent", events.IsPermanent(err), "error", err)
					telemetry.ReportError(err, map[string]string{"topic": topic, "context": s.context})
				}
				return nil
			})
		}
		a.Logger.Info("event subscribers registered", "context", s.context, "topics", s.topics)
	}
	return nil
}

// runTemporalWorker hosts the overview refresh workflow until ctx is cancelled.
func runTemporalWorker(ctx context.Context, a *app.Application, gus *guServices.Services) error {
	w := a.TemporalClient.NewWorker(a.Config.TemporalTaskQueue)
	guWorkflows.Register(w, &guWorkflows.Activities{Overview: gus.Overview})

	a.Logger.Info("temporal worker started", "task_queue", a.Config.TemporalTaskQueue)
	return a.TemporalClient.Run(ctx, w)
}

// runOverviewRefresh rebuilds the overview on startup and then periodically.
// Runs until ctx is cancelled.
func runOverviewRefresh(ctx context.Context, a *app.Application, gus *guServices.Services) {
	refresh := func() {
		if _, err := gus.Overview.Refresh(ctx); err != nil && ctx.Err() == nil {
			a.Logger.WarnContext(ctx, "periodic overview refresh failed", "error", err)
		}
	}
	refresh()

	ticker := time.NewTicker(overviewRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.Logger.Info("overview refresher shutting down")
			return
		case <-ticker.C:
			refresh()
		}
	}
}
