package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/gardenhub/pkg/cache"
	"github.com/ghuser/gardenhub/pkg/config"
	"github.com/ghuser/gardenhub/pkg/database"
	"github.com/ghuser/gardenhub/pkg/events"
	"github.com/ghuser/gardenhub/pkg/logger"
	"github.com/ghuser/gardenhub/pkg/mongostore"
	"github.com/ghuser/gardenhub/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all bounded contexts.
// Pass it to each context's Routes (API) or Subscribers (worker) function.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "plant transplanted", "plant_id", id)
//	app.Logger.ErrorContext(ctx, "failed to project view", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config         *config.Config
	Db             *database.Database // write side
	Mongo          *mongostore.Client // read side
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient // nil unless TEMPORAL_ENABLED
	SessionStore   sessions.Store            // Redis-backed session store; nil in worker process
}

// Publisher returns the domain event publisher backed by the event bus.
func (a *Application) Publisher() *events.DomainPublisher {
	return events.NewDomainPublisher(a.EventBus)
}

// Outbox returns the writer repositories use to store events in their own
// transaction. It is nil when no event bus is configured.
func (a *Application) Outbox() events.TxEventWriter {
	if a.EventBus == nil {
		return nil
	}
	return events.NewOutbox(a.EventBus)
}
