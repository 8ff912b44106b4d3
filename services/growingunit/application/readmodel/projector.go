package readmodel

import (
	"context"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/pkg/logger"
	"github.com/ghuser/gardenhub/services/growingunit/domain/events"
)

// GrowingUnitProjector keeps GrowingUnitViewModel documents in step with the
// write side. It implements events.EventHandler.
//
// Created, updated and transplant events reload the aggregate rather than
// trusting the event payload, so the stored view always reflects the latest
// committed state. A unit that no longer exists fails the handler.
type GrowingUnitProjector struct {
	loader    GrowingUnitLoader
	views     GrowingUnitViewRepository
	cache     ViewCache
	scheduler OverviewScheduler
	builder   GrowingUnitViewModelBuilder
	log       logger.Logger
}

// NewGrowingUnitProjector wires a projector. cache and scheduler may be nil.
func NewGrowingUnitProjector(loader GrowingUnitLoader, views GrowingUnitViewRepository, cache ViewCache, scheduler OverviewScheduler, log logger.Logger) *GrowingUnitProjector {
	return &GrowingUnitProjector{loader: loader, views: views, cache: cache, scheduler: scheduler, log: log}
}

func (p *GrowingUnitProjector) Handle(ctx context.Context, e kernel.Event) error {
	switch e.Type {
	case events.TopicGrowingUnitCreated, events.TopicGrowingUnitUpdated,
		events.TopicPlantTransplantedOut, events.TopicPlantTransplantedIn:
		if err := p.project(ctx, e.AggregateID); err != nil {
			return err
		}
	case events.TopicGrowingUnitDeleted:
		if err := p.remove(ctx, e.AggregateID); err != nil {
			return err
		}
	default:
		return nil
	}

	if p.scheduler != nil {
		if err := p.scheduler.ScheduleRefresh(ctx, e); err != nil {
			return fmt.Errorf("schedule overview refresh: %w", err)
		}
	}
	return nil
}

func (p *GrowingUnitProjector) project(ctx context.Context, rawID string) error {
	id, err := kernel.ParseGrowingUnitID(rawID)
	if err != nil {
		return err
	}
	unit, err := p.loader.Execute(ctx, id)
	if err != nil {
		return err
	}
	vm := p.builder.FromAggregate(unit)
	if err := p.views.Save(ctx, vm); err != nil {
		return fmt.Errorf("save growing unit view: %w", err)
	}
	if p.cache != nil {
		if err := p.cache.Set(ctx, vm.ID, vm); err != nil {
			p.log.WarnContext(ctx, "growing unit view cache write failed", "growing_unit_id", vm.ID, "error", err)
		}
	}
	return nil
}

func (p *GrowingUnitProjector) remove(ctx context.Context, id string) error {
	if err := p.views.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete growing unit view: %w", err)
	}
	if p.cache != nil {
		if err := p.cache.Delete(ctx, id); err != nil {
			p.log.WarnContext(ctx, "growing unit view cache delete failed", "growing_unit_id", id, "error", err)
		}
	}
	return nil
}
