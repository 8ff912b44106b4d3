package readmodel

import (
	"context"

	"github.com/ghuser/gardenhub/pkg/kernel"
)

// OverviewScheduler arranges for the overview to be rebuilt after trigger.
type OverviewScheduler interface {
	ScheduleRefresh(ctx context.Context, trigger kernel.Event) error
}

// InlineOverviewScheduler refreshes synchronously inside the projector call.
type InlineOverviewScheduler struct {
	svc *OverviewService
}

func NewInlineOverviewScheduler(svc *OverviewService) *InlineOverviewScheduler {
	return &InlineOverviewScheduler{svc: svc}
}

func (s *InlineOverviewScheduler) ScheduleRefresh(ctx context.Context, _ kernel.Event) error {
	_, err := s.svc.Refresh(ctx)
	return err
}
