// Package workflows runs the overview refresh as a Temporal workflow so a
// burst of growing unit events does not recompute the overview inside the
// event handlers.
package workflows

import (
	"context"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/ghuser/gardenhub/services/growingunit/application/readmodel"
)

const (
	WorkflowRefreshOverview = "refresh_overview"
	ActivityRefreshOverview = "refresh_overview_activity"
)

// RefreshResult summarises one overview rebuild.
type RefreshResult struct {
	GrowingUnits int `json:"growing_units"`
	Plants       int `json:"plants"`
}

// OverviewRefresher is satisfied by readmodel.OverviewService.
type OverviewRefresher interface {
	Refresh(ctx context.Context) (readmodel.OverviewViewModel, error)
}

// Activities holds the activity implementations registered on the worker.
type Activities struct {
	Overview OverviewRefresher
}

func (a *Activities) RefreshOverview(ctx context.Context) (RefreshResult, error) {
	activity.GetLogger(ctx).Info("refreshing overview")
	vm, err := a.Overview.Refresh(ctx)
	if err != nil {
		return RefreshResult{}, err
	}
	return RefreshResult{GrowingUnits: vm.TotalGrowingUnits, Plants: vm.TotalPlants}, nil
}

// RefreshOverviewWorkflow rebuilds the overview through a single activity.
func RefreshOverviewWorkflow(ctx workflow.Context) (RefreshResult, error) {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    5,
		},
	})

	var out RefreshResult
	if err := workflow.ExecuteActivity(ctx, ActivityRefreshOverview).Get(ctx, &out); err != nil {
		return RefreshResult{}, err
	}
	return out, nil
}

// Register adds the overview workflow and activity to w.
func Register(w worker.Registry, acts *Activities) {
	w.RegisterWorkflowWithOptions(RefreshOverviewWorkflow, workflow.RegisterOptions{Name: WorkflowRefreshOverview})
	w.RegisterActivityWithOptions(acts.RefreshOverview, activity.RegisterOptions{Name: ActivityRefreshOverview})
}
