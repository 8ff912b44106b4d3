package workflows

import (
	"context"
	"errors"
	"fmt"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/ghuser/gardenhub/pkg/kernel"
)

// WorkflowStarter is the subset of client.Client used to start workflows.
type WorkflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// TemporalOverviewScheduler implements readmodel.OverviewScheduler by
// starting RefreshOverviewWorkflow. The workflow id is derived from the
// triggering event, so a redelivered event does not start a second run.
type TemporalOverviewScheduler struct {
	client    WorkflowStarter
	taskQueue string
}

func NewTemporalOverviewScheduler(c WorkflowStarter, taskQueue string) *TemporalOverviewScheduler {
	return &TemporalOverviewScheduler{client: c, taskQueue: taskQueue}
}

// WorkflowID names the refresh run started for trigger.
func WorkflowID(trigger kernel.Event) string {
	return "overview-refresh-" + trigger.ID.String()
}

func (s *TemporalOverviewScheduler) ScheduleRefresh(ctx context.Context, trigger kernel.Event) error {
	opts := client.StartWorkflowOptions{
		ID:                    WorkflowID(trigger),
		TaskQueue:             s.taskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_REJECT_DUPLICATE,
	}
	_, err := s.client.ExecuteWorkflow(ctx, opts, WorkflowRefreshOverview)
	var started *serviceerror.WorkflowExecutionAlreadyStarted
	if errors.As(err, &started) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("start overview refresh: %w", err)
	}
	return nil
}
