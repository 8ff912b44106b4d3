package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/growingunit/application/readmodel"
)

type fakeRefresher struct {
	calls int
	vm    readmodel.OverviewViewModel
}

func (f *fakeRefresher) Refresh(context.Context) (readmodel.OverviewViewModel, error) {
	f.calls++
	return f.vm, nil
}

func TestRefreshOverviewWorkflow(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()

	refresher := &fakeRefresher{vm: readmodel.OverviewViewModel{TotalGrowingUnits: 3, TotalPlants: 7}}
	acts := &Activities{Overview: refresher}
	env.RegisterWorkflowWithOptions(RefreshOverviewWorkflow, workflow.RegisterOptions{Name: WorkflowRefreshOverview})
	env.RegisterActivityWithOptions(acts.RefreshOverview, activity.RegisterOptions{Name: ActivityRefreshOverview})

	env.ExecuteWorkflow(WorkflowRefreshOverview)

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var out RefreshResult
	require.NoError(t, env.GetWorkflowResult(&out))
	assert.Equal(t, RefreshResult{GrowingUnits: 3, Plants: 7}, out)
	assert.Equal(t, 1, refresher.calls)
}

type fakeStarter struct {
	opts []client.StartWorkflowOptions
	err  error
}

func (f *fakeStarter) ExecuteWorkflow(_ context.Context, o client.StartWorkflowOptions, _ interface{}, _ ...interface{}) (client.WorkflowRun, error) {
	f.opts = append(f.opts, o)
	return nil, f.err
}

func TestTemporalOverviewScheduler(t *testing.T) {
	trigger := kernel.Event{ID: uuid.New(), Type: "growing_unit.updated"}

	t.Run("starts workflow keyed by event id", func(t *testing.T) {
		starter := &fakeStarter{}
		require.NoError(t, NewTemporalOverviewScheduler(starter, "gardenhub-overview").ScheduleRefresh(context.Background(), trigger))
		require.Len(t, starter.opts, 1)
		assert.Equal(t, "overview-refresh-"+trigger.ID.String(), starter.opts[0].ID)
		assert.Equal(t, "gardenhub-overview", starter.opts[0].TaskQueue)
	})

	t.Run("already started is not an error", func(t *testing.T) {
		starter := &fakeStarter{err: serviceerror.NewWorkflowExecutionAlreadyStarted("exists", "", "")}
		assert.NoError(t, NewTemporalOverviewScheduler(starter, "q").ScheduleRefresh(context.Background(), trigger))
	})

	t.Run("other errors propagate", func(t *testing.T) {
		starter := &fakeStarter{err: errors.New("unavailable")}
		assert.Error(t, NewTemporalOverviewScheduler(starter, "q").ScheduleRefresh(context.Background(), trigger))
	})
}
