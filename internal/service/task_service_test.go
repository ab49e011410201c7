package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmorishita/tasklane/internal/domain"
	"github.com/kmorishita/tasklane/internal/repository"
	"github.com/kmorishita/tasklane/internal/testutil"
)

func newTaskService(t *testing.T) (TaskService, *domain.Team) {
	t.Helper()
	database := testutil.NewTestDB(t)
	team := testutil.NewTestTeam("Acme")
	require.NoError(t, repository.NewSQLiteTeamRepo(database).Create(context.Background(), team))
	return NewTaskService(repository.NewSQLiteTaskRepo(database)), team
}

func TestTaskService_Create_Defaults(t *testing.T) {
	svc, team := newTaskService(t)
	ctx := context.Background()

	task := &domain.Task{TeamID: team.ID, Title: "Ship it", CreatedBy: "u-alice"}
	require.NoError(t, svc.Create(ctx, task))

	fetched, err := svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, fetched.ID)
	assert.Equal(t, domain.TaskPending, fetched.Status)
	assert.Equal(t, domain.SourceManual, fetched.Source)
}

func TestTaskService_Create_Validation(t *testing.T) {
	svc, team := newTaskService(t)
	ctx := context.Background()

	err := svc.Create(ctx, &domain.Task{TeamID: team.ID, Title: "   ", CreatedBy: "u-alice"})
	assert.Error(t, err)

	err = svc.Create(ctx, &domain.Task{Title: "No team", CreatedBy: "u-alice"})
	assert.Error(t, err)
}

func TestTaskService_Create_Subtask(t *testing.T) {
	svc, team := newTaskService(t)
	ctx := context.Background()

	parent := &domain.Task{TeamID: team.ID, Title: "Monthly report", CreatedBy: "u-alice"}
	require.NoError(t, svc.Create(ctx, parent))

	child := &domain.Task{TeamID: team.ID, Title: "Collect figures", ParentID: &parent.ID, CreatedBy: "u-alice"}
	require.NoError(t, svc.Create(ctx, child))

	children, err := svc.ListChildren(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "Collect figures", children[0].Title)
}

func TestTaskService_Create_RejectsNestedSubtask(t *testing.T) {
	svc, team := newTaskService(t)
	ctx := context.Background()

	parent := &domain.Task{TeamID: team.ID, Title: "Monthly report", CreatedBy: "u-alice"}
	require.NoError(t, svc.Create(ctx, parent))
	child := &domain.Task{TeamID: team.ID, Title: "Collect figures", ParentID: &parent.ID, CreatedBy: "u-alice"}
	require.NoError(t, svc.Create(ctx, child))

	grandchild := &domain.Task{TeamID: team.ID, Title: "Too deep", ParentID: &child.ID, CreatedBy: "u-alice"}
	err := svc.Create(ctx, grandchild)
	assert.Error(t, err)
}

func TestTaskService_Toggle(t *testing.T) {
	svc, team := newTaskService(t)
	ctx := context.Background()

	task := &domain.Task{TeamID: team.ID, Title: "Ship it", CreatedBy: "u-alice"}
	require.NoError(t, svc.Create(ctx, task))

	res, err := svc.Toggle(ctx, task.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskPending, res.Previous)
	assert.Equal(t, domain.TaskCompleted, res.Current)

	fetched, err := svc.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskCompleted, fetched.Status)
}

// A task mid-flight loses its in_progress state across a check/uncheck
// round trip; the checkbox only records done or not done.
func TestTaskService_Toggle_CollapsesInProgress(t *testing.T) {
	svc, team := newTaskService(t)
	ctx := context.Background()

	task := &domain.Task{TeamID: team.ID, Title: "Ship it", Status: domain.TaskInProgress, CreatedBy: "u-alice"}
	require.NoError(t, svc.Create(ctx, task))

	checked, err := svc.Toggle(ctx, task.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskInProgress, checked.Previous)
	assert.Equal(t, domain.TaskCompleted, checked.Current)

	unchecked, err := svc.Toggle(ctx, task.ID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.TaskPending, unchecked.Current)
}

func TestTaskService_Toggle_NotFound(t *testing.T) {
	svc, _ := newTaskService(t)

	_, err := svc.Toggle(context.Background(), "nonexistent", true)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskService_Open_RedirectsSubtask(t *testing.T) {
	svc, team := newTaskService(t)
	ctx := context.Background()

	parent := &domain.Task{TeamID: team.ID, Title: "Monthly report", CreatedBy: "u-alice"}
	require.NoError(t, svc.Create(ctx, parent))
	child := &domain.Task{TeamID: team.ID, Title: "Collect figures", ParentID: &parent.ID, CreatedBy: "u-alice"}
	require.NoError(t, svc.Create(ctx, child))

	direct, err := svc.Open(ctx, parent.ID)
	require.NoError(t, err)
	assert.False(t, direct.Redirected())

	redirected, err := svc.Open(ctx, child.ID)
	require.NoError(t, err)
	assert.True(t, redirected.Redirected())
	assert.Equal(t, parent.ID, redirected.ParentID)
	assert.Equal(t, child.ID, redirected.FocusChildID)
}
