package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmorishita/tasklane/internal/domain"
	"github.com/kmorishita/tasklane/internal/repository"
	"github.com/kmorishita/tasklane/internal/testutil"
)

func TestDashboardService_Load(t *testing.T) {
	database := testutil.NewTestDB(t)
	members := repository.NewSQLiteMemberRepo(database)
	routines := repository.NewSQLiteRoutineRepo(database)
	tasks := repository.NewSQLiteTaskRepo(database)
	ctx := context.Background()

	team := testutil.NewTestTeam("Acme")
	require.NoError(t, repository.NewSQLiteTeamRepo(database).Create(ctx, team))
	require.NoError(t, members.Add(ctx, testutil.NewTestMember(team.ID, "u-alice", testutil.WithRole(domain.RoleOwner))))
	require.NoError(t, members.Add(ctx, testutil.NewTestMember(team.ID, "u-bob",
		testutil.WithJoinedAt(time.Now().UTC().Add(time.Minute)))))

	require.NoError(t, routines.Create(ctx, testutil.NewTestRoutine(team.ID, "Weekly sync")))
	require.NoError(t, routines.Create(ctx, testutil.NewTestRoutine(team.ID, "Paused", testutil.WithActive(false))))

	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask(team.ID, "Mine", testutil.WithAssignee("u-alice"))))
	require.NoError(t, tasks.Create(ctx, testutil.NewTestTask(team.ID, "Unassigned")))

	svc := NewDashboardService(members, routines, tasks)
	d, err := svc.Load(ctx, team.ID, "u-alice")
	require.NoError(t, err)

	assert.Len(t, d.Members, 2)
	require.Len(t, d.Routines, 1, "dashboard shows active routines only")
	assert.Equal(t, "Weekly sync", d.Routines[0].Title)
	assert.Len(t, d.Tasks, 2)
	require.Len(t, d.MyTasks, 1)
	assert.Equal(t, "Mine", d.MyTasks[0].Title)
}

func TestDashboardService_Load_EmptyTeam(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewDashboardService(
		repository.NewSQLiteMemberRepo(database),
		repository.NewSQLiteRoutineRepo(database),
		repository.NewSQLiteTaskRepo(database),
	)

	d, err := svc.Load(context.Background(), "no-such-team", "u-alice")
	require.NoError(t, err)
	assert.Empty(t, d.Members)
	assert.Empty(t, d.Routines)
	assert.Empty(t, d.Tasks)
	assert.Empty(t, d.MyTasks)
}
