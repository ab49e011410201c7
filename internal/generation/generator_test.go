package generation

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmorishita/tasklane/internal/domain"
	"github.com/kmorishita/tasklane/internal/repository"
	"github.com/kmorishita/tasklane/internal/testutil"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type generatorEnv struct {
	team     *domain.Team
	routines repository.RoutineRepo
	tasks    repository.TaskRepo
}

func newGeneratorEnv(t *testing.T) *generatorEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	env := &generatorEnv{
		routines: repository.NewSQLiteRoutineRepo(database),
		tasks:    repository.NewSQLiteTaskRepo(database),
	}
	env.team = testutil.NewTestTeam("Acme")
	require.NoError(t, repository.NewSQLiteTeamRepo(database).Create(context.Background(), env.team))
	return env
}

func (e *generatorEnv) addRoutine(t *testing.T, title string, opts ...testutil.RoutineOption) *domain.Routine {
	t.Helper()
	rt := testutil.NewTestRoutine(e.team.ID, title, opts...)
	require.NoError(t, e.routines.Create(context.Background(), rt))
	return rt
}

func TestGenerator_Run_CreatesTasksForExpandedDates(t *testing.T) {
	env := newGeneratorEnv(t)
	env.addRoutine(t, "Weekly sync",
		testutil.WithRule([]domain.Weekday{domain.Mon, domain.Wed, domain.Fri}, "09:00"),
		testutil.WithDefaultAssignee("u-alice"),
	)
	gen := NewGenerator(env.routines, env.tasks, quietLogger())
	ctx := context.Background()

	// 2024-01-01 is a Monday.
	res, err := gen.Run(ctx, env.team.ID, "u-actor", date(2024, 1, 1), date(2024, 1, 7))
	require.NoError(t, err)

	assert.Equal(t, 1, res.Routines)
	assert.Equal(t, 3, res.Created)
	assert.Equal(t, 0, res.Skipped)
	assert.Equal(t, 0, res.Failed)

	tasks, err := env.tasks.ListByTeam(ctx, env.team.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.True(t, date(2024, 1, 1).Equal(*tasks[0].DueDate))
	assert.True(t, date(2024, 1, 3).Equal(*tasks[1].DueDate))
	assert.True(t, date(2024, 1, 5).Equal(*tasks[2].DueDate))
	for _, task := range tasks {
		assert.Equal(t, "Weekly sync", task.Title)
		assert.Equal(t, domain.TaskPending, task.Status)
		assert.Equal(t, domain.SourceRoutine, task.Source)
		assert.Equal(t, "u-actor", task.CreatedBy)
		require.NotNil(t, task.Assignee)
		assert.Equal(t, "u-alice", *task.Assignee)
	}
}

func TestGenerator_Run_RerunIsIdempotent(t *testing.T) {
	env := newGeneratorEnv(t)
	env.addRoutine(t, "Weekly sync", testutil.WithRule([]domain.Weekday{domain.Mon}, ""))
	gen := NewGenerator(env.routines, env.tasks, quietLogger())
	ctx := context.Background()

	first, err := gen.Run(ctx, env.team.ID, "u-actor", date(2024, 1, 1), date(2024, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, 5, first.Created)

	second, err := gen.Run(ctx, env.team.ID, "u-actor", date(2024, 1, 1), date(2024, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 5, second.Skipped)

	tasks, err := env.tasks.ListByTeam(ctx, env.team.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 5)
}

func TestGenerator_Run_OverlappingRangesFillOnlyGaps(t *testing.T) {
	env := newGeneratorEnv(t)
	env.addRoutine(t, "Weekly sync", testutil.WithRule([]domain.Weekday{domain.Mon}, ""))
	gen := NewGenerator(env.routines, env.tasks, quietLogger())
	ctx := context.Background()

	// Mondays in January 2024: 1, 8, 15, 22, 29.
	res, err := gen.Run(ctx, env.team.ID, "u-actor", date(2024, 1, 1), date(2024, 1, 14))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)

	res, err = gen.Run(ctx, env.team.ID, "u-actor", date(2024, 1, 8), date(2024, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Created)
	assert.Equal(t, 1, res.Skipped)
}

func TestGenerator_Run_SkipsInactiveAndEmptyRuleRoutines(t *testing.T) {
	env := newGeneratorEnv(t)
	env.addRoutine(t, "Paused", testutil.WithActive(false))
	env.addRoutine(t, "No days", testutil.WithRule(nil, "09:00"))
	gen := NewGenerator(env.routines, env.tasks, quietLogger())
	ctx := context.Background()

	res, err := gen.Run(ctx, env.team.ID, "u-actor", date(2024, 1, 1), date(2024, 1, 31))
	require.NoError(t, err)

	// The paused routine is not even considered; the empty rule expands
	// to nothing without erroring.
	assert.Equal(t, 1, res.Routines)
	assert.Equal(t, 0, res.Created)
	assert.Equal(t, 0, res.Failed)

	tasks, err := env.tasks.ListByTeam(ctx, env.team.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestGenerator_Run_InvalidRange(t *testing.T) {
	env := newGeneratorEnv(t)
	gen := NewGenerator(env.routines, env.tasks, quietLogger())

	_, err := gen.Run(context.Background(), env.team.ID, "u-actor", date(2024, 1, 31), date(2024, 1, 1))
	assert.Error(t, err)
}

// failingTaskRepo errors on inserts for one routine and delegates the rest.
type failingTaskRepo struct {
	repository.TaskRepo
	failRoutineID string
}

func (f *failingTaskRepo) CreateFromRoutine(ctx context.Context, task *domain.Task) (bool, error) {
	if task.RoutineID != nil && *task.RoutineID == f.failRoutineID {
		return false, errors.New("disk full")
	}
	return f.TaskRepo.CreateFromRoutine(ctx, task)
}

func TestGenerator_Run_RoutineFailureIsIsolated(t *testing.T) {
	env := newGeneratorEnv(t)
	bad := env.addRoutine(t, "Cursed", testutil.WithRule([]domain.Weekday{domain.Mon}, ""))
	env.addRoutine(t, "Healthy", testutil.WithRule([]domain.Weekday{domain.Wed}, ""))

	tasks := &failingTaskRepo{TaskRepo: env.tasks, failRoutineID: bad.ID}
	gen := NewGenerator(env.routines, tasks, quietLogger())
	ctx := context.Background()

	res, err := gen.Run(ctx, env.team.ID, "u-actor", date(2024, 1, 1), date(2024, 1, 7))
	require.NoError(t, err)

	assert.Equal(t, 2, res.Routines)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Created, "healthy routine still generated")
}

func TestMaterialize(t *testing.T) {
	clientID := "c-1"
	assignee := "u-alice"
	rt := &domain.Routine{
		ID:                "r-1",
		TeamID:            "team-1",
		ClientID:          &clientID,
		Title:             "Weekly sync",
		DefaultAssigneeID: &assignee,
	}
	due := date(2024, 1, 3)

	draft := Materialize(rt, due, "u-actor")

	assert.Empty(t, draft.ID, "generator assigns the id")
	assert.Equal(t, "team-1", draft.TeamID)
	assert.Equal(t, "Weekly sync", draft.Title)
	assert.Equal(t, domain.TaskPending, draft.Status)
	assert.Equal(t, domain.SourceRoutine, draft.Source)
	assert.Equal(t, "u-actor", draft.CreatedBy)
	require.NotNil(t, draft.RoutineID)
	assert.Equal(t, "r-1", *draft.RoutineID)
	require.NotNil(t, draft.DueDate)
	assert.True(t, due.Equal(*draft.DueDate))
	require.NotNil(t, draft.ClientID)
	assert.Equal(t, "c-1", *draft.ClientID)
	require.NotNil(t, draft.Assignee)
	assert.Equal(t, "u-alice", *draft.Assignee)
}
