package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmorishita/tasklane/internal/domain"
	"github.com/kmorishita/tasklane/internal/repository"
	"github.com/kmorishita/tasklane/internal/testutil"
)

func newTeamService(t *testing.T) (TeamService, repository.MemberRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	members := repository.NewSQLiteMemberRepo(database)
	svc := NewTeamService(
		repository.NewSQLiteTeamRepo(database),
		members,
		repository.NewSQLiteInviteRepo(database),
		testutil.NewTestUoW(database),
	)
	return svc, members
}

func TestTeamService_Create(t *testing.T) {
	svc, members := newTeamService(t)
	ctx := context.Background()

	team, err := svc.Create(ctx, "  Acme  ", "u-alice")
	require.NoError(t, err)
	assert.Equal(t, "Acme", team.Name, "name is trimmed")
	assert.NotEmpty(t, team.ID)

	m, err := members.Get(ctx, team.ID, "u-alice")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOwner, m.Role)
}

func TestTeamService_Create_Validation(t *testing.T) {
	svc, _ := newTeamService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "   ", "u-alice")
	assert.Error(t, err)

	_, err = svc.Create(ctx, "Acme", "")
	assert.Error(t, err)
}

// When the owner membership insert fails, the team row must roll back too.
func TestTeamService_Create_Atomic(t *testing.T) {
	database := testutil.NewTestDB(t)
	teams := repository.NewSQLiteTeamRepo(database)
	uow := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 2, // team insert succeeds, member insert fails
		Err:    errors.New("injected"),
	}
	svc := NewTeamService(teams, repository.NewSQLiteMemberRepo(database), repository.NewSQLiteInviteRepo(database), uow)
	ctx := context.Background()

	_, err := svc.Create(ctx, "Acme", "u-alice")
	require.Error(t, err)

	listed, err := teams.ListByUser(ctx, "u-alice")
	require.NoError(t, err)
	assert.Empty(t, listed, "no partial team survives the rollback")
}

func TestTeamService_JoinByInvite(t *testing.T) {
	svc, members := newTeamService(t)
	ctx := context.Background()

	team, err := svc.Create(ctx, "Acme", "u-alice")
	require.NoError(t, err)

	invite, err := svc.CreateInvite(ctx, team.ID, "u-alice", 7*24*time.Hour)
	require.NoError(t, err)

	joined, err := svc.JoinByInvite(ctx, invite.Code, "u-bob")
	require.NoError(t, err)
	assert.Equal(t, team.ID, joined.ID)

	m, err := members.Get(ctx, team.ID, "u-bob")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, m.Role, "invites always grant the member role")
}

func TestTeamService_JoinByInvite_TwiceIsNoOp(t *testing.T) {
	svc, members := newTeamService(t)
	ctx := context.Background()

	team, err := svc.Create(ctx, "Acme", "u-alice")
	require.NoError(t, err)
	invite, err := svc.CreateInvite(ctx, team.ID, "u-alice", 0)
	require.NoError(t, err)

	_, err = svc.JoinByInvite(ctx, invite.Code, "u-bob")
	require.NoError(t, err)
	_, err = svc.JoinByInvite(ctx, invite.Code, "u-bob")
	require.NoError(t, err)

	list, err := members.ListByTeam(ctx, team.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestTeamService_JoinByInvite_UnknownCode(t *testing.T) {
	svc, _ := newTeamService(t)

	_, err := svc.JoinByInvite(context.Background(), "bogus", "u-bob")
	assert.ErrorIs(t, err, ErrInviteInvalid)
}

func TestTeamService_JoinByInvite_Expired(t *testing.T) {
	svc, _ := newTeamService(t)
	ctx := context.Background()

	team, err := svc.Create(ctx, "Acme", "u-alice")
	require.NoError(t, err)

	invite, err := svc.CreateInvite(ctx, team.ID, "u-alice", time.Nanosecond)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	_, err = svc.JoinByInvite(ctx, invite.Code, "u-bob")
	assert.ErrorIs(t, err, ErrInviteInvalid)
}

func TestTeamService_CreateInvite_ZeroTTLNeverExpires(t *testing.T) {
	svc, _ := newTeamService(t)
	ctx := context.Background()

	team, err := svc.Create(ctx, "Acme", "u-alice")
	require.NoError(t, err)

	invite, err := svc.CreateInvite(ctx, team.ID, "u-alice", 0)
	require.NoError(t, err)
	assert.Nil(t, invite.ExpiresAt)
}

func TestTeamService_RemoveMember(t *testing.T) {
	svc, members := newTeamService(t)
	ctx := context.Background()

	team, err := svc.Create(ctx, "Acme", "u-alice")
	require.NoError(t, err)
	invite, err := svc.CreateInvite(ctx, team.ID, "u-alice", 0)
	require.NoError(t, err)
	_, err = svc.JoinByInvite(ctx, invite.Code, "u-bob")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveMember(ctx, team.ID, "u-bob"))

	ok, err := members.IsMember(ctx, team.ID, "u-bob")
	require.NoError(t, err)
	assert.False(t, ok)
}
