package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmorishita/tasklane/internal/domain"
	"github.com/kmorishita/tasklane/internal/testutil"
)

func TestSessionRepo_CreateAndGetByToken(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	s := &domain.Session{
		Token:     "tok-123",
		UserID:    "u-alice",
		CreatedAt: now,
		ExpiresAt: now.Add(30 * 24 * time.Hour),
	}
	require.NoError(t, repo.Create(ctx, s))

	fetched, err := repo.GetByToken(ctx, "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "u-alice", fetched.UserID)
	assert.True(t, s.ExpiresAt.Equal(fetched.ExpiresAt))
}

func TestSessionRepo_GetByToken_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)

	_, err := repo.GetByToken(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(database)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, &domain.Session{
		Token: "tok-123", UserID: "u-alice", CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}))
	require.NoError(t, repo.Delete(ctx, "tok-123"))

	_, err := repo.GetByToken(ctx, "tok-123")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInviteRepo_CreateAndGetByCode(t *testing.T) {
	database := testutil.NewTestDB(t)
	team := seedTeam(t, database)
	repo := NewSQLiteInviteRepo(database)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	expires := now.Add(7 * 24 * time.Hour)
	inv := &domain.Invite{
		Code:      "join-me",
		TeamID:    team.ID,
		CreatedBy: "u-alice",
		CreatedAt: now,
		ExpiresAt: &expires,
	}
	require.NoError(t, repo.Create(ctx, inv))

	fetched, err := repo.GetByCode(ctx, "join-me")
	require.NoError(t, err)
	assert.Equal(t, team.ID, fetched.TeamID)
	require.NotNil(t, fetched.ExpiresAt)
	assert.True(t, expires.Equal(*fetched.ExpiresAt))
}

func TestInviteRepo_NoExpiry(t *testing.T) {
	database := testutil.NewTestDB(t)
	team := seedTeam(t, database)
	repo := NewSQLiteInviteRepo(database)
	ctx := context.Background()

	inv := &domain.Invite{
		Code:      "evergreen",
		TeamID:    team.ID,
		CreatedBy: "u-alice",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, inv))

	fetched, err := repo.GetByCode(ctx, "evergreen")
	require.NoError(t, err)
	assert.Nil(t, fetched.ExpiresAt)
	assert.False(t, fetched.Expired(time.Now().UTC().AddDate(10, 0, 0)))
}

func TestInviteRepo_GetByCode_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteInviteRepo(database)

	_, err := repo.GetByCode(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
