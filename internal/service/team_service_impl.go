package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kmorishita/tasklane/internal/db"
	"github.com/kmorishita/tasklane/internal/domain"
	"github.com/kmorishita/tasklane/internal/repository"
)

type teamService struct {
	teams   repository.TeamRepo
	members repository.MemberRepo
	invites repository.InviteRepo
	uow     db.UnitOfWork
}

func NewTeamService(teams repository.TeamRepo, members repository.MemberRepo, invites repository.InviteRepo, uow db.UnitOfWork) TeamService {
	return &teamService{teams: teams, members: members, invites: invites, uow: uow}
}

func (s *teamService) Create(ctx context.Context, name, ownerUserID string) (*domain.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("team name is required")
	}
	if ownerUserID == "" {
		return nil, fmt.Errorf("owner user is required")
	}

	now := time.Now().UTC()
	team := &domain.Team{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Team and owner membership are created atomically: a team without an
	// owner row would be unreachable by the tenant resolver.
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTeams := repository.NewSQLiteTeamRepo(tx)
		txMembers := repository.NewSQLiteMemberRepo(tx)

		if err := txTeams.Create(ctx, team); err != nil {
			return err
		}
		return txMembers.Add(ctx, &domain.TeamMember{
			TeamID:   team.ID,
			UserID:   ownerUserID,
			Role:     domain.RoleOwner,
			JoinedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	return s.teams.GetByID(ctx, id)
}

func (s *teamService) ListForUser(ctx context.Context, userID string) ([]*domain.Team, error) {
	return s.teams.ListByUser(ctx, userID)
}

func (s *teamService) Members(ctx context.Context, teamID string) ([]*domain.TeamMember, error) {
	return s.members.ListByTeam(ctx, teamID)
}

func (s *teamService) Member(ctx context.Context, teamID, userID string) (*domain.TeamMember, error) {
	return s.members.Get(ctx, teamID, userID)
}

func (s *teamService) RemoveMember(ctx context.Context, teamID, userID string) error {
	return s.members.Remove(ctx, teamID, userID)
}

func (s *teamService) CreateInvite(ctx context.Context, teamID, createdBy string, ttl time.Duration) (*domain.Invite, error) {
	now := time.Now().UTC()
	invite := &domain.Invite{
		Code:      uuid.New().String(),
		TeamID:    teamID,
		CreatedBy: createdBy,
		CreatedAt: now,
	}
	if ttl > 0 {
		expires := now.Add(ttl)
		invite.ExpiresAt = &expires
	}
	if err := s.invites.Create(ctx, invite); err != nil {
		return nil, err
	}
	return invite, nil
}

func (s *teamService) JoinByInvite(ctx context.Context, code, userID string) (*domain.Team, error) {
	invite, err := s.invites.GetByCode(ctx, code)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInviteInvalid
		}
		return nil, err
	}
	if invite.Expired(time.Now().UTC()) {
		return nil, ErrInviteInvalid
	}

	team, err := s.teams.GetByID(ctx, invite.TeamID)
	if err != nil {
		return nil, err
	}

	// Add is insert-or-ignore on (team_id, user_id); joining twice is a no-op.
	err = s.members.Add(ctx, &domain.TeamMember{
		TeamID:   team.ID,
		UserID:   userID,
		Role:     domain.RoleMember,
		JoinedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}
