package repository

import (
	"context"

	"github.com/kmorishita/tasklane/internal/domain"
)

type TeamRepo interface {
	Create(ctx context.Context, t *domain.Team) error
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Team, error)
	Update(ctx context.Context, t *domain.Team) error
	Delete(ctx context.Context, id string) error
}

type MemberRepo interface {
	// Add inserts a membership row, ignoring duplicates: joining a team the
	// user already belongs to is a no-op.
	Add(ctx context.Context, m *domain.TeamMember) error
	Remove(ctx context.Context, teamID, userID string) error
	Get(ctx context.Context, teamID, userID string) (*domain.TeamMember, error)
	IsMember(ctx context.Context, teamID, userID string) (bool, error)
	ListByTeam(ctx context.Context, teamID string) ([]*domain.TeamMember, error)
	// ListByUser returns memberships ordered by join time ascending with
	// team id as tiebreak, so default-team selection is deterministic.
	ListByUser(ctx context.Context, userID string) ([]*domain.TeamMember, error)
}

type InviteRepo interface {
	Create(ctx context.Context, i *domain.Invite) error
	GetByCode(ctx context.Context, code string) (*domain.Invite, error)
	Delete(ctx context.Context, code string) error
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.Session) error
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}

type RoutineRepo interface {
	Create(ctx context.Context, r *domain.Routine) error
	GetByID(ctx context.Context, id string) (*domain.Routine, error)
	ListByTeam(ctx context.Context, teamID string, activeOnly bool) ([]*domain.Routine, error)
	Update(ctx context.Context, r *domain.Routine) error
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	// CreateFromRoutine inserts a routine-generated task through the
	// insert-or-ignore boundary. Returns false when a task for the same
	// (routine_id, due_date) already exists.
	CreateFromRoutine(ctx context.Context, t *domain.Task) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByTeam(ctx context.Context, teamID string) ([]*domain.Task, error)
	ListByAssignee(ctx context.Context, teamID, userID string) ([]*domain.Task, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) error
	Delete(ctx context.Context, id string) error
}
