package service

import (
	"context"
	"errors"
	"time"

	"github.com/kmorishita/tasklane/internal/domain"
	"github.com/kmorishita/tasklane/internal/task"
)

// ErrInviteInvalid is returned when an invite code does not resolve to a
// joinable team (unknown or expired).
var ErrInviteInvalid = errors.New("invite code is invalid or expired")

// ErrSessionInvalid is returned when a guest token does not resolve to a
// live session.
var ErrSessionInvalid = errors.New("session token is invalid or expired")

type TeamService interface {
	Create(ctx context.Context, name, ownerUserID string) (*domain.Team, error)
	GetByID(ctx context.Context, id string) (*domain.Team, error)
	ListForUser(ctx context.Context, userID string) ([]*domain.Team, error)
	Members(ctx context.Context, teamID string) ([]*domain.TeamMember, error)
	Member(ctx context.Context, teamID, userID string) (*domain.TeamMember, error)
	RemoveMember(ctx context.Context, teamID, userID string) error
	CreateInvite(ctx context.Context, teamID, createdBy string, ttl time.Duration) (*domain.Invite, error)
	JoinByInvite(ctx context.Context, code, userID string) (*domain.Team, error)
}

type RoutineService interface {
	Create(ctx context.Context, r *domain.Routine) error
	GetByID(ctx context.Context, id string) (*domain.Routine, error)
	ListByTeam(ctx context.Context, teamID string, activeOnly bool) ([]*domain.Routine, error)
	Update(ctx context.Context, r *domain.Routine) error
	Delete(ctx context.Context, id string) error
}

// ToggleResult carries both statuses of a completed toggle so callers that
// applied the change optimistically can revert on a later failure.
type ToggleResult struct {
	Previous domain.TaskStatus
	Current  domain.TaskStatus
}

type TaskService interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByTeam(ctx context.Context, teamID string) ([]*domain.Task, error)
	ListByAssignee(ctx context.Context, teamID, userID string) ([]*domain.Task, error)
	ListChildren(ctx context.Context, parentID string) ([]*domain.Task, error)
	Toggle(ctx context.Context, id string, wantCompleted bool) (*ToggleResult, error)
	Open(ctx context.Context, id string) (task.OpenResolution, error)
	Delete(ctx context.Context, id string) error
}

type AuthService interface {
	IssueSession(ctx context.Context, userID string, ttl time.Duration) (*domain.Session, error)
	// ResolveToken validates a guest token. Unknown and expired tokens both
	// surface as ErrSessionInvalid.
	ResolveToken(ctx context.Context, token string) (*domain.Session, error)
}

// Dashboard is the batched read backing a dashboard load.
type Dashboard struct {
	Members  []*domain.TeamMember
	Routines []*domain.Routine
	Tasks    []*domain.Task
	MyTasks  []*domain.Task
}

type DashboardService interface {
	Load(ctx context.Context, teamID, userID string) (*Dashboard, error)
}
