package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/kmorishita/tasklane/internal/domain"
)

// Team options
type TeamOption func(*domain.Team)

func WithTeamID(id string) TeamOption {
	return func(t *domain.Team) {
		t.ID = id
	}
}

func NewTestTeam(name string, opts ...TeamOption) *domain.Team {
	now := time.Now().UTC()
	t := &domain.Team{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Member options
type MemberOption func(*domain.TeamMember)

func WithRole(r domain.Role) MemberOption {
	return func(m *domain.TeamMember) {
		m.Role = r
	}
}

func WithJoinedAt(at time.Time) MemberOption {
	return func(m *domain.TeamMember) {
		m.JoinedAt = at
	}
}

func NewTestMember(teamID, userID string, opts ...MemberOption) *domain.TeamMember {
	m := &domain.TeamMember{
		TeamID:   teamID,
		UserID:   userID,
		Role:     domain.RoleMember,
		JoinedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Routine options
type RoutineOption func(*domain.Routine)

func WithRule(days []domain.Weekday, at string) RoutineOption {
	return func(r *domain.Routine) {
		r.Rule = domain.RecurrenceRule{Days: days, Time: at}
	}
}

func WithClientID(id string) RoutineOption {
	return func(r *domain.Routine) {
		r.ClientID = &id
	}
}

func WithDefaultAssignee(userID string) RoutineOption {
	return func(r *domain.Routine) {
		r.DefaultAssigneeID = &userID
	}
}

func WithActive(active bool) RoutineOption {
	return func(r *domain.Routine) {
		r.Active = active
	}
}

func NewTestRoutine(teamID, title string, opts ...RoutineOption) *domain.Routine {
	now := time.Now().UTC()
	r := &domain.Routine{
		ID:        uuid.New().String(),
		TeamID:    teamID,
		Title:     title,
		Rule:      domain.RecurrenceRule{Days: []domain.Weekday{domain.Mon}},
		Active:    true,
		CreatedBy: "user-owner",
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Task options
type TaskOption func(*domain.Task)

func WithStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) {
		t.Status = s
	}
}

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = &d
	}
}

func WithParent(parentID string) TaskOption {
	return func(t *domain.Task) {
		t.ParentID = &parentID
	}
}

func WithRoutineID(routineID string) TaskOption {
	return func(t *domain.Task) {
		t.RoutineID = &routineID
		t.Source = domain.SourceRoutine
	}
}

func WithAssignee(userID string) TaskOption {
	return func(t *domain.Task) {
		t.Assignee = &userID
	}
}

func NewTestTask(teamID, title string, opts ...TaskOption) *domain.Task {
	now := time.Now().UTC()
	t := &domain.Task{
		ID:        uuid.New().String(),
		TeamID:    teamID,
		Title:     title,
		Status:    domain.TaskPending,
		CreatedBy: "user-owner",
		Source:    domain.SourceManual,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Date returns a UTC midnight calendar date, convenient for due dates.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
