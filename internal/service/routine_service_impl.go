package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kmorishita/tasklane/internal/domain"
	"github.com/kmorishita/tasklane/internal/repository"
)

type routineService struct {
	routines repository.RoutineRepo
}

func NewRoutineService(routines repository.RoutineRepo) RoutineService {
	return &routineService{routines: routines}
}

func (s *routineService) Create(ctx context.Context, r *domain.Routine) error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("routine title is required")
	}
	if r.TeamID == "" {
		return fmt.Errorf("routine team is required")
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now
	r.Active = true
	// An empty or malformed rule is stored as-is; it simply generates no
	// tasks. Validation at save time is deliberately not stricter than the
	// expansion itself.
	return s.routines.Create(ctx, r)
}

func (s *routineService) GetByID(ctx context.Context, id string) (*domain.Routine, error) {
	return s.routines.GetByID(ctx, id)
}

func (s *routineService) ListByTeam(ctx context.Context, teamID string, activeOnly bool) ([]*domain.Routine, error) {
	return s.routines.ListByTeam(ctx, teamID, activeOnly)
}

func (s *routineService) Update(ctx context.Context, r *domain.Routine) error {
	r.UpdatedAt = time.Now().UTC()
	return s.routines.Update(ctx, r)
}

func (s *routineService) Delete(ctx context.Context, id string) error {
	return s.routines.Delete(ctx, id)
}
