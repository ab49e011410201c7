package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kmorishita/tasklane/internal/domain"
	"github.com/kmorishita/tasklane/internal/repository"
	"github.com/kmorishita/tasklane/internal/task"
)

type taskService struct {
	tasks     repository.TaskRepo
	hierarchy *task.HierarchyResolver
}

func NewTaskService(tasks repository.TaskRepo) TaskService {
	return &taskService{
		tasks:     tasks,
		hierarchy: task.NewHierarchyResolver(tasks),
	}
}

func (s *taskService) Create(ctx context.Context, t *domain.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("task title is required")
	}
	if t.TeamID == "" {
		return fmt.Errorf("task team is required")
	}
	if t.ParentID != nil {
		parent, err := s.tasks.GetByID(ctx, *t.ParentID)
		if err != nil {
			return err
		}
		// Subtasks form a single level only.
		if parent.IsSubtask() {
			return fmt.Errorf("subtasks cannot have their own subtasks")
		}
	}

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Status == "" {
		t.Status = domain.TaskPending
	}
	if t.Source == "" {
		t.Source = domain.SourceManual
	}
	return s.tasks.Create(ctx, t)
}

func (s *taskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *taskService) ListByTeam(ctx context.Context, teamID string) ([]*domain.Task, error) {
	return s.tasks.ListByTeam(ctx, teamID)
}

func (s *taskService) ListByAssignee(ctx context.Context, teamID, userID string) ([]*domain.Task, error) {
	return s.tasks.ListByAssignee(ctx, teamID, userID)
}

func (s *taskService) ListChildren(ctx context.Context, parentID string) ([]*domain.Task, error) {
	return s.tasks.ListChildren(ctx, parentID)
}

func (s *taskService) Toggle(ctx context.Context, id string, wantCompleted bool) (*ToggleResult, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next := task.Toggle(t.Status, wantCompleted)
	if err := s.tasks.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	return &ToggleResult{Previous: t.Status, Current: next}, nil
}

func (s *taskService) Open(ctx context.Context, id string) (task.OpenResolution, error) {
	return s.hierarchy.ResolveOpen(ctx, id)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	return s.tasks.Delete(ctx, id)
}
