package task

import (
	"context"
	"fmt"

	"github.com/kmorishita/tasklane/internal/domain"
)

// OpenResolution tells the caller how to open a task link. A direct link to a
// subtask is redirected to its parent with the subtask carried as the focus
// hint, so the UI opens the parent and highlights the child.
type OpenResolution struct {
	Task *domain.Task
	// ParentID and FocusChildID are set only when redirecting.
	ParentID     string
	FocusChildID string
}

// Redirected reports whether the caller should navigate to the parent
// instead of opening the task directly.
func (r OpenResolution) Redirected() bool {
	return r.ParentID != ""
}

// TaskReader is the subset of the task repository the resolver needs.
type TaskReader interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
}

// HierarchyResolver resolves direct task links against the single-level
// parent/child hierarchy.
type HierarchyResolver struct {
	tasks TaskReader
}

// NewHierarchyResolver creates a HierarchyResolver.
func NewHierarchyResolver(tasks TaskReader) *HierarchyResolver {
	return &HierarchyResolver{tasks: tasks}
}

// ResolveOpen resolves a request to open taskID. Resolving a redirect's
// target again yields a direct resolution, so following one redirect always
// terminates.
func (h *HierarchyResolver) ResolveOpen(ctx context.Context, taskID string) (OpenResolution, error) {
	t, err := h.tasks.GetByID(ctx, taskID)
	if err != nil {
		return OpenResolution{}, fmt.Errorf("resolving task link: %w", err)
	}
	if t.ParentID == nil {
		return OpenResolution{Task: t}, nil
	}
	return OpenResolution{
		Task:         t,
		ParentID:     *t.ParentID,
		FocusChildID: t.ID,
	}, nil
}
