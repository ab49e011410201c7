package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kmorishita/tasklane/internal/domain"
)

// GeneratedWorkspace holds converted import content ready for persistence.
// Tasks are ordered parents before children, so persisting them in slice
// order never hits a dangling parent id.
type GeneratedWorkspace struct {
	Routines []*domain.Routine
	Tasks    []*domain.Task
}

// Convert transforms a validated ImportSchema into domain objects scoped to
// the given team. Call ValidateImportSchema first; Convert assumes the
// schema is valid.
func Convert(schema *ImportSchema, teamID, actorUserID string) (*GeneratedWorkspace, error) {
	now := time.Now().UTC()

	routines := make([]*domain.Routine, 0, len(schema.Routines))
	for _, r := range schema.Routines {
		days := make([]domain.Weekday, 0, len(r.Days))
		for _, d := range r.Days {
			days = append(days, domain.Weekday(d))
		}
		routines = append(routines, &domain.Routine{
			ID:                uuid.New().String(),
			TeamID:            teamID,
			ClientID:          r.ClientID,
			Title:             r.Title,
			Rule:              domain.RecurrenceRule{Days: days, Time: r.Time},
			DefaultAssigneeID: r.DefaultAssigneeID,
			Active:            true,
			CreatedBy:         actorUserID,
			CreatedAt:         now,
			UpdatedAt:         now,
		})
	}

	refMap := make(map[string]string, len(schema.Tasks))
	tasks := make([]*domain.Task, 0, len(schema.Tasks))
	for _, t := range schema.Tasks {
		id := uuid.New().String()
		refMap[t.Ref] = id

		status := domain.TaskPending
		if t.Status != "" {
			status = domain.TaskStatus(t.Status)
		}

		var parentID *string
		if t.ParentRef != nil {
			resolved, ok := refMap[*t.ParentRef]
			if !ok {
				return nil, fmt.Errorf("parent_ref %q not found", *t.ParentRef)
			}
			parentID = &resolved
		}

		tasks = append(tasks, &domain.Task{
			ID:        id,
			TeamID:    teamID,
			ClientID:  t.ClientID,
			ParentID:  parentID,
			Title:     t.Title,
			Status:    status,
			DueDate:   parseOptionalDate(t.DueDate),
			Assignee:  t.Assignee,
			CreatedBy: actorUserID,
			Source:    domain.SourceManual,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	return &GeneratedWorkspace{Routines: routines, Tasks: tasks}, nil
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}
