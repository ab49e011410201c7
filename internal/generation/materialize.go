package generation

import (
	"time"

	"github.com/kmorishita/tasklane/internal/domain"
)

// Materialize turns one expanded date into a task draft for the routine.
// Pure: no I/O, no uniqueness decision. The draft carries no ID or
// timestamps; the generator assigns those just before insert. Idempotency is
// the persistence boundary's job: the same (routine, date) pair will be
// materialized again on every re-run over an overlapping range.
func Materialize(r *domain.Routine, dueDate time.Time, actorUserID string) *domain.Task {
	due := dueDate
	routineID := r.ID
	return &domain.Task{
		TeamID:    r.TeamID,
		ClientID:  r.ClientID,
		RoutineID: &routineID,
		Title:     r.Title,
		Status:    domain.TaskPending,
		DueDate:   &due,
		Assignee:  r.DefaultAssigneeID,
		CreatedBy: actorUserID,
		Source:    domain.SourceRoutine,
	}
}
