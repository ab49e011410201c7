// Package task holds the pure task-lifecycle logic: the status state machine
// and the open-request hierarchy resolution.
package task

import "github.com/kmorishita/tasklane/internal/domain"

// Toggle computes the status after a completion checkbox flip.
//
// Un-completing always lands on pending, even for a task that was
// in_progress before completion. The transition is lossy on purpose; the
// prior status is not remembered.
//
// Callers apply the new status optimistically before the store confirms the
// write, and must revert to the prior status themselves if confirmation
// fails. There is no transactional rollback at this layer.
func Toggle(current domain.TaskStatus, wantCompleted bool) domain.TaskStatus {
	if wantCompleted {
		return domain.TaskCompleted
	}
	return domain.TaskPending
}
