package domain

import "time"

// Task is a unit of work with a calendar due date, a status, and an optional
// parent. Due dates are calendar dates in the organizational timezone; no
// time component is stored.
type Task struct {
	ID        string
	TeamID    string
	ClientID  *string
	RoutineID *string
	ParentID  *string
	Title     string
	Status    TaskStatus
	DueDate   *time.Time
	Assignee  *string
	CreatedBy string
	Source    TaskSource
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FromRoutine reports whether the task was produced by a generation run.
func (t *Task) FromRoutine() bool {
	return t.Source == SourceRoutine
}

// IsSubtask reports whether the task belongs to a parent task. Subtasks form
// a single level; children of children are not created.
func (t *Task) IsSubtask() bool {
	return t.ParentID != nil
}
