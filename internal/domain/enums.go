package domain

type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// CanManageRoutines reports whether the role may create or edit routines.
func (r Role) CanManageRoutines() bool {
	return r == RoleOwner || r == RoleAdmin
}

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// ValidTaskStatuses is the canonical set of accepted task status strings.
var ValidTaskStatuses = map[string]bool{
	"pending": true, "in_progress": true, "completed": true, "cancelled": true,
}

type TaskSource string

const (
	SourceRoutine TaskSource = "routine"
	SourceManual  TaskSource = "manual"
)
