package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kmorishita/tasklane/internal/domain"
)

func TestFormatTaskTable(t *testing.T) {
	due := time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)
	parentID := "11111111-aaaa-bbbb-cccc-000000000000"
	tasks := []*domain.Task{
		{
			ID:      parentID,
			Title:   "Monthly report",
			Status:  domain.TaskPending,
			DueDate: &due,
			Source:  domain.SourceRoutine,
		},
		{
			ID:       "22222222-aaaa-bbbb-cccc-000000000000",
			Title:    "Collect figures",
			Status:   domain.TaskCompleted,
			ParentID: &parentID,
			Source:   domain.SourceManual,
		},
	}

	out := FormatTaskTable(tasks)

	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Monthly report")
	assert.Contains(t, out, "11111111")
	assert.NotContains(t, out, "11111111-aaaa", "ids are shortened")
	assert.Contains(t, out, "2024-03-18")
	assert.Contains(t, out, "└ Collect figures", "subtasks are indented under the parent")
}

func TestFormatTaskTable_Empty(t *testing.T) {
	out := FormatTaskTable(nil)
	assert.Contains(t, out, "ID")
	assert.Equal(t, 2, strings.Count(out, "\n"), "header and separator only")
}

func TestFormatMemberTable(t *testing.T) {
	members := []*domain.TeamMember{
		{UserID: "u-alice", Role: domain.RoleOwner, JoinedAt: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)},
		{UserID: "u-bob", Role: domain.RoleMember, JoinedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	}

	out := FormatMemberTable(members)

	assert.Contains(t, out, "u-alice")
	assert.Contains(t, out, "owner")
	assert.Contains(t, out, "2024-01-05")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "12345678", shortID("123456789abc"))
	assert.Equal(t, "short", shortID("short"))
}
