package formatter

import (
	"github.com/kmorishita/tasklane/internal/domain"
)

const dateLayout = "2006-01-02"

// FormatTaskTable renders tasks as an aligned table.
func FormatTaskTable(tasks []*domain.Task) string {
	headers := []string{"ID", "TITLE", "STATUS", "DUE", "SOURCE"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.Format(dateLayout)
		}
		title := t.Title
		if t.IsSubtask() {
			title = "  └ " + title
		}
		rows = append(rows, []string{
			shortID(t.ID),
			title,
			StatusStyle(t.Status).Render(string(t.Status)),
			due,
			string(t.Source),
		})
	}
	return RenderTable(headers, rows)
}

// FormatMemberTable renders team members as an aligned table.
func FormatMemberTable(members []*domain.TeamMember) string {
	headers := []string{"USER", "ROLE", "JOINED"}
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []string{
			m.UserID,
			string(m.Role),
			m.JoinedAt.Format(dateLayout),
		})
	}
	return RenderTable(headers, rows)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
