package httpapi

import (
	"time"

	"github.com/kmorishita/tasklane/internal/domain"
	"github.com/kmorishita/tasklane/internal/service"
	"github.com/kmorishita/tasklane/internal/task"
)

const dateLayout = "2006-01-02"

type teamJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type memberJSON struct {
	TeamID   string `json:"team_id"`
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	JoinedAt string `json:"joined_at"`
}

type ruleJSON struct {
	Days []string `json:"days"`
	Time string   `json:"time,omitempty"`
}

type routineJSON struct {
	ID                string   `json:"id"`
	TeamID            string   `json:"team_id"`
	ClientID          *string  `json:"client_id,omitempty"`
	Title             string   `json:"title"`
	Rule              ruleJSON `json:"frequency"`
	DefaultAssigneeID *string  `json:"default_assignee_id,omitempty"`
	Active            bool     `json:"active"`
}

type taskJSON struct {
	ID        string  `json:"id"`
	TeamID    string  `json:"team_id"`
	ClientID  *string `json:"client_id,omitempty"`
	RoutineID *string `json:"routine_id,omitempty"`
	ParentID  *string `json:"parent_id,omitempty"`
	Title     string  `json:"title"`
	Status    string  `json:"status"`
	DueDate   string  `json:"due_date,omitempty"`
	Assignee  *string `json:"assigned_to,omitempty"`
	CreatedBy string  `json:"created_by"`
	Source    string  `json:"source_type"`
}

type toggleJSON struct {
	Previous string `json:"previous_status"`
	Current  string `json:"current_status"`
}

type openJSON struct {
	Task         *taskJSON `json:"task,omitempty"`
	RedirectTo   string    `json:"redirect_to,omitempty"`
	FocusChildID string    `json:"focus_child_id,omitempty"`
}

type dashboardJSON struct {
	Members  []memberJSON  `json:"members"`
	Routines []routineJSON `json:"routines"`
	Tasks    []taskJSON    `json:"tasks"`
	MyTasks  []taskJSON    `json:"my_tasks"`
}

type generateResultJSON struct {
	Routines int `json:"routines"`
	Created  int `json:"created"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

func toTeamJSON(t *domain.Team) teamJSON {
	return teamJSON{ID: t.ID, Name: t.Name}
}

func toMemberJSON(m *domain.TeamMember) memberJSON {
	return memberJSON{
		TeamID:   m.TeamID,
		UserID:   m.UserID,
		Role:     string(m.Role),
		JoinedAt: m.JoinedAt.Format(time.RFC3339),
	}
}

func toRuleJSON(r domain.RecurrenceRule) ruleJSON {
	days := make([]string, 0, len(r.Days))
	for _, d := range r.Days {
		days = append(days, string(d))
	}
	return ruleJSON{Days: days, Time: r.Time}
}

func (r ruleJSON) toDomain() domain.RecurrenceRule {
	days := make([]domain.Weekday, 0, len(r.Days))
	for _, d := range r.Days {
		days = append(days, domain.Weekday(d))
	}
	return domain.RecurrenceRule{Days: days, Time: r.Time}
}

func toRoutineJSON(r *domain.Routine) routineJSON {
	return routineJSON{
		ID:                r.ID,
		TeamID:            r.TeamID,
		ClientID:          r.ClientID,
		Title:             r.Title,
		Rule:              toRuleJSON(r.Rule),
		DefaultAssigneeID: r.DefaultAssigneeID,
		Active:            r.Active,
	}
}

func toTaskJSON(t *domain.Task) taskJSON {
	out := taskJSON{
		ID:        t.ID,
		TeamID:    t.TeamID,
		ClientID:  t.ClientID,
		RoutineID: t.RoutineID,
		ParentID:  t.ParentID,
		Title:     t.Title,
		Status:    string(t.Status),
		Assignee:  t.Assignee,
		CreatedBy: t.CreatedBy,
		Source:    string(t.Source),
	}
	if t.DueDate != nil {
		out.DueDate = t.DueDate.Format(dateLayout)
	}
	return out
}

func toTaskListJSON(tasks []*domain.Task) []taskJSON {
	out := make([]taskJSON, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskJSON(t))
	}
	return out
}

func toOpenJSON(res task.OpenResolution) openJSON {
	if res.Redirected() {
		return openJSON{RedirectTo: res.ParentID, FocusChildID: res.FocusChildID}
	}
	t := toTaskJSON(res.Task)
	return openJSON{Task: &t}
}

func toDashboardJSON(d *service.Dashboard) dashboardJSON {
	out := dashboardJSON{
		Members:  make([]memberJSON, 0, len(d.Members)),
		Routines: make([]routineJSON, 0, len(d.Routines)),
		Tasks:    toTaskListJSON(d.Tasks),
		MyTasks:  toTaskListJSON(d.MyTasks),
	}
	for _, m := range d.Members {
		out.Members = append(out.Members, toMemberJSON(m))
	}
	for _, r := range d.Routines {
		out.Routines = append(out.Routines, toRoutineJSON(r))
	}
	return out
}
