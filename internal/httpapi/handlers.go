package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/kmorishita/tasklane/internal/domain"
	"github.com/kmorishita/tasklane/internal/generation"
	"github.com/kmorishita/tasklane/internal/recurrence"
	"github.com/kmorishita/tasklane/internal/repository"
	"github.com/kmorishita/tasklane/internal/service"
	"github.com/kmorishita/tasklane/internal/tenancy"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Auth      service.AuthService
	Teams     service.TeamService
	Routines  service.RoutineService
	Tasks     service.TaskService
	Dashboard service.DashboardService
	Resolver  *tenancy.Resolver
	Generator *generation.Generator
}

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, s Services, log *logrus.Logger) {
	e.GET("/healthz", healthz())
	e.POST("/api/login", postLogin(s))

	authed := e.Group("/api", requireSession(s.Auth))
	authed.GET("/teams", getTeams(s))
	authed.POST("/teams", postTeams(s))
	authed.GET("/teams/current", getCurrentTeam(s))
	authed.POST("/teams/current", postCurrentTeam(s))
	authed.POST("/invites", postInvites(s))
	authed.POST("/join", postJoin(s))
	authed.GET("/dashboard", getDashboard(s))
	authed.GET("/routines", getRoutines(s))
	authed.POST("/routines", postRoutines(s))
	authed.GET("/tasks", getTasksList(s))
	authed.POST("/tasks", postTasks(s))
	authed.POST("/tasks/:id/toggle", postTaskToggle(s, log))
	authed.GET("/tasks/:id/open", getTaskOpen(s))
	authed.POST("/generate", postGenerate(s, log))
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

func postLogin(s Services) echo.HandlerFunc {
	type loginRequest struct {
		Token string `json:"token"`
	}
	return func(c echo.Context) error {
		var req loginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
		}
		session, err := s.Auth.ResolveToken(c.Request().Context(), req.Token)
		if err != nil {
			if errors.Is(err, service.ErrSessionInvalid) {
				return c.JSON(http.StatusUnauthorized, errorBody("invalid or expired token"))
			}
			return err
		}
		setSessionCookie(c, session.Token)
		return c.NoContent(http.StatusNoContent)
	}
}

func getTeams(s Services) echo.HandlerFunc {
	return func(c echo.Context) error {
		teams, err := s.Teams.ListForUser(c.Request().Context(), currentUserID(c))
		if err != nil {
			return err
		}
		out := make([]teamJSON, 0, len(teams))
		for _, t := range teams {
			out = append(out, toTeamJSON(t))
		}
		return c.JSON(http.StatusOK, out)
	}
}

func postTeams(s Services) echo.HandlerFunc {
	type createRequest struct {
		Name string `json:"name"`
	}
	return func(c echo.Context) error {
		var req createRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
		}
		team, err := s.Teams.Create(c.Request().Context(), req.Name, currentUserID(c))
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
		}
		// The creator's new team becomes the active one immediately.
		setStickyTeamCookie(c, team.ID)
		return c.JSON(http.StatusCreated, toTeamJSON(team))
	}
}

func getCurrentTeam(s Services) echo.HandlerFunc {
	return func(c echo.Context) error {
		teamID, ok, err := resolveTeam(c, s.Resolver)
		if !ok {
			return err
		}
		team, err := s.Teams.GetByID(c.Request().Context(), teamID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toTeamJSON(team))
	}
}

func postCurrentTeam(s Services) echo.HandlerFunc {
	type switchRequest struct {
		TeamID string `json:"team_id"`
	}
	return func(c echo.Context) error {
		var req switchRequest
		if err := c.Bind(&req); err != nil || req.TeamID == "" {
			return c.JSON(http.StatusBadRequest, errorBody("team_id is required"))
		}
		// Run the requested team through the resolver as if it were the
		// sticky preference; it only comes back if membership holds.
		res, err := s.Resolver.Resolve(c.Request().Context(), currentUserID(c), req.TeamID)
		if err != nil {
			return err
		}
		if res.Outcome != tenancy.OutcomeTeam || res.TeamID != req.TeamID {
			return c.JSON(http.StatusForbidden, errorBody("not a member of that team"))
		}
		setStickyTeamCookie(c, req.TeamID)
		return c.NoContent(http.StatusNoContent)
	}
}

func postInvites(s Services) echo.HandlerFunc {
	type inviteRequest struct {
		TTLHours int `json:"ttl_hours"`
	}
	return func(c echo.Context) error {
		teamID, ok, err := resolveTeam(c, s.Resolver)
		if !ok {
			return err
		}
		var req inviteRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
		}
		invite, err := s.Teams.CreateInvite(c.Request().Context(), teamID, currentUserID(c),
			time.Duration(req.TTLHours)*time.Hour)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, map[string]string{"code": invite.Code})
	}
}

func postJoin(s Services) echo.HandlerFunc {
	type joinRequest struct {
		Code string `json:"code"`
	}
	return func(c echo.Context) error {
		var req joinRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
		}
		team, err := s.Teams.JoinByInvite(c.Request().Context(), req.Code, currentUserID(c))
		if err != nil {
			if errors.Is(err, service.ErrInviteInvalid) {
				return c.JSON(http.StatusNotFound, errorBody("invalid or expired invite"))
			}
			return err
		}
		setStickyTeamCookie(c, team.ID)
		return c.JSON(http.StatusOK, toTeamJSON(team))
	}
}

func getDashboard(s Services) echo.HandlerFunc {
	return func(c echo.Context) error {
		teamID, ok, err := resolveTeam(c, s.Resolver)
		if !ok {
			return err
		}
		d, err := s.Dashboard.Load(c.Request().Context(), teamID, currentUserID(c))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toDashboardJSON(d))
	}
}

func getRoutines(s Services) echo.HandlerFunc {
	return func(c echo.Context) error {
		teamID, ok, err := resolveTeam(c, s.Resolver)
		if !ok {
			return err
		}
		routines, err := s.Routines.ListByTeam(c.Request().Context(), teamID, false)
		if err != nil {
			return err
		}
		out := make([]routineJSON, 0, len(routines))
		for _, r := range routines {
			out = append(out, toRoutineJSON(r))
		}
		return c.JSON(http.StatusOK, out)
	}
}

func postRoutines(s Services) echo.HandlerFunc {
	type routineRequest struct {
		Title             string   `json:"title"`
		ClientID          *string  `json:"client_id"`
		Rule              ruleJSON `json:"frequency"`
		DefaultAssigneeID *string  `json:"default_assignee_id"`
	}
	return func(c echo.Context) error {
		teamID, ok, err := resolveTeam(c, s.Resolver)
		if !ok {
			return err
		}
		member, err := s.Teams.Member(c.Request().Context(), teamID, currentUserID(c))
		if err != nil {
			return err
		}
		if !member.Role.CanManageRoutines() {
			return c.JSON(http.StatusForbidden, errorBody("only team admins can manage routines"))
		}

		var req routineRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
		}
		routine := &domain.Routine{
			TeamID:            teamID,
			ClientID:          req.ClientID,
			Title:             req.Title,
			Rule:              req.Rule.toDomain(),
			DefaultAssigneeID: req.DefaultAssigneeID,
			CreatedBy:         currentUserID(c),
		}
		if err := s.Routines.Create(c.Request().Context(), routine); err != nil {
			return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
		}
		return c.JSON(http.StatusCreated, toRoutineJSON(routine))
	}
}

func getTasksList(s Services) echo.HandlerFunc {
	return func(c echo.Context) error {
		teamID, ok, err := resolveTeam(c, s.Resolver)
		if !ok {
			return err
		}
		var tasks []*domain.Task
		if c.QueryParam("mine") == "true" {
			tasks, err = s.Tasks.ListByAssignee(c.Request().Context(), teamID, currentUserID(c))
		} else {
			tasks, err = s.Tasks.ListByTeam(c.Request().Context(), teamID)
		}
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toTaskListJSON(tasks))
	}
}

func postTasks(s Services) echo.HandlerFunc {
	type taskRequest struct {
		Title    string  `json:"title"`
		ClientID *string `json:"client_id"`
		ParentID *string `json:"parent_id"`
		DueDate  string  `json:"due_date"`
		Assignee *string `json:"assigned_to"`
	}
	return func(c echo.Context) error {
		teamID, ok, err := resolveTeam(c, s.Resolver)
		if !ok {
			return err
		}
		var req taskRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
		}
		t := &domain.Task{
			TeamID:    teamID,
			ClientID:  req.ClientID,
			ParentID:  req.ParentID,
			Title:     req.Title,
			Assignee:  req.Assignee,
			CreatedBy: currentUserID(c),
		}
		if req.DueDate != "" {
			due, err := time.Parse(dateLayout, req.DueDate)
			if err != nil {
				return c.JSON(http.StatusBadRequest, errorBody("invalid due date"))
			}
			t.DueDate = &due
		}
		if err := s.Tasks.Create(c.Request().Context(), t); err != nil {
			return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
		}
		return c.JSON(http.StatusCreated, toTaskJSON(t))
	}
}

func postTaskToggle(s Services, log *logrus.Logger) echo.HandlerFunc {
	type toggleRequest struct {
		Completed bool `json:"completed"`
	}
	return func(c echo.Context) error {
		var req toggleRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
		}
		res, err := s.Tasks.Toggle(c.Request().Context(), c.Param("id"), req.Completed)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusNotFound, errorBody("task not found"))
			}
			log.WithError(err).WithField("task_id", c.Param("id")).Error("task toggle failed")
			return c.JSON(http.StatusInternalServerError, errorBody("could not update task"))
		}
		return c.JSON(http.StatusOK, toggleJSON{
			Previous: string(res.Previous),
			Current:  string(res.Current),
		})
	}
}

func getTaskOpen(s Services) echo.HandlerFunc {
	return func(c echo.Context) error {
		res, err := s.Tasks.Open(c.Request().Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusNotFound, errorBody("task not found"))
			}
			return err
		}
		return c.JSON(http.StatusOK, toOpenJSON(res))
	}
}

func postGenerate(s Services, log *logrus.Logger) echo.HandlerFunc {
	type generateRequest struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}
	return func(c echo.Context) error {
		teamID, ok, err := resolveTeam(c, s.Resolver)
		if !ok {
			return err
		}
		var req generateRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
		}

		// Default to the current month in the organizational timezone.
		start, end := recurrence.MonthRange(time.Now())
		if req.Start != "" {
			if start, err = time.Parse(dateLayout, req.Start); err != nil {
				return c.JSON(http.StatusBadRequest, errorBody("invalid start date"))
			}
		}
		if req.End != "" {
			if end, err = time.Parse(dateLayout, req.End); err != nil {
				return c.JSON(http.StatusBadRequest, errorBody("invalid end date"))
			}
		}

		res, err := s.Generator.Run(c.Request().Context(), teamID, currentUserID(c), start, end)
		if err != nil {
			log.WithError(err).WithField("team_id", teamID).Error("generation run failed")
			return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
		}
		return c.JSON(http.StatusOK, generateResultJSON{
			Routines: res.Routines,
			Created:  res.Created,
			Skipped:  res.Skipped,
			Failed:   res.Failed,
		})
	}
}
