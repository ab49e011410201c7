// Package generation materializes routine recurrence rules into task rows.
// Every step is idempotent: a run may be abandoned and repeated from scratch
// over any range, including ranges that overlap earlier runs.
package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kmorishita/tasklane/internal/domain"
	"github.com/kmorishita/tasklane/internal/recurrence"
	"github.com/kmorishita/tasklane/internal/repository"
)

// Result summarizes one generation run.
type Result struct {
	Routines int // active routines considered
	Created  int // tasks inserted
	Skipped  int // drafts dropped by the uniqueness boundary
	Failed   int // routines whose inserts errored
}

// Generator walks a team's active routines over a date range and submits
// materialized drafts through the insert-or-ignore task gateway.
type Generator struct {
	routines repository.RoutineRepo
	tasks    repository.TaskRepo
	log      *logrus.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(routines repository.RoutineRepo, tasks repository.TaskRepo, log *logrus.Logger) *Generator {
	return &Generator{routines: routines, tasks: tasks, log: log}
}

// Run generates tasks for every active routine of the team across
// [start, end] inclusive. One routine's failure never blocks the others:
// the error is logged with context and the run continues. The returned error
// is reserved for failures that prevent the run entirely.
func (g *Generator) Run(ctx context.Context, teamID, actorUserID string, start, end time.Time) (*Result, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("invalid range: end %s before start %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	routines, err := g.routines.ListByTeam(ctx, teamID, true)
	if err != nil {
		return nil, fmt.Errorf("listing active routines: %w", err)
	}

	res := &Result{Routines: len(routines)}
	for _, rt := range routines {
		if err := g.runRoutine(ctx, rt, actorUserID, start, end, res); err != nil {
			res.Failed++
			g.log.WithError(err).WithFields(logrus.Fields{
				"team_id":    teamID,
				"routine_id": rt.ID,
			}).Warn("routine generation failed")
		}
	}
	return res, nil
}

func (g *Generator) runRoutine(ctx context.Context, rt *domain.Routine, actorUserID string, start, end time.Time, res *Result) error {
	for _, date := range recurrence.Expand(rt.Rule, start, end) {
		draft := Materialize(rt, date, actorUserID)
		draft.ID = uuid.New().String()
		now := time.Now().UTC()
		draft.CreatedAt = now
		draft.UpdatedAt = now

		inserted, err := g.tasks.CreateFromRoutine(ctx, draft)
		if err != nil {
			return fmt.Errorf("materializing %s: %w", date.Format("2006-01-02"), err)
		}
		if inserted {
			res.Created++
		} else {
			res.Skipped++
		}
	}
	return nil
}
