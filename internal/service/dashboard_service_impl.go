package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/kmorishita/tasklane/internal/repository"
)

type dashboardService struct {
	members  repository.MemberRepo
	routines repository.RoutineRepo
	tasks    repository.TaskRepo
}

func NewDashboardService(members repository.MemberRepo, routines repository.RoutineRepo, tasks repository.TaskRepo) DashboardService {
	return &dashboardService{members: members, routines: routines, tasks: tasks}
}

// Load fetches the dashboard's four independent reads in parallel. None of
// them depends on another's result, so the only ordering is the errgroup
// barrier at the end.
func (s *dashboardService) Load(ctx context.Context, teamID, userID string) (*Dashboard, error) {
	var d Dashboard

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		d.Members, err = s.members.ListByTeam(ctx, teamID)
		return err
	})
	g.Go(func() error {
		var err error
		d.Routines, err = s.routines.ListByTeam(ctx, teamID, true)
		return err
	})
	g.Go(func() error {
		var err error
		d.Tasks, err = s.tasks.ListByTeam(ctx, teamID)
		return err
	})
	g.Go(func() error {
		var err error
		d.MyTasks, err = s.tasks.ListByAssignee(ctx, teamID, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}
