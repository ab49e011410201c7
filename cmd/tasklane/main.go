package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"

	"github.com/kmorishita/tasklane/internal/cli"
	"github.com/kmorishita/tasklane/internal/config"
	"github.com/kmorishita/tasklane/internal/db"
	"github.com/kmorishita/tasklane/internal/generation"
	"github.com/kmorishita/tasklane/internal/repository"
	"github.com/kmorishita/tasklane/internal/service"
	"github.com/kmorishita/tasklane/internal/tenancy"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	teamRepo := repository.NewSQLiteTeamRepo(database)
	memberRepo := repository.NewSQLiteMemberRepo(database)
	inviteRepo := repository.NewSQLiteInviteRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	routineRepo := repository.NewSQLiteRoutineRepo(database)
	taskRepo := repository.NewSQLiteTaskRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	app := &cli.App{
		Config:    cfg,
		Teams:     service.NewTeamService(teamRepo, memberRepo, inviteRepo, uow),
		Routines:  service.NewRoutineService(routineRepo),
		Tasks:     service.NewTaskService(taskRepo),
		Auth:      service.NewAuthService(sessionRepo),
		Dashboard: service.NewDashboardService(memberRepo, routineRepo, taskRepo),
		Resolver:  tenancy.NewResolver(memberRepo),
		Generator: generation.NewGenerator(routineRepo, taskRepo, log),
		Log:       log,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
