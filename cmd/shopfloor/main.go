package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/shopfloor/internal/cli"
	"github.com/alexanderramin/shopfloor/internal/config"
	"github.com/alexanderramin/shopfloor/internal/db"
	"github.com/alexanderramin/shopfloor/internal/live"
	"github.com/alexanderramin/shopfloor/internal/metrics"
	"github.com/alexanderramin/shopfloor/internal/repository"
	"github.com/alexanderramin/shopfloor/internal/service"
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
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	workerRepo := repository.NewSQLiteWorkerRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)
	clock := service.SystemClock{}

	// Observability: structured logs when asked for, metrics when an
	// OTEL endpoint is configured.
	var observers []service.UseCaseObserver
	if os.Getenv("SHOPFLOOR_VERBOSE") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}
	if cfg.OTEL.Enabled {
		exporter, err := metrics.NewExporter(context.Background(), cfg.OTEL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: metrics disabled: %v\n", err)
		} else {
			defer exporter.Shutdown(context.Background())
			observers = append(observers, exporter)
		}
	}

	// Wire services
	sessionSvc := service.NewSessionService(sessionRepo, uow, clock, observers...)
	statusSvc := service.NewStatusService(workerRepo, assignmentRepo, sessionSvc, clock, nil)
	publisher := live.NewPublisher(statusSvc, cfg.PollInterval(), nil)

	app := &cli.App{
		Sessions:    sessionSvc,
		Status:      statusSvc,
		Workers:     workerRepo,
		Assignments: assignmentRepo,
		Live:        publisher,
	}

	return cli.NewRootCmd(app).Execute()
}
