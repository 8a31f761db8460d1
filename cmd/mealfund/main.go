package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/mealfund/internal/cli"
	"github.com/alexanderramin/mealfund/internal/config"
	"github.com/alexanderramin/mealfund/internal/db"
	"github.com/alexanderramin/mealfund/internal/repository"
	"github.com/alexanderramin/mealfund/internal/service"
	"github.com/mattn/go-isatty"
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

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	campaignRepo := repository.NewSQLiteCampaignRepo(database)
	phaseRepo := repository.NewSQLitePhaseRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	// Wire services
	app := &cli.App{
		Campaigns: service.NewCampaignService(campaignRepo, phaseRepo, cfg.ExportOffsetHours, observers...),
		Editor:    service.NewPhaseEditService(campaignRepo, phaseRepo, service.NewSQLitePhaseSyncer(uow), cfg.ExportOffsetHours, observers...),
		Import:    service.NewImportService(uow, cfg.ExportOffsetHours, observers...),
	}

	// The phase editor needs a terminal on both ends.
	app.IsInteractive = isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
