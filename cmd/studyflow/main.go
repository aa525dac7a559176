package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mabdulhai/studyflow/internal/assistant"
	"github.com/mabdulhai/studyflow/internal/cli"
	"github.com/mabdulhai/studyflow/internal/db"
	"github.com/mabdulhai/studyflow/internal/repository"
	"github.com/mabdulhai/studyflow/internal/service"
	"github.com/mabdulhai/studyflow/internal/session"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.studyflow/studyflow.db
	dbPath := os.Getenv("STUDYFLOW_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".studyflow", "studyflow.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	recordRepo := repository.NewSQLiteRecordRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var serviceObservers []service.UseCaseObserver
	if os.Getenv("STUDYFLOW_LOG") != "" {
		serviceObservers = append(serviceObservers, service.NewLogUseCaseObserver(os.Stderr))
	}

	studyCfg := session.LoadConfig()

	app := &cli.App{
		Records: service.NewRecordService(recordRepo, uow, serviceObservers...),
		Study:   studyCfg,
	}

	// Detect interactive terminal for the run command.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Wire the assistant gateway (only when enabled).
	assistantCfg := assistant.LoadConfig()
	if studyCfg.AssistantEnabled && assistantCfg.Enabled {
		var observer assistant.Observer = assistant.NoopObserver{}
		if assistantCfg.LogCalls {
			observer = assistant.NewLogObserver(os.Stderr)
		}
		app.Gateway = assistant.NewClient(assistantCfg, observer)
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
