package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/talia-baeva/slotline/internal/api"
	"github.com/talia-baeva/slotline/internal/cli"
	"github.com/talia-baeva/slotline/internal/config"
	"github.com/talia-baeva/slotline/internal/db"
	"github.com/talia-baeva/slotline/internal/onboarding"
	"github.com/talia-baeva/slotline/internal/store"
	"go.uber.org/zap"
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

	// Wire the API client. Call logging goes to stderr so it never mixes
	// with command output.
	observer := api.Observer(api.NoopObserver{})
	if cfg.LogCalls {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		defer logger.Sync()
		observer = api.NewZapObserver(logger)
	}
	client := api.NewClient(api.Config{
		BaseURL:    cfg.APIBaseURL,
		TimeoutMs:  cfg.TimeoutMs,
		MaxRetries: cfg.MaxRetries,
	}, observer)

	// Wire storage and services.
	state := store.NewSQLiteStateRepo(database)
	drafts := store.NewDraftStore(state)
	uow := db.NewSQLiteUnitOfWork(database)

	catalog := onboarding.NewCatalogService(client)

	app := &cli.App{
		Catalog:    catalog,
		Sessions:   onboarding.NewSessionService(client, catalog, state, drafts, uow),
		Completion: onboarding.NewCompletionService(client, state, drafts, uow),
		Drafts:     drafts,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
		},
	}

	return cli.NewRootCmd(app).Execute()
}
