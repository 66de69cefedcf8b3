package main

import (
	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/strrl/filmfind/pkg/app"
	"github.com/strrl/filmfind/pkg/catalog"
	"github.com/strrl/filmfind/pkg/config"
	"github.com/strrl/filmfind/pkg/eventlog"
	"github.com/strrl/filmfind/pkg/logger"
	"github.com/strrl/filmfind/pkg/present"
	"github.com/strrl/filmfind/pkg/stats"
	"github.com/strrl/filmfind/pkg/terminal"
	"github.com/strrl/filmfind/pkg/tracing"
)

func runInteractive(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(configPath)
	if err != nil {
		return errors.Errorf("config: %w", err)
	}

	zl, err := logger.NewLogger(cfg.Logging.Format, cfg.Logging.Level)
	if err != nil {
		return errors.Errorf("logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	flush := tracing.Init(ctx, cfg.Tracing.Endpoint, cfg.Tracing.ServiceName, zl)
	defer flush()

	cat, err := catalog.New(cfg.CatalogConfig())
	if err != nil {
		return errors.Errorf("catalog: %w", err)
	}
	store, err := openEventStore(cfg)
	if err != nil {
		return errors.Errorf("event store: %w", err)
	}
	events := eventlog.NewLogger(store, zl)

	zl.Info("session started",
		zap.String("session_id", events.SessionID()),
		zap.String("catalog_driver", cfg.Catalog.Driver),
		zap.String("events_driver", cfg.Events.Driver))

	prompter := terminal.NewPrompter()
	defer func() { _ = prompter.Close() }()

	view := present.New(cmd.OutOrStdout(), prompter)
	return app.New(cat, events, stats.NewReader(store), prompter, view, zl).Run(ctx)
}

func openEventStore(cfg config.Config) (eventlog.Store, error) {
	switch cfg.Events.Driver {
	case config.EventsMongo:
		return eventlog.NewMongoStore(cfg.MongoConfig()), nil
	case config.EventsDuckDB:
		return eventlog.NewDuckDBStore(cfg.Events.Path), nil
	default:
		return nil, errors.Errorf("unsupported events driver %q", cfg.Events.Driver)
	}
}
