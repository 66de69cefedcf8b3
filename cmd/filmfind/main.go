package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-errors/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	envFile    string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	root := &cobra.Command{
		Use:   "filmfind",
		Short: "Search the film catalog from the terminal",
		Long: "filmfind searches a Sakila-style film catalog by keyword or by genre and year, " +
			"logs every search and reports the most popular and most recent searches.",
		SilenceUsage:      true,
		PersistentPreRunE: loadEnv,
		RunE:              runInteractive,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config (default: environment only)")
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "path to .env file (default: ./.env if present)")

	root.AddCommand(seedCmd())
	root.AddCommand(versionCmd())

	err := root.ExecuteContext(ctx)
	stop()

	if err != nil {
		os.Exit(1)
	}
}

// loadEnv loads the .env file. It does not override existing env vars.
func loadEnv(_ *cobra.Command, _ []string) error {
	if envFile == "" {
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		return errors.Errorf("load env file %s: %w", envFile, err)
	}
	return nil
}
